package entity

import "time"

// Span is the effective extent of a showtime: a closed calendar date range
// combined with a closed time-of-day range. A span with StartTime greater
// than FinishTime crosses midnight and ends on the following calendar day.
type Span struct {
	StartDate  time.Time
	FinishDate time.Time
	StartTime  ClockTime
	FinishTime ClockTime
}

func (s Span) SpansMidnight() bool {
	return s.StartTime > s.FinishTime
}

// DateRangeOverlaps reports whether the two closed date ranges intersect,
// containment included.
func (s Span) DateRangeOverlaps(o Span) bool {
	return !s.StartDate.After(o.FinishDate) && !o.StartDate.After(s.FinishDate)
}

// TimeRangeOverlaps reports whether the two time-of-day ranges intersect.
// A midnight-crossing range is decomposed into [start, 23:59:59] and
// [00:00:00, finish] and the other range is tested against each piece.
// Two midnight-crossing ranges both contain the midnight boundary, so they
// always intersect. Ranges are closed on both ends: touching boundaries
// count as overlap.
func (s Span) TimeRangeOverlaps(o Span) bool {
	switch {
	case s.SpansMidnight() && o.SpansMidnight():
		return true
	case s.SpansMidnight():
		return clockRangesIntersect(o.StartTime, o.FinishTime, s.StartTime, EndOfDay) ||
			clockRangesIntersect(o.StartTime, o.FinishTime, 0, s.FinishTime)
	case o.SpansMidnight():
		return clockRangesIntersect(s.StartTime, s.FinishTime, o.StartTime, EndOfDay) ||
			clockRangesIntersect(s.StartTime, s.FinishTime, 0, o.FinishTime)
	default:
		return clockRangesIntersect(s.StartTime, s.FinishTime, o.StartTime, o.FinishTime)
	}
}

// Overlaps reports whether both the date ranges and the time ranges
// intersect. Two showtimes in one hall conflict exactly when this is true.
func (s Span) Overlaps(o Span) bool {
	return s.DateRangeOverlaps(o) && s.TimeRangeOverlaps(o)
}

func clockRangesIntersect(start1, finish1, start2, finish2 ClockTime) bool {
	return start1 <= finish2 && start2 <= finish1
}
