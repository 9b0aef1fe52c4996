package entity

import (
	"time"

	"github.com/google/uuid"
)

type Showtime struct {
	Base
	MovieTitle  string    `db:"movie_title"`
	TicketPrice int       `db:"ticket_price"` // currency minor units
	StartDate   time.Time `db:"start_date"`
	FinishDate  time.Time `db:"finish_date"`
	StartTime   ClockTime `db:"start_time"`
	FinishTime  ClockTime `db:"finish_time"`
	HallID      uuid.UUID `db:"hall_id"`
}

func (s *Showtime) Span() Span {
	return Span{
		StartDate:  s.StartDate,
		FinishDate: s.FinishDate,
		StartTime:  s.StartTime,
		FinishTime: s.FinishTime,
	}
}

// ValidateSchedule checks the date and time ordering rules for a showtime
// being created or updated. Returns field name to reason, empty on success.
func (s *Showtime) ValidateSchedule(now time.Time) map[string]string {
	errs := make(map[string]string)

	if s.FinishDate.Before(s.StartDate) {
		errs["finish_date"] = "finish date cannot be before start date"
	}
	if s.StartDate.Equal(s.FinishDate) && s.FinishTime <= s.StartTime {
		errs["finish_time"] = "showtime must have a positive duration"
	}

	today := DateOnly(now)
	if s.StartDate.Before(today) {
		errs["start_date"] = "showtime cannot start in the past"
	} else if s.StartDate.Equal(today) && s.StartTime < ClockOf(now) {
		errs["start_time"] = "showtime cannot start in the past"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// FindConflict returns the first showtime among existing whose span overlaps
// the candidate's, skipping the showtime with the exclude ID (the candidate
// itself, on update). The caller supplies only showtimes of the candidate's
// hall. This is the single overlap gate: no other layer reimplements it.
func FindConflict(existing []*Showtime, candidate *Showtime, exclude uuid.UUID) *Showtime {
	span := candidate.Span()
	for _, other := range existing {
		if other.ID == exclude {
			continue
		}
		if span.Overlaps(other.Span()) {
			return other
		}
	}
	return nil
}
