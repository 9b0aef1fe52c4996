package entity

import (
	"fmt"
	"time"
)

// ClockTime is a time of day in seconds since midnight. Showtime start and
// finish times are pure times of day; comparing them as integers keeps the
// overlap arithmetic free of calendar concerns.
type ClockTime int

// EndOfDay is the last representable second, 23:59:59.
const EndOfDay ClockTime = 24*60*60 - 1

// ParseClock accepts "15:04" or "15:04:05".
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
	}
	return ClockTime(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}

// ClockOf extracts the time of day from an instant.
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(c)/3600, int(c)%3600/60, int(c)%60)
}

// Microseconds converts to the wire representation of a TIME column.
func (c ClockTime) Microseconds() int64 {
	return int64(c) * 1_000_000
}

// ClockFromMicroseconds converts back from a TIME column value.
func ClockFromMicroseconds(us int64) ClockTime {
	return ClockTime(us / 1_000_000)
}

// DateOnly normalizes an instant to its calendar date (midnight UTC), the
// form all date fields are stored and compared in.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
