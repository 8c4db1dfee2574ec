package checklist

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date format used for identity hashing,
// persistence, and configuration files.
const DateLayout = "2006-01-02"

// DueTimeLayout is the canonical HH:MM format for due times.
const DueTimeLayout = "15:04"

// Date builds a calendar date (midnight UTC). All engine-level dates are
// normalized to this form so equality and hashing are stable.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates an instant to its calendar date (midnight UTC, keeping the
// instant's own year/month/day).
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string into a normalized calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustDate is like ParseDate but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// SameDate reports whether two instants fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ParseDueTime validates an HH:MM due time and returns its components.
func ParseDueTime(s string) (hour, minute int, err error) {
	t, err := time.Parse(DueTimeLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("parse due time %q: expected HH:MM: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// AtTime combines a calendar date with an HH:MM time-of-day into an instant
// in the date's location.
func AtTime(date time.Time, hhmm string) (time.Time, error) {
	h, m, err := ParseDueTime(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}

// EndOfDay returns 23:59 on the given date, the instant at which per-family
// locks take effect.
func EndOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 0, 0, date.Location())
}

// MaxDate returns the latest of the given dates, ignoring zero values.
func MaxDate(dates ...time.Time) time.Time {
	var max time.Time
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if max.IsZero() || d.After(max) {
			max = d
		}
	}
	return max
}
