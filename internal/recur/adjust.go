package recur

import (
	"fmt"
	"time"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/calendar"
)

// forwardFallbackHorizon caps the forward fallback scan after a backward
// search finds no candidate. Two weeks of consecutive non-candidate days
// means the calendar is malformed; the evaluator then fails closed.
const forwardFallbackHorizon = 14

// weekMonday returns the Monday of the week containing the date.
// Weeks run Monday through Sunday, so a Sunday belongs to the week that
// started six days earlier.
func weekMonday(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

// weekSaturday returns the Saturday of the week containing the date.
func weekSaturday(date time.Time) time.Time {
	return weekMonday(date).AddDate(0, 0, 5)
}

// monthFirst returns the first day of the date's month.
func monthFirst(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// monthLast returns the last day of the date's month.
func monthLast(date time.Time) time.Time {
	return monthFirst(date).AddDate(0, 1, -1)
}

// lastSaturday returns the last Saturday of the date's month.
func lastSaturday(date time.Time) time.Time {
	d := monthLast(date)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// isCandidate reports whether a date is a non-holiday weekday: any day
// Monday-Saturday that is not in the holiday set. Sundays are never
// candidates for appearance or due dates.
func isCandidate(cal *calendar.Calendar, date time.Time) bool {
	return date.Weekday() != time.Sunday && !cal.IsHoliday(date)
}

// forwardCandidate returns the first non-holiday weekday in [from, upper].
func forwardCandidate(cal *calendar.Calendar, from, upper time.Time) (time.Time, bool) {
	for d := from; !d.After(upper); d = d.AddDate(0, 0, 1) {
		if isCandidate(cal, d) {
			return d, true
		}
	}
	return time.Time{}, false
}

// backwardCandidate returns the latest non-holiday weekday in [lower, from].
func backwardCandidate(cal *calendar.Calendar, from, lower time.Time) (time.Time, bool) {
	for d := from; !d.Before(lower); d = d.AddDate(0, 0, -1) {
		if isCandidate(cal, d) {
			return d, true
		}
	}
	return time.Time{}, false
}

// nearestEarlier resolves a target day to the nearest earlier non-holiday
// weekday within [lower, target]. When the backward search is exhausted it
// falls forward past the bound instead — short weeks with several holidays
// would otherwise produce no occurrence at all. If neither direction finds a
// candidate within the horizon, the caller must fail closed.
func nearestEarlier(cal *calendar.Calendar, target, lower time.Time) (time.Time, error) {
	if d, ok := backwardCandidate(cal, target, lower); ok {
		return d, nil
	}
	horizon := target.AddDate(0, 0, forwardFallbackHorizon)
	if d, ok := forwardCandidate(cal, target.AddDate(0, 0, 1), horizon); ok {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("%w: no non-holiday weekday near %s", ErrUnresolvedDate, target.Format("2006-01-02"))
}

// addWeekdayWorkingDays returns the date n countable days after from, where a
// countable day is Monday-Friday and not a holiday. This is the due-date
// arithmetic for start-of-month variants, which skips weekends even when
// Saturdays are otherwise configured as working.
func addWeekdayWorkingDays(cal *calendar.Calendar, from time.Time, n int) time.Time {
	d := from
	for remaining := n; remaining > 0; {
		d = d.AddDate(0, 0, 1)
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday && !cal.IsHoliday(d) {
			remaining--
		}
	}
	return d
}
