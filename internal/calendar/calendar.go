// Package calendar answers working-day questions for the recurrence rules:
// whether a date is a holiday or non-working day, and the next/previous
// working day from a date.
//
// A Calendar is an immutable snapshot built once per evaluation run from the
// external holiday source. The engine never mutates it and holds no hidden
// cross-call caches; callers control refresh by building a new snapshot.
package calendar

import (
	"sort"
	"time"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// Calendar is the immutable business-day snapshot for one evaluation run.
//
// Working-day rules: Sunday is always non-working regardless of
// configuration; Saturday is working unless configured otherwise; any
// configured holiday is non-working.
type Calendar struct {
	holidays        map[string]struct{} // keyed YYYY-MM-DD
	saturdayWorking bool
}

// Option configures a Calendar at construction time.
type Option func(*Calendar)

// WithSaturdayNonWorking marks Saturdays as non-working days.
func WithSaturdayNonWorking() Option {
	return func(c *Calendar) {
		c.saturdayWorking = false
	}
}

// New builds a Calendar snapshot from a holiday date set.
// The holiday slice is copied; later mutation of the input has no effect.
func New(holidays []time.Time, opts ...Option) *Calendar {
	c := &Calendar{
		holidays:        make(map[string]struct{}, len(holidays)),
		saturdayWorking: true,
	}
	for _, h := range holidays {
		c.holidays[h.Format(checklist.DateLayout)] = struct{}{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsHoliday reports whether the date is in the configured holiday set.
func (c *Calendar) IsHoliday(date time.Time) bool {
	_, ok := c.holidays[date.Format(checklist.DateLayout)]
	return ok
}

// IsNonWorkingWeekday reports whether the weekday itself excludes work,
// independent of holidays: Sunday always, Saturday when configured.
func (c *Calendar) IsNonWorkingWeekday(date time.Time) bool {
	switch date.Weekday() {
	case time.Sunday:
		return true
	case time.Saturday:
		return !c.saturdayWorking
	default:
		return false
	}
}

// IsWorkingDay reports whether the date counts as a business day: an allowed
// weekday that is not a holiday.
func (c *Calendar) IsWorkingDay(date time.Time) bool {
	return !c.IsNonWorkingWeekday(date) && !c.IsHoliday(date)
}

// NextWorkingDay returns the first working day strictly after the date.
func (c *Calendar) NextWorkingDay(date time.Time) time.Time {
	d := date.AddDate(0, 0, 1)
	for !c.IsWorkingDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// PrevWorkingDay returns the first working day strictly before the date.
func (c *Calendar) PrevWorkingDay(date time.Time) time.Time {
	d := date.AddDate(0, 0, -1)
	for !c.IsWorkingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// AddWorkingDays returns the date n working days after the given date,
// stepping one day at a time and counting only working days. The landing day
// is itself a working day by construction.
func (c *Calendar) AddWorkingDays(date time.Time, n int) time.Time {
	d := date
	for remaining := n; remaining > 0; {
		d = d.AddDate(0, 0, 1)
		if c.IsWorkingDay(d) {
			remaining--
		}
	}
	return d
}

// CountWorkingDays counts working days in the inclusive range [from, to].
// Returns 0 when from is after to.
func (c *Calendar) CountWorkingDays(from, to time.Time) int {
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			n++
		}
	}
	return n
}

// Holidays returns the configured holiday dates in ascending order.
// Used by operator tooling; evaluation code uses the predicate methods.
func (c *Calendar) Holidays() []time.Time {
	out := make([]time.Time, 0, len(c.holidays))
	for k := range c.holidays {
		d, err := checklist.ParseDate(k)
		if err != nil {
			continue // unreachable: keys are produced by DateLayout formatting
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
