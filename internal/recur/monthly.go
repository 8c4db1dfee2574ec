package recur

import (
	"fmt"
	"time"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/calendar"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// endOfMonthMinWorkingDays is the number of working days an end-of-month
// anchor Monday must still have before month end, counting the Monday itself.
const endOfMonthMinWorkingDays = 5

// startOfMonthAppearance resolves the month's start anchor: the 1st, shifted
// to the following Monday when it falls on a weekend, then forward to the
// next non-holiday weekday if the landing day is a holiday.
func startOfMonthAppearance(cal *calendar.Calendar, date time.Time) (time.Time, error) {
	d := monthFirst(date)
	switch d.Weekday() {
	case time.Saturday:
		d = d.AddDate(0, 0, 2)
	case time.Sunday:
		d = d.AddDate(0, 0, 1)
	}
	app, ok := forwardCandidate(cal, d, monthLast(date))
	if !ok {
		return time.Time{}, fmt.Errorf("%w: month of %s has no non-holiday weekday from its start anchor", ErrUnresolvedDate, d.Format(checklist.DateLayout))
	}
	return app, nil
}

// monthlyCutoff resolves the month's carry cutoff and monthly due day: the
// last Saturday of the month, shifted to the nearest earlier non-holiday
// weekday when it is a holiday.
func monthlyCutoff(cal *calendar.Calendar, date time.Time) (time.Time, error) {
	return nearestEarlier(cal, lastSaturday(date), monthFirst(date))
}

// evalStartOfMonth implements the start-of-month family.
//
// Due is the appearance plus five working days, skipping weekends and
// holidays. The occurrence carries past its due day, through the month's
// holiday-adjusted last Saturday.
func evalStartOfMonth(date time.Time, cal *calendar.Calendar) (Result, error) {
	app, err := startOfMonthAppearance(cal, date)
	if err != nil {
		return Result{}, err
	}
	due := addWeekdayWorkingDays(cal, app, 5)
	cutoff, err := monthlyCutoff(cal, date)
	if err != nil {
		return Result{}, err
	}
	windowEnd := checklist.MaxDate(app, cutoff)

	if date.Before(app) || date.After(windowEnd) {
		return Result{}, nil
	}
	return Result{
		Appears:      true,
		DueDate:      due,
		LockDate:     cutoff,
		IsCarryOver:  date.After(app),
		OriginalDate: app,
	}, nil
}

// evalOnceMonthly implements the once-monthly family, optionally restricted
// to a single target month.
//
// Appearance follows the start-of-month rule; due is the month's
// holiday-adjusted last Saturday. Unlike start-of-month, the carry window
// ends at the due day and does not continue past it.
func evalOnceMonthly(v checklist.Variant, date time.Time, cal *calendar.Calendar) (Result, error) {
	if v.Month != 0 && date.Month() != v.Month {
		return Result{}, nil
	}
	app, err := startOfMonthAppearance(cal, date)
	if err != nil {
		return Result{}, err
	}
	due, err := monthlyCutoff(cal, date)
	if err != nil {
		return Result{}, err
	}
	windowEnd := checklist.MaxDate(app, due)

	if date.Before(app) || date.After(windowEnd) {
		return Result{}, nil
	}
	return Result{
		Appears:      true,
		DueDate:      due,
		LockDate:     due,
		IsCarryOver:  date.After(app),
		OriginalDate: app,
	}, nil
}

// endOfMonthAppearance resolves the end-of-month anchor: the latest Monday
// in-month that still has at least five working days remaining before month
// end (counting the Monday itself), stepping back a week at a time when a
// Monday falls short, then holiday-adjusted forward.
func endOfMonthAppearance(cal *calendar.Calendar, date time.Time) (time.Time, error) {
	first := monthFirst(date)
	last := monthLast(date)

	mon := last
	for mon.Weekday() != time.Monday {
		mon = mon.AddDate(0, 0, -1)
	}
	for !mon.Before(first) {
		if cal.CountWorkingDays(mon, last) >= endOfMonthMinWorkingDays {
			break
		}
		mon = mon.AddDate(0, 0, -7)
	}
	if mon.Before(first) {
		return time.Time{}, fmt.Errorf("%w: month of %s has no Monday with %d working days remaining", ErrUnresolvedDate, first.Format(checklist.DateLayout), endOfMonthMinWorkingDays)
	}

	app, ok := forwardCandidate(cal, mon, last)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: no non-holiday weekday from end-of-month anchor %s", ErrUnresolvedDate, mon.Format(checklist.DateLayout))
	}
	return app, nil
}

// evalEndOfMonth implements the end-of-month family, optionally restricted
// to a single target month. Due and carry cutoff are both the month's
// holiday-adjusted last Saturday; the window does not continue past it.
func evalEndOfMonth(v checklist.Variant, date time.Time, cal *calendar.Calendar) (Result, error) {
	if v.Month != 0 && date.Month() != v.Month {
		return Result{}, nil
	}
	app, err := endOfMonthAppearance(cal, date)
	if err != nil {
		return Result{}, err
	}
	due, err := monthlyCutoff(cal, date)
	if err != nil {
		return Result{}, err
	}
	windowEnd := checklist.MaxDate(app, due)

	if date.Before(app) || date.After(windowEnd) {
		return Result{}, nil
	}
	return Result{
		Appears:      true,
		DueDate:      due,
		LockDate:     due,
		IsCarryOver:  date.After(app),
		OriginalDate: app,
	}, nil
}
