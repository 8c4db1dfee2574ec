package recur

import (
	"fmt"
	"time"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/calendar"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// weeklyDue resolves the week's due day: the Saturday of the week, shifted
// to the nearest earlier non-holiday weekday when Saturday is a holiday.
func weeklyDue(cal *calendar.Calendar, date time.Time) (time.Time, error) {
	return nearestEarlier(cal, weekSaturday(date), weekMonday(date))
}

// evalOnceWeekly implements the once-weekly family.
//
// Appearance anchors to Monday. A holiday Monday shifts to Tuesday; if
// Tuesday is also a holiday the scan continues forward through the week's
// non-holiday weekdays. The occurrence carries from appearance through the
// (holiday-adjusted) Saturday due day.
func evalOnceWeekly(date time.Time, cal *calendar.Calendar) (Result, error) {
	mon := weekMonday(date)
	app, ok := forwardCandidate(cal, mon, weekSaturday(date))
	if !ok {
		return Result{}, fmt.Errorf("%w: week of %s has no non-holiday weekday", ErrUnresolvedDate, mon.Format(checklist.DateLayout))
	}

	due, err := weeklyDue(cal, date)
	if err != nil {
		return Result{}, err
	}

	if date.Before(app) || date.After(due) {
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

// evalSpecificWeekday implements the specific-weekday family (Monday-Saturday
// anchors).
//
// A holiday on a Monday anchor shifts forward like once-weekly. A holiday on
// a Tuesday-Saturday anchor shifts to the nearest earlier non-holiday weekday
// in-week, falling forward only when the backward search is exhausted. The
// occurrence carries from appearance through the week's carry cutoff: the
// holiday-adjusted Saturday.
func evalSpecificWeekday(v checklist.Variant, date time.Time, cal *calendar.Calendar) (Result, error) {
	if v.Weekday < time.Monday || v.Weekday > time.Saturday {
		return Result{}, fmt.Errorf("%w: weekday anchor %s outside Monday-Saturday", ErrInvalidConfig, v.Weekday)
	}

	mon := weekMonday(date)
	sat := weekSaturday(date)
	anchor := mon.AddDate(0, 0, int(v.Weekday-time.Monday))

	var app time.Time
	switch {
	case isCandidate(cal, anchor):
		app = anchor
	case v.Weekday == time.Monday:
		// Monday anchors only ever shift forward.
		a, ok := forwardCandidate(cal, anchor.AddDate(0, 0, 1), sat)
		if !ok {
			return Result{}, fmt.Errorf("%w: week of %s has no non-holiday weekday after Monday", ErrUnresolvedDate, mon.Format(checklist.DateLayout))
		}
		app = a
	default:
		a, err := nearestEarlier(cal, anchor, mon)
		if err != nil {
			return Result{}, err
		}
		app = a
	}

	cutoff, err := weeklyDue(cal, date)
	if err != nil {
		return Result{}, err
	}
	// A late-week appearance can land past an earlier-shifted cutoff; the
	// appearance day itself always remains in the window.
	windowEnd := checklist.MaxDate(app, cutoff)

	if date.Before(app) || date.After(windowEnd) {
		return Result{}, nil
	}
	return Result{
		Appears:      true,
		DueDate:      cutoff,
		LockDate:     cutoff,
		IsCarryOver:  date.After(app),
		OriginalDate: app,
	}, nil
}
