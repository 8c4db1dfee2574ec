package recur

import (
	"fmt"
	"time"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/calendar"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// evalOnceOff implements the once-off family.
//
// The first eligible date is the latest of the task's creation, publish, and
// start dates. The occurrence appears that day and every day after, carries
// forever until marked done, and never locks.
func evalOnceOff(task checklist.MasterTask, date time.Time) (Result, error) {
	if task.DueDate.IsZero() {
		return Result{}, fmt.Errorf("%w: once-off variant on task %s has no due_date", ErrInvalidConfig, task.ID)
	}

	first := checklist.MaxDate(task.CreatedAt, task.PublishAt, task.StartDate)
	if first.IsZero() {
		// No eligibility bound configured: the lineage is treated as having
		// first appeared on the evaluated date.
		first = date
	} else {
		first = checklist.DateOf(first)
	}

	if date.Before(first) {
		return Result{}, nil
	}

	return Result{
		Appears:      true,
		DueDate:      checklist.DateOf(task.DueDate),
		IsCarryOver:  date.After(first),
		OriginalDate: first,
		// LockDate stays zero: the once-off family is exempt from locking.
	}, nil
}

// evalEveryDay implements the every-day family: an occurrence on every date
// that is not a Sunday and not a holiday. Single-day, no carry-over; locks
// at 23:59 the same day.
func evalEveryDay(date time.Time, cal *calendar.Calendar) (Result, error) {
	if date.Weekday() == time.Sunday || cal.IsHoliday(date) {
		return Result{}, nil
	}
	return Result{
		Appears:      true,
		DueDate:      date,
		LockDate:     date,
		IsCarryOver:  false,
		OriginalDate: date,
	}, nil
}
