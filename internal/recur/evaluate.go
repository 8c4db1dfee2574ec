package recur

import (
	"errors"
	"fmt"
	"time"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/calendar"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// ErrInvalidConfig marks a task/variant combination missing required fields
// (e.g. once-off without a due date). The item is skipped and reported;
// generation continues for other items.
var ErrInvalidConfig = errors.New("invalid variant configuration")

// ErrUnresolvedDate marks a failure to resolve a holiday-adjusted date within
// the bounds of a week or month. The evaluator fails closed: it reports "does
// not appear" rather than guessing a date.
var ErrUnresolvedDate = errors.New("no resolvable day within bound")

// Result describes the evaluation of one (task, variant, date) triple.
type Result struct {
	// Appears is true when an occurrence exists on the evaluated date.
	// When false, the remaining fields are zero.
	Appears bool

	// DueDate is the date the occurrence is due per the variant rule.
	// May differ from the evaluated date.
	DueDate time.Time

	// DueTime is the effective HH:MM due time (variant override or task
	// default).
	DueTime string

	// LockDate is the day whose 23:59 locks an incomplete occurrence.
	// Zero for once-off, which never locks.
	LockDate time.Time

	// IsCarryOver is true on days after the original appearance day, up to
	// the variant's carry cutoff.
	IsCarryOver bool

	// OriginalDate is the first date of this occurrence's lineage.
	OriginalDate time.Time
}

// Evaluate runs the variant family's rule for one calendar date.
//
// A nil calendar is a programming-contract violation and panics; expected
// per-item failures (configuration, unresolvable dates) are returned as
// errors for the caller to report alongside other items.
func Evaluate(task checklist.MasterTask, v checklist.Variant, date time.Time, cal *calendar.Calendar) (Result, error) {
	if cal == nil {
		panic("recur: Evaluate called with nil calendar")
	}
	day := checklist.DateOf(date)

	var (
		res Result
		err error
	)
	switch v.Kind {
	case checklist.KindOnceOff:
		res, err = evalOnceOff(task, day)
	case checklist.KindEveryDay:
		res, err = evalEveryDay(day, cal)
	case checklist.KindOnceWeekly:
		res, err = evalOnceWeekly(day, cal)
	case checklist.KindSpecificWeekday:
		res, err = evalSpecificWeekday(v, day, cal)
	case checklist.KindStartOfMonth:
		res, err = evalStartOfMonth(day, cal)
	case checklist.KindOnceMonthly:
		res, err = evalOnceMonthly(v, day, cal)
	case checklist.KindEndOfMonth:
		res, err = evalEndOfMonth(v, day, cal)
	default:
		return Result{}, fmt.Errorf("%w: unknown variant kind %q", ErrInvalidConfig, v.Kind)
	}
	if err != nil || !res.Appears {
		return Result{}, err
	}

	res.DueTime = task.EffectiveDueTime(v)
	return res, nil
}

// Occurrence materializes an evaluation result into an occurrence row for
// the evaluated date. Callers must only pass results with Appears=true.
func Occurrence(task checklist.MasterTask, v checklist.Variant, date time.Time, res Result) checklist.Occurrence {
	day := checklist.DateOf(date)
	return checklist.Occurrence{
		ID:           checklist.OccurrenceID(task.ID, v.Key(), day),
		TaskID:       task.ID,
		Variant:      v,
		Date:         day,
		DueDate:      res.DueDate,
		DueTime:      res.DueTime,
		LockDate:     res.LockDate,
		Status:       checklist.StatusPending,
		IsCarryOver:  res.IsCarryOver,
		OriginalDate: res.OriginalDate,
	}
}
