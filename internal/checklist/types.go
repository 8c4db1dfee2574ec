package checklist

import (
	"fmt"
	"time"
)

// MasterTask is the authoring-time definition of a recurring work item.
// Read-only to the engine; created and edited by an external surface.
type MasterTask struct {
	// ID is an opaque identifier assigned by the authoring surface.
	ID string

	// Title is the human-readable task name.
	Title string

	// Frequencies is the non-empty set of variants this task generates under.
	Frequencies []Variant

	// DueTime is the default HH:MM due time used when a variant does not
	// override it.
	DueTime string

	// Active tasks generate occurrences; inactive tasks never do.
	Active bool

	// CreatedAt is the date the task was authored. Together with PublishAt
	// and StartDate it bounds the first eligible date of once-off variants.
	CreatedAt time.Time

	// PublishAt, when set, suppresses all occurrences before this date.
	PublishAt time.Time

	// StartDate and EndDate bound the visibility window. Zero values mean
	// unbounded on that side.
	StartDate time.Time
	EndDate   time.Time

	// DueDate is required for once-off variants: the fixed calendar date the
	// single occurrence is due.
	DueDate time.Time
}

// EffectiveDueTime resolves the HH:MM due time for the given variant,
// preferring the variant override.
func (t MasterTask) EffectiveDueTime(v Variant) string {
	if v.DueTime != "" {
		return v.DueTime
	}
	return t.DueTime
}

// VisibleOn reports whether the task's visibility window admits the given
// date. Inactive tasks are visible on no date.
func (t MasterTask) VisibleOn(date time.Time) bool {
	if !t.Active {
		return false
	}
	if !t.PublishAt.IsZero() && date.Before(t.PublishAt) {
		return false
	}
	if !t.StartDate.IsZero() && date.Before(t.StartDate) {
		return false
	}
	if !t.EndDate.IsZero() && date.After(t.EndDate) {
		return false
	}
	return true
}

// Validate checks structural requirements the evaluator depends on.
// A failing task is skipped and reported, never fatal for a batch.
func (t MasterTask) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task has no id")
	}
	if len(t.Frequencies) == 0 {
		return fmt.Errorf("task %s: no frequency variants configured", t.ID)
	}
	if t.DueTime != "" {
		if _, _, err := ParseDueTime(t.DueTime); err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
	}
	for _, v := range t.Frequencies {
		if v.Kind == KindOnceOff && t.DueDate.IsZero() {
			return fmt.Errorf("task %s: once-off variant requires a due_date", t.ID)
		}
		if v.Kind == KindSpecificWeekday && (v.Weekday < time.Monday || v.Weekday > time.Saturday) {
			return fmt.Errorf("task %s: specific weekday variant must anchor Monday-Saturday, got %s", t.ID, v.Weekday)
		}
		if v.DueTime != "" {
			if _, _, err := ParseDueTime(v.DueTime); err != nil {
				return fmt.Errorf("task %s variant %s: %w", t.ID, v.Key(), err)
			}
		}
	}
	return nil
}

// Occurrence is one concrete appearance of a master task on one calendar
// date. Identity is content-addressed from (task, variant, date) so
// re-running generation for the same date is idempotent.
type Occurrence struct {
	ID      string
	TaskID  string
	Variant Variant

	// Date is the calendar day this row represents. For carry-over rows it is
	// later than OriginalDate.
	Date time.Time

	// DueDate and DueTime define the instant at which the occurrence becomes
	// overdue.
	DueDate time.Time
	DueTime string

	// LockDate is the day whose 23:59 turns an incomplete occurrence into
	// missed+locked. Zero for once-off, which never locks.
	LockDate time.Time

	Status Status
	Locked bool

	// IsCarryOver is true for rows after the original appearance day, up to
	// the variant's carry cutoff.
	IsCarryOver bool

	// OriginalDate is the first date this occurrence's lineage appeared.
	OriginalDate time.Time

	// CompletedAt records the external mark-done instant, if any.
	CompletedAt time.Time
}

// NeverLocks reports whether this occurrence's variant family is exempt from
// locking. Only once-off qualifies.
func (o Occurrence) NeverLocks() bool {
	return o.Variant.Kind == KindOnceOff
}
