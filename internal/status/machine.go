// Package status implements the time-driven lifecycle state machine for
// occurrences.
//
// Evaluate is a pure function of (occurrence, now): re-running it at any
// later instant is safe and only ever moves the status forward
// (pending → overdue → missed). The sole exception is the externally
// triggered done transition, which the machine reads but never sets.
package status

import (
	"time"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// Decision is the computed lifecycle state for an occurrence at one instant.
type Decision struct {
	Status checklist.Status
	Locked bool
}

// Evaluate computes the status and lock flag an occurrence should carry at
// the given instant.
//
// Decision order:
//  1. done is terminal — returned unchanged, lock flag untouched.
//  2. at or past 23:59 on the lock date, the occurrence is missed and
//     locked. Once-off occurrences have no lock date and never reach this.
//  3. at or past the due instant (due time on the due date, or any time on a
//     later day), the occurrence is overdue.
//  4. otherwise pending.
//
// Dates carry their own location; callers supply now in the business
// timezone for the comparisons to be meaningful.
func Evaluate(occ checklist.Occurrence, now time.Time) Decision {
	if occ.Status == checklist.StatusDone {
		return Decision{Status: checklist.StatusDone, Locked: occ.Locked}
	}

	if !occ.LockDate.IsZero() && !occ.NeverLocks() {
		lockAt := checklist.EndOfDay(occ.LockDate)
		if !now.Before(lockAt) {
			return Decision{Status: checklist.StatusMissed, Locked: true}
		}
	}

	if dueAt, err := checklist.AtTime(occ.DueDate, occ.DueTime); err == nil {
		if !now.Before(dueAt) {
			return Decision{Status: checklist.StatusOverdue, Locked: false}
		}
	} else if now.After(checklist.EndOfDay(occ.DueDate)) {
		// Malformed due time: fall back to day granularity rather than
		// leaving the occurrence pending forever.
		return Decision{Status: checklist.StatusOverdue, Locked: false}
	}

	return Decision{Status: checklist.StatusPending, Locked: false}
}

// Progresses reports whether moving from to next is a legal forward step for
// the time-driven machine. Used by callers to assert monotonicity before
// persisting an update.
func Progresses(from, to checklist.Status) bool {
	if from == checklist.StatusDone {
		return false
	}
	return to.Rank() >= from.Rank()
}
