package checklist

import "fmt"

// Status is the lifecycle state of an occurrence.
//
// Time-driven progression is strictly forward:
//
//	pending → overdue → missed (locked)
//
// done is reachable from any non-terminal state via the external completion
// action only, and is terminal once set.
type Status string

const (
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
	StatusMissed  Status = "missed"
	StatusDone    Status = "done"
)

// statusRank orders statuses for monotonicity checks and multi-variant
// priority merging. Higher rank wins when a task's variants disagree.
var statusRank = map[Status]int{
	StatusPending: 0,
	StatusOverdue: 1,
	StatusMissed:  2,
	StatusDone:    3,
}

// Rank returns the ordering position of the status. Unknown statuses rank
// below pending so they never win a priority merge.
func (s Status) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// Terminal reports whether the status admits no further time-driven
// transitions. done is always terminal; missed is terminal for every family
// except once-off, which never reaches it.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusMissed
}

// ParseStatus validates an external status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusRank[st]; !ok {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}
