// Package engine contains the generation orchestrator: for a target date and
// a set of active master tasks it runs the frequency rule evaluator across
// every configured variant, partitions the results into new versus
// carried-over occurrence sets, and reports per-item errors without aborting
// the batch.
//
// The orchestrator itself performs no persistence; it returns the full set
// so callers can upsert idempotently against the occurrence store, keyed by
// (task id, variant, date). Runner in this package is that caller.
package engine

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/calendar"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/recur"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/status"
)

// Generator evaluates frequency rules for batches of master tasks.
//
// Generation is synchronous and side-effect-free: the same inputs always
// produce the same batch, and concurrent calls need no coordination.
type Generator struct {
	cal *calendar.Calendar
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock injects the wall-clock source. Batch runs and tests use a fixed
// instant; the default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator over the given calendar snapshot.
// A nil calendar is a programming-contract violation and panics.
func New(cal *calendar.Calendar, opts ...Option) *Generator {
	if cal == nil {
		panic("engine: New called with nil calendar")
	}
	g := &Generator{
		cal: cal,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Batch is the outcome of one generation run for one date.
type Batch struct {
	// RunID correlates the log lines and item errors of one run.
	RunID string

	// Date is the generated calendar date.
	Date time.Time

	// GeneratedAt is the wall-clock instant the batch was produced, from the
	// injected clock.
	GeneratedAt time.Time

	// New holds first-appearance occurrences (is_carry_over=false).
	New []checklist.Occurrence

	// CarryOver holds continuation occurrences (is_carry_over=true).
	CarryOver []checklist.Occurrence

	// Errors holds per-item failures. A failing task or variant never
	// aborts generation for the others.
	Errors []*ItemError
}

// All returns the batch's occurrences, new rows first.
func (b Batch) All() []checklist.Occurrence {
	out := make([]checklist.Occurrence, 0, len(b.New)+len(b.CarryOver))
	out = append(out, b.New...)
	return append(out, b.CarryOver...)
}

// GenerateForDate evaluates every configured variant of every visible task
// for the target date.
//
// Structurally invalid tasks are skipped and reported. Variants whose
// holiday-adjusted dates cannot be resolved fail closed: no occurrence is
// emitted and the failure is reported per-item. Re-invoking generation for
// the same inputs yields an identical batch (occurrence identity is
// content-addressed), so callers can upsert the result idempotently.
func (g *Generator) GenerateForDate(tasks []checklist.MasterTask, date time.Time) Batch {
	day := checklist.DateOf(date)
	batch := Batch{
		RunID:       uuid.NewString(),
		Date:        day,
		GeneratedAt: g.now(),
	}

	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			batch.Errors = append(batch.Errors, newConfigError(task.ID, "", err))
			slog.Warn("task skipped: invalid configuration",
				"run_id", batch.RunID,
				"task_id", task.ID,
				"error", err,
			)
			continue
		}
		if !task.VisibleOn(day) {
			continue
		}

		for _, v := range task.Frequencies {
			res, err := recur.Evaluate(task, v, day, g.cal)
			if err != nil {
				batch.Errors = append(batch.Errors, g.itemError(task.ID, v, err))
				slog.Warn("variant skipped",
					"run_id", batch.RunID,
					"task_id", task.ID,
					"variant", v.Key(),
					"error", err,
				)
				continue
			}
			if !res.Appears {
				continue
			}

			occ := recur.Occurrence(task, v, day, res)
			if occ.IsCarryOver {
				batch.CarryOver = append(batch.CarryOver, occ)
			} else {
				batch.New = append(batch.New, occ)
			}
			slog.Debug("occurrence generated",
				"run_id", batch.RunID,
				"task_id", task.ID,
				"variant", v.Key(),
				"date", day.Format(checklist.DateLayout),
				"due_date", occ.DueDate.Format(checklist.DateLayout),
				"carry_over", occ.IsCarryOver,
			)
		}
	}

	slog.Info("generation batch complete",
		"run_id", batch.RunID,
		"date", day.Format(checklist.DateLayout),
		"new", len(batch.New),
		"carry_over", len(batch.CarryOver),
		"errors", len(batch.Errors),
	)
	return batch
}

// itemError maps evaluator failures onto the item error taxonomy.
func (g *Generator) itemError(taskID string, v checklist.Variant, err error) *ItemError {
	switch {
	case errors.Is(err, recur.ErrInvalidConfig):
		return newConfigError(taskID, v.Key(), err)
	case errors.Is(err, recur.ErrUnresolvedDate):
		return newUnresolvedError(taskID, v.Key(), err)
	default:
		return &ItemError{
			Code:    ErrCodeUnresolvedDate,
			Message: err.Error(),
			TaskID:  taskID,
			Variant: v.Key(),
		}
	}
}

// Representative picks the occurrence that represents a task on a date when
// several variants are active simultaneously: the one whose computed status
// has the highest priority at the given instant, breaking ties on the
// earlier due date. The reported due date of a multi-variant task is taken
// from this occurrence.
func Representative(occs []checklist.Occurrence, now time.Time) (checklist.Occurrence, bool) {
	if len(occs) == 0 {
		return checklist.Occurrence{}, false
	}
	best := occs[0]
	bestRank := status.Evaluate(best, now).Status.Rank()
	for _, occ := range occs[1:] {
		rank := status.Evaluate(occ, now).Status.Rank()
		switch {
		case rank > bestRank:
			best, bestRank = occ, rank
		case rank == bestRank && occ.DueDate.Before(best.DueDate):
			best = occ
		}
	}
	return best, true
}
