package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/status"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/store"
)

// Runner composes the generator with the occurrence store: it upserts
// generation batches idempotently and runs the recurring status refresh
// pass. Both operations are re-entrant and restartable at any point.
type Runner struct {
	gen *Generator
	st  *store.Store
}

// NewRunner wires a generator to an occurrence store.
func NewRunner(gen *Generator, st *store.Store) *Runner {
	return &Runner{gen: gen, st: st}
}

// GenerateReport summarizes one generate-and-persist run.
type GenerateReport struct {
	RunID     string       `json:"run_id"`
	Date      string       `json:"date"`
	New       int          `json:"new"`
	CarryOver int          `json:"carry_over"`
	Inserted  int          `json:"inserted"`
	Existing  int          `json:"existing"`
	Errors    []*ItemError `json:"errors,omitempty"`
}

// GenerateForDate generates occurrences for the date and upserts them.
// Rows that already exist are counted but left untouched, so invoking the
// run twice yields the same stored occurrence set as invoking it once.
func (r *Runner) GenerateForDate(ctx context.Context, tasks []checklist.MasterTask, date time.Time) (GenerateReport, error) {
	batch := r.gen.GenerateForDate(tasks, date)
	report := GenerateReport{
		RunID:     batch.RunID,
		Date:      batch.Date.Format(checklist.DateLayout),
		New:       len(batch.New),
		CarryOver: len(batch.CarryOver),
		Errors:    batch.Errors,
	}

	for _, occ := range batch.All() {
		inserted, err := r.st.UpsertOccurrence(ctx, occ)
		if err != nil {
			return report, fmt.Errorf("persist batch %s: %w", batch.RunID, err)
		}
		if inserted {
			report.Inserted++
		} else {
			report.Existing++
		}
	}

	slog.Info("generation persisted",
		"run_id", batch.RunID,
		"date", report.Date,
		"inserted", report.Inserted,
		"existing", report.Existing,
	)
	return report, nil
}

// RefreshReport summarizes one status refresh pass.
type RefreshReport struct {
	Evaluated int `json:"evaluated"`
	Updated   int `json:"updated"`
	Locked    int `json:"locked"`
}

// RefreshStatuses recomputes the status of every live occurrence from
// scratch at the given instant and persists the rows that changed.
//
// The state machine is monotonic, so successive passes have no ordering
// dependency: a later now can only move statuses forward. Regressions would
// indicate store corruption and are skipped and logged rather than written.
func (r *Runner) RefreshStatuses(ctx context.Context, now time.Time) (RefreshReport, error) {
	occs, err := r.st.ListLive(ctx)
	if err != nil {
		return RefreshReport{}, fmt.Errorf("refresh statuses: %w", err)
	}

	report := RefreshReport{Evaluated: len(occs)}
	for _, occ := range occs {
		d := status.Evaluate(occ, now)
		if d.Status == occ.Status && d.Locked == occ.Locked {
			continue
		}
		if !status.Progresses(occ.Status, d.Status) {
			slog.Error("status regression skipped",
				"occurrence_id", occ.ID,
				"task_id", occ.TaskID,
				"from", occ.Status,
				"to", d.Status,
			)
			continue
		}
		if err := r.st.UpdateStatus(ctx, occ.ID, d.Status, d.Locked); err != nil {
			return report, fmt.Errorf("refresh statuses: %w", err)
		}
		report.Updated++
		if d.Locked && !occ.Locked {
			report.Locked++
		}
	}

	slog.Info("status refresh complete",
		"evaluated", report.Evaluated,
		"updated", report.Updated,
		"locked", report.Locked,
	)
	return report, nil
}
