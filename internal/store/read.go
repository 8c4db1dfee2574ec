package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// ErrDuplicateLineage is returned when more than one live (non-done)
// occurrence exists for the same (task, variant, appearance date). This is a
// caller/store bug, not recoverable by the engine; it is surfaced rather
// than silently merged.
var ErrDuplicateLineage = errors.New("duplicate live occurrence lineage")

const occurrenceColumns = `id, task_id, variant, date, due_date, due_time, lock_date, status, locked, is_carry_over, original_date, completed_at`

// Get returns a single occurrence by id.
func (s *Store) Get(ctx context.Context, id string) (checklist.Occurrence, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+occurrenceColumns+` FROM occurrences WHERE id = ?
	`, id)
	occ, err := scanOccurrence(row)
	if errors.Is(err, sql.ErrNoRows) {
		return checklist.Occurrence{}, fmt.Errorf("get occurrence %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return checklist.Occurrence{}, fmt.Errorf("get occurrence: %w", err)
	}
	return occ, nil
}

// ListForDate returns all occurrence rows for one calendar date, ordered by
// task then variant for stable output.
func (s *Store) ListForDate(ctx context.Context, date time.Time) ([]checklist.Occurrence, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+occurrenceColumns+` FROM occurrences
		WHERE date = ?
		ORDER BY task_id, variant
	`, date.Format(checklist.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("list occurrences for date: %w", err)
	}
	defer rows.Close()
	return collectOccurrences(rows)
}

// ListLive returns occurrences still subject to time-driven transitions:
// everything not yet done or missed. Used by the status refresh pass, which
// recomputes each row's status from scratch.
func (s *Store) ListLive(ctx context.Context) ([]checklist.Occurrence, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+occurrenceColumns+` FROM occurrences
		WHERE status NOT IN (?, ?)
		ORDER BY date, task_id, variant
	`, string(checklist.StatusDone), string(checklist.StatusMissed))
	if err != nil {
		return nil, fmt.Errorf("list live occurrences: %w", err)
	}
	defer rows.Close()
	return collectOccurrences(rows)
}

// VerifyLineages audits the at-most-one-live-lineage invariant: no more than
// one non-done occurrence per (task, variant, date). The unique index
// enforces this for rows written through UpsertOccurrence; the audit catches
// corruption introduced outside the engine (manual edits, migrations).
// Returns ErrDuplicateLineage with key context on violation.
func (s *Store) VerifyLineages(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, variant, date, COUNT(*) AS n
		FROM occurrences
		WHERE status != ?
		GROUP BY task_id, variant, date
		HAVING COUNT(*) > 1
	`, string(checklist.StatusDone))
	if err != nil {
		return fmt.Errorf("verify lineages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID, variant, date string
		var n int
		if err := rows.Scan(&taskID, &variant, &date, &n); err != nil {
			return fmt.Errorf("verify lineages: scan: %w", err)
		}
		return fmt.Errorf("%w: task=%s variant=%s date=%s count=%d",
			ErrDuplicateLineage, taskID, variant, date, n)
	}
	return rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanOccurrence(sc scanner) (checklist.Occurrence, error) {
	var (
		occ                                 checklist.Occurrence
		variantKey, date, dueDate, origDate string
		lockDate, completedAt               sql.NullString
		statusStr                           string
		lockedInt, carryInt                 int
	)
	err := sc.Scan(
		&occ.ID, &occ.TaskID, &variantKey, &date, &dueDate, &occ.DueTime,
		&lockDate, &statusStr, &lockedInt, &carryInt, &origDate, &completedAt,
	)
	if err != nil {
		return checklist.Occurrence{}, err
	}

	if occ.Variant, err = checklist.ParseVariant(variantKey); err != nil {
		return checklist.Occurrence{}, fmt.Errorf("stored variant: %w", err)
	}
	if occ.Date, err = checklist.ParseDate(date); err != nil {
		return checklist.Occurrence{}, err
	}
	if occ.DueDate, err = checklist.ParseDate(dueDate); err != nil {
		return checklist.Occurrence{}, err
	}
	if occ.OriginalDate, err = checklist.ParseDate(origDate); err != nil {
		return checklist.Occurrence{}, err
	}
	if lockDate.Valid {
		if occ.LockDate, err = checklist.ParseDate(lockDate.String); err != nil {
			return checklist.Occurrence{}, err
		}
	}
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return checklist.Occurrence{}, fmt.Errorf("stored completed_at: %w", err)
		}
		occ.CompletedAt = t
	}
	if occ.Status, err = checklist.ParseStatus(statusStr); err != nil {
		return checklist.Occurrence{}, err
	}
	occ.Locked = lockedInt != 0
	occ.IsCarryOver = carryInt != 0
	return occ, nil
}

func collectOccurrences(rows *sql.Rows) ([]checklist.Occurrence, error) {
	var out []checklist.Occurrence
	for rows.Next() {
		occ, err := scanOccurrence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan occurrence: %w", err)
		}
		out = append(out, occ)
	}
	return out, rows.Err()
}
