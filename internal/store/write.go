package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// ErrLocked is returned when a completion is attempted on a locked
// occurrence. Locked occurrences cannot be completed by normal means.
var ErrLocked = errors.New("occurrence is locked")

// ErrNotFound is returned when an occurrence id does not exist.
var ErrNotFound = errors.New("occurrence not found")

// UpsertOccurrence inserts an occurrence row, keyed by
// (task_id, variant, date). Uses ON CONFLICT DO NOTHING for idempotency:
// re-running generation for an already-generated date is a no-op for rows
// that exist. Returns whether a new row was inserted.
//
// Existing rows are never overwritten — their status and lock flag belong to
// the status refresh pass and the external completion action.
func (s *Store) UpsertOccurrence(ctx context.Context, occ checklist.Occurrence) (inserted bool, err error) {
	var lockDate any
	if !occ.LockDate.IsZero() {
		lockDate = occ.LockDate.Format(checklist.DateLayout)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO occurrences
		(id, task_id, variant, date, due_date, due_time, lock_date, status, locked, is_carry_over, original_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(task_id, variant, date) DO NOTHING
	`,
		occ.ID,
		occ.TaskID,
		occ.Variant.Key(),
		occ.Date.Format(checklist.DateLayout),
		occ.DueDate.Format(checklist.DateLayout),
		occ.DueTime,
		lockDate,
		string(occ.Status),
		boolToInt(occ.Locked),
		boolToInt(occ.IsCarryOver),
		occ.OriginalDate.Format(checklist.DateLayout),
	)
	if err != nil {
		return false, fmt.Errorf("upsert occurrence: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upsert occurrence: rows affected: %w", err)
	}
	return rows > 0, nil
}

// UpdateStatus persists a status/lock decision computed by the state
// machine. The caller is responsible for only ever moving status forward.
func (s *Store) UpdateStatus(ctx context.Context, id string, st checklist.Status, locked bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE occurrences SET status = ?, locked = ? WHERE id = ?
	`, string(st), boolToInt(locked), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update status %s: %w", id, ErrNotFound)
	}
	return nil
}

// MarkDone records the external completion action: the only path to the done
// status. Refuses locked occurrences; already-done occurrences are a no-op
// (the transition is idempotent).
func (s *Store) MarkDone(ctx context.Context, id string, now time.Time) error {
	occ, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if occ.Status == checklist.StatusDone {
		return nil
	}
	if occ.Locked {
		return fmt.Errorf("mark done %s: %w", id, ErrLocked)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE occurrences SET status = ?, completed_at = ? WHERE id = ?
	`, string(checklist.StatusDone), now.UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("mark done: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
