package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleOccurrence(taskID, date string) checklist.Occurrence {
	d := checklist.MustDate(date)
	v := checklist.Variant{Kind: checklist.KindEveryDay}
	return checklist.Occurrence{
		ID:           checklist.OccurrenceID(taskID, v.Key(), d),
		TaskID:       taskID,
		Variant:      v,
		Date:         d,
		DueDate:      d,
		DueTime:      "17:00",
		LockDate:     d,
		Status:       checklist.StatusPending,
		OriginalDate: d,
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestUpsertOccurrenceIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	occ := sampleOccurrence("t1", "2024-03-18")

	inserted, err := s.UpsertOccurrence(ctx, occ)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.UpsertOccurrence(ctx, occ)
	require.NoError(t, err)
	assert.False(t, inserted, "second upsert of the same key is a no-op")

	// An existing row's status survives regeneration.
	require.NoError(t, s.UpdateStatus(ctx, occ.ID, checklist.StatusOverdue, false))
	_, err = s.UpsertOccurrence(ctx, occ)
	require.NoError(t, err)

	got, err := s.Get(ctx, occ.ID)
	require.NoError(t, err)
	assert.Equal(t, checklist.StatusOverdue, got.Status)
}

func TestRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	occ := sampleOccurrence("t1", "2024-03-18")
	occ.Variant = checklist.Variant{Kind: checklist.KindSpecificWeekday, Weekday: time.Wednesday}
	occ.ID = checklist.OccurrenceID(occ.TaskID, occ.Variant.Key(), occ.Date)
	occ.DueDate = checklist.MustDate("2024-03-23")
	occ.LockDate = checklist.MustDate("2024-03-23")
	occ.IsCarryOver = true
	occ.OriginalDate = checklist.MustDate("2024-03-20")

	_, err := s.UpsertOccurrence(ctx, occ)
	require.NoError(t, err)

	got, err := s.Get(ctx, occ.ID)
	require.NoError(t, err)
	assert.Equal(t, occ, got)
}

func TestRoundTripNullLockDate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	occ := sampleOccurrence("t1", "2024-03-18")
	occ.Variant = checklist.Variant{Kind: checklist.KindOnceOff}
	occ.ID = checklist.OccurrenceID(occ.TaskID, occ.Variant.Key(), occ.Date)
	occ.DueDate = checklist.MustDate("2024-04-30")
	occ.LockDate = time.Time{}

	_, err := s.UpsertOccurrence(ctx, occ)
	require.NoError(t, err)

	got, err := s.Get(ctx, occ.ID)
	require.NoError(t, err)
	assert.True(t, got.LockDate.IsZero(), "once-off rows carry no lock date")
	assert.True(t, got.NeverLocks())
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusNotFound(t *testing.T) {
	s := openTestStore(t)

	err := s.UpdateStatus(context.Background(), "no-such-id", checklist.StatusOverdue, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkDone(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, time.March, 18, 15, 4, 0, 0, time.UTC)

	occ := sampleOccurrence("t1", "2024-03-18")
	_, err := s.UpsertOccurrence(ctx, occ)
	require.NoError(t, err)

	require.NoError(t, s.MarkDone(ctx, occ.ID, now))

	got, err := s.Get(ctx, occ.ID)
	require.NoError(t, err)
	assert.Equal(t, checklist.StatusDone, got.Status)
	assert.Equal(t, now, got.CompletedAt)

	// Completing again is a no-op, not an error.
	require.NoError(t, s.MarkDone(ctx, occ.ID, now.Add(time.Hour)))
	got, err = s.Get(ctx, occ.ID)
	require.NoError(t, err)
	assert.Equal(t, now, got.CompletedAt, "first completion instant is preserved")
}

func TestMarkDoneRefusesLocked(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	occ := sampleOccurrence("t1", "2024-03-18")
	_, err := s.UpsertOccurrence(ctx, occ)
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ctx, occ.ID, checklist.StatusMissed, true))

	err = s.MarkDone(ctx, occ.ID, time.Now())
	assert.ErrorIs(t, err, ErrLocked)
}

func TestMarkDoneNotFound(t *testing.T) {
	s := openTestStore(t)

	err := s.MarkDone(context.Background(), "no-such-id", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForDate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"b-task", "a-task"} {
		_, err := s.UpsertOccurrence(ctx, sampleOccurrence(id, "2024-03-18"))
		require.NoError(t, err)
	}
	_, err := s.UpsertOccurrence(ctx, sampleOccurrence("a-task", "2024-03-19"))
	require.NoError(t, err)

	got, err := s.ListForDate(ctx, checklist.MustDate("2024-03-18"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a-task", got[0].TaskID, "ordered by task id")
	assert.Equal(t, "b-task", got[1].TaskID)
}

func TestListLive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	pending := sampleOccurrence("t-pending", "2024-03-18")
	done := sampleOccurrence("t-done", "2024-03-18")
	missed := sampleOccurrence("t-missed", "2024-03-18")
	for _, occ := range []checklist.Occurrence{pending, done, missed} {
		_, err := s.UpsertOccurrence(ctx, occ)
		require.NoError(t, err)
	}
	require.NoError(t, s.MarkDone(ctx, done.ID, time.Now()))
	require.NoError(t, s.UpdateStatus(ctx, missed.ID, checklist.StatusMissed, true))

	got, err := s.ListLive(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t-pending", got[0].TaskID)
}

func TestVerifyLineages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Carry-over rows share a lineage's original date but occupy distinct
	// dates; they must not trip the audit.
	first := sampleOccurrence("t1", "2024-03-18")
	carry := sampleOccurrence("t1", "2024-03-19")
	carry.IsCarryOver = true
	carry.OriginalDate = first.Date
	for _, occ := range []checklist.Occurrence{first, carry} {
		_, err := s.UpsertOccurrence(ctx, occ)
		require.NoError(t, err)
	}

	assert.NoError(t, s.VerifyLineages(ctx))
}
