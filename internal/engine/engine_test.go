package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/calendar"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

func d(s string) time.Time { return checklist.MustDate(s) }

func task(id string, freqs ...checklist.Variant) checklist.MasterTask {
	return checklist.MasterTask{
		ID:          id,
		Title:       "Task " + id,
		Active:      true,
		DueTime:     "17:00",
		Frequencies: freqs,
	}
}

func TestGenerateForDate(t *testing.T) {
	gen := New(calendar.New(nil))
	tasks := []checklist.MasterTask{
		task("daily", checklist.Variant{Kind: checklist.KindEveryDay}),
		task("weekly", checklist.Variant{Kind: checklist.KindOnceWeekly}),
	}

	// Wednesday: the daily row is new, the weekly row carries from Monday.
	batch := gen.GenerateForDate(tasks, d("2024-03-20"))

	require.NotEmpty(t, batch.RunID)
	assert.Equal(t, d("2024-03-20"), batch.Date)
	require.Len(t, batch.New, 1)
	require.Len(t, batch.CarryOver, 1)
	assert.Empty(t, batch.Errors)

	assert.Equal(t, "daily", batch.New[0].TaskID)
	assert.Equal(t, "weekly", batch.CarryOver[0].TaskID)
	assert.Equal(t, d("2024-03-18"), batch.CarryOver[0].OriginalDate)

	all := batch.All()
	require.Len(t, all, 2)
	assert.Equal(t, "daily", all[0].TaskID, "new rows precede carry-over rows")
}

func TestGenerateForDateIsDeterministic(t *testing.T) {
	gen := New(calendar.New(nil))
	tasks := []checklist.MasterTask{
		task("daily", checklist.Variant{Kind: checklist.KindEveryDay}),
		task("weekly", checklist.Variant{Kind: checklist.KindOnceWeekly}),
	}

	a := gen.GenerateForDate(tasks, d("2024-03-20"))
	b := gen.GenerateForDate(tasks, d("2024-03-20"))

	assert.NotEqual(t, a.RunID, b.RunID, "run identity differs per invocation")
	assert.Equal(t, a.New, b.New, "occurrence rows are identical across runs")
	assert.Equal(t, a.CarryOver, b.CarryOver)
}

func TestGenerateForDateSkipsInvalidTasks(t *testing.T) {
	gen := New(calendar.New(nil))
	tasks := []checklist.MasterTask{
		task("broken", checklist.Variant{Kind: checklist.KindOnceOff}), // no due date
		task("daily", checklist.Variant{Kind: checklist.KindEveryDay}),
	}

	batch := gen.GenerateForDate(tasks, d("2024-03-20"))

	require.Len(t, batch.Errors, 1)
	assert.Equal(t, ErrCodeInvalidConfig, batch.Errors[0].Code)
	assert.Equal(t, "broken", batch.Errors[0].TaskID)

	require.Len(t, batch.New, 1, "valid tasks still generate")
	assert.Equal(t, "daily", batch.New[0].TaskID)
}

func TestGenerateForDateIsolatesVariantFailures(t *testing.T) {
	gen := New(calendar.New([]time.Time{
		d("2024-03-18"), d("2024-03-19"), d("2024-03-20"),
		d("2024-03-21"), d("2024-03-22"), d("2024-03-23"),
	}))
	// The weekly variant cannot resolve in an all-holiday week; the once-off
	// variant is unaffected.
	tk := task("mixed",
		checklist.Variant{Kind: checklist.KindOnceWeekly},
		checklist.Variant{Kind: checklist.KindOnceOff},
	)
	tk.DueDate = d("2024-04-30")
	tk.CreatedAt = d("2024-03-01")

	batch := gen.GenerateForDate([]checklist.MasterTask{tk}, d("2024-03-20"))

	require.Len(t, batch.Errors, 1)
	assert.Equal(t, ErrCodeUnresolvedDate, batch.Errors[0].Code)
	assert.Equal(t, "once_weekly", batch.Errors[0].Variant)

	require.Len(t, batch.CarryOver, 1, "the once-off variant still generates")
	assert.Equal(t, checklist.KindOnceOff, batch.CarryOver[0].Variant.Kind)
}

func TestGenerateForDateHonorsVisibility(t *testing.T) {
	gen := New(calendar.New(nil))
	tk := task("scoped", checklist.Variant{Kind: checklist.KindEveryDay})
	tk.EndDate = d("2024-03-19")

	batch := gen.GenerateForDate([]checklist.MasterTask{tk}, d("2024-03-20"))
	assert.Empty(t, batch.All())
	assert.Empty(t, batch.Errors)
}

func TestRepresentative(t *testing.T) {
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

	pendingLate := checklist.Occurrence{
		TaskID: "t1", Variant: checklist.Variant{Kind: checklist.KindOnceWeekly},
		DueDate: d("2024-03-23"), DueTime: "17:00", LockDate: d("2024-03-23"),
	}
	overdueNow := checklist.Occurrence{
		TaskID: "t1", Variant: checklist.Variant{Kind: checklist.KindSpecificWeekday, Weekday: time.Wednesday},
		DueDate: d("2024-03-20"), DueTime: "09:00", LockDate: d("2024-03-23"),
	}

	t.Run("highest status wins", func(t *testing.T) {
		got, ok := Representative([]checklist.Occurrence{pendingLate, overdueNow}, now)
		require.True(t, ok)
		assert.Equal(t, overdueNow.Variant, got.Variant)
	})

	t.Run("ties break on earlier due date", func(t *testing.T) {
		pendingEarly := pendingLate
		pendingEarly.DueDate = d("2024-03-22")
		got, ok := Representative([]checklist.Occurrence{pendingLate, pendingEarly}, now)
		require.True(t, ok)
		assert.Equal(t, d("2024-03-22"), got.DueDate)
	})

	t.Run("empty input", func(t *testing.T) {
		_, ok := Representative(nil, now)
		assert.False(t, ok)
	})
}
