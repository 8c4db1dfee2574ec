package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/calendar"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

func d(s string) time.Time { return checklist.MustDate(s) }

func holidayCal(dates ...string) *calendar.Calendar {
	hs := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		hs = append(hs, d(s))
	}
	return calendar.New(hs)
}

func baseTask() checklist.MasterTask {
	return checklist.MasterTask{
		ID:      "t1",
		Title:   "Test task",
		Active:  true,
		DueTime: "17:00",
	}
}

func TestEvaluateUnknownKind(t *testing.T) {
	_, err := Evaluate(baseTask(), checklist.Variant{Kind: "hourly"}, d("2024-03-18"), calendar.New(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEvaluateNilCalendarPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = Evaluate(baseTask(), checklist.Variant{Kind: checklist.KindEveryDay}, d("2024-03-18"), nil)
	})
}

func TestEvaluateDueTimeResolution(t *testing.T) {
	task := baseTask()
	cal := calendar.New(nil)

	res, err := Evaluate(task, checklist.Variant{Kind: checklist.KindEveryDay}, d("2024-03-18"), cal)
	require.NoError(t, err)
	assert.Equal(t, "17:00", res.DueTime, "task default applies")

	res, err = Evaluate(task, checklist.Variant{Kind: checklist.KindEveryDay, DueTime: "08:30"}, d("2024-03-18"), cal)
	require.NoError(t, err)
	assert.Equal(t, "08:30", res.DueTime, "variant override wins")
}

func TestEveryDay(t *testing.T) {
	task := baseTask()
	v := checklist.Variant{Kind: checklist.KindEveryDay}

	t.Run("weekday", func(t *testing.T) {
		res, err := Evaluate(task, v, d("2024-03-18"), calendar.New(nil))
		require.NoError(t, err)
		require.True(t, res.Appears)
		assert.Equal(t, d("2024-03-18"), res.DueDate)
		assert.Equal(t, d("2024-03-18"), res.LockDate)
		assert.False(t, res.IsCarryOver, "every-day occurrences never carry")
		assert.Equal(t, d("2024-03-18"), res.OriginalDate)
	})

	t.Run("saturday", func(t *testing.T) {
		res, err := Evaluate(task, v, d("2024-03-23"), calendar.New(nil))
		require.NoError(t, err)
		assert.True(t, res.Appears, "Saturday is an appearance day for every-day tasks")
	})

	t.Run("sunday", func(t *testing.T) {
		res, err := Evaluate(task, v, d("2024-03-24"), calendar.New(nil))
		require.NoError(t, err)
		assert.False(t, res.Appears)
	})

	t.Run("holiday", func(t *testing.T) {
		res, err := Evaluate(task, v, d("2024-03-18"), holidayCal("2024-03-18"))
		require.NoError(t, err)
		assert.False(t, res.Appears)
	})
}

func TestOnceOff(t *testing.T) {
	task := baseTask()
	task.CreatedAt = d("2024-03-01")
	task.PublishAt = d("2024-03-10")
	task.DueDate = d("2024-04-30")
	v := checklist.Variant{Kind: checklist.KindOnceOff}
	cal := calendar.New(nil)

	t.Run("before first eligible date", func(t *testing.T) {
		res, err := Evaluate(task, v, d("2024-03-09"), cal)
		require.NoError(t, err)
		assert.False(t, res.Appears)
	})

	t.Run("first eligible date", func(t *testing.T) {
		res, err := Evaluate(task, v, d("2024-03-10"), cal)
		require.NoError(t, err)
		require.True(t, res.Appears)
		assert.Equal(t, d("2024-04-30"), res.DueDate)
		assert.True(t, res.LockDate.IsZero(), "once-off never locks")
		assert.False(t, res.IsCarryOver)
		assert.Equal(t, d("2024-03-10"), res.OriginalDate)
	})

	t.Run("carries forever", func(t *testing.T) {
		res, err := Evaluate(task, v, d("2025-01-01"), cal)
		require.NoError(t, err)
		require.True(t, res.Appears)
		assert.True(t, res.IsCarryOver)
		assert.Equal(t, d("2024-03-10"), res.OriginalDate)
		assert.True(t, res.LockDate.IsZero())
	})

	t.Run("missing due date", func(t *testing.T) {
		bad := baseTask()
		_, err := Evaluate(bad, v, d("2024-03-18"), cal)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestOccurrenceMaterialization(t *testing.T) {
	task := baseTask()
	v := checklist.Variant{Kind: checklist.KindEveryDay}
	day := d("2024-03-18")

	res, err := Evaluate(task, v, day, calendar.New(nil))
	require.NoError(t, err)
	require.True(t, res.Appears)

	occ := Occurrence(task, v, day, res)
	assert.Equal(t, checklist.OccurrenceID("t1", "every_day", day), occ.ID)
	assert.Equal(t, "t1", occ.TaskID)
	assert.Equal(t, day, occ.Date)
	assert.Equal(t, checklist.StatusPending, occ.Status)
	assert.Equal(t, "17:00", occ.DueTime)

	again := Occurrence(task, v, day, res)
	assert.Equal(t, occ, again, "regeneration derives an identical row")
}
