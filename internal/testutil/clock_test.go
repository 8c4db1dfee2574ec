package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	start := time.Date(2024, time.March, 18, 9, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	assert.Equal(t, start, clock.Now())

	clock.Advance(2 * time.Hour)
	assert.Equal(t, start.Add(2*time.Hour), clock.Now())

	later := time.Date(2024, time.March, 19, 0, 0, 0, 0, time.UTC)
	clock.Set(later)
	assert.Equal(t, later, clock.Now())
}

func TestFixedClockRejectsRegression(t *testing.T) {
	clock := NewFixedClock(time.Date(2024, time.March, 18, 9, 0, 0, 0, time.UTC))
	assert.Panics(t, func() { clock.Advance(-time.Second) })
}
