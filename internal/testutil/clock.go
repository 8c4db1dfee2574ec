// Package testutil provides shared test helpers for the engine packages.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a thread-safe wall clock pinned to an injectable instant.
//
// The engine never reads time internally — "now" is always supplied by the
// caller — so tests pin a FixedClock and pass clock.Now to exercise
// time-sensitive transitions deterministically.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock pinned to the given instant.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the pinned instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set pins the clock to a new instant.
func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by d. Negative durations are rejected so a
// test cannot accidentally regress time and mask a monotonicity bug.
func (c *FixedClock) Advance(d time.Duration) {
	if d < 0 {
		panic("testutil: FixedClock cannot move backward")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
