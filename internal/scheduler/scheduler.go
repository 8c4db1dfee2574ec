// Package scheduler runs the engine's recurring batch jobs on a cron
// schedule: the daily generation run and the periodic status refresh pass.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// Scheduler wraps cron-based jobs in the business timezone.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler whose jobs fire in the given location.
func New(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
	}
}

// Daily registers a job at the given HH:MM time every day.
func (s *Scheduler) Daily(hhmm string, job func()) (cron.EntryID, error) {
	spec, err := dailySpec(hhmm)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

// Every registers a job at the given interval.
func (s *Scheduler) Every(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	return s.cron.AddFunc(fmt.Sprintf("@every %s", interval), job)
}

// Start begins running registered jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// dailySpec converts an HH:MM time into a cron expression.
func dailySpec(hhmm string) (string, error) {
	hour, minute, err := checklist.ParseDueTime(hhmm)
	if err != nil {
		return "", err
	}
	// cron format: minute hour dom month dow
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
