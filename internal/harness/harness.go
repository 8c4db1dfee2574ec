package harness

import (
	"fmt"
	"time"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/calendar"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/engine"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/loader"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/status"
)

// Snapshot is the full schedule a scenario produces, in a shape stable
// enough for byte-for-byte golden comparison. Field order is fixed by the
// struct definitions; run identifiers are deliberately excluded.
type Snapshot struct {
	ScenarioName string        `json:"scenario_name"`
	Now          string        `json:"now"`
	Days         []DaySnapshot `json:"days"`
}

// DaySnapshot captures one generated date.
type DaySnapshot struct {
	Date        string               `json:"date"`
	Occurrences []OccurrenceSnapshot `json:"occurrences"`
	Errors      []string             `json:"errors,omitempty"`
}

// OccurrenceSnapshot captures the persisted/derived fields downstream
// consumers rely on verbatim.
type OccurrenceSnapshot struct {
	Task         string `json:"task"`
	Variant      string `json:"variant"`
	DueDate      string `json:"due_date"`
	DueTime      string `json:"due_time"`
	Status       string `json:"status"`
	Locked       bool   `json:"locked"`
	CarryOver    bool   `json:"carry_over"`
	OriginalDate string `json:"original_date"`
}

// Run executes a scenario: it builds the calendar snapshot, normalizes the
// templates, generates every date in the range, and evaluates each
// occurrence's status at the scenario instant.
func Run(s *Scenario) (*Snapshot, error) {
	holidays := make([]time.Time, 0, len(s.Holidays))
	for _, h := range s.Holidays {
		d, err := checklist.ParseDate(h)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, d)
	}
	var opts []calendar.Option
	if s.SaturdayWorking != nil && !*s.SaturdayWorking {
		opts = append(opts, calendar.WithSaturdayNonWorking())
	}
	cal := calendar.New(holidays, opts...)

	var tasks []checklist.MasterTask
	for _, spec := range s.Templates {
		task, err := loader.Normalize(spec)
		if err != nil {
			return nil, fmt.Errorf("scenario template %s: %w", spec.ID, err)
		}
		tasks = append(tasks, task)
	}

	from := checklist.MustDate(s.From)
	to := checklist.MustDate(s.To)
	now, err := time.Parse(time.RFC3339, s.Now)
	if err != nil {
		return nil, err
	}

	gen := engine.New(cal)
	snapshot := &Snapshot{
		ScenarioName: s.Name,
		Now:          s.Now,
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		batch := gen.GenerateForDate(tasks, d)

		day := DaySnapshot{
			Date:        d.Format(checklist.DateLayout),
			Occurrences: make([]OccurrenceSnapshot, 0, len(batch.New)+len(batch.CarryOver)),
		}
		for _, occ := range batch.All() {
			decision := status.Evaluate(occ, now)
			day.Occurrences = append(day.Occurrences, OccurrenceSnapshot{
				Task:         occ.TaskID,
				Variant:      occ.Variant.Key(),
				DueDate:      occ.DueDate.Format(checklist.DateLayout),
				DueTime:      occ.DueTime,
				Status:       string(decision.Status),
				Locked:       decision.Locked,
				CarryOver:    occ.IsCarryOver,
				OriginalDate: occ.OriginalDate.Format(checklist.DateLayout),
			})
		}
		for _, ie := range batch.Errors {
			day.Errors = append(day.Errors, ie.Error())
		}
		snapshot.Days = append(snapshot.Days, day)
	}
	return snapshot, nil
}
