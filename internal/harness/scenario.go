// Package harness runs declarative schedule scenarios for conformance
// testing: a scenario fixes a calendar, a template set, a date range, and an
// evaluation instant, and the harness produces the exact occurrence schedule
// the engine generates across that range. Golden files pin the expected
// schedules byte-for-byte.
package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/loader"
)

// Scenario defines one schedule conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// SaturdayWorking controls the calendar's Saturday rule. Defaults to
	// true, matching the reference configuration.
	SaturdayWorking *bool `yaml:"saturday_working,omitempty"`

	// Holidays lists non-working dates as YYYY-MM-DD strings.
	Holidays []string `yaml:"holidays,omitempty"`

	// Templates holds the master task definitions in the authoring format.
	Templates []loader.TaskSpec `yaml:"templates"`

	// From and To bound the generated date range, inclusive.
	From string `yaml:"from"`
	To   string `yaml:"to"`

	// Now is the RFC 3339 instant statuses are evaluated at.
	Now string `yaml:"now"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected to catch typos.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and well-formed.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Templates) == 0 {
		return fmt.Errorf("templates list is required and must be non-empty")
	}

	from, err := checklist.ParseDate(s.From)
	if err != nil {
		return fmt.Errorf("from: %w", err)
	}
	to, err := checklist.ParseDate(s.To)
	if err != nil {
		return fmt.Errorf("to: %w", err)
	}
	if to.Before(from) {
		return fmt.Errorf("to %s precedes from %s", s.To, s.From)
	}

	if s.Now == "" {
		return fmt.Errorf("now is required")
	}
	if _, err := time.Parse(time.RFC3339, s.Now); err != nil {
		return fmt.Errorf("now: %w", err)
	}

	for _, h := range s.Holidays {
		if _, err := checklist.ParseDate(h); err != nil {
			return fmt.Errorf("holidays: %w", err)
		}
	}
	return nil
}
