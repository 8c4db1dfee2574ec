// Package config loads runtime settings for the checklist engine from a
// YAML file: the business calendar data, store path, timezone, and
// scheduler times.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/calendar"
	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// Duration wraps time.Duration so YAML values like "15m" decode directly.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config keeps runtime settings for the engine and its batch jobs.
type Config struct {
	// Timezone is the business timezone all date arithmetic and scheduled
	// jobs run in.
	Timezone string `yaml:"timezone"`

	// Templates is the path to the master task definitions file.
	Templates string `yaml:"templates"`

	Store struct {
		// Path is the SQLite database location.
		Path string `yaml:"path"`
	} `yaml:"store"`

	Calendar struct {
		// SaturdayWorking controls whether Saturdays count as working days.
		// Sundays are always non-working.
		SaturdayWorking bool `yaml:"saturday_working"`

		// Holidays lists non-working dates as YYYY-MM-DD strings.
		Holidays []string `yaml:"holidays"`
	} `yaml:"calendar"`

	Scheduler struct {
		// GenerateAt is the HH:MM local time of the daily generation job.
		GenerateAt string `yaml:"generate_at"`

		// RefreshEvery is the interval between status refresh passes.
		RefreshEvery Duration `yaml:"refresh_every"`
	} `yaml:"scheduler"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	var c Config
	c.Timezone = "UTC"
	c.Templates = "templates.yaml"
	c.Store.Path = "checklist.db"
	c.Calendar.SaturdayWorking = true
	c.Scheduler.GenerateAt = "00:05"
	c.Scheduler.RefreshEvery = Duration(time.Hour)
	return c
}

// Load reads a YAML configuration file over the defaults. Unknown fields are
// rejected to catch typos early.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if _, _, err := checklist.ParseDueTime(c.Scheduler.GenerateAt); err != nil {
		return fmt.Errorf("scheduler.generate_at: %w", err)
	}
	if c.Scheduler.RefreshEvery <= 0 {
		return fmt.Errorf("scheduler.refresh_every must be positive")
	}
	for _, h := range c.Calendar.Holidays {
		if _, err := checklist.ParseDate(h); err != nil {
			return fmt.Errorf("calendar.holidays: %w", err)
		}
	}
	return nil
}

// Location resolves the configured business timezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// BuildCalendar materializes the immutable calendar snapshot for one run.
func (c Config) BuildCalendar() (*calendar.Calendar, error) {
	holidays := make([]time.Time, 0, len(c.Calendar.Holidays))
	for _, h := range c.Calendar.Holidays {
		d, err := checklist.ParseDate(h)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, d)
	}

	var opts []calendar.Option
	if !c.Calendar.SaturdayWorking {
		opts = append(opts, calendar.WithSaturdayNonWorking())
	}
	return calendar.New(holidays, opts...), nil
}
