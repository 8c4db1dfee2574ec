// Package loader reads master task definitions from the authoring surface's
// YAML format and normalizes them into the engine's data model.
//
// This is the boundary where legacy frequency identifiers (weekday names,
// "daily", "monthly", month-qualified forms) are mapped onto the closed
// variant set. Structurally invalid tasks are skipped and reported per-item;
// a bad task never fails the whole file.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/checklist"
)

// File is the top-level template file layout.
type File struct {
	Tasks []TaskSpec `yaml:"tasks"`
}

// TaskSpec is one master task as authored. Dates are YYYY-MM-DD strings;
// frequencies use external identifiers normalized by checklist.ParseVariant.
type TaskSpec struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Frequencies []string `yaml:"frequencies"`
	DueTime     string   `yaml:"due_time,omitempty"`
	Active      *bool    `yaml:"active,omitempty"` // default true
	CreatedAt   string   `yaml:"created_at,omitempty"`
	PublishAt   string   `yaml:"publish_at,omitempty"`
	StartDate   string   `yaml:"start_date,omitempty"`
	EndDate     string   `yaml:"end_date,omitempty"`
	DueDate     string   `yaml:"due_date,omitempty"`
}

// Problem reports one skipped task.
type Problem struct {
	TaskID string
	Err    error
}

func (p Problem) String() string {
	return fmt.Sprintf("task %s: %v", p.TaskID, p.Err)
}

// Load reads and normalizes a template file. Tasks that fail normalization
// are dropped and reported in the returned problems; only file-level
// failures (missing file, malformed YAML) return an error.
func Load(path string) ([]checklist.MasterTask, []Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read templates: %w", err)
	}
	return Parse(data)
}

// Parse normalizes template file contents. Unknown YAML fields are rejected
// to catch authoring typos.
func Parse(data []byte) ([]checklist.MasterTask, []Problem, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, nil, fmt.Errorf("parse templates: %w", err)
	}

	var (
		tasks    []checklist.MasterTask
		problems []Problem
	)
	for i, spec := range file.Tasks {
		task, err := Normalize(spec)
		if err != nil {
			id := spec.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i)
			}
			problems = append(problems, Problem{TaskID: id, Err: err})
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, problems, nil
}

// Normalize maps one authored task spec onto the engine's data model,
// validating structure and resolving legacy frequency identifiers.
func Normalize(spec TaskSpec) (checklist.MasterTask, error) {
	if spec.ID == "" {
		return checklist.MasterTask{}, fmt.Errorf("missing id")
	}

	task := checklist.MasterTask{
		ID:      spec.ID,
		Title:   spec.Title,
		DueTime: spec.DueTime,
		Active:  spec.Active == nil || *spec.Active,
	}

	for _, raw := range spec.Frequencies {
		v, err := checklist.ParseVariant(raw)
		if err != nil {
			return checklist.MasterTask{}, err
		}
		task.Frequencies = append(task.Frequencies, v)
	}

	var err error
	if task.CreatedAt, err = optionalDate(spec.CreatedAt, "created_at"); err != nil {
		return checklist.MasterTask{}, err
	}
	if task.PublishAt, err = optionalDate(spec.PublishAt, "publish_at"); err != nil {
		return checklist.MasterTask{}, err
	}
	if task.StartDate, err = optionalDate(spec.StartDate, "start_date"); err != nil {
		return checklist.MasterTask{}, err
	}
	if task.EndDate, err = optionalDate(spec.EndDate, "end_date"); err != nil {
		return checklist.MasterTask{}, err
	}
	if task.DueDate, err = optionalDate(spec.DueDate, "due_date"); err != nil {
		return checklist.MasterTask{}, err
	}

	if err := task.Validate(); err != nil {
		return checklist.MasterTask{}, err
	}
	return task, nil
}

func optionalDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := checklist.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}
