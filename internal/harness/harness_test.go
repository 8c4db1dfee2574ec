package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamhighcoder/Intranet-Portal-sub001/internal/loader"
)

func TestScenariosAgainstGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenario files found")

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte(`name: bad
description: has a typo field
templatez:
  - id: t1
from: "2024-03-18"
to: "2024-03-18"
now: "2024-03-18T09:00:00Z"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenarioValidation(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "scenario.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("range inverted", func(t *testing.T) {
		_, err := LoadScenario(write(t, `name: inverted
description: to precedes from
templates:
  - id: t1
    title: T1
    frequencies: [every_day]
from: "2024-03-20"
to: "2024-03-18"
now: "2024-03-18T09:00:00Z"
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "precedes")
	})

	t.Run("missing now", func(t *testing.T) {
		_, err := LoadScenario(write(t, `name: no-now
description: missing evaluation instant
templates:
  - id: t1
    title: T1
    frequencies: [every_day]
from: "2024-03-18"
to: "2024-03-18"
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "now is required")
	})
}

func TestRunReportsBadTemplate(t *testing.T) {
	s := &Scenario{
		Name:        "bad-template",
		Description: "once-off without a due date is a template error",
		Templates: []loader.TaskSpec{
			{
				ID:          "orphan",
				Title:       "Orphan once-off",
				Frequencies: []string{"once_off"},
			},
		},
		From: "2024-03-18",
		To:   "2024-03-18",
		Now:  "2024-03-18T09:00:00Z",
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orphan")
}
