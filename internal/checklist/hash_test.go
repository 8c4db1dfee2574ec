package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccurrenceIDDeterministic(t *testing.T) {
	d := MustDate("2024-03-18")

	a := OccurrenceID("task-1", "every_day", d)
	b := OccurrenceID("task-1", "every_day", d)
	assert.Equal(t, a, b, "same triple must derive the same identity")
	assert.Len(t, a, 64)
}

func TestOccurrenceIDDiscriminates(t *testing.T) {
	d := MustDate("2024-03-18")
	base := OccurrenceID("task-1", "every_day", d)

	assert.NotEqual(t, base, OccurrenceID("task-2", "every_day", d))
	assert.NotEqual(t, base, OccurrenceID("task-1", "once_weekly", d))
	assert.NotEqual(t, base, OccurrenceID("task-1", "every_day", MustDate("2024-03-19")))
}

// The separator prevents boundary ambiguity between the triple's components.
func TestOccurrenceIDComponentBoundaries(t *testing.T) {
	d := MustDate("2024-03-18")
	assert.NotEqual(t,
		OccurrenceID("task", "1every_day", d),
		OccurrenceID("task1", "every_day", d),
	)
}
