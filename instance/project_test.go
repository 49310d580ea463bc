package instance

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"

	"github.com/tasknote/taskcal/task"
)

func baseTask() *task.Task {
	return &task.Task{
		ID:         "t1",
		Title:      "standup",
		Note:       "daily sync",
		Date:       "2025-01-01",
		Time:       "09:00",
		Priority:   task.PriorityMedium,
		CategoryID: "work",
		Repeat: &task.Rule{
			Enabled: true,
			Type:    task.KindDaily,
		},
	}
}

func TestProjectInheritsTaskFields(t *testing.T) {
	inst := Project(baseTask(), "2025-01-15")

	assert.Equal(t, "t1_2025-01-15", inst.InstanceID)
	assert.Equal(t, "t1_2025-01-15", inst.Task.ID)
	assert.Equal(t, "t1", inst.OriginalID)
	assert.True(t, inst.IsRepeated)
	assert.Equal(t, "2025-01-15", inst.Date)
	assert.Equal(t, "09:00", inst.Time)
	assert.Equal(t, "daily sync", inst.Note)
	assert.Equal(t, task.PriorityMedium, inst.Priority)
	assert.False(t, inst.Completed)
}

func TestProjectOverrideWins(t *testing.T) {
	tk := baseTask()
	tk.Repeat.Overrides = map[string]task.Override{
		"2025-01-15": {
			Date:     mo.Some("2025-01-16"),
			Time:     mo.Some("14:00"),
			Note:     mo.Some("moved"),
			Priority: mo.Some(task.PriorityHigh),
		},
	}

	inst := Project(tk, "2025-01-15")
	assert.Equal(t, "2025-01-16", inst.Date)
	assert.Equal(t, "14:00", inst.Time)
	assert.Equal(t, "moved", inst.Note)
	assert.Equal(t, task.PriorityHigh, inst.Priority)
	// The key stays on the canonical date even though the display date moved.
	assert.Equal(t, "t1_2025-01-15", inst.InstanceID)
}

func TestProjectCompletionKeyStability(t *testing.T) {
	tk := baseTask()
	tk.Repeat.Overrides = map[string]task.Override{
		"2025-01-15": {Date: mo.Some("2025-01-20")},
	}
	tk.Repeat.CompletedDates = []string{"2025-01-15"}

	inst := Project(tk, "2025-01-15")
	assert.True(t, inst.Completed, "completion must be tracked under the canonical date")
	assert.Equal(t, "2025-01-20", inst.Date)

	// Marking the overridden date complete instead must not count.
	tk.Repeat.CompletedDates = []string{"2025-01-20"}
	assert.False(t, Project(tk, "2025-01-15").Completed)
}

func TestProjectSpanPreservation(t *testing.T) {
	tk := baseTask()
	tk.EndDate = "2025-01-03" // two-day span from the start date

	inst := Project(tk, "2025-02-10")
	assert.Equal(t, "2025-02-12", inst.EndDate)

	// The span follows the displayed date when the override moves it.
	tk.Repeat.Overrides = map[string]task.Override{
		"2025-02-10": {Date: mo.Some("2025-02-11")},
	}
	assert.Equal(t, "2025-02-13", Project(tk, "2025-02-10").EndDate)

	// An explicit end-date override beats span preservation.
	tk.Repeat.Overrides["2025-02-10"] = task.Override{EndDate: mo.Some("2025-02-20")}
	assert.Equal(t, "2025-02-20", Project(tk, "2025-02-10").EndDate)
}

func TestProjectNoEndDateWithoutSpan(t *testing.T) {
	inst := Project(baseTask(), "2025-01-15")
	assert.Equal(t, "", inst.EndDate)
}

func TestProjectCompletedTimeResolution(t *testing.T) {
	tk := baseTask()
	tk.Repeat.CompletedDates = []string{"2025-01-15"}

	t.Run("synthesized from the displayed date", func(t *testing.T) {
		assert.Equal(t, "2025-01-15 00:00", Project(tk, "2025-01-15").CompletedTime)
	})

	t.Run("stored map beats synthesis", func(t *testing.T) {
		tk.Repeat.CompletedTimes = map[string]string{"2025-01-15": "2025-01-15 18:22"}
		assert.Equal(t, "2025-01-15 18:22", Project(tk, "2025-01-15").CompletedTime)
	})

	t.Run("override timestamp beats the map", func(t *testing.T) {
		tk.Repeat.Overrides = map[string]task.Override{
			"2025-01-15": {CompletedTime: mo.Some("2025-01-15 20:00")},
		}
		assert.Equal(t, "2025-01-15 20:00", Project(tk, "2025-01-15").CompletedTime)
	})
}
