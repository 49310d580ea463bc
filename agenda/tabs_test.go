package agenda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknote/taskcal/task"
)

const today = "2025-01-10"

func TestFilterByTabOverdueAndToday(t *testing.T) {
	a := New(Options{})
	tasks := []*task.Task{
		{ID: "overdue", Date: "2025-01-08"},
		{ID: "due-today", Date: today},
		{ID: "done", Date: "2025-01-08", Completed: true},
		{ID: "future", Date: "2025-01-20"},
	}

	overdue := a.ClassifyForTab(tasks, today, TabOverdue, false)
	require.Len(t, overdue, 1)
	assert.Equal(t, "overdue", overdue[0].OriginalID)

	// The today view carries overdue work too; only future and completed
	// tasks stay out.
	todays := a.ClassifyForTab(tasks, today, TabToday, false)
	require.Len(t, todays, 2)
	assert.Equal(t, "overdue", todays[0].OriginalID)
	assert.Equal(t, "due-today", todays[1].OriginalID)
}

func TestFilterByTabOverdueEndTimeFallback(t *testing.T) {
	// A span with a start time but no end time keeps that time for the
	// overdue check; an empty end time read as midnight would, under a
	// 06:00 day start, push the logical end a day early.
	a := New(Options{DayStartOffsetMinutes: 360})
	span := &task.Task{ID: "s1", Date: "2025-01-07", Time: "09:00", EndDate: "2025-01-09"}

	assert.Empty(t, a.ClassifyForTab([]*task.Task{span}, "2025-01-09", TabOverdue, false))
	assert.Len(t, a.ClassifyForTab([]*task.Task{span}, "2025-01-10", TabOverdue, false), 1)
}

func TestFilterByTabSpanningTask(t *testing.T) {
	a := New(Options{})
	span := &task.Task{ID: "span", Date: "2025-01-08", EndDate: "2025-01-12"}

	// Inside its span the task is due today, and not overdue: its end has
	// not passed yet.
	assert.Len(t, a.ClassifyForTab([]*task.Task{span}, today, TabToday, false), 1)
	assert.Empty(t, a.ClassifyForTab([]*task.Task{span}, today, TabOverdue, false))

	// Each spanned day completes independently; marking today hides the
	// task from today only.
	span.DailyCompletions = map[string]bool{today: true}
	assert.Empty(t, a.ClassifyForTab([]*task.Task{span}, today, TabToday, false))
	assert.Len(t, a.ClassifyForTab([]*task.Task{span}, "2025-01-11", TabToday, false), 1)

	// Once the whole span lies in the past the task is overdue.
	assert.Len(t, a.ClassifyForTab([]*task.Task{span}, "2025-02-01", TabOverdue, false), 1)
}

func TestFilterByTabAvailableToday(t *testing.T) {
	a := New(Options{})
	avail := &task.Task{ID: "a1", Title: "whenever", AvailableToday: true}

	assert.Len(t, a.ClassifyForTab([]*task.Task{avail}, today, TabToday, false), 1)
	assert.Empty(t, a.ClassifyForTab([]*task.Task{avail}, today, TabToday, true),
		"the exclude flag hides available-any-day tasks")

	avail.DailyAvailableDone = []string{today}
	assert.Empty(t, a.ClassifyForTab([]*task.Task{avail}, today, TabToday, false),
		"already done today")

	avail.DailyAvailableDone = nil
	avail.AvailableStartDate = "2025-02-01"
	assert.Empty(t, a.ClassifyForTab([]*task.Task{avail}, today, TabToday, false),
		"not yet available")

	// Unscheduled tasks never show up as overdue.
	avail.AvailableStartDate = ""
	assert.Empty(t, a.ClassifyForTab([]*task.Task{avail}, today, TabOverdue, false))
}

func TestCountByTabsParentChildSingleCount(t *testing.T) {
	a := New(Options{})
	tasks := []*task.Task{
		{ID: "parent", Date: "2025-01-08"},
		{ID: "child", Date: "2025-01-08", ParentID: "parent"},
	}

	got := a.CountByTabs(tasks, today, []Tab{TabOverdue}, false)
	assert.Equal(t, 1, got, "a child with a matching uncompleted parent counts once")

	// With the parent out of the result set the child counts for itself.
	tasks[0].Completed = true
	assert.Equal(t, 1, a.CountByTabs(tasks, today, []Tab{TabOverdue}, false))
}

func TestCountByTabsUnionAcrossTabs(t *testing.T) {
	a := New(Options{})
	tasks := []*task.Task{
		{ID: "overdue", Date: "2025-01-08"},
		{ID: "due-today", Date: today},
	}

	assert.Equal(t, 2, a.CountByTabs(tasks, today, []Tab{TabOverdue, TabToday}, false))
}

func TestExpandRecurringWithSubtree(t *testing.T) {
	a := New(Options{})
	parent := &task.Task{
		ID:   "rec",
		Date: today,
		Repeat: &task.Rule{
			Enabled: true,
			Type:    task.KindDaily,
		},
	}
	child := &task.Task{ID: "step", ParentID: "rec"}

	out := a.Expand([]*task.Task{parent, child}, today)
	require.Len(t, out, 2)
	assert.Equal(t, "rec_"+today, out[0].InstanceID)
	assert.Equal(t, "step_"+today, out[1].InstanceID)
	assert.Equal(t, "rec_"+today, out[1].ParentID)

	// Counting the today tab sees parent and child but reports one unit of
	// work.
	assert.Equal(t, 1, a.CountByTabs([]*task.Task{parent, child}, today, []Tab{TabToday}, false))
}
