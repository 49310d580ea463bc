package agenda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknote/taskcal/task"
)

func dailyTask(anchor string) *task.Task {
	return &task.Task{
		ID:   "d1",
		Date: anchor,
		Repeat: &task.Rule{
			Enabled: true,
			Type:    task.KindDaily,
		},
	}
}

func instanceDates(in []task.Instance) []string {
	out := make([]string, len(in))
	for i := range in {
		out[i] = in[i].Date
	}
	return out
}

func TestOccurrencesClassification(t *testing.T) {
	tk := dailyTask("2025-01-01")
	tk.Repeat.CompletedDates = []string{"2025-01-03", "2025-01-10"}

	b := New(Options{}).Occurrences(tk, "2025-01-10")

	assert.Equal(t,
		[]string{"2025-01-01", "2025-01-02", "2025-01-04", "2025-01-05",
			"2025-01-06", "2025-01-07", "2025-01-08", "2025-01-09"},
		instanceDates(b.PastIncomplete))

	// An occurrence completed today belongs with the past completions.
	assert.Equal(t, []string{"2025-01-03", "2025-01-10"}, instanceDates(b.PastCompleted))
	assert.Empty(t, b.TodayIncomplete)
	assert.NotEmpty(t, b.FutureIncomplete)
	assert.Equal(t, "2025-01-11", b.FutureIncomplete[0].Date)
}

func TestDueNowSingleNextOccurrence(t *testing.T) {
	tk := dailyTask("2025-01-01")
	tk.Repeat.CompletedDates = []string{"2025-01-10"} // today done

	due := New(Options{}).Occurrences(tk, "2025-01-10").DueNow()
	require.NotEmpty(t, due)

	// Nine overdue days plus exactly one future occurrence, never more.
	assert.Len(t, due, 10)
	assert.Equal(t, "2025-01-11", due[len(due)-1].Date)
}

func TestDueNowNoFutureWhenDueToday(t *testing.T) {
	due := New(Options{}).Occurrences(dailyTask("2025-01-01"), "2025-01-10").DueNow()

	assert.Len(t, due, 10)
	for _, inst := range due {
		assert.LessOrEqual(t, inst.Date, "2025-01-10")
	}
}

func TestOccurrencesLogicalDayShift(t *testing.T) {
	// Under a 06:00 day start, a 01:00 occurrence dated today logically
	// belongs to yesterday and is therefore already overdue.
	tk := dailyTask("2025-01-10")
	tk.Time = "01:00"

	b := New(Options{DayStartOffsetMinutes: 360}).Occurrences(tk, "2025-01-10")

	require.NotEmpty(t, b.PastIncomplete)
	assert.Equal(t, "2025-01-10", b.PastIncomplete[0].Date)
	assert.Empty(t, b.TodayIncomplete)
}

func TestCompletedHistoryOrder(t *testing.T) {
	tk := dailyTask("2025-01-08")
	tk.Repeat.CompletedDates = []string{"2025-01-08", "2025-01-12"}

	got := New(Options{}).Occurrences(tk, "2025-01-10").Completed()
	assert.Equal(t, []string{"2025-01-08", "2025-01-12"}, instanceDates(got))
}
