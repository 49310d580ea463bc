package agenda

import (
	"github.com/tasknote/taskcal/dates"
	"github.com/tasknote/taskcal/instance"
	"github.com/tasknote/taskcal/task"
)

// Buckets classify a recurring task's projected occurrences by their logical
// date relative to today. Occurrences completed today land in PastCompleted,
// not in a bucket of their own.
type Buckets struct {
	PastIncomplete   []task.Instance
	TodayIncomplete  []task.Instance
	PastCompleted    []task.Instance
	FutureIncomplete []task.Instance
	FutureCompleted  []task.Instance
}

// Occurrences projects the horizon-guaranteed occurrence dates of t and
// classifies every instance. Within each bucket the enumeration order, and
// with it the date order, is preserved.
func (a *Agenda) Occurrences(t *task.Task, today string) Buckets {
	var b Buckets
	for _, d := range a.Horizon(t, today) {
		inst := instance.Project(t, d)
		logical := dates.LogicalDateOf(inst.Date, inst.Time, a.dayStart)
		switch {
		case inst.Completed && dates.Compare(logical, today) > 0:
			b.FutureCompleted = append(b.FutureCompleted, inst)
		case inst.Completed:
			b.PastCompleted = append(b.PastCompleted, inst)
		case dates.Compare(logical, today) < 0:
			b.PastIncomplete = append(b.PastIncomplete, inst)
		case logical == today:
			b.TodayIncomplete = append(b.TodayIncomplete, inst)
		default:
			b.FutureIncomplete = append(b.FutureIncomplete, inst)
		}
	}
	return b
}

// DueNow selects what needs attention: everything overdue, everything due
// today, and the nearest future occurrence when nothing is due today, so a
// recurring task always shows exactly one "next" occurrence without flooding
// the list.
func (b Buckets) DueNow() []task.Instance {
	out := make([]task.Instance, 0, len(b.PastIncomplete)+len(b.TodayIncomplete)+1)
	out = append(out, b.PastIncomplete...)
	out = append(out, b.TodayIncomplete...)
	if len(b.TodayIncomplete) == 0 && len(b.FutureIncomplete) > 0 {
		out = append(out, b.FutureIncomplete[0])
	}
	return out
}

// Completed returns the completion-history view: past completions first,
// then future-dated ones.
func (b Buckets) Completed() []task.Instance {
	out := make([]task.Instance, 0, len(b.PastCompleted)+len(b.FutureCompleted))
	out = append(out, b.PastCompleted...)
	return append(out, b.FutureCompleted...)
}
