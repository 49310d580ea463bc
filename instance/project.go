// Package instance materializes concrete occurrences of tasks.
//
// A projection layers the per-occurrence override (if any) over the task's
// own fields and resolves completion state. The occurrence key always uses
// the canonical enumerated date, never the overridden one, so completion
// tracking survives date edits.
package instance

import (
	"github.com/tasknote/taskcal/dates"
	"github.com/tasknote/taskcal/task"
)

// Project resolves the occurrence of t on the canonical occurrenceDate into a
// fully materialized Instance. For every overridable field the override wins
// when present; otherwise the task's value is inherited.
func Project(t *task.Task, occurrenceDate string) task.Instance {
	key := task.OccurrenceKey(t.ID, occurrenceDate)
	o, _ := t.Override(occurrenceDate)

	inst := task.Instance{
		Task:       *t,
		InstanceID: key,
		OriginalID: t.ID,
		IsRepeated: true,
	}
	inst.Task.ID = key

	inst.Date = o.DateOr(occurrenceDate)
	inst.Time = o.TimeOr(t.Time)
	inst.EndTime = o.EndTimeOr(t.EndTime)
	inst.Note = o.NoteOr(t.Note)
	inst.Priority = o.PriorityOr(t.Priority)
	inst.CategoryID = o.CategoryOr(t.CategoryID)
	inst.ProjectID = o.ProjectOr(t.ProjectID)

	// Without an explicit end-date override a spanning task keeps its
	// original span length, measured from the displayed date.
	if end, ok := o.EndDate.Get(); ok {
		inst.EndDate = end
	} else if t.EndDate != "" && t.Date != "" {
		inst.EndDate = dates.AddDays(inst.Date, dates.DaysBetween(t.Date, t.EndDate))
	} else {
		inst.EndDate = ""
	}

	inst.Completed = completedOn(t, occurrenceDate)
	inst.CompletedTime = completedTime(t, o, occurrenceDate, inst.Date, inst.Completed)
	return inst
}

func completedOn(t *task.Task, canonicalDate string) bool {
	if t.Recurring() {
		return t.Repeat.CompletedOn(canonicalDate)
	}
	return t.Completed
}

// completedTime resolves in order: the explicit per-occurrence timestamp from
// the override, the rule's stored map, and finally a synthesized midnight
// timestamp for the displayed date when the occurrence is complete at all.
func completedTime(t *task.Task, o task.Override, canonicalDate, displayDate string, completed bool) string {
	if ts, ok := o.CompletedTime.Get(); ok {
		return ts
	}
	if t.Repeat != nil {
		if ts, ok := t.Repeat.CompletedTimes[canonicalDate]; ok {
			return ts
		}
	}
	if completed {
		return displayDate + " 00:00"
	}
	return ""
}
