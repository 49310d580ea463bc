// Package agenda assembles task lists for display: it looks far enough ahead
// to guarantee every recurring task a visible "next" occurrence, classifies
// occurrences against today, and filters/counts them per tab.
package agenda

import (
	"io"
	"log/slog"
	"time"

	"github.com/tasknote/taskcal/dates"
	"github.com/tasknote/taskcal/instance"
	"github.com/tasknote/taskcal/task"
)

// Options configure an Agenda. The zero value is usable.
type Options struct {
	// Logger receives lookahead-widening diagnostics; discarded by default.
	Logger *slog.Logger
	// DayStartOffsetMinutes shifts the logical day boundary past midnight.
	DayStartOffsetMinutes int
}

// Agenda computes display-ready instance lists. It holds no mutable state and
// is safe for concurrent use.
type Agenda struct {
	logger   *slog.Logger
	dayStart int
}

// New builds an Agenda from opts.
func New(opts Options) *Agenda {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Agenda{
		logger:   logger,
		dayStart: dates.ClampDayStart(opts.DayStartOffsetMinutes),
	}
}

// Expand turns the task set into the flat instance list the views operate
// on. Recurring tasks contribute their due occurrences (with their subtrees
// expanded per occurrence); everything else passes through as a single
// instance. Children of recurring parents surface only through expansion.
func (a *Agenda) Expand(tasks []*task.Task, today string) []task.Instance {
	byID := make(map[string]*task.Task, len(tasks))
	for _, t := range tasks {
		if t != nil {
			byID[t.ID] = t
		}
	}

	var out []task.Instance
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if parent, ok := byID[t.ParentID]; ok && parent.Recurring() {
			continue
		}
		if !t.Recurring() {
			out = append(out, plainInstance(t))
			continue
		}
		for _, inst := range a.Occurrences(t, today).DueNow() {
			out = append(out, inst)
			out = append(out, instance.ExpandSubtree(
				t.ID, inst.InstanceID, task.KeyDate(inst.InstanceID),
				byID, completionInstant(inst))...)
		}
	}
	return out
}

func plainInstance(t *task.Task) task.Instance {
	return task.Instance{Task: *t, InstanceID: t.ID, OriginalID: t.ID}
}

// completionInstant recovers the completion snapshot used to exclude
// children added after an occurrence was finished.
func completionInstant(inst task.Instance) time.Time {
	if !inst.Completed || inst.CompletedTime == "" {
		return time.Time{}
	}
	if ts, ok := dates.ParseDateTime(inst.CompletedTime); ok {
		return ts
	}
	return time.Time{}
}
