package agenda

import (
	"time"

	"github.com/tasknote/taskcal/dates"
	"github.com/tasknote/taskcal/recurrence"
	"github.com/tasknote/taskcal/task"
)

// horizonAttempts bounds the widening retries; instancesPerMonth sizes the
// enumeration cap relative to the window.
const (
	horizonAttempts   = 5
	instancesPerMonth = 50
)

// horizonMonths returns the initial lookahead and the widening step for a
// rule. Sparse rules look further ahead from the start and widen in bigger
// jumps; lunar rules always take the widest setting, whatever their cadence.
func horizonMonths(rule *task.Rule) (initial, widen int) {
	switch {
	case rule.Type == task.KindYearly || rule.IsLunar():
		return 14, 12
	case rule.Type == task.KindMonthly:
		return 3, 6
	default:
		return 2, 6
	}
}

// Horizon enumerates the occurrences of a recurring task in a window around
// today, widening the window until it contains at least one uncompleted
// occurrence strictly after today or the retry budget is spent. The last
// enumeration is returned either way; a degenerate rule (every future
// occurrence completed, or ended in the past) yields its best-effort window
// rather than searching forever.
func (a *Agenda) Horizon(t *task.Task, today string) []string {
	if !t.Recurring() || !dates.Valid(today) {
		return nil
	}
	months, widen := horizonMonths(t.Repeat)

	var out []string
	for attempt := 1; attempt <= horizonAttempts; attempt++ {
		start, end := horizonWindow(today, months)
		out = recurrence.Enumerate(t, start, end, months*instancesPerMonth)
		if hasFutureIncomplete(out, t.Repeat, today) {
			return out
		}
		if attempt < horizonAttempts {
			a.logger.Debug("widening lookahead window",
				"task", t.ID, "months", months+widen, "attempt", attempt+1)
		}
		months += widen
	}
	return out
}

// horizonWindow spans from the first day of the month before today through
// the last day of the month monthsAhead months after today's.
func horizonWindow(today string, monthsAhead int) (start, end string) {
	ref := dates.Parse(today)
	start = dates.Format(time.Date(ref.Year(), ref.Month()-1, 1, 0, 0, 0, 0, time.UTC))
	end = dates.Format(time.Date(ref.Year(), ref.Month()+time.Month(monthsAhead), 0, 0, 0, 0, 0, time.UTC))
	return start, end
}

func hasFutureIncomplete(occurrences []string, rule *task.Rule, today string) bool {
	for _, d := range occurrences {
		if dates.Compare(d, today) > 0 && !rule.CompletedOn(d) {
			return true
		}
	}
	return false
}
