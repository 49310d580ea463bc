package agenda

import (
	"slices"

	"github.com/tasknote/taskcal/dates"
	"github.com/tasknote/taskcal/task"
)

// Tab names an aggregation view.
type Tab string

const (
	TabOverdue Tab = "overdue"
	TabToday   Tab = "today"
)

// ClassifyForTab expands tasks into due instances and filters them by tab.
// excludeAvailable leaves the unscheduled "available any day" tasks out of
// the today view.
func (a *Agenda) ClassifyForTab(tasks []*task.Task, today string, tab Tab, excludeAvailable bool) []task.Instance {
	return a.FilterByTab(a.Expand(tasks, today), today, tab, excludeAvailable)
}

// FilterByTab keeps the instances belonging to the given tab.
func (a *Agenda) FilterByTab(instances []task.Instance, today string, tab Tab, excludeAvailable bool) []task.Instance {
	var out []task.Instance
	for _, inst := range instances {
		if a.matchesTab(inst, today, tab, excludeAvailable) {
			out = append(out, inst)
		}
	}
	return out
}

func (a *Agenda) matchesTab(inst task.Instance, today string, tab Tab, excludeAvailable bool) bool {
	switch tab {
	case TabToday:
		if availableOn(inst, today) {
			return !excludeAvailable
		}
		if inst.Date == "" || effectivelyCompleted(inst, today) {
			return false
		}
		// The today view carries everything overdue as well, so nothing
		// due slips out of sight between the tabs.
		return dates.LogicalDateOf(inst.Date, inst.Time, a.dayStart) == today ||
			spansDay(inst, today) || a.overdue(inst, today)
	case TabOverdue:
		return inst.Date != "" && !inst.Completed && a.overdue(inst, today)
	default:
		return false
	}
}

// overdue reports whether the instance's effective end falls on a logical day
// before today. The end date falls back to the start date and the end time to
// the start time, so a spanning occurrence without its own end time is not
// read as ending at midnight.
func (a *Agenda) overdue(inst task.Instance, today string) bool {
	due := inst.Date
	if inst.EndDate != "" {
		due = inst.EndDate
	}
	timeOfDay := inst.Time
	if inst.EndTime != "" {
		timeOfDay = inst.EndTime
	}
	return dates.Compare(dates.LogicalDateOf(due, timeOfDay, a.dayStart), today) < 0
}

// effectivelyCompleted treats a multi-day task as done for one specific day
// only when the per-day completion map marks that day; a spanning task is
// never all-or-nothing.
func effectivelyCompleted(inst task.Instance, day string) bool {
	if inst.Completed {
		return true
	}
	return spansDay(inst, day) && inst.DailyCompletions[day]
}

func spansDay(inst task.Instance, day string) bool {
	return inst.Date != "" && inst.EndDate != "" &&
		dates.Compare(inst.Date, day) <= 0 && dates.Compare(day, inst.EndDate) <= 0
}

// availableOn reports whether an unscheduled "available any day" task can be
// picked up on day and was not already done that day.
func availableOn(inst task.Instance, day string) bool {
	if !inst.AvailableToday || inst.Date != "" || inst.Completed {
		return false
	}
	if inst.AvailableStartDate != "" && dates.Compare(inst.AvailableStartDate, day) > 0 {
		return false
	}
	return !slices.Contains(inst.DailyAvailableDone, day)
}

// CountByTabs counts the distinct instances matching any of the tabs. A
// child whose uncompleted parent sits in the same result set does not count:
// the parent already represents that unit of work in a summary badge.
func (a *Agenda) CountByTabs(tasks []*task.Task, today string, tabs []Tab, excludeAvailable bool) int {
	expanded := a.Expand(tasks, today)

	matched := make(map[string]task.Instance)
	var order []string
	for _, tab := range tabs {
		for _, inst := range a.FilterByTab(expanded, today, tab, excludeAvailable) {
			if _, seen := matched[inst.InstanceID]; !seen {
				matched[inst.InstanceID] = inst
				order = append(order, inst.InstanceID)
			}
		}
	}

	count := 0
	for _, id := range order {
		if parent, ok := matched[matched[id].ParentID]; ok && !parent.Completed {
			continue
		}
		count++
	}
	return count
}
