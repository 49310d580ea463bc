// Package recurrence enumerates the occurrence dates of a recurring task
// within a query window.
//
// Enumeration walks day by day from the rule's anchor date and evaluates a
// per-kind predicate against each candidate. The walk is deliberate: it
// supports weekday sets, month-day sets and lunar predicates uniformly,
// without kind-specific date arithmetic, and windows are bounded to a few
// months so the O(days) cost stays small.
package recurrence

import (
	"github.com/tasknote/taskcal/dates"
	"github.com/tasknote/taskcal/lunar"
	"github.com/tasknote/taskcal/task"
)

// DefaultMaxInstances caps enumeration when the caller passes no explicit
// limit.
const DefaultMaxInstances = 100

// Enumerate returns the canonical occurrence dates of t inside
// [windowStart, windowEnd], both inclusive, in increasing order and capped at
// maxInstances. It is a pure function of its inputs.
//
// The anchor is the task's own start date. Only lunar rules may anchor at
// windowStart when the task has none; any other kind without a start date
// yields no occurrences. Malformed rules also yield no occurrences rather
// than an error.
func Enumerate(t *task.Task, windowStart, windowEnd string, maxInstances int) []string {
	if t == nil || !t.Recurring() {
		return nil
	}
	rule := t.Repeat

	var anchor string
	switch {
	case t.Date != "":
		anchor = t.Date
	case rule.IsLunar():
		anchor = windowStart
	default:
		return nil
	}

	if dates.Parse(anchor).IsZero() || dates.Parse(windowEnd).IsZero() {
		return nil
	}
	if maxInstances <= 0 {
		maxInstances = DefaultMaxInstances
	}

	var out []string
	for cur := anchor; dates.Compare(cur, windowEnd) <= 0 && len(out) < maxInstances; cur = dates.AddDays(cur, 1) {
		if dates.Compare(cur, windowStart) < 0 {
			continue
		}
		if rule.EndType == task.EndByDate && rule.EndDate != "" && dates.Compare(cur, rule.EndDate) > 0 {
			break
		}
		if rule.EndType == task.EndByCount && rule.EndCount > 0 && len(out) >= rule.EndCount {
			break
		}
		if !matches(cur, anchor, rule) {
			continue
		}
		if rule.Excluded(cur) {
			continue
		}
		// A user-suppressed occurrence consumes no slot.
		if o, ok := t.Override(cur); ok && o.Skip {
			continue
		}
		out = append(out, cur)
	}
	return out
}

// matches evaluates the rule's predicate for a single candidate date. The
// anchor fixes the phase of interval checks.
func matches(date, anchor string, rule *task.Rule) bool {
	interval := rule.EffectiveInterval()
	daysDiff := dates.DaysBetween(anchor, date)

	switch rule.Type {
	case task.KindDaily:
		return daysDiff >= 0 && daysDiff%interval == 0

	case task.KindWeekly:
		if daysDiff < 0 {
			return false
		}
		// The interval counts whole weeks since the anchor, regardless of
		// which weekday within the week matched.
		if (daysDiff/7)%interval != 0 {
			return false
		}
		if len(rule.WeekDays) > 0 {
			return containsInt(rule.WeekDays, dates.Weekday(date))
		}
		return dates.Weekday(date) == dates.Weekday(anchor)

	case task.KindMonthly:
		if len(rule.MonthDays) > 0 {
			return containsInt(rule.MonthDays, dayOf(date)) && dates.Compare(date, anchor) >= 0
		}
		monthsDiff := monthsBetween(anchor, date)
		return dayOf(date) == dayOf(anchor) && monthsDiff >= 0 && monthsDiff%interval == 0

	case task.KindYearly:
		if len(rule.Months) > 0 && len(rule.MonthDays) > 0 {
			return containsInt(rule.Months, monthOf(date)) &&
				containsInt(rule.MonthDays, dayOf(date)) &&
				dates.Compare(date, anchor) >= 0
		}
		yearsDiff := yearOf(date) - yearOf(anchor)
		return monthOf(date) == monthOf(anchor) && dayOf(date) == dayOf(anchor) &&
			yearsDiff >= 0 && yearsDiff%interval == 0

	case task.KindCustom:
		if len(rule.WeekDays) > 0 && !containsInt(rule.WeekDays, dates.Weekday(date)) {
			return false
		}
		if len(rule.MonthDays) > 0 && !containsInt(rule.MonthDays, dayOf(date)) {
			return false
		}
		if len(rule.Months) > 0 && !containsInt(rule.Months, monthOf(date)) {
			return false
		}
		return dates.Compare(date, anchor) >= 0

	case task.KindIntervalPattern:
		return containsInt(rule.Pattern(), daysDiff)

	case task.KindLunarMonthly:
		if rule.LunarDay == 0 {
			return false
		}
		return lunar.FromSolar(date).Day == rule.LunarDay

	case task.KindLunarYearly:
		if rule.LunarMonth == 0 || rule.LunarDay == 0 {
			return false
		}
		l := lunar.FromSolar(date)
		return l.Month == rule.LunarMonth && l.Day == rule.LunarDay

	default:
		return false
	}
}

// Ended reports whether a by-date rule is already over on currentDate.
// Count-limited rules end through enumeration, not here.
func Ended(rule *task.Rule, currentDate string) bool {
	if rule == nil || !rule.Enabled {
		return false
	}
	if rule.EndType == task.EndByDate && rule.EndDate != "" {
		return dates.Compare(currentDate, rule.EndDate) > 0
	}
	return false
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func yearOf(date string) int  { return dates.Parse(date).Year() }
func monthOf(date string) int { return int(dates.Parse(date).Month()) }
func dayOf(date string) int   { return dates.Parse(date).Day() }

func monthsBetween(a, b string) int {
	ta, tb := dates.Parse(a), dates.Parse(b)
	return (tb.Year()-ta.Year())*12 + int(tb.Month()) - int(ta.Month())
}
