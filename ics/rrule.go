package ics

import (
	"fmt"
	"time"

	rrule "github.com/teambition/rrule-go"

	"github.com/tasknote/taskcal/dates"
	"github.com/tasknote/taskcal/task"
)

// byWeekdayTable maps the stored Sunday-first weekday numbers to BYDAY
// values.
var byWeekdayTable = []rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// RuleString renders a recurrence rule as an RRULE value. Lunar rules have
// no RRULE form and yield the empty string; callers expand them into
// individual events instead. Interval-pattern rules export their daily
// approximation, the closest RRULE can get.
func RuleString(rule *task.Rule) (string, error) {
	if rule == nil || !rule.Enabled || rule.IsLunar() {
		return "", nil
	}

	opt := rrule.ROption{Freq: rrule.DAILY}
	switch rule.Type {
	case task.KindWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = byWeekday(rule.WeekDays)
	case task.KindMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = rule.MonthDays
	case task.KindYearly:
		opt.Freq = rrule.YEARLY
	case task.KindCustom:
		opt.Byweekday = byWeekday(rule.WeekDays)
		opt.Bymonthday = rule.MonthDays
		opt.Bymonth = rule.Months
	}

	if iv := rule.EffectiveInterval(); iv > 1 {
		opt.Interval = iv
	}
	switch rule.EndType {
	case task.EndByCount:
		if rule.EndCount > 0 {
			opt.Count = rule.EndCount
		}
	case task.EndByDate:
		if t := dates.Parse(rule.EndDate); !t.IsZero() {
			opt.Until = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
		}
	}

	if _, err := rrule.NewRRule(opt); err != nil {
		return "", fmt.Errorf("recurrence rule: %w", err)
	}
	return opt.String(), nil
}

func byWeekday(days []int) []rrule.Weekday {
	var out []rrule.Weekday
	for _, d := range days {
		if d >= 0 && d < len(byWeekdayTable) {
			out = append(out, byWeekdayTable[d])
		}
	}
	return out
}
