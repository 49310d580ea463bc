package recurrence

import (
	"strconv"
	"strings"

	"github.com/tasknote/taskcal/task"
)

// Localizer supplies the locale strings for rule descriptions. Lookup keys
// take a flat argument map; locale data is owned by the host application.
type Localizer interface {
	T(key string, args map[string]string) string
}

// EnglishLocalizer renders descriptions with built-in English strings and is
// the fallback when the host supplies none.
type EnglishLocalizer struct{}

var englishStrings = map[string]string{
	"everyDay":              "every day",
	"everyNDays":            "every {n} days",
	"everyWeek":             "every week",
	"everyNWeeks":           "every {n} weeks",
	"weeklyOnDays":          "weekly on {days}",
	"everyMonth":            "every month",
	"everyNMonths":          "every {n} months",
	"monthlyOnDays":         "monthly on day {days}",
	"everyYear":             "every year",
	"everyNYears":           "every {n} years",
	"yearlyOnDate":          "every year on {month}/{day}",
	"customRepeat":          "custom repeat",
	"intervalPatternRepeat": "spaced repetition",
	"lunarMonthlyRepeat":    "monthly on the lunar calendar",
	"lunarYearlyRepeat":     "yearly on the lunar calendar",
	"untilDate":             ", until {date}",
	"forNTimes":             ", {n} times",
	"sun":                   "Sun", "mon": "Mon", "tue": "Tue", "wed": "Wed",
	"thu": "Thu", "fri": "Fri", "sat": "Sat",
}

// T implements Localizer.
func (EnglishLocalizer) T(key string, args map[string]string) string {
	s, ok := englishStrings[key]
	if !ok {
		return key
	}
	for k, v := range args {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}

var weekdayKeys = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// Describe renders a human-readable summary of a rule, such as
// "weekly on Mon,Wed, until 2025-06-30". A disabled rule describes as the
// empty string.
func Describe(rule *task.Rule, loc Localizer) string {
	if rule == nil || !rule.Enabled {
		return ""
	}
	if loc == nil {
		loc = EnglishLocalizer{}
	}

	interval := rule.EffectiveInterval()
	n := map[string]string{"n": strconv.Itoa(interval)}

	var description string
	switch rule.Type {
	case task.KindDaily:
		if interval == 1 {
			description = loc.T("everyDay", nil)
		} else {
			description = loc.T("everyNDays", n)
		}
	case task.KindWeekly:
		if len(rule.WeekDays) > 0 {
			names := make([]string, 0, len(rule.WeekDays))
			for _, d := range rule.WeekDays {
				if d >= 0 && d < len(weekdayKeys) {
					names = append(names, loc.T(weekdayKeys[d], nil))
				}
			}
			description = loc.T("weeklyOnDays", map[string]string{"days": strings.Join(names, ",")})
		} else if interval == 1 {
			description = loc.T("everyWeek", nil)
		} else {
			description = loc.T("everyNWeeks", n)
		}
	case task.KindMonthly:
		if len(rule.MonthDays) > 0 {
			description = loc.T("monthlyOnDays", map[string]string{"days": joinInts(rule.MonthDays)})
		} else if interval == 1 {
			description = loc.T("everyMonth", nil)
		} else {
			description = loc.T("everyNMonths", n)
		}
	case task.KindYearly:
		if len(rule.Months) > 0 && len(rule.MonthDays) > 0 {
			description = loc.T("yearlyOnDate", map[string]string{
				"month": strconv.Itoa(rule.Months[0]),
				"day":   strconv.Itoa(rule.MonthDays[0]),
			})
		} else if interval == 1 {
			description = loc.T("everyYear", nil)
		} else {
			description = loc.T("everyNYears", n)
		}
	case task.KindLunarMonthly:
		description = loc.T("lunarMonthlyRepeat", nil)
	case task.KindLunarYearly:
		description = loc.T("lunarYearlyRepeat", nil)
	case task.KindCustom:
		description = loc.T("customRepeat", nil)
	case task.KindIntervalPattern:
		description = loc.T("intervalPatternRepeat", nil)
	}

	if rule.EndType == task.EndByDate && rule.EndDate != "" {
		description += loc.T("untilDate", map[string]string{"date": rule.EndDate})
	} else if rule.EndType == task.EndByCount && rule.EndCount > 0 {
		description += loc.T("forNTimes", map[string]string{"n": strconv.Itoa(rule.EndCount)})
	}
	return description
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
