// Package lunar is the boundary to the lunar (Chinese) calendar collaborator.
//
// Conversion is delegated to github.com/6tail/lunar-go, the Go port of the
// library the task store already relies on. The rest of the module consumes
// exactly two pure operations: solar→lunar and lunar→solar, the latter
// returning None when the requested lunar date does not exist (for example a
// day-30 in a 29-day lunar month, or a leap-month mismatch).
package lunar

import (
	"strings"

	"github.com/6tail/lunar-go/calendar"
	"github.com/samber/mo"

	"github.com/tasknote/taskcal/dates"
)

// Date is a lunar calendar date. Month is negative for leap months, the
// convention of the underlying library.
type Date struct {
	Year  int
	Month int
	Day   int
}

// FromSolar converts an ISO solar date to its lunar representation. The zero
// Date is returned for unparseable input.
func FromSolar(solarDate string) Date {
	t := dates.Parse(solarDate)
	if t.IsZero() {
		return Date{}
	}
	l := calendar.NewSolarFromYmd(t.Year(), int(t.Month()), t.Day()).GetLunar()
	return Date{Year: l.GetYear(), Month: l.GetMonth(), Day: l.GetDay()}
}

// ToSolar converts a lunar date to the ISO solar date it falls on, or None
// when no such lunar date exists. A negative month selects the leap month.
func ToSolar(year, month, day int) (result mo.Option[string]) {
	// The conversion library panics on impossible lunar dates, the same way
	// its upstream throws. Absorb that into an absent result.
	defer func() {
		if recover() != nil {
			result = mo.None[string]()
		}
	}()

	if day < 1 || day > 30 || month == 0 || month < -12 || month > 12 {
		return mo.None[string]()
	}

	l := calendar.NewLunarFromYmd(year, month, day)
	s := l.GetSolar()
	solar := dates.MakeDate(s.GetYear(), s.GetMonth(), s.GetDay())

	// Day 30 of a 29-day month silently normalizes instead of failing;
	// round-trip to make sure the date we got back is the one asked for.
	back := FromSolar(solar)
	if back.Month != month || back.Day != day {
		return mo.None[string]()
	}
	return mo.Some(solar)
}

// CurrentYearToSolar converts a lunar month/day in the lunar year that
// solarDate falls in.
func CurrentYearToSolar(solarDate string, month, day int) mo.Option[string] {
	return ToSolar(FromSolar(solarDate).Year, month, day)
}

// NextMonthlyDate finds the next solar date on or after currentDate whose
// lunar day equals day, trying the current lunar month first and rolling into
// the next one.
func NextMonthlyDate(currentDate string, day int) mo.Option[string] {
	cur := FromSolar(currentDate)
	if cur == (Date{}) {
		return mo.None[string]()
	}

	if cur.Day < day {
		if solar, ok := ToSolar(cur.Year, cur.Month, day).Get(); ok && dates.Compare(solar, currentDate) > 0 {
			return mo.Some(solar)
		}
	}

	month, year := cur.Month+1, cur.Year
	if month > 12 {
		month, year = 1, year+1
	}
	return ToSolar(year, month, day)
}

// NextYearlyDate finds the next solar date strictly after currentDate that
// falls on the given lunar month/day, trying the current lunar year first.
func NextYearlyDate(currentDate string, month, day int) mo.Option[string] {
	cur := FromSolar(currentDate)
	if cur == (Date{}) {
		return mo.None[string]()
	}

	if solar, ok := ToSolar(cur.Year, month, day).Get(); ok && dates.Compare(solar, currentDate) > 0 {
		return mo.Some(solar)
	}
	return ToSolar(cur.Year+1, month, day)
}

// Marker is the literal that switches text parsing into lunar mode.
const Marker = "农历"

var monthNames = map[string]int{
	"正月": 1, "一月": 1,
	"二月": 2,
	"三月": 3,
	"四月": 4,
	"五月": 5,
	"六月": 6,
	"七月": 7,
	"八月": 8,
	"九月": 9,
	"十月": 10,
	"冬月": 11, "十一月": 11,
	"腊月": 12, "十二月": 12,
}

var dayNames = map[string]int{
	"初一": 1, "初二": 2, "初三": 3, "初四": 4, "初五": 5,
	"初六": 6, "初七": 7, "初八": 8, "初九": 9, "初十": 10,
	"十一": 11, "十二": 12, "十三": 13, "十四": 14, "十五": 15,
	"十六": 16, "十七": 17, "十八": 18, "十九": 19, "二十": 20,
	"廿一": 21, "廿二": 22, "廿三": 23, "廿四": 24, "廿五": 25,
	"廿六": 26, "廿七": 27, "廿八": 28, "廿九": 29, "三十": 30,
}

var monthLabels = []string{"", "正月", "二月", "三月", "四月", "五月", "六月", "七月", "八月", "九月", "十月", "冬月", "腊月"}

var dayLabels = []string{
	"", "初一", "初二", "初三", "初四", "初五",
	"初六", "初七", "初八", "初九", "初十",
	"十一", "十二", "十三", "十四", "十五",
	"十六", "十七", "十八", "十九", "二十",
	"廿一", "廿二", "廿三", "廿四", "廿五",
	"廿六", "廿七", "廿八", "廿九", "三十",
}

// ParseText recognizes lunar date expressions such as "八月廿一", "正月初一"
// or "农历七月十三". Month is 0 when only a day was given ("廿一"). ok is
// false when the text is not a lunar date.
func ParseText(text string) (month, day int, ok bool) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), Marker))

	if i := strings.LastIndex(text, "月"); i >= 0 {
		monthText := text[:i+len("月")]
		dayText := text[i+len("月"):]
		m, mok := monthNames[monthText]
		d, dok := dayNames[dayText]
		if mok && dok {
			return m, d, true
		}
	}

	if d, dok := dayNames[text]; dok {
		return 0, d, true
	}
	return 0, 0, false
}

// FormatMonth renders a lunar month number in Chinese ("八月", "腊月").
func FormatMonth(month int) string {
	if month >= 1 && month < len(monthLabels) {
		return monthLabels[month]
	}
	return ""
}

// FormatDay renders a lunar day number in Chinese ("初一", "廿一").
func FormatDay(day int) string {
	if day >= 1 && day < len(dayLabels) {
		return dayLabels[day]
	}
	return ""
}

// FormatDate renders a full lunar date, e.g. "八月十五".
func FormatDate(month, day int) string {
	return FormatMonth(month) + FormatDay(day)
}

// SolarDateLunarString returns the Chinese lunar rendering of a solar date,
// or the empty string when the date cannot be converted.
func SolarDateLunarString(solarDate string) string {
	l := FromSolar(solarDate)
	if l == (Date{}) {
		return ""
	}
	m := l.Month
	if m < 0 {
		m = -m
	}
	return FormatDate(m, l.Day)
}
