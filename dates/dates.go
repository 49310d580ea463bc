// Package dates provides calendar arithmetic on plain ISO date strings.
//
// All dates cross package boundaries as zero-padded "YYYY-MM-DD" strings and
// all times as 24-hour "HH:MM" strings, so lexicographic comparison agrees
// with chronological order and no timezone database is involved. The only
// time-zone-like concept is the logical day: a configurable day-start offset
// that attributes early-morning instants to the previous calendar day.
package dates

import (
	"fmt"
	"time"
)

// ISODate is the wire format for dates, ISOTime for times.
const (
	ISODate = "2006-01-02"
	ISOTime = "15:04"
)

// MinYear and MaxYear bound the calendar range the engine accepts.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Format renders t as an ISO date string in t's location.
func Format(t time.Time) string {
	return t.Format(ISODate)
}

// FormatTime renders t's clock time as "HH:MM".
func FormatTime(t time.Time) string {
	return t.Format(ISOTime)
}

// FormatDateTime renders t as "YYYY-MM-DD HH:MM", the completion-timestamp
// format used by the task store.
func FormatDateTime(t time.Time) string {
	return t.Format(ISODate + " " + ISOTime)
}

// Parse converts an ISO date string to a midnight UTC instant. The zero time
// is returned for anything that is not a valid ISO date.
func Parse(date string) time.Time {
	t, err := time.Parse(ISODate, date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Valid reports whether date is a well-formed ISO date within the supported
// year range.
func Valid(date string) bool {
	t := Parse(date)
	if t.IsZero() {
		return false
	}
	return t.Year() >= MinYear && t.Year() <= MaxYear
}

// ValidCalendarDate reports whether year/month/day name a real calendar date.
// The year is bounded to [MinYear, MaxYear]; impossible month/day
// combinations (including Feb 29 outside leap years) are rejected by
// round-tripping through calendar construction.
func ValidCalendarDate(year, month, day int) bool {
	if year < MinYear || year > MaxYear {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// MakeDate builds an ISO date string from components, without validation.
func MakeDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// MakeTime builds an "HH:MM" string from components, without validation.
func MakeTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// Compare orders two ISO date strings. It returns -1, 0 or 1; because dates
// are zero-padded the lexicographic order is the chronological order. This is
// the sole ordering primitive used by the rest of the module.
func Compare(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// AddDays returns date shifted by n calendar days, handling month and year
// rollover. Invalid input yields the empty string.
func AddDays(date string, n int) string {
	t := Parse(date)
	if t.IsZero() {
		return ""
	}
	return Format(t.AddDate(0, 0, n))
}

// DaysBetween returns the number of calendar days from a to b (negative when
// b precedes a). Both arguments must be valid ISO dates; the result is 0
// otherwise.
func DaysBetween(a, b string) int {
	ta, tb := Parse(a), Parse(b)
	if ta.IsZero() || tb.IsZero() {
		return 0
	}
	return int(tb.Sub(ta) / (24 * time.Hour))
}

// ParseDateTime converts a "YYYY-MM-DD HH:MM" timestamp, or an RFC 3339 one,
// to an instant. ok is false for anything else.
func ParseDateTime(s string) (t time.Time, ok bool) {
	if t, err := time.Parse(ISODate+" "+ISOTime, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Weekday returns the weekday of date with Sunday = 0, matching the weekday
// numbering stored in recurrence rules.
func Weekday(date string) int {
	return int(Parse(date).Weekday())
}

// ClampDayStart limits a day-start offset to the valid range of minutes in a
// day.
func ClampDayStart(offsetMinutes int) int {
	if offsetMinutes < 0 {
		return 0
	}
	if offsetMinutes > 1439 {
		return 1439
	}
	return offsetMinutes
}

// LogicalDate attributes an instant to a logical calendar day: the instant is
// shifted backward by the day-start offset before its date is taken, so a
// 02:00 event under a 06:00 day start belongs to the previous day.
func LogicalDate(t time.Time, dayStartOffsetMinutes int) string {
	offset := ClampDayStart(dayStartOffsetMinutes)
	return Format(t.Add(-time.Duration(offset) * time.Minute))
}

// LogicalDateOf combines an ISO date and an optional "HH:MM" time into the
// logical day they fall on. A missing time counts as midnight; a missing
// date yields the empty string.
func LogicalDateOf(date, timeOfDay string, dayStartOffsetMinutes int) string {
	if date == "" {
		return ""
	}
	t := Parse(date)
	if t.IsZero() {
		return ""
	}
	if timeOfDay != "" {
		if clock, err := time.Parse(ISOTime, timeOfDay); err == nil {
			t = t.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		}
	}
	return LogicalDate(t, dayStartOffsetMinutes)
}
