// Package parse turns free-form task text into concrete dates and times.
//
// Explicit grammars (compact and full dates, month/day forms, clock times,
// lunar dates, deadline prefixes and ranges) are tried first; anything they
// cannot settle falls through to a general natural-language phrase parser.
// All input is matched leniently: Chinese and ASCII separators mix freely.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/tasknote/taskcal/dates"
	"github.com/tasknote/taskcal/lunar"
)

// Result is the outcome of parsing one text. Empty string fields mean the
// component was not found. The Has* flags track certainty: a date or time
// that was defaulted rather than written out keeps its flag false.
type Result struct {
	Date    string
	Time    string
	EndDate string
	EndTime string

	HasDate    bool
	HasTime    bool
	HasEndDate bool
	HasEndTime bool
}

// Empty reports whether nothing at all was recognized.
func (r Result) Empty() bool {
	return r.Date == "" && r.Time == "" && r.EndDate == "" && r.EndTime == ""
}

// Options configure a Parser. The zero value is usable.
type Options struct {
	// Now supplies the reference instant; defaults to time.Now.
	Now func() time.Time
	// DayStartOffsetMinutes shifts the logical day boundary past midnight.
	DayStartOffsetMinutes int
	// Languages for the fallback phrase parser; defaults to zh then en.
	Languages []string
}

// Parser resolves natural-language date text. It is immutable after New and
// safe for concurrent use.
type Parser struct {
	now      func() time.Time
	dayStart int
	cfg      dateparser.Configuration
}

// New builds a Parser from opts.
func New(opts Options) *Parser {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	langs := opts.Languages
	if len(langs) == 0 {
		langs = []string{"zh", "en"}
	}
	return &Parser{
		now:      now,
		dayStart: dates.ClampDayStart(opts.DayStartOffsetMinutes),
		cfg: dateparser.Configuration{
			Languages:           langs,
			PreferredDateSource: dateparser.Past,
			ReturnTimeAsPeriod:  true,
		},
	}
}

// Parse resolves text into dates and times. Resolution tries, in order:
// deadline prefixes, range separators, a trailing bare clock time, compact
// 8-digit dates, full dates, month/day dates, lunar dates, and finally the
// phrase parser.
func (p *Parser) Parse(text string) Result {
	now := p.now()
	today := dates.LogicalDate(now, p.dayStart)
	return p.parse(strings.TrimSpace(text), now, today)
}

func (p *Parser) parse(text string, now time.Time, today string) Result {
	if text == "" {
		return Result{}
	}

	if r, ok := p.parseDeadline(text, now, today); ok {
		return r
	}
	if r, ok := p.parseRange(text, now, today); ok {
		return r
	}
	if r, ok := p.parseTrailingTime(text, now, today); ok {
		return r
	}
	if r, ok := parseCompactDate(text); ok {
		return r
	}
	if r, ok := parseFullDate(text); ok {
		return r
	}
	if r, ok := parseMonthDay(text, now); ok {
		return r
	}
	if r, ok := parseLunarDate(text, today); ok {
		return r
	}
	return p.parseFallback(text, now)
}

// parseDeadline handles "截止 3月15日" and friends: the parsed date/time land
// on the end fields and the start stays open.
func (p *Parser) parseDeadline(text string, now time.Time, today string) (Result, bool) {
	lowered := strings.ToLower(text)
	for _, prefix := range deadlinePrefixes {
		if !strings.HasPrefix(lowered, prefix) {
			continue
		}
		rest := strings.TrimSpace(text[len(prefix):])
		sub := p.parse(rest, now, today)
		if sub.Date == "" {
			return Result{}, false
		}
		return Result{
			EndDate:    sub.Date,
			EndTime:    sub.Time,
			HasEndDate: sub.HasDate,
			HasEndTime: sub.HasTime,
		}, true
	}
	return Result{}, false
}

// parseRange splits "A 至 B" style texts and parses both halves. A bare
// hyphen only splits when its left side is itself a complete explicit date,
// and a text that is exactly one ISO date is never split.
func (p *Parser) parseRange(text string, now time.Time, today string) (Result, bool) {
	if isoDateRe.MatchString(text) {
		return Result{}, false
	}
	for _, sep := range rangeSeparators {
		from := 0
		for {
			idx := strings.Index(text[from:], sep)
			if idx < 0 {
				break
			}
			idx += from
			left := strings.TrimSpace(text[:idx])
			right := strings.TrimSpace(text[idx+len(sep):])
			from = idx + len(sep)

			if left == "" || right == "" {
				continue
			}
			if sep == "-" && !explicitDateRe.MatchString(left) {
				continue
			}

			start := p.parse(left, now, today)
			if start.Date == "" {
				continue
			}
			end := p.parse(right, now, today)
			if end.Empty() {
				continue
			}

			r := Result{
				Date:    start.Date,
				Time:    start.Time,
				HasDate: start.HasDate,
				HasTime: start.HasTime,
				EndTime: end.Time,
			}
			if end.Date != "" && end.HasDate {
				r.EndDate = end.Date
				r.HasEndDate = true
			} else if end.Time != "" {
				// A bare end time inherits the start date.
				r.EndDate = start.Date
			}
			r.HasEndTime = end.HasTime
			return r, true
		}
	}
	return Result{}, false
}

// parseTrailingTime strips a clock time from the end of the text, parses the
// remainder for the date, and defaults to today's logical date when the
// remainder carries none.
func (p *Parser) parseTrailingTime(text string, now time.Time, today string) (Result, bool) {
	m := trailingTimeRe.FindStringSubmatchIndex(text)
	if m == nil {
		return Result{}, false
	}
	hour := atoi(text[m[2]:m[3]])
	minute := atoi(text[m[4]:m[5]])
	if hour > 23 || minute > 59 {
		return Result{}, false
	}

	remainder := strings.TrimSpace(text[:m[0]])
	sub := p.parse(remainder, now, today)

	r := sub
	r.Time = clock(hour, minute)
	r.HasTime = true
	if r.Date == "" {
		r.Date = today
		r.HasDate = false
	}
	return r, true
}

// parseCompactDate recognizes YYYYMMDD plus an optional adjacent clock time.
func parseCompactDate(text string) (Result, bool) {
	for _, m := range compactDateRe.FindAllStringSubmatchIndex(text, -1) {
		digits := text[m[2]:m[3]]
		year := atoi(digits[:4])
		month := atoi(digits[4:6])
		day := atoi(digits[6:])
		if !dates.ValidCalendarDate(year, month, day) {
			continue
		}

		r := Result{Date: dates.MakeDate(year, month, day), HasDate: true}
		rest := text[:m[2]] + text[m[3]:]
		if tm := adjacentTimeRe.FindStringSubmatch(rest); tm != nil {
			hour, minute := atoi(tm[1]), atoi(tm[2])
			if hour <= 23 && minute <= 59 {
				r.Time = clock(hour, minute)
				r.HasTime = true
			}
		}
		return r, true
	}
	return Result{}, false
}

// parseFullDate recognizes year-month-day in any separator style, with an
// optional time immediately after.
func parseFullDate(text string) (Result, bool) {
	m := fullDateRe.FindStringSubmatchIndex(text)
	if m == nil {
		return Result{}, false
	}
	year := atoi(text[m[2]:m[3]])
	month := atoi(text[m[4]:m[5]])
	day := atoi(text[m[6]:m[7]])
	if !dates.ValidCalendarDate(year, month, day) {
		return Result{}, false
	}

	r := Result{Date: dates.MakeDate(year, month, day), HasDate: true}
	attachTimeSuffix(&r, text[m[1]:])
	return r, true
}

// parseMonthDay recognizes month/day without a year; the year is the current
// one.
func parseMonthDay(text string, now time.Time) (Result, bool) {
	m := monthDayRe.FindStringSubmatchIndex(text)
	if m == nil {
		return Result{}, false
	}
	month := atoi(text[m[2]:m[3]])
	day := atoi(text[m[4]:m[5]])
	year := now.Year()
	if !dates.ValidCalendarDate(year, month, day) {
		return Result{}, false
	}

	r := Result{Date: dates.MakeDate(year, month, day), HasDate: true}
	attachTimeSuffix(&r, text[m[1]:])
	return r, true
}

// parseLunarDate requires the 农历 marker. A day-only expression resolves in
// the current lunar month; otherwise the month/day resolve within the
// current solar year.
func parseLunarDate(text string, today string) (Result, bool) {
	if !strings.Contains(text, lunar.Marker) {
		return Result{}, false
	}
	month, day, ok := lunar.ParseText(text)
	if !ok {
		return Result{}, false
	}

	var solar string
	if month == 0 {
		cur := lunar.FromSolar(today)
		solar = lunar.ToSolar(cur.Year, cur.Month, day).OrElse("")
	} else {
		solar = lunar.CurrentYearToSolar(today, month, day).OrElse("")
	}
	if solar == "" {
		return Result{}, false
	}
	return Result{Date: solar, HasDate: true}, true
}

// parseFallback hands the text to the phrase parser. The date is certain
// when the parser recognized the text at all; the time only when the parser
// reports time granularity.
func (p *Parser) parseFallback(text string, now time.Time) Result {
	cfg := p.cfg
	cfg.CurrentTime = now

	dt, err := dateparser.Parse(&cfg, text)
	if err != nil || dt.Time.IsZero() {
		return Result{}
	}

	r := Result{Date: dates.Format(dt.Time), HasDate: true}
	if dt.Period.IsTime() {
		r.Time = dates.FormatTime(dt.Time)
		r.HasTime = true
	}
	return r
}

func attachTimeSuffix(r *Result, rest string) {
	tm := timeSuffixRe.FindStringSubmatch(rest)
	if tm == nil {
		return
	}
	hour, minute := atoi(tm[1]), atoi(tm[2])
	if hour > 23 || minute > 59 {
		return
	}
	r.Time = clock(hour, minute)
	r.HasTime = true
}

func clock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
