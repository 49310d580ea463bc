package parse

import "regexp"

// The explicit date/time grammars, matched before the general phrase parser
// gets a chance. Chinese and ASCII separators are interchangeable throughout.
var (
	// A bare ISO date; such a text is never split as a range.
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// A clock time anchored at the end of the text: "9:30", "9点30分", "9：30".
	trailingTimeRe = regexp.MustCompile(`(?:^|\s)(\d{1,2})[:：点](\d{1,2})分?\s*$`)

	// An 8-digit compact date (YYYYMMDD) on its own digit run.
	compactDateRe = regexp.MustCompile(`(?:^|[^\d])(\d{8})(?:[^\d]|$)`)
	// A time adjacent to a compact date, e.g. "20250115 14点30".
	adjacentTimeRe = regexp.MustCompile(`(\d{1,2})[点时:](\d{1,2})`)

	// Full date: "2025-01-15", "2025/1/15", "2025.1.15", "2025年1月15日".
	fullDateRe = regexp.MustCompile(`(\d{4})[年\-/.](\d{1,2})[月\-/.](\d{1,2})[日号]?`)
	// Month/day without a year: "3月15日", "3-15", "3.15".
	monthDayRe = regexp.MustCompile(`(\d{1,2})[月\-/.](\d{1,2})[日号]?`)
	// A time immediately following a date match: "14:30", "14点30分".
	timeSuffixRe = regexp.MustCompile(`^\s*(\d{1,2})[:点](\d{1,2})分?`)
)

// deadlinePrefixes map the parsed date/time onto the end fields.
var deadlinePrefixes = []string{"截止", "到期", "deadline", "until"}

// rangeSeparators in trial order. The bare hyphen comes last and only splits
// where the left side is itself a complete explicit date, so ISO dates are
// never torn apart.
var rangeSeparators = []string{" - ", " to ", "至", "到", "~", "-"}

// explicitDateRe matches a complete explicit date expression and nothing
// else; used to qualify the left side of a hyphen split.
var explicitDateRe = regexp.MustCompile(`^(\d{4}[年\-/.]\d{1,2}[月\-/.]\d{1,2}[日号]?|\d{1,2}[月\-/.]\d{1,2}[日号]?|\d{8})$`)

// titleStripPatterns remove recognized date/time sub-expressions from a
// title once a date was detected. Order matters: longer forms strip first so
// their leftovers do not survive ("大后天" before "后天").
var titleStripPatterns = []*regexp.Regexp{
	regexp.MustCompile(`今天|今日`),
	regexp.MustCompile(`明天|明日`),
	regexp.MustCompile(`大后天`),
	regexp.MustCompile(`后天`),
	regexp.MustCompile(`下?周[一二三四五六日天]`),
	regexp.MustCompile(`下?星期[一二三四五六日天]`),
	regexp.MustCompile(`\d+天[后以]后`),
	regexp.MustCompile(`\d+小时[后以]后`),
	regexp.MustCompile(`\d{4}[年\-/.]\d{1,2}[月\-/.]\d{1,2}[日号]?`),
	regexp.MustCompile(`\d{1,2}[月\-/.]\d{1,2}[日号]?`),
	regexp.MustCompile(`\d{8}`),
	regexp.MustCompile(`\d{1,2}[:：点时]\d{1,2}分?`),
	regexp.MustCompile(`农历[正一二三四五六七八九十冬腊]*月?[初十廿三]?[一二三四五六七八九十]*`),
	regexp.MustCompile(`[正一二三四五六七八九十冬腊]+月[初十廿三]?[一二三四五六七八九十]+`),
}

var (
	collapseSpaceRe = regexp.MustCompile(`\s+`)
	trimPunctRe     = regexp.MustCompile(`^[，。、\s]+|[，。、\s]+$`)
)
