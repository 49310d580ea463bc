package parse

import "strings"

// AutoDetect parses date/time expressions out of a task title and returns
// the parse result together with the cleaned title. When nothing was
// recognized, or cleaning would leave the title empty, the original title is
// returned unchanged.
func (p *Parser) AutoDetect(title string) (Result, string) {
	r := p.Parse(title)
	if r.Date == "" && r.EndDate == "" {
		return r, title
	}
	return r, CleanTitle(title)
}

// CleanTitle strips recognized date/time sub-expressions from a title and
// tidies the leftovers. A title that becomes empty is kept as it was.
func CleanTitle(title string) string {
	cleaned := title
	for _, re := range titleStripPatterns {
		cleaned = re.ReplaceAllString(cleaned, " ")
	}
	cleaned = collapseSpaceRe.ReplaceAllString(cleaned, " ")
	cleaned = trimPunctRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return title
	}
	return cleaned
}
