// Package etd extracts estimated-arrival dates from free-text supplier
// comments. Parsing never fails: malformed or ambiguous input degrades to an
// absent date rather than an error, so callers only ever check for absence.
package etd

import (
	"regexp"
	"strings"
	"time"

	"github.com/example/etaflow/internal/model"
)

var (
	noteAddedRe = regexp.MustCompile(`\[[^\]]*?(\d{1,2})[/-](\d{1,2})\]`)
	bracketRe   = regexp.MustCompile(`\[[^\]]*\]`)
	dateRe      = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?`)
)

// Parse interprets one PO line comment. Only the first non-blank line is
// considered; trailing lines belong to other tooling.
//
// fallback is returned as the date when the comment has no content at all.
// defaultYear completes dates written without a year, including the bracket
// note-added tag.
func Parse(comment string, fallback *time.Time, defaultYear int) model.ParsedComment {
	if strings.TrimSpace(comment) == "" {
		return model.ParsedComment{Date: fallback}
	}

	firstLine := ""
	for _, ln := range strings.FieldsFunc(comment, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if s := strings.TrimSpace(ln); s != "" {
			firstLine = s
			break
		}
	}

	// The note-added tag is read off the raw line, before tag stripping.
	noteAdded := parseNoteAdded(firstLine, defaultYear)

	// Strip tags like [API] or [12/12] before interpreting the rest.
	cleaned := strings.TrimSpace(bracketRe.ReplaceAllString(firstLine, ""))

	if strings.Contains(strings.ToLower(cleaned), "no etd") {
		return model.ParsedComment{NoETD: true, NoteAdded: noteAdded}
	}

	// Lines that do not open with a digit are status chatter, not dates.
	if cleaned == "" || cleaned[0] < '0' || cleaned[0] > '9' {
		return model.ParsedComment{NoteAdded: noteAdded}
	}

	m := dateRe.FindStringSubmatch(cleaned)
	if m == nil {
		return model.ParsedComment{NoteAdded: noteAdded}
	}

	date := buildDate(m[1], m[2], m[3], defaultYear)
	return model.ParsedComment{Date: date, NoteAdded: noteAdded}
}

// parseNoteAdded extracts the first bracket date like [12/12] or [12-12].
func parseNoteAdded(line string, defaultYear int) *time.Time {
	m := noteAddedRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return buildDate(m[1], m[2], "", defaultYear)
}

// buildDate assembles a day-first date, expanding 2-digit years and falling
// back to defaultYear when the year is missing. Calendar-invalid input (day
// 32, month 13, 3-digit years) yields nil.
func buildDate(dayStr, monthStr, yearStr string, defaultYear int) *time.Time {
	year := defaultYear
	switch len(yearStr) {
	case 0:
	case 2:
		year = 2000 + atoi(yearStr)
	case 4:
		year = atoi(yearStr)
	default:
		return nil
	}

	day := atoi(dayStr)
	month := atoi(monthStr)

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != time.Month(month) || d.Year() != year {
		// time.Date normalizes overflow, so a round-trip mismatch means the
		// components were not a real calendar date.
		return nil
	}
	return &d
}

// atoi converts a digits-only string already vetted by regex match.
func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
