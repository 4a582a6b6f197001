// Package note builds customer-facing order notes under the order system's
// length constraints. Notes are ordered lines, newest status on top.
package note

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Default length budgets for a merged note, in characters. SoftLimit is the
// target the bottom-eviction pass trims to; HardLimit is the absolute field
// size.
const (
	SoftLimit = 230
	HardLimit = 256
)

// truncationMark closes a line that had to be cut at the hard limit.
const truncationMark = "…"

var spaceRe = regexp.MustCompile(`\s+`)

// MergeTopLine prepends newTopLine to existingNote, de-duplicating and
// evicting the oldest lines from the bottom until the note fits. The result
// never exceeds hardLimit characters. An empty newTopLine returns the
// normalized existing note untouched.
func MergeTopLine(existingNote, newTopLine string, softLimit, hardLimit int) string {
	old := normalizeLines(existingNote)
	top := normalizeLine(newTopLine)
	if top == "" {
		return strings.Join(old, "\n")
	}

	// Re-stating the same status must not stack duplicates.
	kept := old[:0]
	for _, ln := range old {
		if !strings.EqualFold(ln, top) {
			kept = append(kept, ln)
		}
	}
	lines := append([]string{top}, kept...)

	if utf8.RuneCountInString(lines[0]) > hardLimit {
		lines[0] = truncate(lines[0], hardLimit)
	}

	// Soft pass: evict oldest content from the bottom. The top line is the
	// newest status and is never evicted while alternatives remain.
	for joinedLen(lines) > softLimit && len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}

	// Hard pass, rarely needed when soft < hard.
	for joinedLen(lines) > hardLimit && len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}

	merged := strings.Join(lines, "\n")
	if utf8.RuneCountInString(merged) > hardLimit {
		merged = truncate(merged, hardLimit)
	}

	return merged
}

// Merge applies MergeTopLine with the default limits.
func Merge(existingNote, newTopLine string) string {
	return MergeTopLine(existingNote, newTopLine, SoftLimit, HardLimit)
}

// joinedLen is the character length of the lines once joined by newlines.
func joinedLen(lines []string) int {
	n := len(lines) - 1
	for _, ln := range lines {
		n += utf8.RuneCountInString(ln)
	}
	return n
}

// normalizeLines splits on any line-ending convention, normalizes each line
// and drops blanks, preserving order.
func normalizeLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var out []string
	for _, ln := range strings.Split(s, "\n") {
		if n := normalizeLine(ln); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// normalizeLine trims and collapses internal whitespace runs to one space.
func normalizeLine(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func truncate(s string, limit int) string {
	return string([]rune(s)[:limit-1]) + truncationMark
}
