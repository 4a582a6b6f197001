// Package model defines the core domain models used throughout the application.
package model

import "time"

// ParsedComment is the structured result of parsing one free-text PO line
// comment. Date and NoETD are mutually exclusive: a comment either yields a
// usable date, an explicit "No ETD" marker, or neither.
type ParsedComment struct {
	// Date is the extracted estimated arrival date, nil when absent.
	Date *time.Time
	// NoteAdded is an auxiliary date pulled from a bracket tag like [12/12],
	// recording when the comment was written. Nil when no tag exists.
	NoteAdded *time.Time
	// NoETD is true when the comment explicitly states there is no ETD.
	NoETD bool
}

// HasDate reports whether a usable arrival date was extracted.
func (p ParsedComment) HasDate() bool {
	return p.Date != nil
}
