// Package apply carries parsed supplier ETAs onto sales-order notes. The
// selection policy is deliberately simple: the first purchase-order line with
// a usable date wins for its SKU.
package apply

import (
	"time"

	"github.com/example/etaflow/internal/etd"
	"github.com/example/etaflow/internal/model"
	"github.com/example/etaflow/internal/note"
)

// topLineLayout is how an ETA renders as a note's top status line.
const topLineLayout = "02/01/2006"

// Result records the outcome of merging an ETA into one sales-order line.
type Result struct {
	OrderID string
	SKU     string
	OldNote string
	NewNote string
	Changed bool
}

// BuildSKUIndex parses every purchase-order comment and keeps the first
// usable date per SKU. Comments without a date contribute nothing.
func BuildSKUIndex(lines []model.POLine, defaultYear int) map[string]time.Time {
	index := make(map[string]time.Time)
	for _, line := range lines {
		if _, ok := index[line.SKU]; ok {
			continue
		}
		parsed := etd.Parse(line.Comment, nil, defaultYear)
		if parsed.HasDate() {
			index[line.SKU] = *parsed.Date
		}
	}
	return index
}

// ApplyETAs merges the indexed ETA, when one exists, into each sales-order
// line's note. Lines whose SKU has no ETA pass through unchanged.
func ApplyETAs(lines []model.OrderLine, etas map[string]time.Time) []Result {
	results := make([]Result, 0, len(lines))
	for _, line := range lines {
		r := Result{
			OrderID: line.OrderID,
			SKU:     line.SKU,
			OldNote: line.LineNote,
			NewNote: line.LineNote,
		}
		if eta, ok := etas[line.SKU]; ok {
			r.NewNote = note.Merge(line.LineNote, eta.Format(topLineLayout))
			r.Changed = r.NewNote != line.LineNote
		}
		results = append(results, r)
	}
	return results
}
