package apply

import (
	"testing"
	"time"

	"github.com/example/etaflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSKUIndex(t *testing.T) {
	lines := []model.POLine{
		{POID: "PO-1", SKU: "SKU-A", Comment: "12/01/2026 confirmed"},
		{POID: "PO-2", SKU: "SKU-A", Comment: "20/02/2026"}, // first date wins
		{POID: "PO-3", SKU: "SKU-B", Comment: "No ETD"},
		{POID: "PO-4", SKU: "SKU-C", Comment: "ready soon"},
		{POID: "PO-5", SKU: "SKU-D", Comment: "05/03"},
	}

	index := BuildSKUIndex(lines, 2026)

	require.Len(t, index, 2)
	assert.Equal(t, time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), index["SKU-A"])
	assert.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), index["SKU-D"])
}

func TestApplyETAs(t *testing.T) {
	etas := map[string]time.Time{
		"SKU-A": time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
	}

	lines := []model.OrderLine{
		{OrderID: "SO-1", SKU: "SKU-A", LineNote: "awaiting stock"},
		{OrderID: "SO-1", SKU: "SKU-B", LineNote: "left alone"},
	}

	results := ApplyETAs(lines, etas)
	require.Len(t, results, 2)

	assert.True(t, results[0].Changed)
	assert.Equal(t, "12/01/2026\nawaiting stock", results[0].NewNote)

	assert.False(t, results[1].Changed)
	assert.Equal(t, "left alone", results[1].NewNote)
}

func TestApplyETAsIdempotent(t *testing.T) {
	etas := map[string]time.Time{
		"SKU-A": time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
	}
	lines := []model.OrderLine{{OrderID: "SO-1", SKU: "SKU-A", LineNote: "awaiting stock"}}

	first := ApplyETAs(lines, etas)
	lines[0].LineNote = first[0].NewNote

	second := ApplyETAs(lines, etas)
	assert.False(t, second[0].Changed)
	assert.Equal(t, first[0].NewNote, second[0].NewNote)
}
