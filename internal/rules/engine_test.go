package rules

import (
	"testing"
	"time"

	"github.com/example/etaflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock pins "today" for the past-ETA rule.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testToday = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func testEngine() *Engine {
	return NewEngine(fixedClock{now: testToday}, nil)
}

// line builds an unsatisfied order line with sane defaults: one unit ordered,
// nothing dispatched or held, dated ETD note, order ETA 10 days out.
func line(overrides func(*model.OrderLine)) model.OrderLine {
	l := model.OrderLine{
		OrderID:      "SO-1",
		SKU:          "SKU-A",
		Email:        "customer@example.com",
		QtyOrdered:   "1",
		HoldingQty:   "0",
		DispatchQty:  "0",
		LineNote:     "20/06/2025",
		OrderETA:     "25/06/2025",
		OrderCreated: "01/06/2025",
	}
	if overrides != nil {
		overrides(&l)
	}
	return l
}

func order(lines ...model.OrderLine) model.SalesOrder {
	return model.SalesOrder{ID: "SO-1", Lines: lines}
}

func TestDecideRuleOrder(t *testing.T) {
	tests := []struct {
		name       string
		order      model.SalesOrder
		wantReason model.ReasonCode
		wantSend   bool
		wantETA    string
	}{
		{
			name:       "empty group",
			order:      model.SalesOrder{ID: "SO-1"},
			wantReason: model.ReasonSkipEmpty,
		},
		{
			name: "marketplace relay address",
			order: order(line(func(l *model.OrderLine) {
				l.Email = "buyer-abc123@members.ebay.com"
			})),
			wantReason: model.ReasonSkipEbay,
		},
		{
			name: "relay beats everything behind it",
			order: order(
				line(func(l *model.OrderLine) { l.Email = "x@members.ebay.com"; l.LineNote = "" }),
			),
			wantReason: model.ReasonSkipEbay,
		},
		{
			name: "all lines dispatched",
			order: order(
				line(func(l *model.OrderLine) { l.DispatchQty = "1" }),
				line(func(l *model.OrderLine) { l.QtyOrdered = "3"; l.HoldingQty = "3" }),
			),
			wantReason: model.ReasonSkipAllSatisfied,
		},
		{
			name: "malformed ordered quantity coerces to zero and satisfies",
			order: order(
				line(func(l *model.OrderLine) { l.QtyOrdered = "n/a" }),
			),
			wantReason: model.ReasonSkipAllSatisfied,
		},
		{
			name: "satisfied line does not block active ones",
			order: order(
				line(func(l *model.OrderLine) { l.DispatchQty = "1"; l.LineNote = "" }),
				line(nil),
			),
			wantReason: model.ReasonNormal,
			wantSend:   true,
			wantETA:    "2025-06-25",
		},
		{
			name: "discontinued line",
			order: order(
				line(func(l *model.OrderLine) { l.LineNote = "Discontinued by supplier" }),
			),
			wantReason: model.ReasonSkipDiscontinued,
		},
		{
			name: "discontinued wins over blank sibling",
			order: order(
				line(func(l *model.OrderLine) { l.LineNote = "" }),
				line(func(l *model.OrderLine) { l.SKU = "SKU-B"; l.LineNote = "dis - gone" }),
			),
			wantReason: model.ReasonSkipDiscontinued,
		},
		{
			name: "order ETA in the past",
			order: order(
				line(func(l *model.OrderLine) { l.OrderETA = "10/06/2025" }),
			),
			wantReason: model.ReasonSkipPastETD,
		},
		{
			name: "blank line ETD blocks sending",
			order: order(
				line(nil),
				line(func(l *model.OrderLine) { l.SKU = "SKU-B"; l.LineNote = "" }),
			),
			wantReason: model.ReasonSkipBlankETD,
		},
		{
			name: "unparseable line ETD blocks sending",
			order: order(
				line(func(l *model.OrderLine) { l.LineNote = "chasing supplier" }),
			),
			wantReason: model.ReasonSkipBlankETD,
		},
		{
			name: "no etd plus long order ETA needs a human",
			order: order(
				line(func(l *model.OrderLine) {
					l.LineNote = "No ETD"
					l.OrderETA = "20/07/2025"
				}),
			),
			wantReason: model.ReasonSkipMixedETD,
			wantETA:    "2025-07-20",
		},
		{
			name: "no etd alone sends",
			order: order(
				line(func(l *model.OrderLine) { l.LineNote = "No ETD" }),
			),
			wantReason: model.ReasonNoETD,
			wantSend:   true,
		},
		{
			name: "long order ETA alone sends with eta",
			order: order(
				line(func(l *model.OrderLine) {
					l.OrderETA = "20/07/2025"
					l.LineNote = "18/07/2025"
				}),
			),
			wantReason: model.ReasonLongETD,
			wantSend:   true,
			wantETA:    "2025-07-20",
		},
		{
			name:       "normal order sends with eta",
			order:      order(line(nil)),
			wantReason: model.ReasonNormal,
			wantSend:   true,
			wantETA:    "2025-06-25",
		},
		{
			name: "unparseable order dates coerce to absent",
			order: order(
				line(func(l *model.OrderLine) {
					l.OrderETA = "sometime soon"
					l.OrderCreated = "???"
				}),
			),
			wantReason: model.ReasonNormal,
			wantSend:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testEngine().Decide(tt.order)

			assert.Equal(t, tt.wantReason, got.Reason)
			assert.Equal(t, tt.wantSend, got.ShouldSend)

			if tt.wantETA == "" {
				assert.Nil(t, got.ETA)
			} else {
				require.NotNil(t, got.ETA)
				assert.Equal(t, tt.wantETA, got.ETA.Format("2006-01-02"))
			}
		})
	}
}

func TestDecideReasonAlwaysSet(t *testing.T) {
	orders := []model.SalesOrder{
		{},
		order(line(nil)),
		order(line(func(l *model.OrderLine) { l.LineNote = "" })),
	}

	for _, o := range orders {
		got := testEngine().Decide(o)
		assert.NotEmpty(t, got.Reason)
	}
}

func TestDecideMultiLineNoteUsesFirstLine(t *testing.T) {
	// The ETD signal is the note's top line; history below it is ignored.
	o := order(line(func(l *model.OrderLine) {
		l.LineNote = "20/06/2025\nolder chatter\nNo ETD"
	}))

	got := testEngine().Decide(o)
	assert.Equal(t, model.ReasonNormal, got.Reason)
	assert.True(t, got.ShouldSend)
}

func TestDecideCustomRelayDomains(t *testing.T) {
	engine := NewEngine(fixedClock{now: testToday}, []string{"@marketplace.amazon.com"})

	o := order(line(func(l *model.OrderLine) {
		l.Email = "buyer@marketplace.amazon.com"
	}))
	assert.Equal(t, model.ReasonSkipEbay, engine.Decide(o).Reason)

	// The default relay is no longer in the list.
	o = order(line(func(l *model.OrderLine) {
		l.Email = "x@members.ebay.com"
	}))
	assert.Equal(t, model.ReasonNormal, engine.Decide(o).Reason)
}
