// Package rules decides whether an automated status email should be sent for
// a sales order. The rules form a linear decision list evaluated strictly in
// order; the first rule that fires terminates evaluation. Rule order encodes
// business priority and must not be rearranged.
package rules

import (
	"strconv"
	"strings"
	"time"

	"github.com/example/etaflow/internal/model"
)

// DefaultRelayDomains are email domains of marketplace relays that must never
// receive automated status mail.
var DefaultRelayDomains = []string{"@members.ebay.com"}

// longETDDays is the gap between order creation and order-level ETA beyond
// which the delivery counts as long.
const longETDDays = 28

// Clock supplies the current date to the past-ETA rule, injectable for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Engine evaluates sales orders against the send rules.
type Engine struct {
	clock        Clock
	relayDomains []string
	guards       []guard
}

// guard inspects the evaluation in progress and returns a terminal decision,
// or nil to pass control to the next rule. Guards may record derived state on
// the evaluation for rules behind them.
type guard func(*evaluation) *model.EmailDecision

// evaluation carries per-order state accumulated as the rule list runs.
type evaluation struct {
	order      model.SalesOrder
	active     []model.OrderLine
	eta        *time.Time
	created    *time.Time
	hasNoETD   bool
	hasLongETD bool
}

// NewEngine builds an Engine. A nil clock falls back to the system clock;
// empty relayDomains fall back to DefaultRelayDomains.
func NewEngine(clock Clock, relayDomains []string) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	if len(relayDomains) == 0 {
		relayDomains = DefaultRelayDomains
	}

	e := &Engine{clock: clock, relayDomains: relayDomains}
	e.guards = []guard{
		e.skipEmpty,
		e.skipMarketplaceRelay,
		e.skipAllSatisfied,
		e.skipDiscontinued,
		e.skipPastOrderETA,
		e.skipBlankLineETD,
		e.skipMixedSignals,
		e.send,
	}
	return e
}

// Decide evaluates one sales order and always produces a decision with a
// reason code. Malformed quantities coerce to zero and malformed dates to
// absent; there is no error outcome.
func (e *Engine) Decide(order model.SalesOrder) model.EmailDecision {
	ev := &evaluation{order: order}
	for _, g := range e.guards {
		if d := g(ev); d != nil {
			return *d
		}
	}
	// The send guard is terminal, so this is unreachable.
	return model.EmailDecision{Reason: model.ReasonNormal, ShouldSend: true}
}

func skip(reason model.ReasonCode) *model.EmailDecision {
	return &model.EmailDecision{Reason: reason}
}

func (e *Engine) skipEmpty(ev *evaluation) *model.EmailDecision {
	if len(ev.order.Lines) == 0 {
		return skip(model.ReasonSkipEmpty)
	}
	return nil
}

func (e *Engine) skipMarketplaceRelay(ev *evaluation) *model.EmailDecision {
	for _, line := range ev.order.Lines {
		addr := strings.ToLower(strings.TrimSpace(line.Email))
		for _, domain := range e.relayDomains {
			if strings.HasSuffix(addr, strings.ToLower(domain)) {
				return skip(model.ReasonSkipEbay)
			}
		}
	}
	return nil
}

// skipAllSatisfied drops lines that are fully dispatched or fully held. When
// nothing remains the order needs no email; otherwise the surviving active
// lines feed every rule behind this one.
func (e *Engine) skipAllSatisfied(ev *evaluation) *model.EmailDecision {
	for _, line := range ev.order.Lines {
		ordered := parseQty(line.QtyOrdered)
		if parseQty(line.DispatchQty) >= ordered || parseQty(line.HoldingQty) >= ordered {
			continue
		}
		ev.active = append(ev.active, line)
	}
	if len(ev.active) == 0 {
		return skip(model.ReasonSkipAllSatisfied)
	}
	return nil
}

func (e *Engine) skipDiscontinued(ev *evaluation) *model.EmailDecision {
	for _, line := range ev.active {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line.LineNote)), "dis") {
			return skip(model.ReasonSkipDiscontinued)
		}
	}
	return nil
}

// skipPastOrderETA reads the order-level dates off the first active line; all
// lines in a group share them.
func (e *Engine) skipPastOrderETA(ev *evaluation) *model.EmailDecision {
	first := ev.active[0]
	ev.eta = parseDate(first.OrderETA)
	ev.created = parseDate(first.OrderCreated)

	today := midnight(e.clock.Now())
	if ev.eta != nil && ev.eta.Before(today) {
		return skip(model.ReasonSkipPastETD)
	}
	return nil
}

// skipBlankLineETD classifies every active line's ETD signal. A blank or
// unparseable signal anywhere in the group blocks sending outright,
// regardless of what the other lines say.
func (e *Engine) skipBlankLineETD(ev *evaluation) *model.EmailDecision {
	for _, line := range ev.active {
		signal := etdSignal(line.LineNote)
		switch {
		case signal == "":
			return skip(model.ReasonSkipBlankETD)
		case strings.HasPrefix(strings.ToLower(signal), "no etd"):
			ev.hasNoETD = true
		case parseDate(signal) == nil:
			return skip(model.ReasonSkipBlankETD)
		}
	}
	return nil
}

// skipMixedSignals routes orders with both a "no ETD" line and a long
// order-level ETA to a human; the signals contradict each other.
func (e *Engine) skipMixedSignals(ev *evaluation) *model.EmailDecision {
	if ev.eta != nil && ev.created != nil {
		ev.hasLongETD = ev.eta.Sub(*ev.created) > longETDDays*24*time.Hour
	}
	if ev.hasNoETD && ev.hasLongETD {
		return &model.EmailDecision{Reason: model.ReasonSkipMixedETD, ETA: ev.eta}
	}
	return nil
}

// send is the terminal guard: anything that survived the skip rules gets an
// email, flavored by which ETA signal applies.
func (e *Engine) send(ev *evaluation) *model.EmailDecision {
	switch {
	case ev.hasNoETD:
		return &model.EmailDecision{Reason: model.ReasonNoETD, ShouldSend: true}
	case ev.hasLongETD:
		return &model.EmailDecision{Reason: model.ReasonLongETD, ShouldSend: true, ETA: ev.eta}
	default:
		return &model.EmailDecision{Reason: model.ReasonNormal, ShouldSend: true, ETA: ev.eta}
	}
}

// etdSignal is the first non-blank line of a line note, trimmed.
func etdSignal(note string) string {
	for _, ln := range strings.FieldsFunc(note, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if s := strings.TrimSpace(ln); s != "" {
			return s
		}
	}
	return ""
}

// parseQty coerces a quantity cell to a number, treating anything malformed
// or missing as zero.
func parseQty(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// dateLayouts are tried in order for order-level and line-level dates.
// Day-first layouts come first to match how the dates are written.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2/1/06",
	"2-1-06",
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// parseDate coerces a date cell to a midnight timestamp, or nil when the cell
// is blank or unparseable.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = midnight(t)
			return &t
		}
	}
	return nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
