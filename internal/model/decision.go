package model

import "time"

// ReasonCode identifies why an email decision was made. Codes are stable
// machine identifiers consumed by the notification sender, not display text.
type ReasonCode string

// Reason code constants. The skip_* codes all carry ShouldSend=false.
const (
	ReasonNormal  ReasonCode = "normal"
	ReasonNoETD   ReasonCode = "no_etd"
	ReasonLongETD ReasonCode = "long_etd"

	ReasonSkipEmpty        ReasonCode = "skip_empty"
	ReasonSkipEbay         ReasonCode = "skip_ebay"
	ReasonSkipAllSatisfied ReasonCode = "skip_all_satisfied"
	ReasonSkipDiscontinued ReasonCode = "skip_discontinued"
	ReasonSkipPastETD      ReasonCode = "skip_past_etd"
	ReasonSkipBlankETD     ReasonCode = "skip_blank_or_unparseable_line_etd"
	ReasonSkipMixedETD     ReasonCode = "skip_mixed_etd_manual"
)

// EmailDecision is the outcome of evaluating one sales order against the
// send rules. Reason is always set, even when ShouldSend is false.
type EmailDecision struct {
	ETA        *time.Time // optional context for the email body
	Reason     ReasonCode
	ShouldSend bool
}
