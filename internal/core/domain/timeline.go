package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimelineEventKind distinguishes credit and debit entries on a card timeline.
type TimelineEventKind string

const (
	TimelineCredit TimelineEventKind = "TRANSACTION" // money received
	TimelineDebit  TimelineEventKind = "WITHDRAWAL"  // money taken out
)

// TimelineEvent is one entry in a card's merged event stream. Credits carry
// Amount; debits carry Withdrawn and Commission. RunningBalance is the card
// balance after this event was applied.
type TimelineEvent struct {
	Kind           TimelineEventKind `json:"kind"`
	SourceID       string            `json:"sourceID"` // Transaction or Withdrawal ID
	Time           time.Time         `json:"time"`     // Event instant used for ordering
	Amount         decimal.Decimal   `json:"amount"`   // Credit amount; zero for debits
	Withdrawn      decimal.Decimal   `json:"withdrawn"`
	Commission     decimal.Decimal   `json:"commission"`
	FullyWithdrawn bool              `json:"fullyWithdrawn"` // Debits only
	ClientName     string            `json:"clientName"`     // Credits only
	Note           string            `json:"note"`
	RunningBalance decimal.Decimal   `json:"runningBalance"`
}

// TimelineFilter narrows which events are returned. Filtering is a final
// projection; it never changes the running-balance walk.
type TimelineFilter struct {
	Kind TimelineEventKind // Empty means both kinds
	Text string            // Case-insensitive substring over client name and note
}
