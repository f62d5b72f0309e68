package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal represents one cash-withdrawal event against a card on a calendar
// day. Logically there is one record per (card, date); duplicate rows can
// appear transiently from concurrent edits and are collapsed before any
// aggregation, keeping the most recently timestamped one.
//
// When FullyWithdrawn is set, the stored WithdrawnRUB is meaningless: the
// effective amount is always the computed should-have for that (card, date).
type Withdrawal struct {
	WithdrawalID   string           `json:"withdrawalID"` // Primary Key (UUID)
	CardID         string           `json:"cardID"`       // FK -> cards.card_id (Not Null)
	Date           time.Time        `json:"date"`         // Calendar day the withdrawal applies to (midnight UTC)
	Timestamp      *time.Time       `json:"timestamp"`    // When the row was recorded; recency key for dedup, nullable
	FullyWithdrawn bool             `json:"fullyWithdrawn"`
	WithdrawnRUB   *decimal.Decimal `json:"withdrawnRUB"`  // Nullable; meaningful only when not fully withdrawn
	CommissionRUB  decimal.Decimal  `json:"commissionRUB"` // Non-negative fee, defaults to zero
	Note           string           `json:"note"`
	AuditFields
}

// DateKey returns the calendar-day key used to group withdrawals per card.
func (w Withdrawal) DateKey() string {
	return w.Date.Format(time.DateOnly)
}
