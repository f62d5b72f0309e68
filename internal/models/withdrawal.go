package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal represents one cash-withdrawal row. Logically there is one row
// per (card_id, date); duplicates from concurrent edits survive until the next
// write for the key cleans them up, so readers collapse them by recency.
type Withdrawal struct {
	WithdrawalID   string              `json:"withdrawalID" db:"withdrawal_id"`
	CardID         string              `json:"cardID" db:"card_id"`
	Date           time.Time           `json:"date" db:"date"`
	Timestamp      sql.NullTime        `json:"timestamp" db:"timestamp"`
	FullyWithdrawn bool                `json:"fullyWithdrawn" db:"fully_withdrawn"`
	WithdrawnRUB   decimal.NullDecimal `json:"withdrawnRUB" db:"withdrawn_rub"`
	CommissionRUB  decimal.Decimal     `json:"commissionRUB" db:"commission_rub"`
	Note           string              `json:"note" db:"note"`
	AuditFields
}
