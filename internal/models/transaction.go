package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a received-money row. The event timestamp, not the
// audit created_at, is the time axis all balance math runs on.
type Transaction struct {
	TransactionID string              `json:"transactionID" db:"transaction_id"`
	CardID        string              `json:"cardID" db:"card_id"`
	ClientID      string              `json:"clientID" db:"client_id"`
	Timestamp     time.Time           `json:"timestamp" db:"timestamp"`
	AmountRUB     decimal.Decimal     `json:"amountRUB" db:"amount_rub"`
	AmountUSD     decimal.Decimal     `json:"amountUSD" db:"amount_usd"`
	Rate          decimal.NullDecimal `json:"rate" db:"rate"`
	Notes         string              `json:"notes" db:"notes"`
	AuditFields
}
