package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents money received on a card on behalf of a client at a
// specific instant. Timestamp is the event time and is the time axis used by
// the balance engine; CreatedAt (audit) only records when the row was entered.
type Transaction struct {
	TransactionID string           `json:"transactionID"` // Primary Key (UUID)
	CardID        string           `json:"cardID"`        // FK -> cards.card_id (Not Null)
	ClientID      string           `json:"clientID"`      // FK -> clients.client_id (Not Null)
	Timestamp     time.Time        `json:"timestamp"`     // Event time, absolute instant
	AmountRUB     decimal.Decimal  `json:"amountRUB"`     // Primary currency amount, 2 decimal places
	AmountUSD     decimal.Decimal  `json:"amountUSD"`     // Reference currency amount, 2 decimal places
	Rate          *decimal.Decimal `json:"rate"`          // Derived amountRUB/amountUSD, 6 places, nil when AmountUSD is zero
	Notes         string           `json:"notes"`
	AuditFields
}

// DeriveRate computes the implied exchange rate for the given amounts.
// Returns nil when the reference amount is zero; never errors.
func DeriveRate(amountRUB, amountUSD decimal.Decimal) *decimal.Decimal {
	if amountUSD.IsZero() {
		return nil
	}
	rate := amountRUB.Div(amountUSD).Round(6)
	return &rate
}
