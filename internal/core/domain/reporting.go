package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RangeTotals is the simple per-card aggregate over a date range: received,
// effectively withdrawn, commission, and their difference. Deliberately not
// carry-aware; with no range start it covers the card's whole history.
type RangeTotals struct {
	Received   decimal.Decimal `json:"received"`
	Withdrawn  decimal.Decimal `json:"withdrawn"`
	Commission decimal.Decimal `json:"commission"`
	Balance    decimal.Decimal `json:"balance"` // received - withdrawn - commission
}

// CardTotals pairs a card with its range totals for listing/reporting views.
type CardTotals struct {
	CardID string      `json:"cardID"`
	Label  string      `json:"label"`
	Bank   string      `json:"bank"`
	Status CardStatus  `json:"status"`
	Totals RangeTotals `json:"totals"`
}

// DayBalance is the balance-engine view of one card on one day.
type DayBalance struct {
	CardID     string          `json:"cardID"`
	Day        time.Time       `json:"day"`
	Carried    decimal.Decimal `json:"carried"`
	Received   decimal.Decimal `json:"received"`
	ShouldHave decimal.Decimal `json:"shouldHave"`
}

// PaymentSummaryRow aggregates one client's receipts on one calendar day.
type PaymentSummaryRow struct {
	Date       time.Time       `json:"date"`
	ClientID   string          `json:"clientID"`
	ClientName string          `json:"clientName"`
	AmountRUB  decimal.Decimal `json:"amountRUB"`
	AmountUSD  decimal.Decimal `json:"amountUSD"`
}
