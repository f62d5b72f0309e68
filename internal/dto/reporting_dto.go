package dto

import (
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportParams defines query parameters shared by the reporting endpoints.
type ReportParams struct {
	From     string `form:"from"` // Date, inclusive
	To       string `form:"to"`   // Date, inclusive
	ClientID string `form:"client_id"`
}

// RangeTotalsResponse carries the simple received/withdrawn/commission
// aggregate of a card (or of all cards) over a range.
type RangeTotalsResponse struct {
	Received   decimal.Decimal `json:"received"`
	Withdrawn  decimal.Decimal `json:"withdrawn"`
	Commission decimal.Decimal `json:"commission"`
	Balance    decimal.Decimal `json:"balance"`
}

// CardTotalsRowResponse represents one card row in the card totals report.
type CardTotalsRowResponse struct {
	CardID string              `json:"cardID"`
	Label  string              `json:"label"`
	Bank   string              `json:"bank"`
	Status domain.CardStatus   `json:"status"`
	Totals RangeTotalsResponse `json:"totals"`
}

// CardTotalsResponse represents the card totals report.
type CardTotalsResponse struct {
	FromDate string                  `json:"fromDate,omitempty"`
	ToDate   string                  `json:"toDate,omitempty"`
	Rows     []CardTotalsRowResponse `json:"rows"`
	Overall  RangeTotalsResponse     `json:"overall"`
}

// ToRangeTotalsResponse converts domain range totals to a DTO
func ToRangeTotalsResponse(t *domain.RangeTotals) RangeTotalsResponse {
	return RangeTotalsResponse{
		Received:   t.Received,
		Withdrawn:  t.Withdrawn,
		Commission: t.Commission,
		Balance:    t.Balance,
	}
}

// ToCardTotalsResponse converts per-card totals plus the overall row to a DTO response
func ToCardTotalsResponse(rows []domain.CardTotals, overall *domain.RangeTotals, from, to *time.Time) CardTotalsResponse {
	response := CardTotalsResponse{
		Rows: make([]CardTotalsRowResponse, len(rows)),
	}
	if from != nil {
		response.FromDate = from.Format(time.DateOnly)
	}
	if to != nil {
		response.ToDate = to.Format(time.DateOnly)
	}
	for i, row := range rows {
		response.Rows[i] = CardTotalsRowResponse{
			CardID: row.CardID,
			Label:  row.Label,
			Bank:   row.Bank,
			Status: row.Status,
			Totals: ToRangeTotalsResponse(&row.Totals),
		}
	}
	if overall != nil {
		response.Overall = ToRangeTotalsResponse(overall)
	}
	return response
}

// PaymentSummaryRowResponse aggregates one client's receipts on one day.
type PaymentSummaryRowResponse struct {
	Date       string          `json:"date"` // YYYY-MM-DD
	ClientID   string          `json:"clientID"`
	ClientName string          `json:"clientName"`
	AmountRUB  decimal.Decimal `json:"amountRUB"`
	AmountUSD  decimal.Decimal `json:"amountUSD"`
}

// PaymentsSummaryResponse represents the per-day per-client receipts report.
type PaymentsSummaryResponse struct {
	Rows   []PaymentSummaryRowResponse `json:"rows"`
	Totals struct {
		AmountRUB decimal.Decimal `json:"amountRUB"`
		AmountUSD decimal.Decimal `json:"amountUSD"`
	} `json:"totals"`
}

// ToPaymentsSummaryResponse converts payment summary rows to a DTO response
func ToPaymentsSummaryResponse(rows []domain.PaymentSummaryRow) PaymentsSummaryResponse {
	response := PaymentsSummaryResponse{
		Rows: make([]PaymentSummaryRowResponse, len(rows)),
	}

	totalRUB := decimal.Zero
	totalUSD := decimal.Zero

	for i, row := range rows {
		response.Rows[i] = PaymentSummaryRowResponse{
			Date:       row.Date.Format(time.DateOnly),
			ClientID:   row.ClientID,
			ClientName: row.ClientName,
			AmountRUB:  row.AmountRUB,
			AmountUSD:  row.AmountUSD,
		}
		totalRUB = totalRUB.Add(row.AmountRUB)
		totalUSD = totalUSD.Add(row.AmountUSD)
	}

	response.Totals.AmountRUB = totalRUB
	response.Totals.AmountUSD = totalUSD

	return response
}

// DayBalanceResponse is the balance-engine view of one card on one day.
type DayBalanceResponse struct {
	CardID     string          `json:"cardID"`
	Day        string          `json:"day"` // YYYY-MM-DD
	Carried    decimal.Decimal `json:"carried"`
	Received   decimal.Decimal `json:"received"`
	ShouldHave decimal.Decimal `json:"shouldHave"`
}

// ToDayBalanceResponse converts a domain.DayBalance to DayBalanceResponse DTO
func ToDayBalanceResponse(b *domain.DayBalance) DayBalanceResponse {
	return DayBalanceResponse{
		CardID:     b.CardID,
		Day:        b.Day.Format(time.DateOnly),
		Carried:    b.Carried,
		Received:   b.Received,
		ShouldHave: b.ShouldHave,
	}
}
