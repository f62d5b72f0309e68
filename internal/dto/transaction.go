package dto

import (
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record received money.
// Amounts are submitted as text and accept both '.' and ',' decimal
// separators with optional thousands spaces.
type CreateTransactionRequest struct {
	CardID    string `json:"cardID" binding:"required"`
	ClientID  string `json:"clientID" binding:"required"`
	Timestamp string `json:"timestamp"` // Event time; empty means now
	AmountRUB string `json:"amountRUB" binding:"required,flexdecimal"`
	AmountUSD string `json:"amountUSD" binding:"omitempty,flexdecimal"` // Blank means zero
	Notes     string `json:"notes"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Timestamp carries the displayed text; OriginalTimestamp echoes the stored
// instant (RFC3339) so an unedited display string never gets reinterpreted.
type UpdateTransactionRequest struct {
	CardID            *string `json:"cardID"`
	ClientID          *string `json:"clientID"`
	Timestamp         *string `json:"timestamp"`
	OriginalTimestamp *string `json:"originalTimestamp"`
	AmountRUB         *string `json:"amountRUB" binding:"omitempty,flexdecimal"`
	AmountUSD         *string `json:"amountUSD" binding:"omitempty,flexdecimal"`
	Notes             *string `json:"notes"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID    string           `json:"transactionID"`
	CardID           string           `json:"cardID"`
	ClientID         string           `json:"clientID"`
	Timestamp        time.Time        `json:"timestamp"`
	TimestampDisplay string           `json:"timestampDisplay"` // Rendered in the reference timezone
	AmountRUB        decimal.Decimal  `json:"amountRUB"`
	AmountUSD        decimal.Decimal  `json:"amountUSD"`
	Rate             *decimal.Decimal `json:"rate"`
	Notes            string           `json:"notes"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
// The display string is rendered in the given location.
func ToTransactionResponse(txn *domain.Transaction, loc *time.Location) TransactionResponse {
	return TransactionResponse{
		TransactionID:    txn.TransactionID,
		CardID:           txn.CardID,
		ClientID:         txn.ClientID,
		Timestamp:        txn.Timestamp,
		TimestampDisplay: txn.Timestamp.In(loc).Format("02/01/2006 15:04"),
		AmountRUB:        txn.AmountRUB,
		AmountUSD:        txn.AmountUSD,
		Rate:             txn.Rate,
		Notes:            txn.Notes,
		CreatedAt:        txn.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to DTOs
func ToListTransactionResponse(txns []domain.Transaction, loc *time.Location) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i], loc)
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	CardID    string `form:"card_id"`
	ClientID  string `form:"client_id"`
	From      string `form:"from"` // Date, inclusive
	To        string `form:"to"`   // Date, inclusive
	PageSize  int    `form:"page_size,default=50"`
	PageToken string `form:"page_token"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions  []TransactionResponse `json:"transactions"`
	NextPageToken *string               `json:"nextPageToken,omitempty"`
}
