package dto

import (
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveSheetEntryRequest defines one withdrawal entry saved from the daily
// sheet. Amounts are submitted as text and accept both '.' and ',' decimal
// separators with optional thousands spaces; blank means zero. The
// fully-withdrawn flag is always applied, checked or not.
type SaveSheetEntryRequest struct {
	CardID         string `json:"cardID" binding:"required"`
	Date           string `json:"date" binding:"required"` // Calendar day, e.g. 02/01/2006
	FullyWithdrawn bool   `json:"fullyWithdrawn"`
	WithdrawnRUB   string `json:"withdrawnRUB" binding:"omitempty,flexdecimal"`
	CommissionRUB  string `json:"commissionRUB" binding:"omitempty,flexdecimal"`
	Note           string `json:"note"`
}

// WithdrawalResponse defines the data returned for a withdrawal row.
type WithdrawalResponse struct {
	WithdrawalID   string           `json:"withdrawalID"`
	CardID         string           `json:"cardID"`
	Date           string           `json:"date"` // YYYY-MM-DD
	Timestamp      *time.Time       `json:"timestamp"`
	FullyWithdrawn bool             `json:"fullyWithdrawn"`
	WithdrawnRUB   *decimal.Decimal `json:"withdrawnRUB"`
	CommissionRUB  decimal.Decimal  `json:"commissionRUB"`
	Note           string           `json:"note"`
}

// ToWithdrawalResponse converts a domain.Withdrawal to WithdrawalResponse DTO
func ToWithdrawalResponse(w *domain.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		WithdrawalID:   w.WithdrawalID,
		CardID:         w.CardID,
		Date:           w.DateKey(),
		Timestamp:      w.Timestamp,
		FullyWithdrawn: w.FullyWithdrawn,
		WithdrawnRUB:   w.WithdrawnRUB,
		CommissionRUB:  w.CommissionRUB,
		Note:           w.Note,
	}
}
