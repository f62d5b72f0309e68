package services

import (
	"context"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
)

// WithdrawalSvcFacade handles saving withdrawal amounts from the daily sheet.
type WithdrawalSvcFacade interface {
	// UpsertForDay creates or updates the single logical withdrawal row for
	// (card, date) inside one storage transaction: the fully-withdrawn flag is
	// always set explicitly from the request, a full withdrawal stores a null
	// amount, and stray duplicate rows for the key are removed. Malformed
	// amounts fail validation before anything is written.
	UpsertForDay(ctx context.Context, req dto.SaveSheetEntryRequest, updaterUserID string) (*domain.Withdrawal, error)
}
