package repositories

import (
	"context"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
)

// ReportingRepositoryFacade defines operations for retrieving aggregated report data
type ReportingRepositoryFacade interface {
	// GetPaymentSummaries aggregates received amounts per (date, client) over
	// the optional date range and optional client, ordered by date descending
	// then client name ascending. Dates are evaluated in the given reference
	// timezone.
	GetPaymentSummaries(ctx context.Context, from, to *time.Time, clientID *string, tz string) ([]domain.PaymentSummaryRow, error)
}
