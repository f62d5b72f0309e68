package services

import (
	"context"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
)

// ReportingSvcFacade defines operations for generating aggregate reports
type ReportingSvcFacade interface {
	// CardTotals computes range totals for every card over the optional date
	// range, plus an overall row summing the per-card values.
	CardTotals(ctx context.Context, start, end *time.Time) ([]domain.CardTotals, *domain.RangeTotals, error)

	// PaymentsSummary aggregates receipts per (date, client) over the optional
	// range, ordered by date descending then client name.
	PaymentsSummary(ctx context.Context, start, end *time.Time, clientID *string) ([]domain.PaymentSummaryRow, error)
}
