package services

import (
	"context"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
)

// SheetSvcFacade builds the operator's daily withdrawal worksheet.
type SheetSvcFacade interface {
	// BuildDailySheet produces one row per active card with a nonzero
	// should-have amount on day, bank-grouped and filtered per the filter.
	// Totals cover the returned page only. Building a sheet never writes.
	BuildDailySheet(ctx context.Context, day time.Time, filter domain.SheetFilter) (*domain.DailySheet, error)
}
