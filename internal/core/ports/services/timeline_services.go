package services

import (
	"context"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
)

// TimelineSvcFacade builds the merged credit/debit event stream of a card.
type TimelineSvcFacade interface {
	// BuildTimeline merges the card's transactions and deduplicated
	// withdrawals over the optional date range into one stream ordered newest
	// first, each event stamped with the running balance after applying it.
	// The running balance is seeded with the carried balance at the range
	// start (zero when the range is open-ended). The filter is applied as a
	// final projection and never affects the balance walk.
	BuildTimeline(ctx context.Context, cardID string, start, end *time.Time, filter domain.TimelineFilter) ([]domain.TimelineEvent, error)
}
