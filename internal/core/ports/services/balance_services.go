package services

import (
	"context"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceReaderSvc exposes the balance engine's per-card computations.
// All day parameters are calendar days; instants are evaluated in the
// configured reference timezone.
type BalanceReaderSvc interface {
	// CarriedBalance returns the balance carried into day from all activity
	// strictly before it, under the reset-on-full policy: the window opens the
	// day after the most recent full withdrawal before day, receipts in the
	// window count in full, non-full withdrawals subtract their recorded
	// withdrawn+commission, and the result never goes below zero.
	CarriedBalance(ctx context.Context, cardID string, day time.Time) (decimal.Decimal, error)

	// ReceivedOnDay returns the sum of transaction amounts received on the
	// card during the calendar day.
	ReceivedOnDay(ctx context.Context, cardID string, day time.Time) (decimal.Decimal, error)

	// ShouldHave returns CarriedBalance plus ReceivedOnDay: the amount that
	// should be sitting on the card as of end of day.
	ShouldHave(ctx context.Context, cardID string, day time.Time) (decimal.Decimal, error)

	// BalanceOnDay returns the three figures above in one call.
	BalanceOnDay(ctx context.Context, cardID string, day time.Time) (*domain.DayBalance, error)

	// RangeTotals returns the card's simple received/withdrawn/commission/
	// balance aggregate over the optional date range. Not carry-aware.
	RangeTotals(ctx context.Context, cardID string, start, end *time.Time) (*domain.RangeTotals, error)
}

// WithdrawalMathSvc exposes the engine's pure withdrawal helpers.
type WithdrawalMathSvc interface {
	// DedupeByDate collapses duplicate rows per (card, date), keeping the one
	// with the greatest (timestamp, id), and returns the survivors in
	// chronological order. Idempotent.
	DedupeByDate(withdrawals []domain.Withdrawal) []domain.Withdrawal

	// EffectiveWithdrawn returns the amount actually drained by the record:
	// the computed should-have for fully withdrawn rows, otherwise the stored
	// amount (zero when absent).
	EffectiveWithdrawn(ctx context.Context, withdrawal domain.Withdrawal) (decimal.Decimal, error)
}

// BalanceSvcFacade combines all balance-engine service interfaces
type BalanceSvcFacade interface {
	BalanceReaderSvc
	WithdrawalMathSvc
}
