package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceServiceImpl implements the BalanceSvcFacade interface
type balanceServiceImpl struct {
	BaseService
	cardRepo        portsrepo.CardRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	withdrawalRepo  portsrepo.WithdrawalRepositoryWithTx
	loc             *time.Location
}

// NewBalanceServiceImpl creates the balance engine service
func NewBalanceServiceImpl(cardRepo portsrepo.CardRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade, withdrawalRepo portsrepo.WithdrawalRepositoryWithTx, loc *time.Location) portssvc.BalanceSvcFacade {
	return &balanceServiceImpl{
		cardRepo:        cardRepo,
		transactionRepo: transactionRepo,
		withdrawalRepo:  withdrawalRepo,
		loc:             loc,
	}
}

// Ensure balanceServiceImpl implements the BalanceSvcFacade interface
var _ portssvc.BalanceSvcFacade = (*balanceServiceImpl)(nil)

// loadCalc verifies the card exists and builds a calc over its full history.
func (s *balanceServiceImpl) loadCalc(ctx context.Context, cardID string) (*balanceCalc, error) {
	if _, err := s.cardRepo.FindCardByID(ctx, cardID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find card for balance computation",
				slog.String("card_id", cardID))
		}
		return nil, err
	}

	txns, err := s.transactionRepo.ListForCards(ctx, []string{cardID}, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for balance computation",
			slog.String("card_id", cardID))
		return nil, fmt.Errorf("failed to load transactions for card %s: %w", cardID, err)
	}

	withdrawals, err := s.withdrawalRepo.ListForCards(ctx, []string{cardID}, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load withdrawals for balance computation",
			slog.String("card_id", cardID))
		return nil, fmt.Errorf("failed to load withdrawals for card %s: %w", cardID, err)
	}

	return newBalanceCalc(s.loc, txns, dedupeWithdrawals(withdrawals)), nil
}

func (s *balanceServiceImpl) CarriedBalance(ctx context.Context, cardID string, day time.Time) (decimal.Decimal, error) {
	calc, err := s.loadCalc(ctx, cardID)
	if err != nil {
		return decimal.Zero, err
	}
	return calc.carriedBalance(day), nil
}

func (s *balanceServiceImpl) ReceivedOnDay(ctx context.Context, cardID string, day time.Time) (decimal.Decimal, error) {
	calc, err := s.loadCalc(ctx, cardID)
	if err != nil {
		return decimal.Zero, err
	}
	return calc.receivedOnDay(day), nil
}

func (s *balanceServiceImpl) ShouldHave(ctx context.Context, cardID string, day time.Time) (decimal.Decimal, error) {
	calc, err := s.loadCalc(ctx, cardID)
	if err != nil {
		return decimal.Zero, err
	}
	return calc.shouldHave(day), nil
}

func (s *balanceServiceImpl) BalanceOnDay(ctx context.Context, cardID string, day time.Time) (*domain.DayBalance, error) {
	calc, err := s.loadCalc(ctx, cardID)
	if err != nil {
		return nil, err
	}

	carried := calc.carriedBalance(day)
	received := calc.receivedOnDay(day)
	balance := &domain.DayBalance{
		CardID:     cardID,
		Day:        day,
		Carried:    carried,
		Received:   received,
		ShouldHave: carried.Add(received),
	}

	s.LogDebug(ctx, "Computed day balance",
		slog.String("card_id", cardID),
		slog.String("day", dateKeyOf(day)),
		slog.String("should_have", balance.ShouldHave.String()))
	return balance, nil
}

func (s *balanceServiceImpl) RangeTotals(ctx context.Context, cardID string, start, end *time.Time) (*domain.RangeTotals, error) {
	calc, err := s.loadCalc(ctx, cardID)
	if err != nil {
		return nil, err
	}
	totals := calc.rangeTotals(start, end)
	return &totals, nil
}

func (s *balanceServiceImpl) DedupeByDate(withdrawals []domain.Withdrawal) []domain.Withdrawal {
	return dedupeWithdrawals(withdrawals)
}

func (s *balanceServiceImpl) EffectiveWithdrawn(ctx context.Context, withdrawal domain.Withdrawal) (decimal.Decimal, error) {
	if !withdrawal.FullyWithdrawn {
		if withdrawal.WithdrawnRUB != nil {
			return *withdrawal.WithdrawnRUB, nil
		}
		return decimal.Zero, nil
	}

	// Full withdrawals drain whatever the engine says the card held that day.
	calc, err := s.loadCalc(ctx, withdrawal.CardID)
	if err != nil {
		return decimal.Zero, err
	}
	return calc.effectiveWithdrawn(withdrawal), nil
}
