package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
	"github.com/cardflow-app/cardflow_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// withdrawalServiceImpl implements the WithdrawalSvcFacade interface
type withdrawalServiceImpl struct {
	BaseService
	cardRepo       portsrepo.CardRepositoryFacade
	withdrawalRepo portsrepo.WithdrawalRepositoryWithTx
	loc            *time.Location
}

// NewWithdrawalServiceImpl creates the sheet-entry upsert service
func NewWithdrawalServiceImpl(cardRepo portsrepo.CardRepositoryFacade, withdrawalRepo portsrepo.WithdrawalRepositoryWithTx, loc *time.Location) portssvc.WithdrawalSvcFacade {
	return &withdrawalServiceImpl{
		cardRepo:       cardRepo,
		withdrawalRepo: withdrawalRepo,
		loc:            loc,
	}
}

// Ensure withdrawalServiceImpl implements the WithdrawalSvcFacade interface
var _ portssvc.WithdrawalSvcFacade = (*withdrawalServiceImpl)(nil)

func (s *withdrawalServiceImpl) UpsertForDay(ctx context.Context, req dto.SaveSheetEntryRequest, updaterUserID string) (*domain.Withdrawal, error) {
	day, err := utils.ParseUserDate(req.Date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, apperrors.ErrValidation)
	}

	if _, err := s.cardRepo.FindCardByID(ctx, req.CardID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find card for withdrawal upsert",
				slog.String("card_id", req.CardID))
		}
		return nil, err
	}

	// Everything is parsed before the transaction opens so malformed input
	// never writes anything.
	var withdrawn *decimal.Decimal
	if !req.FullyWithdrawn && strings.TrimSpace(req.WithdrawnRUB) != "" {
		amount, err := utils.ParseFlexibleDecimal(req.WithdrawnRUB)
		if err != nil {
			return nil, fmt.Errorf("invalid withdrawn amount %q: %w", req.WithdrawnRUB, apperrors.ErrValidation)
		}
		withdrawn = &amount
	}

	commission := decimal.Zero
	if strings.TrimSpace(req.CommissionRUB) != "" {
		commission, err = utils.ParseFlexibleDecimal(req.CommissionRUB)
		if err != nil {
			return nil, fmt.Errorf("invalid commission amount %q: %w", req.CommissionRUB, apperrors.ErrValidation)
		}
	}

	now := time.Now()

	tx, err := s.withdrawalRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin withdrawal upsert transaction")
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer s.withdrawalRepo.Rollback(ctx, tx)

	existing, err := s.withdrawalRepo.FindForDayInTx(ctx, tx, req.CardID, day)
	if err != nil {
		s.LogError(ctx, err, "Failed to read withdrawal rows for upsert",
			slog.String("card_id", req.CardID),
			slog.String("date", dateKeyOf(day)))
		return nil, fmt.Errorf("failed to read withdrawal for day: %w", err)
	}

	var saved domain.Withdrawal
	if len(existing) == 0 {
		saved = domain.Withdrawal{
			WithdrawalID:   uuid.NewString(),
			CardID:         req.CardID,
			Date:           day,
			Timestamp:      &now,
			FullyWithdrawn: req.FullyWithdrawn,
			WithdrawnRUB:   withdrawn,
			CommissionRUB:  commission,
			Note:           req.Note,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     updaterUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: updaterUserID,
			},
		}
		if err := s.withdrawalRepo.SaveWithdrawalInTx(ctx, tx, saved); err != nil {
			s.LogError(ctx, err, "Failed to save withdrawal row",
				slog.String("card_id", req.CardID),
				slog.String("date", dateKeyOf(day)))
			return nil, err
		}
	} else {
		// First row is the current one; the rest are duplicate leftovers.
		saved = existing[0]
		saved.Timestamp = &now
		saved.FullyWithdrawn = req.FullyWithdrawn
		saved.WithdrawnRUB = withdrawn
		saved.CommissionRUB = commission
		saved.Note = req.Note
		saved.LastUpdatedAt = now
		saved.LastUpdatedBy = updaterUserID
		if err := s.withdrawalRepo.UpdateWithdrawalInTx(ctx, tx, saved); err != nil {
			s.LogError(ctx, err, "Failed to update withdrawal row",
				slog.String("withdrawal_id", saved.WithdrawalID))
			return nil, err
		}

		if len(existing) > 1 {
			staleIDs := make([]string, 0, len(existing)-1)
			for _, w := range existing[1:] {
				staleIDs = append(staleIDs, w.WithdrawalID)
			}
			if err := s.withdrawalRepo.DeleteWithdrawalsInTx(ctx, tx, staleIDs); err != nil {
				s.LogError(ctx, err, "Failed to delete duplicate withdrawal rows",
					slog.String("card_id", req.CardID),
					slog.String("date", dateKeyOf(day)),
					slog.Int("count", len(staleIDs)))
				return nil, err
			}
		}
	}

	if err := s.withdrawalRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit withdrawal upsert transaction")
		return nil, apperrors.NewAppError(500, "failed to commit transaction", err)
	}

	s.LogInfo(ctx, "Withdrawal saved",
		slog.String("withdrawal_id", saved.WithdrawalID),
		slog.String("card_id", saved.CardID),
		slog.String("date", saved.DateKey()),
		slog.Bool("fully_withdrawn", saved.FullyWithdrawn))
	return &saved, nil
}
