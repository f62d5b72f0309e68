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

// transactionServiceImpl implements the TransactionSvcFacade interface
type transactionServiceImpl struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	cardRepo        portsrepo.CardRepositoryFacade
	clientRepo      portsrepo.ClientRepositoryFacade
	loc             *time.Location
}

// NewTransactionServiceImpl creates a new transaction service
func NewTransactionServiceImpl(transactionRepo portsrepo.TransactionRepositoryFacade, cardRepo portsrepo.CardRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, loc *time.Location) portssvc.TransactionSvcFacade {
	return &transactionServiceImpl{
		transactionRepo: transactionRepo,
		cardRepo:        cardRepo,
		clientRepo:      clientRepo,
		loc:             loc,
	}
}

// Ensure transactionServiceImpl implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionServiceImpl)(nil)

func (s *transactionServiceImpl) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionServiceImpl) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	filter := portsrepo.TransactionListFilter{Limit: params.PageSize}
	if params.CardID != "" {
		filter.CardID = &params.CardID
	}
	if params.ClientID != "" {
		filter.ClientID = &params.ClientID
	}
	if params.PageToken != "" {
		filter.NextToken = &params.PageToken
	}
	if params.From != "" {
		day, err := utils.ParseUserDate(params.From, s.loc)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid from date %q: %w", params.From, apperrors.ErrValidation)
		}
		from := day
		filter.From = &from
	}
	if params.To != "" {
		day, err := utils.ParseUserDate(params.To, s.loc)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid to date %q: %w", params.To, apperrors.ErrValidation)
		}
		to := day.AddDate(0, 0, 1) // inclusive date, exclusive instant
		filter.To = &to
	}

	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nextToken, nil
}

func (s *transactionServiceImpl) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if _, err := s.cardRepo.FindCardByID(ctx, req.CardID); err != nil {
		return nil, fmt.Errorf("invalid card reference: %w", err)
	}
	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("invalid client reference: %w", err)
	}

	amountRUB, err := utils.ParseFlexibleDecimal(req.AmountRUB)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", req.AmountRUB, apperrors.ErrValidation)
	}
	amountUSD := decimal.Zero
	if strings.TrimSpace(req.AmountUSD) != "" {
		amountUSD, err = utils.ParseFlexibleDecimal(req.AmountUSD)
		if err != nil {
			return nil, fmt.Errorf("invalid USD amount %q: %w", req.AmountUSD, apperrors.ErrValidation)
		}
	}

	now := time.Now()
	timestamp := now
	if strings.TrimSpace(req.Timestamp) != "" {
		timestamp, err = utils.ParseUserTimestamp(req.Timestamp, s.loc)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", req.Timestamp, apperrors.ErrValidation)
		}
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		CardID:        req.CardID,
		ClientID:      req.ClientID,
		Timestamp:     timestamp,
		AmountRUB:     amountRUB,
		AmountUSD:     amountUSD,
		Rate:          domain.DeriveRate(amountRUB, amountUSD),
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("card_id", txn.CardID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("card_id", txn.CardID),
		slog.String("amount_rub", txn.AmountRUB.String()))
	return &txn, nil
}

func (s *transactionServiceImpl) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, updaterUserID string) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.CardID != nil && *req.CardID != txn.CardID {
		if _, err := s.cardRepo.FindCardByID(ctx, *req.CardID); err != nil {
			return nil, fmt.Errorf("invalid card reference: %w", err)
		}
		txn.CardID = *req.CardID
		updated = true
	}
	if req.ClientID != nil && *req.ClientID != txn.ClientID {
		if _, err := s.clientRepo.FindClientByID(ctx, *req.ClientID); err != nil {
			return nil, fmt.Errorf("invalid client reference: %w", err)
		}
		txn.ClientID = *req.ClientID
		updated = true
	}

	if req.Timestamp != nil {
		newTimestamp, err := s.resolveTimestamp(*req.Timestamp, req.OriginalTimestamp, txn.Timestamp)
		if err != nil {
			return nil, err
		}
		if !newTimestamp.Equal(txn.Timestamp) {
			txn.Timestamp = newTimestamp
			updated = true
		}
	}

	if req.AmountRUB != nil {
		amount, err := utils.ParseFlexibleDecimal(*req.AmountRUB)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", *req.AmountRUB, apperrors.ErrValidation)
		}
		txn.AmountRUB = amount
		updated = true
	}
	if req.AmountUSD != nil {
		amount := decimal.Zero
		if strings.TrimSpace(*req.AmountUSD) != "" {
			amount, err = utils.ParseFlexibleDecimal(*req.AmountUSD)
			if err != nil {
				return nil, fmt.Errorf("invalid USD amount %q: %w", *req.AmountUSD, apperrors.ErrValidation)
			}
		}
		txn.AmountUSD = amount
		updated = true
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
		updated = true
	}
	if !updated {
		return txn, nil
	}

	// The rate is never user-entered; every save derives it again.
	txn.Rate = domain.DeriveRate(txn.AmountRUB, txn.AmountUSD)

	now := time.Now()
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = updaterUserID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}

func (s *transactionServiceImpl) DeleteTransaction(ctx context.Context, transactionID string) error {
	if _, err := s.GetTransactionByID(ctx, transactionID); err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// resolveTimestamp applies the dirty check on an edited timestamp: when the
// submitted text still reads exactly like the original instant in display
// format, the stored instant is kept untouched instead of being reparsed
// (reparsing minute-precision text would silently drop seconds and could
// shift the instant across a zone change).
func (s *transactionServiceImpl) resolveTimestamp(text string, originalRFC3339 *string, stored time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(text)

	original := stored
	if originalRFC3339 != nil {
		if orig, err := time.Parse(time.RFC3339, strings.TrimSpace(*originalRFC3339)); err == nil {
			original = orig
		}
	}
	if trimmed == utils.FormatUserTimestamp(original, s.loc) {
		return stored, nil
	}

	parsed, err := utils.ParseUserTimestamp(trimmed, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", text, apperrors.ErrValidation)
	}
	return parsed, nil
}
