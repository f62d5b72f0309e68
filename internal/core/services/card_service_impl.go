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
	"github.com/google/uuid"
)

// cardServiceImpl implements the CardSvcFacade interface
type cardServiceImpl struct {
	BaseService
	cardRepo        portsrepo.CardRepositoryFacade
	bankColorRepo   portsrepo.BankColorRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	withdrawalRepo  portsrepo.WithdrawalRepositoryWithTx
	groupService    portssvc.CardGroupSvcFacade
}

// NewCardServiceImpl creates a new card service
func NewCardServiceImpl(cardRepo portsrepo.CardRepositoryFacade, bankColorRepo portsrepo.BankColorRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade, withdrawalRepo portsrepo.WithdrawalRepositoryWithTx, groupService portssvc.CardGroupSvcFacade) portssvc.CardSvcFacade {
	return &cardServiceImpl{
		cardRepo:        cardRepo,
		bankColorRepo:   bankColorRepo,
		transactionRepo: transactionRepo,
		withdrawalRepo:  withdrawalRepo,
		groupService:    groupService,
	}
}

// Ensure cardServiceImpl implements the CardSvcFacade interface
var _ portssvc.CardSvcFacade = (*cardServiceImpl)(nil)

func (s *cardServiceImpl) GetCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find card by ID",
				slog.String("card_id", cardID))
		}
		return nil, err
	}
	return card, nil
}

func (s *cardServiceImpl) ListCards(ctx context.Context, status *domain.CardStatus, bank *string) ([]domain.Card, error) {
	cards, err := s.cardRepo.ListCards(ctx, status, bank)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cards")
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	if cards == nil {
		return []domain.Card{}, nil
	}
	return cards, nil
}

func (s *cardServiceImpl) ListBanks(ctx context.Context) ([]string, error) {
	banks, err := s.cardRepo.ListBanks(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list banks")
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	if banks == nil {
		return []string{}, nil
	}
	return banks, nil
}

func (s *cardServiceImpl) ListBankColors(ctx context.Context) ([]domain.BankColor, error) {
	colors, err := s.bankColorRepo.ListBankColors(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank colors")
		return nil, fmt.Errorf("failed to list bank colors: %w", err)
	}
	if colors == nil {
		return []domain.BankColor{}, nil
	}
	return colors, nil
}

func (s *cardServiceImpl) CreateCard(ctx context.Context, req dto.CreateCardRequest, creatorUserID string) (*domain.Card, error) {
	name := strings.TrimSpace(req.Name)
	bank := strings.TrimSpace(req.Bank)
	number := strings.TrimSpace(req.CardNumber)

	if existing, err := s.cardRepo.FindCardByIdentity(ctx, name, bank, number); err == nil && existing != nil {
		return nil, fmt.Errorf("card %q (%s %s) already exists: %w", name, bank, number, apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check card identity",
			slog.String("name", name))
		return nil, fmt.Errorf("failed to check card identity: %w", err)
	}

	groupID, err := s.resolveGroup(ctx, req.GroupName, creatorUserID)
	if err != nil {
		return nil, err
	}

	status := domain.CardActive
	if req.Status != "" {
		status = domain.CardStatus(req.Status)
	}

	now := time.Now()
	card := domain.Card{
		CardID:     uuid.NewString(),
		Name:       name,
		Bank:       bank,
		CardNumber: number,
		PIN:        req.PIN,
		Status:     status,
		GroupID:    groupID,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.cardRepo.SaveCard(ctx, card); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save card",
				slog.String("card_id", card.CardID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Card created",
		slog.String("card_id", card.CardID),
		slog.String("name", card.Name),
		slog.String("bank", card.Bank))
	return &card, nil
}

func (s *cardServiceImpl) UpdateCard(ctx context.Context, cardID string, req dto.UpdateCardRequest, updaterUserID string) (*domain.Card, error) {
	card, err := s.GetCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		card.Name = strings.TrimSpace(*req.Name)
		updated = true
	}
	if req.Bank != nil {
		card.Bank = strings.TrimSpace(*req.Bank)
		updated = true
	}
	if req.CardNumber != nil {
		card.CardNumber = strings.TrimSpace(*req.CardNumber)
		updated = true
	}
	if req.PIN != nil {
		card.PIN = *req.PIN
		updated = true
	}
	if req.Status != nil {
		card.Status = domain.CardStatus(*req.Status)
		updated = true
	}
	if req.Notes != nil {
		card.Notes = *req.Notes
		updated = true
	}
	if req.GroupName != nil {
		groupID, err := s.resolveGroup(ctx, *req.GroupName, updaterUserID)
		if err != nil {
			return nil, err
		}
		card.GroupID = groupID
		updated = true
	}
	if !updated {
		return card, nil
	}

	now := time.Now()
	card.LastUpdatedAt = now
	card.LastUpdatedBy = updaterUserID

	if err := s.cardRepo.UpdateCard(ctx, *card); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update card",
				slog.String("card_id", cardID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Card updated", slog.String("card_id", cardID))
	return card, nil
}

func (s *cardServiceImpl) DeleteCard(ctx context.Context, cardID string) error {
	if _, err := s.GetCardByID(ctx, cardID); err != nil {
		return err
	}

	count, err := s.transactionRepo.CountByCard(ctx, cardID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count card transactions",
			slog.String("card_id", cardID))
		return fmt.Errorf("failed to count card transactions: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("card still has %d transactions: %w", count, apperrors.ErrConflict)
	}

	// The card's withdrawal rows go with it, in one transaction.
	tx, err := s.cardRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin card delete transaction")
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer s.cardRepo.Rollback(ctx, tx)

	if err := s.withdrawalRepo.DeleteByCardInTx(ctx, tx, cardID); err != nil {
		s.LogError(ctx, err, "Failed to delete card withdrawals",
			slog.String("card_id", cardID))
		return err
	}
	if err := s.cardRepo.DeleteCardInTx(ctx, tx, cardID); err != nil {
		s.LogError(ctx, err, "Failed to delete card",
			slog.String("card_id", cardID))
		return err
	}

	if err := s.cardRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit card delete transaction")
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}

	s.LogInfo(ctx, "Card deleted", slog.String("card_id", cardID))
	return nil
}

func (s *cardServiceImpl) SetBankColor(ctx context.Context, req dto.SetBankColorRequest, updaterUserID string) (*domain.BankColor, error) {
	now := time.Now()
	color := domain.BankColor{
		Bank:  strings.TrimSpace(req.Bank),
		Color: strings.ToLower(strings.TrimSpace(req.Color)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}
	if err := s.bankColorRepo.UpsertBankColor(ctx, color); err != nil {
		s.LogError(ctx, err, "Failed to upsert bank color",
			slog.String("bank", color.Bank))
		return nil, err
	}

	s.LogInfo(ctx, "Bank color set",
		slog.String("bank", color.Bank),
		slog.String("color", color.Color))
	return &color, nil
}

// resolveGroup turns a free-text group name into a group ID, creating the
// group when needed. Empty name means no group.
func (s *cardServiceImpl) resolveGroup(ctx context.Context, name, userID string) (*string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil
	}
	group, err := s.groupService.GetOrCreateGroup(ctx, trimmed, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve card group",
			slog.String("group_name", trimmed))
		return nil, fmt.Errorf("failed to resolve card group %q: %w", trimmed, err)
	}
	return &group.GroupID, nil
}
