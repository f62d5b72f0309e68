package services

import (
	"context"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
)

// CardReaderSvc defines read operations for card data
type CardReaderSvc interface {
	// GetCardByID retrieves a card by ID.
	GetCardByID(ctx context.Context, cardID string) (*domain.Card, error)

	// ListCards retrieves cards ordered by name, optionally filtered by status and bank.
	ListCards(ctx context.Context, status *domain.CardStatus, bank *string) ([]domain.Card, error)

	// ListBanks retrieves the distinct bank names across all cards.
	ListBanks(ctx context.Context) ([]string, error)

	// ListBankColors retrieves all assigned bank colors.
	ListBankColors(ctx context.Context) ([]domain.BankColor, error)
}

// CardWriterSvc defines write operations for card data
type CardWriterSvc interface {
	// CreateCard creates a new card, enforcing the (name, bank, number)
	// identity-triple uniqueness and resolving the optional group name via
	// get-or-create.
	CreateCard(ctx context.Context, req dto.CreateCardRequest, creatorUserID string) (*domain.Card, error)

	// UpdateCard updates an existing card.
	UpdateCard(ctx context.Context, cardID string, req dto.UpdateCardRequest, updaterUserID string) (*domain.Card, error)

	// DeleteCard removes a card and its withdrawals in one transaction.
	// Fails with a conflict while the card still owns transactions.
	DeleteCard(ctx context.Context, cardID string) error

	// SetBankColor assigns the display color for a bank name.
	SetBankColor(ctx context.Context, req dto.SetBankColorRequest, updaterUserID string) (*domain.BankColor, error)
}

// CardSvcFacade combines all card-related service interfaces
type CardSvcFacade interface {
	CardReaderSvc
	CardWriterSvc
}
