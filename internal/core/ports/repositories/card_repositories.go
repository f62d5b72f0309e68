package repositories

import (
	"context"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CardReader defines read operations for card data
type CardReader interface {
	// FindCardByID retrieves a specific card by its unique identifier.
	FindCardByID(ctx context.Context, cardID string) (*domain.Card, error)

	// FindCardByIdentity retrieves a card by its (name, bank, cardNumber) identity triple.
	FindCardByIdentity(ctx context.Context, name, bank, cardNumber string) (*domain.Card, error)

	// ListCards retrieves cards ordered by name, optionally filtered by status and bank.
	ListCards(ctx context.Context, status *domain.CardStatus, bank *string) ([]domain.Card, error)

	// ListBanks retrieves the distinct non-empty bank names across all cards, sorted.
	ListBanks(ctx context.Context) ([]string, error)

	// CountCardsInGroup returns how many cards reference the given group.
	CountCardsInGroup(ctx context.Context, groupID string) (int64, error)
}

// CardWriter defines write operations for card data
type CardWriter interface {
	// SaveCard persists a new card.
	SaveCard(ctx context.Context, card domain.Card) error

	// UpdateCard updates an existing card's details.
	UpdateCard(ctx context.Context, card domain.Card) error

	// DeleteCardInTx removes a card within the given transaction. The caller is
	// responsible for removing the card's withdrawals in the same transaction
	// and for verifying the card owns no transactions first.
	DeleteCardInTx(ctx context.Context, tx pgx.Tx, cardID string) error
}

// CardRepositoryFacade combines all card-related repository interfaces
type CardRepositoryFacade interface {
	CardReader
	CardWriter
	TransactionManager
}
