package repositories

import (
	"context"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
)

// TransactionListFilter narrows a paginated transaction listing.
type TransactionListFilter struct {
	CardID    *string
	ClientID  *string
	From      *time.Time // Inclusive lower bound on event timestamp
	To        *time.Time // Exclusive upper bound on event timestamp
	Limit     int
	NextToken *string
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of transactions ordered by
	// event timestamp descending, using token-based pagination. It returns the
	// transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, filter TransactionListFilter) ([]domain.Transaction, *string, error)

	// ListForCards retrieves the full transaction history of the given cards
	// ordered by event timestamp ascending. When until is non-nil only
	// transactions strictly before it are returned. This is the balance
	// engine's feed.
	ListForCards(ctx context.Context, cardIDs []string, until *time.Time) ([]domain.Transaction, error)

	// CountByCard returns how many transactions reference the given card.
	CountByCard(ctx context.Context, cardID string) (int64, error)

	// CountByClient returns how many transactions reference the given client.
	CountByClient(ctx context.Context, clientID string) (int64, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
