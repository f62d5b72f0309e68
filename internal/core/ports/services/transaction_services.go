package services

import (
	"context"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction by ID.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of transactions ordered
	// newest first, with token-based pagination.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction records money received on a card, deriving the
	// exchange rate from the two amounts.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// UpdateTransaction updates a transaction, re-deriving the rate. The event
	// timestamp is only re-parsed when the submitted text differs from the
	// original instant rendered in display format.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, updaterUserID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
