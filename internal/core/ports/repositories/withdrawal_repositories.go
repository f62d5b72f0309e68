package repositories

import (
	"context"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// WithdrawalReader defines read operations for withdrawal data.
// Listings may contain duplicate rows per (card, date); callers dedupe before
// aggregating.
type WithdrawalReader interface {
	// ListForCards retrieves all withdrawal rows of the given cards ordered by
	// date ascending. When untilDate is non-nil only rows dated strictly
	// before it are returned.
	ListForCards(ctx context.Context, cardIDs []string, untilDate *time.Time) ([]domain.Withdrawal, error)

	// ListForDay retrieves all withdrawal rows dated exactly day, across all cards.
	ListForDay(ctx context.Context, day time.Time) ([]domain.Withdrawal, error)

	// FindForDayInTx retrieves and locks all rows for (card, day) within the
	// given transaction, ordered by (timestamp, id) descending so the first
	// row is the current one.
	FindForDayInTx(ctx context.Context, tx pgx.Tx, cardID string, day time.Time) ([]domain.Withdrawal, error)
}

// WithdrawalWriter defines write operations for withdrawal data
type WithdrawalWriter interface {
	// SaveWithdrawalInTx persists a new withdrawal row within the given transaction.
	SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error

	// UpdateWithdrawalInTx updates an existing withdrawal row within the given transaction.
	UpdateWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error

	// DeleteWithdrawalsInTx removes the given withdrawal rows within the given transaction.
	DeleteWithdrawalsInTx(ctx context.Context, tx pgx.Tx, withdrawalIDs []string) error

	// DeleteByCardInTx removes all withdrawal rows of a card within the given
	// transaction. Used when deleting the card itself.
	DeleteByCardInTx(ctx context.Context, tx pgx.Tx, cardID string) error
}

// WithdrawalRepositoryFacade combines all withdrawal-related repository interfaces
type WithdrawalRepositoryFacade interface {
	WithdrawalReader
	WithdrawalWriter
}

// WithdrawalRepositoryWithTx extends WithdrawalRepositoryFacade with transaction capabilities
type WithdrawalRepositoryWithTx interface {
	WithdrawalRepositoryFacade
	TransactionManager
}
