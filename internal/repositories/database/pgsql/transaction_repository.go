package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	"github.com/cardflow-app/cardflow_backend/internal/models"
	"github.com/cardflow-app/cardflow_backend/internal/utils/mapping"
	"github.com/cardflow-app/cardflow_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, card_id, client_id, timestamp, amount_rub, amount_usd, rate, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.CardID,
		&m.ClientID,
		&m.Timestamp,
		&m.AmountRUB,
		&m.AmountUSD,
		&m.Rate,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.CardID,
		m.ClientID,
		m.Timestamp,
		m.AmountRUB,
		m.AmountUSD,
		m.Rate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: card or client of transaction %s does not exist", apperrors.ErrConflict, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions pages through transactions newest first. The cursor is the
// (timestamp, transaction_id) pair of the last row of the previous page.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter) ([]domain.Transaction, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := []interface{}{}

	if filter.CardID != nil {
		args = append(args, *filter.CardID)
		query += fmt.Sprintf(" AND card_id = $%d", len(args))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND timestamp < $%d", len(args))
	}

	if filter.NextToken != nil && *filter.NextToken != "" {
		lastTimestamp, lastID, err := pagination.DecodeCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastTimestamp, lastID)
		query += fmt.Sprintf(" AND (timestamp, transaction_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	query += ` ORDER BY timestamp DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		last := modelTxns[limit-1]
		token := pagination.EncodeCursor(last.Timestamp, last.TransactionID)
		nextTokenVal = &token
		results = modelTxns[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// ListForCards returns the full history of the given cards oldest first, the
// order the balance engine consumes it in.
func (r *PgxTransactionRepository) ListForCards(ctx context.Context, cardIDs []string, until *time.Time) ([]domain.Transaction, error) {
	if len(cardIDs) == 0 {
		return []domain.Transaction{}, nil
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE card_id = ANY($1)`
	args := []interface{}{cardIDs}
	if until != nil {
		args = append(args, *until)
		query += fmt.Sprintf(" AND timestamp < $%d", len(args))
	}
	query += ` ORDER BY timestamp, transaction_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for cards: %w", err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

func (r *PgxTransactionRepository) CountByCard(ctx context.Context, cardID string) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE card_id = $1;`, cardID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for card %s: %w", cardID, err)
	}
	return count, nil
}

func (r *PgxTransactionRepository) CountByClient(ctx context.Context, clientID string) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE client_id = $1;`, clientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for client %s: %w", clientID, err)
	}
	return count, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET card_id = $1, client_id = $2, timestamp = $3, amount_rub = $4,
		    amount_usd = $5, rate = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CardID,
		m.ClientID,
		m.Timestamp,
		m.AmountRUB,
		m.AmountUSD,
		m.Rate,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TransactionID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: card or client of transaction %s does not exist", apperrors.ErrConflict, m.TransactionID)
		}
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", m.TransactionID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}
