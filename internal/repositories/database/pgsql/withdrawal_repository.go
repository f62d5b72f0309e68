package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	"github.com/cardflow-app/cardflow_backend/internal/models"
	"github.com/cardflow-app/cardflow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const withdrawalColumns = `withdrawal_id, card_id, date, timestamp, fully_withdrawn, withdrawn_rub, commission_rub, note, created_at, created_by, last_updated_at, last_updated_by`

type PgxWithdrawalRepository struct {
	BaseRepository
}

// newPgxWithdrawalRepository creates a new repository for withdrawal data.
func newPgxWithdrawalRepository(pool *pgxpool.Pool) portsrepo.WithdrawalRepositoryWithTx {
	return &PgxWithdrawalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxWithdrawalRepository implements portsrepo.WithdrawalRepositoryWithTx
var _ portsrepo.WithdrawalRepositoryWithTx = (*PgxWithdrawalRepository)(nil)

func scanWithdrawal(row pgx.Row) (models.Withdrawal, error) {
	var m models.Withdrawal
	err := row.Scan(
		&m.WithdrawalID,
		&m.CardID,
		&m.Date,
		&m.Timestamp,
		&m.FullyWithdrawn,
		&m.WithdrawnRUB,
		&m.CommissionRUB,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanWithdrawalRows(rows pgx.Rows) ([]models.Withdrawal, error) {
	defer rows.Close()
	modelWithdrawals := []models.Withdrawal{}
	for rows.Next() {
		m, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal row: %w", err)
		}
		modelWithdrawals = append(modelWithdrawals, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating withdrawal rows: %w", rows.Err())
	}
	return modelWithdrawals, nil
}

func (r *PgxWithdrawalRepository) ListForCards(ctx context.Context, cardIDs []string, untilDate *time.Time) ([]domain.Withdrawal, error) {
	if len(cardIDs) == 0 {
		return []domain.Withdrawal{}, nil
	}

	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE card_id = ANY($1)`
	args := []interface{}{cardIDs}
	if untilDate != nil {
		args = append(args, *untilDate)
		query += fmt.Sprintf(" AND date < $%d", len(args))
	}
	query += ` ORDER BY date, withdrawal_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals for cards: %w", err)
	}
	modelWithdrawals, err := scanWithdrawalRows(rows)
	if err != nil {
		return nil, err
	}

	return mapping.ToDomainWithdrawalSlice(modelWithdrawals), nil
}

func (r *PgxWithdrawalRepository) ListForDay(ctx context.Context, day time.Time) ([]domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE date = $1 ORDER BY card_id, withdrawal_id;`
	rows, err := r.Pool.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals for day %s: %w", day.Format(time.DateOnly), err)
	}
	modelWithdrawals, err := scanWithdrawalRows(rows)
	if err != nil {
		return nil, err
	}

	return mapping.ToDomainWithdrawalSlice(modelWithdrawals), nil
}

// FindForDayInTx locks every row for (card, day). Rows come back most recent
// first; a NULL timestamp sorts last, so the freshest row leads.
func (r *PgxWithdrawalRepository) FindForDayInTx(ctx context.Context, tx pgx.Tx, cardID string, day time.Time) ([]domain.Withdrawal, error) {
	query := `
		SELECT ` + withdrawalColumns + `
		FROM withdrawals
		WHERE card_id = $1 AND date = $2
		ORDER BY timestamp DESC NULLS LAST, withdrawal_id DESC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, cardID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to lock withdrawals for card %s on %s: %w", cardID, day.Format(time.DateOnly), err)
	}
	modelWithdrawals, err := scanWithdrawalRows(rows)
	if err != nil {
		return nil, err
	}

	return mapping.ToDomainWithdrawalSlice(modelWithdrawals), nil
}

func (r *PgxWithdrawalRepository) SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error {
	m := mapping.ToModelWithdrawal(withdrawal)
	query := `
		INSERT INTO withdrawals (` + withdrawalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.WithdrawalID,
		m.CardID,
		m.Date,
		m.Timestamp,
		m.FullyWithdrawn,
		m.WithdrawnRUB,
		m.CommissionRUB,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: card %s does not exist", apperrors.ErrConflict, m.CardID)
		}
		return fmt.Errorf("failed to save withdrawal %s: %w", m.WithdrawalID, err)
	}
	return nil
}

func (r *PgxWithdrawalRepository) UpdateWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error {
	m := mapping.ToModelWithdrawal(withdrawal)
	query := `
		UPDATE withdrawals
		SET timestamp = $1, fully_withdrawn = $2, withdrawn_rub = $3,
		    commission_rub = $4, note = $5, last_updated_at = $6, last_updated_by = $7
		WHERE withdrawal_id = $8;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.Timestamp,
		m.FullyWithdrawn,
		m.WithdrawnRUB,
		m.CommissionRUB,
		m.Note,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.WithdrawalID,
	)
	if err != nil {
		return fmt.Errorf("failed to update withdrawal %s: %w", m.WithdrawalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("withdrawal %s: %w", m.WithdrawalID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxWithdrawalRepository) DeleteWithdrawalsInTx(ctx context.Context, tx pgx.Tx, withdrawalIDs []string) error {
	if len(withdrawalIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `DELETE FROM withdrawals WHERE withdrawal_id = ANY($1);`, withdrawalIDs)
	if err != nil {
		return fmt.Errorf("failed to delete withdrawals: %w", err)
	}
	return nil
}

func (r *PgxWithdrawalRepository) DeleteByCardInTx(ctx context.Context, tx pgx.Tx, cardID string) error {
	_, err := tx.Exec(ctx, `DELETE FROM withdrawals WHERE card_id = $1;`, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete withdrawals for card %s: %w", cardID, err)
	}
	return nil
}
