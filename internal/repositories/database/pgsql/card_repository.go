package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	"github.com/cardflow-app/cardflow_backend/internal/models"
	"github.com/cardflow-app/cardflow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const cardColumns = `card_id, name, bank, card_number, pin, status, group_id, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxCardRepository struct {
	BaseRepository
}

// newPgxCardRepository creates a new repository for card data.
func newPgxCardRepository(pool *pgxpool.Pool) portsrepo.CardRepositoryFacade {
	return &PgxCardRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCardRepository implements portsrepo.CardRepositoryFacade
var _ portsrepo.CardRepositoryFacade = (*PgxCardRepository)(nil)

func scanCard(row pgx.Row) (models.Card, error) {
	var m models.Card
	err := row.Scan(
		&m.CardID,
		&m.Name,
		&m.Bank,
		&m.CardNumber,
		&m.PIN,
		&m.Status,
		&m.GroupID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	m := mapping.ToModelCard(card)
	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CardID,
		m.Name,
		m.Bank,
		m.CardNumber,
		m.PIN,
		m.Status,
		m.GroupID,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: card %q / %q / %q already exists", apperrors.ErrDuplicate, card.Name, card.Bank, card.CardNumber)
		}
		return fmt.Errorf("failed to save card %s: %w", m.CardID, err)
	}
	return nil
}

func (r *PgxCardRepository) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE card_id = $1;`
	m, err := scanCard(r.Pool.QueryRow(ctx, query, cardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find card by ID %s: %w", cardID, err)
	}
	card := mapping.ToDomainCard(m)
	return &card, nil
}

func (r *PgxCardRepository) FindCardByIdentity(ctx context.Context, name, bank, cardNumber string) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE name = $1 AND bank = $2 AND card_number = $3;`
	m, err := scanCard(r.Pool.QueryRow(ctx, query, name, bank, cardNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find card by identity: %w", err)
	}
	card := mapping.ToDomainCard(m)
	return &card, nil
}

func (r *PgxCardRepository) ListCards(ctx context.Context, status *domain.CardStatus, bank *string) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards`
	args := []interface{}{}
	conditions := ""
	if status != nil {
		args = append(args, string(*status))
		conditions += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	if bank != nil {
		args = append(args, *bank)
		if conditions == "" {
			conditions += fmt.Sprintf(" WHERE bank = $%d", len(args))
		} else {
			conditions += fmt.Sprintf(" AND bank = $%d", len(args))
		}
	}
	query += conditions + ` ORDER BY name, bank, card_number;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	modelCards := []models.Card{}
	for rows.Next() {
		m, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		modelCards = append(modelCards, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating card rows: %w", rows.Err())
	}

	return mapping.ToDomainCardSlice(modelCards), nil
}

func (r *PgxCardRepository) ListBanks(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT bank FROM cards WHERE bank <> '' ORDER BY bank;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query banks: %w", err)
	}
	defer rows.Close()

	banks := []string{}
	for rows.Next() {
		var bank string
		if err := rows.Scan(&bank); err != nil {
			return nil, fmt.Errorf("failed to scan bank row: %w", err)
		}
		banks = append(banks, bank)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bank rows: %w", rows.Err())
	}

	return banks, nil
}

func (r *PgxCardRepository) CountCardsInGroup(ctx context.Context, groupID string) (int64, error) {
	query := `SELECT COUNT(*) FROM cards WHERE group_id = $1;`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cards in group %s: %w", groupID, err)
	}
	return count, nil
}

func (r *PgxCardRepository) UpdateCard(ctx context.Context, card domain.Card) error {
	m := mapping.ToModelCard(card)
	query := `
		UPDATE cards
		SET name = $1, bank = $2, card_number = $3, pin = $4, status = $5,
		    group_id = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE card_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Bank,
		m.CardNumber,
		m.PIN,
		m.Status,
		m.GroupID,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.CardID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: card %q / %q / %q already exists", apperrors.ErrDuplicate, card.Name, card.Bank, card.CardNumber)
		}
		return fmt.Errorf("failed to update card %s: %w", m.CardID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("card %s: %w", m.CardID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCardRepository) DeleteCardInTx(ctx context.Context, tx pgx.Tx, cardID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM cards WHERE card_id = $1;`, cardID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: card %s still has transactions", apperrors.ErrConflict, cardID)
		}
		return fmt.Errorf("failed to delete card %s: %w", cardID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("card %s: %w", cardID, apperrors.ErrNotFound)
	}
	return nil
}
