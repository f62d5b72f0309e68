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

const cardGroupColumns = `group_id, name, created_at, created_by, last_updated_at, last_updated_by`

type PgxCardGroupRepository struct {
	BaseRepository
}

// newPgxCardGroupRepository creates a new repository for card group data.
func newPgxCardGroupRepository(pool *pgxpool.Pool) portsrepo.CardGroupRepositoryFacade {
	return &PgxCardGroupRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCardGroupRepository implements portsrepo.CardGroupRepositoryFacade
var _ portsrepo.CardGroupRepositoryFacade = (*PgxCardGroupRepository)(nil)

func scanCardGroup(row pgx.Row) (models.CardGroup, error) {
	var m models.CardGroup
	err := row.Scan(
		&m.GroupID,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCardGroupRepository) SaveGroup(ctx context.Context, group domain.CardGroup) error {
	m := mapping.ToModelCardGroup(group)
	query := `
		INSERT INTO card_groups (` + cardGroupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GroupID,
		m.Name,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: group %q already exists", apperrors.ErrDuplicate, group.Name)
		}
		return fmt.Errorf("failed to save card group %s: %w", m.GroupID, err)
	}
	return nil
}

func (r *PgxCardGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.CardGroup, error) {
	query := `SELECT ` + cardGroupColumns + ` FROM card_groups WHERE group_id = $1;`
	m, err := scanCardGroup(r.Pool.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find card group by ID %s: %w", groupID, err)
	}
	group := mapping.ToDomainCardGroup(m)
	return &group, nil
}

func (r *PgxCardGroupRepository) FindGroupByName(ctx context.Context, name string) (*domain.CardGroup, error) {
	query := `SELECT ` + cardGroupColumns + ` FROM card_groups WHERE LOWER(name) = LOWER($1);`
	m, err := scanCardGroup(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find card group by name %q: %w", name, err)
	}
	group := mapping.ToDomainCardGroup(m)
	return &group, nil
}

func (r *PgxCardGroupRepository) ListGroups(ctx context.Context) ([]domain.CardGroup, error) {
	query := `SELECT ` + cardGroupColumns + ` FROM card_groups ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query card groups: %w", err)
	}
	defer rows.Close()

	modelGroups := []models.CardGroup{}
	for rows.Next() {
		m, err := scanCardGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card group row: %w", err)
		}
		modelGroups = append(modelGroups, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating card group rows: %w", rows.Err())
	}

	return mapping.ToDomainCardGroupSlice(modelGroups), nil
}

func (r *PgxCardGroupRepository) UpdateGroup(ctx context.Context, group domain.CardGroup) error {
	m := mapping.ToModelCardGroup(group)
	query := `
		UPDATE card_groups
		SET name = $1, last_updated_at = $2, last_updated_by = $3
		WHERE group_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.GroupID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: group %q already exists", apperrors.ErrDuplicate, group.Name)
		}
		return fmt.Errorf("failed to update card group %s: %w", m.GroupID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("card group %s: %w", m.GroupID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCardGroupRepository) DeleteGroup(ctx context.Context, groupID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM card_groups WHERE group_id = $1;`, groupID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: group %s still has cards", apperrors.ErrConflict, groupID)
		}
		return fmt.Errorf("failed to delete card group %s: %w", groupID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("card group %s: %w", groupID, apperrors.ErrNotFound)
	}
	return nil
}
