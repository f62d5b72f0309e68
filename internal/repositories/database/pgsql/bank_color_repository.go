package pgsql

import (
	"context"
	"fmt"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	"github.com/cardflow-app/cardflow_backend/internal/models"
	"github.com/cardflow-app/cardflow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBankColorRepository struct {
	BaseRepository
}

// newPgxBankColorRepository creates a new repository for bank color data.
func newPgxBankColorRepository(pool *pgxpool.Pool) portsrepo.BankColorRepositoryFacade {
	return &PgxBankColorRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBankColorRepository implements portsrepo.BankColorRepositoryFacade
var _ portsrepo.BankColorRepositoryFacade = (*PgxBankColorRepository)(nil)

func (r *PgxBankColorRepository) UpsertBankColor(ctx context.Context, color domain.BankColor) error {
	m := mapping.ToModelBankColor(color)
	query := `
		INSERT INTO bank_colors (bank, color, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (bank) DO UPDATE SET
			color = EXCLUDED.color,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.Bank,
		m.Color,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert bank color for %q: %w", m.Bank, err)
	}
	return nil
}

func (r *PgxBankColorRepository) ListBankColors(ctx context.Context) ([]domain.BankColor, error) {
	query := `
		SELECT bank, color, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_colors
		ORDER BY bank;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank colors: %w", err)
	}
	defer rows.Close()

	modelColors := []models.BankColor{}
	for rows.Next() {
		var m models.BankColor
		err := rows.Scan(
			&m.Bank,
			&m.Color,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank color row: %w", err)
		}
		modelColors = append(modelColors, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bank color rows: %w", rows.Err())
	}

	return mapping.ToDomainBankColorSlice(modelColors), nil
}
