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

const clientColumns = `client_id, name, status, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.Name,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: client %q already exists", apperrors.ErrDuplicate, client.Name)
		}
		return fmt.Errorf("failed to save client %s: %w", m.ClientID, err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	m, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	client := mapping.ToDomainClient(m)
	return &client, nil
}

func (r *PgxClientRepository) FindClientByName(ctx context.Context, name string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE name = $1;`
	m, err := scanClient(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by name %q: %w", name, err)
	}
	client := mapping.ToDomainClient(m)
	return &client, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, query string, status *domain.ClientStatus) ([]domain.Client, error) {
	sqlQuery := `SELECT ` + clientColumns + ` FROM clients`
	args := []interface{}{}
	conditions := ""
	if query != "" {
		args = append(args, "%"+query+"%")
		conditions += fmt.Sprintf(" WHERE (name ILIKE $%d OR notes ILIKE $%d)", len(args), len(args))
	}
	if status != nil {
		args = append(args, string(*status))
		if conditions == "" {
			conditions += fmt.Sprintf(" WHERE status = $%d", len(args))
		} else {
			conditions += fmt.Sprintf(" AND status = $%d", len(args))
		}
	}
	sqlQuery += conditions + ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	modelClients := []models.Client{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		modelClients = append(modelClients, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}

	return mapping.ToDomainClientSlice(modelClients), nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		UPDATE clients
		SET name = $1, status = $2, notes = $3, last_updated_at = $4, last_updated_by = $5
		WHERE client_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Status,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ClientID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: client %q already exists", apperrors.ErrDuplicate, client.Name)
		}
		return fmt.Errorf("failed to update client %s: %w", m.ClientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", m.ClientID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE client_id = $1;`, clientID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: client %s still has transactions", apperrors.ErrConflict, clientID)
		}
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
	}
	return nil
}
