package repositories

import (
	"context"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by its unique identifier.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClientByName retrieves a client by its exact name.
	FindClientByName(ctx context.Context, name string) (*domain.Client, error)

	// ListClients retrieves clients ordered by name. When query is non-empty it
	// is matched case-insensitively as a substring of name or notes.
	ListClients(ctx context.Context, query string, status *domain.ClientStatus) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client. Fails with a conflict when transactions
	// still reference it (enforced by the schema's RESTRICT constraint).
	DeleteClient(ctx context.Context, clientID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
