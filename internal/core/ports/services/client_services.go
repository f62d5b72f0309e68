package services

import (
	"context"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClientByID retrieves a client by ID.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves clients ordered by name, optionally narrowed by a
	// case-insensitive substring query over name/notes and by status.
	ListClients(ctx context.Context, query string, status *domain.ClientStatus) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient creates a new client with a unique name.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)

	// UpdateClient updates an existing client.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*domain.Client, error)

	// DeleteClient removes a client; fails with a conflict while transactions
	// reference it.
	DeleteClient(ctx context.Context, clientID string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
