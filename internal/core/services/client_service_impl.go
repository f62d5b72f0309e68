package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
	"github.com/google/uuid"
)

// clientServiceImpl implements the ClientSvcFacade interface
type clientServiceImpl struct {
	BaseService
	clientRepo      portsrepo.ClientRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewClientServiceImpl creates a new client service
func NewClientServiceImpl(clientRepo portsrepo.ClientRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientServiceImpl{
		clientRepo:      clientRepo,
		transactionRepo: transactionRepo,
	}
}

// Ensure clientServiceImpl implements the ClientSvcFacade interface
var _ portssvc.ClientSvcFacade = (*clientServiceImpl)(nil)

func (s *clientServiceImpl) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find client by ID",
				slog.String("client_id", clientID))
		}
		return nil, err
	}
	return client, nil
}

func (s *clientServiceImpl) ListClients(ctx context.Context, query string, status *domain.ClientStatus) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx, strings.TrimSpace(query), status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

func (s *clientServiceImpl) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	status := domain.ClientActive
	if req.Status != "" {
		status = domain.ClientStatus(req.Status)
	}

	now := time.Now()
	client := domain.Client{
		ClientID: uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		Status:   status,
		Notes:    req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save client",
				slog.String("client_id", client.ClientID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Client created",
		slog.String("client_id", client.ClientID),
		slog.String("name", client.Name))
	return &client, nil
}

func (s *clientServiceImpl) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*domain.Client, error) {
	client, err := s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
		updated = true
	}
	if req.Status != nil {
		client.Status = domain.ClientStatus(*req.Status)
		updated = true
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
		updated = true
	}
	if !updated {
		return client, nil
	}

	now := time.Now()
	client.LastUpdatedAt = now
	client.LastUpdatedBy = updaterUserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update client",
				slog.String("client_id", clientID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Client updated", slog.String("client_id", clientID))
	return client, nil
}

func (s *clientServiceImpl) DeleteClient(ctx context.Context, clientID string) error {
	if _, err := s.GetClientByID(ctx, clientID); err != nil {
		return err
	}

	count, err := s.transactionRepo.CountByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count client transactions",
			slog.String("client_id", clientID))
		return fmt.Errorf("failed to count client transactions: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("client still has %d transactions: %w", count, apperrors.ErrConflict)
	}

	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete client",
				slog.String("client_id", clientID))
		}
		return err
	}

	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID))
	return nil
}
