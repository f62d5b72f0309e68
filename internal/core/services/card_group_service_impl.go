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

// cardGroupServiceImpl implements the CardGroupSvcFacade interface
type cardGroupServiceImpl struct {
	BaseService
	groupRepo portsrepo.CardGroupRepositoryFacade
	cardRepo  portsrepo.CardRepositoryFacade
}

// NewCardGroupServiceImpl creates a new card group service
func NewCardGroupServiceImpl(groupRepo portsrepo.CardGroupRepositoryFacade, cardRepo portsrepo.CardRepositoryFacade) portssvc.CardGroupSvcFacade {
	return &cardGroupServiceImpl{
		groupRepo: groupRepo,
		cardRepo:  cardRepo,
	}
}

// Ensure cardGroupServiceImpl implements the CardGroupSvcFacade interface
var _ portssvc.CardGroupSvcFacade = (*cardGroupServiceImpl)(nil)

func (s *cardGroupServiceImpl) GetOrCreateGroup(ctx context.Context, name string, creatorUserID string) (*domain.CardGroup, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("group name is empty: %w", apperrors.ErrValidation)
	}

	group, err := s.groupRepo.FindGroupByName(ctx, trimmed)
	if err == nil {
		return group, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find card group by name",
			slog.String("group_name", trimmed))
		return nil, fmt.Errorf("failed to find card group: %w", err)
	}

	now := time.Now()
	created := domain.CardGroup{
		GroupID: uuid.NewString(),
		Name:    trimmed,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.groupRepo.SaveGroup(ctx, created); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a create race; the row exists now.
			return s.groupRepo.FindGroupByName(ctx, trimmed)
		}
		s.LogError(ctx, err, "Failed to save card group",
			slog.String("group_name", trimmed))
		return nil, err
	}

	s.LogInfo(ctx, "Card group created",
		slog.String("group_id", created.GroupID),
		slog.String("group_name", created.Name))
	return &created, nil
}

func (s *cardGroupServiceImpl) ListGroups(ctx context.Context) ([]domain.CardGroup, error) {
	groups, err := s.groupRepo.ListGroups(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list card groups")
		return nil, fmt.Errorf("failed to list card groups: %w", err)
	}
	if groups == nil {
		return []domain.CardGroup{}, nil
	}
	return groups, nil
}

func (s *cardGroupServiceImpl) RenameGroup(ctx context.Context, groupID string, req dto.RenameCardGroupRequest, updaterUserID string) (*domain.CardGroup, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find card group",
				slog.String("group_id", groupID))
		}
		return nil, err
	}

	group.Name = strings.TrimSpace(req.Name)
	group.LastUpdatedAt = time.Now()
	group.LastUpdatedBy = updaterUserID

	if err := s.groupRepo.UpdateGroup(ctx, *group); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to rename card group",
				slog.String("group_id", groupID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Card group renamed",
		slog.String("group_id", groupID),
		slog.String("group_name", group.Name))
	return group, nil
}

func (s *cardGroupServiceImpl) DeleteGroup(ctx context.Context, groupID string) error {
	if _, err := s.groupRepo.FindGroupByID(ctx, groupID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find card group",
				slog.String("group_id", groupID))
		}
		return err
	}

	count, err := s.cardRepo.CountCardsInGroup(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count cards in group",
			slog.String("group_id", groupID))
		return fmt.Errorf("failed to count cards in group: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("group still has %d cards: %w", count, apperrors.ErrConflict)
	}

	if err := s.groupRepo.DeleteGroup(ctx, groupID); err != nil {
		s.LogError(ctx, err, "Failed to delete card group",
			slog.String("group_id", groupID))
		return err
	}

	s.LogInfo(ctx, "Card group deleted", slog.String("group_id", groupID))
	return nil
}
