package services

import (
	"context"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
)

// CardGroupSvcFacade manages card groups.
type CardGroupSvcFacade interface {
	// GetOrCreateGroup finds a group by name (case-insensitive) or creates it.
	GetOrCreateGroup(ctx context.Context, name string, creatorUserID string) (*domain.CardGroup, error)

	// ListGroups retrieves all groups ordered by name.
	ListGroups(ctx context.Context) ([]domain.CardGroup, error)

	// RenameGroup changes a group's name.
	RenameGroup(ctx context.Context, groupID string, req dto.RenameCardGroupRequest, updaterUserID string) (*domain.CardGroup, error)

	// DeleteGroup removes a group; fails with a conflict while cards reference it.
	DeleteGroup(ctx context.Context, groupID string) error
}
