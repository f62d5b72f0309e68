package repositories

import (
	"context"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
)

// CardGroupReader defines read operations for card group data
type CardGroupReader interface {
	// FindGroupByID retrieves a specific group by its unique identifier.
	FindGroupByID(ctx context.Context, groupID string) (*domain.CardGroup, error)

	// FindGroupByName retrieves a group by name, matched case-insensitively.
	FindGroupByName(ctx context.Context, name string) (*domain.CardGroup, error)

	// ListGroups retrieves all groups ordered by name.
	ListGroups(ctx context.Context) ([]domain.CardGroup, error)
}

// CardGroupWriter defines write operations for card group data
type CardGroupWriter interface {
	// SaveGroup persists a new group.
	SaveGroup(ctx context.Context, group domain.CardGroup) error

	// UpdateGroup updates an existing group's details.
	UpdateGroup(ctx context.Context, group domain.CardGroup) error

	// DeleteGroup removes a group. Callers verify no card references it first.
	DeleteGroup(ctx context.Context, groupID string) error
}

// CardGroupRepositoryFacade combines all card-group repository interfaces
type CardGroupRepositoryFacade interface {
	CardGroupReader
	CardGroupWriter
}
