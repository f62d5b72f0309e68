package dto

import "github.com/cardflow-app/cardflow_backend/internal/core/domain"

// CreateCardGroupRequest defines the data needed to create a card group.
type CreateCardGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameCardGroupRequest defines the data for renaming a card group.
type RenameCardGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// CardGroupResponse defines the data returned for a card group.
type CardGroupResponse struct {
	GroupID string `json:"groupID"`
	Name    string `json:"name"`
}

// ToCardGroupResponse converts a domain.CardGroup to CardGroupResponse DTO
func ToCardGroupResponse(g *domain.CardGroup) CardGroupResponse {
	return CardGroupResponse{GroupID: g.GroupID, Name: g.Name}
}

// ToListCardGroupResponse converts a slice of domain.CardGroup to DTOs
func ToListCardGroupResponse(groups []domain.CardGroup) []CardGroupResponse {
	res := make([]CardGroupResponse, len(groups))
	for i := range groups {
		res[i] = ToCardGroupResponse(&groups[i])
	}
	return res
}
