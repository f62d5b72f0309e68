package dto

import (
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a new client.
type CreateClientRequest struct {
	Name   string `json:"name" binding:"required"`
	Status string `json:"status" binding:"omitempty,oneof=ACTIVE BLOCKED HOLD"` // Defaults to ACTIVE
	Notes  string `json:"notes"`
}

// UpdateClientRequest defines the data allowed for updating a client.
type UpdateClientRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status" binding:"omitempty,oneof=ACTIVE BLOCKED HOLD"`
	Notes  *string `json:"notes"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID      string              `json:"clientID"`
	Name          string              `json:"name"`
	Status        domain.ClientStatus `json:"status"`
	Notes         string              `json:"notes"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      client.ClientID,
		Name:          client.Name,
		Status:        client.Status,
		Notes:         client.Notes,
		CreatedAt:     client.CreatedAt,
		LastUpdatedAt: client.LastUpdatedAt,
	}
}

// ToListClientResponse converts a slice of domain.Client to ClientResponse DTOs
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Q      string `form:"q"` // Substring over name/notes, case-insensitive
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE BLOCKED HOLD"`
}
