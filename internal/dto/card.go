package dto

import (
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
)

// CreateCardRequest defines the data needed to create a new card.
type CreateCardRequest struct {
	Name       string `json:"name" binding:"required"`
	Bank       string `json:"bank"`
	CardNumber string `json:"cardNumber"`
	PIN        string `json:"pin"`
	Status     string `json:"status" binding:"omitempty,oneof=ACTIVE BROKEN HOLD"` // Defaults to ACTIVE
	GroupName  string `json:"groupName"`                                           // Free text; resolved via get-or-create
	Notes      string `json:"notes"`
}

// UpdateCardRequest defines the data allowed for updating a card.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCardRequest struct {
	Name       *string `json:"name"`
	Bank       *string `json:"bank"`
	CardNumber *string `json:"cardNumber"`
	PIN        *string `json:"pin"`
	Status     *string `json:"status" binding:"omitempty,oneof=ACTIVE BROKEN HOLD"`
	GroupName  *string `json:"groupName"` // Empty string clears the group
	Notes      *string `json:"notes"`
}

// CardResponse defines the data returned for a card.
type CardResponse struct {
	CardID        string            `json:"cardID"`
	Name          string            `json:"name"`
	Bank          string            `json:"bank"`
	CardNumber    string            `json:"cardNumber"`
	PIN           string            `json:"pin"`
	Status        domain.CardStatus `json:"status"`
	GroupID       *string           `json:"groupID"`
	Notes         string            `json:"notes"`
	Label         string            `json:"label"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// ToCardResponse converts a domain.Card to CardResponse DTO
func ToCardResponse(card *domain.Card) CardResponse {
	return CardResponse{
		CardID:        card.CardID,
		Name:          card.Name,
		Bank:          card.Bank,
		CardNumber:    card.CardNumber,
		PIN:           card.PIN,
		Status:        card.Status,
		GroupID:       card.GroupID,
		Notes:         card.Notes,
		Label:         card.DisplayLabel(),
		CreatedAt:     card.CreatedAt,
		LastUpdatedAt: card.LastUpdatedAt,
	}
}

// ToListCardResponse converts a slice of domain.Card to CardResponse DTOs
func ToListCardResponse(cards []domain.Card) []CardResponse {
	res := make([]CardResponse, len(cards))
	for i := range cards {
		res[i] = ToCardResponse(&cards[i])
	}
	return res
}

// ListCardsParams defines query parameters for listing cards.
type ListCardsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE BROKEN HOLD"`
	Bank   string `form:"bank"`
}

// SetBankColorRequest assigns a display color to a bank name.
type SetBankColorRequest struct {
	Bank  string `json:"bank" binding:"required"`
	Color string `json:"color" binding:"required,hexcolor"`
}

// BankColorResponse defines the data returned for a bank color.
type BankColorResponse struct {
	Bank  string `json:"bank"`
	Color string `json:"color"`
}

// ToBankColorResponse converts a domain.BankColor to BankColorResponse DTO
func ToBankColorResponse(bc *domain.BankColor) BankColorResponse {
	return BankColorResponse{Bank: bc.Bank, Color: bc.Color}
}

// ToListBankColorResponse converts a slice of domain.BankColor to DTOs
func ToListBankColorResponse(colors []domain.BankColor) []BankColorResponse {
	res := make([]BankColorResponse, len(colors))
	for i := range colors {
		res[i] = ToBankColorResponse(&colors[i])
	}
	return res
}

// BankListResponse wraps the distinct bank names.
type BankListResponse struct {
	Banks []string `json:"banks"`
}
