package dto

import (
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TimelineParams defines query parameters for a card timeline.
type TimelineParams struct {
	From string `form:"from"` // Date, inclusive
	To   string `form:"to"`   // Date, inclusive
	Kind string `form:"kind" binding:"omitempty,oneof=TRANSACTION WITHDRAWAL"`
	Q    string `form:"q"` // Substring over client name and note
}

// TimelineEventResponse is one entry of a card's merged event stream.
type TimelineEventResponse struct {
	Kind           domain.TimelineEventKind `json:"kind"`
	SourceID       string                   `json:"sourceID"`
	Time           time.Time                `json:"time"`
	TimeDisplay    string                   `json:"timeDisplay"`
	Amount         decimal.Decimal          `json:"amount"`
	Withdrawn      decimal.Decimal          `json:"withdrawn"`
	Commission     decimal.Decimal          `json:"commission"`
	FullyWithdrawn bool                     `json:"fullyWithdrawn"`
	ClientName     string                   `json:"clientName"`
	Note           string                   `json:"note"`
	RunningBalance decimal.Decimal          `json:"runningBalance"`
}

// TimelineResponse wraps a card's event stream, newest first.
type TimelineResponse struct {
	CardID string                  `json:"cardID"`
	Events []TimelineEventResponse `json:"events"`
}

// ToTimelineResponse converts timeline events to the response DTO.
// Display times are rendered in the given location.
func ToTimelineResponse(cardID string, events []domain.TimelineEvent, loc *time.Location) TimelineResponse {
	res := make([]TimelineEventResponse, len(events))
	for i, e := range events {
		res[i] = TimelineEventResponse{
			Kind:           e.Kind,
			SourceID:       e.SourceID,
			Time:           e.Time,
			TimeDisplay:    e.Time.In(loc).Format("02/01/2006 15:04"),
			Amount:         e.Amount,
			Withdrawn:      e.Withdrawn,
			Commission:     e.Commission,
			FullyWithdrawn: e.FullyWithdrawn,
			ClientName:     e.ClientName,
			Note:           e.Note,
			RunningBalance: e.RunningBalance,
		}
	}
	return TimelineResponse{CardID: cardID, Events: res}
}
