package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// timelineServiceImpl implements the TimelineSvcFacade interface
type timelineServiceImpl struct {
	BaseService
	cardRepo        portsrepo.CardRepositoryFacade
	clientRepo      portsrepo.ClientRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	withdrawalRepo  portsrepo.WithdrawalRepositoryWithTx
	loc             *time.Location
}

// NewTimelineServiceImpl creates the card timeline builder service
func NewTimelineServiceImpl(cardRepo portsrepo.CardRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade, withdrawalRepo portsrepo.WithdrawalRepositoryWithTx, loc *time.Location) portssvc.TimelineSvcFacade {
	return &timelineServiceImpl{
		cardRepo:        cardRepo,
		clientRepo:      clientRepo,
		transactionRepo: transactionRepo,
		withdrawalRepo:  withdrawalRepo,
		loc:             loc,
	}
}

// Ensure timelineServiceImpl implements the TimelineSvcFacade interface
var _ portssvc.TimelineSvcFacade = (*timelineServiceImpl)(nil)

func (s *timelineServiceImpl) BuildTimeline(ctx context.Context, cardID string, start, end *time.Time, filter domain.TimelineFilter) ([]domain.TimelineEvent, error) {
	if _, err := s.cardRepo.FindCardByID(ctx, cardID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find card for timeline",
				slog.String("card_id", cardID))
		}
		return nil, err
	}

	// The calc covers the card's full history: the seed needs activity before
	// the range and full withdrawals need their day's should-have.
	txns, err := s.transactionRepo.ListForCards(ctx, []string{cardID}, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for timeline",
			slog.String("card_id", cardID))
		return nil, fmt.Errorf("failed to load transactions for card %s: %w", cardID, err)
	}
	withdrawals, err := s.withdrawalRepo.ListForCards(ctx, []string{cardID}, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load withdrawals for timeline",
			slog.String("card_id", cardID))
		return nil, fmt.Errorf("failed to load withdrawals for card %s: %w", cardID, err)
	}
	deduped := dedupeWithdrawals(withdrawals)
	calc := newBalanceCalc(s.loc, txns, deduped)

	clientNames, err := s.clientNamesByID(ctx)
	if err != nil {
		return nil, err
	}

	var startInstant, endInstant time.Time
	startKey, endKey := "", ""
	if start != nil {
		startInstant = calc.dayStart(*start)
		startKey = dateKeyOf(*start)
	}
	if end != nil {
		endInstant = calc.dayStart(*end).AddDate(0, 0, 1)
		endKey = dateKeyOf(*end)
	}

	events := make([]domain.TimelineEvent, 0, len(txns)+len(deduped))
	for _, t := range txns {
		if start != nil && t.Timestamp.Before(startInstant) {
			continue
		}
		if end != nil && !t.Timestamp.Before(endInstant) {
			continue
		}
		events = append(events, domain.TimelineEvent{
			Kind:       domain.TimelineCredit,
			SourceID:   t.TransactionID,
			Time:       t.Timestamp,
			Amount:     t.AmountRUB,
			Withdrawn:  decimal.Zero,
			Commission: decimal.Zero,
			ClientName: clientNames[t.ClientID],
			Note:       t.Notes,
		})
	}
	for _, w := range deduped {
		key := w.DateKey()
		if startKey != "" && key < startKey {
			continue
		}
		if endKey != "" && key > endKey {
			continue
		}
		withdrawn := calc.effectiveWithdrawn(w)
		if withdrawn.IsZero() && w.CommissionRUB.IsZero() {
			continue
		}
		eventTime := calc.dayStart(w.Date).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		if w.Timestamp != nil {
			eventTime = *w.Timestamp
		}
		events = append(events, domain.TimelineEvent{
			Kind:           domain.TimelineDebit,
			SourceID:       w.WithdrawalID,
			Time:           eventTime,
			Amount:         decimal.Zero,
			Withdrawn:      withdrawn,
			Commission:     w.CommissionRUB,
			FullyWithdrawn: w.FullyWithdrawn,
			Note:           w.Note,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Time.Equal(events[j].Time) {
			return events[i].Time.Before(events[j].Time)
		}
		return events[i].SourceID < events[j].SourceID
	})

	// Running balance walks the full ordered set; filtering below never
	// changes it.
	balance := decimal.Zero
	if start != nil {
		balance = calc.carriedBalance(*start)
	}
	for i := range events {
		switch events[i].Kind {
		case domain.TimelineCredit:
			balance = balance.Add(events[i].Amount)
		case domain.TimelineDebit:
			balance = balance.Sub(events[i].Withdrawn).Sub(events[i].Commission)
		}
		events[i].RunningBalance = balance
	}

	// Newest first.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	filtered := filterTimelineEvents(events, filter)

	s.LogDebug(ctx, "Timeline built",
		slog.String("card_id", cardID),
		slog.Int("events", len(events)),
		slog.Int("returned", len(filtered)))
	return filtered, nil
}

// clientNamesByID loads all clients once and indexes their names.
func (s *timelineServiceImpl) clientNamesByID(ctx context.Context) (map[string]string, error) {
	clients, err := s.clientRepo.ListClients(ctx, "", nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load clients for timeline")
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ClientID] = c.Name
	}
	return names, nil
}

// filterTimelineEvents is the final projection over the finished walk.
func filterTimelineEvents(events []domain.TimelineEvent, filter domain.TimelineFilter) []domain.TimelineEvent {
	if filter.Kind == "" && filter.Text == "" {
		return events
	}
	needle := strings.ToLower(strings.TrimSpace(filter.Text))
	out := make([]domain.TimelineEvent, 0, len(events))
	for _, e := range events {
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		if needle != "" {
			haystack := strings.ToLower(e.ClientName + " " + e.Note)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
