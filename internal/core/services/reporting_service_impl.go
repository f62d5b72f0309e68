package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingServiceImpl implements the ReportingSvcFacade interface
type reportingServiceImpl struct {
	BaseService
	cardRepo        portsrepo.CardRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	withdrawalRepo  portsrepo.WithdrawalRepositoryWithTx
	reportingRepo   portsrepo.ReportingRepositoryFacade
	loc             *time.Location
}

// NewReportingServiceImpl creates a new reporting service
func NewReportingServiceImpl(cardRepo portsrepo.CardRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade, withdrawalRepo portsrepo.WithdrawalRepositoryWithTx, reportingRepo portsrepo.ReportingRepositoryFacade, loc *time.Location) portssvc.ReportingSvcFacade {
	return &reportingServiceImpl{
		cardRepo:        cardRepo,
		transactionRepo: transactionRepo,
		withdrawalRepo:  withdrawalRepo,
		reportingRepo:   reportingRepo,
		loc:             loc,
	}
}

// Ensure reportingServiceImpl implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingServiceImpl)(nil)

func (s *reportingServiceImpl) CardTotals(ctx context.Context, start, end *time.Time) ([]domain.CardTotals, *domain.RangeTotals, error) {
	cards, err := s.cardRepo.ListCards(ctx, nil, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cards for totals report")
		return nil, nil, fmt.Errorf("failed to list cards: %w", err)
	}

	overall := &domain.RangeTotals{
		Received:   decimal.Zero,
		Withdrawn:  decimal.Zero,
		Commission: decimal.Zero,
		Balance:    decimal.Zero,
	}
	if len(cards) == 0 {
		return []domain.CardTotals{}, overall, nil
	}

	cardIDs := make([]string, len(cards))
	for i, c := range cards {
		cardIDs[i] = c.CardID
	}

	// Rows dated past the range end never matter; everything earlier does,
	// full withdrawals inside the range need their day's should-have.
	var until, untilDate *time.Time
	if end != nil {
		y, m, d := end.Date()
		u := time.Date(y, m, d, 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
		until = &u
		nextDay := end.AddDate(0, 0, 1)
		untilDate = &nextDay
	}

	txns, err := s.transactionRepo.ListForCards(ctx, cardIDs, until)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for totals report")
		return nil, nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	withdrawals, err := s.withdrawalRepo.ListForCards(ctx, cardIDs, untilDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to load withdrawals for totals report")
		return nil, nil, fmt.Errorf("failed to load withdrawals: %w", err)
	}

	txnsByCard := make(map[string][]domain.Transaction, len(cards))
	for _, t := range txns {
		txnsByCard[t.CardID] = append(txnsByCard[t.CardID], t)
	}
	wdsByCard := make(map[string][]domain.Withdrawal, len(cards))
	for _, w := range withdrawals {
		wdsByCard[w.CardID] = append(wdsByCard[w.CardID], w)
	}

	rows := make([]domain.CardTotals, 0, len(cards))
	for _, card := range cards {
		calc := newBalanceCalc(s.loc, txnsByCard[card.CardID], dedupeWithdrawals(wdsByCard[card.CardID]))
		totals := calc.rangeTotals(start, end)

		rows = append(rows, domain.CardTotals{
			CardID: card.CardID,
			Label:  card.DisplayLabel(),
			Bank:   card.Bank,
			Status: card.Status,
			Totals: totals,
		})
		overall.Received = overall.Received.Add(totals.Received)
		overall.Withdrawn = overall.Withdrawn.Add(totals.Withdrawn)
		overall.Commission = overall.Commission.Add(totals.Commission)
		overall.Balance = overall.Balance.Add(totals.Balance)
	}

	s.LogDebug(ctx, "Card totals report built", slog.Int("cards", len(rows)))
	return rows, overall, nil
}

func (s *reportingServiceImpl) PaymentsSummary(ctx context.Context, start, end *time.Time, clientID *string) ([]domain.PaymentSummaryRow, error) {
	var from, to *time.Time
	if start != nil {
		y, m, d := start.Date()
		f := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
		from = &f
	}
	if end != nil {
		y, m, d := end.Date()
		t := time.Date(y, m, d, 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
		to = &t
	}

	rows, err := s.reportingRepo.GetPaymentSummaries(ctx, from, to, clientID, s.loc.String())
	if err != nil {
		s.LogError(ctx, err, "Failed to build payments summary")
		return nil, fmt.Errorf("failed to build payments summary: %w", err)
	}

	s.LogDebug(ctx, "Payments summary built", slog.Int("rows", len(rows)))
	return rows, nil
}
