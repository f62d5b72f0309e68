package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// sheetServiceImpl implements the SheetSvcFacade interface
type sheetServiceImpl struct {
	BaseService
	cardRepo        portsrepo.CardRepositoryFacade
	bankColorRepo   portsrepo.BankColorRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	withdrawalRepo  portsrepo.WithdrawalRepositoryWithTx
	loc             *time.Location
}

// NewSheetServiceImpl creates the daily withdrawal sheet builder service
func NewSheetServiceImpl(cardRepo portsrepo.CardRepositoryFacade, bankColorRepo portsrepo.BankColorRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade, withdrawalRepo portsrepo.WithdrawalRepositoryWithTx, loc *time.Location) portssvc.SheetSvcFacade {
	return &sheetServiceImpl{
		cardRepo:        cardRepo,
		bankColorRepo:   bankColorRepo,
		transactionRepo: transactionRepo,
		withdrawalRepo:  withdrawalRepo,
		loc:             loc,
	}
}

// Ensure sheetServiceImpl implements the SheetSvcFacade interface
var _ portssvc.SheetSvcFacade = (*sheetServiceImpl)(nil)

func (s *sheetServiceImpl) BuildDailySheet(ctx context.Context, day time.Time, filter domain.SheetFilter) (*domain.DailySheet, error) {
	active := domain.CardActive
	cards, err := s.cardRepo.ListCards(ctx, &active, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active cards for sheet")
		return nil, fmt.Errorf("failed to list active cards: %w", err)
	}

	sheet := &domain.DailySheet{
		Day:          day,
		Rows:         []domain.SheetRow{},
		Banks:        []string{},
		SelectedBank: filter.Bank,
		Page:         normalizePage(filter.Page),
		PageSize:     filter.PageSize,
	}
	if len(cards) == 0 {
		return sheet, nil
	}

	cardIDs := make([]string, len(cards))
	for i, c := range cards {
		cardIDs[i] = c.CardID
	}

	// History through end of day is enough for carry, receipts and the day's
	// effective amounts; two bulk queries cover every card.
	y, m, d := day.Date()
	endOfDay := time.Date(y, m, d, 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
	nextDay := day.AddDate(0, 0, 1)

	txns, err := s.transactionRepo.ListForCards(ctx, cardIDs, &endOfDay)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for sheet")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	withdrawals, err := s.withdrawalRepo.ListForCards(ctx, cardIDs, &nextDay)
	if err != nil {
		s.LogError(ctx, err, "Failed to load withdrawals for sheet")
		return nil, fmt.Errorf("failed to load withdrawals: %w", err)
	}

	txnsByCard := make(map[string][]domain.Transaction, len(cards))
	for _, t := range txns {
		txnsByCard[t.CardID] = append(txnsByCard[t.CardID], t)
	}
	wdsByCard := make(map[string][]domain.Withdrawal, len(cards))
	for _, w := range withdrawals {
		wdsByCard[w.CardID] = append(wdsByCard[w.CardID], w)
	}

	colors, err := s.bankColorsByName(ctx)
	if err != nil {
		return nil, err
	}

	dayKey := dateKeyOf(day)
	rows := make([]domain.SheetRow, 0, len(cards))
	for _, card := range cards {
		deduped := dedupeWithdrawals(wdsByCard[card.CardID])
		calc := newBalanceCalc(s.loc, txnsByCard[card.CardID], deduped)

		should := calc.shouldHave(day)
		if !should.IsPositive() {
			continue
		}

		row := domain.SheetRow{
			CardID:     card.CardID,
			Label:      card.DisplayLabel(),
			Bank:       strings.TrimSpace(card.Bank),
			PIN:        card.PIN,
			ShouldHave: should,
			Withdrawn:  decimal.Zero,
			Commission: decimal.Zero,
		}
		row.BankColor = colors[strings.ToLower(row.Bank)]
		if row.BankColor == "" {
			row.BankColor = domain.DefaultBankColor
		}

		for _, w := range deduped {
			if w.DateKey() != dayKey {
				continue
			}
			row.Withdrawn = calc.effectiveWithdrawn(w)
			row.Commission = w.CommissionRUB
			row.FullyWithdrawn = w.FullyWithdrawn
			row.Note = w.Note
			break
		}

		row.Remaining = should.Sub(row.Withdrawn).Sub(row.Commission)
		if row.Remaining.IsNegative() {
			row.Remaining = decimal.Zero
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })

	sheet.Banks = distinctBanks(rows)

	if filter.Bank != "" {
		rows = filterRowsByBank(rows, filter.Bank)
		if len(rows) > 0 {
			// Echo the bank actually applied, not the raw filter text.
			sheet.SelectedBank = rows[0].Bank
		}
	}
	if filter.Text != "" {
		rows = filterRowsByText(rows, filter.Text)
	}

	sheet.TotalRows = len(rows)
	rows = paginateRows(rows, sheet.Page, sheet.PageSize)
	sheet.Rows = rows

	for _, r := range rows {
		sheet.Totals.ShouldHave = sheet.Totals.ShouldHave.Add(r.ShouldHave)
		sheet.Totals.Withdrawn = sheet.Totals.Withdrawn.Add(r.Withdrawn)
		sheet.Totals.Commission = sheet.Totals.Commission.Add(r.Commission)
		sheet.Totals.Remaining = sheet.Totals.Remaining.Add(r.Remaining)
	}

	s.LogDebug(ctx, "Daily sheet built",
		slog.String("day", dayKey),
		slog.Int("total_rows", sheet.TotalRows),
		slog.Int("page_rows", len(rows)))
	return sheet, nil
}

func (s *sheetServiceImpl) bankColorsByName(ctx context.Context) (map[string]string, error) {
	assigned, err := s.bankColorRepo.ListBankColors(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load bank colors for sheet")
		return nil, fmt.Errorf("failed to load bank colors: %w", err)
	}
	colors := make(map[string]string, len(assigned))
	for _, bc := range assigned {
		colors[strings.ToLower(bc.Bank)] = bc.Color
	}
	return colors, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func distinctBanks(rows []domain.SheetRow) []string {
	seen := make(map[string]struct{}, len(rows))
	banks := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Bank == "" {
			continue
		}
		if _, ok := seen[r.Bank]; ok {
			continue
		}
		seen[r.Bank] = struct{}{}
		banks = append(banks, r.Bank)
	}
	sort.Strings(banks)
	return banks
}

// filterRowsByBank prefers exact case-insensitive matches and falls back to a
// substring match only when nothing matches exactly.
func filterRowsByBank(rows []domain.SheetRow, bank string) []domain.SheetRow {
	needle := strings.ToLower(strings.TrimSpace(bank))
	exact := make([]domain.SheetRow, 0, len(rows))
	partial := make([]domain.SheetRow, 0, len(rows))
	for _, r := range rows {
		rowBank := strings.ToLower(r.Bank)
		if rowBank == needle {
			exact = append(exact, r)
		} else if strings.Contains(rowBank, needle) {
			partial = append(partial, r)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return partial
}

func filterRowsByText(rows []domain.SheetRow, text string) []domain.SheetRow {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return rows
	}
	out := make([]domain.SheetRow, 0, len(rows))
	for _, r := range rows {
		haystack := strings.ToLower(r.Label + " " + r.Bank + " " + r.PIN)
		if strings.Contains(haystack, needle) {
			out = append(out, r)
		}
	}
	return out
}

func paginateRows(rows []domain.SheetRow, page, pageSize int) []domain.SheetRow {
	if pageSize <= 0 {
		return rows
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []domain.SheetRow{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
