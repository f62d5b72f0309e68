package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Shared fixture helpers for the suites in this package ---

// testLoc is the reference timezone used by every day-aware suite. A fixed
// offset keeps the tests independent of the host's tz database.
var testLoc = time.FixedZone("MSK", 3*60*60)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

// locTime builds an instant in the reference timezone.
func locTime(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, testLoc)
}

// dbDate builds a calendar day the way DATE columns scan: midnight UTC.
func dbDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func txnAt(cardID string, ts time.Time, amountRUB string) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		CardID:        cardID,
		ClientID:      uuid.NewString(),
		Timestamp:     ts,
		AmountRUB:     dec(amountRUB),
		AmountUSD:     decimal.Zero,
	}
}

func wdRow(id, cardID string, date time.Time, full bool, withdrawn *decimal.Decimal, commission string) domain.Withdrawal {
	return domain.Withdrawal{
		WithdrawalID:   id,
		CardID:         cardID,
		Date:           date,
		FullyWithdrawn: full,
		WithdrawnRUB:   withdrawn,
		CommissionRUB:  dec(commission),
	}
}

// --- Test Suite Setup ---

type BalanceServiceTestSuite struct {
	suite.Suite
	mockCardRepo *MockCardRepository
	mockTxnRepo  *MockTransactionRepository
	mockWdRepo   *MockWithdrawalRepository
	service      portssvc.BalanceSvcFacade
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockCardRepo = new(MockCardRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockWdRepo = new(MockWithdrawalRepository)
	suite.service = services.NewBalanceServiceImpl(suite.mockCardRepo, suite.mockTxnRepo, suite.mockWdRepo, testLoc)
}

// expectHistory wires the three loads behind one balance computation.
func (suite *BalanceServiceTestSuite) expectHistory(ctx context.Context, cardID string, txns []domain.Transaction, wds []domain.Withdrawal) {
	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&domain.Card{CardID: cardID, Status: domain.CardActive}, nil).Once()
	suite.mockTxnRepo.On("ListForCards", ctx, []string{cardID}, (*time.Time)(nil)).Return(txns, nil).Once()
	suite.mockWdRepo.On("ListForCards", ctx, []string{cardID}, (*time.Time)(nil)).Return(wds, nil).Once()
}

// --- Carried balance ---

func (suite *BalanceServiceTestSuite) TestCarriedBalance_NoHistory() {
	ctx := context.Background()
	cardID := uuid.NewString()

	suite.expectHistory(ctx, cardID, []domain.Transaction{}, []domain.Withdrawal{})

	carried, err := suite.service.CarriedBalance(ctx, cardID, dbDate(2026, 1, 10))

	suite.Require().NoError(err)
	suite.Equal("0", carried.String())

	suite.mockCardRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockWdRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestCarriedBalance_ReceiptsMinusPartialWithdrawals() {
	ctx := context.Background()
	cardID := uuid.NewString()

	// 1000 received on the 5th, 200 withdrawn plus 50 commission the same day.
	txns := []domain.Transaction{txnAt(cardID, locTime(2026, 1, 5, 12, 0), "1000")}
	wds := []domain.Withdrawal{wdRow("w1", cardID, dbDate(2026, 1, 5), false, decPtr("200"), "50")}
	suite.expectHistory(ctx, cardID, txns, wds)

	carried, err := suite.service.CarriedBalance(ctx, cardID, dbDate(2026, 1, 6))

	suite.Require().NoError(err)
	suite.Equal("750", carried.String())
}

func (suite *BalanceServiceTestSuite) TestCarriedBalance_QuietDaysCarryUnchanged() {
	ctx := context.Background()
	cardID := uuid.NewString()

	txns := []domain.Transaction{txnAt(cardID, locTime(2026, 1, 5, 12, 0), "1000")}
	wds := []domain.Withdrawal{wdRow("w1", cardID, dbDate(2026, 1, 5), false, decPtr("200"), "50")}
	suite.expectHistory(ctx, cardID, txns, wds)

	// Nothing happened on the 6th or 7th; the carry stays put.
	carried, err := suite.service.CarriedBalance(ctx, cardID, dbDate(2026, 1, 8))

	suite.Require().NoError(err)
	suite.Equal("750", carried.String())
}

func (suite *BalanceServiceTestSuite) TestCarriedBalance_ResetOnFullWithdrawal() {
	ctx := context.Background()
	cardID := uuid.NewString()

	// The stored amount on a full row is garbage on purpose; it must not count.
	txns := []domain.Transaction{txnAt(cardID, locTime(2026, 1, 5, 12, 0), "1000")}
	wds := []domain.Withdrawal{wdRow("w1", cardID, dbDate(2026, 1, 5), true, decPtr("123.45"), "0")}
	suite.expectHistory(ctx, cardID, txns, wds)

	carried, err := suite.service.CarriedBalance(ctx, cardID, dbDate(2026, 1, 6))

	suite.Require().NoError(err)
	suite.Equal("0", carried.String())
}

func (suite *BalanceServiceTestSuite) TestCarriedBalance_WindowReopensAfterFull() {
	ctx := context.Background()
	cardID := uuid.NewString()

	txns := []domain.Transaction{
		txnAt(cardID, locTime(2026, 1, 5, 12, 0), "1000"),
		txnAt(cardID, locTime(2026, 1, 6, 10, 0), "300"),
	}
	wds := []domain.Withdrawal{
		wdRow("w1", cardID, dbDate(2026, 1, 5), true, nil, "0"),
		wdRow("w2", cardID, dbDate(2026, 1, 6), false, decPtr("100"), "0"),
	}
	suite.expectHistory(ctx, cardID, txns, wds)

	// Only activity after the full withdrawal counts: 300 - 100.
	carried, err := suite.service.CarriedBalance(ctx, cardID, dbDate(2026, 1, 7))

	suite.Require().NoError(err)
	suite.Equal("200", carried.String())
}

func (suite *BalanceServiceTestSuite) TestCarriedBalance_NeverNegative() {
	ctx := context.Background()
	cardID := uuid.NewString()

	txns := []domain.Transaction{txnAt(cardID, locTime(2026, 1, 5, 12, 0), "100")}
	wds := []domain.Withdrawal{wdRow("w1", cardID, dbDate(2026, 1, 5), false, decPtr("200"), "50")}
	suite.expectHistory(ctx, cardID, txns, wds)

	carried, err := suite.service.CarriedBalance(ctx, cardID, dbDate(2026, 1, 6))

	suite.Require().NoError(err)
	suite.Equal("0", carried.String())
}

func (suite *BalanceServiceTestSuite) TestCarriedBalance_CardNotFound() {
	ctx := context.Background()
	cardID := uuid.NewString()

	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CarriedBalance(ctx, cardID, dbDate(2026, 1, 6))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListForCards", mock.Anything, mock.Anything, mock.Anything)
	suite.mockWdRepo.AssertNotCalled(suite.T(), "ListForCards", mock.Anything, mock.Anything, mock.Anything)
}

// --- Received on day ---

func (suite *BalanceServiceTestSuite) TestReceivedOnDay_LocalDayBoundaries() {
	ctx := context.Background()
	cardID := uuid.NewString()

	// The day window is half-open in the reference timezone: midnight is in,
	// next midnight is out.
	txns := []domain.Transaction{
		txnAt(cardID, locTime(2026, 1, 4, 23, 59), "150"),
		txnAt(cardID, locTime(2026, 1, 5, 0, 0), "10"),
		txnAt(cardID, locTime(2026, 1, 5, 23, 59), "20"),
		txnAt(cardID, locTime(2026, 1, 6, 0, 0), "40"),
	}
	suite.expectHistory(ctx, cardID, txns, []domain.Withdrawal{})

	received, err := suite.service.ReceivedOnDay(ctx, cardID, dbDate(2026, 1, 5))

	suite.Require().NoError(err)
	suite.Equal("30", received.String())
}

// --- Should-have and the combined day view ---

func (suite *BalanceServiceTestSuite) TestShouldHave_CarriedPlusReceived() {
	ctx := context.Background()
	cardID := uuid.NewString()

	txns := []domain.Transaction{
		txnAt(cardID, locTime(2026, 1, 5, 12, 0), "1000"),
		txnAt(cardID, locTime(2026, 1, 6, 11, 0), "500"),
	}
	wds := []domain.Withdrawal{wdRow("w1", cardID, dbDate(2026, 1, 5), false, decPtr("200"), "50")}
	suite.expectHistory(ctx, cardID, txns, wds)

	should, err := suite.service.ShouldHave(ctx, cardID, dbDate(2026, 1, 6))

	suite.Require().NoError(err)
	suite.Equal("1250", should.String())
}

func (suite *BalanceServiceTestSuite) TestBalanceOnDay_ReturnsAllThreeFigures() {
	ctx := context.Background()
	cardID := uuid.NewString()
	day := dbDate(2026, 1, 6)

	txns := []domain.Transaction{
		txnAt(cardID, locTime(2026, 1, 5, 12, 0), "1000"),
		txnAt(cardID, locTime(2026, 1, 6, 11, 0), "500"),
	}
	wds := []domain.Withdrawal{wdRow("w1", cardID, dbDate(2026, 1, 5), false, decPtr("200"), "50")}
	suite.expectHistory(ctx, cardID, txns, wds)

	balance, err := suite.service.BalanceOnDay(ctx, cardID, day)

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.Equal(cardID, balance.CardID)
	suite.Equal(day, balance.Day)
	suite.Equal("750", balance.Carried.String())
	suite.Equal("500", balance.Received.String())
	suite.Equal("1250", balance.ShouldHave.String())
}

// --- Range totals ---

func (suite *BalanceServiceTestSuite) TestRangeTotals_WholeHistory() {
	ctx := context.Background()
	cardID := uuid.NewString()

	txns := []domain.Transaction{
		txnAt(cardID, locTime(2026, 1, 5, 12, 0), "1000"),
		txnAt(cardID, locTime(2026, 1, 6, 11, 0), "500"),
	}
	wds := []domain.Withdrawal{
		wdRow("w1", cardID, dbDate(2026, 1, 5), false, decPtr("200"), "50"),
		wdRow("w2", cardID, dbDate(2026, 1, 6), true, nil, "0"),
	}
	suite.expectHistory(ctx, cardID, txns, wds)

	// The full withdrawal on the 6th drained 750 + 500 = 1250, so the whole
	// history nets out to zero.
	totals, err := suite.service.RangeTotals(ctx, cardID, nil, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(totals)
	suite.Equal("1500", totals.Received.String())
	suite.Equal("1450", totals.Withdrawn.String())
	suite.Equal("50", totals.Commission.String())
	suite.Equal("0", totals.Balance.String())
}

func (suite *BalanceServiceTestSuite) TestRangeTotals_SubRangeIsNotCarryAware() {
	ctx := context.Background()
	cardID := uuid.NewString()

	txns := []domain.Transaction{
		txnAt(cardID, locTime(2026, 1, 5, 12, 0), "1000"),
		txnAt(cardID, locTime(2026, 1, 6, 11, 0), "500"),
	}
	wds := []domain.Withdrawal{
		wdRow("w1", cardID, dbDate(2026, 1, 5), false, decPtr("200"), "50"),
		wdRow("w2", cardID, dbDate(2026, 1, 6), true, nil, "0"),
	}
	suite.expectHistory(ctx, cardID, txns, wds)

	start := dbDate(2026, 1, 6)
	end := dbDate(2026, 1, 6)
	totals, err := suite.service.RangeTotals(ctx, cardID, &start, &end)

	suite.Require().NoError(err)
	// The full row's effective amount still reflects the whole history
	// (1250), but receipts only count inside the range, so the plain
	// difference goes negative. Range totals deliberately don't carry.
	suite.Equal("500", totals.Received.String())
	suite.Equal("1250", totals.Withdrawn.String())
	suite.Equal("-750", totals.Balance.String())
}

// --- Effective withdrawn ---

func (suite *BalanceServiceTestSuite) TestEffectiveWithdrawn_PartialUsesStoredAmount() {
	ctx := context.Background()
	w := wdRow("w1", uuid.NewString(), dbDate(2026, 1, 5), false, decPtr("200"), "0")

	// Partial rows never need the card history.
	amount, err := suite.service.EffectiveWithdrawn(ctx, w)

	suite.Require().NoError(err)
	suite.Equal("200", amount.String())
	suite.mockCardRepo.AssertNotCalled(suite.T(), "FindCardByID", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestEffectiveWithdrawn_PartialMissingAmountIsZero() {
	ctx := context.Background()
	w := wdRow("w1", uuid.NewString(), dbDate(2026, 1, 5), false, nil, "0")

	amount, err := suite.service.EffectiveWithdrawn(ctx, w)

	suite.Require().NoError(err)
	suite.Equal("0", amount.String())
	suite.mockCardRepo.AssertNotCalled(suite.T(), "FindCardByID", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestEffectiveWithdrawn_FullComputesShouldHave() {
	ctx := context.Background()
	cardID := uuid.NewString()

	// Whatever amount a full row stores is ignored in favor of the computed
	// should-have for its day.
	w := wdRow("w1", cardID, dbDate(2026, 1, 5), true, decPtr("9999"), "0")
	txns := []domain.Transaction{txnAt(cardID, locTime(2026, 1, 5, 12, 0), "1000")}
	suite.expectHistory(ctx, cardID, txns, []domain.Withdrawal{w})

	amount, err := suite.service.EffectiveWithdrawn(ctx, w)

	suite.Require().NoError(err)
	suite.Equal("1000", amount.String())
}

// --- Dedupe ---

func (suite *BalanceServiceTestSuite) TestDedupeByDate_LaterTimestampWins() {
	cardID := uuid.NewString()
	earlier := locTime(2026, 1, 5, 10, 0)
	later := locTime(2026, 1, 5, 11, 0)

	a := wdRow("wa", cardID, dbDate(2026, 1, 5), false, decPtr("100"), "0")
	a.Timestamp = &earlier
	b := wdRow("wb", cardID, dbDate(2026, 1, 5), false, decPtr("300"), "0")
	b.Timestamp = &later

	out := suite.service.DedupeByDate([]domain.Withdrawal{a, b})

	suite.Require().Len(out, 1)
	suite.Equal("wb", out[0].WithdrawalID)
}

func (suite *BalanceServiceTestSuite) TestDedupeByDate_MissingTimestampLoses() {
	cardID := uuid.NewString()
	stamped := locTime(2026, 1, 5, 10, 0)

	// "wz" sorts above "wa" by ID, but a row without a timestamp always loses
	// to one that has it.
	a := wdRow("wz", cardID, dbDate(2026, 1, 5), false, decPtr("100"), "0")
	b := wdRow("wa", cardID, dbDate(2026, 1, 5), false, decPtr("300"), "0")
	b.Timestamp = &stamped

	out := suite.service.DedupeByDate([]domain.Withdrawal{a, b})

	suite.Require().Len(out, 1)
	suite.Equal("wa", out[0].WithdrawalID)
}

func (suite *BalanceServiceTestSuite) TestDedupeByDate_EqualTimestampsGreaterIDWins() {
	cardID := uuid.NewString()
	ts := locTime(2026, 1, 5, 10, 0)

	a := wdRow("wa", cardID, dbDate(2026, 1, 5), false, decPtr("100"), "0")
	a.Timestamp = &ts
	b := wdRow("wb", cardID, dbDate(2026, 1, 5), false, decPtr("300"), "0")
	b.Timestamp = &ts

	out := suite.service.DedupeByDate([]domain.Withdrawal{a, b})

	suite.Require().Len(out, 1)
	suite.Equal("wb", out[0].WithdrawalID)
}

func (suite *BalanceServiceTestSuite) TestDedupeByDate_KeepsDistinctKeysInOrder() {
	cardA := "card-a"
	cardB := "card-b"

	rows := []domain.Withdrawal{
		wdRow("w3", cardB, dbDate(2026, 1, 5), false, decPtr("10"), "0"),
		wdRow("w1", cardA, dbDate(2026, 1, 6), false, decPtr("20"), "0"),
		wdRow("w2", cardA, dbDate(2026, 1, 5), false, decPtr("30"), "0"),
	}

	out := suite.service.DedupeByDate(rows)

	suite.Require().Len(out, 3)
	// Ascending by date, then card.
	suite.Equal("w2", out[0].WithdrawalID)
	suite.Equal("w3", out[1].WithdrawalID)
	suite.Equal("w1", out[2].WithdrawalID)
}

func (suite *BalanceServiceTestSuite) TestDedupeByDate_Idempotent() {
	cardID := uuid.NewString()
	earlier := locTime(2026, 1, 5, 10, 0)
	later := locTime(2026, 1, 5, 11, 0)

	a := wdRow("wa", cardID, dbDate(2026, 1, 5), false, decPtr("100"), "0")
	a.Timestamp = &earlier
	b := wdRow("wb", cardID, dbDate(2026, 1, 5), false, decPtr("300"), "0")
	b.Timestamp = &later
	c := wdRow("wc", cardID, dbDate(2026, 1, 7), false, nil, "5")

	once := suite.service.DedupeByDate([]domain.Withdrawal{a, b, c})
	twice := suite.service.DedupeByDate(once)

	suite.LessOrEqual(len(once), 3)
	assert.Equal(suite.T(), once, twice)
}

// --- Run Test Suite ---

func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
