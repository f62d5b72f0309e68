package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type TimelineServiceTestSuite struct {
	suite.Suite
	mockCardRepo   *MockCardRepository
	mockClientRepo *MockClientRepository
	mockTxnRepo    *MockTransactionRepository
	mockWdRepo     *MockWithdrawalRepository
	service        portssvc.TimelineSvcFacade
}

func (suite *TimelineServiceTestSuite) SetupTest() {
	suite.mockCardRepo = new(MockCardRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockWdRepo = new(MockWithdrawalRepository)
	suite.service = services.NewTimelineServiceImpl(suite.mockCardRepo, suite.mockClientRepo, suite.mockTxnRepo, suite.mockWdRepo, testLoc)
}

func (suite *TimelineServiceTestSuite) expectHistory(ctx context.Context, cardID string, txns []domain.Transaction, wds []domain.Withdrawal, clients []domain.Client) {
	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&domain.Card{CardID: cardID, Status: domain.CardActive}, nil).Once()
	suite.mockTxnRepo.On("ListForCards", ctx, []string{cardID}, (*time.Time)(nil)).Return(txns, nil).Once()
	suite.mockWdRepo.On("ListForCards", ctx, []string{cardID}, (*time.Time)(nil)).Return(wds, nil).Once()
	suite.mockClientRepo.On("ListClients", ctx, "", (*domain.ClientStatus)(nil)).Return(clients, nil).Once()
}

// --- Test Cases ---

func (suite *TimelineServiceTestSuite) TestBuildTimeline_MergesNewestFirstWithRunningBalances() {
	ctx := context.Background()
	cardID := "card-1"

	t1 := txnAt(cardID, locTime(2026, 1, 5, 10, 0), "1000")
	t1.ClientID = "c1"
	t2 := txnAt(cardID, locTime(2026, 1, 6, 9, 0), "500")
	t2.ClientID = "c2"
	wTime := locTime(2026, 1, 5, 18, 0)
	w := wdRow("w1", cardID, dbDate(2026, 1, 5), false, decPtr("200"), "50")
	w.Timestamp = &wTime

	clients := []domain.Client{
		{ClientID: "c1", Name: "Alpha"},
		{ClientID: "c2", Name: "Beta"},
	}
	suite.expectHistory(ctx, cardID, []domain.Transaction{t1, t2}, []domain.Withdrawal{w}, clients)

	events, err := suite.service.BuildTimeline(ctx, cardID, nil, nil, domain.TimelineFilter{})

	suite.Require().NoError(err)
	suite.Require().Len(events, 3)

	// Newest first: the credit on the 6th, then the evening withdrawal, then
	// the morning credit.
	suite.Equal(t2.TransactionID, events[0].SourceID)
	suite.Equal(domain.TimelineCredit, events[0].Kind)
	suite.Equal("Beta", events[0].ClientName)
	suite.Equal("1250", events[0].RunningBalance.String())

	suite.Equal("w1", events[1].SourceID)
	suite.Equal(domain.TimelineDebit, events[1].Kind)
	suite.Equal("200", events[1].Withdrawn.String())
	suite.Equal("50", events[1].Commission.String())
	suite.Equal("750", events[1].RunningBalance.String())

	suite.Equal(t1.TransactionID, events[2].SourceID)
	suite.Equal("Alpha", events[2].ClientName)
	suite.Equal("1000", events[2].RunningBalance.String())

	suite.mockCardRepo.AssertExpectations(suite.T())
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *TimelineServiceTestSuite) TestBuildTimeline_SeedsCarriedBalanceAtRangeStart() {
	ctx := context.Background()
	cardID := "card-1"

	t1 := txnAt(cardID, locTime(2026, 1, 5, 12, 0), "1000")
	t2 := txnAt(cardID, locTime(2026, 1, 6, 11, 0), "500")
	w := wdRow("w1", cardID, dbDate(2026, 1, 5), false, decPtr("200"), "50")
	suite.expectHistory(ctx, cardID, []domain.Transaction{t1, t2}, []domain.Withdrawal{w}, nil)

	start := dbDate(2026, 1, 6)
	events, err := suite.service.BuildTimeline(ctx, cardID, &start, nil, domain.TimelineFilter{})

	suite.Require().NoError(err)
	// Only the credit on the 6th is inside the range, and its running balance
	// starts from the 750 carried out of the 5th.
	suite.Require().Len(events, 1)
	suite.Equal(t2.TransactionID, events[0].SourceID)
	suite.Equal("1250", events[0].RunningBalance.String())
}

func (suite *TimelineServiceTestSuite) TestBuildTimeline_DebitWithoutTimestampSortsAtEndOfDay() {
	ctx := context.Background()
	cardID := "card-1"

	t1 := txnAt(cardID, locTime(2026, 1, 5, 23, 0), "100")
	w := wdRow("w1", cardID, dbDate(2026, 1, 5), false, decPtr("40"), "0")
	suite.expectHistory(ctx, cardID, []domain.Transaction{t1}, []domain.Withdrawal{w}, nil)

	events, err := suite.service.BuildTimeline(ctx, cardID, nil, nil, domain.TimelineFilter{})

	suite.Require().NoError(err)
	suite.Require().Len(events, 2)
	// The unstamped withdrawal lands at 23:59:59 local, after the late credit.
	suite.Equal("w1", events[0].SourceID)
	suite.True(events[0].Time.Equal(time.Date(2026, 1, 5, 23, 59, 59, 0, testLoc)))
	suite.Equal("60", events[0].RunningBalance.String())
}

func (suite *TimelineServiceTestSuite) TestBuildTimeline_SkipsDebitsWithNoEffect() {
	ctx := context.Background()
	cardID := "card-1"

	t1 := txnAt(cardID, locTime(2026, 1, 5, 10, 0), "100")
	empty := wdRow("w-empty", cardID, dbDate(2026, 1, 5), false, nil, "0")
	feeOnly := wdRow("w-fee", cardID, dbDate(2026, 1, 6), false, nil, "5")
	suite.expectHistory(ctx, cardID, []domain.Transaction{t1}, []domain.Withdrawal{empty, feeOnly}, nil)

	events, err := suite.service.BuildTimeline(ctx, cardID, nil, nil, domain.TimelineFilter{})

	suite.Require().NoError(err)
	suite.Require().Len(events, 2)
	for _, e := range events {
		suite.NotEqual("w-empty", e.SourceID)
	}
	suite.Equal("w-fee", events[0].SourceID)
	suite.Equal("95", events[0].RunningBalance.String())
}

func (suite *TimelineServiceTestSuite) TestBuildTimeline_FullWithdrawalDrainsComputedAmount() {
	ctx := context.Background()
	cardID := "card-1"

	t1 := txnAt(cardID, locTime(2026, 1, 5, 10, 0), "1000")
	w := wdRow("w1", cardID, dbDate(2026, 1, 5), true, nil, "0")
	suite.expectHistory(ctx, cardID, []domain.Transaction{t1}, []domain.Withdrawal{w}, nil)

	events, err := suite.service.BuildTimeline(ctx, cardID, nil, nil, domain.TimelineFilter{})

	suite.Require().NoError(err)
	suite.Require().Len(events, 2)
	suite.Equal("w1", events[0].SourceID)
	suite.True(events[0].FullyWithdrawn)
	suite.Equal("1000", events[0].Withdrawn.String())
	suite.Equal("0", events[0].RunningBalance.String())
}

func (suite *TimelineServiceTestSuite) TestBuildTimeline_FilterProjectsWithoutChangingBalances() {
	ctx := context.Background()
	cardID := "card-1"

	t1 := txnAt(cardID, locTime(2026, 1, 5, 10, 0), "1000")
	wTime := locTime(2026, 1, 5, 18, 0)
	w := wdRow("w1", cardID, dbDate(2026, 1, 5), false, decPtr("200"), "50")
	w.Timestamp = &wTime
	suite.expectHistory(ctx, cardID, []domain.Transaction{t1}, []domain.Withdrawal{w}, nil)

	events, err := suite.service.BuildTimeline(ctx, cardID, nil, nil, domain.TimelineFilter{Kind: domain.TimelineDebit})

	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal("w1", events[0].SourceID)
	// The running balance still reflects the hidden credit before it.
	suite.Equal("750", events[0].RunningBalance.String())
}

func (suite *TimelineServiceTestSuite) TestBuildTimeline_TextFilterMatchesClientName() {
	ctx := context.Background()
	cardID := "card-1"

	t1 := txnAt(cardID, locTime(2026, 1, 5, 10, 0), "1000")
	t1.ClientID = "c1"
	t2 := txnAt(cardID, locTime(2026, 1, 6, 9, 0), "500")
	t2.ClientID = "c2"
	clients := []domain.Client{
		{ClientID: "c1", Name: "Alpha"},
		{ClientID: "c2", Name: "Beta"},
	}
	suite.expectHistory(ctx, cardID, []domain.Transaction{t1, t2}, nil, clients)

	events, err := suite.service.BuildTimeline(ctx, cardID, nil, nil, domain.TimelineFilter{Text: "beta"})

	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal(t2.TransactionID, events[0].SourceID)
	suite.Equal("1500", events[0].RunningBalance.String())
}

func (suite *TimelineServiceTestSuite) TestBuildTimeline_CardNotFound() {
	ctx := context.Background()
	cardID := "missing"

	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.BuildTimeline(ctx, cardID, nil, nil, domain.TimelineFilter{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListForCards", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestTimelineService(t *testing.T) {
	suite.Run(t, new(TimelineServiceTestSuite))
}
