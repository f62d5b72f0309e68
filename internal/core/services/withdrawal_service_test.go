package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/core/services"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type WithdrawalServiceTestSuite struct {
	suite.Suite
	mockCardRepo *MockCardRepository
	mockWdRepo   *MockWithdrawalRepository
	service      portssvc.WithdrawalSvcFacade
	updaterID    string
}

func (suite *WithdrawalServiceTestSuite) SetupTest() {
	suite.mockCardRepo = new(MockCardRepository)
	suite.mockWdRepo = new(MockWithdrawalRepository)
	suite.service = services.NewWithdrawalServiceImpl(suite.mockCardRepo, suite.mockWdRepo, testLoc)
	suite.updaterID = "user-1"
}

// --- Test Cases ---

func (suite *WithdrawalServiceTestSuite) TestUpsertForDay_CreatesNewRow() {
	ctx := context.Background()
	cardID := "card-1"
	day := locTime(2026, 1, 5, 0, 0)
	tx := stubTx{}

	req := dto.SaveSheetEntryRequest{
		CardID:        cardID,
		Date:          "05/01/2026",
		WithdrawnRUB:  "1 234,56",
		CommissionRUB: "",
		Note:          "evening run",
	}

	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&domain.Card{CardID: cardID}, nil).Once()
	suite.mockWdRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockWdRepo.On("FindForDayInTx", ctx, tx, cardID, day).Return([]domain.Withdrawal{}, nil).Once()
	// Expect a fresh row with the parsed amount, a recency timestamp and the
	// audit fields stamped.
	suite.mockWdRepo.On("SaveWithdrawalInTx", ctx, tx, mock.MatchedBy(func(w domain.Withdrawal) bool {
		return w.WithdrawalID != "" &&
			w.CardID == cardID &&
			w.Date.Equal(day) &&
			!w.FullyWithdrawn &&
			w.WithdrawnRUB != nil && w.WithdrawnRUB.Equal(dec("1234.56")) &&
			w.CommissionRUB.IsZero() &&
			w.Note == "evening run" &&
			w.Timestamp != nil &&
			w.CreatedBy == "user-1"
	})).Return(nil).Once()
	suite.mockWdRepo.On("Commit", ctx, tx).Return(nil).Once()
	suite.mockWdRepo.On("Rollback", ctx, tx).Return(nil).Once()

	saved, err := suite.service.UpsertForDay(ctx, req, suite.updaterID)

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	suite.NotEmpty(saved.WithdrawalID)
	suite.True(saved.Date.Equal(day))
	suite.Equal("0", saved.CommissionRUB.String())

	suite.mockCardRepo.AssertExpectations(suite.T())
	suite.mockWdRepo.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestUpsertForDay_FullIgnoresTypedAmount() {
	ctx := context.Background()
	cardID := "card-1"
	day := locTime(2026, 1, 5, 0, 0)
	tx := stubTx{}

	// The operator ticked "fully withdrawn" with text still in the amount box.
	req := dto.SaveSheetEntryRequest{
		CardID:         cardID,
		Date:           "05/01/2026",
		FullyWithdrawn: true,
		WithdrawnRUB:   "250",
	}

	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&domain.Card{CardID: cardID}, nil).Once()
	suite.mockWdRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockWdRepo.On("FindForDayInTx", ctx, tx, cardID, day).Return([]domain.Withdrawal{}, nil).Once()
	suite.mockWdRepo.On("SaveWithdrawalInTx", ctx, tx, mock.MatchedBy(func(w domain.Withdrawal) bool {
		return w.FullyWithdrawn && w.WithdrawnRUB == nil
	})).Return(nil).Once()
	suite.mockWdRepo.On("Commit", ctx, tx).Return(nil).Once()
	suite.mockWdRepo.On("Rollback", ctx, tx).Return(nil).Once()

	saved, err := suite.service.UpsertForDay(ctx, req, suite.updaterID)

	suite.Require().NoError(err)
	suite.True(saved.FullyWithdrawn)
	suite.Nil(saved.WithdrawnRUB)
	suite.mockWdRepo.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestUpsertForDay_UpdatesExistingAndDeletesDuplicates() {
	ctx := context.Background()
	cardID := "card-1"
	day := locTime(2026, 1, 5, 0, 0)
	tx := stubTx{}

	existing := []domain.Withdrawal{
		wdRow("w-current", cardID, dbDate(2026, 1, 5), false, decPtr("100"), "0"),
		wdRow("w-dup-1", cardID, dbDate(2026, 1, 5), false, decPtr("90"), "0"),
		wdRow("w-dup-2", cardID, dbDate(2026, 1, 5), false, decPtr("80"), "0"),
	}

	req := dto.SaveSheetEntryRequest{
		CardID:       cardID,
		Date:         "05/01/2026",
		WithdrawnRUB: "300",
	}

	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&domain.Card{CardID: cardID}, nil).Once()
	suite.mockWdRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockWdRepo.On("FindForDayInTx", ctx, tx, cardID, day).Return(existing, nil).Once()
	suite.mockWdRepo.On("UpdateWithdrawalInTx", ctx, tx, mock.MatchedBy(func(w domain.Withdrawal) bool {
		return w.WithdrawalID == "w-current" &&
			w.WithdrawnRUB != nil && w.WithdrawnRUB.Equal(dec("300")) &&
			w.LastUpdatedBy == "user-1"
	})).Return(nil).Once()
	suite.mockWdRepo.On("DeleteWithdrawalsInTx", ctx, tx, []string{"w-dup-1", "w-dup-2"}).Return(nil).Once()
	suite.mockWdRepo.On("Commit", ctx, tx).Return(nil).Once()
	suite.mockWdRepo.On("Rollback", ctx, tx).Return(nil).Once()

	saved, err := suite.service.UpsertForDay(ctx, req, suite.updaterID)

	suite.Require().NoError(err)
	suite.Equal("w-current", saved.WithdrawalID)
	suite.mockWdRepo.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestUpsertForDay_InvalidDate() {
	ctx := context.Background()

	req := dto.SaveSheetEntryRequest{CardID: "card-1", Date: "not a date"}

	_, err := suite.service.UpsertForDay(ctx, req, suite.updaterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCardRepo.AssertNotCalled(suite.T(), "FindCardByID", mock.Anything, mock.Anything)
	suite.mockWdRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestUpsertForDay_InvalidAmountNeverOpensTx() {
	ctx := context.Background()
	cardID := "card-1"

	req := dto.SaveSheetEntryRequest{
		CardID:       cardID,
		Date:         "05/01/2026",
		WithdrawnRUB: "abc",
	}

	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&domain.Card{CardID: cardID}, nil).Once()

	_, err := suite.service.UpsertForDay(ctx, req, suite.updaterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWdRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestUpsertForDay_CardNotFound() {
	ctx := context.Background()
	cardID := "missing"

	req := dto.SaveSheetEntryRequest{CardID: cardID, Date: "05/01/2026"}

	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpsertForDay(ctx, req, suite.updaterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockWdRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestUpsertForDay_SaveErrorNeverCommits() {
	ctx := context.Background()
	cardID := "card-1"
	day := locTime(2026, 1, 5, 0, 0)
	tx := stubTx{}

	req := dto.SaveSheetEntryRequest{CardID: cardID, Date: "05/01/2026", WithdrawnRUB: "100"}

	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&domain.Card{CardID: cardID}, nil).Once()
	suite.mockWdRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockWdRepo.On("FindForDayInTx", ctx, tx, cardID, day).Return([]domain.Withdrawal{}, nil).Once()
	suite.mockWdRepo.On("SaveWithdrawalInTx", ctx, tx, mock.AnythingOfType("domain.Withdrawal")).Return(assert.AnError).Once()
	suite.mockWdRepo.On("Rollback", ctx, tx).Return(nil).Once()

	_, err := suite.service.UpsertForDay(ctx, req, suite.updaterID)

	suite.Require().Error(err)
	suite.mockWdRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockWdRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestWithdrawalService(t *testing.T) {
	suite.Run(t, new(WithdrawalServiceTestSuite))
}
