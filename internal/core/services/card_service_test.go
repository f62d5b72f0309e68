package services_test

import (
	"context"
	"testing"

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

type CardServiceTestSuite struct {
	suite.Suite
	mockCardRepo      *MockCardRepository
	mockBankColorRepo *MockBankColorRepository
	mockTxnRepo       *MockTransactionRepository
	mockWdRepo        *MockWithdrawalRepository
	mockGroupService  *MockCardGroupService
	service           portssvc.CardSvcFacade
}

func (suite *CardServiceTestSuite) SetupTest() {
	suite.mockCardRepo = new(MockCardRepository)
	suite.mockBankColorRepo = new(MockBankColorRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockWdRepo = new(MockWithdrawalRepository)
	suite.mockGroupService = new(MockCardGroupService)
	suite.service = services.NewCardServiceImpl(suite.mockCardRepo, suite.mockBankColorRepo, suite.mockTxnRepo, suite.mockWdRepo, suite.mockGroupService)
}

// --- Create ---

func (suite *CardServiceTestSuite) TestCreateCard_Success() {
	ctx := context.Background()
	req := dto.CreateCardRequest{
		Name:       " Lena ",
		Bank:       " Sber ",
		CardNumber: " 1111222233334444 ",
		PIN:        "1234",
	}

	suite.mockCardRepo.On("FindCardByIdentity", ctx, "Lena", "Sber", "1111222233334444").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCardRepo.On("SaveCard", ctx, mock.MatchedBy(func(c domain.Card) bool {
		return c.CardID != "" &&
			c.Name == "Lena" &&
			c.Bank == "Sber" &&
			c.CardNumber == "1111222233334444" &&
			c.Status == domain.CardActive &&
			c.GroupID == nil &&
			c.CreatedBy == "user-1"
	})).Return(nil).Once()

	card, err := suite.service.CreateCard(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(card)
	suite.Equal("Lena", card.Name)
	suite.Equal(domain.CardActive, card.Status)

	suite.mockGroupService.AssertNotCalled(suite.T(), "GetOrCreateGroup", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCardRepo.AssertExpectations(suite.T())
}

func (suite *CardServiceTestSuite) TestCreateCard_ResolvesGroupByName() {
	ctx := context.Background()
	req := dto.CreateCardRequest{Name: "Lena", GroupName: "VIP"}

	suite.mockCardRepo.On("FindCardByIdentity", ctx, "Lena", "", "").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockGroupService.On("GetOrCreateGroup", ctx, "VIP", "user-1").Return(&domain.CardGroup{GroupID: "g1", Name: "VIP"}, nil).Once()
	suite.mockCardRepo.On("SaveCard", ctx, mock.MatchedBy(func(c domain.Card) bool {
		return c.GroupID != nil && *c.GroupID == "g1"
	})).Return(nil).Once()

	card, err := suite.service.CreateCard(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(card.GroupID)
	suite.Equal("g1", *card.GroupID)
	suite.mockGroupService.AssertExpectations(suite.T())
}

func (suite *CardServiceTestSuite) TestCreateCard_ExplicitStatus() {
	ctx := context.Background()
	req := dto.CreateCardRequest{Name: "Lena", Status: "HOLD"}

	suite.mockCardRepo.On("FindCardByIdentity", ctx, "Lena", "", "").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCardRepo.On("SaveCard", ctx, mock.MatchedBy(func(c domain.Card) bool {
		return c.Status == domain.CardHold
	})).Return(nil).Once()

	card, err := suite.service.CreateCard(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.CardHold, card.Status)
}

func (suite *CardServiceTestSuite) TestCreateCard_DuplicateIdentity() {
	ctx := context.Background()
	req := dto.CreateCardRequest{Name: "Lena", Bank: "Sber", CardNumber: "4444"}

	existing := domain.Card{CardID: "card-existing", Name: "Lena", Bank: "Sber", CardNumber: "4444"}
	suite.mockCardRepo.On("FindCardByIdentity", ctx, "Lena", "Sber", "4444").Return(&existing, nil).Once()

	_, err := suite.service.CreateCard(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCardRepo.AssertNotCalled(suite.T(), "SaveCard", mock.Anything, mock.Anything)
}

// --- Update ---

func (suite *CardServiceTestSuite) TestUpdateCard_EmptyGroupNameClearsGroup() {
	ctx := context.Background()
	cardID := "card-1"

	groupID := "g1"
	existing := domain.Card{CardID: cardID, Name: "Lena", Status: domain.CardActive, GroupID: &groupID}
	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&existing, nil).Once()

	emptyName := ""
	req := dto.UpdateCardRequest{GroupName: &emptyName}

	suite.mockCardRepo.On("UpdateCard", ctx, mock.MatchedBy(func(c domain.Card) bool {
		return c.GroupID == nil
	})).Return(nil).Once()

	card, err := suite.service.UpdateCard(ctx, cardID, req, "user-1")

	suite.Require().NoError(err)
	suite.Nil(card.GroupID)
	suite.mockGroupService.AssertNotCalled(suite.T(), "GetOrCreateGroup", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCardRepo.AssertExpectations(suite.T())
}

func (suite *CardServiceTestSuite) TestUpdateCard_NoFieldsSkipsSave() {
	ctx := context.Background()
	cardID := "card-1"

	existing := domain.Card{CardID: cardID, Name: "Lena", Status: domain.CardActive}
	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&existing, nil).Once()

	card, err := suite.service.UpdateCard(ctx, cardID, dto.UpdateCardRequest{}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(cardID, card.CardID)
	suite.mockCardRepo.AssertNotCalled(suite.T(), "UpdateCard", mock.Anything, mock.Anything)
}

func (suite *CardServiceTestSuite) TestUpdateCard_NotFound() {
	ctx := context.Background()

	suite.mockCardRepo.On("FindCardByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateCard(ctx, "missing", dto.UpdateCardRequest{}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Delete ---

func (suite *CardServiceTestSuite) TestDeleteCard_BlockedByTransactions() {
	ctx := context.Background()
	cardID := "card-1"

	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&domain.Card{CardID: cardID}, nil).Once()
	suite.mockTxnRepo.On("CountByCard", ctx, cardID).Return(int64(3), nil).Once()

	err := suite.service.DeleteCard(ctx, cardID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCardRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockWdRepo.AssertNotCalled(suite.T(), "DeleteByCardInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CardServiceTestSuite) TestDeleteCard_Success() {
	ctx := context.Background()
	cardID := "card-1"
	tx := stubTx{}

	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&domain.Card{CardID: cardID}, nil).Once()
	suite.mockTxnRepo.On("CountByCard", ctx, cardID).Return(int64(0), nil).Once()
	suite.mockCardRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockWdRepo.On("DeleteByCardInTx", ctx, tx, cardID).Return(nil).Once()
	suite.mockCardRepo.On("DeleteCardInTx", ctx, tx, cardID).Return(nil).Once()
	suite.mockCardRepo.On("Commit", ctx, tx).Return(nil).Once()
	suite.mockCardRepo.On("Rollback", ctx, tx).Return(nil).Once()

	err := suite.service.DeleteCard(ctx, cardID)

	suite.Require().NoError(err)
	suite.mockCardRepo.AssertExpectations(suite.T())
	suite.mockWdRepo.AssertExpectations(suite.T())
}

func (suite *CardServiceTestSuite) TestDeleteCard_WithdrawalDeleteFailureNeverCommits() {
	ctx := context.Background()
	cardID := "card-1"
	tx := stubTx{}

	suite.mockCardRepo.On("FindCardByID", ctx, cardID).Return(&domain.Card{CardID: cardID}, nil).Once()
	suite.mockTxnRepo.On("CountByCard", ctx, cardID).Return(int64(0), nil).Once()
	suite.mockCardRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockWdRepo.On("DeleteByCardInTx", ctx, tx, cardID).Return(assert.AnError).Once()
	suite.mockCardRepo.On("Rollback", ctx, tx).Return(nil).Once()

	err := suite.service.DeleteCard(ctx, cardID)

	suite.Require().Error(err)
	suite.mockCardRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockCardRepo.AssertNotCalled(suite.T(), "DeleteCardInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCardRepo.AssertExpectations(suite.T())
}

// --- Bank colors and listings ---

func (suite *CardServiceTestSuite) TestSetBankColor_NormalizesInput() {
	ctx := context.Background()
	req := dto.SetBankColorRequest{Bank: " Sber ", Color: " #FF00AA "}

	suite.mockBankColorRepo.On("UpsertBankColor", ctx, mock.MatchedBy(func(bc domain.BankColor) bool {
		return bc.Bank == "Sber" && bc.Color == "#ff00aa"
	})).Return(nil).Once()

	color, err := suite.service.SetBankColor(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("Sber", color.Bank)
	suite.Equal("#ff00aa", color.Color)
	suite.mockBankColorRepo.AssertExpectations(suite.T())
}

func (suite *CardServiceTestSuite) TestListCards_NilBecomesEmptySlice() {
	ctx := context.Background()

	suite.mockCardRepo.On("ListCards", ctx, (*domain.CardStatus)(nil), (*string)(nil)).Return(nil, nil).Once()

	cards, err := suite.service.ListCards(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.NotNil(cards)
	suite.Empty(cards)
}

func (suite *CardServiceTestSuite) TestListBanks_PassesThrough() {
	ctx := context.Background()

	suite.mockCardRepo.On("ListBanks", ctx).Return([]string{"Sber", "VTB"}, nil).Once()

	banks, err := suite.service.ListBanks(ctx)

	suite.Require().NoError(err)
	suite.Equal([]string{"Sber", "VTB"}, banks)
}

// --- Run Test Suite ---

func TestCardService(t *testing.T) {
	suite.Run(t, new(CardServiceTestSuite))
}
