package services_test

import (
	"context"
	"testing"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/core/services"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type CardGroupServiceTestSuite struct {
	suite.Suite
	mockGroupRepo *MockCardGroupRepository
	mockCardRepo  *MockCardRepository
	service       portssvc.CardGroupSvcFacade
}

func (suite *CardGroupServiceTestSuite) SetupTest() {
	suite.mockGroupRepo = new(MockCardGroupRepository)
	suite.mockCardRepo = new(MockCardRepository)
	suite.service = services.NewCardGroupServiceImpl(suite.mockGroupRepo, suite.mockCardRepo)
}

// --- Test Cases ---

func (suite *CardGroupServiceTestSuite) TestGetOrCreateGroup_ReturnsExisting() {
	ctx := context.Background()

	existing := domain.CardGroup{GroupID: "g1", Name: "VIP"}
	suite.mockGroupRepo.On("FindGroupByName", ctx, "VIP").Return(&existing, nil).Once()

	group, err := suite.service.GetOrCreateGroup(ctx, " VIP ", "user-1")

	suite.Require().NoError(err)
	suite.Equal("g1", group.GroupID)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "SaveGroup", mock.Anything, mock.Anything)
}

func (suite *CardGroupServiceTestSuite) TestGetOrCreateGroup_CreatesWhenMissing() {
	ctx := context.Background()

	suite.mockGroupRepo.On("FindGroupByName", ctx, "VIP").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockGroupRepo.On("SaveGroup", ctx, mock.MatchedBy(func(g domain.CardGroup) bool {
		return g.GroupID != "" && g.Name == "VIP" && g.CreatedBy == "user-1"
	})).Return(nil).Once()

	group, err := suite.service.GetOrCreateGroup(ctx, "VIP", "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(group)
	suite.Equal("VIP", group.Name)
	suite.NotEmpty(group.GroupID)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *CardGroupServiceTestSuite) TestGetOrCreateGroup_LostRaceRefetches() {
	ctx := context.Background()

	winner := domain.CardGroup{GroupID: "g-winner", Name: "VIP"}
	suite.mockGroupRepo.On("FindGroupByName", ctx, "VIP").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockGroupRepo.On("SaveGroup", ctx, mock.AnythingOfType("domain.CardGroup")).Return(apperrors.ErrDuplicate).Once()
	// Someone else created the same name between the lookup and the insert.
	suite.mockGroupRepo.On("FindGroupByName", ctx, "VIP").Return(&winner, nil).Once()

	group, err := suite.service.GetOrCreateGroup(ctx, "VIP", "user-1")

	suite.Require().NoError(err)
	suite.Equal("g-winner", group.GroupID)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *CardGroupServiceTestSuite) TestGetOrCreateGroup_EmptyName() {
	ctx := context.Background()

	_, err := suite.service.GetOrCreateGroup(ctx, "   ", "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "FindGroupByName", mock.Anything, mock.Anything)
}

func (suite *CardGroupServiceTestSuite) TestRenameGroup_Success() {
	ctx := context.Background()

	existing := domain.CardGroup{GroupID: "g1", Name: "Old"}
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(&existing, nil).Once()
	suite.mockGroupRepo.On("UpdateGroup", ctx, mock.MatchedBy(func(g domain.CardGroup) bool {
		return g.GroupID == "g1" && g.Name == "New" && g.LastUpdatedBy == "user-1"
	})).Return(nil).Once()

	group, err := suite.service.RenameGroup(ctx, "g1", dto.RenameCardGroupRequest{Name: " New "}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("New", group.Name)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *CardGroupServiceTestSuite) TestDeleteGroup_BlockedByCards() {
	ctx := context.Background()

	existing := domain.CardGroup{GroupID: "g1", Name: "VIP"}
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(&existing, nil).Once()
	suite.mockCardRepo.On("CountCardsInGroup", ctx, "g1").Return(int64(2), nil).Once()

	err := suite.service.DeleteGroup(ctx, "g1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "DeleteGroup", mock.Anything, mock.Anything)
}

func (suite *CardGroupServiceTestSuite) TestDeleteGroup_Success() {
	ctx := context.Background()

	existing := domain.CardGroup{GroupID: "g1", Name: "VIP"}
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(&existing, nil).Once()
	suite.mockCardRepo.On("CountCardsInGroup", ctx, "g1").Return(int64(0), nil).Once()
	suite.mockGroupRepo.On("DeleteGroup", ctx, "g1").Return(nil).Once()

	err := suite.service.DeleteGroup(ctx, "g1")

	suite.Require().NoError(err)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *CardGroupServiceTestSuite) TestListGroups_NilBecomesEmptySlice() {
	ctx := context.Background()

	suite.mockGroupRepo.On("ListGroups", ctx).Return(nil, nil).Once()

	groups, err := suite.service.ListGroups(ctx)

	suite.Require().NoError(err)
	suite.NotNil(groups)
	suite.Empty(groups)
}

// --- Run Test Suite ---

func TestCardGroupService(t *testing.T) {
	suite.Run(t, new(CardGroupServiceTestSuite))
}
