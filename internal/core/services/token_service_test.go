package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/core/services"
	"github.com/cardflow-app/cardflow_backend/internal/platform/config"
	"github.com/cardflow-app/cardflow_backend/internal/utils"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type TokenServiceTestSuite struct {
	suite.Suite
	cfg             *config.Config
	mockUserService *MockUserService
	service         portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret",
		JWTIssuer:                  "cardflow-test",
		JWTExpiryDuration:          15 * time.Minute,
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.mockUserService = new(MockUserService)
	suite.service = services.NewTokenService(suite.cfg, suite.mockUserService)
}

// --- Test Cases ---

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_RoundTrips() {
	ctx := context.Background()
	user := &domain.User{UserID: "u1", Username: "operator"}

	token, expiry, err := suite.service.GenerateAccessToken(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.WithinDuration(time.Now().Add(suite.cfg.JWTExpiryDuration), expiry, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal("u1", claims.Subject)
	suite.Equal("cardflow-test", claims.Issuer)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_RejectsWrongSecret() {
	ctx := context.Background()
	user := &domain.User{UserID: "u1"}

	token, _, err := suite.service.GenerateAccessToken(ctx, user)
	suite.Require().NoError(err)

	_, err = utils.ParseAndValidateJWT(token, "some-other-secret")
	suite.Require().Error(err)
}

func (suite *TokenServiceTestSuite) TestGenerateRefreshToken_IsOpaqueAndUnique() {
	ctx := context.Background()
	user := &domain.User{UserID: "u1"}

	first, expiry, err := suite.service.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)
	second, _, err := suite.service.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)

	suite.NotEmpty(first)
	suite.NotEqual(first, second)
	suite.WithinDuration(time.Now().Add(suite.cfg.RefreshTokenExpiryDuration), expiry, 5*time.Second)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Success() {
	ctx := context.Background()
	raw := "raw-refresh-token"
	future := time.Now().Add(time.Hour)

	stored := &domain.User{
		UserID:                 "u1",
		RefreshTokenHash:       utils.HashRefreshToken(raw),
		RefreshTokenExpiryTime: &future,
	}
	suite.mockUserService.On("GetUserByID", ctx, "u1").Return(stored, nil).Once()

	user, err := suite.service.ValidateAndParseRefreshToken(ctx, "u1", raw)

	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Expired() {
	ctx := context.Background()
	raw := "raw-refresh-token"
	past := time.Now().Add(-time.Hour)

	stored := &domain.User{
		UserID:                 "u1",
		RefreshTokenHash:       utils.HashRefreshToken(raw),
		RefreshTokenExpiryTime: &past,
	}
	suite.mockUserService.On("GetUserByID", ctx, "u1").Return(stored, nil).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, "u1", raw)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_HashMismatch() {
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	stored := &domain.User{
		UserID:                 "u1",
		RefreshTokenHash:       utils.HashRefreshToken("a different token"),
		RefreshTokenExpiryTime: &future,
	}
	suite.mockUserService.On("GetUserByID", ctx, "u1").Return(stored, nil).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, "u1", "raw-refresh-token")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_NothingStored() {
	ctx := context.Background()

	stored := &domain.User{UserID: "u1"}
	suite.mockUserService.On("GetUserByID", ctx, "u1").Return(stored, nil).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, "u1", "raw-refresh-token")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_UnknownUser() {
	ctx := context.Background()

	suite.mockUserService.On("GetUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, "ghost", "raw-refresh-token")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Run Test Suite ---

func TestTokenService(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
