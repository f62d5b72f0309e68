package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
	"github.com/cardflow-app/cardflow_backend/internal/utils"
	"github.com/google/uuid"
)

// userServiceImpl implements the UserSvcFacade interface
type userServiceImpl struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserServiceImpl creates a new user service
func NewUserServiceImpl(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userServiceImpl{userRepo: userRepo}
}

// Ensure userServiceImpl implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userServiceImpl)(nil)

func (s *userServiceImpl) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by username",
				slog.String("username", username))
		}
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", apperrors.ErrValidation)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()
	user := domain.User{
		UserID:       newUserID,
		Username:     username,
		PasswordHash: passwordHash,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user",
				slog.String("username", username))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User created",
		slog.String("user_id", user.UserID),
		slog.String("username", user.Username))
	return &user, nil
}

func (s *userServiceImpl) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime); err != nil {
		s.LogError(ctx, err, "Failed to update refresh token",
			slog.String("user_id", userID))
		return err
	}
	return nil
}

func (s *userServiceImpl) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token",
			slog.String("user_id", userID))
		return err
	}
	return nil
}

// AuthenticateUser verifies the credentials. Unknown usernames and wrong
// passwords fail identically so the response never reveals which it was.
func (s *userServiceImpl) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to find user for authentication",
			slog.String("username", username))
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// ProvisionAdmin creates the operator account if it does not exist yet and
// returns the existing one when it does.
func (s *userServiceImpl) ProvisionAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" || password == "" {
		return nil, fmt.Errorf("admin username and password are required: %w", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.FindUserByUsername(ctx, trimmed)
	if err == nil {
		s.LogInfo(ctx, "Admin account already provisioned",
			slog.String("user_id", existing.UserID),
			slog.String("username", existing.Username))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing admin account",
			slog.String("username", trimmed))
		return nil, fmt.Errorf("failed to check for existing admin account: %w", err)
	}

	user, err := s.CreateUser(ctx, dto.CreateUserRequest{
		Username: trimmed,
		Password: password,
		Name:     trimmed,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a provisioning race; the account exists now.
			return s.userRepo.FindUserByUsername(ctx, trimmed)
		}
		return nil, err
	}

	s.LogInfo(ctx, "Admin account provisioned",
		slog.String("user_id", user.UserID),
		slog.String("username", user.Username))
	return user, nil
}
