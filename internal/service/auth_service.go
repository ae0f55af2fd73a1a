package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/talhaustundag/ecommerce-api/internal/auth"
	"github.com/talhaustundag/ecommerce-api/internal/domain"
	"github.com/talhaustundag/ecommerce-api/internal/repository"
)

type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a user with a bcrypt-hashed password and issues a token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return user, token, nil
}

// Login verifies credentials and issues a token. A missing user and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == domain.ErrUserNotFound {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return user, token, nil
}

// Profile returns the user behind an authenticated id.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile renames the user and returns the fresh record.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, name string) (*domain.User, error) {
	if err := s.userRepo.UpdateName(ctx, userID, name); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}
