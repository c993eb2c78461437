package service

import (
	"context"
	"log/slog"

	"github.com/splitr/backend/internal/apperror"
	"github.com/splitr/backend/internal/auth"
	"github.com/splitr/backend/internal/models"
	"github.com/splitr/backend/internal/storage"
)

// AuthService registers and authenticates users, issuing session tokens.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		logger:        logger,
	}
}

// Register creates a new user account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, string, error) {
	s.logger.Info("Register request", "email", email)

	if email == "" {
		return nil, "", apperror.InvalidArgument("email is required")
	}
	if name == "" {
		return nil, "", apperror.InvalidArgument("name is required")
	}

	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		s.logger.Error("Registration failed", "email", email, "error", err)
		switch err {
		case auth.ErrEmailExists:
			return nil, "", apperror.Conflict("email already registered")
		case auth.ErrWeakPassword:
			return nil, "", apperror.InvalidArgument(err.Error())
		}
		return nil, "", apperror.Unavailable("register user", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", apperror.Unavailable("generate token", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns them with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	s.logger.Info("Login request", "email", email)

	if email == "" || password == "" {
		return nil, "", apperror.InvalidArgument("email and password are required")
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", "email", email, "error", err)
		return nil, "", apperror.Unauthenticated()
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", apperror.Unavailable("generate token", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// CurrentUser resolves a user ID (taken from validated token claims) to the
// full user record.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated()
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err == storage.ErrNotFound {
		// Token refers to a deleted account.
		return nil, apperror.Unauthenticated()
	}
	if err != nil {
		s.logger.Error("CurrentUser lookup failed", "user_id", userID, "error", err)
		return nil, apperror.Unavailable("get current user", err)
	}

	return user, nil
}
