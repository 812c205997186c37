package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/security/auth"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is the login response payload. The token and user id sit
// at the top level of the response, next to the envelope fields.
type LoginResult struct {
	AuthToken string `json:"auth_token"`
	UserID    int64  `json:"user_id"`
}

// UserData is the user projection returned by status and user reads.
type UserData struct {
	ID            int64              `json:"id"`
	Username      string             `json:"username"`
	Email         string             `json:"email"`
	Active        bool               `json:"active"`
	CreatedAt     time.Time          `json:"created_at"`
	Organizations []OrganizationData `json:"organizations,omitempty"`
}

// AuthService handles authentication.
type AuthService struct {
	users  domain.UserRepository
	tx     domain.TxRunner
	tokens *auth.TokenManager
	store  auth.TokenStore
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users domain.UserRepository,
	tx domain.TxRunner,
	tokens *auth.TokenManager,
	store auth.TokenStore,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{users: users, tx: tx, tokens: tokens, store: store, logger: logger}
}

// Authenticate looks the user up by username or email
// (case-insensitive, one query), verifies the password against the
// stored hash and issues a signed token bound to the user id.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*LoginResult, error) {
	var result *LoginResult

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByUsernameOrEmail(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrNoRows) {
				return domain.NotFound("User does not exist.")
			}
			return domain.Database("An error occurred during login.", err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			s.logger.Info("login failed with wrong password", slog.Int64("user_id", user.ID))
			return domain.Unauthorized("Invalid credentials.")
		}

		token, err := s.tokens.Generate(user.ID)
		if err != nil {
			s.logger.Error("failed to sign token",
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()),
			)
			return domain.Internal("Failed to generate authentication token.")
		}

		result = &LoginResult{AuthToken: token, UserID: user.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", slog.Int64("user_id", result.UserID))
	return result, nil
}

// GetStatus fetches the authenticated user's record.
func (s *AuthService) GetStatus(ctx context.Context, userID int64) (*UserData, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRows) {
			return nil, domain.NotFound("User not found.")
		}
		return nil, domain.Database("An error occurred while fetching the user.", err)
	}

	data := userData(user)
	return &data, nil
}

// Logout revokes the presented token for the remainder of its validity.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ttl := s.tokens.RemainingValidity(token)
	if err := s.store.Revoke(ctx, token, ttl); err != nil {
		s.logger.Error("failed to revoke token", slog.String("error", err.Error()))
		return domain.Internal("An error occurred during logout.")
	}
	return nil
}

func userData(u *domain.User) UserData {
	return UserData{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Active:    !u.IsBlocked,
		CreatedAt: u.RegisteredOn,
	}
}
