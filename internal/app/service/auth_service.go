package service

import (
	"context"
	"errors"
	"fmt"
	"leetcode_tracker/internal/common"
	"leetcode_tracker/internal/common/security"
	"leetcode_tracker/internal/domain/model"
	"leetcode_tracker/internal/domain/repository"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
	issuer   *security.TokenIssuer
	logger   *slog.Logger
}

func NewAuthService(userRepo repository.UserRepository, issuer *security.TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, issuer: issuer, logger: logger}
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ValidateTokenRequest struct {
	Token string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type TokenStatus struct {
	Valid     bool      `json:"valid"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

const minPasswordLength = 6

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*model.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", common.ErrBadRequest)
	}
	if !validEmail(req.Email) {
		return nil, fmt.Errorf("invalid email address: %w", common.ErrBadRequest)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, common.ErrBadRequest)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "userId", user.ID)
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*model.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("invalid email or password: %w", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, fmt.Errorf("invalid email or password: %w", common.ErrUnauthorized)
	}

	return s.issue(user)
}

// ValidateToken verifies the token and confirms its user still exists.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*TokenStatus, error) {
	if token == "" {
		return nil, fmt.Errorf("token is required: %w", common.ErrUnauthorized)
	}
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v: %w", err, common.ErrUnauthorized)
	}
	userID, err := security.GetUserIDFromClaims(claims)
	if err != nil {
		return nil, fmt.Errorf("invalid token claims: %v: %w", err, common.ErrUnauthorized)
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("unknown user: %w", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	status := &TokenStatus{Valid: true, UserID: userID}
	if exp, ok := security.GetExpiryFromClaims(claims); ok {
		status.ExpiresAt = exp.UTC()
	}
	return status, nil
}

// ForgotPassword never reveals whether the address is registered.
// Delivery is out of scope; the reset reference is only logged.
func (s *AuthService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		return fmt.Errorf("invalid email address: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, common.ErrNotFound):
		s.logger.Info("password reset requested for unknown email")
	case err != nil:
		s.logger.Warn("password reset lookup failed", "error", err)
	default:
		s.logger.Info("password reset requested", "userId", user.ID, "resetId", uuid.NewString())
	}
	return nil
}

func (s *AuthService) issue(user *model.User) (*model.AuthResponse, error) {
	token, err := s.issuer.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	public := *user
	public.HashedPassword = ""
	return &model.AuthResponse{User: &public, Token: token}, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
