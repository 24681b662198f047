// Package store holds the client-side state containers: who is logged in, and
// which problem records they own.
package store

import (
	"context"
	"errors"
	"fmt"
	"leetcode_tracker/internal/client"
	"leetcode_tracker/internal/common"
	"leetcode_tracker/internal/domain/model"
	"leetcode_tracker/internal/platform/logging"
	"log/slog"
	"sync"
)

const restoreFailedMessage = "Could not read the saved session"

// AuthAPI is the slice of the remote API the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*model.AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*client.TokenStatus, error)
	ForgotPassword(ctx context.Context, email string) error
}

// TokenRetention persists the token across its two tiers. See tokenstore.Policy.
type TokenRetention interface {
	Persist(ctx context.Context, token string, durable bool) error
	Read(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

// Session is a snapshot of the authentication state.
// IsAuthenticated is true exactly when Token is non-empty. User may be nil even then:
// a token restored by InitializeAuth carries no user record.
type Session struct {
	IsAuthenticated bool
	User            *model.User
	Token           string
	Loading         bool
	Error           string
}

// SessionStore is the single source of truth for the current credential and the only
// writer of the token retention tiers.
//
// Operations are not serialized: overlapping calls each run to completion and the last
// one to finish wins the shared fields. Callers that need ordering must wait for Loading
// to drop before issuing the next call.
type SessionStore struct {
	api       AuthAPI
	retention TokenRetention
	log       *slog.Logger

	mu    sync.RWMutex
	state Session
}

func NewSessionStore(api AuthAPI, retention TokenRetention, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = logging.GetLogger("store.session")
	}
	return &SessionStore{api: api, retention: retention, log: logger}
}

// State returns a copy of the current session.
func (s *SessionStore) State() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state
	if s.state.User != nil {
		user := *s.state.User
		snapshot.User = &user
	}
	return snapshot
}

// Token returns the current token, or "" when logged out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *SessionStore) update(fn func(st *Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

func (s *SessionStore) begin() {
	s.update(func(st *Session) {
		st.Loading = true
		st.Error = ""
	})
}

func (s *SessionStore) fail(err error, fallback string) {
	msg := client.Message(err, fallback)
	s.update(func(st *Session) {
		st.Loading = false
		st.Error = msg
	})
}

// Login authenticates and stores the token in the durable tier when rememberMe is set,
// otherwise in the session tier.
func (s *SessionStore) Login(ctx context.Context, email, password string, rememberMe bool) (*model.User, error) {
	s.begin()

	resp, err := s.api.Login(ctx, email, password)
	if err == nil && (resp == nil || resp.Token == "") {
		err = fmt.Errorf("empty token in response: %w", common.ErrAuthFailure)
	}
	if err != nil {
		s.log.WarnContext(ctx, "login failed", "email", email, "error", err)
		s.fail(err, "Login failed")
		return nil, fmt.Errorf("login: %w", err)
	}

	s.establish(ctx, resp, rememberMe)
	s.log.InfoContext(ctx, "logged in", "email", email, "rememberMe", rememberMe)
	return resp.User, nil
}

// RegisterUser creates an account and logs it in. The token always goes to the session tier.
func (s *SessionStore) RegisterUser(ctx context.Context, username, email, password string) (*model.User, error) {
	s.begin()

	resp, err := s.api.Register(ctx, username, email, password)
	if err == nil && (resp == nil || resp.Token == "") {
		err = fmt.Errorf("empty token in response: %w", common.ErrAuthFailure)
	}
	if err != nil {
		s.log.WarnContext(ctx, "registration failed", "username", username, "error", err)
		s.fail(err, "Registration failed")
		return nil, fmt.Errorf("register: %w", err)
	}

	s.establish(ctx, resp, false)
	s.log.InfoContext(ctx, "registered", "username", username)
	return resp.User, nil
}

func (s *SessionStore) establish(ctx context.Context, resp *model.AuthResponse, durable bool) {
	// The in-memory session is usable even if the token could not be retained.
	if err := s.retention.Persist(ctx, resp.Token, durable); err != nil {
		s.log.WarnContext(ctx, "token not retained", "durable", durable, "error", err)
	}

	s.update(func(st *Session) {
		st.IsAuthenticated = true
		st.User = resp.User
		st.Token = resp.Token
		st.Loading = false
	})
}

// Logout clears both retention tiers and resets the session. It reports whether the
// tiers were cleared; the in-memory session is reset either way.
func (s *SessionStore) Logout(ctx context.Context) bool {
	err := s.retention.Clear(ctx)

	s.update(func(st *Session) {
		st.IsAuthenticated = false
		st.User = nil
		st.Token = ""
		st.Error = ""
		if err != nil {
			st.Error = "Logout failed"
		}
	})

	if err != nil {
		s.log.ErrorContext(ctx, "logout could not clear token", "error", err)
		return false
	}
	s.log.InfoContext(ctx, "logged out")
	return true
}

// InitializeAuth restores a retained token, durable tier first. A token the backend
// accepts marks the session authenticated without a user record. A rejected token is
// wiped from both tiers.
func (s *SessionStore) InitializeAuth(ctx context.Context) error {
	token, ok, err := s.retention.Read(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "could not read retained token", "error", err)
		if !ok {
			s.update(func(st *Session) { st.Error = restoreFailedMessage })
			return fmt.Errorf("initialize auth: %w", err)
		}
	}
	if !ok {
		return nil
	}

	s.begin()

	if _, err := s.api.ValidateToken(ctx, token); err != nil {
		if clearErr := s.retention.Clear(ctx); clearErr != nil {
			s.log.ErrorContext(ctx, "could not clear rejected token", "error", clearErr)
		}

		msg := client.Message(err, "Token validation failed")
		s.update(func(st *Session) {
			st.IsAuthenticated = false
			st.User = nil
			st.Token = ""
			st.Loading = false
			st.Error = msg
		})

		s.log.WarnContext(ctx, "retained token rejected", "error", err)
		if !errors.Is(err, common.ErrTokenValidation) {
			err = errors.Join(common.ErrTokenValidation, err)
		}
		return fmt.Errorf("initialize auth: %w", err)
	}

	s.update(func(st *Session) {
		st.IsAuthenticated = true
		st.Token = token
		st.Loading = false
	})
	s.log.InfoContext(ctx, "session restored from retained token")
	return nil
}

// ForgotPassword asks the backend to start a password reset.
func (s *SessionStore) ForgotPassword(ctx context.Context, email string) error {
	s.begin()

	if err := s.api.ForgotPassword(ctx, email); err != nil {
		s.log.WarnContext(ctx, "forgot password request failed", "email", email, "error", err)
		s.fail(err, "Forgot password request failed")
		return fmt.Errorf("forgot password: %w", err)
	}

	s.update(func(st *Session) { st.Loading = false })
	return nil
}

func (s *SessionStore) ClearError() {
	s.update(func(st *Session) { st.Error = "" })
}
