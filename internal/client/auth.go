package client

import (
	"context"
	"leetcode_tracker/internal/common"
	"leetcode_tracker/internal/domain/model"
	"net/http"
	"time"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

// TokenStatus is the validate-token payload. The tracker only cares that the call succeeded.
type TokenStatus struct {
	Valid     bool      `json:"valid"`
	UserID    string    `json:"userId,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, call{
		op:      "login",
		method:  http.MethodPost,
		path:    "/api/auth/login",
		body:    loginRequest{Email: email, Password: password},
		out:     &resp,
		failMsg: "Login failed",
		kind:    common.ErrAuthFailure,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, call{
		op:      "register",
		method:  http.MethodPost,
		path:    "/api/auth/register",
		body:    registerRequest{Username: username, Email: email, Password: password},
		out:     &resp,
		failMsg: "Registration failed",
		kind:    common.ErrAuthFailure,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateToken checks token against the backend. The token travels both as the
// bearer credential and in the body.
func (c *Client) ValidateToken(ctx context.Context, token string) (*TokenStatus, error) {
	var status TokenStatus
	err := c.do(ctx, call{
		op:      "validate token",
		method:  http.MethodPost,
		path:    "/api/auth/validate-token",
		token:   token,
		body:    tokenRequest{Token: token},
		out:     &status,
		failMsg: "Token validation failed",
		kind:    common.ErrTokenValidation,
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, call{
		op:      "forgot password",
		method:  http.MethodPost,
		path:    "/api/auth/forgot-password",
		body:    emailRequest{Email: email},
		failMsg: "Forgot password request failed",
	})
}
