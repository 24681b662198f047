package security

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs and verifies HS256 bearer tokens.
type TokenIssuer struct {
	Auth *jwtauth.JWTAuth
	ttl  time.Duration
	now  func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		Auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (ti *TokenIssuer) GenerateToken(userID string) (string, error) {
	now := ti.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(ti.ttl).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := ti.Auth.Encode(claims)
	return tokenString, err
}

// Verify decodes tokenString and returns its claims. Expired or tampered tokens fail.
func (ti *TokenIssuer) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwtauth.VerifyToken(ti.Auth, tokenString)
	if err != nil {
		return nil, err
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Helper functions to extract claims, used by the middleware and the validate endpoint
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetExpiryFromClaims(claims jwt.MapClaims) (time.Time, bool) {
	switch exp := claims["exp"].(type) {
	case time.Time:
		return exp, true
	case float64:
		return time.Unix(int64(exp), 0), true
	case int64:
		return time.Unix(exp, 0), true
	}
	return time.Time{}, false
}
