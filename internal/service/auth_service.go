package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stemsi/exstem-summary/internal/config"
)

// ErrVerificationDisabled is returned by ValidateToken when no secret is configured.
var ErrVerificationDisabled = errors.New("token verification disabled")

// Claims mirrors the claims issued by the administration API.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type,omitempty"`
	UserID    int    `json:"user_id,omitempty"`
}

// AuthService verifies bearer tokens before they are forwarded upstream.
type AuthService struct {
	secret []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{secret: []byte(cfg.JWTSecret)}
}

// Enabled reports whether tokens are verified locally.
func (s *AuthService) Enabled() bool {
	return len(s.secret) > 0
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	if !s.Enabled() {
		return nil, ErrVerificationDisabled
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
