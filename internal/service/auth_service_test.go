package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stemsi/exstem-summary/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
		TokenType:        "admin",
		UserID:           42,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	svc := NewAuthService(&config.Config{JWTSecret: "s3cret"})
	require.True(t, svc.Enabled())

	claims, err := svc.ValidateToken(signToken(t, "s3cret", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "admin", claims.TokenType)

	_, err = svc.ValidateToken(signToken(t, "other", time.Now().Add(time.Hour)))
	assert.Error(t, err)

	_, err = svc.ValidateToken(signToken(t, "s3cret", time.Now().Add(-time.Hour)))
	assert.Error(t, err)
}

func TestValidateTokenDisabled(t *testing.T) {
	svc := NewAuthService(&config.Config{})
	assert.False(t, svc.Enabled())

	_, err := svc.ValidateToken("anything")
	assert.ErrorIs(t, err, ErrVerificationDisabled)
}
