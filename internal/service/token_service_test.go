package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-summary/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokenStore struct {
	token string
	err   error
}

func (m memTokenStore) Get(context.Context) (string, error) { return m.token, m.err }

func TestAccessTokenPrefersRequestToken(t *testing.T) {
	svc := NewTokenService(memTokenStore{token: "stored"}, "env", zerolog.Nop())
	ctx := WithRequestToken(context.Background(), "caller")

	tok, err := svc.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "caller", tok)
}

func TestAccessTokenFallsThroughStore(t *testing.T) {
	ctx := context.Background()

	tok, err := NewTokenService(memTokenStore{token: "stored"}, "env", zerolog.Nop()).AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "stored", tok)

	tok, err = NewTokenService(memTokenStore{err: repository.ErrTokenNotFound}, "env", zerolog.Nop()).AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "env", tok)

	tok, err = NewTokenService(nil, "", zerolog.Nop()).AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestAccessTokenStoreFailure(t *testing.T) {
	boom := errors.New("dial tcp: refused")

	_, err := NewTokenService(memTokenStore{err: boom}, "", zerolog.Nop()).AccessToken(context.Background())
	assert.ErrorIs(t, err, boom)

	tok, err := NewTokenService(memTokenStore{err: boom}, "env", zerolog.Nop()).AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env", tok)
}

func TestWithRequestTokenIgnoresEmpty(t *testing.T) {
	ctx := WithRequestToken(context.Background(), "")
	assert.Empty(t, RequestToken(ctx))
}
