package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestTokenRepositoryRoundTrip(t *testing.T) {
	mr, rdb := newTestRedis(t)
	repo := NewScopedTokenRepository(rdb, "")
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, repo.Set(ctx, "abc.def.ghi"))
	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	stored, err := mr.Get("access_token")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", stored)

	require.NoError(t, repo.Delete(ctx))
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestScopedTokenRepositoryUsesOwnKey(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, NewScopedTokenRepository(rdb, "staging").Set(ctx, "s-token"))

	assert.True(t, mr.Exists("staging:access_token"))
	assert.False(t, mr.Exists("access_token"))
}

func TestTokenRepositoryEmptyValueIsMissing(t *testing.T) {
	mr, rdb := newTestRedis(t)
	require.NoError(t, mr.Set("access_token", ""))

	_, err := NewScopedTokenRepository(rdb, "").Get(context.Background())
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
