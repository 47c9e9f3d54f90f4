package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/exstem-summary/internal/config"
)

// ErrTokenNotFound is returned when no access token has been stored.
var ErrTokenNotFound = errors.New("access token not found")

// TokenRepository persists the upstream access token in Redis.
type TokenRepository struct {
	rdb *redis.Client
	key string
}

// NewScopedTokenRepository stores the token under a deployment-specific
// key. An empty scope uses the plain access_token key.
func NewScopedTokenRepository(rdb *redis.Client, scope string) *TokenRepository {
	return &TokenRepository{rdb: rdb, key: config.CacheKey.ScopedAccessTokenKey(scope)}
}

func (r *TokenRepository) Get(ctx context.Context) (string, error) {
	tok, err := r.rdb.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("get access token: %w", err)
	}
	if tok == "" {
		return "", ErrTokenNotFound
	}
	return tok, nil
}

// Set stores the token without expiry, matching browser localStorage.
func (r *TokenRepository) Set(ctx context.Context, token string) error {
	if err := r.rdb.Set(ctx, r.key, token, 0).Err(); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	return nil
}

// Delete removes the stored token. Deleting a missing token is not an error.
func (r *TokenRepository) Delete(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("delete access token: %w", err)
	}
	return nil
}
