package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-summary/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClientDisabled(t *testing.T) {
	rdb, err := NewRedisClient(context.Background(), &config.Config{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestNewRedisClientConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(context.Background(), &config.Config{RedisURL: "redis://" + mr.Addr() + "/0"}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, rdb)
	defer rdb.Close()
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), &config.Config{RedisURL: "mysql://nope"}, zerolog.Nop())
	assert.Error(t, err)
}
