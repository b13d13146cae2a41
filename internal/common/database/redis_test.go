package database

import (
	"context"
	"testing"

	"tourist-guide/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))
}

func TestRedisClient_PingUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client := NewRedis(config.RedisConfig{Address: addr})
	defer client.Close()

	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestRedisClient_CloseNil(t *testing.T) {
	assert.NoError(t, (&RedisClient{}).Close())
}
