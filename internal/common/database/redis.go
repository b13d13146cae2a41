package database

import (
	"context"
	"fmt"
	"time"

	"tourist-guide/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient owns the connection pool behind the shared collaborator cache.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a Redis client. No connection is made until first use;
// call Ping to check reachability.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return &RedisClient{Client: rdb}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}
