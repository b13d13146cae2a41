package cache

import (
	"context"
	"errors"
	"time"

	"tourist-guide/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// Redis is a cache shared between replicas. Keys are namespaced with prefix.
type Redis struct {
	client redis.Cmdable
	prefix string
	logger logger.Logger
}

func NewRedis(client redis.Cmdable, prefix string, log logger.Logger) *Redis {
	return &Redis{client: client, prefix: prefix, logger: log}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("Cache read failed, treating as miss", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}
	return raw, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		r.logger.Warn("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
