// Package cache provides the expiring key/value store the collaborator
// clients use for cache-aside lookups.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"tourist-guide/internal/common/metrics"
)

// Cache is a byte-oriented expiring store. A failed or missing lookup is a
// miss; callers never see backend errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// GetJSON looks up key and decodes the stored JSON into out. name labels
// the lookup in the cache metrics.
func GetJSON(ctx context.Context, c Cache, name, key string, out interface{}) bool {
	if c == nil {
		return false
	}
	raw, ok := c.Get(ctx, key)
	if ok && json.Unmarshal(raw, out) == nil {
		metrics.CacheLookups.WithLabelValues(name, metrics.CacheHit).Inc()
		return true
	}
	metrics.CacheLookups.WithLabelValues(name, metrics.CacheMiss).Inc()
	return false
}

// SetJSON stores v as JSON under key.
func SetJSON(ctx context.Context, c Cache, key string, v interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, raw, ttl)
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration) {}
