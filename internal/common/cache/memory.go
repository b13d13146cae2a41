package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is a process-local cache backed by go-cache.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates an in-process cache whose expired entries are purged
// every cleanup interval.
func NewMemory(defaultTTL, cleanup time.Duration) *Memory {
	return &Memory{store: gocache.New(defaultTTL, cleanup)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, found := m.store.Get(key)
	if !found {
		return nil, false
	}
	raw, ok := v.([]byte)
	return raw, ok
}

// Set stores a copy of value; a non-positive ttl uses the cache default.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.store.Set(key, cp, ttl)
}

// Len reports the number of live entries.
func (m *Memory) Len() int {
	return m.store.ItemCount()
}
