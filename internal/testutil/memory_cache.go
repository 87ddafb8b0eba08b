package testutil

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"library-backend/pkg/cache"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MemoryCache is an in-process cache.Cache for tests. TTLs are ignored.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string][]byte

	// Down makes every call fail with cache.ErrCacheUnavailable.
	Down bool
}

var _ cache.Cache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string][]byte)}
}

func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Down {
		return false, cache.ErrCacheUnavailable
	}
	data, ok := c.items[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Down {
		return cache.ErrCacheUnavailable
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = data
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Down {
		return cache.ErrCacheUnavailable
	}
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *MemoryCache) Ping(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Down {
		return cache.ErrCacheUnavailable
	}
	return nil
}

// Has reports whether key is cached.
func (c *MemoryCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}
