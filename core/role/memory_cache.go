package role

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryCache implements Cache with a mutex-guarded map. It never returns
// errors; the error results exist to satisfy the Cache interface shared
// with networked implementations.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]Entry
	now     func() time.Time
}

// MemoryCacheOption configures a MemoryCache.
type MemoryCacheOption func(*MemoryCache)

// WithMemoryCacheClock sets the time source, primarily for testing.
func WithMemoryCacheClock(now func() time.Time) MemoryCacheOption {
	return func(c *MemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMemoryCache returns an empty in-memory role cache.
func NewMemoryCache(opts ...MemoryCacheOption) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[uuid.UUID]Entry),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *MemoryCache) Get(_ context.Context, userID uuid.UUID) (Entry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[userID]
	return entry, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, userID uuid.UUID, role string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[userID] = Entry{Role: role, CachedAt: c.now()}
	return nil
}

func (c *MemoryCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	return nil
}
