package rolecache

import (
	"context"
	"sync"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/user"
)

type memoryEntry struct {
	role      user.Role
	expiresAt time.Time
}

// MemoryCache is a per-process Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryCache uses DefaultTTL for a non-positive ttl and time.Now for a nil clock.
func NewMemoryCache(ttl time.Duration, now func() time.Time) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{ttl: ttl, now: now, entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, userID string) (user.Role, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[userID]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return "", false, nil
	}
	return e.role, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, userID string, role user.Role) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = memoryEntry{role: role, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}

// Sweep removes expired entries and returns how many were dropped.
func (c *MemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
			n++
		}
	}
	return n
}
