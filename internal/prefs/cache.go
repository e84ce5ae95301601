// Package prefs implements per-user AI-reply preferences: a durable store
// interface, a TTL-bounded in-memory cache, and the service composing the two.
package prefs

import (
	"sync"
	"time"
)

// DefaultTTL is the cache entry lifetime when none is configured.
const DefaultTTL = 600 * time.Second

type cacheEntry struct {
	enabled  bool
	cachedAt time.Time
}

// Cache is an in-memory per-user preference cache with lazy TTL expiry.
// One mutex guards the whole map; contention is low and simplicity matters
// more than throughput here. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// CacheStats reports cache occupancy for the management API.
type CacheStats struct {
	Size           int           `json:"size"`
	OldestEntryAge time.Duration `json:"oldestEntryAgeSeconds"`
}

// NewCache creates a cache with the given TTL. A non-positive ttl falls back
// to DefaultTTL. The clock is overridable for tests via WithClock.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the cache clock. Test use only; call before sharing.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Get returns the cached status for userID. An entry older than the TTL is
// treated as absent and evicted. Note Get mutates the cache: expiry is
// evaluated lazily here rather than by a background sweep.
func (c *Cache) Get(userID string) (enabled bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.entries[userID]
	if !found {
		return false, false
	}
	if c.now().Sub(e.cachedAt) > c.ttl {
		delete(c.entries, userID)
		return false, false
	}
	return e.enabled, true
}

// Set records the status for userID, resetting its TTL.
func (c *Cache) Set(userID string, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = cacheEntry{enabled: enabled, cachedAt: c.now()}
}

// Invalidate removes the entry for userID, forcing the next read to
// re-resolve against the store.
func (c *Cache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Stats returns current size and the age of the oldest entry.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStats{Size: len(c.entries)}
	if len(c.entries) == 0 {
		return stats
	}

	now := c.now()
	for _, e := range c.entries {
		if age := now.Sub(e.cachedAt); age > stats.OldestEntryAge {
			stats.OldestEntryAge = age
		}
	}
	return stats
}

// CleanupExpired evicts all expired entries and returns how many were
// removed. Expiry also happens lazily on Get; this exists for the periodic
// sweep so idle users do not pin memory.
func (c *Cache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, e := range c.entries {
		if now.Sub(e.cachedAt) > c.ttl {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}
