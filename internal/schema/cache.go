package schema

import (
	"sync"
	"sync/atomic"
)

// Cache memoizes parsed provider schemas keyed by source identity.
// Manifests describe static provider metadata that does not change during a
// process's execution, so entries live for the cache's lifetime and are
// never evicted or replaced. The cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*ProviderSchema

	// Metrics (atomic for lock-free reads).
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates an empty schema cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*ProviderSchema),
	}
}

// TryGet returns the cached schema for the given source identifier.
func (c *Cache) TryGet(id string) (*ProviderSchema, bool) {
	c.mu.RLock()
	provider, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)

		return nil, false
	}

	c.hits.Add(1)

	return provider, true
}

// TryAdd stores the schema under the given source identifier. It returns
// false without replacing the entry when a schema for that identifier already
// exists, so the loser of a concurrent parse race simply discards its result.
func (c *Cache) TryAdd(id string, provider *ProviderSchema) bool {
	if provider == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[id]; exists {
		return false
	}

	c.entries[id] = provider

	return true
}

// Len returns the number of cached schemas.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: len(c.entries),
	}
}

// CacheStats holds cache performance counters.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}

	return float64(s.Hits) / float64(total)
}
