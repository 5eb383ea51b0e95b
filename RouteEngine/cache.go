package RouteEngine

import (
	"sync"
	"time"

	"MakeMyWay/Metrics"
)

// RoutingCache stores routing engine responses keyed by operation kind,
// profile and rounded coordinates. Entries never expire by age; the cache
// only sheds its oldest entries when the periodic pruner finds it grown
// past its maximum.
type RoutingCache struct {
	mu         sync.Mutex
	maxEntries int
	now        func() time.Time

	values map[string]cacheEntry
	order  []string // insertion order, oldest first
}

type cacheEntry struct {
	value      any
	insertedAt time.Time
}

// NewRoutingCache creates a cache bounded to maxEntries entries. A
// non-positive maxEntries falls back to 1000.
func NewRoutingCache(maxEntries int) *RoutingCache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &RoutingCache{
		maxEntries: maxEntries,
		now:        time.Now,
		values:     make(map[string]cacheEntry),
	}
}

// WithClock replaces the cache's clock. Tests use this to make insertion
// timestamps deterministic.
func (c *RoutingCache) WithClock(now func() time.Time) *RoutingCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Get returns the cached value for key, if present.
func (c *RoutingCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.values[key]
	if ok {
		Metrics.CacheHitsTotal.Inc()
		return entry.value, true
	}
	Metrics.CacheMissesTotal.Inc()
	return nil, false
}

// Put inserts a value. The cache may temporarily exceed its maximum between
// pruning passes; inserts themselves never evict. Re-inserting an existing
// key updates the value but keeps its original position in the eviction
// order.
func (c *RoutingCache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.values[key]; !exists {
		c.order = append(c.order, key)
	}
	c.values[key] = cacheEntry{value: value, insertedAt: c.now()}
}

// Prune evicts oldest-first down to the configured maximum and returns the
// number of entries removed. Called on a fixed schedule by the cache pruner.
func (c *RoutingCache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for len(c.order) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.values, oldest)
		evicted++
	}
	return evicted
}

// Stats returns the entry count and the age of the oldest entry.
func (c *RoutingCache) Stats() (entries int, oldestAge time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.order) > 0 {
		oldestAge = c.now().Sub(c.values[c.order[0]].insertedAt)
	}
	return len(c.values), oldestAge
}

// Clear drops every entry.
func (c *RoutingCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[string]cacheEntry)
	c.order = nil
}

// Len returns the current number of entries.
func (c *RoutingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}
