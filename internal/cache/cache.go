// Package cache provides an in-memory TTL cache used to memoize abbreviation
// resolutions across the documents of a batch run.
// It uses patrickmn/go-cache, which is safe for concurrent use.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache with typed hit/miss accounting.
type Cache struct {
	store  *gocache.Cache
	hits   int
	misses int
}

// New creates a new cache with the given TTL and cleanup interval.
// defaultTTL is the default expiration time for cache entries.
// cleanupInterval is how often expired items are removed from memory.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.store.Get(key)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Set stores a value in the cache with default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
	c.hits, c.misses = 0, 0
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Stats returns cache statistics.
type Stats struct {
	ItemCount int `json:"item_count" yaml:"item_count"`
	Hits      int `json:"hits" yaml:"hits"`
	Misses    int `json:"misses" yaml:"misses"`
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{
		ItemCount: c.store.ItemCount(),
		Hits:      c.hits,
		Misses:    c.misses,
	}
}
