package api

import (
	"os"
	"strconv"
	"sync"

	"github.com/fundmatch/fundmatch/internal/marketplace"
)

// CatalogCache is a thread-safe LRU cache for loaded opportunity records.
type CatalogCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*cacheEntry
	order   []string // oldest first
}

type cacheEntry struct {
	opp *marketplace.OpportunityRow
}

// NewCatalogCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 20.
func NewCatalogCache(maxSize int) *CatalogCache {
	if maxSize <= 0 {
		maxSize = 20
	}
	return &CatalogCache{
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// NewCatalogCacheFromEnv creates a cache with size from CATALOG_CACHE_SIZE env var.
func NewCatalogCacheFromEnv() *CatalogCache {
	size := 20
	if v := os.Getenv("CATALOG_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewCatalogCache(size)
}

// Get retrieves an opportunity from the cache, or nil if not found.
func (c *CatalogCache) Get(id string) *marketplace.OpportunityRow {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(id)
	return entry.opp
}

// Put adds an opportunity to the cache, evicting the oldest if full.
func (c *CatalogCache) Put(id string, opp *marketplace.OpportunityRow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; ok {
		c.entries[id] = &cacheEntry{opp: opp}
		c.moveToEnd(id)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[id] = &cacheEntry{opp: opp}
	c.order = append(c.order, id)
}

// Invalidate removes an opportunity from the cache.
func (c *CatalogCache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; !ok {
		return
	}
	delete(c.entries, id)
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *CatalogCache) moveToEnd(id string) {
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, id)
			return
		}
	}
}
