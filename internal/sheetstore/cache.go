package sheetstore

import (
	"sync"
	"time"
)

// tableCache is a short-lived read cache of whole-table contents, keyed by
// table. It only exists to cut down repeated reads within one interaction;
// every write to a table drops that table's entry.
type tableCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	values    [][]string
	fetchedAt time.Time
}

func newTableCache(ttl time.Duration) *tableCache {
	return &tableCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *tableCache) get(key string) ([][]string, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.values, true
}

func (c *tableCache) set(key string, values [][]string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{values: values, fetchedAt: c.now()}
}

func (c *tableCache) invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
