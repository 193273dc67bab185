// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"sync"
	"time"

	"github.com/pdiddy/citation-verifier/pkg/types"
)

// DefaultCacheTTL is how long a successful lookup stays cached.
const DefaultCacheTTL = 24 * time.Hour

type cacheEntry struct {
	storedAt time.Time
	metadata types.SourceMetadata
}

// lookupCache is a mutex-guarded TTL map keyed by namespaced
// identifier ("doi:<x>", "isbn:<x>", "arxiv:<x>"). Entries exist only
// for successful, parseable registry responses. The clock is injected
// so expiry is testable without real sleeps.
type lookupCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func newLookupCache(ttl time.Duration, now func() time.Time) *lookupCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &lookupCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// get returns the cached metadata for key, treating expired entries as
// misses and evicting them.
func (c *lookupCache) get(key string) (types.SourceMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return types.SourceMetadata{}, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return types.SourceMetadata{}, false
	}
	return e.metadata, true
}

func (c *lookupCache) put(key string, md types.SourceMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{storedAt: c.now(), metadata: md}
}

func (c *lookupCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
