package folio

import (
	"context"
	"sync"
	"time"
)

// BuildFunc produces a fresh Collection.
type BuildFunc func(ctx context.Context) (*Collection, error)

// CollectionCache holds the most recent Collection and rebuilds it
// wholesale once the TTL has passed or after Invalidate.
type CollectionCache struct {
	mu      sync.RWMutex
	current *Collection
	stale   bool
	fetched time.Time
	ttl     time.Duration
	build   BuildFunc
}

// NewCollectionCache creates a CollectionCache around build. A zero ttl
// never expires; only Invalidate triggers a rebuild.
func NewCollectionCache(build BuildFunc, ttl time.Duration) *CollectionCache {
	return &CollectionCache{build: build, ttl: ttl}
}

func (c *CollectionCache) valid() bool {
	return c.current != nil && !c.stale && (c.ttl <= 0 || time.Since(c.fetched) < c.ttl)
}

// Invalidate clears the cache so the next read triggers a rebuild.
func (c *CollectionCache) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Get returns the cached Collection, rebuilding it when stale. It tries a
// read lock first and only takes the write lock if a rebuild is needed.
// When a rebuild fails and an older Collection exists, the older one is
// returned together with the error. The rebuild keeps ctx's values but not
// its cancellation, so a caller that goes away does not abort it.
func (c *CollectionCache) Get(ctx context.Context) (*Collection, error) {
	c.mu.RLock()
	if c.valid() {
		cur := c.current
		c.mu.RUnlock()
		return cur, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.current, nil
	}
	fresh, err := c.build(context.WithoutCancel(ctx))
	if err != nil {
		return c.current, err
	}
	c.current = fresh
	c.stale = false
	c.fetched = time.Now()
	return fresh, nil
}
