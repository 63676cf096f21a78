package menu

import (
	"context"
	"sync"
	"time"
)

// NameLoader is the slice of Repository the cache needs.
type NameLoader interface {
	NamesByRestaurant(ctx context.Context, restaurantID string) (map[string]string, error)
}

// NameCache memoizes the id→name menu mapping per restaurant with an
// expire-after-write policy. It is an explicit collaborator injected into the
// delta-naming step; the order core never owns cache lifetime.
type NameCache struct {
	loader NameLoader
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]nameCacheEntry
}

type nameCacheEntry struct {
	names    map[string]string
	loadedAt time.Time
}

func NewNameCache(loader NameLoader, ttl time.Duration) *NameCache {
	return &NameCache{
		loader:  loader,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]nameCacheEntry),
	}
}

// Names returns the cached mapping for a restaurant, reloading it once the
// write is older than the TTL.
func (c *NameCache) Names(ctx context.Context, restaurantID string) (map[string]string, error) {
	c.mu.Lock()
	entry, ok := c.entries[restaurantID]
	c.mu.Unlock()

	if ok && c.now().Sub(entry.loadedAt) < c.ttl {
		return entry.names, nil
	}

	names, err := c.loader.NamesByRestaurant(ctx, restaurantID)
	if err != nil {
		// Serve the stale entry rather than failing the notification path.
		if ok {
			return entry.names, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.entries[restaurantID] = nameCacheEntry{names: names, loadedAt: c.now()}
	c.mu.Unlock()

	return names, nil
}

// Invalidate drops the cached mapping for a restaurant, forcing the next
// Names call to reload. Called after menu edits.
func (c *NameCache) Invalidate(restaurantID string) {
	c.mu.Lock()
	delete(c.entries, restaurantID)
	c.mu.Unlock()
}
