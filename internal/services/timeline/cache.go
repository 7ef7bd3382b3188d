package timeline

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mcoot/hvztracker/internal/model"
)

type cacheEntry struct {
	version int64
	series  *Series
}

// Cache memoizes one series per game, keyed by the game's storage version.
// Concurrent misses for the same version share a single computation.
type Cache struct {
	mu      sync.RWMutex
	entries map[model.GameID]cacheEntry
	group   singleflight.Group
}

// NewCache creates an empty Cache
func NewCache() *Cache {
	return &Cache{entries: make(map[model.GameID]cacheEntry)}
}

// Get returns the series cached for (gameID, version), running compute on a miss
func (c *Cache) Get(gameID model.GameID, version int64, compute func() (*Series, error)) (*Series, error) {
	c.mu.RLock()
	entry, ok := c.entries[gameID]
	c.mu.RUnlock()
	if ok && entry.version == version {
		return entry.series, nil
	}

	key := fmt.Sprintf("%s@%d", gameID, version)
	v, err, _ := c.group.Do(key, func() (any, error) {
		series, err := compute()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if cur, ok := c.entries[gameID]; !ok || cur.version <= version {
			c.entries[gameID] = cacheEntry{version: version, series: series}
		}
		c.mu.Unlock()
		return series, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Series), nil
}

// Invalidate drops the cached series for a game
func (c *Cache) Invalidate(gameID model.GameID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, gameID)
}
