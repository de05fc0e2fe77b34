// Package memory provides the in-process result cache backing the
// data-listing endpoints.
package memory

import (
	"sync"
	"time"

	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.ResultCache = (*Cache)(nil)

// DefaultTTL is how long entries live after insertion.
const DefaultTTL = 300 * time.Second

// janitorInterval is how often expired entries are swept.
const janitorInterval = time.Minute

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a fixed-TTL key/value cache. Expiry is measured from
// insertion and never extended on read. Reads and writes on the same
// key are linearizable; a hit returns the stored value unchanged.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// New creates a cache with the given TTL. A non-positive ttl falls back
// to DefaultTTL. A background janitor sweeps expired entries so the map
// does not grow without bound across TTL windows.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get returns the value stored under key, or false when absent or expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		// Lazy eviction; the janitor handles the rest.
		c.mu.Lock()
		if cur, still := c.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key. Overwriting restarts the TTL.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Len returns the number of live entries, counting not-yet-swept
// expired ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the janitor goroutine.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := c.now()
			c.mu.Lock()
			for key, e := range c.entries {
				if !now.Before(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
