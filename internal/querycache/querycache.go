// Package querycache is the view layer's data cache: fetched results keyed
// by what they describe, marked stale by realtime invalidation signals and
// refetched lazily on next access.
package querycache

import (
	"strings"
	"sync"
)

// Key builds a cache key from its parts, e.g. Key("match", roomID, matchID).
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

type entry struct {
	value any
	stale bool
}

type subscriber struct {
	id int
	fn func(key string)
}

// Cache is a keyed result store with explicit invalidation. All methods are
// safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	subs    []subscriber
	nextSub int
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Set stores a fresh value under key.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{value: value}
}

// Get returns the cached value for key. ok is false when the key is absent
// or has been invalidated since it was set.
func (c *Cache) Get(key string) (value any, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.entries[key]
	if !found || e.stale {
		return nil, false
	}
	return e.value, true
}

// Invalidate marks key stale and notifies subscribers. Invalidating an
// absent or already-stale key is harmless and still notifies, so redundant
// realtime events cost at most a redundant refetch.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	if e, found := c.entries[key]; found {
		e.stale = true
	}
	notify := make([]subscriber, len(c.subs))
	copy(notify, c.subs)
	c.mu.Unlock()

	for _, sub := range notify {
		sub.fn(key)
	}
}

// StaleKeys returns the keys currently marked stale.
func (c *Cache) StaleKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var keys []string
	for key, e := range c.entries {
		if e.stale {
			keys = append(keys, key)
		}
	}
	return keys
}

// Subscribe registers fn to run after every invalidation and returns a
// function that removes it.
func (c *Cache) Subscribe(fn func(key string)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, sub := range c.subs {
			if sub.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}
