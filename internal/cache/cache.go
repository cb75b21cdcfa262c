// Package cache provides a small generic TTL cache keyed by string.
// Values are idempotent re-derivations of the same external source, so
// last-writer-wins semantics are acceptable; the internal mutex only
// protects the map itself.
package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// NoExpiration marks an entry as valid for the process lifetime.
const NoExpiration time.Duration = -1

type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

// Cache is a TTL cache with an injectable clock so tests can freeze time.
type Cache[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	defaultTTL time.Duration
	clock      clockwork.Clock
}

// New creates a cache whose entries expire after defaultTTL unless a
// per-entry TTL is given. Pass NoExpiration to keep entries forever.
func New[V any](defaultTTL time.Duration) *Cache[V] {
	return NewWithClock[V](defaultTTL, clockwork.NewRealClock())
}

// NewWithClock creates a cache with an explicit time source.
func NewWithClock[V any](defaultTTL time.Duration, clock clockwork.Clock) *Cache[V] {
	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: defaultTTL,
		clock:      clock,
	}
}

// Get returns the cached value for key. A read is a hit only while the
// entry's TTL has not elapsed; expired entries are removed lazily.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if e.ttl != NoExpiration && c.clock.Since(e.storedAt) >= e.ttl {
		c.mu.Lock()
		// Re-check under the write lock; another writer may have refreshed it.
		if cur, still := c.entries[key]; still && cur.storedAt.Equal(e.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, storedAt: c.clock.Now(), ttl: ttl}
	c.mu.Unlock()
}

// Delete removes key from the cache.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Flush removes every entry.
func (c *Cache[V]) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Len returns the number of stored entries, including not-yet-collected
// expired ones.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
