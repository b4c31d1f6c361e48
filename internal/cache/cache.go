// Package cache holds derived key material in memory so repeated requests
// against the same password do not re-run the KDF.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	material   []byte
	expiration int64
}

func (e entry) expired() bool {
	return e.expiration > 0 && time.Now().UnixNano() > e.expiration
}

// KeyCache is an in-memory TTL cache for derived keys
type KeyCache struct {
	items map[string]entry
	mu    sync.RWMutex
	ttl   time.Duration
}

// NewKeyCache creates a cache with the given default TTL
func NewKeyCache(ttl time.Duration) *KeyCache {
	c := &KeyCache{
		items: make(map[string]entry),
		ttl:   ttl,
	}
	go c.cleanup()
	return c
}

// Get returns a copy of the cached material, so callers can wipe their
// copy without corrupting the cache.
func (c *KeyCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, found := c.items[key]
	c.mu.RUnlock()

	if !found || e.expired() {
		return nil, false
	}
	return append([]byte(nil), e.material...), true
}

// Set stores key material with the default TTL
func (c *KeyCache) Set(key string, material []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiration int64
	if c.ttl > 0 {
		expiration = time.Now().Add(c.ttl).UnixNano()
	}
	c.items[key] = entry{
		material:   append([]byte(nil), material...),
		expiration: expiration,
	}
}

// Delete wipes and removes an entry
func (c *KeyCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		for i := range e.material {
			e.material[i] = 0
		}
		delete(c.items, key)
	}
}

// Clear wipes and removes all entries
func (c *KeyCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.items {
		for i := range e.material {
			e.material[i] = 0
		}
		delete(c.items, k)
	}
}

// cleanup periodically removes expired entries
func (c *KeyCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		c.mu.Lock()
		now := time.Now().UnixNano()
		for k, e := range c.items {
			if e.expiration > 0 && now > e.expiration {
				for i := range e.material {
					e.material[i] = 0
				}
				delete(c.items, k)
			}
		}
		c.mu.Unlock()
	}
}
