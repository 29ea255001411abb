// Package cache is a small in-memory TTL cache for rendered popup and
// forecast responses. Safe for concurrent handlers.
package cache

import (
	"sync"
	"time"
)

// Timed invalidates entries a fixed TTL after they are set.
type Timed struct {
	mu    sync.Mutex
	ttl   time.Duration
	cache map[string]entry
}

type entry struct {
	value   []byte
	expires time.Time
}

// NewTimed creates a Timed cache whose entries expire after ttl.
func NewTimed(ttl time.Duration) *Timed {
	return &Timed{
		ttl:   ttl,
		cache: make(map[string]entry),
	}
}

// Set assigns a value to a key.
func (c *Timed) Set(key string, val []byte) {
	c.set(key, val, time.Now())
}

// set performs Set's work with the wall clock factored out.
func (c *Timed) set(key string, val []byte, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = entry{
		value:   val,
		expires: now.Add(c.ttl),
	}
}

// Get retrieves the value for a key. ok is false when the key was never set
// or has expired.
func (c *Timed) Get(key string) (value []byte, ok bool) {
	return c.get(key, time.Now())
}

// get is like set in that the time is factored out.
func (c *Timed) get(key string, now time.Time) (value []byte, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if now.After(el.expires) {
		delete(c.cache, key)
		return nil, false
	}
	return el.value, true
}
