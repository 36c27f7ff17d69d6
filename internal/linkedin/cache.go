package linkedin

import (
	"sync"
	"time"
)

// Cache holds the last image URL found and when it was stored. Expired values
// are kept so they can be served as a fallback after a failed fetch.
type Cache struct {
	mu       sync.RWMutex
	url      string
	storedAt time.Time

	ttl time.Duration
	now func() time.Time
}

// NewCache creates a Cache whose entries are fresh for ttl.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{ttl: ttl, now: now}
}

// Fresh returns the cached URL if it was stored less than ttl ago.
func (c *Cache) Fresh() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.url == "" || c.now().Sub(c.storedAt) >= c.ttl {
		return "", false
	}
	return c.url, true
}

// Last returns the cached URL regardless of age.
func (c *Cache) Last() (string, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.url, c.storedAt, c.url != ""
}

// Store overwrites the cached URL and stamps it with the current time.
func (c *Cache) Store(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.url = url
	c.storedAt = c.now()
}

// Clear drops the cached URL.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.url = ""
	c.storedAt = time.Time{}
}

// Age reports how long ago the cached URL was stored.
func (c *Cache) Age() (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.url == "" {
		return 0, false
	}
	return c.now().Sub(c.storedAt), true
}

// TTL returns the freshness window.
func (c *Cache) TTL() time.Duration { return c.ttl }
