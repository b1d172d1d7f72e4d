package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps encoded image verdicts in process memory.
// Entries expire after their TTL and a janitor sweeps them every cleanup interval;
// a non-positive interval disables the sweep and expired entries linger until read.
type MemoryCache struct {
	verdicts *gocache.Cache
}

// NewMemoryCache creates a verdict cache whose entries live for ttl unless Set overrides it
func NewMemoryCache(ttl, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{verdicts: gocache.New(ttl, cleanupInterval)}
}

// Get returns the encoded verdict stored under key
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	v, found := c.verdicts.Get(key)
	if !found {
		return nil, false
	}
	encoded, ok := v.([]byte)
	return encoded, ok
}

// Set stores an encoded verdict. A zero ttl keeps the cache-wide TTL.
func (c *MemoryCache) Set(key string, encoded []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.verdicts.Set(key, encoded, ttl)
	return nil
}

// Delete drops a verdict, used when a stored entry no longer decodes
func (c *MemoryCache) Delete(key string) error {
	c.verdicts.Delete(key)
	return nil
}

// Len counts stored verdicts, including expired ones the janitor has not swept yet
func (c *MemoryCache) Len() int {
	return c.verdicts.ItemCount()
}
