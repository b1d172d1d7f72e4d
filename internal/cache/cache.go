package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores JSON-encoded image verdicts keyed by CacheKey
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Len() int
}

// CacheKey derives a key from the uploaded bytes and the filename.
// The filename takes part because the filename check reads it.
func CacheKey(data []byte, filename string) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(filename))
	return "trustbuddy:image:v1:" + hex.EncodeToString(h.Sum(nil))
}

// Nop is a cache that never stores anything
type Nop struct{}

func (Nop) Get(string) ([]byte, bool) { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error { return nil }
func (Nop) Len() int { return 0 }
