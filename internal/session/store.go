package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Store maps session IDs to tallies. Idle sessions expire after the TTL,
// which is the only way a tally is reset.
type Store struct {
	mu    sync.Mutex
	cache *gocache.Cache
	ttl   time.Duration
}

// NewStore creates a session store
func NewStore(idleTTL time.Duration, cleanupInterval time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = 24 * time.Hour
	}
	return &Store{
		cache: gocache.New(idleTTL, cleanupInterval),
		ttl:   idleTTL,
	}
}

// NewID returns a fresh session identifier
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an identifier issued by NewID
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the tally for id, creating it on first use, and refreshes its expiry
func (s *Store) Get(id string) *Tally {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, found := s.cache.Get(id); found {
		t := v.(*Tally)
		s.cache.Set(id, t, s.ttl)
		return t
	}

	t := NewTally()
	s.cache.Set(id, t, s.ttl)
	return t
}

// End discards a session's tally
func (s *Store) End(id string) {
	s.cache.Delete(id)
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
