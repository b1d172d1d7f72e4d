package worker

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Limiter is a token bucket per client key. Buckets idle longer than the
// eviction window are dropped and start full on the next request.
type Limiter struct {
	mu       sync.Mutex
	buckets  *gocache.Cache
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
	disabled bool
}

// NewLimiter creates a limiter. A non-positive rate disables limiting.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	idle := 10 * time.Minute
	return &Limiter{
		buckets:  gocache.New(idle, idle),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		idleTTL:  idle,
		disabled: requestsPerSecond <= 0,
	}
}

// Allow reports whether the client identified by key may proceed now
func (l *Limiter) Allow(key string) bool {
	if l.disabled {
		return true
	}
	return l.bucket(key).Allow()
}

// RetryAfter estimates how long key must wait for its next token
func (l *Limiter) RetryAfter(key string) time.Duration {
	if l.disabled {
		return 0
	}
	r := l.bucket(key).Reserve()
	defer r.Cancel()
	return r.Delay()
}

// Len returns the number of tracked clients
func (l *Limiter) Len() int {
	return l.buckets.ItemCount()
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, found := l.buckets.Get(key); found {
		lim := v.(*rate.Limiter)
		l.buckets.Set(key, lim, l.idleTTL)
		return lim
	}

	lim := rate.NewLimiter(l.rate, l.burst)
	l.buckets.Set(key, lim, l.idleTTL)
	return lim
}
