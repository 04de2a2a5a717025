// Package ratelimit throttles login attempts per client address. It is shared
// by the HTTP and gRPC front ends.
package ratelimit

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IdleTTL is how long a client's bucket is kept after its last attempt.
const IdleTTL = time.Hour

// Limiter keeps one token bucket per key. Buckets idle for longer than the
// TTL are dropped by a sweep that runs at most once per TTL.
type Limiter struct {
	mu        sync.Mutex
	refill    rate.Limit
	burst     int
	ttl       time.Duration
	clients   map[string]*client
	lastSweep time.Time
	clock     func() time.Time
}

type client struct {
	bucket *rate.Limiter
	seen   time.Time
}

func New(refill rate.Limit, burst int, ttl time.Duration) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		refill:  refill,
		burst:   burst,
		ttl:     ttl,
		clients: make(map[string]*client),
		clock:   time.Now,
	}
}

// PerMinute allows perMinute attempts per key per minute with the given
// burst. It returns nil when perMinute <= 0; a nil Limiter allows everything.
func PerMinute(perMinute, burst int) *Limiter {
	if perMinute <= 0 {
		return nil
	}
	return New(rate.Limit(float64(perMinute)/time.Minute.Seconds()), burst, IdleTTL)
}

// Allow reports whether key may make one more attempt now.
func (l *Limiter) Allow(key string) bool {
	if l == nil {
		return true
	}

	now := l.clock()
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.ttl {
		l.sweep(now)
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{bucket: rate.NewLimiter(l.refill, l.burst)}
		l.clients[key] = c
	}
	c.seen = now
	return c.bucket.AllowN(now, 1)
}

func (l *Limiter) sweep(now time.Time) {
	for k, c := range l.clients {
		if now.Sub(c.seen) > l.ttl {
			delete(l.clients, k)
		}
	}
	l.lastSweep = now
}

// HostKey strips the port from a "host:port" peer address. Anything else is
// used as is.
func HostKey(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err == nil && host != "" {
		return host
	}
	return addr
}
