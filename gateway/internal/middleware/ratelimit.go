package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements a simple token bucket rate limiter.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter that allows rps requests per second.
func NewRateLimiter(rps int) *RateLimiter {
	return &RateLimiter{
		tokens:     float64(rps),
		maxTokens:  float64(rps),
		refillRate: float64(rps),
		lastRefill: time.Now(),
	}
}

// Allow reports whether a single request is permitted.
// It consumes one token if available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens += elapsed * rl.refillRate
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// RateLimitMiddleware applies rate limiting to incoming HTTP requests.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// A bucket idle longer than this is dropped; by then it is full again, so
// evicting it loses nothing.
const bucketIdleTTL = 3 * time.Minute

const sweepInterval = time.Minute

// PerClientRateLimiter keeps an independent token bucket per client key.
// Buckets for clients that have gone quiet are evicted so the map does not
// grow without bound under client churn.
type PerClientRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*clientBucket
	rps       int
	lastSweep time.Time
}

type clientBucket struct {
	limiter  *RateLimiter
	lastSeen time.Time
}

// NewPerClientRateLimiter creates a limiter that allows rps requests per
// second for each distinct client.
func NewPerClientRateLimiter(rps int) *PerClientRateLimiter {
	return &PerClientRateLimiter{
		buckets:   make(map[string]*clientBucket),
		rps:       rps,
		lastSweep: time.Now(),
	}
}

// Allow reports whether a request from the given client is permitted.
func (p *PerClientRateLimiter) Allow(clientKey string) bool {
	now := time.Now()

	p.mu.Lock()
	if now.Sub(p.lastSweep) >= sweepInterval {
		p.sweepLocked(now)
	}

	bucket, ok := p.buckets[clientKey]
	if !ok {
		bucket = &clientBucket{limiter: NewRateLimiter(p.rps)}
		p.buckets[clientKey] = bucket
	}
	bucket.lastSeen = now
	p.mu.Unlock()

	return bucket.limiter.Allow()
}

// sweepLocked drops buckets that have been idle past their TTL. Callers
// must hold p.mu.
func (p *PerClientRateLimiter) sweepLocked(now time.Time) {
	for key, bucket := range p.buckets {
		if now.Sub(bucket.lastSeen) >= bucketIdleTTL {
			delete(p.buckets, key)
		}
	}
	p.lastSweep = now
}

// PerClientRateLimitMiddleware applies per-client rate limiting keyed by
// the client IP address.
func PerClientRateLimitMiddleware(limiter *PerClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if !limiter.Allow(host) {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
