// Package ratelimit bounds request rates per client and endpoint with token
// buckets: each bucket refills continuously at limit/window tokens per
// second and holds at most the burst capacity.
package ratelimit

import (
	"sync"
	"time"
)

// idleEviction is how long a bucket may go untouched before the janitor
// drops it.
const idleEviction = time.Hour

// Info reports the limit state for one decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// bucket is the refill state for one client+endpoint+method combination.
// Access is guarded by the owning Limiter's mutex.
type bucket struct {
	tokens  float64
	cap     float64
	rate    float64 // tokens per second
	last    time.Time
	touched time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		tokens:  float64(capacity),
		cap:     float64(capacity),
		rate:    rate,
		last:    now,
		touched: now,
	}
}

func (b *bucket) refill(now time.Time) {
	b.tokens = min(b.cap, b.tokens+now.Sub(b.last).Seconds()*b.rate)
	b.last = now
}

// take refills for the elapsed time and consumes one token when available.
func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	b.touched = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// snapshot reports whole tokens remaining and when the bucket is full again.
func (b *bucket) snapshot(now time.Time) (remaining int, fullAt time.Time) {
	remaining = int(b.tokens)
	missing := b.cap - b.tokens
	if missing <= 0 {
		return remaining, now
	}
	return remaining, now.Add(time.Duration(missing / b.rate * float64(time.Second)))
}

// retryIn is the wait until the next whole token accrues.
func (b *bucket) retryIn() time.Duration {
	if b.tokens >= 1 {
		return 0
	}
	return time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
}

// Limiter hands out tokens from per-key buckets, one bucket per client,
// endpoint, and method combination.
type Limiter struct {
	cfg *Config

	mu      sync.Mutex
	buckets map[string]*bucket

	stopJanitor chan struct{} // nil when the janitor is not running
}

// NewLimiter creates a limiter. A nil config enables limiting with the
// built-in defaults and no per-endpoint budgets.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{
			Enabled:         true,
			DefaultLimit:    300,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{cfg: cfg, buckets: make(map[string]*bucket)}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		l.stopJanitor = make(chan struct{})
		go l.janitor(cfg.CleanupInterval)
	}
	return l
}

// Allow decides whether a request from clientID may proceed and reports the
// limit state either way.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.cfg.Enabled {
		return true, Info{Allowed: true}
	}
	if l.cfg.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.cfg.Blacklist[clientID] {
		return false, Info{}
	}

	limit, window, burst, limited := l.budget(endpoint, method)
	if !limited {
		return true, Info{Allowed: true}
	}

	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	key := method + " " + endpoint + "@" + clientID
	b := l.buckets[key]
	if b == nil {
		b = newBucket(burst, float64(limit)/window.Seconds(), now)
		l.buckets[key] = b
	}

	allowed := b.take(now)
	remaining, fullAt := b.snapshot(now)

	info := Info{Allowed: allowed, Limit: limit, Remaining: remaining, ResetTime: fullAt}
	if !allowed {
		info.RetryAfter = b.retryIn()
	}
	return allowed, info
}

// budget resolves the limit for an endpoint. limited is false when the
// endpoint is exempt: health probes, zero-limit configs, or a zero default.
func (l *Limiter) budget(endpoint, method string) (limit int, window time.Duration, burst int, limited bool) {
	ec := MatchEndpoint(endpoint, method, l.cfg.EndpointConfigs)
	if ec == nil {
		if l.cfg.DefaultLimit <= 0 {
			return 0, 0, 0, false
		}
		return l.cfg.DefaultLimit, l.cfg.DefaultWindow, l.cfg.DefaultLimit, true
	}
	if ec.Limit <= 0 {
		return 0, 0, 0, false
	}
	burst = ec.Burst
	if burst <= 0 {
		burst = ec.Limit
	}
	return ec.Limit, ec.Window, burst, true
}

func (l *Limiter) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-idleEviction))
		case <-l.stopJanitor:
			return
		}
	}
}

func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if b.touched.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the janitor goroutine.
func (l *Limiter) Stop() {
	if l.stopJanitor != nil {
		close(l.stopJanitor)
	}
}
