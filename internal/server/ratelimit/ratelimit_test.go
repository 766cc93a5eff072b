package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket_BurstThenEmpty(t *testing.T) {
	b := newBucket(10, 1.0, time.Now()) // capacity 10, 1 token/s

	for i := 0; i < 10; i++ {
		assert.True(t, b.take(time.Now()), "take %d should succeed from a full bucket", i+1)
	}
	assert.False(t, b.take(time.Now()), "drained bucket should refuse the next take")
}

func TestBucket_Refill(t *testing.T) {
	b := newBucket(10, 1.0, time.Now())
	for i := 0; i < 10; i++ {
		b.take(time.Now())
	}

	time.Sleep(1100 * time.Millisecond) // accrue one token at 1/s

	assert.True(t, b.take(time.Now()))
	assert.False(t, b.take(time.Now()), "only one token accrues in ~1.1s")
}

func TestBucket_Snapshot(t *testing.T) {
	b := newBucket(10, 1.0, time.Now())
	for i := 0; i < 5; i++ {
		b.take(time.Now())
	}

	now := time.Now()
	remaining, fullAt := b.snapshot(now)
	assert.Equal(t, 5, remaining)
	assert.True(t, fullAt.After(now), "a partially drained bucket refills in the future")
}

func TestBucket_RetryIn(t *testing.T) {
	b := newBucket(1, 1.0, time.Now())
	assert.Zero(t, b.retryIn(), "no wait while a token is available")

	b.take(time.Now())
	wait := b.retryIn()
	assert.Greater(t, wait, time.Duration(0))
	assert.LessOrEqual(t, wait, time.Second, "at 1 token/s the next token is at most 1s away")
}

func TestAllow_CountsDownRemaining(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("203.0.113.7", "/assess", "POST")
		require.True(t, allowed, "request %d is inside the budget", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("203.0.113.7", "/assess", "POST")
	require.False(t, allowed, "request 11 exceeds the budget")
	assert.False(t, info.Allowed)
	assert.Zero(t, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.True(t, info.ResetTime.After(time.Now()))
}

func TestAllow_WhitelistedClientBypasses(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.5": true},
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("10.0.0.5", "/assess", "POST")
		require.True(t, allowed, "whitelisted client is never limited")
		assert.Zero(t, info.Limit, "no budget reported for exempt clients")
	}
}

func TestAllow_BlacklistedClientAlwaysDenied(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"198.51.100.9": true},
	})
	defer limiter.Stop()

	allowed, info := limiter.Allow("198.51.100.9", "/assess", "POST")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
}

func TestAllow_DisabledLimiterPassesEverything(t *testing.T) {
	limiter := NewLimiter(&Config{})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("203.0.113.7", "/parse-offer", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestAllow_EndpointBudgetOverridesDefault(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/scripts", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("203.0.113.7", "/scripts", "POST")
		require.True(t, allowed)
		assert.Equal(t, 5, info.Limit)
	}

	allowed, _ := limiter.Allow("203.0.113.7", "/scripts", "POST")
	assert.False(t, allowed, "script generation budget is exhausted")

	// Other endpoints still run on the default budget.
	allowed, info := limiter.Allow("203.0.113.7", "/umk", "GET")
	require.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestAllow_SeparateBucketPerClient(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("203.0.113.7", "/assess", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("203.0.113.7", "/assess", "POST")
	require.False(t, allowed, "first client spent its only token")

	allowed, _ = limiter.Allow("203.0.113.8", "/assess", "POST")
	assert.True(t, allowed, "second client has its own bucket")
}

func TestAllow_ExactBudgetUnderContention(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var allowedCount atomic.Int64

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("203.0.113.7", "/assess", "POST"); allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 100, allowedCount.Load(), "exactly the budget is admitted, no more")
}

func TestAllow_ActiveClientsSurviveJanitor(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   time.Minute,
		CleanupInterval: 50 * time.Millisecond,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow(fmt.Sprintf("10.1.0.%d", i+1), "/assess", "POST")
		require.True(t, allowed)
	}

	time.Sleep(120 * time.Millisecond) // a janitor cycle or two

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow(fmt.Sprintf("10.1.0.%d", i+1), "/assess", "POST")
		assert.True(t, allowed, "fresh buckets are far from the idle cutoff")
	}
}

func TestEvictIdle_DropsUntouchedBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("10.1.0.%d", i+1), "/assess", "POST")
	}

	// A cutoff in the future makes every bucket idle.
	limiter.evictIdle(time.Now().Add(time.Second))

	limiter.mu.Lock()
	remaining := len(limiter.buckets)
	limiter.mu.Unlock()
	assert.Zero(t, remaining)

	allowed, info := limiter.Allow("10.1.0.1", "/assess", "POST")
	require.True(t, allowed, "evicted clients start over with a full bucket")
	assert.Equal(t, 9, info.Remaining)
}

func TestAllow_BurstCapsInitialTokens(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/contributions", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("203.0.113.7", "/contributions", "POST")
		require.True(t, allowed, "burst request %d fits", i+1)
	}

	allowed, _ := limiter.Allow("203.0.113.7", "/contributions", "POST")
	assert.False(t, allowed, "burst is spent and the refill is too slow to matter")
}

func TestNewLimiter_NilConfigUsesDefaults(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("203.0.113.7", "/assess", "POST")
	require.True(t, allowed)
	assert.Equal(t, 300, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs(10)

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int // -1 means no match: the caller falls back to the default budget
	}{
		{"exact write endpoint", "/contributions", "POST", 10},
		{"prefixed admin update", "/umk/bandung", "PUT", 30},
		{"prefixed admin delete", "/umk/jakarta", "DELETE", 30},
		{"assessment budget", "/assess", "POST", 120},
		{"health probe is exempt", "/healthz", "GET", 0},
		{"metrics scrape is exempt", "/metrics", "GET", 0},
		{"unknown path falls through", "/nope", "GET", -1},
		{"method mismatch falls through", "/contributions", "GET", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantLimit < 0 {
				assert.Nil(t, match)
				return
			}
			require.NotNil(t, match)
			assert.Equal(t, tt.wantLimit, match.Limit)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_DEFAULT_LIMIT", "RATE_LIMIT_DEFAULT_WINDOW",
		"RATE_LIMIT_CLEANUP_INTERVAL", "RATE_LIMIT_WHITELIST", "RATE_LIMIT_WRITE_LIMIT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_ParsesOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["10.0.0.1"])
	assert.True(t, cfg.Whitelist["10.0.0.2"])
}

func TestLoadConfig_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "many")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "soon")

	cfg := LoadConfig()
	assert.Equal(t, 300, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
}
