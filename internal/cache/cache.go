// Package cache memoizes assessment results in Redis so repeated
// evaluations of the same offer skip the market round-trip. Every operation
// degrades to a miss or a no-op on failure: the engine never depends on the
// cache being reachable.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/offer-analyzer/internal/types"
)

const defaultTTL = 15 * time.Minute

// Cache stores serialized assessment results keyed by offer content hash.
// A nil *Cache is valid and behaves as an always-miss cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the default 15 minute entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger attaches a logger for cache diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New wraps an existing Redis client.
func New(client *redis.Client, opts ...Option) *Cache {
	c := &Cache{client: client, ttl: defaultTTL, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect dials Redis at addr (host:port or a redis:// URL) and verifies
// connectivity before handing back a client.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	var client *redis.Client
	if strings.Contains(addr, "://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{Addr: addr})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Key derives the cache key for an offer from a hash of its serialized
// content. Offers that differ in any field hash to different keys.
func Key(offer *types.Offer) string {
	payload, err := json.Marshal(offer)
	if err != nil {
		// Offer contains only marshalable fields; this cannot happen.
		return ""
	}
	sum := sha256.Sum256(payload)
	return "assessment:" + hex.EncodeToString(sum[:])
}

// GetAssessment returns the cached result for key, or nil on a miss. Redis
// errors and decode failures count as misses.
func (c *Cache) GetAssessment(ctx context.Context, key string) *types.AssessmentResult {
	if c == nil || c.client == nil || key == "" {
		return nil
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var result types.AssessmentResult
	if err := json.Unmarshal(payload, &result); err != nil {
		c.logger.Debug("cache entry corrupt, treating as miss", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &result
}

// PutAssessment stores a result under key for the configured TTL. Failures
// are logged and dropped.
func (c *Cache) PutAssessment(ctx context.Context, key string, result *types.AssessmentResult) {
	if c == nil || c.client == nil || key == "" || result == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		c.logger.Debug("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
