package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultWriteLimit is the per-minute budget for the expensive write
// endpoints when RATE_LIMIT_WRITE_LIMIT is not set.
const defaultWriteLimit = 10

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// EndpointConfig is the budget for one endpoint. A Path ending in "/"
// matches as a prefix so parameterized routes share the budget.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // Requests per window; 0 exempts the endpoint
	Window time.Duration
	Burst  int // Burst capacity, defaults to Limit
}

// LoadConfig reads the RATE_LIMIT_* environment variables. Unparseable
// values fall back to their defaults rather than failing startup.
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", strconv.ParseBool, true) {
		return &Config{}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", strconv.Atoi, 300),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", time.ParseDuration, time.Minute),
		CleanupInterval: envOr("RATE_LIMIT_CLEANUP_INTERVAL", time.ParseDuration, 5*time.Minute),
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(envOr("RATE_LIMIT_WRITE_LIMIT", strconv.Atoi, defaultWriteLimit)),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. writeLimit is the
// per-minute budget for the LLM-backed and crowdsourced write endpoints.
func DefaultEndpointConfigs(writeLimit int) []EndpointConfig {
	if writeLimit <= 0 {
		writeLimit = defaultWriteLimit
	}
	return []EndpointConfig{
		// Tier 1: LLM-backed operations (strictest limits)
		{Path: "/parse-offer", Method: "POST", Limit: writeLimit, Window: time.Minute, Burst: 3},
		{Path: "/scripts", Method: "POST", Limit: writeLimit, Window: time.Minute, Burst: 3},

		// Tier 2: crowdsourced intake
		{Path: "/contributions", Method: "POST", Limit: writeLimit, Window: time.Minute, Burst: 5},

		// Tier 3: admin writes on the statutory rate table
		{Path: "/umk", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/umk/", Method: "PUT", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/umk/", Method: "DELETE", Limit: 30, Window: time.Minute, Burst: 10},

		// Tier 4: assessments are cheap but still bounded
		{Path: "/assess", Method: "POST", Limit: 120, Window: time.Minute, Burst: 30},

		// Reads fall through to the default limit; health and metrics are
		// unlimited via the matcher special case.
	}
}

// envOr parses an environment variable with parse, returning fallback when
// the variable is unset or malformed.
func envOr[T any](key string, parse func(string) (T, error), fallback T) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := parse(raw)
	if err != nil {
		return fallback
	}
	return value
}

// clientSet splits a comma-separated client ID list into a lookup set.
func clientSet(csv string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(csv, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
