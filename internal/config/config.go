// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// defaultPort is used when neither the config file, the environment, nor the
// flags name a listen port.
const defaultPort = 8080

// Config represents settings shared by the CLI and the server. All fields
// are optional; missing values fall back to environment variables and
// built-in defaults.
type Config struct {
	// Service
	Port      int    `json:"port,omitempty"`       // HTTP listen port
	RedisAddr string `json:"redis_addr,omitempty"` // Redis address for assessment caching (host:port or redis:// URL)

	// Backends
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key

	// Tuning
	MinSamples         int  `json:"min_samples,omitempty"`           // Sample floor before a narrowed market query is accepted
	RateLimitPerMinute int  `json:"rate_limit_per_minute,omitempty"` // Per-IP request budget on write endpoints
	Verbose            bool `json:"verbose,omitempty"`               // Print detailed debug information
}

// LoadConfig reads a JSON config file. The path may be relative to the
// working directory.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", abs, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unparseable numeric
// values are ignored rather than failing startup.
func FromEnv() Config {
	return Config{
		Port:               intEnv("PORT"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		APIKey:             os.Getenv("GEMINI_API_KEY"),
		MinSamples:         intEnv("MIN_SAMPLES"),
		RateLimitPerMinute: intEnv("RATE_LIMIT_PER_MINUTE"),
	}
}

// Validate rejects out-of-range values. Required fields are not checked
// here; each command decides what it needs after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MinSamples < 0 {
		return fmt.Errorf("config error: 'min_samples' must be non-negative")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config error: 'rate_limit_per_minute' must be non-negative")
	}
	return nil
}

// MergeWithDefaults fills zero-valued fields from defaults, so environment
// values back config file settings and config file values back CLI flags.
// Verbose never merges; a bool cannot distinguish unset from false, and the
// flag wins.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	merged := Config{
		Port:               coalesce(c.Port, defaults.Port),
		RedisAddr:          coalesce(c.RedisAddr, defaults.RedisAddr),
		DatabaseURL:        coalesce(c.DatabaseURL, defaults.DatabaseURL),
		APIKey:             coalesce(c.APIKey, defaults.APIKey),
		MinSamples:         coalesce(c.MinSamples, defaults.MinSamples),
		RateLimitPerMinute: coalesce(c.RateLimitPerMinute, defaults.RateLimitPerMinute),
		Verbose:            c.Verbose,
	}
	if merged.Port == 0 {
		merged.Port = defaultPort
	}
	return merged
}

func coalesce[T comparable](value, fallback T) T {
	var zero T
	if value != zero {
		return value
	}
	return fallback
}

func intEnv(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return n
}
