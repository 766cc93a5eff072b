// Package types provides type definitions for structured data used throughout the offer-analyzer system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Confidence levels for market statistics, derived from sample size
const (
	ConfidenceHigh    = "high"
	ConfidenceMedium  = "medium"
	ConfidenceLow     = "low"
	ConfidenceVeryLow = "very_low"
)

// Freshness labels for market statistics
const (
	FreshnessRecent    = "recent"
	FreshnessLimited   = "limited"
	FreshnessEstimated = "estimated"
)

// Source labels identifying which query step produced the statistics
const (
	SourceStepOne   = "step1"
	SourceStepTwo   = "step2"
	SourceStepThree = "step3"
	SourceDefault   = "default"
)

// MarketStats holds compensation percentiles and averages for a market
// segment. Percentiles and averages are nil when the underlying aggregate
// produced no value; a nil percentile survives adjustment as nil.
type MarketStats struct {
	P10        *int64 `json:"p10"`
	P25        *int64 `json:"p25"`
	P50        *int64 `json:"p50"`
	P75        *int64 `json:"p75"`
	P90        *int64 `json:"p90"`
	SampleSize int    `json:"sample_size"`
	AvgBase    *int64 `json:"avg_base_salary"`
	AvgBonus   *int64 `json:"avg_bonus"`
	AvgEquity  *int64 `json:"avg_equity"`
	Confidence string `json:"confidence"`
	Freshness  string `json:"data_freshness"`
	Source     string `json:"source"`
}

// MarketSample is one compensation datapoint in the market dataset, keyed by
// the normalized role and location tier it was filed under.
type MarketSample struct {
	ID              uuid.UUID `json:"id"`
	RoleKey         string    `json:"role_key"`
	Tier            string    `json:"tier"`
	YearsExperience int       `json:"years_experience"`
	BaseSalary      int64     `json:"base_salary"`
	Bonus           int64     `json:"bonus"`
	Equity          int64     `json:"equity"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"created_at"`
}
