// Package market resolves compensation statistics for a normalized offer by
// querying a sample store with progressively broader criteria, then applying
// cost-of-living and skill-premium adjustments.
package market

import (
	"time"

	"github.com/jonathan/offer-analyzer/internal/types"
)

// StatsQuery describes one aggregation request against the sample store.
// Zero-valued filters are omitted from the query: an empty TitleCode or Tier
// means "any", nil experience bounds mean "any experience".
type StatsQuery struct {
	TitleCode     string
	Tier          string
	MinExperience *int
	MaxExperience *int
	VerifiedOnly  bool
	Since         time.Time
}

// StatsRow is the raw aggregate a store returns for one query. Percentiles
// and averages are nil when the matched set was empty.
type StatsRow struct {
	P10        *int64
	P25        *int64
	P50        *int64
	P75        *int64
	P90        *int64
	SampleSize int
	AvgBase    *int64
	AvgBonus   *int64
	AvgEquity  *int64
}

// defaultSnapshot is returned when the store fails or is absent. The values
// are deliberately conservative mid-market figures.
func defaultSnapshot() StatsRow {
	return StatsRow{
		P10:        ptr(60000),
		P25:        ptr(75000),
		P50:        ptr(95000),
		P75:        ptr(120000),
		P90:        ptr(150000),
		SampleSize: 0,
		AvgBase:    ptr(95000),
		AvgBonus:   ptr(10000),
		AvgEquity:  ptr(5000),
	}
}

// finalize applies the combined adjustment multiplier to a row and labels
// the result. Every percentile and average is scaled and truncated toward
// zero; nil values stay nil. Confidence derives from the final sample size;
// freshness depends on whether any samples matched, except the hard-failure
// default which is always labeled "estimated".
func finalize(row StatsRow, multiplier float64, source string) types.MarketStats {
	stats := types.MarketStats{
		P10:        scale(row.P10, multiplier),
		P25:        scale(row.P25, multiplier),
		P50:        scale(row.P50, multiplier),
		P75:        scale(row.P75, multiplier),
		P90:        scale(row.P90, multiplier),
		SampleSize: row.SampleSize,
		AvgBase:    scale(row.AvgBase, multiplier),
		AvgBonus:   scale(row.AvgBonus, multiplier),
		AvgEquity:  scale(row.AvgEquity, multiplier),
		Confidence: confidenceFor(row.SampleSize),
		Source:     source,
	}

	switch {
	case source == types.SourceDefault:
		stats.Freshness = types.FreshnessEstimated
	case row.SampleSize > 0:
		stats.Freshness = types.FreshnessRecent
	default:
		stats.Freshness = types.FreshnessLimited
	}

	return stats
}

// confidenceFor buckets a sample size into a confidence label.
func confidenceFor(sampleSize int) string {
	switch {
	case sampleSize >= 100:
		return types.ConfidenceHigh
	case sampleSize >= 30:
		return types.ConfidenceMedium
	case sampleSize >= 10:
		return types.ConfidenceLow
	default:
		return types.ConfidenceVeryLow
	}
}

// scale multiplies a nullable value by the adjustment multiplier,
// truncating toward zero. Nil stays nil, never coerced to 0.
func scale(v *int64, multiplier float64) *int64 {
	if v == nil {
		return nil
	}
	scaled := int64(float64(*v) * multiplier)
	return &scaled
}

func ptr(v int64) *int64 {
	return &v
}
