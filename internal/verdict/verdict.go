// Package verdict turns market statistics, compliance status, and offer
// compensation into a categorical verdict, negotiation targets, leverage
// points, and recommendations.
package verdict

import (
	"github.com/jonathan/offer-analyzer/internal/types"
)

// Absolute thresholds used when no market median exists at all
const (
	absSignificantlyUnderpaid = 70000
	absUnderpaid              = 90000
	absFair                   = 120000
	absCompetitive            = 150000
)

// Decide classifies total compensation against market percentiles. A
// non-compliant minimum-wage result forces below_minimum regardless of how
// the offer compares to the market. With no median (p50 absent or zero)
// the fixed absolute ladder applies instead of percentiles; absent interior
// percentiles are treated as zero, which skips their rung.
func Decide(totalComp int64, market types.MarketStats, compliant bool) types.Verdict {
	if !compliant {
		return types.VerdictBelowMinimum
	}

	p25 := deref(market.P25)
	p50 := deref(market.P50)
	p75 := deref(market.P75)
	p90 := deref(market.P90)

	if p50 == 0 {
		switch {
		case totalComp < absSignificantlyUnderpaid:
			return types.VerdictSignificantlyUnderpaid
		case totalComp < absUnderpaid:
			return types.VerdictUnderpaid
		case totalComp < absFair:
			return types.VerdictFair
		case totalComp < absCompetitive:
			return types.VerdictCompetitive
		default:
			return types.VerdictExcellent
		}
	}

	switch {
	case totalComp < p25:
		return types.VerdictSignificantlyUnderpaid
	case totalComp < p50:
		return types.VerdictUnderpaid
	case totalComp < p75:
		return types.VerdictFair
	case totalComp < p90:
		return types.VerdictCompetitive
	default:
		return types.VerdictExcellent
	}
}

func deref(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
