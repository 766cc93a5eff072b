package compliance

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/offer-analyzer/internal/types"
)

// monthsPerYear converts monthly statutory amounts to annual for comparison
const monthsPerYear = 12

// significantMarginPct is the percentage above minimum past which
// compliance risk is considered fully cleared.
const significantMarginPct = 50

// Check compares a monthly base salary against a statutory minimum wage
// record. A nil record yields an indeterminate result that complies by
// benefit of the doubt, with nil numeric fields. Division by zero is
// guarded: a non-positive minimum reports 0% above.
func Check(monthlyBase int64, rate *types.UMKRate) types.ComplianceResult {
	if rate == nil {
		return types.ComplianceResult{
			Complies: true,
			Message:  "UMK data not available for this location",
		}
	}

	annualBase := monthlyBase * monthsPerYear
	annualMin := rate.MonthlyWage * monthsPerYear

	var pct float64
	if annualMin > 0 {
		pct = round1(float64(annualBase-annualMin) / float64(annualMin) * 100)
	}

	monthly := rate.MonthlyWage
	result := types.ComplianceResult{
		Complies:        annualBase >= annualMin,
		Region:          rate.Region,
		MonthlyMinimum:  &monthly,
		AnnualMinimum:   &annualMin,
		PercentageAbove: &pct,
	}

	switch {
	case !result.Complies:
		result.RiskLevel = types.RiskHigh
		result.Message = fmt.Sprintf("WARNING: Offer is %.1f%% below UMK!", math.Abs(pct))
	case pct < 20:
		result.RiskLevel = types.RiskLow
		result.Message = fmt.Sprintf("Meets UMK requirement (%.1f%% above minimum)", pct)
	case pct < significantMarginPct:
		result.RiskLevel = types.RiskLow
		result.Message = fmt.Sprintf("Above UMK requirement (%.1f%% above minimum)", pct)
	default:
		result.RiskLevel = types.RiskNone
		result.Message = fmt.Sprintf("Significantly above UMK requirement (%.1f%% above minimum)", pct)
	}

	return result
}

// FormatRupiah renders an amount in Indonesian Rupiah convention with dots
// as thousand separators, e.g. "Rp 5.067.823". Negative amounts keep the
// sign ahead of the currency marker.
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	formatted := "Rp " + strings.Join(groups, ".")
	if neg {
		return "-" + formatted
	}
	return formatted
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
