package verdict

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/offer-analyzer/internal/types"
)

// Target factors relative to current total compensation
const (
	conservativeFloorFactor = 1.05
	missingP75Factor        = 1.10
	missingP90Factor        = 1.20
)

// bonusLeverageFloor is the base salary above which a missing bonus is
// worth raising.
const bonusLeverageFloor = 80000

// hotTechnologies is the fixed list of technologies that strengthen a
// negotiating position. Matching is exact (case-insensitive) and the list
// order determines which matches the description cites.
var hotTechnologies = []string{
	"rust", "golang", "kubernetes", "ai", "ml", "blockchain",
	"tensorflow", "pytorch", "aws", "azure", "gcp",
}

// Room calculates the three negotiation targets. With zero current
// compensation every target is zero (no meaningful percentage exists).
// Missing or zero market percentiles fall back to fixed factors over the
// current compensation. Percentages are computed on the unrounded targets
// and reported to one decimal.
func Room(totalComp int64, market types.MarketStats) types.NegotiationRoom {
	if totalComp == 0 {
		return types.NegotiationRoom{}
	}

	comp := float64(totalComp)

	p75 := float64(deref(market.P75))
	if p75 == 0 {
		p75 = comp * missingP75Factor
	}
	p90 := float64(deref(market.P90))
	if p90 == 0 {
		p90 = comp * missingP90Factor
	}

	conservative := math.Max(comp*conservativeFloorFactor, p75)
	aggressive := p90
	realistic := (conservative + aggressive) / 2

	return types.NegotiationRoom{
		Conservative:    int64(conservative),
		Realistic:       int64(realistic),
		Aggressive:      int64(aggressive),
		ConservativePct: pctIncrease(conservative, comp),
		RealisticPct:    pctIncrease(realistic, comp),
		AggressivePct:   pctIncrease(aggressive, comp),
	}
}

// Leverage derives negotiation arguments from the offer and market data.
// The emission order is fixed; points whose condition does not hold are
// omitted entirely.
func Leverage(offer types.Offer, market types.MarketStats) []types.LeveragePoint {
	var points []types.LeveragePoint

	if p50 := deref(market.P50); p50 > offer.BaseSalary {
		points = append(points, types.LeveragePoint{
			Kind:        types.LeverageMarketRate,
			Description: fmt.Sprintf("Market median base salary is $%s higher", formatComma(p50-offer.BaseSalary)),
			Strength:    types.StrengthStrong,
		})
	}

	if matches := matchHotTech(offer.TechStack); len(matches) > 0 {
		strength := types.StrengthMedium
		if len(matches) >= 3 {
			strength = types.StrengthStrong
		}
		cited := matches
		if len(cited) > 3 {
			cited = cited[:3]
		}
		points = append(points, types.LeveragePoint{
			Kind:        types.LeverageTechPremium,
			Description: "Specialized in high-demand technologies: " + strings.Join(cited, ", "),
			Strength:    strength,
		})
	}

	switch {
	case offer.YearsExperience >= 10:
		points = append(points, types.LeveragePoint{
			Kind:        types.LeverageExperience,
			Description: fmt.Sprintf("%d+ years of extensive experience", offer.YearsExperience),
			Strength:    types.StrengthStrong,
		})
	case offer.YearsExperience >= 5:
		points = append(points, types.LeveragePoint{
			Kind:        types.LeverageExperience,
			Description: fmt.Sprintf("%d+ years of solid experience", offer.YearsExperience),
			Strength:    types.StrengthMedium,
		})
	}

	if offer.Equity == 0 && offer.Company != "" {
		points = append(points, types.LeveragePoint{
			Kind:        types.LeverageMissingEquity,
			Description: "No equity component in current offer",
			Strength:    types.StrengthMedium,
		})
	}

	if offer.Bonus == 0 && offer.BaseSalary > bonusLeverageFloor {
		points = append(points, types.LeveragePoint{
			Kind:        types.LeverageMissingBonus,
			Description: "No performance bonus structure",
			Strength:    types.StrengthWeak,
		})
	}

	if offer.HasCompetingOffers {
		points = append(points, types.LeveragePoint{
			Kind:        types.LeverageCompetition,
			Description: "Multiple offers in hand provides leverage",
			Strength:    types.StrengthStrong,
		})
	}

	return points
}

// Recommendations derives prioritized next actions from the assessment.
func Recommendations(offer types.Offer, market types.MarketStats, v types.Verdict) []types.Recommendation {
	var recs []types.Recommendation

	if v == types.VerdictSignificantlyUnderpaid || v == types.VerdictUnderpaid {
		recs = append(recs, types.Recommendation{
			Priority:    types.PriorityHigh,
			Action:      "negotiate_base",
			Description: "Base salary is below market rates - negotiate for market alignment",
			Target:      market.P75,
		})
	}

	if offer.Equity == 0 {
		recs = append(recs, types.Recommendation{
			Priority:    types.PriorityMedium,
			Action:      "clarify_equity",
			Description: "Request equity grant details and valuation",
		})
	}

	if offer.Bonus == 0 && offer.BaseSalary > 75000 {
		target := int64(float64(offer.BaseSalary) * 0.15)
		recs = append(recs, types.Recommendation{
			Priority:    types.PriorityMedium,
			Action:      "negotiate_bonus",
			Description: "Negotiate performance bonus or sign-on bonus",
			Target:      &target,
		})
	}

	if len(offer.Benefits) == 0 {
		recs = append(recs, types.Recommendation{
			Priority:    types.PriorityLow,
			Action:      "review_benefits",
			Description: "Review and negotiate comprehensive benefits package",
		})
	}

	recs = append(recs, types.Recommendation{
		Priority:    types.PriorityLow,
		Action:      "continue_research",
		Description: "Continue researching market rates and company culture",
	})

	return recs
}

// matchHotTech returns the hot technologies present in the stack, in hot
// list order. Matching is exact after lowercasing.
func matchHotTech(techStack []string) []string {
	if len(techStack) == 0 {
		return nil
	}

	have := make(map[string]bool, len(techStack))
	for _, tech := range techStack {
		have[strings.ToLower(strings.TrimSpace(tech))] = true
	}

	var matches []string
	for _, hot := range hotTechnologies {
		if have[hot] {
			matches = append(matches, hot)
		}
	}
	return matches
}

// pctIncrease is the percentage increase of target over current, rounded
// to one decimal.
func pctIncrease(target, current float64) float64 {
	return math.Round((target/current-1)*100*10) / 10
}

// formatComma renders an amount with comma thousand separators.
func formatComma(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, ",")
	if neg {
		return "-" + out
	}
	return out
}
