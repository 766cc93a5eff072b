package verdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/offer-analyzer/internal/types"
)

func TestRoom_TargetsFromPercentiles(t *testing.T) {
	p75, p90 := int64(120000), int64(150000)
	market := types.MarketStats{P75: &p75, P90: &p90}

	room := Room(100000, market)

	assert.Equal(t, int64(120000), room.Conservative)
	assert.Equal(t, int64(135000), room.Realistic)
	assert.Equal(t, int64(150000), room.Aggressive)
	assert.Equal(t, 20.0, room.ConservativePct)
	assert.Equal(t, 35.0, room.RealisticPct)
	assert.Equal(t, 50.0, room.AggressivePct)
}

func TestRoom_ConservativeFloorWhenAlreadyAboveP75(t *testing.T) {
	p75, p90 := int64(100000), int64(200000)
	market := types.MarketStats{P75: &p75, P90: &p90}

	// comp*1.05 beats a p75 the offer already clears.
	room := Room(160000, market)

	assert.Equal(t, int64(168000), room.Conservative)
	assert.Equal(t, int64(200000), room.Aggressive)
	assert.Equal(t, int64(184000), room.Realistic)
	assert.Equal(t, 5.0, room.ConservativePct)
}

func TestRoom_MissingPercentilesFallBackToFactors(t *testing.T) {
	room := Room(100000, types.MarketStats{})

	// p75 -> comp*1.10, p90 -> comp*1.20; conservative is the larger of
	// comp*1.05 and the synthetic p75.
	assert.Equal(t, int64(110000), room.Conservative)
	assert.Equal(t, int64(115000), room.Realistic)
	assert.Equal(t, int64(120000), room.Aggressive)
	assert.Equal(t, 10.0, room.ConservativePct)
	assert.Equal(t, 15.0, room.RealisticPct)
	assert.Equal(t, 20.0, room.AggressivePct)
}

func TestRoom_ZeroPercentilesTreatedAsMissing(t *testing.T) {
	zero := int64(0)
	market := types.MarketStats{P75: &zero, P90: &zero}

	assert.Equal(t, Room(100000, types.MarketStats{}), Room(100000, market))
}

func TestRoom_ZeroCompensation(t *testing.T) {
	assert.Equal(t, types.NegotiationRoom{}, Room(0, marketWith(80000, 100000, 130000, 160000)))
}

func TestLeverage_AllPointsInOrder(t *testing.T) {
	p50 := int64(115000)
	market := types.MarketStats{P50: &p50}
	offer := types.Offer{
		JobTitle:           "Senior Software Engineer",
		Company:            "Acme Corp",
		Location:           "Jakarta",
		BaseSalary:         100000,
		Bonus:              0,
		Equity:             0,
		YearsExperience:    12,
		TechStack:          []string{"Rust", "Kubernetes", "AWS"},
		HasCompetingOffers: true,
	}

	points := Leverage(offer, market)

	require.Len(t, points, 6)
	assert.Equal(t, types.LeverageMarketRate, points[0].Kind)
	assert.Equal(t, "Market median base salary is $15,000 higher", points[0].Description)
	assert.Equal(t, types.StrengthStrong, points[0].Strength)

	assert.Equal(t, types.LeverageTechPremium, points[1].Kind)
	assert.Equal(t, "Specialized in high-demand technologies: rust, kubernetes, aws", points[1].Description)
	assert.Equal(t, types.StrengthStrong, points[1].Strength)

	assert.Equal(t, types.LeverageExperience, points[2].Kind)
	assert.Equal(t, "12+ years of extensive experience", points[2].Description)
	assert.Equal(t, types.StrengthStrong, points[2].Strength)

	assert.Equal(t, types.LeverageMissingEquity, points[3].Kind)
	assert.Equal(t, "No equity component in current offer", points[3].Description)
	assert.Equal(t, types.StrengthMedium, points[3].Strength)

	assert.Equal(t, types.LeverageMissingBonus, points[4].Kind)
	assert.Equal(t, "No performance bonus structure", points[4].Description)
	assert.Equal(t, types.StrengthWeak, points[4].Strength)

	assert.Equal(t, types.LeverageCompetition, points[5].Kind)
	assert.Equal(t, "Multiple offers in hand provides leverage", points[5].Description)
	assert.Equal(t, types.StrengthStrong, points[5].Strength)
}

func TestLeverage_ConditionsGateEachPoint(t *testing.T) {
	p50 := int64(90000)
	market := types.MarketStats{P50: &p50}
	offer := types.Offer{
		JobTitle:        "Software Engineer",
		BaseSalary:      95000,
		Bonus:           10000,
		Equity:          5000,
		YearsExperience: 3,
		TechStack:       []string{"Django"},
	}

	// Base above median, equity and bonus present, junior, no company name,
	// no hot tech, no competing offers.
	assert.Empty(t, Leverage(offer, market))
}

func TestLeverage_TechStrengthScalesWithMatches(t *testing.T) {
	offer := types.Offer{BaseSalary: 50000, TechStack: []string{"golang", "react"}}

	points := Leverage(offer, types.MarketStats{})
	require.Len(t, points, 1)
	assert.Equal(t, types.LeverageTechPremium, points[0].Kind)
	assert.Equal(t, types.StrengthMedium, points[0].Strength)
	assert.Equal(t, "Specialized in high-demand technologies: golang", points[0].Description)
}

func TestLeverage_TechCitesThreeInListOrder(t *testing.T) {
	offer := types.Offer{
		BaseSalary: 50000,
		TechStack:  []string{"pytorch", "azure", "ml", "golang", "blockchain"},
	}

	points := Leverage(offer, types.MarketStats{})
	require.Len(t, points, 1)
	assert.Equal(t, types.StrengthStrong, points[0].Strength)
	// Hot list order, not input order, capped at three.
	assert.Equal(t, "Specialized in high-demand technologies: golang, ml, blockchain", points[0].Description)
}

func TestLeverage_SolidExperienceBand(t *testing.T) {
	offer := types.Offer{BaseSalary: 50000, Bonus: 1, Equity: 1, YearsExperience: 7}

	points := Leverage(offer, types.MarketStats{})
	require.Len(t, points, 1)
	assert.Equal(t, types.LeverageExperience, points[0].Kind)
	assert.Equal(t, "7+ years of solid experience", points[0].Description)
	assert.Equal(t, types.StrengthMedium, points[0].Strength)
}

func TestLeverage_MissingEquityRequiresCompany(t *testing.T) {
	offer := types.Offer{BaseSalary: 50000, Bonus: 1, Equity: 0}

	assert.Empty(t, Leverage(offer, types.MarketStats{}))

	offer.Company = "Acme"
	points := Leverage(offer, types.MarketStats{})
	require.Len(t, points, 1)
	assert.Equal(t, types.LeverageMissingEquity, points[0].Kind)
}

func TestRecommendations_UnderpaidTargetsP75(t *testing.T) {
	p75 := int64(130000)
	market := types.MarketStats{P75: &p75}
	offer := types.Offer{BaseSalary: 70000, Bonus: 1, Equity: 1, Benefits: []string{"health"}}

	recs := Recommendations(offer, market, types.VerdictUnderpaid)

	require.Len(t, recs, 2)
	assert.Equal(t, types.PriorityHigh, recs[0].Priority)
	assert.Equal(t, "negotiate_base", recs[0].Action)
	require.NotNil(t, recs[0].Target)
	assert.Equal(t, int64(130000), *recs[0].Target)

	assert.Equal(t, "continue_research", recs[1].Action)
	assert.Equal(t, types.PriorityLow, recs[1].Priority)
}

func TestRecommendations_FullSet(t *testing.T) {
	offer := types.Offer{BaseSalary: 90000, Bonus: 0, Equity: 0}

	recs := Recommendations(offer, types.MarketStats{}, types.VerdictSignificantlyUnderpaid)

	require.Len(t, recs, 5)
	assert.Equal(t, "negotiate_base", recs[0].Action)
	assert.Nil(t, recs[0].Target) // no p75 available
	assert.Equal(t, "clarify_equity", recs[1].Action)
	assert.Equal(t, "negotiate_bonus", recs[2].Action)
	require.NotNil(t, recs[2].Target)
	assert.Equal(t, int64(13500), *recs[2].Target) // 15% of base
	assert.Equal(t, "review_benefits", recs[3].Action)
	assert.Equal(t, "continue_research", recs[4].Action)
}

func TestRecommendations_FairOfferStillGetsResearch(t *testing.T) {
	offer := types.Offer{BaseSalary: 100000, Bonus: 10000, Equity: 20000, Benefits: []string{"health"}}

	recs := Recommendations(offer, types.MarketStats{}, types.VerdictFair)

	require.Len(t, recs, 1)
	assert.Equal(t, "continue_research", recs[0].Action)
}

func TestFormatComma(t *testing.T) {
	assert.Equal(t, "0", formatComma(0))
	assert.Equal(t, "950", formatComma(950))
	assert.Equal(t, "15,000", formatComma(15000))
	assert.Equal(t, "1,234,567", formatComma(1234567))
	assert.Equal(t, "-15,000", formatComma(-15000))
}
