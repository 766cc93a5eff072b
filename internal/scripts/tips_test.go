package scripts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/offer-analyzer/internal/types"
)

func tipTitles(tips []types.NegotiationTip) []string {
	titles := make([]string, len(tips))
	for i, tip := range tips {
		titles[i] = tip.Title
	}
	return titles
}

func TestTips_CoreAdviceAlwaysPresent(t *testing.T) {
	result := assessment()
	result.Verdict = types.VerdictFair
	result.LeveragePoints = nil

	tips := Tips(result)
	require.Len(t, tips, 6)

	titles := tipTitles(tips)
	assert.Equal(t, []string{
		"Do Your Research",
		"Be Specific",
		"Stay Positive",
		"Consider Total Package",
		"Timing Matters",
		"Have a Walkaway Point",
	}, titles)

	assert.Contains(t, tips[1].Description, "$130,000",
		"the specific ask should be the realistic target")
}

func TestTips_LeverageEarnsExtraAdvice(t *testing.T) {
	result := assessment()
	result.Verdict = types.VerdictFair
	result.LeveragePoints = []types.LeveragePoint{
		{Kind: types.LeverageMarketRate, Strength: types.StrengthStrong},
		{Kind: types.LeverageCompetition, Strength: types.StrengthStrong},
		{Kind: types.LeverageExperience, Strength: types.StrengthMedium},
	}

	titles := tipTitles(Tips(result))
	assert.Contains(t, titles, "Leverage Market Data")
	assert.Contains(t, titles, "Use Competing Offers")
	assert.Len(t, titles, 8, "experience leverage has no dedicated tip")
}

func TestTips_VerdictSpecificAdvice(t *testing.T) {
	result := assessment()
	result.LeveragePoints = nil

	result.Verdict = types.VerdictSignificantlyUnderpaid
	assert.Contains(t, tipTitles(Tips(result)), "Strong Negotiation Position")

	result.Verdict = types.VerdictUnderpaid
	assert.Contains(t, tipTitles(Tips(result)), "Strong Negotiation Position")

	result.Verdict = types.VerdictExcellent
	titles := tipTitles(Tips(result))
	assert.Contains(t, titles, "Great Offer")
	assert.NotContains(t, titles, "Strong Negotiation Position")

	result.Verdict = types.VerdictFair
	assert.Len(t, tipTitles(Tips(result)), 6)
}

func TestTalkingPoints_FullAssessment(t *testing.T) {
	points := TalkingPoints(assessment())

	require.Len(t, points, 6)
	assert.Equal(t, "Market median for this role is $120,000", points[0])
	assert.Equal(t, "Top 25% of the market earns $135,000", points[1])
	assert.Equal(t, "6 years of relevant experience", points[2])
	assert.Equal(t, "Expertise in in-demand technologies: Go, React", points[3])
	assert.Equal(t, "Market median base salary is $20,000 higher", points[4])
	assert.Equal(t, "Current offer is below market rates", points[5])
}

func TestTalkingPoints_SignificantlyUnderpaidAlsoFlagged(t *testing.T) {
	result := assessment()
	result.Verdict = types.VerdictSignificantlyUnderpaid

	points := TalkingPoints(result)
	assert.Contains(t, points, "Current offer is below market rates")
}

func TestTalkingPoints_SparseAssessment(t *testing.T) {
	result := assessment()
	result.Market = types.MarketStats{}
	result.Offer.YearsExperience = 2
	result.Offer.TechStack = nil
	result.LeveragePoints = nil
	result.Verdict = types.VerdictFair

	assert.Empty(t, TalkingPoints(result))
}

func TestTalkingPoints_WeakLeverageExcluded(t *testing.T) {
	result := assessment()
	result.LeveragePoints = []types.LeveragePoint{
		{Kind: types.LeverageMissingBonus, Description: "No bonus offered", Strength: types.StrengthWeak},
	}

	points := TalkingPoints(result)
	assert.NotContains(t, points, "No bonus offered")
}

func TestTalkingPoints_StackCitesFirstThree(t *testing.T) {
	result := assessment()
	result.Offer.TechStack = []string{"Go", "React", "Kubernetes", "Terraform", "AWS"}

	points := TalkingPoints(result)
	assert.Contains(t, points, "Expertise in in-demand technologies: Go, React, Kubernetes")
}
