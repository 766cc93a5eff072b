package scripts

import (
	"fmt"
	"strings"

	"github.com/jonathan/offer-analyzer/internal/types"
)

// Tips assembles negotiation advice for an assessment: a static core list
// plus entries earned by specific leverage points and verdicts.
func Tips(result *types.AssessmentResult) []types.NegotiationTip {
	tips := []types.NegotiationTip{
		{
			Title:       "Do Your Research",
			Description: "Have specific market data ready to justify your request.",
		},
		{
			Title:       "Be Specific",
			Description: fmt.Sprintf("Ask for a specific number ($%s) rather than a range.", formatComma(result.NegotiationRoom.Realistic)),
		},
		{
			Title:       "Stay Positive",
			Description: "Express genuine enthusiasm while negotiating - companies want to hire people who want to be there.",
		},
		{
			Title:       "Consider Total Package",
			Description: "If base salary is inflexible, negotiate bonus, equity, sign-on bonus, or benefits.",
		},
		{
			Title:       "Timing Matters",
			Description: "Negotiate within 24-48 hours of receiving the offer while maintaining momentum.",
		},
		{
			Title:       "Have a Walkaway Point",
			Description: "Know your minimum acceptable salary before entering negotiations.",
		},
	}

	for _, leverage := range result.LeveragePoints {
		switch leverage.Kind {
		case types.LeverageMarketRate:
			tips = append(tips, types.NegotiationTip{
				Title:       "Leverage Market Data",
				Description: "Your offer is below market rates - use specific market percentiles to justify your ask.",
			})
		case types.LeverageCompetition:
			tips = append(tips, types.NegotiationTip{
				Title:       "Use Competing Offers",
				Description: "Mention other offers strategically to create urgency and demonstrate value.",
			})
		}
	}

	switch result.Verdict {
	case types.VerdictSignificantlyUnderpaid, types.VerdictUnderpaid:
		tips = append(tips, types.NegotiationTip{
			Title:       "Strong Negotiation Position",
			Description: "Your offer is significantly below market - you have strong grounds for negotiation.",
		})
	case types.VerdictExcellent:
		tips = append(tips, types.NegotiationTip{
			Title:       "Great Offer",
			Description: "This is already an excellent offer - consider small adjustments or focus on non-salary benefits.",
		})
	}

	return tips
}

// TalkingPoints distills the assessment into short lines for a live
// conversation rather than an email.
func TalkingPoints(result *types.AssessmentResult) []string {
	var points []string

	if p50 := orZero(result.Market.P50); p50 > 0 {
		points = append(points, fmt.Sprintf("Market median for this role is $%s", formatComma(p50)))
	}
	if p75 := orZero(result.Market.P75); p75 > 0 {
		points = append(points, fmt.Sprintf("Top 25%% of the market earns $%s", formatComma(p75)))
	}

	if years := result.Offer.YearsExperience; years >= 5 {
		points = append(points, fmt.Sprintf("%d years of relevant experience", years))
	}

	if stack := result.Offer.TechStack; len(stack) > 0 {
		head := stack
		if len(head) > 3 {
			head = head[:3]
		}
		points = append(points, "Expertise in in-demand technologies: "+strings.Join(head, ", "))
	}

	for _, leverage := range result.LeveragePoints {
		if leverage.Strength == types.StrengthStrong || leverage.Strength == types.StrengthMedium {
			points = append(points, leverage.Description)
		}
	}

	if strings.Contains(string(result.Verdict), "underpaid") {
		points = append(points, "Current offer is below market rates")
	}

	return points
}
