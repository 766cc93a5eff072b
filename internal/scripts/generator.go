// Package scripts turns an assessment into negotiation email drafts, tips,
// and talking points. Email drafting uses the LLM; tips and talking points
// are deterministic, and LLM failures degrade to deterministic templates so
// the caller always gets a complete bundle.
package scripts

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/offer-analyzer/internal/llm"
	"github.com/jonathan/offer-analyzer/internal/prompts"
	"github.com/jonathan/offer-analyzer/internal/types"
)

// Defaults for offer fields the caller left blank.
const (
	defaultPosition = "Senior Software Engineer"
	defaultCompany  = "the company"
	defaultLocation = "this location"
)

// Generator produces negotiation scripts for an assessed offer.
type Generator struct {
	client llm.Client
	logger *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used to report generation degradations.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator creates a Generator. A nil client is allowed and yields
// deterministic template scripts only.
func NewGenerator(client llm.Client, opts ...Option) *Generator {
	g := &Generator{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces the three negotiation emails plus tips and talking
// points for an assessment. API failures and malformed responses fall back
// to the deterministic templates rather than returning an error; the only
// error is a missing assessment.
func (g *Generator) Generate(ctx context.Context, result *types.AssessmentResult) (*types.ScriptBundle, error) {
	if result == nil {
		return nil, fmt.Errorf("assessment result is required")
	}

	bundle := &types.ScriptBundle{
		Tips:          Tips(result),
		TalkingPoints: TalkingPoints(result),
	}
	fallback := fallbackEmails(result)

	if g.client == nil {
		g.logger.Debug("no LLM client configured, using template scripts")
		bundle.Assertive = fallback.assertive
		bundle.Balanced = fallback.balanced
		bundle.Humble = fallback.humble
		return bundle, nil
	}

	prompt := buildPrompt(result)

	responseText, err := g.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		g.logger.Warn("script generation failed, using template scripts", zap.Error(err))
		bundle.Assertive = fallback.assertive
		bundle.Balanced = fallback.balanced
		bundle.Humble = fallback.humble
		return bundle, nil
	}

	// Any tone the model failed to produce is filled from the rendered
	// deterministic template so the bundle is always complete.
	emails := splitTemplates(responseText)
	if len(emails) < 3 {
		g.logger.Warn("model response missing script sections",
			zap.Int("sections", len(emails)))
	}
	bundle.Assertive = orDefault(emails[types.ToneAssertive], fallback.assertive)
	bundle.Balanced = orDefault(emails[types.ToneBalanced], fallback.balanced)
	bundle.Humble = orDefault(emails[types.ToneHumble], fallback.humble)

	return bundle, nil
}

// buildPrompt fills the script generation prompt with offer, market, and
// target data.
func buildPrompt(result *types.AssessmentResult) string {
	offer := result.Offer

	position := offer.JobTitle
	if position == "" {
		position = defaultPosition
	}
	company := offer.Company
	if company == "" {
		company = defaultCompany
	}
	location := offer.Location
	if location == "" {
		location = defaultLocation
	}

	years := "Not specified"
	if offer.YearsExperience > 0 {
		years = strconv.Itoa(offer.YearsExperience)
	}
	stack := "Not specified"
	if len(offer.TechStack) > 0 {
		stack = strings.Join(offer.TechStack, ", ")
	}

	template := prompts.MustGet("negotiation_script.json", "generate-scripts")
	return prompts.Format(template, map[string]string{
		"Position":           position,
		"Company":            company,
		"Location":           location,
		"CurrentBase":        formatComma(offer.BaseSalary),
		"CurrentBonus":       formatComma(offer.Bonus),
		"CurrentEquity":      formatComma(offer.Equity),
		"MarketP50":          formatComma(orZero(result.Market.P50)),
		"MarketP75":          formatComma(orZero(result.Market.P75)),
		"MarketP90":          formatComma(orZero(result.Market.P90)),
		"SampleSize":         strconv.Itoa(result.Market.SampleSize),
		"Verdict":            string(result.Verdict),
		"YearsExperience":    years,
		"TechStack":          stack,
		"HasCompetingOffers": strconv.FormatBool(offer.HasCompetingOffers),
		"TargetTotal":        formatComma(result.NegotiationRoom.Realistic),
	})
}

func orDefault(email, fallback string) string {
	if email == "" {
		return fallback
	}
	return email
}

func orZero(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
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
