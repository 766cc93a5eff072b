package scripts

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/offer-analyzer/internal/llm"
	"github.com/jonathan/offer-analyzer/internal/types"
)

// fakeClient returns a scripted response and records the prompt it was given.
type fakeClient struct {
	response string
	err      error

	lastPrompt string
	lastTier   llm.ModelTier
	calls      int
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastTier = tier
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func assessment() *types.AssessmentResult {
	p50, p75, p90 := int64(120000), int64(135000), int64(150000)
	return &types.AssessmentResult{
		Offer: types.NormalizedOffer{
			Offer: types.Offer{
				JobTitle:        "Senior Software Engineer",
				Company:         "Acme Corp",
				Location:        "Austin, TX",
				BaseSalary:      100000,
				Bonus:           10000,
				Equity:          5000,
				YearsExperience: 6,
				TechStack:       []string{"Go", "React"},
			},
			RoleKey: "software_engineer",
			Tier:    "tier2",
		},
		TotalComp: 115000,
		Market: types.MarketStats{
			P50:        &p50,
			P75:        &p75,
			P90:        &p90,
			SampleSize: 40,
			Confidence: "high",
		},
		Verdict: types.VerdictUnderpaid,
		NegotiationRoom: types.NegotiationRoom{
			Conservative: 120000,
			Realistic:    130000,
			Aggressive:   150000,
		},
		LeveragePoints: []types.LeveragePoint{
			{
				Kind:        types.LeverageMarketRate,
				Description: "Market median base salary is $20,000 higher",
				Strength:    types.StrengthStrong,
			},
		},
	}
}

const threePartResponse = `**1. ASSERTIVE TEMPLATE**

Subject: Compensation discussion for the Senior Software Engineer role

Dear Hiring Team,

Thank you for the offer. Based on market data showing a median of $120,000, I would like to discuss a package of $150,000.

Best regards,
[Your Name]

---TEMPLATE BREAK---

**2. BALANCED TEMPLATE**

Subject: Following up on the Senior Software Engineer offer

Dear Hiring Team,

Thank you for the offer. Market data suggests $135,000 would be well aligned for this role. Could we discuss?

Best regards,
[Your Name]

---TEMPLATE BREAK---

**3. HUMBLE TEMPLATE**

Subject: Grateful for the offer

Dear Hiring Team,

Thank you so much for this opportunity. Might there be flexibility toward $125,000?

Best regards,
[Your Name]`

func TestGenerate_ParsesThreePartResponse(t *testing.T) {
	client := &fakeClient{response: threePartResponse}
	gen := NewGenerator(client)

	bundle, err := gen.Generate(context.Background(), assessment())
	require.NoError(t, err)
	require.NotNil(t, bundle)

	assert.True(t, strings.HasPrefix(bundle.Assertive, "Subject: Compensation discussion"))
	assert.Contains(t, bundle.Assertive, "$150,000")
	assert.True(t, strings.HasPrefix(bundle.Balanced, "Subject: Following up"))
	assert.True(t, strings.HasPrefix(bundle.Humble, "Subject: Grateful"))

	assert.NotEmpty(t, bundle.Tips)
	assert.NotEmpty(t, bundle.TalkingPoints)

	assert.Equal(t, llm.TierAdvanced, client.lastTier)
}

func TestGenerate_PromptCarriesOfferAndMarketData(t *testing.T) {
	client := &fakeClient{response: threePartResponse}
	gen := NewGenerator(client)

	_, err := gen.Generate(context.Background(), assessment())
	require.NoError(t, err)

	prompt := client.lastPrompt
	assert.Contains(t, prompt, "Senior Software Engineer")
	assert.Contains(t, prompt, "Acme Corp")
	assert.Contains(t, prompt, "$100,000", "current base")
	assert.Contains(t, prompt, "$120,000", "market median")
	assert.Contains(t, prompt, "$130,000", "negotiation target")
	assert.Contains(t, prompt, "40 data points")
	assert.Contains(t, prompt, "underpaid")
	assert.Contains(t, prompt, "Go, React")
	assert.NotContains(t, prompt, "{{.", "all placeholders should be filled")
}

func TestGenerate_NilClientUsesTemplates(t *testing.T) {
	gen := NewGenerator(nil)

	bundle, err := gen.Generate(context.Background(), assessment())
	require.NoError(t, err)

	assert.Contains(t, bundle.Assertive, "Subject: Following up on the Senior Software Engineer offer")
	assert.Contains(t, bundle.Balanced, "Subject: Quick question about the Senior Software Engineer offer")
	assert.Contains(t, bundle.Humble, "Subject: Thank you for the Senior Software Engineer offer!")

	// Base portion of the 130,000 realistic target.
	assert.Contains(t, bundle.Assertive, "$104,000")

	assert.NotEmpty(t, bundle.Tips)
	assert.NotEmpty(t, bundle.TalkingPoints)
}

func TestGenerate_APIFailureFallsBackToTemplates(t *testing.T) {
	client := &fakeClient{err: errors.New("model unavailable")}
	gen := NewGenerator(client)

	bundle, err := gen.Generate(context.Background(), assessment())
	require.NoError(t, err, "API failure should degrade, not error")

	assert.Contains(t, bundle.Assertive, "Dear Hiring Manager")
	assert.Contains(t, bundle.Balanced, "Dear Hiring Manager")
	assert.Contains(t, bundle.Humble, "Dear Hiring Manager")
	assert.NotEmpty(t, bundle.Tips)
}

func TestGenerate_MissingToneFilledFromTemplate(t *testing.T) {
	// Model only produced two of the three templates.
	truncated := strings.Split(threePartResponse, "---TEMPLATE BREAK---")
	client := &fakeClient{response: strings.Join(truncated[:2], "---TEMPLATE BREAK---")}
	gen := NewGenerator(client)

	bundle, err := gen.Generate(context.Background(), assessment())
	require.NoError(t, err)

	assert.Contains(t, bundle.Assertive, "Compensation discussion")
	assert.Contains(t, bundle.Balanced, "Following up")
	assert.Contains(t, bundle.Humble, "gently ask", "missing tone should come from the template")
}

func TestGenerate_MarkdownStrippedFromEmails(t *testing.T) {
	client := &fakeClient{response: "Subject: Offer discussion\n\nI bring **significant** value and *proven* results."}
	gen := NewGenerator(client)

	bundle, err := gen.Generate(context.Background(), assessment())
	require.NoError(t, err)

	assert.Contains(t, bundle.Assertive, "significant value")
	assert.NotContains(t, bundle.Assertive, "**")
}

func TestGenerate_NilAssessment(t *testing.T) {
	gen := NewGenerator(&fakeClient{response: threePartResponse})

	bundle, err := gen.Generate(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, bundle)
}
