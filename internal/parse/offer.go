// Package parse extracts a structured Offer from pasted offer letter text using LLM extraction.
package parse

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/offer-analyzer/internal/llm"
	"github.com/jonathan/offer-analyzer/internal/prompts"
	"github.com/jonathan/offer-analyzer/internal/schemas"
	"github.com/jonathan/offer-analyzer/internal/types"
)

// minOfferTextLen guards against pasting a fragment (a subject line, a lone
// salary figure) that the model would pad out into an invented offer.
const minOfferTextLen = 50

// Plausibility bounds for extracted compensation. Annual figures outside
// these bands are almost always extraction mistakes (an hourly rate, a total
// across a four-year vesting period) and are dropped rather than propagated.
const (
	minPlausibleBase  = 20_000
	maxPlausibleBase  = 1_000_000
	maxPlausibleExtra = 500_000
)

// maxFieldLen drops free-text fields where the model echoed a paragraph of
// the letter instead of extracting a value.
const maxFieldLen = 500

const maxExperienceYears = 50

// parsedOffer mirrors the extraction schema. Every field is nullable on the
// wire: the model reports null for anything the letter does not state.
type parsedOffer struct {
	Company         *string  `json:"company"`
	JobTitle        *string  `json:"job_title"`
	Location        *string  `json:"location"`
	BaseSalary      *float64 `json:"base_salary"`
	Bonus           *float64 `json:"bonus"`
	EquityValue     *float64 `json:"equity_value"`
	YearsExperience *float64 `json:"years_experience"`
	TechStack       []string `json:"tech_stack"`
	Benefits        []string `json:"benefits"`
}

// ParseOffer extracts a structured Offer from raw offer letter text.
func ParseOffer(ctx context.Context, text string, apiKey string) (*types.Offer, error) {
	if apiKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}

	// Initialize LLM client with default config
	config := llm.DefaultConfig()
	client, err := llm.NewClient(ctx, config, apiKey)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to create LLM client",
			Cause:   err,
		}
	}
	defer func() { _ = client.Close() }()

	return ParseOfferText(ctx, client, text)
}

// ParseOfferText extracts a structured Offer from raw offer letter text using
// the provided client. The result is cleaned, not validated: a letter that
// never states a salary produces an Offer with BaseSalary 0, and the caller
// decides whether that is acceptable.
func ParseOfferText(ctx context.Context, client llm.Client, text string) (*types.Offer, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minOfferTextLen {
		return nil, &ParseError{Message: "offer text is too short to contain a parseable offer"}
	}
	if client == nil {
		return nil, &APICallError{Message: "LLM client is required"}
	}

	// Construct extraction prompt
	prompt := buildExtractionPrompt(trimmed)

	// Use TierStandard: field extraction is mechanical and does not need a
	// reasoning model.
	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}

	// Validate the response against the extraction schema before trusting it
	if err := schemas.Validate(schemas.ParsedOfferSchema, responseText); err != nil {
		return nil, &ParseError{
			Message: "extracted JSON does not match the offer schema",
			Cause:   err,
		}
	}

	var parsed parsedOffer
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		return nil, &ParseError{
			Message: "failed to parse JSON response",
			Cause:   err,
		}
	}

	return buildOffer(&parsed), nil
}

// buildExtractionPrompt constructs the prompt for structured extraction
func buildExtractionPrompt(offerText string) string {
	template := prompts.MustGet("parse_offer.json", "extract-offer")
	return prompts.Format(template, map[string]string{
		"OfferText": offerText,
	})
}

// buildOffer applies cleanup to the raw extraction and maps it onto an Offer.
func buildOffer(parsed *parsedOffer) *types.Offer {
	return &types.Offer{
		JobTitle:        cleanString(parsed.JobTitle),
		Company:         cleanString(parsed.Company),
		Location:        cleanString(parsed.Location),
		BaseSalary:      clampBase(parsed.BaseSalary),
		Bonus:           clampExtra(parsed.Bonus),
		Equity:          clampExtra(parsed.EquityValue),
		YearsExperience: clampExperience(parsed.YearsExperience),
		TechStack:       cleanList(parsed.TechStack),
		Benefits:        cleanList(parsed.Benefits),
	}
}

// cleanString trims a nullable string field and drops values long enough to
// be an echoed paragraph rather than an extracted value.
func cleanString(s *string) string {
	if s == nil {
		return ""
	}
	trimmed := strings.TrimSpace(*s)
	if len(trimmed) > maxFieldLen {
		return ""
	}
	return trimmed
}

func clampBase(v *float64) int64 {
	if v == nil {
		return 0
	}
	base := int64(*v)
	if base < minPlausibleBase || base > maxPlausibleBase {
		return 0
	}
	return base
}

func clampExtra(v *float64) int64 {
	if v == nil {
		return 0
	}
	extra := int64(*v)
	if extra < 0 || extra > maxPlausibleExtra {
		return 0
	}
	return extra
}

func clampExperience(v *float64) int {
	if v == nil {
		return 0
	}
	years := int(*v)
	if years < 0 {
		return 0
	}
	if years > maxExperienceYears {
		return maxExperienceYears
	}
	return years
}

// cleanList trims entries, drops empties, and de-duplicates case-insensitively
// while keeping the first spelling the model produced.
func cleanList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	cleaned := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" || len(trimmed) > maxFieldLen {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, trimmed)
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}
