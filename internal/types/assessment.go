// Package types provides type definitions for structured data used throughout the offer-analyzer system.
package types

import "time"

// Verdict classifies an offer against the market and the statutory minimum.
type Verdict string

// Verdict values, ordered from worst to best
const (
	VerdictBelowMinimum           Verdict = "below_minimum"
	VerdictSignificantlyUnderpaid Verdict = "significantly_underpaid"
	VerdictUnderpaid              Verdict = "underpaid"
	VerdictFair                   Verdict = "fair"
	VerdictCompetitive            Verdict = "competitive"
	VerdictExcellent              Verdict = "excellent"
)

// Risk levels for minimum wage compliance
const (
	RiskHigh = "high"
	RiskLow  = "low"
	RiskNone = "none"
)

// ComplianceResult reports how the offer's base salary compares to the
// statutory regional minimum wage (UMK). When no minimum wage record exists
// for the location, Complies is true and the pointer fields are nil.
type ComplianceResult struct {
	Complies        bool     `json:"complies"`
	Region          string   `json:"region,omitempty"`
	MonthlyMinimum  *int64   `json:"monthly_minimum,omitempty"`
	AnnualMinimum   *int64   `json:"annual_minimum,omitempty"`
	PercentageAbove *float64 `json:"percentage_above,omitempty"`
	RiskLevel       string   `json:"risk_level,omitempty"`
	Message         string   `json:"message"`
}

// NegotiationRoom holds the three negotiation targets and their percentage
// increases over the current total compensation.
type NegotiationRoom struct {
	Conservative    int64   `json:"conservative"`
	Realistic       int64   `json:"realistic"`
	Aggressive      int64   `json:"aggressive"`
	ConservativePct float64 `json:"conservative_pct"`
	RealisticPct    float64 `json:"realistic_pct"`
	AggressivePct   float64 `json:"aggressive_pct"`
}

// Leverage point kinds, in the order they are emitted
const (
	LeverageMarketRate    = "market_rate"
	LeverageTechPremium   = "tech_premium"
	LeverageExperience    = "experience"
	LeverageMissingEquity = "missing_equity"
	LeverageMissingBonus  = "missing_bonus"
	LeverageCompetition   = "competition"
)

// Leverage strength labels
const (
	StrengthStrong = "strong"
	StrengthMedium = "medium"
	StrengthWeak   = "weak"
)

// LeveragePoint is a single negotiation argument derived from the offer and
// market data.
type LeveragePoint struct {
	Kind        string `json:"type"`
	Description string `json:"description"`
	Strength    string `json:"strength"`
}

// Recommendation priority levels
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is an actionable next step derived from the assessment.
// Target is nil when the action has no specific number attached.
type Recommendation struct {
	Priority    string `json:"priority"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Target      *int64 `json:"target,omitempty"`
}

// AssessmentResult is the complete output of assessing an offer.
type AssessmentResult struct {
	Offer           NormalizedOffer  `json:"offer"`
	TotalComp       int64            `json:"total_compensation"`
	Market          MarketStats      `json:"market_data"`
	Compliance      ComplianceResult `json:"umk_compliance"`
	Verdict         Verdict          `json:"verdict"`
	NegotiationRoom NegotiationRoom  `json:"negotiation_room"`
	LeveragePoints  []LeveragePoint  `json:"leverage_points"`
	Recommendations []Recommendation `json:"recommendations"`
	AssessedAt      time.Time        `json:"assessed_at"`
}
