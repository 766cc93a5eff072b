// Package types provides type definitions for structured data used throughout the offer-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Market tier constants for location classification
const (
	TierOne    = "tier1"
	TierTwo    = "tier2"
	TierThree  = "tier3"
	TierRemote = "remote"
)

// Offer represents a job offer as submitted for assessment.
// BaseSalary, Bonus, and Equity are annual figures in the offer's currency;
// Equity is the annualized grant value.
type Offer struct {
	JobTitle           string   `json:"job_title" validate:"required,min=1"`
	Company            string   `json:"company,omitempty"`
	Location           string   `json:"location,omitempty"`
	BaseSalary         int64    `json:"base_salary" validate:"required,gt=0"`
	Bonus              int64    `json:"bonus,omitempty" validate:"gte=0"`
	Equity             int64    `json:"equity,omitempty" validate:"gte=0"`
	YearsExperience    int      `json:"years_experience" validate:"gte=0,lte=50"`
	TechStack          []string `json:"tech_stack,omitempty"`
	Benefits           []string `json:"benefits,omitempty"`
	HasCompetingOffers bool     `json:"has_competing_offers,omitempty"`
}

// TotalComp returns the total annual compensation (base + bonus + equity).
func (o *Offer) TotalComp() int64 {
	return o.BaseSalary + o.Bonus + o.Equity
}

// Validate validates the Offer using the validator.
func (o *Offer) Validate() error {
	validate := validator.New()
	return validate.Struct(o)
}

// NormalizedOffer is an Offer annotated with the canonical role key, market
// tier, and the adjustment multipliers derived during assessment.
type NormalizedOffer struct {
	Offer
	RoleKey       string  `json:"role_key"`
	Tier          string  `json:"tier"`
	ColMultiplier float64 `json:"col_multiplier"`
	TechPremium   float64 `json:"tech_premium"`
}
