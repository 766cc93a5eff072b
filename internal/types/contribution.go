// Package types provides type definitions for structured data used throughout the offer-analyzer system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Quality grades for crowdsourced contributions
const (
	QualityHigh   = "high"
	QualityMedium = "medium"
	QualityLow    = "low"
)

// Contribution is a crowdsourced salary datapoint submitted by a user.
// Salary figures are annual.
type Contribution struct {
	JobTitle        string   `json:"job_title" validate:"required,min=3,max=200"`
	Company         string   `json:"company,omitempty"`
	Location        string   `json:"location" validate:"required,min=2,max=100"`
	BaseSalary      int64    `json:"base_salary" validate:"required,gte=20000,lte=1000000"`
	Bonus           int64    `json:"bonus,omitempty" validate:"gte=0,lte=1000000"`
	Equity          int64    `json:"equity,omitempty" validate:"gte=0,lte=1000000"`
	YearsExperience int      `json:"years_experience" validate:"gte=0,lte=50"`
	TechStack       []string `json:"tech_stack,omitempty"`
	Benefits        []string `json:"benefits,omitempty"`
}

// Validate validates the Contribution using the validator.
func (c *Contribution) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// ContributionReceipt is returned after a contribution is accepted.
type ContributionReceipt struct {
	ID             uuid.UUID `json:"id"`
	SubmissionHash string    `json:"submission_hash"`
	Confidence     float64   `json:"confidence_score"`
	Verified       bool      `json:"verified"`
	Quality        string    `json:"quality"`
	CreatedAt      time.Time `json:"created_at"`
}

// StoredContribution is the persisted form of an accepted contribution: the
// submitted payload plus everything derived at intake.
type StoredContribution struct {
	ID uuid.UUID `json:"id"`
	Contribution
	RoleKey        string    `json:"role_key"`
	Tier           string    `json:"tier"`
	CompanyTier    string    `json:"company_tier"`
	TotalComp      int64     `json:"total_comp"`
	SubmissionHash string    `json:"submission_hash"`
	Confidence     float64   `json:"confidence_score"`
	Verified       bool      `json:"verified"`
	Quality        string    `json:"quality"`
	CreatedAt      time.Time `json:"created_at"`
}
