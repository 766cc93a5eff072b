// Package types provides type definitions for structured data used throughout the offer-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffer_TotalComp(t *testing.T) {
	offer := Offer{
		JobTitle:   "Senior Software Engineer",
		BaseSalary: 100000,
		Bonus:      15000,
		Equity:     10000,
	}
	assert.Equal(t, int64(125000), offer.TotalComp())

	baseOnly := Offer{JobTitle: "Engineer", BaseSalary: 80000}
	assert.Equal(t, int64(80000), baseOnly.TotalComp())
}

func TestOffer_Validate(t *testing.T) {
	valid := Offer{
		JobTitle:        "Senior Software Engineer",
		Company:         "PT Teknologi Maju",
		Location:        "Jakarta, Indonesia",
		BaseSalary:      95000,
		Bonus:           10000,
		YearsExperience: 6,
		TechStack:       []string{"go", "kubernetes"},
	}
	assert.NoError(t, valid.Validate())

	minimal := Offer{JobTitle: "Engineer", BaseSalary: 50000}
	assert.NoError(t, minimal.Validate())

	tests := []struct {
		name   string
		mutate func(*Offer)
	}{
		{"Missing job title", func(o *Offer) { o.JobTitle = "" }},
		{"Zero base salary", func(o *Offer) { o.BaseSalary = 0 }},
		{"Negative base salary", func(o *Offer) { o.BaseSalary = -1000 }},
		{"Negative bonus", func(o *Offer) { o.Bonus = -1 }},
		{"Negative equity", func(o *Offer) { o.Equity = -1 }},
		{"Negative experience", func(o *Offer) { o.YearsExperience = -1 }},
		{"Experience out of range", func(o *Offer) { o.YearsExperience = 51 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			assert.Error(t, o.Validate())
		})
	}
}
