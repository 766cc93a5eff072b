// Package types provides type definitions for structured data used throughout the offer-analyzer system.
package types

import "time"

// UMKRate is a regional statutory minimum monthly wage (Upah Minimum
// Kota/Kabupaten). MonthlyWage is in Indonesian Rupiah.
type UMKRate struct {
	Region      string    `json:"region"`
	Province    string    `json:"province,omitempty"`
	MonthlyWage int64     `json:"monthly_wage"`
	Year        int       `json:"year"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UMKStats summarizes minimum wage coverage across stored regions.
type UMKStats struct {
	TotalRegions int            `json:"total_regions"`
	MinWage      int64          `json:"min_wage"`
	MaxWage      int64          `json:"max_wage"`
	AvgWage      int64          `json:"avg_wage"`
	ByProvince   map[string]int `json:"by_province"`
}
