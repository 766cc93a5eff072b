package contribution

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/jonathan/offer-analyzer/internal/types"
)

// Confidence points per signal, in thousandths so the arithmetic stays
// exact. The full set sums to 1000.
const (
	pointsCompany    = 200
	pointsReasonable = 300
	pointsSkillsFull = 200
	pointsSkillsSome = 100
	pointsBonus      = 75
	pointsEquity     = 75
	pointsBenefits   = 100
	pointsExperience = 50
)

// experienceBands pair a minimum experience level with the plausible base
// salary range for it, ordered from most senior down. The first band at or
// below the submitted experience applies.
var experienceBands = []struct {
	minYears int
	low      int64
	high     int64
}{
	{20, 130000, 500000},
	{15, 120000, 400000},
	{10, 100000, 300000},
	{5, 70000, 200000},
	{2, 50000, 150000},
	{0, 40000, 120000},
}

// ConfidenceScore rates a contribution's trustworthiness in [0,1] from its
// completeness and the plausibility of its figures.
func ConfidenceScore(c types.Contribution) float64 {
	points := 0

	if len(strings.TrimSpace(c.Company)) > 2 {
		points += pointsCompany
	}
	if reasonableSalary(c.BaseSalary, c.YearsExperience) {
		points += pointsReasonable
	}
	switch {
	case len(c.TechStack) >= 3:
		points += pointsSkillsFull
	case len(c.TechStack) >= 1:
		points += pointsSkillsSome
	}
	if c.Bonus > 0 {
		points += pointsBonus
	}
	if c.Equity > 0 {
		points += pointsEquity
	}
	if len(c.Benefits) > 0 {
		points += pointsBenefits
	}
	if c.YearsExperience >= 0 && c.YearsExperience <= 50 {
		points += pointsExperience
	}

	return float64(points) / 1000
}

// reasonableSalary reports whether base pay is plausible for the experience
// level.
func reasonableSalary(base int64, years int) bool {
	for _, band := range experienceBands {
		if years >= band.minYears {
			return base >= band.low && base <= band.high
		}
	}
	return base >= 40000 && base <= 120000
}

// SubmissionHash fingerprints the substantive fields of a contribution for
// duplicate detection. Strings are lowercased and trimmed so formatting
// differences do not defeat the check.
func SubmissionHash(c types.Contribution) string {
	canonical := fmt.Sprintf("base:%d|bonus:%d|company:%s|equity:%d|exp:%d|location:%s|title:%s",
		c.BaseSalary,
		c.Bonus,
		strings.ToLower(strings.TrimSpace(c.Company)),
		c.Equity,
		c.YearsExperience,
		strings.ToLower(strings.TrimSpace(c.Location)),
		strings.ToLower(strings.TrimSpace(c.JobTitle)),
	)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
