package verdict

import "strings"

// Company tier labels used as context in generated analysis
const (
	CompanyTierFAANG    = "FAANG/Big Tech"
	CompanyTierTopTech  = "Top Tech"
	CompanyTierStandard = "Standard"
	CompanyTierUnknown  = "Unknown"
)

var faangCompanies = []string{
	"google", "alphabet", "amazon", "meta", "facebook", "apple", "netflix", "microsoft",
}

var topTechCompanies = []string{
	"uber", "lyft", "airbnb", "spotify", "twitter", "linkedin", "salesforce", "oracle", "adobe",
}

// CompanyTier buckets a company name for analysis context. Matching is by
// substring so "Google LLC" and "Google" land in the same bucket.
func CompanyTier(company string) string {
	if strings.TrimSpace(company) == "" {
		return CompanyTierUnknown
	}

	lower := strings.ToLower(company)
	for _, name := range faangCompanies {
		if strings.Contains(lower, name) {
			return CompanyTierFAANG
		}
	}
	for _, name := range topTechCompanies {
		if strings.Contains(lower, name) {
			return CompanyTierTopTech
		}
	}
	return CompanyTierStandard
}
