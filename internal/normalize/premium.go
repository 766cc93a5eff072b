package normalize

import "strings"

// premiumCap bounds the stacked effect of hot technologies. Premiums never
// sum; the single best match applies, clamped to this cap.
const premiumCap = 1.35

// premiumEntry pairs a technology term with its market premium multiplier.
// The table is scanned in order for partial matches, so a broader term
// placed earlier shadows a more specific one ("react" before "react native").
type premiumEntry struct {
	tech    string
	premium float64
}

// techPremiums lists technologies that command a salary premium
var techPremiums = []premiumEntry{
	// Systems and infrastructure
	{"rust", 1.20}, {"golang", 1.15}, {"go", 1.15},
	{"kubernetes", 1.18}, {"k8s", 1.18}, {"docker", 1.08},

	// AI/ML (highest premium)
	{"ai", 1.25}, {"ml", 1.25}, {"machine learning", 1.25},
	{"deep learning", 1.28}, {"tensorflow", 1.22}, {"pytorch", 1.22},

	// Cloud
	{"aws", 1.12}, {"azure", 1.10}, {"gcp", 1.15},
	{"terraform", 1.15}, {"ansible", 1.10},

	// Frameworks
	{"react", 1.08}, {"vue", 1.06}, {"angular", 1.05},
	{"nodejs", 1.10}, {"typescript", 1.12},

	// Data and analytics
	{"spark", 1.18}, {"hadoop", 1.15}, {"snowflake", 1.20},
	{"tableau", 1.10}, {"looker", 1.08},

	// Security
	{"cryptography", 1.15}, {"security", 1.12},

	// Blockchain
	{"blockchain", 1.20}, {"ethereum", 1.18}, {"solidity", 1.22},

	// Mobile
	{"react native", 1.12}, {"flutter", 1.15}, {"swift", 1.10},
}

// TechPremium computes the salary premium multiplier for a tech stack.
// Each tag is looked up exactly first, then by substring containment in
// either direction against the table. The single highest matched premium
// applies, clamped to the cap; an empty stack or no match returns exactly
// 1.0.
func TechPremium(techStack []string) float64 {
	if len(techStack) == 0 {
		return 1.0
	}

	best := 0.0
	for _, raw := range techStack {
		if p, ok := matchPremium(raw); ok && p > best {
			best = p
		}
	}

	if best == 0 {
		return 1.0
	}
	return min(best, premiumCap)
}

// matchPremium finds the premium for a single tag: exact match first, then
// the first partial match in table order.
func matchPremium(raw string) (float64, bool) {
	tech := strings.ToLower(strings.TrimSpace(raw))
	if tech == "" {
		return 0, false
	}

	for _, e := range techPremiums {
		if e.tech == tech {
			return e.premium, true
		}
	}

	for _, e := range techPremiums {
		if partialTechMatch(tech, e.tech) {
			return e.premium, true
		}
	}

	return 0, false
}

// partialTechMatch reports containment in either direction, with guards for
// very short terms: a term under three characters only matches as a whole
// token ("go" must not match "django", "c" must not match "docker").
func partialTechMatch(tech, key string) bool {
	if len(key) < 3 {
		return hasToken(tech, key)
	}
	if len(tech) < 3 {
		return hasToken(key, tech)
	}
	return strings.Contains(tech, key) || strings.Contains(key, tech)
}
