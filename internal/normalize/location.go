package normalize

import (
	"strings"

	"github.com/jonathan/offer-analyzer/internal/types"
)

// remoteTerms take precedence over any city match
var remoteTerms = []string{"remote", "work from home", "wfh"}

// tier1Cities are the highest cost-of-living markets
var tier1Cities = []string{
	"san francisco", "sf", "bay area", "silicon valley", "palo alto",
	"new york", "nyc", "manhattan", "brooklyn",
	"seattle", "los angeles", "la", "santa monica",
	"boston", "washington dc", "dc", "san diego",
}

// tier2Cities are medium-high cost-of-living markets
var tier2Cities = []string{
	"austin", "denver", "portland", "chicago", "miami",
	"philadelphia", "atlanta", "dallas", "houston",
	"minneapolis", "phoenix", "salt lake city", "raleigh",
}

// colEntry pairs a city term with its cost-of-living multiplier. The table
// is scanned in order and the first match wins, so more specific terms that
// shadow a broader one must come later only if that is the intended
// precedence.
type colEntry struct {
	city       string
	multiplier float64
}

// colMultipliers is the exact-city cost-of-living table
var colMultipliers = []colEntry{
	{"san francisco", 1.52}, {"sf", 1.52}, {"bay area", 1.52}, {"silicon valley", 1.52},
	{"new york", 1.48}, {"nyc", 1.48}, {"manhattan", 1.55},
	{"seattle", 1.35}, {"los angeles", 1.42}, {"la", 1.42},
	{"boston", 1.38}, {"washington dc", 1.35}, {"dc", 1.35},
	{"san diego", 1.32},
	{"austin", 1.18}, {"denver", 1.15}, {"portland", 1.12},
	{"chicago", 1.08}, {"miami", 1.10}, {"philadelphia", 1.05},
	{"atlanta", 1.03}, {"dallas", 1.04}, {"houston", 1.02},
	{"remote", 1.00}, {"work from home", 1.00}, {"wfh", 1.00},
}

// tierMultipliers are the fallback multipliers when no exact city matches
var tierMultipliers = map[string]float64{
	types.TierOne:    1.4,
	types.TierTwo:    1.1,
	types.TierThree:  1.0,
	types.TierRemote: 1.0,
}

// LocationTier buckets a free-text location into a cost-of-living tier.
// Remote phrasing wins over any city match; unmatched locations default to
// tier3.
func LocationTier(raw string) string {
	location := strings.ToLower(strings.TrimSpace(raw))
	if location == "" {
		return types.TierThree
	}

	if containsAny(location, remoteTerms...) {
		return types.TierRemote
	}
	if matchesAnyCity(location, tier1Cities) {
		return types.TierOne
	}
	if matchesAnyCity(location, tier2Cities) {
		return types.TierTwo
	}
	return types.TierThree
}

// ColMultiplier returns the cost-of-living multiplier for a location. The
// exact-city table takes precedence; locations with no city match fall back
// to their tier's default multiplier.
func ColMultiplier(raw string) float64 {
	location := strings.ToLower(strings.TrimSpace(raw))

	for _, e := range colMultipliers {
		if cityMatches(location, e.city) {
			return e.multiplier
		}
	}

	return tierMultipliers[LocationTier(raw)]
}

// matchesAnyCity reports whether the location matches any city in the list.
func matchesAnyCity(location string, cities []string) bool {
	for _, city := range cities {
		if cityMatches(location, city) {
			return true
		}
	}
	return false
}

// cityMatches applies substring matching for city names, except that very
// short aliases ("la", "dc", "sf") must appear as whole tokens so that
// "atlanta" does not classify as Los Angeles.
func cityMatches(location, city string) bool {
	if len(city) <= 2 {
		return hasToken(location, city)
	}
	return strings.Contains(location, city)
}

// hasToken reports whether token appears in s delimited by non-alphanumeric
// characters (or the string edges).
func hasToken(s, token string) bool {
	start := 0
	for {
		idx := strings.Index(s[start:], token)
		if idx < 0 {
			return false
		}
		idx += start

		leftOK := idx == 0 || !isAlnum(rune(s[idx-1]))
		end := idx + len(token)
		rightOK := end == len(s) || !isAlnum(rune(s[end]))
		if leftOK && rightOK {
			return true
		}
		start = idx + 1
	}
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
