// Package normalize maps free-text offer fields (job title, location, tech
// stack) onto the canonical categories the market resolver queries by.
package normalize

import (
	"strings"
)

// UnknownTitle is the sentinel code returned for empty titles
const UnknownTitle = "unknown"

// maxTitleCodeLen bounds generic title codes so they stay usable as lookup keys
const maxTitleCodeLen = 50

// NormalizeTitle maps a free-text job title to a canonical title code.
// Role families are checked in a fixed priority order and the first family
// whose trigger term appears in the title wins; seniority qualifiers refine
// the code within a family. Titles matching no family fall through to a
// generic slug. Identical input always yields an identical code.
func NormalizeTitle(raw string) string {
	title := strings.ToLower(strings.TrimSpace(raw))
	if title == "" {
		return UnknownTitle
	}

	switch {
	case containsAny(title, "software engineer", "swe", "software developer", "developer"):
		switch {
		case containsAny(title, "senior", "sr", "lead"):
			return "senior_software_engineer"
		case strings.Contains(title, "staff"):
			return "staff_software_engineer"
		case strings.Contains(title, "principal"):
			return "principal_software_engineer"
		case containsAny(title, "junior", "jr", "associate"):
			return "junior_software_engineer"
		default:
			return "software_engineer"
		}

	case containsAny(title, "product manager", "pm"):
		switch {
		case containsAny(title, "senior", "sr"):
			return "senior_product_manager"
		case containsAny(title, "principal", "lead"):
			return "principal_product_manager"
		default:
			return "product_manager"
		}

	case containsAny(title, "data scientist", "data science"):
		if containsAny(title, "senior", "sr") {
			return "senior_data_scientist"
		}
		return "data_scientist"

	case containsAny(title, "devops", "dev ops", "platform engineer", "sre"):
		return "devops_engineer"

	case containsAny(title, "ux designer", "ui designer", "product designer", "ui/ux"):
		return "ux_designer"

	case containsAny(title, "backend", "back end"):
		return "backend_engineer"

	case containsAny(title, "frontend", "front end"):
		return "frontend_engineer"

	case containsAny(title, "full stack", "fullstack"):
		return "fullstack_engineer"
	}

	return slugifyTitle(title)
}

// slugifyTitle collapses runs of non-alphanumeric characters into single
// underscores and bounds the result length.
func slugifyTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastUnderscore := true // suppress a leading separator
	for _, r := range title {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	slug := strings.Trim(b.String(), "_")
	if len(slug) > maxTitleCodeLen {
		slug = slug[:maxTitleCodeLen]
	}
	return slug
}

// containsAny reports whether s contains any of the given terms.
func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
