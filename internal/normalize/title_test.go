package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle_SoftwareEngineerFamily(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Software Engineer", "software_engineer"},
		{"Senior Software Engineer", "senior_software_engineer"},
		{"Sr. Software Engineer", "senior_software_engineer"},
		{"Lead Software Developer", "senior_software_engineer"},
		{"Staff Software Engineer", "staff_software_engineer"},
		{"Principal Software Engineer", "principal_software_engineer"},
		{"Junior Developer", "junior_software_engineer"},
		{"Associate Software Developer", "junior_software_engineer"},
		{"SWE II", "software_engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTitle(tt.title))
		})
	}
}

func TestNormalizeTitle_OtherFamilies(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Product Manager", "product_manager"},
		{"Senior Product Manager", "senior_product_manager"},
		{"Principal Product Manager", "principal_product_manager"},
		{"Data Scientist", "data_scientist"},
		{"Senior Data Scientist", "senior_data_scientist"},
		{"DevOps Engineer", "devops_engineer"},
		{"Platform Engineer", "devops_engineer"},
		{"SRE", "devops_engineer"},
		{"UX Designer", "ux_designer"},
		{"Product Designer", "ux_designer"},
		{"UI/UX Designer", "ux_designer"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTitle(tt.title))
		})
	}
}

func TestNormalizeTitle_FamilyOrderIsFirstMatchWins(t *testing.T) {
	// "Backend Developer" contains both the software-engineer trigger
	// ("developer") and the backend trigger; the software-engineer family
	// is checked first, so it wins.
	assert.Equal(t, "software_engineer", NormalizeTitle("Backend Developer"))

	// Without a software-engineer trigger the backend family applies.
	assert.Equal(t, "backend_engineer", NormalizeTitle("Backend Engineer"))
	assert.Equal(t, "frontend_engineer", NormalizeTitle("Front End Engineer"))
	assert.Equal(t, "fullstack_engineer", NormalizeTitle("Full Stack Engineer"))
}

func TestNormalizeTitle_EmptyReturnsUnknown(t *testing.T) {
	assert.Equal(t, UnknownTitle, NormalizeTitle(""))
	assert.Equal(t, UnknownTitle, NormalizeTitle("   "))
}

func TestNormalizeTitle_GenericFallbackSlug(t *testing.T) {
	assert.Equal(t, "chief_happiness_officer", NormalizeTitle("Chief Happiness Officer"))
	assert.Equal(t, "qa_analyst", NormalizeTitle("QA / Analyst"))
	assert.Equal(t, "growth_hacker", NormalizeTitle("  Growth--Hacker!  "))
}

func TestNormalizeTitle_FallbackSlugIsBounded(t *testing.T) {
	long := strings.Repeat("very ", 30) + "niche role"
	code := NormalizeTitle(long)

	assert.LessOrEqual(t, len(code), maxTitleCodeLen)
	assert.NotEmpty(t, code)
}

func TestNormalizeTitle_Deterministic(t *testing.T) {
	for _, title := range []string{"Senior SWE", "Backend Engineer", "Weird ~~ Title"} {
		assert.Equal(t, NormalizeTitle(title), NormalizeTitle(title))
	}
}
