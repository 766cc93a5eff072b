package scripts

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/jonathan/offer-analyzer/internal/types"
)

const assertiveTemplate = `Subject: Following up on the {{.JobTitle}} offer

Dear Hiring Manager,

Thank you for extending the offer for the {{.JobTitle}} position. I'm very excited about the opportunity to join {{.Company}} and contribute to your team.

After reviewing the compensation package and researching market rates for similar positions in {{.Location}}, I'd like to discuss the base salary. Based on my {{.YearsExperience}} years of experience and expertise in {{.TechStack}}, I'm confident in bringing significant value to your team.

Would you be open to adjusting the base salary to be more aligned with market rates, around ${{.TargetBase}}? I believe this would better reflect the value and experience I bring to the role.

I'm very enthusiastic about this opportunity and believe we can find a compensation package that works for both of us.

Best regards,
[Your Name]`

const balancedTemplate = `Subject: Quick question about the {{.JobTitle}} offer

Dear Hiring Manager,

Thank you so much for the offer for the {{.JobTitle}} position at {{.Company}}! I'm really excited about the possibility of joining your team.

I've had a chance to review the compensation details, and I wanted to discuss the salary component. Based on my research of market rates for similar roles in {{.Location}} and considering my experience with {{.TechStack}}, I was hoping we could discuss a base salary closer to ${{.TargetBase}}.

I'm very flexible and would love to find a package that works for both of us. Would you be open to having a conversation about this?

Looking forward to hearing from you!

Best regards,
[Your Name]`

const humbleTemplate = `Subject: Thank you for the {{.JobTitle}} offer!

Dear Hiring Manager,

Thank you so much for the generous offer for the {{.JobTitle}} position! I'm truly honored and excited about the opportunity to potentially join {{.Company}}.

I really appreciate the compensation package you've put together. I did want to gently ask if there might be any flexibility on the base salary. Based on market research for similar positions in {{.Location}}, I was wondering if we could possibly discuss a base salary closer to ${{.TargetBase}}.

Of course, I understand if this isn't possible, and I'm grateful for the offer as presented. I'm really excited about this role regardless!

Thank you again for this wonderful opportunity.

Best regards,
[Your Name]`

// fallbackTemplates are the deterministic emails used when the model is
// unavailable or a tone is missing from its response.
var fallbackTemplates = map[string]*template.Template{
	types.ToneAssertive: template.Must(template.New(types.ToneAssertive).Parse(assertiveTemplate)),
	types.ToneBalanced:  template.Must(template.New(types.ToneBalanced).Parse(balancedTemplate)),
	types.ToneHumble:    template.Must(template.New(types.ToneHumble).Parse(humbleTemplate)),
}

// fallbackData feeds the deterministic email templates.
type fallbackData struct {
	JobTitle        string
	Company         string
	Location        string
	YearsExperience string
	TechStack       string
	TargetBase      string
}

type fallbackBundle struct {
	assertive string
	balanced  string
	humble    string
}

// fallbackEmails renders all three deterministic emails for an assessment.
func fallbackEmails(result *types.AssessmentResult) fallbackBundle {
	data := buildFallbackData(result)
	return fallbackBundle{
		assertive: renderFallback(types.ToneAssertive, data),
		balanced:  renderFallback(types.ToneBalanced, data),
		humble:    renderFallback(types.ToneHumble, data),
	}
}

func buildFallbackData(result *types.AssessmentResult) fallbackData {
	offer := result.Offer

	jobTitle := offer.JobTitle
	if jobTitle == "" {
		jobTitle = defaultPosition
	}
	company := offer.Company
	if company == "" {
		company = defaultCompany
	}
	location := offer.Location
	if location == "" {
		location = defaultLocation
	}

	years := "5"
	if offer.YearsExperience > 0 {
		years = strconv.Itoa(offer.YearsExperience)
	}

	stack := "relevant technologies"
	if len(offer.TechStack) > 0 {
		head := offer.TechStack
		if len(head) > 3 {
			head = head[:3]
		}
		stack = strings.Join(head, ", ")
	}

	// The realistic target covers total compensation while the templates ask
	// about base salary, so aim for roughly the base portion of it.
	targetBase := int64(100000)
	if target := result.NegotiationRoom.Realistic; target > 0 {
		targetBase = int64(float64(target) * 0.8)
	}

	return fallbackData{
		JobTitle:        jobTitle,
		Company:         company,
		Location:        location,
		YearsExperience: years,
		TechStack:       stack,
		TargetBase:      formatComma(targetBase),
	}
}

func renderFallback(tone string, data fallbackData) string {
	var sb strings.Builder
	if err := fallbackTemplates[tone].Execute(&sb, data); err != nil {
		// Static templates over a flat struct; Execute cannot fail here.
		return ""
	}
	return sb.String()
}
