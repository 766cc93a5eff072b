package scripts

import (
	"regexp"
	"strings"

	"github.com/jonathan/offer-analyzer/internal/types"
)

// templateBreak matches the separator the prompt instructs the model to
// emit, tolerating extra dashes and stray whitespace.
var templateBreak = regexp.MustCompile(`(?i)-{3,}TEMPLATE\s*BREAK-{3,}`)

var numberedHeader = regexp.MustCompile(`^\d+\.`)

// Markdown emphasis the model sometimes leaves in the emails.
var (
	boldMarkdown      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicMarkdown    = regexp.MustCompile(`\*(.*?)\*`)
	underlineMarkdown = regexp.MustCompile(`_{2,}(.*?)_{2,}`)
)

// splitTemplates parses the model response into one email per tone. Sections
// are classified by the tone labels in their text, falling back to position
// order and then to first-unfilled. Tones the response never produced are
// absent from the map.
func splitTemplates(text string) map[string]string {
	emails := make(map[string]string)

	for i, part := range templateBreak.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		email := extractEmail(part)
		if email == "" {
			continue
		}

		upper := strings.ToUpper(part)
		head := upper
		if len(head) > 200 {
			head = head[:200]
		}

		switch {
		case i == 0 || strings.Contains(upper, "ASSERTIVE") || containsAny(head, "CONFIDENT", "STRONG", "DIRECT"):
			emails[types.ToneAssertive] = email
		case i == 1 || strings.Contains(upper, "BALANCED") || containsAny(head, "REASONABLE", "FAIR"):
			emails[types.ToneBalanced] = email
		case i == 2 || strings.Contains(upper, "HUMBLE") || containsAny(head, "GRATEFUL", "RESPECTFUL"):
			emails[types.ToneHumble] = email
		case emails[types.ToneAssertive] == "":
			emails[types.ToneAssertive] = email
		case emails[types.ToneBalanced] == "":
			emails[types.ToneBalanced] = email
		case emails[types.ToneHumble] == "":
			emails[types.ToneHumble] = email
		}
	}

	return emails
}

// extractEmail strips labels and numbering ahead of the email body. When a
// "Subject:" line is present the body starts there; otherwise leading
// section headers are dropped and the rest kept as-is.
func extractEmail(section string) string {
	lines := strings.Split(section, "\n")

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "Subject:") {
			return cleanMarkdown(strings.Join(lines[i:], "\n"))
		}
	}

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if i < 5 && isSectionHeader(trimmed) {
			continue
		}
		if trimmed == "" && len(kept) == 0 {
			continue
		}
		kept = append(kept, line)
	}
	return cleanMarkdown(strings.Join(kept, "\n"))
}

// isSectionHeader reports whether a line is prompt scaffolding (numbering,
// a markdown heading, or a bare tone label) rather than email content.
func isSectionHeader(line string) bool {
	if line == "" {
		return false
	}
	if numberedHeader.MatchString(line) || strings.HasPrefix(line, "**") || strings.HasPrefix(line, "#") {
		return true
	}
	upper := strings.ToUpper(strings.TrimSuffix(line, ":"))
	return upper == "ASSERTIVE" || upper == "BALANCED" || upper == "HUMBLE" ||
		upper == "ASSERTIVE TEMPLATE" || upper == "BALANCED TEMPLATE" || upper == "HUMBLE TEMPLATE"
}

func cleanMarkdown(text string) string {
	text = boldMarkdown.ReplaceAllString(text, "$1")
	text = italicMarkdown.ReplaceAllString(text, "$1")
	text = underlineMarkdown.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
