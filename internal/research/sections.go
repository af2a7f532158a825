package research

import (
	"regexp"
	"strings"
	"unicode"
)

// Section headings the completion is instructed to emit. Extraction keys on
// these literal headings; a response that deviates yields empty sections.
const (
	SectionAbout       = "About"
	SectionTechnology  = "Technology"
	SectionKeyFeatures = "Key Features"
	SectionIntegration = "Integration with Eliza"
	SectionRecent      = "Recent Developments"
	SectionMarket      = "Market Position"
	SectionLinks       = "Links"
)

var (
	citationRe   = regexp.MustCompile(`\[\d+\](?:\[\d+\])*`)
	multiSpaceRe = regexp.MustCompile(`  +`)
	thinkRe      = regexp.MustCompile(`(?s)<think>.*?</think>`)
)

// StripReasoning drops the <think> blocks a reasoning model prepends to its
// answer before the markdown sections begin.
func StripReasoning(text string) string {
	return strings.TrimSpace(thinkRe.ReplaceAllString(text, ""))
}

// ExtractSection returns the body of the `## <heading>` section, up to the
// next level-two heading. The About heading may carry a partner name suffix
// ("## About Acme"); the others match exactly. Missing headings yield "".
func ExtractSection(text, heading string) string {
	lines := strings.Split(text, "\n")
	var (
		collected []string
		inSection bool
	)
	for _, line := range lines {
		if strings.HasPrefix(line, "## ") {
			if inSection {
				break
			}
			rest := strings.TrimSpace(strings.TrimPrefix(line, "## "))
			if rest == heading || (heading == SectionAbout && strings.HasPrefix(rest, SectionAbout+" ")) {
				inSection = true
			}
			continue
		}
		if inSection {
			collected = append(collected, line)
		}
	}
	return strings.TrimSpace(strings.Join(collected, "\n"))
}

// CleanCitations removes [1]-style citation markers left in a completion
// despite the prompt's instruction, collapsing the spaces they leave behind.
func CleanCitations(text string) string {
	text = citationRe.ReplaceAllString(text, "")
	return multiSpaceRe.ReplaceAllString(text, " ")
}

// EnsureBulletPoints turns prose lines that look like list items into
// markdown bullets, leaving existing bullets untouched.
func EnsureBulletPoints(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*"):
			out = append(out, line)
		case strings.Contains(trimmed, ":"):
			out = append(out, "- "+trimmed)
		case len(trimmed) > 5 && unicode.IsUpper(rune(trimmed[0])):
			out = append(out, "- "+trimmed)
		default:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// hasBullets reports whether any line already starts with a markdown bullet.
func hasBullets(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			return true
		}
	}
	return false
}
