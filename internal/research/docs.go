package research

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	titleRe = regexp.MustCompile(`(?m)^# (.+?)$`)
	logoRe  = regexp.MustCompile(`(?s)<div className="partner-logo">.*?</div>`)
)

// docTitle picks the page title: the first level-one heading in the body,
// falling back to the frontmatter title.
func docTitle(doc *Doc) string {
	if m := titleRe.FindStringSubmatch(doc.Content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return doc.Meta.Title
}

// shortDescription picks the one-line description that follows the logo
// block, falling back to the frontmatter description.
func shortDescription(doc *Doc) string {
	if logo := logoRe.FindString(doc.Content); logo != "" {
		after := doc.Content[strings.Index(doc.Content, logo)+len(logo):]
		if idx := strings.Index(after, "\n##"); idx >= 0 {
			after = after[:idx]
		}
		if desc := strings.TrimSpace(after); desc != "" {
			return desc
		}
	}
	return doc.Meta.Description
}

// EnhancedMarkdown rebuilds the full partner page: original frontmatter,
// title, logo and short description preserved, research sections replacing
// the body.
func EnhancedMarkdown(doc *Doc, research string) string {
	title := docTitle(doc)
	titleHeading := ""
	if title != "" {
		titleHeading = "# " + title
	}
	logo := logoRe.FindString(doc.Content)

	features := ExtractSection(research, SectionKeyFeatures)
	if features != "" && !hasBullets(features) {
		features = EnsureBulletPoints(features)
	}

	out := fmt.Sprintf(`%s

%s

%s

%s

## About %s

%s

## Technology

%s

## Key Features

%s

## Integration with Eliza

%s

## Recent Developments

%s

## Market Position

%s

## Links

%s
`,
		doc.RawFrontmatter,
		titleHeading,
		logo,
		shortDescription(doc),
		title,
		ExtractSection(research, SectionAbout),
		ExtractSection(research, SectionTechnology),
		features,
		ExtractSection(research, SectionIntegration),
		ExtractSection(research, SectionRecent),
		ExtractSection(research, SectionMarket),
		ExtractSection(research, SectionLinks))

	return strings.TrimSpace(out) + "\n"
}

// BriefMarkdown builds the condensed page: just the sections an operator
// skims, with citation markers scrubbed.
func BriefMarkdown(doc *Doc, research string) string {
	title := docTitle(doc)
	titleHeading := ""
	if title != "" {
		titleHeading = "# " + title
	}

	out := fmt.Sprintf(`%s

## About %s

%s

## Integration with Eliza

%s

## Recent Developments

%s

## Market Position

%s
`,
		titleHeading,
		title,
		CleanCitations(ExtractSection(research, SectionAbout)),
		CleanCitations(ExtractSection(research, SectionIntegration)),
		CleanCitations(ExtractSection(research, SectionRecent)),
		CleanCitations(ExtractSection(research, SectionMarket)))

	return strings.TrimSpace(out) + "\n"
}
