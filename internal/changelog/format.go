package changelog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
	templateVarRe = regexp.MustCompile(`{{[^}]*}}`)
	headingRe     = regexp.MustCompile(`^#{1,3}\s+(.+)$`)
	bulletRe      = regexp.MustCompile(`^\s*\*\s+`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
	versionRe     = regexp.MustCompile(`## (v[\d.]+-?[a-zA-Z\d.]*)`)
)

// ExtractLatestVersion returns the most recent version heading in an
// existing changelog, or "" when none is found.
func ExtractLatestVersion(content string) string {
	if m := versionRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}

// ProcessRelease renders one release as a changelog section: a level-two
// heading with the publish date, the cleaned body, and a divider.
func ProcessRelease(r Release) string {
	name := r.Name
	if name == "" {
		name = r.TagName
	}
	if name == "" {
		name = "Unknown"
	}

	heading := fmt.Sprintf("## %s\n\n", name)
	if r.PublishedAt != "" {
		if t, err := time.Parse("2006-01-02T15:04:05Z", r.PublishedAt); err == nil {
			heading = fmt.Sprintf("## %s (%s)\n\n", name, t.Format("January 02, 2006"))
		}
	}

	return heading + processBody(r.Body) + "\n\n---\n\n"
}

// processBody cleans a release body for the changelog: HTML tags and
// template variables are stripped, every level 1–3 heading is demoted to a
// level-4 heading in a single pass over the lines, the New Contributors
// section is wrapped in a collapsible block, bullets and blank runs are
// normalized.
func processBody(body string) string {
	body = htmlTagRe.ReplaceAllString(body, "")
	body = templateVarRe.ReplaceAllString(body, "")
	body = strings.ReplaceAll(body, "\r\n", "\n")

	var (
		out            []string
		inContributors bool
	)
	closeContributors := func() {
		if inContributors {
			out = append(out, "", "</details>", "")
			inContributors = false
		}
	}

	for _, line := range strings.Split(body, "\n") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			closeContributors()
			title := strings.TrimSpace(m[1])
			if strings.HasPrefix(title, "New Contributors") {
				out = append(out,
					"#### New Contributors", "",
					"<details>",
					"<summary>View New Contributors</summary>", "")
				inContributors = true
				continue
			}
			out = append(out, "#### "+title, "")
			continue
		}

		if rest, ok := strings.CutPrefix(line, "**Full Changelog**"); ok {
			closeContributors()
			rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":"))
			out = append(out, "#### Full Changelog: "+rest, "")
			continue
		}

		if bulletRe.MatchString(line) {
			line = bulletRe.ReplaceAllString(line, "* ")
		}
		out = append(out, line)
	}
	closeContributors()

	s := strings.Join(out, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Assemble merges freshly processed releases with an existing changelog.
// With no existing content the result is a full document; otherwise the new
// sections are inserted directly after the "# Changelog" title.
func Assemble(existing string, releases []Release) string {
	var newContent strings.Builder
	for _, r := range releases {
		newContent.WriteString(ProcessRelease(r))
	}

	if existing == "" {
		return "# Changelog\n\n" + newContent.String()
	}
	if !strings.HasPrefix(existing, "# Changelog") {
		return "# Changelog\n\n" + newContent.String() + existing
	}

	titleRe := regexp.MustCompile(`# Changelog\s*\n\s*\n`)
	if loc := titleRe.FindStringIndex(existing); loc != nil {
		return existing[:loc[1]] + newContent.String() + existing[loc[1]:]
	}
	return "# Changelog\n\n" + newContent.String() + strings.TrimPrefix(existing, "# Changelog")
}
