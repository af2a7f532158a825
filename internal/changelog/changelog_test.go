package changelog

import (
	"strings"
	"testing"
)

func TestFilterSince(t *testing.T) {
	releases := []Release{
		{TagName: "v2.0", Body: "## Features\nadded X"},
		{TagName: "v1.0"},
	}

	got := FilterSince(releases, "v1.0")
	if len(got) != 1 {
		t.Fatalf("FilterSince returned %d releases, want 1", len(got))
	}
	if got[0].TagName != "v2.0" {
		t.Errorf("FilterSince[0] = %q, want v2.0", got[0].TagName)
	}
}

func TestFilterSinceVariants(t *testing.T) {
	releases := []Release{
		{TagName: "v0.25.9"},
		{TagName: "v0.25.8"},
		{TagName: "v0.25.7"},
	}
	tests := []struct {
		name  string
		since string
		want  int
	}{
		{"no lower bound keeps all", "", 3},
		{"bound without v prefix", "0.25.8", 1},
		{"bound on newest", "v0.25.9", 0},
		{"unknown bound keeps all", "v0.1.0", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterSince(releases, tt.since); len(got) != tt.want {
				t.Errorf("FilterSince(%q) returned %d releases, want %d", tt.since, len(got), tt.want)
			}
		})
	}
}

func TestExtractLatestVersion(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"simple version", "# Changelog\n\n## v0.25.8 (March 01, 2025)\n", "v0.25.8"},
		{"prerelease version", "## v0.25.6-alpha.1 (old)\n", "v0.25.6-alpha.1"},
		{"no version", "# Changelog\n\nnothing yet\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractLatestVersion(tt.content); got != tt.want {
				t.Errorf("ExtractLatestVersion = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessReleaseHeadingAndDate(t *testing.T) {
	r := Release{
		TagName:     "v2.0",
		Name:        "v2.0",
		PublishedAt: "2025-03-01T12:00:00Z",
		Body:        "## Features\n* added X\n",
	}
	out := ProcessRelease(r)

	if !strings.HasPrefix(out, "## v2.0 (March 01, 2025)\n\n") {
		t.Errorf("release heading wrong:\n%s", out)
	}
	if !strings.Contains(out, "#### Features") {
		t.Error("body heading not demoted to level 4")
	}
	if !strings.HasSuffix(out, "\n\n---\n\n") {
		t.Error("release section should end with a divider")
	}
}

func TestProcessReleaseBadDateFallsBack(t *testing.T) {
	out := ProcessRelease(Release{TagName: "v1.0", Name: "v1.0", PublishedAt: "not-a-date"})
	if !strings.HasPrefix(out, "## v1.0\n\n") {
		t.Errorf("expected plain heading, got:\n%s", out)
	}
}

func TestProcessBodyDemotesAllHeadingLevels(t *testing.T) {
	body := "# Top\n## What's Changed\n### Details\ntext\n"
	out := processBody(body)

	for _, want := range []string{"#### Top", "#### What's Changed", "#### Details"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\n## ") || strings.Contains(out, "\n### ") {
		t.Errorf("undemoted heading remains:\n%s", out)
	}
}

func TestProcessBodySinglePassDeterminism(t *testing.T) {
	// Headings already demoted by one pass must not be rewritten again.
	body := "## Features\n#### Already Demoted\n"
	out := processBody(body)
	if strings.Contains(out, "#### #### ") {
		t.Errorf("heading demoted twice:\n%s", out)
	}
	if out != processBody(body) {
		t.Error("processBody is not deterministic")
	}
}

func TestProcessBodyStripsMarkup(t *testing.T) {
	body := "intro <img src=\"x.png\"> here\n* {{maxTweetLength}} template var\n"
	out := processBody(body)
	if strings.Contains(out, "<img") {
		t.Error("HTML tag not stripped")
	}
	if strings.Contains(out, "{{") {
		t.Error("template variable not stripped")
	}
}

func TestProcessBodyNewContributors(t *testing.T) {
	body := "## What's Changed\n* fix things\n\n## New Contributors\n* @alice made their first contribution\n\n**Full Changelog**: https://github.com/acme/repo/compare/v1...v2\n"
	out := processBody(body)

	detailsIdx := strings.Index(out, "<details>")
	summaryIdx := strings.Index(out, "<summary>View New Contributors</summary>")
	closeIdx := strings.Index(out, "</details>")
	if detailsIdx < 0 || summaryIdx < 0 || closeIdx < 0 {
		t.Fatalf("collapsible block missing:\n%s", out)
	}
	if !(detailsIdx < summaryIdx && summaryIdx < closeIdx) {
		t.Errorf("collapsible block malformed:\n%s", out)
	}
	aliceIdx := strings.Index(out, "@alice")
	if !(detailsIdx < aliceIdx && aliceIdx < closeIdx) {
		t.Errorf("contributor entry outside the collapsible block:\n%s", out)
	}
	if !strings.Contains(out, "#### Full Changelog: https://github.com/acme/repo/compare/v1...v2") {
		t.Errorf("full changelog line missing:\n%s", out)
	}
}

func TestAssembleInsertsAfterTitle(t *testing.T) {
	existing := "# Changelog\n\n## v1.0 (January 01, 2025)\n\nold stuff\n"
	releases := []Release{{TagName: "v2.0", Name: "v2.0", PublishedAt: "2025-03-01T12:00:00Z", Body: "## Features\nadded X"}}

	out := Assemble(existing, releases)
	v2 := strings.Index(out, "## v2.0")
	v1 := strings.Index(out, "## v1.0")
	if v2 < 0 || v1 < 0 {
		t.Fatalf("missing sections:\n%s", out)
	}
	if v2 > v1 {
		t.Error("new release should come before the existing one")
	}
	if !strings.HasPrefix(out, "# Changelog\n\n") {
		t.Error("title missing")
	}
}

func TestAssembleFromScratch(t *testing.T) {
	out := Assemble("", []Release{{TagName: "v1.0", Name: "v1.0"}})
	if !strings.HasPrefix(out, "# Changelog\n\n## v1.0") {
		t.Errorf("unexpected document:\n%s", out)
	}
}
