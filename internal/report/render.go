package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zpark/eliza/internal/diagnostic"
)

// severityOrder fixes the render order of the Summary section.
var severityOrder = []diagnostic.Severity{
	diagnostic.SeverityError,
	diagnostic.SeverityWarning,
	diagnostic.SeverityInfo,
}

// Render produces the markdown document for the report. It is a pure
// function of the report data: the same report always renders to identical
// text.
func (r *Report) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Biome Analysis Report: %s\n", r.PluginName)
	fmt.Fprintf(&b, "\nGenerated at: %s\n\n", r.Timestamp.Format(time.RFC3339))

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- Total Issues: %d\n", r.TotalIssues)
	fmt.Fprintf(&b, "- Files Analyzed: %d\n", r.FilesAnalyzed)
	b.WriteString("\nIssues by Severity:\n")
	for _, sev := range severityOrder {
		if count := r.Severities[sev]; count > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", titleCase(string(sev)), count)
		}
	}

	b.WriteString("\n## Detailed Issues\n")

	for _, group := range r.Files {
		if group.File != SummaryGroup {
			continue
		}
		b.WriteString("\n### Overview\n")
		for _, issue := range group.Issues {
			fmt.Fprintf(&b, "\n%s **%s**\n", severityMarker(issue.Severity), issue.Message)
			for _, info := range issue.AdditionalInfo {
				fmt.Fprintf(&b, "\n> %s\n", info)
			}
			if len(issue.CodeSnippet) > 0 {
				b.WriteString("\n```\n")
				for _, line := range issue.CodeSnippet {
					b.WriteString(line + "\n")
				}
				b.WriteString("```\n")
			}
		}
	}

	if len(r.Logs) > 0 {
		b.WriteString("\n### Full Diagnostic Output\n")
		b.WriteString("\n```\n")
		for _, line := range r.Logs {
			b.WriteString(line + "\n")
		}
		b.WriteString("```\n")
	}

	for _, group := range r.Files {
		if group.File == SummaryGroup {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n", group.File)
		for _, issue := range group.Issues {
			renderIssue(&b, issue)
		}
	}

	return b.String()
}

func renderIssue(b *strings.Builder, issue diagnostic.Diagnostic) {
	fmt.Fprintf(b, "\n%s **%s** - line %d, column %d\n",
		severityMarker(issue.Severity), strings.ToUpper(string(issue.Severity)), issue.Line, issue.Column)

	rule := fmt.Sprintf("`%s`", issue.Rule)
	if issue.Fixable {
		rule += " (FIXABLE)"
	}
	fmt.Fprintf(b, "- Rule: %s\n", rule)

	if issue.Message != "" {
		fmt.Fprintf(b, "- Message: %s\n", issue.Message)
	}
	if len(issue.CodeSnippet) > 0 {
		b.WriteString("\n```typescript\n")
		for _, line := range issue.CodeSnippet {
			b.WriteString(line + "\n")
		}
		b.WriteString("```\n")
	}
	if len(issue.AdditionalInfo) > 0 {
		b.WriteString("\nℹ️ Additional Information:\n")
		for _, info := range issue.AdditionalInfo {
			fmt.Fprintf(b, "- %s\n", info)
		}
	}
}

// Save writes the rendered report into dir as plugin-<name>_report.md,
// overwriting any previous report for the plugin.
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("plugin-%s_report.md", r.PluginName))
	if err := os.WriteFile(path, []byte(r.Render()), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

func severityMarker(sev diagnostic.Severity) string {
	if sev == diagnostic.SeverityError {
		return "🔴"
	}
	return "⚠️"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
