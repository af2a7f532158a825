package report

import (
	"time"

	"github.com/zpark/eliza/internal/diagnostic"
)

// FileIssues groups the diagnostics reported against one file. The synthetic
// "Summary" group produced by summary-only analyzer output sorts first.
type FileIssues struct {
	File   string
	Issues []diagnostic.Diagnostic
}

// Report is the rendered view of one plugin's analysis. Built fresh per
// analysis call; re-running a plugin overwrites its report file.
type Report struct {
	PluginName    string
	Timestamp     time.Time
	TotalIssues   int
	FilesAnalyzed int
	Severities    map[diagnostic.Severity]int
	Files         []FileIssues
	Logs          []string
}

// SummaryGroup is the name of the synthetic file group carrying
// summary-only diagnostics.
const SummaryGroup = "Summary"

// Build assembles a Report from extracted diagnostics, preserving the order
// in which files first appear in the output.
func Build(pluginName string, diags []diagnostic.Diagnostic, sum diagnostic.Summary, logs []string) *Report {
	r := &Report{
		PluginName:    pluginName,
		Timestamp:     time.Now(),
		TotalIssues:   sum.TotalIssues(),
		FilesAnalyzed: len(sum.FilesProcessed),
		Severities: map[diagnostic.Severity]int{
			diagnostic.SeverityError:   sum.TotalErrors,
			diagnostic.SeverityWarning: sum.TotalWarnings,
		},
		Logs: logs,
	}

	index := make(map[string]int)
	for _, d := range diags {
		key := d.File
		if key == "" {
			key = "Unknown File"
		}
		if d.Rule == "summary" {
			key = SummaryGroup
		}
		i, ok := index[key]
		if !ok {
			i = len(r.Files)
			index[key] = i
			r.Files = append(r.Files, FileIssues{File: key})
		}
		r.Files[i].Issues = append(r.Files[i].Issues, d)
	}

	// Keep the summary group ahead of the per-file sections.
	if i, ok := index[SummaryGroup]; ok && i != 0 {
		g := r.Files[i]
		r.Files = append(r.Files[:i], r.Files[i+1:]...)
		r.Files = append([]FileIssues{g}, r.Files...)
	}
	return r
}
