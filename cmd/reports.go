package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List or display analysis reports",
	Long: `List generated analysis reports, or print one. Without --plugin,
shows a table of every report with its generation time and issue count. With
--plugin, prints that plugin's full markdown report.`,
	RunE: runReports,
}

var reportsPlugin string

func init() {
	reportsCmd.Flags().StringVarP(&reportsPlugin, "plugin", "p", "", "Show the report for a specific plugin")
	rootCmd.AddCommand(reportsCmd)
}

func runReports(cmd *cobra.Command, args []string) error {
	t, err := newToolkit()
	if err != nil {
		return err
	}
	reportsDir := t.path(t.cfg.ReportsDir)

	if reportsPlugin != "" {
		return showReport(reportsDir, reportsPlugin)
	}
	return listReports(reportsDir)
}

func showReport(reportsDir, plugin string) error {
	path := filepath.Join(reportsDir, plugin+"_report.md")
	data, err := os.ReadFile(path)
	if err != nil {
		color.Red("No report found for plugin '%s'!", plugin)
		return fmt.Errorf("reading report for %s: %w", plugin, err)
	}
	fmt.Print(string(data))
	return nil
}

func listReports(reportsDir string) error {
	files, err := reportFiles(reportsDir)
	if err != nil || len(files) == 0 {
		color.Red("No reports found!")
		return fmt.Errorf("no reports in %s", reportsDir)
	}

	fmt.Printf("%-40s %-27s %s\n", "Plugin", "Generated", "Issues")
	for _, f := range files {
		generated, issues := reportMetadata(filepath.Join(reportsDir, f))
		plugin := strings.TrimSuffix(f, "_report.md")
		fmt.Printf("%-40s %-27s %s\n", plugin, generated, issues)
	}
	return nil
}

// reportFiles returns the *_report.md names in reportsDir, sorted.
func reportFiles(reportsDir string) ([]string, error) {
	entries, err := os.ReadDir(reportsDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), "_report.md") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

var (
	generatedAtRe = regexp.MustCompile(`(?m)^Generated at: (.+)$`)
	totalIssuesRe = regexp.MustCompile(`(?m)^- Total Issues: (\d+)$`)
)

// reportMetadata scrapes the generation timestamp and issue count from a
// rendered report. Unreadable or unrecognized files report "N/A".
func reportMetadata(path string) (generated, issues string) {
	generated, issues = "N/A", "N/A"
	data, err := os.ReadFile(path)
	if err != nil {
		return generated, issues
	}
	if m := generatedAtRe.FindSubmatch(data); m != nil {
		generated = string(m[1])
	}
	if m := totalIssuesRe.FindSubmatch(data); m != nil {
		issues = string(m[1])
	}
	return generated, issues
}
