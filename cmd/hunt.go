package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zpark/eliza/internal/analyzer"
	"github.com/zpark/eliza/internal/checkpoint"
	"github.com/zpark/eliza/internal/report"
)

var huntCmd = &cobra.Command{
	Use:   "hunt",
	Short: "Run a bug-hunt analysis session over plugin packages",
	Long: `Run a bug-hunt analysis session. Discovers plugin-* packages with
TypeScript sources under the configured plugins directory (or analyzes the
packages named with --plugins), lints each with biome, checks circular
dependencies with madge, writes a markdown report per package, and checkpoints
progress after every package so an interrupted run can be resumed.`,
	RunE: runHunt,
}

var (
	huntPlugins []string
	huntSession string
)

func init() {
	huntCmd.Flags().StringSliceVarP(&huntPlugins, "plugins", "p", nil, "Specific plugins to analyze (default: all plugin-* packages)")
	huntCmd.Flags().StringVarP(&huntSession, "session", "s", "bug_hunt_session", "Checkpoint session name")
	rootCmd.AddCommand(huntCmd)
}

func runHunt(cmd *cobra.Command, args []string) error {
	t, err := newToolkit()
	if err != nil {
		return err
	}

	store, err := checkpoint.NewStore(t.path(t.cfg.CheckpointsDir), t.log)
	if err != nil {
		return err
	}
	if _, err := store.StartSession(huntSession); err != nil {
		return err
	}

	excludes, err := analyzer.CompileExcludes(t.cfg.ExcludePatterns)
	if err != nil {
		return err
	}

	pluginsDir := t.path(t.cfg.PluginsDir)
	fmt.Printf("Looking for plugins in: %s\n", pluginsDir)
	targets, err := analyzer.Discover(pluginsDir, huntPlugins, excludes)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		color.Red("No plugins with TypeScript files found!")
		return nil
	}

	reportsDir := t.path(t.cfg.ReportsDir)
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return fmt.Errorf("creating reports directory: %w", err)
	}

	an := analyzer.New(t.root, t.log)
	failed := 0
	for i, target := range targets {
		name := filepath.Base(target)
		color.Yellow("[%d/%d] Analyzing %s...", i+1, len(targets), name)

		result := an.Analyze(target)

		logs := append([]string{}, result.Lint.AllOutput...)
		logs = append(logs, result.Lint.ErrorLogs...)
		rep := report.Build(name, result.Lint.Diagnostics, result.Lint.Summary, logs)
		if _, err := rep.Save(reportsDir); err != nil {
			t.log.Errorf("saving report for %s: %v", name, err)
			store.AddError(name, err.Error())
			failed++
			continue
		}

		store.SaveProgress(name, result.AsMap())
		if result.Success {
			color.Green("  %s: clean", name)
		} else {
			color.Red("  %s: %d issues", name, rep.TotalIssues)
		}
	}

	color.Green("Analysis complete: %d analyzed, %d failed. Reports in %s", len(targets)-failed, failed, reportsDir)
	return nil
}
