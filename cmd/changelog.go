package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zpark/eliza/internal/changelog"
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Assemble a changelog from GitHub releases",
	Long: `Fetch the repository's GitHub releases and assemble them into a
markdown changelog. By default only releases newer than the latest version
already present in the output file are prepended; --force-rebuild regenerates
the whole document.`,
	RunE: runChangelog,
}

var (
	changelogRepo    string
	changelogOutput  string
	changelogToken   string
	changelogRebuild bool
)

func init() {
	changelogCmd.Flags().StringVar(&changelogRepo, "repo", "elizaOS/eliza", "GitHub repository in owner/repo format")
	changelogCmd.Flags().StringVarP(&changelogOutput, "output", "o", "docs/changelog.md", "Output file path")
	changelogCmd.Flags().StringVar(&changelogToken, "token", "", "GitHub personal access token")
	changelogCmd.Flags().BoolVar(&changelogRebuild, "force-rebuild", false, "Rebuild the entire changelog instead of appending")
	rootCmd.AddCommand(changelogCmd)
}

func runChangelog(cmd *cobra.Command, args []string) error {
	t, err := newToolkit()
	if err != nil {
		return err
	}

	token := changelogToken
	if token == "" {
		token = t.cfg.GitHubToken
	}

	client := changelog.NewClient(token, t.log)
	releases, err := client.FetchReleases(changelogRepo)
	if err != nil {
		return err
	}
	t.log.Infof("fetched %d releases from %s", len(releases), changelogRepo)

	outPath := t.path(changelogOutput)
	existing := ""
	if !changelogRebuild {
		if data, err := os.ReadFile(outPath); err == nil {
			existing = string(data)
		}
	}

	if since := changelog.ExtractLatestVersion(existing); since != "" {
		releases = changelog.FilterSince(releases, since)
		t.log.Infof("latest recorded version is %s, %d new releases", since, len(releases))
	}
	if len(releases) == 0 && existing != "" {
		color.Green("Changelog already up to date: %s", outPath)
		return nil
	}

	content := changelog.Assemble(existing, releases)
	if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	color.Green("Wrote %d releases to %s", len(releases), outPath)
	return nil
}
