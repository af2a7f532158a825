package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zpark/eliza/internal/research"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Enrich partner documentation with generated research",
	Long: `Walk the partner documentation directory and, for every partner page,
request up-to-date research from the completion API. Writes an enhanced page
(index2.md) and a condensed brief (brief.md) next to each index.md. Requires
an OpenRouter API key (--api-key, config, or OPENROUTER_API_KEY).`,
	RunE: runResearch,
}

var (
	researchDir    string
	researchAPIKey string
)

func init() {
	researchCmd.Flags().StringVarP(&researchDir, "dir", "d", "", "Partner docs directory (default from config)")
	researchCmd.Flags().StringVar(&researchAPIKey, "api-key", "", "OpenRouter API key")
	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	t, err := newToolkit()
	if err != nil {
		return err
	}

	key := researchAPIKey
	if key == "" {
		key = t.cfg.OpenRouterKey
	}
	if key == "" {
		return fmt.Errorf("no API key: set --api-key, openrouter_api_key in config, or OPENROUTER_API_KEY")
	}

	dir := researchDir
	if dir == "" {
		dir = t.cfg.PartnersDir
	}
	dir = t.path(dir)

	client := research.NewClient(key, t.cfg.ResearchModel, t.log)
	gen := research.NewGenerator(client, t.cfg.RequestDelay, t.log)

	outcomes, err := gen.ProcessPartners(dir)
	if err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			color.Red("  %s: %v", o.Partner, o.Err)
			continue
		}
		color.Green("  %s: %s", o.Partner, o.EnhancedPath)
	}
	color.Green("Processed %d partners, %d failed", len(outcomes)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d partners failed", failed)
	}
	return nil
}
