package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zpark/eliza/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "eliza",
	Short: "Maintenance toolkit for the elizaOS monorepo",
	Long: `eliza is a maintenance toolkit for the elizaOS monorepo. It runs
bug-hunt analysis sessions over plugin packages, resumes interrupted sessions
from checkpoints, renders markdown reports, assembles release changelogs, and
enriches partner documentation.

Run without a subcommand for the interactive menu.`,
	RunE: runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "config/analysis.config.json", "Analysis configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	viper.SetEnvPrefix("ELIZA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// runMenu shows the interactive menu and dispatches the chosen subcommand.
func runMenu(cmd *cobra.Command, args []string) error {
	action, err := tui.Run()
	if err != nil {
		return err
	}
	switch action {
	case tui.ActionStart:
		return runHunt(cmd, nil)
	case tui.ActionResume:
		return runResume(cmd, nil)
	case tui.ActionReports:
		return runReports(cmd, nil)
	default:
		fmt.Println("Goodbye!")
		return nil
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
