package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zpark/eliza/internal/checkpoint"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Inspect or resume a previous analysis session",
	Long: `Inspect a previous analysis session. Without --session, lists every
checkpointed session. With --session, loads its latest snapshot and shows
which plugins were analyzed and which failed, so the remaining ones can be
rerun with 'eliza hunt --plugins ...'.`,
	RunE: runResume,
}

var resumeSession string

func init() {
	resumeCmd.Flags().StringVarP(&resumeSession, "session", "s", "", "Session name to resume")
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	t, err := newToolkit()
	if err != nil {
		return err
	}
	store, err := checkpoint.NewStore(t.path(t.cfg.CheckpointsDir), t.log)
	if err != nil {
		return err
	}

	if resumeSession == "" {
		return listSessions(store)
	}

	sess, err := store.LoadLatest(resumeSession)
	if err != nil {
		return err
	}
	if sess == nil {
		color.Red("Session '%s' not found!", resumeSession)
		return fmt.Errorf("session %q not found", resumeSession)
	}
	printSession(sess)
	return nil
}

func listSessions(store *checkpoint.Store) error {
	sessions := store.ListSnapshots()
	if len(sessions) == 0 {
		color.Red("No previous sessions found!")
		return fmt.Errorf("no previous sessions found")
	}

	fmt.Printf("%-30s %-25s %s\n", "Session Name", "Last Updated", "Plugins Analyzed")
	for _, s := range sessions {
		fmt.Printf("%-30s %-25s %d\n", s.SessionName, s.LastUpdated, len(s.PluginsAnalyzed))
	}
	fmt.Println("\nRun 'eliza resume --session <name>' for details.")
	return nil
}

func printSession(sess *checkpoint.Session) {
	color.Green("Session: %s", sess.SessionName)
	fmt.Printf("Started:      %s\n", sess.StartedAt)
	fmt.Printf("Last updated: %s\n", sess.LastUpdated)
	fmt.Printf("Analyzed:     %d plugins\n", len(sess.PluginsAnalyzed))
	for _, p := range sess.PluginsAnalyzed {
		fmt.Printf("  - %s (%s)\n", p.PluginName, p.AnalyzedAt)
	}
	if len(sess.Errors) > 0 {
		color.Red("Errors:       %d", len(sess.Errors))
		for _, e := range sess.Errors {
			fmt.Printf("  - %s: %s\n", e.PluginName, e.Error)
		}
	}
}
