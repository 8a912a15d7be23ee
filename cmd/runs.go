package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/soccer-extract-cli/config"
	"github.com/user/soccer-extract-cli/db"
	"github.com/user/soccer-extract-cli/pkg/styles"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded extraction runs",
	Long:  `List past batch extraction runs from the run ledger, most recent first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbPath := cfg.DBPath
		if p, _ := cmd.Flags().GetString("db"); p != "" {
			dbPath = p
		}

		conn, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open run ledger: %w", err)
		}
		defer conn.Close()

		runs, err := db.ListRuns(conn)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		fmt.Println(styles.Header.Render("Extraction runs"))
		for _, r := range runs {
			status := styles.Success.Render("finished")
			if r.FinishedAt == nil {
				status = styles.Warning.Render("unfinished")
			}
			fmt.Printf("%s  %s  %s\n",
				styles.Info.Render(r.ID),
				styles.SecondaryText.Render(r.StartedAt.Format("2006-01-02 15:04:05")),
				status,
			)
			fmt.Printf("  %s %s -> %s (%s)\n",
				styles.SecondaryText.Render("paths:"), r.ProjectFolder, r.OutputRoot, r.RoutingMode)
			fmt.Printf("  %s %d processed, %d failed; %d events skipped; %d clips, %d stills\n",
				styles.SecondaryText.Render("matches:"),
				r.MatchesProcessed, r.MatchesFailed, r.EventsSkipped, r.ClipsWritten, r.StillsWritten)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().String("db", "", "run ledger database path (default from config)")
	rootCmd.AddCommand(runsCmd)
}
