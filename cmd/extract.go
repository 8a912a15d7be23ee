package cmd

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/soccer-extract-cli/config"
	"github.com/user/soccer-extract-cli/db"
	"github.com/user/soccer-extract-cli/deps"
	"github.com/user/soccer-extract-cli/event"
	"github.com/user/soccer-extract-cli/extract"
	"github.com/user/soccer-extract-cli/match"
	"github.com/user/soccer-extract-cli/pkg/logging"
	"github.com/user/soccer-extract-cli/pkg/styles"
	"github.com/user/soccer-extract-cli/video"
)

var extractCmd = &cobra.Command{
	Use:   "extract <project-folder>",
	Short: "Extract clips and frames for every match folder",
	Long: `Extract event clips and sampled frames from every match folder under
the project folder. Each match folder must contain one commentary JSON file
and two half videos named *_1.mkv and *_2.mkv. A match with missing files is
skipped; the batch continues with the remaining matches.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runConfig(cmd)
		if err != nil {
			return err
		}

		if err := checkCodecDeps(); err != nil {
			return err
		}

		logger := logging.NewLogger(cfg.LogLevel)
		defer logger.Sync()

		var ledger *sql.DB
		if noLedger, _ := cmd.Flags().GetBool("no-ledger"); !noLedger {
			ledger, err = db.Open(cfg.DBPath)
			if err != nil {
				fmt.Printf("Warning: run ledger unavailable (%v), continuing without it\n", err)
				ledger = nil
			} else {
				defer ledger.Close()
			}
		}

		o := &match.Orchestrator{
			Cfg:    cfg,
			Codec:  video.NewFFmpeg(),
			Log:    logger,
			Ledger: ledger,
		}

		sum, err := o.Run(args[0])
		if err != nil {
			return err
		}

		printBatchSummary(cfg, sum)
		return nil
	},
}

var extractHalfCmd = &cobra.Command{
	Use:   "half <video-file> <events-json>",
	Short: "Extract clips and frames from a single half video",
	Long: `Extract event clips and sampled frames from one video file and one
commentary JSON file. The --half flag selects which half's events to use;
events without a half field are always included.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoPath, jsonPath := args[0], args[1]

		cfg, err := runConfig(cmd)
		if err != nil {
			return err
		}
		half, _ := cmd.Flags().GetInt("half")
		if half != 1 && half != 2 {
			return fmt.Errorf("--half must be 1 or 2, got %d", half)
		}

		if err := checkCodecDeps(); err != nil {
			return err
		}

		logger := logging.NewLogger(cfg.LogLevel)
		defer logger.Sync()

		events, err := event.ReadFile(jsonPath)
		if err != nil {
			return err
		}

		// Keep the selected half plus records with no half marker.
		selected := make([]event.Event, 0, len(events))
		for _, ev := range events {
			if ev.Half == half || ev.Half == 0 {
				selected = append(selected, ev)
			}
		}
		if len(selected) == 0 {
			fmt.Println("No timestamps found.")
			return nil
		}

		p := &extract.HalfProcessor{
			Codec:  video.NewFFmpeg(),
			Opts:   extract.Options{BeforeSec: cfg.BeforeSec, AfterSec: cfg.AfterSec, CadenceSec: cfg.CadenceSec},
			Router: extract.NewRouter(extract.RoutingMode(cfg.RoutingMode), cfg.OutputRoot),
			Log:    logger,
		}

		sum, err := p.Process(videoPath, selected, half)
		if err != nil {
			return err
		}

		fmt.Println(styles.Success.Render("Extraction complete"))
		printHalfTotals(sum)
		fmt.Printf("%s %s\n", styles.SecondaryText.Render("Output:"), styles.Info.Render(cfg.OutputRoot))
		return nil
	},
}

// runConfig loads the configuration and applies flag overrides on top
// of environment overrides.
func runConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputRoot, _ = flags.GetString("out")
	}
	if flags.Changed("before") {
		cfg.BeforeSec, _ = flags.GetFloat64("before")
	}
	if flags.Changed("after") {
		cfg.AfterSec, _ = flags.GetFloat64("after")
	}
	if flags.Changed("cadence") {
		cfg.CadenceSec, _ = flags.GetFloat64("cadence")
	}
	if flags.Changed("routing") {
		cfg.RoutingMode, _ = flags.GetString("routing")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func checkCodecDeps() error {
	if err := deps.CheckFfmpeg(); err != nil {
		return err
	}
	return deps.CheckFfprobe()
}

func printBatchSummary(cfg config.Config, sum match.Summary) {
	fmt.Println()
	fmt.Println(styles.Success.Render("All matches processed!"))
	fmt.Printf("%s %s\n", styles.SecondaryText.Render("Run ID:"), styles.Info.Render(sum.RunID))
	fmt.Printf("%s %d processed, %d failed\n", styles.SecondaryText.Render("Matches:"), sum.MatchesProcessed, sum.MatchesFailed)
	if sum.HalvesFailed > 0 {
		fmt.Println(styles.Warning.Render(fmt.Sprintf("Halves aborted: %d", sum.HalvesFailed)))
	}
	if sum.DroppedEvents > 0 {
		fmt.Println(styles.Warning.Render(fmt.Sprintf("Events with half outside {1,2}: %d", sum.DroppedEvents)))
	}
	fmt.Printf("%s %d\n", styles.SecondaryText.Render("Events skipped:"), sum.EventsSkipped)
	fmt.Printf("%s %d clips, %d stills (%d frames)\n", styles.SecondaryText.Render("Written:"),
		sum.ClipsWritten, sum.StillsWritten, sum.FramesWritten)

	out, err := filepath.Abs(cfg.OutputRoot)
	if err != nil {
		out = cfg.OutputRoot
	}
	fmt.Printf("%s %s\n", styles.SecondaryText.Render("Output:"), styles.Info.Render(out))
}

func printHalfTotals(sum extract.HalfSummary) {
	fmt.Printf("%s %d processed, %d skipped\n", styles.SecondaryText.Render("Events:"), sum.EventsProcessed, sum.EventsSkipped)
	fmt.Printf("%s %d clips, %d stills (%d frames)\n", styles.SecondaryText.Render("Written:"),
		sum.ClipsWritten, sum.StillsWritten, sum.FramesWritten)
}

func init() {
	for _, c := range []*cobra.Command{extractCmd, extractHalfCmd} {
		c.Flags().String("out", "", "output root directory (default from config)")
		c.Flags().Float64("before", config.DefaultBeforeSec, "seconds of video before each event")
		c.Flags().Float64("after", config.DefaultAfterSec, "seconds of video after each event")
		c.Flags().Float64("cadence", config.DefaultCadenceSec, "seconds between sampled still frames")
		c.Flags().String("routing", config.DefaultRoutingMode, "output layout: flat (by half) or categorized (by event type)")
	}
	extractCmd.Flags().Bool("no-ledger", false, "do not record this run in the ledger database")
	extractHalfCmd.Flags().Int("half", 1, "which half's events to extract (1 or 2)")

	extractCmd.AddCommand(extractHalfCmd)
	rootCmd.AddCommand(extractCmd)
}
