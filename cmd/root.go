package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/soccer-extract-cli/deps"
)

var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "soccer-extract-cli",
	Short: "Extract training clips and frames from soccer match video",
	Long: `soccer-extract-cli prepares machine-learning training data from
broadcast soccer video: given match recordings and timestamped commentary
events, it extracts short clips and sampled still frames around each event,
organized by half or by event category.

Features:
  - Batch extraction across many match folders
  - Single-video extraction for one half
  - Flat (by half) or categorized (by event type) output layouts
  - Per-category clip and frame counts
  - A run ledger recording every extraction outcome`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("soccer-extract-cli version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that all required system dependencies (ffmpeg, ffprobe) are installed and available.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true

		// Check ffmpeg
		if err := deps.CheckFfmpeg(); err != nil {
			fmt.Println("✗ ffmpeg: NOT FOUND")
			fmt.Printf("  Install from: %s\n", deps.FfmpegInstallURL)
			allGood = false
		} else {
			fmt.Println("✓ ffmpeg: OK")
		}

		// Check ffprobe
		if err := deps.CheckFfprobe(); err != nil {
			fmt.Println("✗ ffprobe: NOT FOUND")
			fmt.Printf("  Install from: %s\n", deps.FfmpegInstallURL)
			allGood = false
		} else {
			fmt.Println("✓ ffprobe: OK")
		}

		fmt.Println()
		if allGood {
			fmt.Println("All dependencies are installed!")
		} else {
			fmt.Println("Some dependencies are missing. Please install them to use all features.")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
