package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/soccer-extract-cli/pkg/styles"
)

var clipExts = map[string]bool{".mp4": true, ".mkv": true}
var frameExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

var statsCmd = &cobra.Command{
	Use:   "stats <extract-dir>",
	Short: "Count extracted clips and frames per category",
	Long: `Count extracted clips and frames per category subdirectory under an
extraction output directory (one containing clips/ and frames/ subtrees, as
produced by categorized routing).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base := args[0]

		clipCounts, err := countFilesPerSubdir(filepath.Join(base, "clips"), clipExts)
		if err != nil {
			return err
		}
		frameCounts, err := countFilesPerSubdir(filepath.Join(base, "frames"), frameExts)
		if err != nil {
			return err
		}

		labels := labelUnion(clipCounts, frameCounts)
		if len(labels) == 0 {
			fmt.Println("No category directories found.")
			return nil
		}

		printStatsTable(labels, clipCounts, frameCounts)
		return nil
	},
}

// countFilesPerSubdir counts files with matching extensions in each
// immediate subdirectory of root. A missing root yields no counts
// rather than an error.
func countFilesPerSubdir(root string, exts map[string]bool) (map[string]int, error) {
	counts := make(map[string]int)

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return counts, nil
		}
		return nil, err
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(root, e.Name()))
		if err != nil {
			return nil, err
		}
		n := 0
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			if exts[strings.ToLower(filepath.Ext(f.Name()))] {
				n++
			}
		}
		counts[e.Name()] = n
	}
	return counts, nil
}

func labelUnion(a, b map[string]int) []string {
	set := make(map[string]bool)
	for l := range a {
		set[l] = true
	}
	for l := range b {
		set[l] = true
	}
	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

func printStatsTable(labels []string, clips, frames map[string]int) {
	width := len("Category")
	for _, l := range labels {
		if len(l) > width {
			width = len(l)
		}
	}

	fmt.Println(styles.Header.Render("Extraction counts"))
	fmt.Printf("%s  %s  %s\n",
		styles.SubHeader.Render(pad("Category", width)),
		styles.SubHeader.Render(pad("Clips", 6)),
		styles.SubHeader.Render("Frames"),
	)

	totalClips, totalFrames := 0, 0
	for _, l := range labels {
		fmt.Printf("%s  %s  %s\n",
			styles.PrimaryText.Render(pad(l, width)),
			styles.Info.Render(pad(fmt.Sprintf("%d", clips[l]), 6)),
			styles.Info.Render(fmt.Sprintf("%d", frames[l])),
		)
		totalClips += clips[l]
		totalFrames += frames[l]
	}

	fmt.Printf("%s  %s  %s\n",
		styles.SecondaryText.Render(pad("total", width)),
		styles.SecondaryText.Render(pad(fmt.Sprintf("%d", totalClips), 6)),
		styles.SecondaryText.Render(fmt.Sprintf("%d", totalFrames)),
	)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
