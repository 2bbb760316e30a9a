package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoffmann-muki/omnireduce-experiments/internal/service/sweep"
)

var (
	csvPath      string
	markdownPath string
	resultsDir   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze every run under the results root and display a statistics table",
	Long: `Walk the results root, extract latency statistics from every run
directory that holds worker logs and display them as one table sorted
by node count and message size. Runs without usable timings are listed
as skipped instead of failing the whole analysis.

Examples:
  # Analyze the configured results root
  omnistat analyze

  # Analyze another tree and export both report formats
  omnistat analyze --results-dir /mnt/benchmarks --csv stats.csv --markdown stats.md`,
	Run: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&csvPath, "csv", "", "Write a CSV report to this file")
	analyzeCmd.Flags().StringVar(&markdownPath, "markdown", "", "Write a markdown report to this file")
	analyzeCmd.Flags().StringVar(&resultsDir, "results-dir", "", "Results root to analyze (default from config)")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	cfg, err := loadConfigOrDefault()
	if err != nil {
		fmt.Printf("Error reading config: %v\n", err)
		return
	}

	root := resultsDir
	if root == "" {
		root = cfg.ResultsRoot
	}

	sweeper := sweep.New(cfg)
	summary, err := sweeper.DoSweep(root)
	if err != nil {
		fmt.Printf("Error analyzing results: %v\n", err)
		return
	}

	sweeper.Display(summary)

	if out := pick(csvPath, cfg.Export.CSV); out != "" {
		if err := sweep.ExportCSV(summary, out); err != nil {
			fmt.Printf("Error generating CSV file: %v\n", err)
		} else {
			fmt.Printf("\nCSV report generated: %s\n", out)
		}
	}

	if out := pick(markdownPath, cfg.Export.Markdown); out != "" {
		if err := sweep.ExportMarkdown(summary, out); err != nil {
			fmt.Printf("Error generating markdown file: %v\n", err)
		} else {
			fmt.Printf("\nMarkdown report generated: %s\n", out)
		}
	}
}

// pick returns the flag value when set, otherwise the config value.
func pick(flagValue, cfgValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfgValue
}
