package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoffmann-muki/omnireduce-experiments/internal/service/probe"
)

var (
	probeInterval int
	probeWait     bool
)

var probeCmd = &cobra.Command{
	Use:   "probe [results_root]",
	Short: "Probe worker log completeness for every run",
	Long: `Check which runs under the results root already have a full set of
worker logs with timing records. A run counts as complete when every
expected worker (from expected_workers in the config, or the node_<N>
path segment) has written at least one record.

Examples:
  # Check once against the configured results root
  omnistat probe

  # Check another tree
  omnistat probe /mnt/benchmarks

  # Keep probing every 10 seconds until all runs are complete
  omnistat probe --wait --interval 10`,
	Run: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().BoolVar(&probeWait, "wait", false, "Keep probing until every run is complete")
	probeCmd.Flags().IntVar(&probeInterval, "interval", 5, "Probe interval in seconds when waiting")
}

func runProbe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfigOrDefault()
	if err != nil {
		fmt.Printf("Error reading config: %v\n", err)
		return
	}

	root := cfg.ResultsRoot
	if len(args) > 0 {
		root = args[0]
	}

	prober := probe.New(cfg)

	if probeWait {
		prober.DoProbeWait(root, probeInterval)
		return
	}

	results, err := prober.DoProbe(root)
	if err != nil {
		fmt.Printf("Error probing runs: %v\n", err)
		return
	}

	prober.Display(results)
}
