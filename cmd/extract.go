package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoffmann-muki/omnireduce-experiments/internal/service/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <result_dir>",
	Short: "Extract latency statistics from the worker logs of one run",
	Long: `Pool the time_only and time_with_barrier records from every worker_*.log
in the given result directory and print one CSV line of statistics:

  node_count,msgsize,o_min,o_max,o_avg,o_std,b_min,b_max,b_avg,b_std

node_count and msgsize are recovered from node_<N> and msgsize_<S>MiB
path segments when present. The line goes to stdout so it can be pasted
or piped straight into a spreadsheet.

Examples:
  # Single run
  omnistat extract results/node_4/msgsize_16MiB

  # Collect lines for several runs
  for d in results/node_*/msgsize_*; do omnistat extract "$d"; done`,
	Run: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: omnistat extract <result_dir>")
		os.Exit(1)
	}

	summary, err := extract.New().DoExtract(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(summary.CSVLine)
}
