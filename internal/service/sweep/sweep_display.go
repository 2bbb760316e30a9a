package sweep

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/hoffmann-muki/omnireduce-experiments/internal/service/extract"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/stats"
)

// ANSI color codes
const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// Display renders the sweep as a terminal table. Rows are grouped by node
// count, with the label shown only on the first row of each group.
func (s *sweeper) Display(summary *SweepSummary) {
	fmt.Printf("=== Sweep Results - %s ===\n\n", summary.Timestamp)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{
		"Nodes",
		"MsgSize(MiB)",
		"Run",
		"Logs",
		"O Min",
		"O Max",
		"O Avg",
		"O Std",
		"B Min",
		"B Max",
		"B Avg",
		"B Std",
		"Status",
	})

	lastNodes := ""
	for _, run := range summary.Runs {
		nodes := run.Params.NodeCountLabel(extract.UnsetLabel)

		// Merge repeated node counts into one group
		displayNodes := nodes
		if nodes == lastNodes {
			displayNodes = ""
		} else {
			if lastNodes != "" {
				t.AppendSeparator()
			}
			lastNodes = nodes
		}

		if run.Status != StatusOK {
			t.AppendRow(table.Row{
				displayNodes,
				run.Params.MsgSizeLabel(extract.UnsetLabel),
				run.Dir,
				"-", "-", "-", "-", "-", "-", "-", "-", "-",
				colorYellow + StatusSkipped + colorReset,
			})
			continue
		}

		t.AppendRow(table.Row{
			displayNodes,
			run.Params.MsgSizeLabel(extract.UnsetLabel),
			run.Dir,
			run.Summary.LogCount,
			fmt.Sprintf("%.1f", run.Summary.TimeOnly.Min),
			fmt.Sprintf("%.1f", run.Summary.TimeOnly.Max),
			fmt.Sprintf("%.1f", run.Summary.TimeOnly.Mean),
			s.stdCell(run.Summary.TimeOnly),
			fmt.Sprintf("%.1f", run.Summary.TimeWithBarrier.Min),
			fmt.Sprintf("%.1f", run.Summary.TimeWithBarrier.Max),
			fmt.Sprintf("%.1f", run.Summary.TimeWithBarrier.Mean),
			s.stdCell(run.Summary.TimeWithBarrier),
			colorGreen + StatusOK + colorReset,
		})
	}

	t.Render()

	nodeCounts := lo.Uniq(lo.Map(summary.Runs, func(r RunResult, _ int) string {
		return r.Params.NodeCountLabel(extract.UnsetLabel)
	}))
	fmt.Printf("\nSummary: %s%d extracted%s, %s%d skipped%s across %d node counts (Total: %d runs)\n",
		colorGreen, summary.OKCount, colorReset,
		colorYellow, summary.SkippedCount, colorReset,
		len(nodeCounts), len(summary.Runs))
}

// stdCell formats a stddev cell, marking it red when the spread exceeds the
// configured warn ratio relative to the mean.
func (s *sweeper) stdCell(m stats.Summary) string {
	value := fmt.Sprintf("%.1f", m.Std)
	if s.cfg.HighStd(m.Mean, m.Std) {
		return colorRed + value + colorReset
	}
	return value
}

// ExportCSV writes one line per extracted run, the run directory followed
// by the same columns the extract command prints.
func ExportCSV(summary *SweepSummary, path string) error {
	var content strings.Builder
	content.WriteString("dir," + extract.CSVHeader + "\n")

	for _, run := range summary.Runs {
		if run.Status != StatusOK {
			continue
		}
		content.WriteString(run.Dir + "," + run.Summary.CSVLine + "\n")
	}

	if err := os.WriteFile(path, []byte(content.String()), 0644); err != nil {
		return fmt.Errorf("failed to write CSV export '%s': %w", path, err)
	}
	return nil
}

// ExportMarkdown writes the sweep as a markdown report.
func ExportMarkdown(summary *SweepSummary, path string) error {
	var content strings.Builder
	content.WriteString("# Latency Sweep Analysis\n\n")
	content.WriteString(fmt.Sprintf("Results root: `%s`\n\n", summary.Root))
	content.WriteString(fmt.Sprintf("Generated: %s\n\n", summary.Timestamp))

	content.WriteString("| Nodes | MsgSize (MiB) | Run | Logs | o_min | o_max | o_avg | o_std | b_min | b_max | b_avg | b_std |\n")
	content.WriteString("|-------|---------------|-----|------|-------|-------|-------|-------|-------|-------|-------|-------|\n")

	lastNodes := ""
	for _, run := range summary.Runs {
		if run.Status != StatusOK {
			continue
		}

		// Show node count only on the first row of each group
		nodes := run.Params.NodeCountLabel(extract.UnsetLabel)
		displayNodes := nodes
		if nodes == lastNodes {
			displayNodes = ""
		} else {
			lastNodes = nodes
		}

		content.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %.1f | %.1f | %.1f | %.1f | %.1f | %.1f | %.1f | %.1f |\n",
			displayNodes,
			run.Params.MsgSizeLabel(extract.UnsetLabel),
			run.Dir,
			run.Summary.LogCount,
			run.Summary.TimeOnly.Min,
			run.Summary.TimeOnly.Max,
			run.Summary.TimeOnly.Mean,
			run.Summary.TimeOnly.Std,
			run.Summary.TimeWithBarrier.Min,
			run.Summary.TimeWithBarrier.Max,
			run.Summary.TimeWithBarrier.Mean,
			run.Summary.TimeWithBarrier.Std))
	}

	if summary.SkippedCount > 0 {
		content.WriteString("\n## Skipped Runs\n\n")
		for _, run := range summary.Runs {
			if run.Status == StatusSkipped {
				content.WriteString(fmt.Sprintf("- `%s`: %s\n", run.Dir, run.Reason))
			}
		}
	}

	if err := os.WriteFile(path, []byte(content.String()), 0644); err != nil {
		return fmt.Errorf("failed to write markdown export '%s': %w", path, err)
	}
	return nil
}
