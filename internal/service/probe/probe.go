package probe

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/hoffmann-muki/omnireduce-experiments/config"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/runparams"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/worklog"
	"github.com/hoffmann-muki/omnireduce-experiments/pkg/tools/logger"
)

// Probe statuses
const (
	StatusComplete = "COMPLETE"
	StatusPartial  = "PARTIAL"
	StatusEmpty    = "EMPTY"
	StatusError    = "ERROR"
)

// ProbeResult is the completeness check outcome for one run directory.
type ProbeResult struct {
	Dir         string           `json:"dir"`
	Params      runparams.Params `json:"params"`
	LogCount    int              `json:"log_count"`
	RecordCount int              `json:"record_count"`
	Expected    int              `json:"expected"`          // expected worker count, 0 when unknown
	Missing     []int            `json:"missing,omitempty"` // expected worker numbers without a log
	EmptyLogs   []string         `json:"empty_logs,omitempty"`
	Error       string           `json:"error,omitempty"`
	Status      string           `json:"status"` // COMPLETE, PARTIAL, EMPTY, ERROR
}

// Prober checks how far a benchmark has gotten by inspecting which worker
// logs exist and whether they carry timing records yet.
type Prober struct {
	cfg    *config.Config
	logger *slog.Logger
}

func New(cfg *config.Config) *Prober {
	return &Prober{
		cfg:    cfg,
		logger: logger.GetLogger().With("module", "PROBE"),
	}
}

// DoProbeWait keeps probing until every run under root is complete.
func (p *Prober) DoProbeWait(root string, probeInterval int) {
	for {
		results, err := p.DoProbe(root)
		if err != nil {
			p.logger.Error("Probe operation failed", "error", err)
			return
		}

		p.Display(results)

		allComplete := true
		for _, result := range results {
			if result.Status != StatusComplete {
				allComplete = false
				break
			}
		}

		if allComplete {
			p.logger.Info("All runs are complete")
			fmt.Println("✅ All runs have complete worker logs!")
			break
		}

		p.logger.Info("Waiting for next probe", "interval_seconds", probeInterval)
		fmt.Printf("Waiting %d seconds for next probe...\n\n", probeInterval)
		time.Sleep(time.Duration(probeInterval) * time.Second)
	}
}

// DoProbe checks every run directory under root.
func (p *Prober) DoProbe(root string) ([]ProbeResult, error) {
	p.logger.Info("Starting probe operation", slog.String("root", root))

	runs, err := worklog.DiscoverRuns(root)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		p.logger.Warn("No runs found under results root", slog.String("root", root))
		return nil, fmt.Errorf("no worker logs found under %s", root)
	}

	ret := p.probeAllRuns(runs)

	p.logger.Info("Probe operation completed successfully")
	return ret, nil
}

func (p *Prober) probeAllRuns(runs []string) []ProbeResult {
	var results []ProbeResult
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, dir := range runs {
		wg.Add(1)
		go func(dir string) {
			defer wg.Done()
			result := p.ProbeRun(dir)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(dir)
	}

	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Dir < results[j].Dir })
	return results
}

// ProbeRun checks a single run directory. Read failures are captured in
// the result instead of aborting the probe.
func (p *Prober) ProbeRun(dir string) ProbeResult {
	result := ProbeResult{
		Dir:    dir,
		Params: runparams.FromPath(dir),
	}

	logs, err := worklog.Discover(dir)
	if err != nil {
		result.Error = err.Error()
		result.Status = StatusError
		return result
	}
	result.LogCount = len(logs)
	result.Expected = p.expectedWorkers(result.Params)

	var present []int
	for _, path := range logs {
		timeOnly, _, err := worklog.ExtractFile(path)
		if err != nil {
			result.Error = err.Error()
			result.Status = StatusError
			return result
		}

		result.RecordCount += len(timeOnly)
		if len(timeOnly) == 0 {
			result.EmptyLogs = append(result.EmptyLogs, path)
		}
		if idx, ok := worklog.WorkerIndex(path); ok {
			present = append(present, idx)
		}
	}

	// Workers are numbered from 1, so worker_1.log through worker_N.log
	// are expected when the count is known.
	if result.Expected > 0 {
		result.Missing = lo.Without(lo.RangeFrom(1, result.Expected), present...)
	}

	switch {
	case result.LogCount == 0 || result.RecordCount == 0:
		result.Status = StatusEmpty
	case len(result.Missing) > 0 || len(result.EmptyLogs) > 0:
		result.Status = StatusPartial
	default:
		result.Status = StatusComplete
	}

	return result
}

// expectedWorkers resolves the expected worker count, preferring the
// configured value over the node count parsed from the run path.
func (p *Prober) expectedWorkers(params runparams.Params) int {
	if p.cfg.ExpectedWorkers > 0 {
		return p.cfg.ExpectedWorkers
	}
	if params.NodeCount != nil {
		return *params.NodeCount
	}
	return 0
}

func (p *Prober) Display(results []ProbeResult) {
	fmt.Printf("=== Probe Results (%s) ===\n", time.Now().Format("15:04:05"))
	fmt.Println("┌──────────────────────────────────────────┬───────────────┬───────┬─────────┬──────────────────────┐")
	fmt.Println("│ Run                                      │ Status        │ Logs  │ Records │ Details              │")
	fmt.Println("├──────────────────────────────────────────┼───────────────┼───────┼─────────┼──────────────────────┤")

	for _, result := range results {
		details := ""
		statusIcon := ""

		switch result.Status {
		case StatusComplete:
			statusIcon = "✅ COMPLETE"
			details = "All workers reported"
		case StatusPartial:
			statusIcon = "🟡 PARTIAL"
			if len(result.Missing) > 0 {
				details = fmt.Sprintf("%d worker(s) missing", len(result.Missing))
			} else {
				details = fmt.Sprintf("%d empty log(s)", len(result.EmptyLogs))
			}
		case StatusEmpty:
			statusIcon = "❌ EMPTY"
			details = "No records"
		case StatusError:
			statusIcon = "❌ ERROR"
			details = "Read failed"
		}

		fmt.Printf("│ %-40s │ %-12s │ %5d │ %7d │ %-20s │\n",
			result.Dir, statusIcon, result.LogCount, result.RecordCount, details)

		// If there's an error, display error message on next line
		if result.Error != "" {
			fmt.Printf("│ %-40s │ %-12s │ %5s │ %7s │ %-20s │\n",
				"", "Error:", "", "", result.Error)
		}
	}

	fmt.Println("└──────────────────────────────────────────┴───────────────┴───────┴─────────┴──────────────────────┘")

	// Display summary
	complete := 0
	partial := 0
	empty := 0
	errors := 0
	totalRecords := 0

	for _, result := range results {
		switch result.Status {
		case StatusComplete:
			complete++
		case StatusPartial:
			partial++
		case StatusEmpty:
			empty++
		case StatusError:
			errors++
		}
		totalRecords += result.RecordCount
	}

	fmt.Printf("\nSummary: %d complete, %d partial, %d empty, %d errors (%d records total)\n",
		complete, partial, empty, errors, totalRecords)
}
