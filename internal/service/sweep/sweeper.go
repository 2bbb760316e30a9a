package sweep

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/hoffmann-muki/omnireduce-experiments/config"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/runparams"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/service/extract"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/worklog"
	"github.com/hoffmann-muki/omnireduce-experiments/pkg/tools/logger"
)

// sweeper extracts statistics from every run directory under a results root
type sweeper struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a new sweeper instance
func New(cfg *config.Config) *sweeper {
	return &sweeper{
		cfg:    cfg,
		logger: logger.GetLogger().With("module", "SWEEP"),
	}
}

// DoSweep extracts every run under root concurrently. Runs whose logs hold
// no complete timing records become SKIPPED entries instead of failing the
// sweep; I/O failures abort it.
func (s *sweeper) DoSweep(root string) (*SweepSummary, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, fmt.Errorf("results root not found: %s", root)
	}

	runs, err := worklog.DiscoverRuns(root)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no worker logs found under %s", root)
	}

	s.logger.Info("starting sweep", slog.String("root", root), slog.Int("runs", len(runs)))

	summary := &SweepSummary{
		Root:      root,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	}

	var mu sync.Mutex
	var eg errgroup.Group
	for _, dir := range runs {
		dir := dir // capture loop variable
		eg.Go(func() error {
			result, err := s.extractRun(dir)
			if err != nil {
				return fmt.Errorf("failed to extract %s: %w", dir, err)
			}

			mu.Lock()
			summary.Runs = append(summary.Runs, result)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sortRuns(summary.Runs)

	counts := lo.CountValuesBy(summary.Runs, func(r RunResult) string { return r.Status })
	summary.OKCount = counts[StatusOK]
	summary.SkippedCount = counts[StatusSkipped]

	return summary, nil
}

// extractRun runs the extractor on one directory. The sentinel outcomes
// (no logs, no timings) turn into SKIPPED results.
func (s *sweeper) extractRun(dir string) (RunResult, error) {
	runSummary, err := extract.New().DoExtract(dir)
	if err != nil {
		if errors.Is(err, extract.ErrNoWorkerLogs) || errors.Is(err, extract.ErrNoTimings) {
			s.logger.Warn("skipping run", slog.String("dir", dir), slog.Any("reason", err))
			return RunResult{
				Dir:    dir,
				Params: runparams.FromPath(dir),
				Status: StatusSkipped,
				Reason: err.Error(),
			}, nil
		}
		return RunResult{}, err
	}

	return RunResult{
		Dir:     dir,
		Params:  runSummary.Params,
		Status:  StatusOK,
		Summary: runSummary,
	}, nil
}

// sortRuns orders runs by node count, then message size, then path.
// Runs missing a parameter sort after those that have it.
func sortRuns(runs []RunResult) {
	sort.Slice(runs, func(i, j int) bool {
		if c := compareIntPtr(runs[i].Params.NodeCount, runs[j].Params.NodeCount); c != 0 {
			return c < 0
		}
		if c := compareIntPtr(runs[i].Params.MsgSizeMiB, runs[j].Params.MsgSizeMiB); c != 0 {
			return c < 0
		}
		return runs[i].Dir < runs[j].Dir
	})
}

func compareIntPtr(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
