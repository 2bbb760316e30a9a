package extract

import (
	"fmt"
	"log/slog"

	"github.com/hoffmann-muki/omnireduce-experiments/internal/runparams"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/stats"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/worklog"
	"github.com/hoffmann-muki/omnireduce-experiments/pkg/tools/logger"
)

type extractor struct {
	logger *slog.Logger
}

// New creates a new extractor instance
func New() *extractor {
	return &extractor{
		logger: logger.GetLogger().With("module", "EXTRACT"),
	}
}

// DoExtract runs the full pipeline on one result directory: discover
// worker logs, pool both timing metrics across them (file order =
// sorted filename, then line order), reduce each pool to summary
// statistics and recover the run parameters from the path. It fails
// with ErrNoWorkerLogs when the directory has no worker logs and with
// ErrNoTimings when either metric ends up empty; both metrics must
// have data for the run to count.
func (e *extractor) DoExtract(dir string) (*Summary, error) {
	logs, err := worklog.Discover(dir)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoWorkerLogs
	}

	var allTimeOnly, allTimeWithBarrier []float64
	for _, path := range logs {
		timeOnly, timeWithBarrier, err := worklog.ExtractFile(path)
		if err != nil {
			return nil, err
		}
		allTimeOnly = append(allTimeOnly, timeOnly...)
		allTimeWithBarrier = append(allTimeWithBarrier, timeWithBarrier...)
	}

	e.logger.Debug("pooled worker timings",
		slog.String("dir", dir),
		slog.Int("logs", len(logs)),
		slog.Int("time_only_records", len(allTimeOnly)),
		slog.Int("time_with_barrier_records", len(allTimeWithBarrier)))

	timeOnlyStats, okOnly := stats.Summarize(allTimeOnly)
	timeWithBarrierStats, okBarrier := stats.Summarize(allTimeWithBarrier)
	if !okOnly || !okBarrier {
		return nil, ErrNoTimings
	}

	params := runparams.FromPath(dir)

	return &Summary{
		Dir:             dir,
		Params:          params,
		LogCount:        len(logs),
		TimeOnly:        timeOnlyStats,
		TimeWithBarrier: timeWithBarrierStats,
		CSVLine:         csvLine(params, timeOnlyStats, timeWithBarrierStats),
	}, nil
}

// csvLine renders the one-line stats output. Every float is formatted
// with exactly one digit after the decimal point.
func csvLine(params runparams.Params, timeOnly, timeWithBarrier stats.Summary) string {
	return fmt.Sprintf("%s,%s,%.1f,%.1f,%.1f,%.1f,%.1f,%.1f,%.1f,%.1f",
		params.NodeCountLabel(UnsetLabel),
		params.MsgSizeLabel(UnsetLabel),
		timeOnly.Min, timeOnly.Max, timeOnly.Mean, timeOnly.Std,
		timeWithBarrier.Min, timeWithBarrier.Max, timeWithBarrier.Mean, timeWithBarrier.Std)
}
