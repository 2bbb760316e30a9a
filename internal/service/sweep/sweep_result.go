package sweep

import (
	"github.com/hoffmann-muki/omnireduce-experiments/internal/runparams"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/service/extract"
)

// Run statuses
const (
	StatusOK      = "OK"
	StatusSkipped = "SKIPPED"
)

// RunResult is the outcome for a single run directory.
type RunResult struct {
	Dir     string           `json:"dir"`
	Params  runparams.Params `json:"params"`
	Status  string           `json:"status"` // OK or SKIPPED
	Reason  string           `json:"reason,omitempty"`
	Summary *extract.Summary `json:"summary,omitempty"`
}

// SweepSummary is the complete sweep report for API responses and exports.
type SweepSummary struct {
	Root         string      `json:"root"`
	Timestamp    string      `json:"timestamp"`
	Runs         []RunResult `json:"runs"`
	OKCount      int         `json:"ok_count"`
	SkippedCount int         `json:"skipped_count"`
}
