package extract

import (
	"errors"

	"github.com/hoffmann-muki/omnireduce-experiments/internal/runparams"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/stats"
)

// Terminal failures of a single-directory extraction. The texts are
// user-facing: the CLI prints them verbatim on stderr.
var (
	ErrNoWorkerLogs = errors.New("No worker logs found")
	ErrNoTimings    = errors.New("No timings extracted")
)

// UnsetLabel is printed in the CSV for a run parameter the path did
// not provide.
const UnsetLabel = "NA"

// CSVHeader names the columns of the stats line, in output order.
const CSVHeader = "node_count,msgsize,o_min,o_max,o_avg,o_std,b_min,b_max,b_avg,b_std"

// Summary is the complete result of extracting one result directory.
type Summary struct {
	Dir             string           `json:"dir"`
	Params          runparams.Params `json:"params"`
	LogCount        int              `json:"log_count"`
	TimeOnly        stats.Summary    `json:"time_only"`
	TimeWithBarrier stats.Summary    `json:"time_with_barrier"`
	CSVLine         string           `json:"csv_line"`
}
