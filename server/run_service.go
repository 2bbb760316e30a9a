package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/hoffmann-muki/omnireduce-experiments/config"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/runparams"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/service/extract"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/service/probe"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/service/sweep"
	"github.com/hoffmann-muki/omnireduce-experiments/internal/worklog"
)

// RunService handles run discovery and statistics requests.
type RunService struct {
	cfg *config.Config
}

func NewRunService(cfg *config.Config) *RunService {
	return &RunService{cfg: cfg}
}

// RunInfo describes one discovered run directory.
type RunInfo struct {
	Dir      string           `json:"dir"`
	Params   runparams.Params `json:"params"`
	LogCount int              `json:"log_count"`
}

// ListRuns returns every run directory under the results root.
// GET /api/runs?root=<dir>
func (s *RunService) ListRuns(c *gin.Context) {
	root := c.DefaultQuery("root", s.cfg.ResultsRoot)

	if _, err := os.Stat(root); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, Error(404, fmt.Sprintf("results root not found: %s", root)))
		return
	}

	dirs, err := worklog.DiscoverRuns(root)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Error(500, fmt.Sprintf("failed to list runs: %v", err)))
		return
	}

	runs := make([]RunInfo, 0, len(dirs))
	for _, dir := range dirs {
		logs, err := worklog.Discover(dir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Error(500, fmt.Sprintf("failed to inspect run '%s': %v", dir, err)))
			return
		}
		runs = append(runs, RunInfo{
			Dir:      dir,
			Params:   runparams.FromPath(dir),
			LogCount: len(logs),
		})
	}

	c.JSON(http.StatusOK, Success(runs))
}

// GetSummary returns latency statistics for a single run directory.
// Relative dirs are resolved against the results root.
// GET /api/runs/summary?dir=<run>
func (s *RunService) GetSummary(c *gin.Context) {
	dir := c.Query("dir")
	if dir == "" {
		c.JSON(http.StatusBadRequest, Error(400, "dir query parameter is required"))
		return
	}

	summary, err := extract.New().DoExtract(s.cfg.RunDir(dir))
	if err != nil {
		if errors.Is(err, extract.ErrNoWorkerLogs) || errors.Is(err, extract.ErrNoTimings) {
			c.JSON(http.StatusNotFound, Error(404, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, Error(500, fmt.Sprintf("extraction failed: %v", err)))
		return
	}

	c.JSON(http.StatusOK, Success(summary))
}

// GetSweep extracts statistics for every run under the results root.
// GET /api/sweep?root=<dir>
func (s *RunService) GetSweep(c *gin.Context) {
	root := c.DefaultQuery("root", s.cfg.ResultsRoot)

	if _, err := os.Stat(root); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, Error(404, fmt.Sprintf("results root not found: %s", root)))
		return
	}

	summary, err := sweep.New(s.cfg).DoSweep(root)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Error(500, fmt.Sprintf("sweep failed: %v", err)))
		return
	}

	c.JSON(http.StatusOK, Success(summary))
}

// GetProbe reports worker log completeness for every run.
// GET /api/probe?root=<dir>
func (s *RunService) GetProbe(c *gin.Context) {
	root := c.DefaultQuery("root", s.cfg.ResultsRoot)

	if _, err := os.Stat(root); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, Error(404, fmt.Sprintf("results root not found: %s", root)))
		return
	}

	summary, err := probe.New(s.cfg).DoProbeAndGetSummary(root)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Error(500, fmt.Sprintf("probe failed: %v", err)))
		return
	}

	c.JSON(http.StatusOK, Success(summary))
}
