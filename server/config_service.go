package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoffmann-muki/omnireduce-experiments/config"
)

// ConfigService exposes the active configuration over the API.
type ConfigService struct {
	path string
	cfg  *config.Config
}

// NewConfigService creates the config service. path is the file that
// UpdateConfig persists to.
func NewConfigService(path string, cfg *config.Config) *ConfigService {
	return &ConfigService{path: path, cfg: cfg}
}

// GetConfig returns the configuration the server is running with.
// GET /api/config
func (s *ConfigService) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, Success(s.cfg))
}

// UpdateConfig validates the posted configuration and persists it to the
// config file. The running server keeps its current settings until
// restarted.
// PUT /api/config
func (s *ConfigService) UpdateConfig(c *gin.Context) {
	var cfg config.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, Error(400, fmt.Sprintf("invalid request body: %v", err)))
		return
	}

	cfg.ApplyDefaults()

	if validationErrors := validateConfig(&cfg); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, ErrorWithData(400, "config validation failed", gin.H{
			"valid":  false,
			"errors": validationErrors,
		}))
		return
	}

	if err := config.SaveConfig(s.path, &cfg); err != nil {
		c.JSON(http.StatusInternalServerError, Error(500, fmt.Sprintf("failed to save config: %v", err)))
		return
	}

	c.JSON(http.StatusOK, SuccessWithMessage("config saved, restart the server to apply", nil))
}

// ValidateConfig checks a posted configuration without saving it.
// POST /api/config/validate
func (s *ConfigService) ValidateConfig(c *gin.Context) {
	var cfg config.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, Error(400, fmt.Sprintf("invalid request body: %v", err)))
		return
	}

	cfg.ApplyDefaults()

	if validationErrors := validateConfig(&cfg); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, ErrorWithData(400, "config validation failed", gin.H{
			"valid":  false,
			"errors": validationErrors,
		}))
		return
	}

	c.JSON(http.StatusOK, SuccessWithMessage("config is valid", gin.H{
		"valid":  true,
		"config": cfg,
	}))
}

// validateConfig collects every problem with a configuration instead of
// stopping at the first one.
func validateConfig(cfg *config.Config) []string {
	var validationErrors []string

	if cfg.ResultsRoot == "" {
		validationErrors = append(validationErrors, "results_root must not be empty")
	}

	if cfg.ExpectedWorkers < 0 {
		validationErrors = append(validationErrors, fmt.Sprintf("expected_workers cannot be negative, current value: %d", cfg.ExpectedWorkers))
	}

	if cfg.StdWarnRatio < 0 {
		validationErrors = append(validationErrors, fmt.Sprintf("std_warn_ratio cannot be negative, current value: %f", cfg.StdWarnRatio))
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		validationErrors = append(validationErrors, fmt.Sprintf("server.port must be between 1 and 65535, current value: %d", cfg.Server.Port))
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("log.level must be debug, info, warn or error, current value: %s", cfg.Log.Level))
	}

	if cfg.Log.Format != config.LogFormatText && cfg.Log.Format != config.LogFormatJSON {
		validationErrors = append(validationErrors, fmt.Sprintf("log.format must be %s or %s, current value: %s", config.LogFormatText, config.LogFormatJSON, cfg.Log.Format))
	}

	return validationErrors
}
