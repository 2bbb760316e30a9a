package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	LogFormatText string = "text"
	LogFormatJSON string = "json"
)

// Config holds the entire configuration from the YAML file.
type Config struct {
	ResultsRoot     string       `yaml:"results_root" json:"results_root"`
	ExpectedWorkers int          `yaml:"expected_workers" json:"expected_workers"` // 0 means derive from node_<N>
	StdWarnRatio    float64      `yaml:"std_warn_ratio" json:"std_warn_ratio"`
	Export          Export       `yaml:"export" json:"export"`
	Server          ServerConfig `yaml:"server" json:"server"`
	Log             LogConfig    `yaml:"log" json:"log"`
}

// Export holds the optional sweep report destinations.
type Export struct {
	CSV      string `yaml:"csv" json:"csv"`
	Markdown string `yaml:"markdown" json:"markdown"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port" json:"port"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// HighStd reports whether a metric's spread is large enough to flag in
// reports, relative to its mean.
func (c *Config) HighStd(mean, std float64) bool {
	return c.StdWarnRatio > 0 && std > c.StdWarnRatio*mean
}

// RunDir resolves a run directory against the configured results root.
// Absolute paths are returned unchanged.
func (c *Config) RunDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.ResultsRoot, dir)
}

func LoadConfig(filePath string) (*Config, error) {
	var cfg Config
	yamlFile, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
	}
	err = yaml.Unmarshal(yamlFile, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML content from '%s': %w", filePath, err)
	}
	return &cfg, nil
}

// SaveConfig writes the config to filePath as YAML.
func SaveConfig(filePath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file '%s': %w", filePath, err)
	}
	return nil
}

// EnsureConfigFile creates filePath with default values when it does not
// exist yet. An existing file is left untouched.
func EnsureConfigFile(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config file '%s': %w", filePath, err)
	}
	return SaveConfig(filePath, NewDefaultConfig())
}

// NewDefaultConfig creates a new config with default values
func NewDefaultConfig() *Config {
	return &Config{
		ResultsRoot:     "./results",
		ExpectedWorkers: 0,
		StdWarnRatio:    0.5,
		Export: Export{
			CSV:      "",
			Markdown: "",
		},
		Server: ServerConfig{
			Port: 8090,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}

// ApplyDefaults applies default values to missing fields in the config
func (c *Config) ApplyDefaults() {
	if c.ResultsRoot == "" {
		c.ResultsRoot = "./results"
	}
	// ExpectedWorkers defaults to 0, meaning derive from the run path.
	if c.StdWarnRatio == 0 {
		c.StdWarnRatio = 0.5
	}
	// Export defaults stay empty, meaning no file export.
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = 8090
	}
	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = LogFormatText
	}
}
