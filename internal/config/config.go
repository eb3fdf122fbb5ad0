// Package config defines the analyzer configuration and how it is loaded.
//
// Conventions:
// - Defaults reproduce the fixed relative paths the tool has always used.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/spfanalyzer/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// CurricularPath is the comma-separated curricular input.
	CurricularPath string `koanf:"curricular_path"`

	// ExtracurricularPath is the nested key:value extracurricular input.
	ExtracurricularPath string `koanf:"extracurricular_path"`

	// OutputPath is overwritten on every run.
	OutputPath string `koanf:"output_path"`

	// MaxRecords caps how many records are read from each input.
	MaxRecords int `koanf:"max_records"`

	// MetricsFile, when set, receives the run metrics in Prometheus text format.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		CurricularPath:      "data/a1-data-curricular.csv",
		ExtracurricularPath: "data/a1-data-extracurricular.yaml",
		OutputPath:          "output.csv",
		MaxRecords:          model.DefaultMaxRecords,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate(_ context.Context) error {
	switch {
	case strings.TrimSpace(c.CurricularPath) == "":
		return fmt.Errorf("%w: curricular_path must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.ExtracurricularPath) == "":
		return fmt.Errorf("%w: extracurricular_path must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.OutputPath) == "":
		return fmt.Errorf("%w: output_path must not be empty", ErrInvalidConfig)
	case c.MaxRecords <= 0:
		return fmt.Errorf("%w: max_records must be positive, got %d", ErrInvalidConfig, c.MaxRecords)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
