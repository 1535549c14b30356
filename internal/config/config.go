// Package config handles stlpath configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap/zapcore"
)

// Config holds all settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Decode  DecodeConfig  `yaml:"decode"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds mesh construction settings.
type MeshConfig struct {
	WeldTolerance float64 `yaml:"weld_tolerance"`
}

// DecodeConfig holds STL decoding settings.
type DecodeConfig struct {
	ParallelThreshold int `yaml:"parallel_threshold"` // Binary record count at which decoding fans out
	Workers           int `yaml:"workers"`            // 0 means GOMAXPROCS
}

// ExportConfig holds path export settings.
type ExportConfig struct {
	Path string `yaml:"path"` // Empty writes to stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			WeldTolerance: 1e-6,
		},
		Decode: DecodeConfig{
			ParallelThreshold: 100_000,
			Workers:           0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the config for values the pipeline cannot work with.
func (c *Config) Validate() error {
	var errs []error

	tol := c.Mesh.WeldTolerance
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		errs = append(errs, fmt.Errorf("mesh.weld_tolerance must be a positive number, got %v", tol))
	}
	if c.Decode.ParallelThreshold < 0 {
		errs = append(errs, fmt.Errorf("decode.parallel_threshold must not be negative, got %d", c.Decode.ParallelThreshold))
	}
	if c.Decode.Workers < 0 {
		errs = append(errs, fmt.Errorf("decode.workers must not be negative, got %d", c.Decode.Workers))
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	return errors.Join(errs...)
}
