// Package config loads sienapipe configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where LoadConfig looks when no --config flag is given.
const DefaultConfigPath = ".sienapipe/config.yaml"

// Config represents sienapipe configuration options
type Config struct {
	// SienaPath is the path to the SIENA executable
	SienaPath string `yaml:"siena_path"`

	// SienaDBPath is the path to the SIENA search database
	SienaDBPath string `yaml:"siena_db_path"`

	// OutputDir is the directory where per-target results are written
	OutputDir string `yaml:"output_dir"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs will be written
	LogDir string `yaml:"log_dir"`

	// HistoryDB is the path to the SQLite run-history database
	HistoryDB string `yaml:"history_db"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		SienaPath: "siena",
		OutputDir: ".sienapipe/output",
		LogLevel:  "info",
		LogDir:    ".sienapipe/logs",
		HistoryDB: ".sienapipe/history.db",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
// Values present in the file override defaults; absent values keep defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-empty values from file (merging with defaults)
	if fileCfg.SienaPath != "" {
		cfg.SienaPath = fileCfg.SienaPath
	}
	if fileCfg.SienaDBPath != "" {
		cfg.SienaDBPath = fileCfg.SienaDBPath
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}
	if fileCfg.HistoryDB != "" {
		cfg.HistoryDB = fileCfg.HistoryDB
	}

	return cfg, nil
}
