// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the service configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	OutputsDir string `json:"outputs_dir,omitempty"` // Directory for run artifacts and scratchpads
	DataCSV    string `json:"data_csv,omitempty"`    // Path to the employee records CSV
	PolicyFile string `json:"policy_file,omitempty"` // Path to the YAML policy file

	// Server
	Port string `json:"port,omitempty"` // HTTP listen port

	// Limits
	MaxConcurrentRuns int `json:"max_concurrent_runs,omitempty"` // Runs executing at once; 0 means unlimited

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.MaxConcurrentRuns < 0 {
		return fmt.Errorf("config error: 'max_concurrent_runs' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.DataCSV != "" {
		if _, err := os.Stat(c.DataCSV); os.IsNotExist(err) {
			return fmt.Errorf("config error: data CSV not found: %s", c.DataCSV)
		}
	}
	if c.PolicyFile != "" {
		if _, err := os.Stat(c.PolicyFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: policy file not found: %s", c.PolicyFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.OutputsDir == "" {
		result.OutputsDir = defaults.OutputsDir
	}
	if result.DataCSV == "" {
		result.DataCSV = defaults.DataCSV
	}
	if result.PolicyFile == "" {
		result.PolicyFile = defaults.PolicyFile
	}
	if result.Port == "" {
		result.Port = defaults.Port
	}

	// Int fields: use default if zero
	if result.MaxConcurrentRuns == 0 {
		result.MaxConcurrentRuns = defaults.MaxConcurrentRuns
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
