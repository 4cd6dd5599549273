// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Reference is the path to the reference table file (.csv or .xlsx).
	Reference string `json:"reference,omitempty"`

	// MaxResults caps the number of ranked candidates (1-10).
	MaxResults int `json:"max_results,omitempty"`

	// Weights optionally scales the per-field score contribution.
	Weights map[string]int `json:"weights,omitempty"`

	// HardExclusionFields overrides the default hard-exclusion set.
	HardExclusionFields []string `json:"hard_exclusion_fields,omitempty"`

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed report summaries
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for run history
	Port        int    `json:"port,omitempty"`         // Server port for the serve command
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
func (c *Config) Validate() error {
	if c.MaxResults < 0 || c.MaxResults > 10 {
		return fmt.Errorf("config error: 'max_results' must be between 0 and 10")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}

	for field, weight := range c.Weights {
		if weight < 1 {
			return fmt.Errorf("config error: weight for %q must be positive", field)
		}
	}

	if c.Reference != "" {
		if _, err := os.Stat(c.Reference); os.IsNotExist(err) {
			return fmt.Errorf("config error: reference table not found: %s", c.Reference)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Reference == "" {
		result.Reference = defaults.Reference
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.MaxResults == 0 {
		result.MaxResults = defaults.MaxResults
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}
	if result.HardExclusionFields == nil {
		result.HardExclusionFields = defaults.HardExclusionFields
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
