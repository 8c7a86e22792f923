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
	// Paths
	Catalog string `json:"catalog,omitempty"`  // Path to artifact catalog JSON file
	Policy  string `json:"policy,omitempty"`   // Path to policy table JSON file (built-in default if empty)
	DocsURL string `json:"docs_url,omitempty"` // Documentation site URL for crawl-based ingestion

	// Selection defaults
	BoundedContext string `json:"bounded_context,omitempty"` // Default target bounded context
	Budget         int    `json:"budget,omitempty"`          // Default token budget per bundle

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key for classification
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Headless browser for JS-rendered doc sites
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed progress information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
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
// Required fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Budget < 0 {
		return fmt.Errorf("config error: 'budget' must be non-negative")
	}

	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	}
	if c.Policy != "" {
		if _, err := os.Stat(c.Policy); os.IsNotExist(err) {
			return fmt.Errorf("config error: policy file not found: %s", c.Policy)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled
// from defaults. Only string fields merge: Budget stays untouched because
// zero is a valid budget and an int cannot mark "unset" (callers that want
// a default budget must decide themselves whether one was supplied), and
// bools cannot distinguish unset from false (CLI flags always win).
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.Policy == "" {
		result.Policy = defaults.Policy
	}
	if result.DocsURL == "" {
		result.DocsURL = defaults.DocsURL
	}
	if result.BoundedContext == "" {
		result.BoundedContext = defaults.BoundedContext
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	return result
}
