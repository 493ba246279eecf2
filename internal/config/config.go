// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents application configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key

	// Matching behavior
	SuggestionCount int `json:"suggestion_count,omitempty"` // Suggestions requested per match call
	OracleTimeout   int `json:"oracle_timeout,omitempty"`   // Oracle call bound, in seconds

	// Server
	Port int `json:"port,omitempty"`

	// Blob storage
	AvatarDir string `json:"avatar_dir,omitempty"` // Local directory for uploaded avatars
	AvatarURL string `json:"avatar_url,omitempty"` // Public base URL avatars are served from

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
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
	if c.SuggestionCount < 0 {
		return fmt.Errorf("config error: 'suggestion_count' must be non-negative")
	}
	if c.OracleTimeout < 0 {
		return fmt.Errorf("config error: 'oracle_timeout' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.AvatarDir == "" {
		result.AvatarDir = defaults.AvatarDir
	}
	if result.AvatarURL == "" {
		result.AvatarURL = defaults.AvatarURL
	}
	if result.SuggestionCount == 0 {
		result.SuggestionCount = defaults.SuggestionCount
	}
	if result.OracleTimeout == 0 {
		result.OracleTimeout = defaults.OracleTimeout
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so flags always win.

	return result
}
