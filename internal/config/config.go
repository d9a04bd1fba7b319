// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults, CLI flags,
// or environment variables.
type Config struct {
	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Model       string `json:"model,omitempty"`        // Model tier: lite, standard or advanced
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information

	// Server
	Port      int    `json:"port,omitempty"`       // HTTP listen port
	JWTSecret string `json:"jwt_secret,omitempty"` // Bearer-token secret; empty disables auth
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

// FromEnv builds a configuration from environment variables. Unset variables
// leave the corresponding fields at their zero values.
func FromEnv() Config {
	cfg := Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Model:       os.Getenv("MODEL_TIER"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch c.Model {
	case "", "lite", "standard", "advanced":
	default:
		return fmt.Errorf("config error: 'model' must be lite, standard or advanced, got %q", c.Model)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to layer config file values over environment
// values, with CLI flags applied last by the caller.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}

	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = 8080
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
