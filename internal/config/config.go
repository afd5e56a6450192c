// Package config loads tally's configuration: a YAML file plus environment
// overrides. The API base URL, request timeout, and token path are the only
// externally supplied parameters.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	API       APIConfig `yaml:"api"`
	TokenPath string    `yaml:"token_path,omitempty"`
}

// APIConfig points the client at the remote API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api",
			TimeoutSeconds: 10,
		},
	}
}

// Load reads a tally.yaml file and applies environment overrides. A missing
// file yields the defaults; the environment still applies.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DefaultPath returns the conventional location of tally.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "tally", "tally.yaml"), nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// ResolveTokenPath returns the token file location, defaulting to the user
// config directory.
func (c *Config) ResolveTokenPath() (string, error) {
	if c.TokenPath != "" {
		return c.TokenPath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "tally", "token"), nil
}

// applyEnv layers TALLY_* environment variables over the file values. A
// .env file is honored when present.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("TALLY_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("TALLY_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("TALLY_TOKEN_PATH"); v != "" {
		c.TokenPath = v
	}
}
