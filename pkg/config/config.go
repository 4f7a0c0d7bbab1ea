// Package config provides process configuration for the ratearb engine.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete process configuration.
type Config struct {
	Fetch   FetchSettings   `yaml:"fetch"`
	Pruning PruningSettings `yaml:"pruning"`
	Debug   string          `yaml:"debug"`
	Prompt  string          `yaml:"prompt"`
}

// FetchSettings configures the rate fetcher.
type FetchSettings struct {
	APIBaseURL    string `yaml:"api_base_url"`
	PollIntervalMs int   `yaml:"poll_interval_ms"`
	StreamURL     string `yaml:"stream_url,omitempty"`
}

// PruningSettings holds the pruning toggle read from the config file and
// RATEARB_PRUNING_ENABLED. No command reads it: the REPL's "prune"
// command always runs the pruner, and "gload" never does.
type PruningSettings struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchSettings{
			APIBaseURL:     "http://localhost:8080",
			PollIntervalMs: 15000,
		},
		Pruning: PruningSettings{
			Enabled: true,
		},
		Debug:  "",
		Prompt: "ratearb> ",
	}
}

// LoadFromFile loads configuration from a YAML file, starting from
// DefaultConfig and overlaying whatever the file sets.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads the default configuration with environment variable
// overrides applied.
func LoadFromEnv() *Config {
	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RATEARB_API_BASE_URL"); v != "" {
		c.Fetch.APIBaseURL = v
	}
	if v := os.Getenv("RATEARB_STREAM_URL"); v != "" {
		c.Fetch.StreamURL = v
	}
	if v := os.Getenv("RATEARB_POLL_INTERVAL_MS"); v != "" {
		if val, err := parseInt(v); err == nil {
			c.Fetch.PollIntervalMs = val
		}
	}
	if v := os.Getenv("RATEARB_DEBUG"); v != "" {
		c.Debug = v
	}
	if v := os.Getenv("RATEARB_PRUNING_ENABLED"); v != "" {
		c.Pruning.Enabled = strings.ToLower(v) == "true"
	}
}

// SaveToFile saves the configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// PollInterval returns the fetcher's poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Fetch.PollIntervalMs) * time.Millisecond
}

// Validate checks the configuration for obviously invalid values.
func (c *Config) Validate() error {
	if c.Fetch.APIBaseURL == "" {
		return fmt.Errorf("config: fetch.api_base_url must not be empty")
	}
	if c.Fetch.PollIntervalMs < 1000 {
		return fmt.Errorf("config: fetch.poll_interval_ms must be at least 1000")
	}
	if c.Prompt == "" {
		return fmt.Errorf("config: prompt must not be empty")
	}
	return nil
}

func parseInt(s string) (int, error) {
	var v int
	_, err := fmt.Sscanf(s, "%d", &v)
	return v, err
}
