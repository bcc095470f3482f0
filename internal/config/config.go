// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; secrets go to OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"askdb/cli/internal/xdg"
)

// DefaultServiceURL is used when no service URL is configured.
// The agent service is self-hosted and listens on port 8000 by default.
const DefaultServiceURL = "http://localhost:8000"

// Config holds non-sensitive CLI settings.
type Config struct {
	ServiceURL           string `json:"service_url"`
	LogLevel             string `json:"log_level"`
	ProbeIntervalSeconds int    `json:"probe_interval_seconds"`
	HistoryLimit         int    `json:"history_limit"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
// The ASKDB_SERVICE_URL environment variable overrides the stored service URL.
func Load() (Config, error) {
	c := defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(c), nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	return applyEnv(fillDefaults(c)), nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

func defaults() Config {
	return Config{
		ServiceURL:           DefaultServiceURL,
		LogLevel:             "info",
		ProbeIntervalSeconds: 30,
		HistoryLimit:         50,
	}
}

// fillDefaults backfills zero values left by older config files.
func fillDefaults(c Config) Config {
	d := defaults()
	if strings.TrimSpace(c.ServiceURL) == "" {
		c.ServiceURL = d.ServiceURL
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.ProbeIntervalSeconds <= 0 {
		c.ProbeIntervalSeconds = d.ProbeIntervalSeconds
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = d.HistoryLimit
	}
	return c
}

func applyEnv(c Config) Config {
	if env := strings.TrimSpace(os.Getenv("ASKDB_SERVICE_URL")); env != "" {
		c.ServiceURL = strings.TrimRight(env, "/")
	}
	return c
}
