// Package config loads the nbkernel CLI preferences from a small JSON file.
// A project-local .nbkernel directory takes precedence over the home-level
// one; a missing file yields the defaults.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds user preferences for the CLI.
type Config struct {
	NotebookDir             string `json:"notebook_dir"`
	LogLevel                string `json:"log_level"`  // debug, info, warn, error
	LogFormat               string `json:"log_format"` // json or text
	ExecutionTimeoutSeconds int    `json:"execution_timeout_seconds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		NotebookDir: "notebooks",
		LogLevel:    "warn",
		LogFormat:   "text",
	}
}

// Dir returns the directory where the config is stored.
func Dir() (string, error) {
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".nbkernel")
		if stat, err := os.Stat(localDir); err == nil && stat.IsDir() {
			return localDir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nbkernel"), nil
}

// File returns the full path to the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk. A missing file is not an error.
func Load() (Config, error) {
	path, err := File()
	if err != nil {
		return DefaultConfig(), err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path, err := File()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
