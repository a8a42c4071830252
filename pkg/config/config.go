// Package config loads and saves the persistent application settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Defaults applied when the config file is missing or leaves fields empty.
// The catalogue access key is the extension's public static key.
const (
	DefaultAccessKey   = "44f9a67d3b6d540c474f6c6d126fedde"
	DefaultLoadTimeout = 1000
)

// Config holds all user-defined persistent settings.
type Config struct {
	API struct {
		BaseURL   string `toml:"base_url"`
		AccessKey string `toml:"access_key"`
	} `toml:"api"`

	Portal struct {
		BaseURL string `toml:"base_url"`
	} `toml:"portal"`

	Student struct {
		// Program overrides the program code scraped from the portal.
		Program string `toml:"program"`
	} `toml:"student"`

	Storage struct {
		// Backend selects the student-record store: "file" or "redis".
		Backend string `toml:"backend"`
		Path    string `toml:"path"`
		// RedisURL is a redis:// connection URL for the redis backend.
		RedisURL string `toml:"redis_url"`
		// LoadTimeoutMS bounds how long startup waits for the cached
		// record before rebuilding it from the portal.
		LoadTimeoutMS int `toml:"load_timeout_ms"`
	} `toml:"storage"`

	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`

	UI struct {
		AccentColor string `toml:"accent_color"`
	} `toml:"ui"`
}

// DefaultPath returns the absolute path to ~/.modulemaster.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".modulemaster.toml"), nil
}

// Load reads the application configuration from disk. A missing file yields
// the defaults.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	if cfg.Storage.Backend != "" && cfg.Storage.Backend != "file" && cfg.Storage.Backend != "redis" {
		return nil, fmt.Errorf("unknown storage backend %q, use file or redis", cfg.Storage.Backend)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *Config) error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.API.AccessKey == "" {
		c.API.AccessKey = DefaultAccessKey
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.LoadTimeoutMS <= 0 {
		c.Storage.LoadTimeoutMS = DefaultLoadTimeout
	}
}
