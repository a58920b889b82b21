// Package config loads daemon and CLI configuration from a TOML file in
// the platform config directory, layered under CLI flags and environment
// variables (spec §6 "Configuration").
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the resolved configuration after applying defaults, the
// config file, and CLI flags/env in increasing precedence.
type Config struct {
	DatabaseURL           string `toml:"database_url"`
	BackupIntervalMinutes int    `toml:"backup_interval_minutes"`
	BackupCount           int    `toml:"backup_count"`
	ServerURL             string `toml:"server_url"`
}

// Update carries optional overrides; nil fields leave the base value
// untouched. Mirrors the fields TOML and flags are allowed to set.
type Update struct {
	DatabaseURL           *string
	BackupIntervalMinutes *int
	BackupCount           *int
	ServerURL             *string
}

// Apply layers u onto c, returning the merged Config.
func (c Config) Apply(u Update) Config {
	if u.DatabaseURL != nil {
		c.DatabaseURL = *u.DatabaseURL
	}
	if u.BackupIntervalMinutes != nil {
		c.BackupIntervalMinutes = *u.BackupIntervalMinutes
	}
	if u.BackupCount != nil {
		c.BackupCount = *u.BackupCount
	}
	if u.ServerURL != nil {
		c.ServerURL = *u.ServerURL
	}
	return c
}

// defaultServerURL is 3001 when HIPPOCAMPUS_DEBUG is set and 3000
// otherwise, per spec §6's CLI server-url fallback chain.
func defaultServerURL() string {
	if _debugBuild {
		return "http://localhost:3001"
	}
	return "http://localhost:3000"
}

// _debugBuild is set once, at package init, from the HIPPOCAMPUS_DEBUG
// environment variable; the --verbose flag does not change it. Declared here (rather than read from obslog directly) to keep config
// free of a dependency on the logging package.
var _debugBuild = os.Getenv("HIPPOCAMPUS_DEBUG") != ""

// Base returns the built-in defaults, rooted under dir if non-empty
// (typically the resolved platform config directory).
func Base(dir string) Config {
	dbPath := "hippocampus.db"
	if dir != "" {
		dbPath = filepath.Join(dir, "hippocampus.db")
	}
	return Config{
		DatabaseURL:           dbPath,
		BackupIntervalMinutes: 20,
		BackupCount:           10,
		ServerURL:             defaultServerURL(),
	}
}

// ConfigDir resolves the platform-specific configuration directory for
// "hippocampus", following os.UserConfigDir (XDG on Linux, Application
// Support on macOS, AppData on Windows) — the Go-native equivalent of the
// source's ProjectDirs::from("com", "hippocampus", "hippocampus").
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "hippocampus"), nil
}

// FromFile reads and parses the TOML config file at path. A missing file
// is not an error and yields a zero Update; a present-but-malformed file
// is fatal, per spec §6.
func FromFile(path string) (Update, error) {
	var u Update

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return u, nil
		}
		return u, fmt.Errorf("read config file %s: %w", path, err)
	}

	var raw struct {
		DatabaseURL           *string `toml:"database_url"`
		BackupIntervalMinutes *int    `toml:"backup_interval_minutes"`
		BackupCount           *int    `toml:"backup_count"`
		ServerURL             *string `toml:"server_url"`
	}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return u, fmt.Errorf("parse config file %s: %w", path, err)
	}

	u.DatabaseURL = raw.DatabaseURL
	u.BackupIntervalMinutes = raw.BackupIntervalMinutes
	u.BackupCount = raw.BackupCount
	u.ServerURL = raw.ServerURL
	return u, nil
}

// Load resolves the full configuration: defaults → config file (if it
// exists in the platform config directory) → flagUpdate (CLI flags/env,
// passed by the caller, already resolved with their own precedence).
func Load(flagUpdate Update) (Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		dir = ""
	}

	cfg := Base(dir)

	if dir != "" {
		if _, statErr := os.Stat(dir); statErr == nil {
			fileUpdate, err := FromFile(filepath.Join(dir, "config.toml"))
			if err != nil {
				return Config{}, err
			}
			cfg = cfg.Apply(fileUpdate)
		}
	}

	cfg = cfg.Apply(flagUpdate)
	return cfg, nil
}
