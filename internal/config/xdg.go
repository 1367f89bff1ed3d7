// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "hanzistats", "config.toml")
}

// DefaultDatasetsDir returns the default directory holding the reference
// data CSVs.
func DefaultDatasetsDir() string {
	return filepath.Join(XDGConfigHome(), "hanzistats", "datasets")
}

// DefaultCollectionPath returns the default Anki collection location for
// the standard profile.
func DefaultCollectionPath() string {
	return filepath.Join(XDGDataHome(), "Anki2", "User 1", "collection.anki2")
}
