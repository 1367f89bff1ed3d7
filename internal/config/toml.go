// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Report ReportConfig `toml:"report"`
	Paths  PathsConfig  `toml:"paths"`
}

// ReportConfig maps report-related settings.
type ReportConfig struct {
	Field            *string   `toml:"field"`
	ShowCategories   *bool     `toml:"show-categories"`
	CategoriesToShow *[]string `toml:"categories-to-show"`
	IncludeSubdecks  *bool     `toml:"include-subdecks"`
	SplitBands79     *bool     `toml:"split-bands-7-9"`
}

// PathsConfig maps file location overrides.
type PathsConfig struct {
	Collection *string `toml:"collection"`
	Datasets   *string `toml:"datasets"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
