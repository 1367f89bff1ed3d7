package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config must not be an error: %v", err)
	}
	if cfg.Report.Field != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[report]
field = "2"
show-categories = false
include-subdecks = false

[paths]
collection = "/tmp/collection.anki2"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Report.Field == nil || *cfg.Report.Field != "2" {
		t.Fatalf("unexpected field mode: %+v", cfg.Report.Field)
	}
	if cfg.Report.ShowCategories == nil || *cfg.Report.ShowCategories {
		t.Fatalf("expected show-categories=false")
	}
	if cfg.Paths.Collection == nil || *cfg.Paths.Collection != "/tmp/collection.anki2" {
		t.Fatalf("unexpected collection path: %+v", cfg.Paths.Collection)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
