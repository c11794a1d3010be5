package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestConfigLoadSave(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "conf", "bus2.yml")

	// 1. Load with no existing file
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults for a missing file, got %+v", cfg)
	}

	// 2. Modify and save
	cfg.DataDir = "schedules"
	cfg.BaseURL = "https://example.com/bus/"
	cfg.MaxRelatedLinks = 3
	cfg.AccentColor = "#1a4d8f"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", path)
	}

	// 3. Load the saved file
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loaded, cfg)
	}
}

func TestConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bus2.yml")
	os.WriteFile(path, []byte("site_name: 테스트\n"), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if cfg.SiteName != "테스트" {
		t.Errorf("expected site name from file, got %s", cfg.SiteName)
	}
	if cfg.OutputDir != "outputs" || cfg.RSSItems != 20 {
		t.Errorf("expected untouched fields to keep defaults, got %+v", cfg)
	}
}

func TestConfigParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bus2.yml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write invalid yaml: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("expected error when loading invalid yaml, got nil")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BUS2_OUTPUT_DIR", "public")
	t.Setenv("BUS2_RSS_ITEMS", "5")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "public" {
		t.Errorf("expected output dir public, got %s", cfg.OutputDir)
	}
	if cfg.RSSItems != 5 {
		t.Errorf("expected 5 rss items, got %d", cfg.RSSItems)
	}

	t.Setenv("BUS2_MAX_RELATED_LINKS", "many")
	if err := cfg.ApplyEnv(); err == nil {
		t.Errorf("expected error for a non-numeric override")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(path, []byte("BUS2_SITE_NAME=dotenv\n"), 0644)

	t.Setenv("BUS2_SITE_NAME", "")
	os.Unsetenv("BUS2_SITE_NAME")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("BUS2_SITE_NAME"); got != "dotenv" {
		t.Errorf("expected value from .env, got %q", got)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "https://example.com/bus"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.BaseURL != "https://example.com/bus/" {
		t.Errorf("expected trailing slash to be added, got %s", cfg.BaseURL)
	}

	bad := Default()
	bad.BaseURL = "not a url"
	err := bad.Validate()
	if err == nil || !strings.Contains(err.Error(), "BaseURL") {
		t.Errorf("expected BaseURL validation error, got %v", err)
	}

	tz := Default()
	tz.Timezone = "Mars/Olympus"
	if err := tz.Validate(); err == nil {
		t.Errorf("expected unknown timezone to fail")
	}
}

func TestRegistryPath(t *testing.T) {
	cfg := Default()
	if got := cfg.RegistryPath(); got != filepath.Join("outputs", "published_dates.json") {
		t.Errorf("expected registry inside output dir, got %s", got)
	}
	cfg.PublishedDatesFile = "dates.json"
	if got := cfg.RegistryPath(); got != "dates.json" {
		t.Errorf("expected explicit registry path, got %s", got)
	}
}
