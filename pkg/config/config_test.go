package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Suggest.MaxSuggestions != 15 {
		t.Errorf("MaxSuggestions = %d, want 15", cfg.Suggest.MaxSuggestions)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled = false, want true")
	}
	if !cfg.CLI.ShowSuggestions {
		t.Error("CLI.ShowSuggestions = false, want true")
	}
}

func TestInitConfigCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Suggest.MaxSuggestions != DefaultConfig().Suggest.MaxSuggestions {
		t.Errorf("InitConfig returned unexpected defaults: %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be created at %s: %v", path, err)
	}
}

func TestSaveAndLoadConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Suggest.MaxSuggestions = 7
	cfg.Cache.Dir = "/tmp/nuspell-cache"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Suggest.MaxSuggestions != 7 {
		t.Errorf("Suggest.MaxSuggestions = %d, want 7", loaded.Suggest.MaxSuggestions)
	}
	if loaded.Cache.Dir != "/tmp/nuspell-cache" {
		t.Errorf("Cache.Dir = %q, want /tmp/nuspell-cache", loaded.Cache.Dir)
	}
}

func TestUpdateSavesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	cfg := DefaultConfig()
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	max := 3
	disable := false
	if err := cfg.Update(path, &max, &disable); err != nil {
		t.Fatalf("Update: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Suggest.MaxSuggestions != 3 {
		t.Errorf("Suggest.MaxSuggestions = %d, want 3", loaded.Suggest.MaxSuggestions)
	}
	if loaded.Suggest.EnableNgramFallback {
		t.Error("Suggest.EnableNgramFallback = true, want false")
	}
}

func TestLoadConfigMissingFileFallsBackToPartialParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.toml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig on missing file returned error: %v", err)
	}
	if cfg.Suggest.MaxSuggestions != DefaultConfig().Suggest.MaxSuggestions {
		t.Errorf("expected defaults when file is missing, got %+v", cfg.Suggest)
	}
}
