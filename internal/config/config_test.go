package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BirthdayWindowDays != 7 {
		t.Fatalf("BirthdayWindowDays = %d, want 7", cfg.BirthdayWindowDays)
	}
	if cfg.SuggestionCutoff != 0.7 {
		t.Fatalf("SuggestionCutoff = %v, want 0.7", cfg.SuggestionCutoff)
	}
	if cfg.SuggestionLimit != 3 {
		t.Fatalf("SuggestionLimit = %d, want 3", cfg.SuggestionLimit)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"birthday_window_days": 14}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BirthdayWindowDays != 14 {
		t.Fatalf("BirthdayWindowDays = %d, want 14", cfg.BirthdayWindowDays)
	}
	// Untouched keys keep defaults.
	if cfg.SuggestionLimit != 3 {
		t.Fatalf("SuggestionLimit = %d, want 3", cfg.SuggestionLimit)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestMerge_OverlayWins(t *testing.T) {
	base := DefaultConfig()
	overlay := &Config{SuggestionCutoff: 0.5, DBMaxOpenConns: 1}

	merged := Merge(base, overlay)
	if merged.SuggestionCutoff != 0.5 {
		t.Errorf("SuggestionCutoff = %v, want 0.5", merged.SuggestionCutoff)
	}
	if merged.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %d, want 1", merged.DBMaxOpenConns)
	}
	if merged.BirthdayWindowDays != 7 {
		t.Errorf("BirthdayWindowDays = %d, want base default 7", merged.BirthdayWindowDays)
	}
}
