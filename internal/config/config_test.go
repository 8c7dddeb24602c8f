package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"lessonforge/internal/config"
)

// ─────────────────────────────────────────────────────────────
// Config loading tests
// ─────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "en" {
		t.Errorf("expected default language en, got %q", cfg.Language)
	}
	if !cfg.Autosave.Enabled || cfg.Autosave.Schedule != "@every 30s" {
		t.Errorf("unexpected autosave defaults: %+v", cfg.Autosave)
	}
	if !cfg.FileSync.Enabled {
		t.Error("expected file sync enabled by default")
	}
	if cfg.DataDir == "" || cfg.DBPath == "" {
		t.Errorf("expected non-empty paths, got %q / %q", cfg.DataDir, cfg.DBPath)
	}
	if err := config.Validate(cfg); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("LESSONFORGE_LANGUAGE", "zh")
	t.Setenv("LESSONFORGE_AUTOSAVE__SCHEDULE", "@every 5m")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "zh" {
		t.Errorf("expected env language zh, got %q", cfg.Language)
	}
	if cfg.Autosave.Schedule != "@every 5m" {
		t.Errorf("expected env schedule, got %q", cfg.Autosave.Schedule)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessonforge.toml")
	content := "language = \"zh\"\ndebug = true\n\n[autosave]\nenabled = false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "zh" || !cfg.Debug {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Autosave.Enabled {
		t.Error("expected autosave disabled by file")
	}
	// Values the file does not set keep their defaults.
	if cfg.Autosave.Schedule != "@every 30s" {
		t.Errorf("expected default schedule kept, got %q", cfg.Autosave.Schedule)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	if _, err := config.Load("/nonexistent-dir-for-test/lessonforge.toml"); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate_RejectsUnknownLanguage(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Language = "fr"
	if err := config.Validate(cfg); err == nil {
		t.Error("expected validation error for unsupported language")
	}
}
