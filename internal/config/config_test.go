package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points the loader at an empty config dir and clears the
// environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("TODO_FILE", "")
	t.Setenv("TODO_THEME", "")
	t.Setenv("NO_COLOR", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Errorf("config: got %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	confDir := filepath.Join(dir, "todo")
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	raw := "file = \"/tmp/work.json\"\ntheme = \"neon\"\nverbose = true\n"
	if err := os.WriteFile(filepath.Join(confDir, "config.toml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != "/tmp/work.json" {
		t.Errorf("File: got %q, want %q", cfg.File, "/tmp/work.json")
	}
	if cfg.Theme != "neon" {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, "neon")
	}
	if !cfg.Verbose {
		t.Error("Verbose not picked up from config file")
	}
	if !cfg.Color {
		t.Error("Color default lost while overlaying config file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	confDir := filepath.Join(dir, "todo")
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(confDir, "config.toml"), []byte("theme = \"neon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TODO_THEME", "mono")
	t.Setenv("TODO_FILE", "/tmp/env.json")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != "mono" {
		t.Errorf("Theme: got %q, want %q (env wins over file)", cfg.Theme, "mono")
	}
	if cfg.File != "/tmp/env.json" {
		t.Errorf("File: got %q, want %q", cfg.File, "/tmp/env.json")
	}
	if cfg.Color {
		t.Error("NO_COLOR did not disable color")
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	dir := isolate(t)
	confDir := filepath.Join(dir, "todo")
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(confDir, "config.toml"), []byte("theme = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Error("Load succeeded on malformed TOML")
	}
}
