package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != filepath.Join(dir, "data") || cfg.Backend != "sqlite" || cfg.LogLevel != "warn" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DefaultProject.Name != "My Tasks" || cfg.DefaultProject.Color != "#3b82f6" {
		t.Fatalf("unexpected default project: %+v", cfg.DefaultProject)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvLogFormat, "")
	t.Setenv(EnvBackend, "memory")
	t.Setenv(EnvLogLevel, "")

	body := `
data_dir = "/tmp/tb-data"
backend = "json"
log_level = "debug"

[default_project]
name = "Inbox"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/tb-data" || cfg.LogLevel != "debug" {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.Backend != "memory" {
		t.Fatalf("expected env to override file backend, got %q", cfg.Backend)
	}
	if cfg.DefaultProject.Name != "Inbox" || cfg.DefaultProject.Color != "#3b82f6" {
		t.Fatalf("expected partial table merge, got %+v", cfg.DefaultProject)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")
	t.Setenv(EnvBackend, "cassandra")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}

	t.Setenv(EnvBackend, "")
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("backend = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("expected decode error for malformed file")
	}
}

func TestValidate_LogSettings(t *testing.T) {
	cfg := Defaults(t.TempDir())
	cfg.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected invalid log level error")
	}
	cfg.LogLevel = "info"
	cfg.LogFormat = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected invalid log format error")
	}
}
