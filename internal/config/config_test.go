package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitpeek.toml")
	content := "log_level = \"debug\"\nwindow_width = 900\navifenc_path = \"/opt/avif/bin/avifenc\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level: got %q", cfg.LogLevel)
	}
	if cfg.WindowWidth != 900 {
		t.Errorf("window_width: got %d", cfg.WindowWidth)
	}
	if cfg.WindowHeight != Default().WindowHeight {
		t.Errorf("window_height should keep default, got %d", cfg.WindowHeight)
	}
	if cfg.AvifencPath != "/opt/avif/bin/avifenc" {
		t.Errorf("avifenc_path: got %q", cfg.AvifencPath)
	}
}

func TestLoadRejectsInvalidDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitpeek.toml")
	if err := os.WriteFile(path, []byte("window_width = -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WindowWidth != Default().WindowWidth {
		t.Errorf("negative width should fall back to default, got %d", cfg.WindowWidth)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitpeek.toml")
	if err := os.WriteFile(path, []byte("log_level = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatal("malformed TOML should error")
	}
	if cfg != Default() {
		t.Errorf("on parse error defaults should be returned, got %+v", cfg)
	}
}
