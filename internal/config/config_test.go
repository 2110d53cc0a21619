package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"knarchief/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Thumbnails.MaxSize != 300 || cfg.Thumbnails.Quality != 95 {
		t.Fatalf("unexpected thumbnail defaults: %+v", cfg.Thumbnails)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format %q", cfg.Logging.Format)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knarchief.toml")
	content := `
[paths]
database = "` + filepath.Join(dir, "db", "archive.db") + `"
resources_dir = "` + filepath.Join(dir, "resources") + `"

[thumbnails]
max_size = 128
workers = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved path %q, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Thumbnails.MaxSize != 128 || cfg.Thumbnails.Workers != 2 {
		t.Fatalf("unexpected thumbnails: %+v", cfg.Thumbnails)
	}
	// Quality not set in the file, so the default applies.
	if cfg.Thumbnails.Quality != 95 {
		t.Fatalf("expected default quality, got %d", cfg.Thumbnails.Quality)
	}
	want := filepath.Join(cfg.Paths.ResourcesDir, "Leden", "thumbnails")
	if cfg.Paths.MembersPhotoDir != want {
		t.Fatalf("members photo dir: got %q, want %q", cfg.Paths.MembersPhotoDir, want)
	}
	if cfg.Paths.StaticImagesDir != "static/images" {
		t.Fatalf("static images dir must stay relative, got %q", cfg.Paths.StaticImagesDir)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"zero max size", "[thumbnails]\nmax_size = 0\n", "thumbnails.max_size"},
		{"quality out of range", "[thumbnails]\nquality = 101\n", "thumbnails.quality"},
		{"bad format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"bad level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "knarchief.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[thumbnails]") {
		t.Fatal("sample config should mention the thumbnails section")
	}
}
