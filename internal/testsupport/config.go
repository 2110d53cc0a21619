// Package testsupport provides shared fixtures for knarchief tests: temp
// configs, stores, workbooks, and images.
package testsupport

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"knarchief/internal/config"
	"knarchief/internal/logging"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Database = filepath.Join(base, "archive.db")
	cfg.Paths.ResourcesDir = filepath.Join(base, "resources")
	cfg.Paths.MembersPhotoDir = filepath.Join(base, "resources", "Leden", "thumbnails")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Thumbnails.Workers = 2

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithThumbnailSize overrides the thumbnail bounding box on the test config.
func WithThumbnailSize(size int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Thumbnails.MaxSize = size
	}
}

// WithWorkers overrides the thumbnail worker count on the test config.
func WithWorkers(workers int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Thumbnails.Workers = workers
	}
}

// SilentLogger returns a logger that discards all output.
func SilentLogger(t testing.TB) *slog.Logger {
	t.Helper()
	logger, err := logging.New(logging.Options{Writer: io.Discard})
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	return logger
}
