package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateThumbnails(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.Database == "" {
		return errors.New("paths.database must be set")
	}
	if c.Paths.ResourcesDir == "" {
		return errors.New("paths.resources_dir must be set")
	}
	if c.Paths.StaticImagesDir == "" {
		return errors.New("paths.static_images_dir must be set")
	}
	return nil
}

func (c *Config) validateThumbnails() error {
	if c.Thumbnails.MaxSize <= 0 {
		return errors.New("thumbnails.max_size must be positive")
	}
	if c.Thumbnails.Quality < 1 || c.Thumbnails.Quality > 100 {
		return errors.New("thumbnails.quality must be between 1 and 100")
	}
	if c.Thumbnails.Workers < 1 {
		return errors.New("thumbnails.workers must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
