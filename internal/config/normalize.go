package config

import (
	"path/filepath"
	"strings"
)

// normalize expands filesystem paths and fills derived defaults.
// StaticImagesDir stays untouched: it is a web-relative prefix that ends up
// inside encoded path tokens, not a directory this process opens.
func (c *Config) normalize() error {
	var err error
	if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
		return err
	}
	if c.Paths.ResourcesDir, err = expandPath(c.Paths.ResourcesDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	if strings.TrimSpace(c.Paths.MembersPhotoDir) == "" {
		c.Paths.MembersPhotoDir = filepath.Join(c.Paths.ResourcesDir, "Leden", "thumbnails")
	} else if c.Paths.MembersPhotoDir, err = expandPath(c.Paths.MembersPhotoDir); err != nil {
		return err
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	return nil
}
