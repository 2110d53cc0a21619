package config

const (
	defaultDatabase        = "~/.local/share/knarchief/knarchief.db"
	defaultResourcesDir    = "~/.local/share/knarchief/resources"
	defaultStaticImagesDir = "static/images"
	defaultLogDir          = "~/.local/share/knarchief/logs"
	defaultThumbnailSize   = 300
	defaultThumbnailQual   = 95
	defaultThumbnailJobs   = 4
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Database:        defaultDatabase,
			ResourcesDir:    defaultResourcesDir,
			StaticImagesDir: defaultStaticImagesDir,
			LogDir:          defaultLogDir,
		},
		Thumbnails: Thumbnails{
			MaxSize: defaultThumbnailSize,
			Quality: defaultThumbnailQual,
			Workers: defaultThumbnailJobs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
