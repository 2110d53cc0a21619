package main

import (
	"log/slog"
	"strings"
	"sync"

	"knarchief/internal/config"
	"knarchief/internal/logging"
	"knarchief/internal/store"
)

type commandContext struct {
	configFlag *string

	once     sync.Once
	config   *config.Config
	logger   *slog.Logger
	setupErr error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.setupErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.setupErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.setupErr = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.setupErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if _, err := c.ensureConfig(); err != nil {
		return nil, err
	}
	return c.logger, nil
}

// withStore opens the archive store for the duration of one command.
func (c *commandContext) withStore(fn func(*config.Config, *store.Store, *slog.Logger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(cfg, st, logger)
}
