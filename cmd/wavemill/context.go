package main

import (
	"log/slog"

	"github.com/google/uuid"

	"wavemill/internal/config"
	"wavemill/internal/logging"
)

// commandContext carries lazily initialized shared state between command
// constructors: the loaded config, its resolved path, and a logger tagged
// with this run's ID.
type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	runID      string
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolved, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if c.logLevelFlag != nil && *c.logLevelFlag != "" {
		cfg.Logging.Level = *c.logLevelFlag
	}
	if c.logFormatFlag != nil && *c.logFormatFlag != "" {
		cfg.Logging.Format = *c.logFormatFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c.cfg = cfg
	c.configPath = resolved
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}

	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	c.runID = uuid.NewString()
	c.logger = logger.With(slog.String("run_id", c.runID))
	return c.logger, nil
}
