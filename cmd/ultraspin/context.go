package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/justindarc/ultraspin/archive"
	"github.com/justindarc/ultraspin/config"
	"github.com/justindarc/ultraspin/logging"
	"github.com/justindarc/ultraspin/media"
	"github.com/justindarc/ultraspin/transition"
)

type commandContext struct {
	configFlag *string
	logLevel   *string

	configOnce sync.Once
	config     *config.Config
	logger     *slog.Logger
	configErr  error

	store    *archive.Store
	resolver *media.Resolver
}

func newCommandContext(configFlag, logLevel *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		logLevel:   logLevel,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		level := cfg.Logging.Level
		if c.logLevel != nil && strings.TrimSpace(*c.logLevel) != "" {
			level = *c.logLevel
		}
		logger, err := logging.New(logging.Options{Level: level, Format: cfg.Logging.Format})
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.configErr
}

// media returns the resolver, creating it and its archive store on first
// use.
func (c *commandContext) media() (*media.Resolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if c.resolver == nil {
		c.store = archive.NewStore(
			archive.WithTempDir(cfg.Paths.TempDir),
			archive.WithGraceWindow(cfg.GraceWindow()),
			archive.WithLogger(c.logger),
		)
		c.resolver = media.NewResolver(cfg.Paths.Root,
			media.WithExtractor(c.store),
			media.WithLogger(c.logger),
		)
	}
	return c.resolver, nil
}

func (c *commandContext) compiler() *transition.Compiler {
	opts := []transition.Option{transition.WithLogger(c.logger)}
	if c.config != nil {
		opts = append(opts, transition.WithChasePause(c.config.ChasePause()))
	}
	return transition.NewCompiler(opts...)
}

// close deletes any extracted files still waiting for their grace window.
func (c *commandContext) close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
