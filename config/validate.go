package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.Root == "" {
		return errors.New("paths.root is required")
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Playback.GraceWindowSeconds <= 0 {
		return fmt.Errorf("playback.grace_window_seconds must be positive, got %v", c.Playback.GraceWindowSeconds)
	}
	if c.Playback.ChasePauseSeconds < 0 {
		return fmt.Errorf("playback.chase_pause_seconds must not be negative, got %v", c.Playback.ChasePauseSeconds)
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
