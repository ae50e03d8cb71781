package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Paths locates the HyperSpin tree and the scratch directory for extracted
// theme members.
type Paths struct {
	Root    string `toml:"root" env:"ULTRASPIN_ROOT"`
	TempDir string `toml:"temp_dir" env:"ULTRASPIN_TEMP_DIR"`
}

// Display is the output viewport. Themes are authored against 1024x768 and
// scaled linearly to it.
type Display struct {
	Width      int  `toml:"width" env:"ULTRASPIN_WIDTH"`
	Height     int  `toml:"height" env:"ULTRASPIN_HEIGHT"`
	Fullscreen bool `toml:"fullscreen" env:"ULTRASPIN_FULLSCREEN"`
}

// Playback holds timing knobs shared by the asset store and the transition
// compiler.
type Playback struct {
	GraceWindowSeconds float64 `toml:"grace_window_seconds" env:"ULTRASPIN_GRACE_WINDOW"`
	ChasePauseSeconds  float64 `toml:"chase_pause_seconds"`
}

// Probe configures external media inspection tools.
type Probe struct {
	FFProbe string `toml:"ffprobe" env:"ULTRASPIN_FFPROBE"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" env:"ULTRASPIN_LOG_FORMAT"`
	Level  string `toml:"level" env:"ULTRASPIN_LOG_LEVEL"`
}

// Config encapsulates all configuration values for ultraspin.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Display  Display  `toml:"display"`
	Playback Playback `toml:"playback"`
	Probe    Probe    `toml:"probe"`
	Logging  Logging  `toml:"logging"`
}

// GraceWindow is how long an extracted theme member lives on disk.
func (c *Config) GraceWindow() time.Duration {
	return seconds(c.Playback.GraceWindowSeconds)
}

// ChasePause is the idle gap between the two legs of a chase transition.
func (c *Config) ChasePause() time.Duration {
	return seconds(c.Playback.ChasePauseSeconds)
}

// MediaDir returns <root>/Media.
func (c *Config) MediaDir() string {
	return filepath.Join(c.Paths.Root, "Media")
}

// Load parses the TOML file at path (when it exists), applies environment
// overrides, then normalizes and validates. The returned bool reports whether
// the file was found.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	exists := false
	if path = strings.TrimSpace(path); path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, false, fmt.Errorf("open config: %w", err)
		default:
			defer file.Close()
			exists = true
			decoder := toml.NewDecoder(file)
			decoder.DisallowUnknownFields()
			if err := decoder.Decode(&cfg); err != nil {
				return nil, false, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, false, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, exists, nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
