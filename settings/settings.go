package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// ErrNotFound reports a settings file that does not exist.
var ErrNotFound = errors.New("settings: not found")

// PathSource maps a system name to its settings file. *media.Resolver
// implements it.
type PathSource interface {
	SettingsPath(system string) string
}

// loadOptions follows the HyperSpin files: names compare without case,
// stray lines are skipped and trailing comments are stripped.
var loadOptions = ini.LoadOptions{
	InsensitiveSections:     true,
	InsensitiveKeys:         true,
	SkipUnrecognizableLines: true,
	AllowBooleanKeys:        true,
}

// Settings is one parsed settings file.
type Settings struct {
	path string
	file *ini.File
}

// Load reads the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("settings: %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// LoadSystem reads the settings of system from the location src gives.
func LoadSystem(src PathSource, system string) (*Settings, error) {
	return Load(src.SettingsPath(system))
}

// Parse reads settings from memory.
func Parse(data []byte) (*Settings, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return &Settings{file: f}, nil
}

// Path returns the file the settings came from, or "" when parsed from
// memory.
func (s *Settings) Path() string { return s.path }

// Sections lists the named sections in file order.
func (s *Settings) Sections() []string {
	var out []string
	for _, sec := range s.file.Sections() {
		if strings.EqualFold(sec.Name(), ini.DefaultSection) {
			continue
		}
		out = append(out, sec.Name())
	}
	return out
}

// Keys lists the keys of section in file order. Unknown sections yield nil.
func (s *Settings) Keys(section string) []string {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return nil
	}
	return sec.KeyStrings()
}

// Get returns the raw value of key in section.
func (s *Settings) Get(section, key string) (string, bool) {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return "", false
	}
	if !sec.HasKey(key) {
		return "", false
	}
	return strings.TrimSpace(sec.Key(key).String()), true
}

// String returns the value of key in section, or def.
func (s *Settings) String(section, key, def string) string {
	if v, ok := s.Get(section, key); ok {
		return v
	}
	return def
}

// Bool returns key as a boolean. HyperSpin writes true/false and yes/no;
// anything else yields def.
func (s *Settings) Bool(section, key string, def bool) bool {
	v, ok := s.Get(section, key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "true", "yes", "1", "on":
		return true
	case "false", "no", "0", "off":
		return false
	}
	return def
}

// Float returns key as a number, or def when missing or malformed.
func (s *Settings) Float(section, key string, def float64) float64 {
	v, ok := s.Get(section, key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Section returns every key of section with its raw value.
func (s *Settings) Section(section string) map[string]string {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return nil
	}
	out := make(map[string]string, len(sec.Keys()))
	for _, k := range sec.Keys() {
		out[k.Name()] = strings.TrimSpace(k.String())
	}
	return out
}
