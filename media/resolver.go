package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/justindarc/ultraspin/archive"
	"github.com/justindarc/ultraspin/logging"
)

const (
	// DefaultGame is the fallback game identity.
	DefaultGame = "default"
	// FrontendSystem and NoVideo name the sentinel video used when a game has none.
	FrontendSystem = "Frontend"
	NoVideo        = "No Video"
	// ThemeMember is the archive member prefix of a theme descriptor.
	ThemeMember = "theme"
)

// ErrNoAsset reports a themed component that is absent for both the specific
// game and the default identity.
var ErrNoAsset = errors.New("media: no asset")

// Location identifies one logical asset. Game doubles as the file name for
// filesystem kinds. Member is the archive member prefix for KindComponent.
// A non-empty Extension restricts the candidates to that extension.
type Location struct {
	System    string
	Game      string
	Kind      Kind
	Member    string
	Extension string
}

// Extractor pulls a member out of an archive. *archive.Store implements it.
type Extractor interface {
	Extract(ctx context.Context, archivePath, prefix string) (*archive.Asset, error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFS replaces the filesystem used for existence checks. Paths passed to
// it are slash-separated and relative to the root.
func WithFS(fsys fs.FS) Option {
	return func(r *Resolver) { r.fsys = fsys }
}

// WithExtractor sets the archive extractor used for themes and components.
func WithExtractor(ex Extractor) Option {
	return func(r *Resolver) { r.extractor = ex }
}

// WithLogger sets the resolver logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logging.NewComponentLogger(logger, "media") }
}

// Resolver computes candidate locations for assets and returns the first
// that exists.
type Resolver struct {
	root      string
	fsys      fs.FS
	extractor Extractor
	logger    *slog.Logger
}

// NewResolver returns a Resolver rooted at the HyperSpin directory root.
func NewResolver(root string, opts ...Option) *Resolver {
	r := &Resolver{
		root:   root,
		fsys:   os.DirFS(root),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.extractor == nil {
		r.extractor = archive.NewStore()
	}
	return r
}

// Root returns the HyperSpin directory.
func (r *Resolver) Root() string { return r.root }

// Candidates returns the slash-separated paths, relative to the root, that
// are probed for loc in preference order. Component locations yield the
// theme archive that holds the member.
func (r *Resolver) Candidates(loc Location) []string {
	var dir, name string
	switch loc.Kind {
	case KindTheme, KindComponent:
		return []string{themeArchive(loc.System, loc.Game)}
	case KindWheel:
		dir, name = path.Join("Media", loc.System, "Images", "Wheel"), loc.Game
	case KindSpecial:
		dir, name = path.Join("Media", loc.System, "Images", "Special"), loc.Game
	case KindVideo:
		dir, name = path.Join("Media", loc.System, "Video"), loc.Game
	case KindFrontend:
		dir, name = path.Join("Media", FrontendSystem, "Images"), loc.Game
	default:
		return nil
	}

	var out []string
	for _, ext := range loc.Kind.extensions() {
		if loc.Extension != "" && !strings.EqualFold(strings.TrimPrefix(loc.Extension, "."), ext[1:]) {
			continue
		}
		out = append(out, path.Join(dir, name+ext))
	}
	return out
}

// Resolve returns the absolute path of the first candidate that exists.
func (r *Resolver) Resolve(loc Location) (string, bool) {
	for _, candidate := range r.Candidates(loc) {
		if _, err := fs.Stat(r.fsys, candidate); err == nil {
			return r.abs(candidate), true
		}
	}
	return "", false
}

// WheelImage returns the wheel image for name, or "" when absent.
func (r *Resolver) WheelImage(system, name string) string {
	p, _ := r.Resolve(Location{System: system, Game: name, Kind: KindWheel})
	return p
}

// SpecialImage prefers the vector .swf over the raster .png, or returns "".
func (r *Resolver) SpecialImage(system, name string) string {
	p, _ := r.Resolve(Location{System: system, Game: name, Kind: KindSpecial})
	return p
}

// Video returns the game's .flv or .mp4, else the Frontend "No Video"
// sentinel, else "".
func (r *Resolver) Video(system, name string) string {
	if p, ok := r.Resolve(Location{System: system, Game: name, Kind: KindVideo}); ok {
		return p
	}
	if system == FrontendSystem && name == NoVideo {
		return ""
	}
	return r.Video(FrontendSystem, NoVideo)
}

// FrontendImage returns the path of a front-end image without probing it.
func (r *Resolver) FrontendImage(name string) string {
	return r.abs(r.Candidates(Location{Game: name, Kind: KindFrontend})[0])
}

// SettingsPath returns Settings/<system>.ini.
func (r *Resolver) SettingsPath(system string) string {
	return r.abs(path.Join("Settings", system+".ini"))
}

// DatabasePath returns Databases/<system>/<system>.xml.
func (r *Resolver) DatabasePath(system string) string {
	return r.abs(path.Join("Databases", system, system+".xml"))
}

// ThemeArchive returns Media/<system>/Themes/<game>.zip.
func (r *Resolver) ThemeArchive(system, game string) string {
	return r.abs(themeArchive(system, game))
}

// Member extracts one member from the game's theme archive without any
// fallback.
func (r *Resolver) Member(ctx context.Context, system, game, member string) (*archive.Asset, error) {
	return r.extractor.Extract(ctx, r.ThemeArchive(system, game), member)
}

// Component extracts a themed component member, retrying once with the
// default game. When both attempts fail the error wraps ErrNoAsset.
func (r *Resolver) Component(ctx context.Context, system, game, component string) (*archive.Asset, error) {
	var asset *archive.Asset
	err := WithDefault(game, func(g string) error {
		var err error
		asset, err = r.Member(ctx, system, g, component)
		return err
	})
	if err != nil {
		r.logger.Debug("themed component absent",
			logging.String(logging.FieldSystem, system),
			logging.String(logging.FieldGame, game),
			logging.String("member", component),
			logging.Error(err),
		)
		return nil, fmt.Errorf("%w: %s/%s %s: %w", ErrNoAsset, system, game, component, err)
	}
	return asset, nil
}

// WithDefault calls fn with game and, if that fails and game is not already
// the default identity, once more with DefaultGame. The second error is
// returned when both fail.
func WithDefault(game string, fn func(game string) error) error {
	err := fn(game)
	if err == nil || game == DefaultGame {
		return err
	}
	return fn(DefaultGame)
}

func (r *Resolver) abs(rel string) string {
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

func themeArchive(system, game string) string {
	return path.Join("Media", system, "Themes", game+".zip")
}
