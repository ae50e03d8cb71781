package theme

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/justindarc/ultraspin/archive"
	"github.com/justindarc/ultraspin/logging"
	"github.com/justindarc/ultraspin/media"
)

// MemberSource extracts one member of a game's theme archive.
// *media.Resolver implements it.
type MemberSource interface {
	Member(ctx context.Context, system, game, member string) (*archive.Asset, error)
}

// Loader fetches and parses theme descriptors.
type Loader struct {
	source MemberSource
	logger *slog.Logger
}

// NewLoader returns a Loader reading from source. A nil logger discards.
func NewLoader(source MemberSource, logger *slog.Logger) *Loader {
	return &Loader{source: source, logger: logging.NewComponentLogger(logger, "theme")}
}

// Load returns the descriptor of game. Any failure, extraction or parse, is
// retried once against the default game; a final failure is logged and
// returned.
func (l *Loader) Load(ctx context.Context, system, game string) (*Descriptor, error) {
	var desc *Descriptor
	err := media.WithDefault(game, func(g string) error {
		d, err := l.load(ctx, system, g)
		if err != nil {
			return err
		}
		desc = d
		return nil
	})
	if err != nil {
		l.logger.Error("theme load failed",
			logging.String(logging.FieldSystem, system),
			logging.String(logging.FieldGame, game),
			logging.Error(err),
		)
		return nil, err
	}
	return desc, nil
}

func (l *Loader) load(ctx context.Context, system, game string) (*Descriptor, error) {
	asset, err := l.source.Member(ctx, system, game, media.ThemeMember)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(asset.Path)
	if err != nil {
		return nil, fmt.Errorf("theme: open %s: %w", asset.Path, err)
	}
	defer f.Close()
	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", system, game, err)
	}
	return d, nil
}
