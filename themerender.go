package ultraspin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/justindarc/ultraspin/archive"
	"github.com/justindarc/ultraspin/logging"
	"github.com/justindarc/ultraspin/media"
	"github.com/justindarc/ultraspin/probe"
	"github.com/justindarc/ultraspin/theme"
	"github.com/justindarc/ultraspin/transition"
)

// Theme component names.
const (
	ComponentBackground = "background"
	ComponentVideo      = "video"
	componentArtwork    = "artwork"
)

// Z order of a video's parts.
const (
	zOverlayBelow = -1
	zFrame        = 0
	zOverlay      = 1
	zBorder       = 2
)

// AssetSource locates theme media. *media.Resolver implements it.
type AssetSource interface {
	theme.MemberSource
	Component(ctx context.Context, system, game, component string) (*archive.Asset, error)
	SpecialImage(system, name string) string
	Video(system, name string) string
}

// ImageLoader decodes an image file into an ebiten image.
type ImageLoader func(path string) (*ebiten.Image, error)

// VideoProber reports the pixel size of a video file.
type VideoProber func(ctx context.Context, path string) (probe.Size, error)

// ThemeOption configures a ThemeRenderer.
type ThemeOption func(*ThemeRenderer)

// WithThemeLogger sets the renderer's logger.
func WithThemeLogger(logger *slog.Logger) ThemeOption {
	return func(r *ThemeRenderer) { r.logger = logging.NewComponentLogger(logger, "render") }
}

// WithCompiler replaces the transition compiler.
func WithCompiler(c *transition.Compiler) ThemeOption {
	return func(r *ThemeRenderer) {
		if c != nil {
			r.compiler = c
		}
	}
}

// WithImageLoader replaces the image decoder.
func WithImageLoader(load ImageLoader) ThemeOption {
	return func(r *ThemeRenderer) {
		if load != nil {
			r.loadImage = load
		}
	}
}

// WithFFprobe sets the ffprobe executable used to size videos.
func WithFFprobe(binary string) ThemeOption {
	return func(r *ThemeRenderer) {
		r.probeVideo = func(ctx context.Context, path string) (probe.Size, error) {
			return probe.VideoSize(ctx, binary, path)
		}
	}
}

// WithVideoProber replaces the video size probe.
func WithVideoProber(fn VideoProber) ThemeOption {
	return func(r *ThemeRenderer) {
		if fn != nil {
			r.probeVideo = fn
		}
	}
}

// ThemeRenderer turns theme descriptors into nodes on a scene and starts
// their transitions.
type ThemeRenderer struct {
	scene      *Scene
	source     AssetSource
	loader     *theme.Loader
	compiler   *transition.Compiler
	loadImage  ImageLoader
	probeVideo VideoProber
	logger     *slog.Logger
}

// NewThemeRenderer creates a renderer placing nodes on scene with assets
// from source.
func NewThemeRenderer(scene *Scene, source AssetSource, opts ...ThemeOption) *ThemeRenderer {
	r := &ThemeRenderer{
		scene:     scene,
		source:    source,
		loadImage: loadImageFile,
		logger:    logging.NewComponentLogger(nil, "render"),
	}
	WithFFprobe(probe.DefaultFFprobe)(r)
	for _, opt := range opts {
		opt(r)
	}
	if r.compiler == nil {
		r.compiler = transition.NewCompiler(transition.WithLogger(r.logger))
	}
	r.loader = theme.NewLoader(source, r.logger)
	return r
}

func loadImageFile(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return img, nil
}

// RenderTheme loads the theme of game and renders each component in
// document order under a new container on the scene root. Components that
// fail are logged and left out.
func (r *ThemeRenderer) RenderTheme(ctx context.Context, system, game string) (*Node, error) {
	desc, err := r.loader.Load(ctx, system, game)
	if err != nil {
		return nil, err
	}
	w, h := r.scene.Size()
	root := NewContainer(system + "/" + game)
	root.Width, root.Height = float64(w), float64(h)
	root.Origin = &Vec2{}
	r.scene.Root().AddChild(root)

	for _, name := range desc.Order {
		if err := ctx.Err(); err != nil {
			return root, err
		}
		attrs := desc.Components[name]
		var node *Node
		var err error
		switch {
		case name == ComponentBackground:
			node, err = r.RenderImage(ctx, root, system, game, name, nil)
			if node != nil {
				node.SetLayout(0, 0, float64(w), float64(h))
				node.SetZIndex(-1)
			}
		case name == ComponentVideo:
			node, err = r.RenderVideo(ctx, root, system, game, attrs)
		case strings.HasPrefix(name, componentArtwork):
			node, err = r.RenderImage(ctx, root, system, game, name, attrs)
		default:
			r.logger.Debug("component skipped", logging.String("member", name))
			continue
		}
		if err != nil {
			r.logComponentError(system, game, name, err)
			continue
		}
		if name != ComponentBackground {
			r.Animate(node, attrs)
		}
	}
	return root, nil
}

func (r *ThemeRenderer) logComponentError(system, game, name string, err error) {
	attrs := logging.Args(
		logging.String(logging.FieldSystem, system),
		logging.String(logging.FieldGame, game),
		logging.String("member", name),
		logging.Error(err),
	)
	if errors.Is(err, media.ErrNoAsset) {
		r.logger.Debug("component omitted", attrs...)
		return
	}
	r.logger.Warn("component failed", attrs...)
}

// RenderImage extracts a themed image component and adds it to parent.
// With attrs the image is sized to its natural size times the screen scale,
// centred on x, y and rotated by r; the scaled size is written back to w
// and h. Without attrs it is added unplaced.
func (r *ThemeRenderer) RenderImage(ctx context.Context, parent *Node, system, game, component string, attrs theme.Attributes) (*Node, error) {
	asset, err := r.source.Component(ctx, system, game, component)
	if err != nil {
		return nil, err
	}
	node, natural, anchor, err := r.imageNode(component, asset.Path)
	if err != nil {
		return nil, err
	}
	if attrs != nil {
		box := layoutImage(attrs.FloatOr("x", 0), attrs.FloatOr("y", 0), natural, anchor, r.scene.Screen())
		node.SetLayout(box.Left, box.Top, box.Width, box.Height)
		node.Transform = restTransform(attrs).Matrix()
		attrs.Set("w", box.Width)
		attrs.Set("h", box.Height)
	}
	parent.AddChild(node)
	return node, nil
}

// RenderSpecial adds the special image name of system to parent, centred
// on x, y. Specials are never rotated.
func (r *ThemeRenderer) RenderSpecial(parent *Node, system, name string, attrs theme.Attributes) (*Node, error) {
	path := r.source.SpecialImage(system, name)
	if path == "" {
		return nil, fmt.Errorf("%w: special %s/%s", media.ErrNoAsset, system, name)
	}
	node, natural, anchor, err := r.imageNode(name, path)
	if err != nil {
		return nil, err
	}
	box := layoutImage(attrs.FloatOr("x", 0), attrs.FloatOr("y", 0), natural, anchor, r.scene.Screen())
	node.SetLayout(box.Left, box.Top, box.Width, box.Height)
	if !isSWF(path) {
		attrs.Set("w", box.Width)
		attrs.Set("h", box.Height)
	}
	parent.AddChild(node)
	return node, nil
}

// imageNode builds the node for an image file and reports its natural and
// centring sizes. Flash files are not played; they get an empty sprite of
// the stage size.
func (r *ThemeRenderer) imageNode(name, path string) (*Node, probe.Size, probe.Size, error) {
	if isSWF(path) {
		h, err := probe.SWFSize(path)
		if err != nil {
			return nil, probe.Size{}, probe.Size{}, err
		}
		node := NewRect(name, h.Size.Width, h.Size.Height, Color{})
		return node, h.Size, h.World, nil
	}
	img, err := r.loadImage(path)
	if err != nil {
		return nil, probe.Size{}, probe.Size{}, err
	}
	b := img.Bounds()
	natural := probe.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
	return NewSprite(name, img), natural, natural, nil
}

func isSWF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".swf")
}

// restTransform is a component's resting transform: its rotation.
func restTransform(attrs theme.Attributes) transition.Transform {
	return transition.Transform{transition.Rotate(attrs.FloatOr("r", 0))}
}

// RenderVideo adds the game's video box to parent: a frame sized from the
// theme and the video's aspect ratio, the themed overlay artwork and up to
// three borders. Video frames are not decoded; the frame is drawn black.
func (r *ThemeRenderer) RenderVideo(ctx context.Context, parent *Node, system, game string, attrs theme.Attributes) (*Node, error) {
	path := r.source.Video(system, game)
	if path == "" {
		return nil, fmt.Errorf("%w: video %s/%s", media.ErrNoAsset, system, game)
	}
	size, err := r.probeVideo(ctx, path)
	if err != nil {
		return nil, err
	}
	screen := r.scene.Screen()
	box := layoutVideo(attrs, size, screen)

	node := NewContainer(ComponentVideo)
	node.SetLayout(box.Left, box.Top, box.Width, box.Height)
	node.Transform = restTransform(attrs).Matrix()
	node.UserData = path
	if truthy(attrs, "below") {
		node.SetZIndex(-1)
	}

	frame := NewRect("frame", box.Width, box.Height, ColorBlack)
	frame.ZIndex = zFrame
	node.AddChild(frame)

	inset := 0.0
	for i, b := range videoBorders(attrs) {
		ring := RenderBorder(node, b, inset)
		ring.Name = fmt.Sprintf("border%d", i+1)
		inset += b.Size
	}

	if asset, err := r.source.Component(ctx, system, game, ComponentVideo); err == nil {
		if img, err := r.loadImage(asset.Path); err == nil {
			ib := img.Bounds()
			ob := layoutOverlay(attrs, probe.Size{Width: float64(ib.Dx()), Height: float64(ib.Dy())}, box, screen)
			overlay := NewSprite("overlay", img)
			overlay.SetLayout(ob.Left, ob.Top, ob.Width, ob.Height)
			overlay.ZIndex = zOverlay
			if truthy(attrs, "overlaybelow") {
				overlay.ZIndex = zOverlayBelow
			}
			node.AddChild(overlay)
		} else {
			r.logger.Warn("video overlay unreadable", logging.String(logging.FieldPath, asset.Path), logging.Error(err))
		}
	}

	parent.AddChild(node)
	return node, nil
}

// RenderBorder draws a border ring of b.Size pixels around node, outside
// any rings already drawn inset pixels deep.
func RenderBorder(node *Node, b Border, inset float64) *Node {
	ring := NewBorderMesh("border", node.Width+2*inset, node.Height+2*inset, b.Size, b.Rounded, b.Color)
	ring.Left, ring.Top = -inset, -inset
	ring.ZIndex = zBorder
	node.AddChild(ring)
	return ring
}

// Animate compiles the transition named by attrs for a placed node and
// plays it. Unsupported transitions leave the node at rest.
func (r *ThemeRenderer) Animate(node *Node, attrs theme.Attributes) *Playback {
	spec := transition.Spec{
		Start: attrs.String("start"),
		Type:  attrs.String("type"),
		Delay: attrs.FloatOr("delay", 0),
		Time:  attrs.FloatOr("time", 0),
	}
	screen := r.scene.Screen()
	geom := geometry(attrs, Box{Width: node.Width, Height: node.Height}, screen)
	if node.Name == ComponentVideo {
		geom.W, geom.H = attrs.FloatOr("w", 0), attrs.FloatOr("h", 0)
	}
	plan, err := r.compiler.Compile(spec, geom, restTransform(attrs), screen)
	if err != nil {
		r.logger.Debug("transition skipped",
			logging.String("node", node.Name),
			logging.String("start", spec.Start),
			logging.String(logging.FieldEffect, spec.Type),
			logging.Error(err))
		return nil
	}
	return r.scene.Play(node, plan)
}
