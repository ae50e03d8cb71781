package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/justindarc/ultraspin"
	"github.com/justindarc/ultraspin/theme"
)

type playOptions struct {
	fps       bool
	script    string
	specials  []string
	debug     bool
	shotsDir  string
	replayGap time.Duration
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play <system> <game>",
		Short: "Open a window and play a game's theme",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			resolver, err := ctx.media()
			if err != nil {
				return err
			}

			scene := ultraspin.NewScene(cfg.Display.Width, cfg.Display.Height)
			scene.SetLogger(ctx.logger)
			scene.SetDebug(opts.debug)
			if opts.shotsDir != "" {
				scene.ScreenshotDir = opts.shotsDir
			}

			renderer := ultraspin.NewThemeRenderer(scene, resolver,
				ultraspin.WithThemeLogger(ctx.logger),
				ultraspin.WithCompiler(ctx.compiler()),
				ultraspin.WithFFprobe(cfg.Probe.FFProbe),
			)

			g := &game{
				scene:    scene,
				renderer: renderer,
				system:   args[0],
				name:     args[1],
				specials: opts.specials,
				gap:      opts.replayGap,
				width:    cfg.Display.Width,
				height:   cfg.Display.Height,
				cmd:      cmd,
			}
			if err := g.load(); err != nil {
				return err
			}

			if opts.script != "" {
				data, err := os.ReadFile(opts.script)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				runner, err := ultraspin.LoadScript(data)
				if err != nil {
					return err
				}
				scene.SetScript(runner)
				g.script = runner
			}
			if opts.fps {
				w := ultraspin.NewFPSWidget(scene)
				scene.Root().AddChild(w.Node())
				scene.Run(w, 0, 0)
			}

			ebiten.SetWindowTitle(fmt.Sprintf("ultraspin - %s / %s", args[0], args[1]))
			ebiten.SetWindowSize(cfg.Display.Width, cfg.Display.Height)
			ebiten.SetFullscreen(cfg.Display.Fullscreen)
			if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.fps, "fps", false, "Show an FPS readout")
	flags.StringVar(&opts.script, "script", "", "JSON playback script (waits and screenshots); the window closes when it ends")
	flags.StringSliceVar(&opts.specials, "special", nil, "Special images to show, as name@x,y (e.g. SpecialA1@512,700)")
	flags.BoolVar(&opts.debug, "debug", false, "Log per-frame render stats")
	flags.StringVar(&opts.shotsDir, "screenshots", "", "Screenshot directory")
	flags.DurationVar(&opts.replayGap, "replay", 0, "Replay the theme after it settles, waiting this long in between")
	return cmd
}

// game drives a scene from ebiten.
type game struct {
	scene    *ultraspin.Scene
	renderer *ultraspin.ThemeRenderer
	script   *ultraspin.ScriptRunner
	root     *ultraspin.Node

	system, name string
	specials     []string
	gap          time.Duration
	idle         time.Duration

	width, height int
	cmd           *cobra.Command
}

// load renders the theme and any specials on top of it.
func (g *game) load() error {
	root, err := g.renderer.RenderTheme(g.cmd.Context(), g.system, g.name)
	if err != nil {
		return fmt.Errorf("render theme: %w", err)
	}
	g.root = root
	for _, spec := range g.specials {
		name, attrs, err := parseSpecial(spec)
		if err != nil {
			return err
		}
		if _, err := g.renderer.RenderSpecial(root, g.system, name, attrs); err != nil {
			g.cmd.PrintErrf("special %s: %v\n", name, err)
		}
	}
	return nil
}

func (g *game) Update() error {
	g.scene.Update()
	if g.script != nil && g.script.Done() {
		return ebiten.Termination
	}
	if g.gap > 0 && len(g.scene.Playbacks()) == 0 {
		g.idle += time.Second / time.Duration(ebiten.TPS())
		if g.idle >= g.gap {
			g.idle = 0
			g.root.Dispose()
			if err := g.load(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// parseSpecial reads name@x,y.
func parseSpecial(s string) (string, theme.Attributes, error) {
	name, pos, ok := strings.Cut(s, "@")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("special %q: want name@x,y", s)
	}
	xs, ys, ok := strings.Cut(pos, ",")
	if !ok {
		return "", nil, fmt.Errorf("special %q: want name@x,y", s)
	}
	x, y := theme.ParseValue(strings.TrimSpace(xs)), theme.ParseValue(strings.TrimSpace(ys))
	if !x.IsNumber() || !y.IsNumber() {
		return "", nil, fmt.Errorf("special %q: position must be numeric", s)
	}
	return name, theme.Attributes{"x": x, "y": y}, nil
}

