package ultraspin

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/justindarc/ultraspin/logging"
	"github.com/justindarc/ultraspin/transition"
)

const defaultCommandCap = 256

// Scene owns the node tree, the running transitions and the render buffers.
// A scene is driven from ebiten's Update and Draw and is not safe for
// concurrent use.
type Scene struct {
	root          *Node
	width, height int

	playbacks []*Playback
	procs     []Process
	nextFrame []func()

	screenshotQueue []string
	// ScreenshotDir is where Screenshot writes its PNG files.
	ScreenshotDir string
	script        *ScriptRunner

	// Render state
	commands      []RenderCommand
	offscreenCmds []RenderCommand
	rtPool        renderTexturePool
	rtDeferred    []*ebiten.Image

	debug  bool
	logger *slog.Logger
}

// NewScene creates a scene for a screen of w x h pixels.
func NewScene(w, h int) *Scene {
	return &Scene{
		root:     NewContainer("root"),
		width:    w,
		height:   h,
		commands: make([]RenderCommand, 0, defaultCommandCap),
		logger:   logging.NewComponentLogger(nil, "scene"),

		ScreenshotDir: "screenshots",
	}
}

// SetLogger replaces the scene's logger. A nil logger discards output.
func (s *Scene) SetLogger(logger *slog.Logger) {
	s.logger = logging.NewComponentLogger(logger, "scene")
}

// SetDebug toggles per-frame render stats at debug level.
func (s *Scene) SetDebug(on bool) { s.debug = on }

// Root returns the scene's root container node.
func (s *Scene) Root() *Node { return s.root }

// Size returns the screen size in pixels.
func (s *Scene) Size() (int, int) { return s.width, s.height }

// Screen returns the screen dimensions transitions are compiled against.
func (s *Scene) Screen() transition.Screen {
	return transition.Screen{Width: float64(s.width), Height: float64(s.height)}
}

// Bounds returns the screen rectangle.
func (s *Scene) Bounds() Rect {
	return Rect{Width: float64(s.width), Height: float64(s.height)}
}

// Resize changes the screen size. Running transitions keep the geometry
// they were compiled with.
func (s *Scene) Resize(w, h int) {
	s.width, s.height = w, h
}

// NextFrame queues fn to run at the start of the next update.
func (s *Scene) NextFrame(fn func()) {
	s.nextFrame = append(s.nextFrame, fn)
}

// Playback is a transition running on a node: the keyframe animation plus
// the auxiliary processes the plan asked for.
type Playback struct {
	anim  *Animation
	procs []Process
	aux   []transition.AuxSpec
}

// Animation returns the keyframe animation.
func (p *Playback) Animation() *Animation { return p.anim }

// Processes returns the auxiliary processes in plan order.
func (p *Playback) Processes() []Process { return p.procs }

// Done reports whether the animation and every process have finished.
// Plans with infinite iterations are never done.
func (p *Playback) Done() bool {
	if !p.anim.Finished() {
		return false
	}
	for _, proc := range p.procs {
		if !proc.Done() {
			return false
		}
	}
	return true
}

// Stop cancels the animation and ends every process.
func (p *Playback) Stop() {
	p.anim.Cancel()
	for _, proc := range p.procs {
		proc.Stop()
	}
}

// Play runs plan on node. The node is placed and given the plan's initial
// keyframe immediately; the animation and processes start on the next frame
// so the first frame shows the initial state.
func (s *Scene) Play(node *Node, plan transition.Plan) *Playback {
	node.ApplyPlacement(plan.Placement)
	node.ApplyKeyframe(plan.Initial())

	pb := &Playback{anim: NewAnimation(node, plan), aux: plan.Aux}
	for _, aux := range plan.Aux {
		proc := newProcess(node, aux, s.Bounds())
		if proc == nil {
			s.logger.Warn("unknown auxiliary effect", logging.Int("kind", int(aux.Kind)))
			continue
		}
		pb.procs = append(pb.procs, proc)
	}
	s.playbacks = append(s.playbacks, pb)
	s.logger.Debug("transition queued",
		logging.String("node", node.Name),
		logging.String(logging.FieldEffect, plan.Type),
		logging.Int("processes", len(pb.procs)))

	s.NextFrame(func() {
		if node.IsDisposed() {
			pb.Stop()
			return
		}
		for i, proc := range pb.procs {
			proc.Start(pb.aux[i].Delay, pb.aux[i].Duration)
		}
		pb.anim.Play()
	})
	return pb
}

// Run starts a free-standing process, such as an FPS readout, and updates
// it every frame until it is done.
func (s *Scene) Run(p Process, delay, duration time.Duration) {
	p.Start(delay, duration)
	s.procs = append(s.procs, p)
}

// Playbacks returns the transitions still running.
func (s *Scene) Playbacks() []*Playback { return s.playbacks }

// Update advances the scene by one tick at ebiten's TPS.
func (s *Scene) Update() {
	s.UpdateDelta(float32(1.0 / float64(ebiten.TPS())))
}

// UpdateDelta advances the scene by dt seconds.
func (s *Scene) UpdateDelta(dt float32) {
	if s.script != nil {
		s.script.step(s, dt)
	}

	queued := s.nextFrame
	s.nextFrame = nil
	for _, fn := range queued {
		fn()
	}

	live := s.playbacks[:0]
	for _, pb := range s.playbacks {
		pb.anim.Update(dt)
		for _, proc := range pb.procs {
			proc.Update(dt)
		}
		if !pb.Done() {
			live = append(live, pb)
		}
	}
	clear(s.playbacks[len(live):])
	s.playbacks = live

	procs := s.procs[:0]
	for _, p := range s.procs {
		p.Update(dt)
		if !p.Done() {
			procs = append(procs, p)
		}
	}
	clear(s.procs[len(procs):])
	s.procs = procs

	updateParticles(s.root, float64(dt))
	updateWorldTransform(s.root, identityTransform, 1.0, false)
}

// updateParticles steps every emitter in the subtree.
func updateParticles(n *Node, dt float64) {
	if n.Emitter != nil {
		n.Emitter.update(dt)
	}
	for _, child := range n.children {
		updateParticles(child, dt)
	}
}

// Draw renders the scene onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	s.commands = s.commands[:0]

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.walk(s.root, identityTransform, 1.0)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		stats.filteredCount = len(s.rtDeferred)
		t0 = time.Now()
	}

	s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCallCount = countDrawCalls(s.commands)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)

	for _, img := range s.rtDeferred {
		s.rtPool.Release(img)
	}
	s.rtDeferred = s.rtDeferred[:0]
}
