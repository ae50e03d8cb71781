package ultraspin

import (
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/justindarc/ultraspin/transition"
)

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene(1024, 768)
	if s.Root() == nil || s.Root().Name != "root" {
		t.Fatal("missing root")
	}
	if w, h := s.Size(); w != 1024 || h != 768 {
		t.Errorf("Size = %dx%d", w, h)
	}
	if sc := s.Screen(); sc.ScaleX() != 1 || sc.ScaleY() != 1 {
		t.Errorf("Screen scale = %v, %v", sc.ScaleX(), sc.ScaleY())
	}
	s.Resize(512, 384)
	if b := s.Bounds(); b.Width != 512 || b.Height != 384 {
		t.Errorf("Bounds after resize = %v", b)
	}
}

func TestNextFrameRunsOnce(t *testing.T) {
	s := NewScene(100, 100)
	calls := 0
	s.NextFrame(func() { calls++ })
	s.UpdateDelta(0.016)
	s.UpdateDelta(0.016)
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestPlayAppliesInitialKeyframe(t *testing.T) {
	s := NewScene(1024, 768)
	n := NewRect("art", 100, 100, ColorWhite)
	s.Root().AddChild(n)

	plan := fadePlan(0, time.Second)
	plan.Placement = &transition.Placement{Left: 40, Top: 60}
	pb := s.Play(n, plan)

	if n.Alpha != 0 {
		t.Errorf("Alpha = %v, want initial 0", n.Alpha)
	}
	if n.Left != 40 || n.Top != 60 {
		t.Errorf("placement = (%v, %v)", n.Left, n.Top)
	}
	if pb.Animation().Playing() {
		t.Error("animation started before the next frame")
	}
	if len(s.Playbacks()) != 1 {
		t.Errorf("Playbacks = %d", len(s.Playbacks()))
	}
}

func TestPlayRunsAndPrunes(t *testing.T) {
	s := NewScene(1024, 768)
	n := NewRect("art", 100, 100, ColorWhite)
	s.Root().AddChild(n)
	plan := fadePlan(0, 500*time.Millisecond)
	pb := s.Play(n, plan)

	s.UpdateDelta(0.25)
	if !pb.Animation().Playing() {
		t.Fatal("animation should play after the first update")
	}
	for i := 0; i < 4; i++ {
		s.UpdateDelta(0.25)
	}
	if !pb.Done() {
		t.Error("playback should be done")
	}
	if len(s.Playbacks()) != 0 {
		t.Error("finished playback not pruned")
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
}

func TestPlayStartsProcesses(t *testing.T) {
	s := NewScene(1024, 768)
	n := NewSprite("art", ebiten.NewImage(32, 32))
	s.Root().AddChild(n)
	plan := fadePlan(0, 500*time.Millisecond)
	plan.Aux = []transition.AuxSpec{
		{Kind: transition.AuxPixelate, Amount: 1, Duration: time.Second},
	}
	pb := s.Play(n, plan)
	if len(pb.Processes()) != 1 {
		t.Fatalf("Processes = %d, want 1", len(pb.Processes()))
	}
	if len(n.Filters) != 1 {
		t.Error("pixelate filter not attached at Play")
	}

	s.UpdateDelta(0.25)
	s.UpdateDelta(0.5)
	// The animation has ended but the process keeps the playback alive.
	if !pb.Animation().Finished() {
		t.Error("animation should be finished")
	}
	if pb.Done() || len(s.Playbacks()) != 1 {
		t.Error("playback should wait for its process")
	}
	for i := 0; i < 4; i++ {
		s.UpdateDelta(0.25)
	}
	if !pb.Done() || len(n.Filters) != 0 {
		t.Error("playback should finish with its process")
	}
}

func TestPlayUnknownAuxIsSkipped(t *testing.T) {
	s := NewScene(1024, 768)
	n := NewRect("art", 10, 10, ColorWhite)
	plan := fadePlan(0, time.Second)
	plan.Aux = []transition.AuxSpec{{Kind: transition.AuxKind(200)}}
	pb := s.Play(n, plan)
	if len(pb.Processes()) != 0 {
		t.Error("unknown aux kind should not build a process")
	}
}

func TestPlayDisposedBeforeStart(t *testing.T) {
	s := NewScene(1024, 768)
	n := NewRect("art", 10, 10, ColorWhite)
	s.Root().AddChild(n)
	pb := s.Play(n, fadePlan(0, time.Second))
	n.Dispose()
	s.UpdateDelta(0.1)
	if !pb.Done() || len(s.Playbacks()) != 0 {
		t.Error("playback on a disposed node should end")
	}
}

func TestPlaybackStop(t *testing.T) {
	s := NewScene(1024, 768)
	n := NewSprite("art", ebiten.NewImage(16, 16))
	s.Root().AddChild(n)
	plan := fadePlan(0, time.Second)
	plan.Timing.Iterations = 3
	plan.Aux = []transition.AuxSpec{{Kind: transition.AuxPixelate, Amount: 1}}
	pb := s.Play(n, plan)
	s.UpdateDelta(0.1)
	pb.Stop()
	if !pb.Done() {
		t.Error("stopped playback should be done")
	}
	s.UpdateDelta(0.1)
	if len(s.Playbacks()) != 0 {
		t.Error("stopped playback not pruned")
	}
}

type countingProcess struct {
	processClock
	updates int
}

func (p *countingProcess) Start(delay, duration time.Duration) { p.start(delay, duration) }
func (p *countingProcess) Stop()                               { p.done = true }
func (p *countingProcess) Update(dt float32) {
	local, running := p.advance(dt)
	if !running {
		return
	}
	p.updates++
	if p.expired(local) {
		p.Stop()
	}
}

func TestRunFreeStandingProcess(t *testing.T) {
	s := NewScene(100, 100)
	p := &countingProcess{}
	s.Run(p, 0, 300*time.Millisecond)
	for i := 0; i < 5; i++ {
		s.UpdateDelta(0.1)
	}
	if !p.Done() {
		t.Error("process should be done")
	}
	if len(s.procs) != 0 {
		t.Error("done process not pruned")
	}
	if p.updates != 3 {
		t.Errorf("updates = %d, want 3", p.updates)
	}
}

func TestUpdateStepsParticles(t *testing.T) {
	s := NewScene(100, 100)
	em := NewParticleEmitter("em", EmitterConfig{
		MaxParticles: 10,
		EmitRate:     100,
		Lifetime:     Range{1, 1},
	})
	s.Root().AddChild(em)
	em.Emitter.Start()
	s.UpdateDelta(0.05)
	if em.Emitter.AliveCount() != 5 {
		t.Errorf("alive = %d, want 5", em.Emitter.AliveCount())
	}
}

func TestFPSWidgetRunsAsProcess(t *testing.T) {
	s := NewScene(100, 100)
	w := NewFPSWidget(s)
	s.Root().AddChild(w.Node())
	s.Run(w, 0, time.Second)
	for i := 0; i < 12; i++ {
		s.UpdateDelta(0.1)
	}
	if !w.Done() || !w.Node().IsDisposed() {
		t.Error("widget should remove itself after its duration")
	}
}

func TestDumpTree(t *testing.T) {
	root := NewContainer("root")
	child := NewRect("box", 10, 20, ColorWhite)
	child.Visible = false
	root.AddChild(child)
	out := DumpTree(root)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "  ") || !strings.Contains(lines[1], `"box"`) {
		t.Errorf("child line = %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], "hidden") {
		t.Errorf("hidden node not marked: %q", lines[1])
	}
}

func TestCountDrawCalls(t *testing.T) {
	e := newParticleEmitter(EmitterConfig{MaxParticles: 8})
	e.alive = 3
	cmds := []RenderCommand{
		{Type: CommandSprite},
		{Type: CommandMesh},
		{Type: CommandParticle, emitter: e},
	}
	if got := countDrawCalls(cmds); got != 5 {
		t.Errorf("countDrawCalls = %d, want 5", got)
	}
}
