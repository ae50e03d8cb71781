package transition

import (
	"errors"
	"math"
	"testing"
	"time"
)

const eps = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Matrix) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
			return
		}
	}
}

func compile(t *testing.T, spec Spec, geom Geometry) Plan {
	t.Helper()
	plan, err := NewCompiler().Compile(spec, geom, nil, RefScreen)
	if err != nil {
		t.Fatalf("Compile(%+v): %v", spec, err)
	}
	return plan
}

var box = Geometry{X: 200, Y: 200, W: 100, H: 50}

func TestLeftFade(t *testing.T) {
	plan := compile(t, Spec{Start: "left", Type: "fade", Time: 1}, box)

	if len(plan.Keyframes) != 2 {
		t.Fatalf("keyframes = %d, want 2", len(plan.Keyframes))
	}
	first, last := plan.Keyframes[0], plan.Keyframes[1]
	assertMatrix(t, "first", first.Transform.Matrix(), Matrix{1, 0, 0, 1, -300, 0})
	if !first.Has(PropOpacity) || first.Opacity != NearZero {
		t.Errorf("first opacity = %v (set %v), want %v", first.Opacity, first.Has(PropOpacity), NearZero)
	}
	assertMatrix(t, "last", last.Transform.Matrix(), Identity)
	if !last.Has(PropOpacity) || last.Opacity != 1 {
		t.Errorf("landing opacity = %v, want 1", last.Opacity)
	}
	if plan.Offsets[0] != 0 || plan.Offsets[1] != 1 {
		t.Errorf("offsets = %v", plan.Offsets)
	}
	if plan.Timing.Duration != time.Second || plan.Timing.Iterations != 1 || !plan.Timing.FillForwards {
		t.Errorf("timing = %+v", plan.Timing)
	}
	if !plan.Timing.Easing.IsLinear() {
		t.Errorf("easing = %v, want linear", plan.Timing.Easing)
	}
}

func TestEdgeStarts(t *testing.T) {
	tests := []struct {
		start  string
		tx, ty float64
	}{
		{"top", 0, -250},
		{"right", 1024 - 100, 0},
		{"bottom", 0, 768 - 150},
		{"left", -300, 0},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			plan := compile(t, Spec{Start: tt.start, Type: "ease", Time: 1}, box)
			m := plan.Initial().Transform.Matrix()
			assertNear(t, "tx", m[4], tt.tx)
			assertNear(t, "ty", m[5], tt.ty)
			if plan.Timing.Easing != Ease {
				t.Errorf("easing = %v, want ease", plan.Timing.Easing)
			}
			if plan.Keyframes[1].Has(PropOpacity) {
				t.Error("landing touched opacity for a transform-only start")
			}
		})
	}
}

func TestScreenScaling(t *testing.T) {
	plan, err := NewCompiler().Compile(Spec{Start: "left", Type: "ease", Time: 1}, box, nil, Screen{Width: 2048, Height: 1536})
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "tx", plan.Initial().Transform.Matrix()[4], -600)
}

func TestBaseTransformPrecedesEffect(t *testing.T) {
	base := Transform{Rotate(90)}
	plan, err := NewCompiler().Compile(Spec{Start: "left", Type: "ease", Time: 1}, box, base, RefScreen)
	if err != nil {
		t.Fatal(err)
	}
	// rotate(90deg) translateX(-300px) moves along the rotated x axis.
	m := plan.Initial().Transform.Matrix()
	assertNear(t, "tx", m[4], 0)
	assertNear(t, "ty", m[5], -300)
}

func TestUnsupported(t *testing.T) {
	tests := []Spec{
		{Start: "center", Type: "ease", Time: 1},
		{Start: "center", Type: "no such effect", Time: 1},
		{Start: "diagonal", Type: "fade", Time: 1},
		{Start: "", Type: "", Time: 1},
	}
	for _, spec := range tests {
		plan, err := NewCompiler().Compile(spec, box, nil, RefScreen)
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("%+v: err = %v, want ErrUnsupported", spec, err)
		}
		if len(plan.Keyframes) != 0 {
			t.Errorf("%+v: unsupported plan has keyframes", spec)
		}
	}
}

func TestLandingKeyframes(t *testing.T) {
	plan := compile(t, Spec{Start: "none", Type: "none", Time: 1}, box)
	if len(plan.Keyframes) != 2 {
		t.Fatalf("keyframes = %d", len(plan.Keyframes))
	}
	if plan.Keyframes[0].Visible || !plan.Keyframes[0].Has(PropVisibility) {
		t.Error("first keyframe should hide")
	}
	if !plan.Keyframes[1].Visible || !plan.Keyframes[1].Has(PropVisibility) {
		t.Error("landing should restore visibility")
	}

	plan = compile(t, Spec{Start: "center", Type: "grow", Time: 1}, box)
	assertMatrix(t, "grow start", plan.Keyframes[0].Transform.Matrix(), Matrix{NearZero, 0, 0, NearZero, 0, 0})
	if plan.Keyframes[1].Props != PropTransform {
		t.Errorf("neutral landing props = %b", plan.Keyframes[1].Props)
	}
}

func TestChase(t *testing.T) {
	plan := compile(t, Spec{Start: "left", Type: "chase", Time: 3}, box)
	if want := 2 * (3*time.Second + DefaultChasePause); plan.Timing.Duration != want {
		t.Errorf("duration = %v, want %v", plan.Timing.Duration, want)
	}
	if !plan.Timing.Infinite() {
		t.Error("chase should loop forever")
	}
	assertNear(t, "iterationStart", plan.Timing.IterationStart, 0.2)
	if len(plan.Keyframes) != 5 {
		t.Fatalf("keyframes = %d, want 5 (replaced)", len(plan.Keyframes))
	}
	want := []float64{0, .20001, .5, .70001, 1}
	for i, o := range plan.Offsets {
		assertNear(t, "offset", o, want[i])
	}

	custom, err := NewCompiler(WithChasePause(time.Second)).Compile(Spec{Start: "left", Type: "chase", Time: 1}, box, nil, RefScreen)
	if err != nil {
		t.Fatal(err)
	}
	if custom.Timing.Duration != 4*time.Second {
		t.Errorf("custom pause duration = %v", custom.Timing.Duration)
	}
}

func TestChaseZeroTimeKeepsOffsetsOrdered(t *testing.T) {
	plan := compile(t, Spec{Start: "center", Type: "chase"}, box)
	for i := 1; i < len(plan.Offsets); i++ {
		if plan.Offsets[i] < plan.Offsets[i-1] {
			t.Fatalf("offsets decrease: %v", plan.Offsets)
		}
	}
}

func TestSweepReplacesKeyframes(t *testing.T) {
	plan := compile(t, Spec{Start: "center", Type: "sweep left", Time: 2}, box)
	if len(plan.Keyframes) != 4 {
		t.Fatalf("keyframes = %d, want 4", len(plan.Keyframes))
	}
	assertNear(t, "from", plan.Keyframes[0].Transform.Matrix()[4], -300)
	assertNear(t, "to", plan.Keyframes[1].Transform.Matrix()[4], 924)
	assertNear(t, "drop", plan.Keyframes[2].Transform.Matrix()[5], -250)
	assertMatrix(t, "rest", plan.Keyframes[3].Transform.Matrix(), Identity)

	right := compile(t, Spec{Start: "top", Type: "sweep right", Time: 2}, box)
	assertNear(t, "from", right.Keyframes[0].Transform.Matrix()[4], 924)
	assertNear(t, "to", right.Keyframes[1].Transform.Matrix()[4], -300)
}

func TestBounceFollowsStartAxis(t *testing.T) {
	plan := compile(t, Spec{Start: "top", Type: "bounce", Time: 1}, box)
	if len(plan.Keyframes) != 8 {
		t.Fatalf("keyframes = %d, want 8", len(plan.Keyframes))
	}
	assertNear(t, "rebound", plan.Keyframes[2].Transform.Matrix()[5], -250.0/4)
	assertNear(t, "offset", plan.Offsets[2], .4)

	if _, err := NewCompiler().Compile(Spec{Start: "center", Type: "bounce", Time: 1}, box, nil, RefScreen); !errors.Is(err, ErrUnsupported) {
		t.Errorf("bounce without edge start: err = %v", err)
	}
}

func TestElastic(t *testing.T) {
	plan := compile(t, Spec{Start: "right", Type: "elastic", Time: 1}, box)
	if len(plan.Keyframes) != 8 {
		t.Fatalf("keyframes = %d, want 8", len(plan.Keyframes))
	}
	assertNear(t, "overshoot", plan.Keyframes[1].Transform.Matrix()[4], -924.0/4)
	assertNear(t, "swing", plan.Keyframes[2].Transform.Matrix()[4], 924.0/6)
}

func TestStrobeKeyframeCount(t *testing.T) {
	for _, secs := range []float64{1, 2.5, .3} {
		plan := compile(t, Spec{Start: "center", Type: "strobe", Time: secs}, box)
		want := 4*int(math.Ceil(secs*4)) + 2
		if len(plan.Keyframes) != want {
			t.Errorf("time %v: keyframes = %d, want %d", secs, len(plan.Keyframes), want)
		}
		for i := 1; i < len(plan.Offsets); i++ {
			if plan.Offsets[i] < plan.Offsets[i-1] || plan.Offsets[i] > 1 {
				t.Errorf("time %v: bad offsets %v", secs, plan.Offsets)
				break
			}
		}
		if last := plan.Keyframes[len(plan.Keyframes)-1]; last.Opacity != 1 {
			t.Errorf("time %v: final opacity %v", secs, last.Opacity)
		}
	}
}

func TestStrobeBoundsAuthoredTime(t *testing.T) {
	tests := []struct {
		name      string
		time      float64
		keyframes int
		duration  time.Duration
	}{
		{"infinite", math.Inf(1), 2, 0},
		{"nan", math.NaN(), 2, 0},
		{"huge", 1e6, 4*maxStrobes + 2, MaxSeconds * time.Second},
		{"past cap", 20, 4*maxStrobes + 2, 20 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := compile(t, Spec{Start: "center", Type: "strobe", Time: tt.time}, box)
			if len(plan.Keyframes) != tt.keyframes {
				t.Errorf("keyframes = %d, want %d", len(plan.Keyframes), tt.keyframes)
			}
			if plan.Timing.Duration != tt.duration {
				t.Errorf("duration = %v, want %v", plan.Timing.Duration, tt.duration)
			}
		})
	}
}

func TestCompileClampsDelay(t *testing.T) {
	for _, delay := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), -3} {
		plan := compile(t, Spec{Start: "left", Type: "fade", Delay: delay, Time: 1}, box)
		if plan.Timing.Delay != 0 {
			t.Errorf("delay %v: Timing.Delay = %v, want 0", delay, plan.Timing.Delay)
		}
	}
	plan := compile(t, Spec{Start: "left", Type: "fade", Delay: 1e300, Time: 1}, box)
	if plan.Timing.Delay != MaxSeconds*time.Second {
		t.Errorf("huge delay: Timing.Delay = %v", plan.Timing.Delay)
	}
}

func TestPendulum(t *testing.T) {
	plan := compile(t, Spec{Start: "center", Type: "pendulum", Time: 2}, box)
	if !plan.Timing.Infinite() || plan.Timing.Direction != Alternate {
		t.Errorf("timing = %+v", plan.Timing)
	}
	if plan.Timing.Easing != EaseInOut {
		t.Errorf("easing = %v", plan.Timing.Easing)
	}
	if plan.Timing.Duration != 3*time.Second {
		t.Errorf("duration = %v, want 3s", plan.Timing.Duration)
	}
	p := plan.Placement
	if p == nil || p.Origin == nil {
		t.Fatal("pendulum needs placement with origin")
	}
	assertNear(t, "left", p.Left, 512-50)
	assertNear(t, "top", p.Top, 768-50)
	assertNear(t, "originY", p.Origin.Y, -768)
}

func TestArcGrow(t *testing.T) {
	plan := compile(t, Spec{Start: "center", Type: "arc grow", Time: 4}, box)
	if len(plan.Keyframes) != 12 {
		t.Fatalf("keyframes = %d, want 12", len(plan.Keyframes))
	}
	if plan.Timing.Duration != 5*time.Second || !plan.Timing.Infinite() {
		t.Errorf("timing = %+v", plan.Timing)
	}
	assertMatrix(t, "start", plan.Keyframes[0].Transform.Matrix(), Matrix{.15, 0, 0, .15, 256, -.198 * 768})
	assertNear(t, "top", plan.Placement.Top, 384-25)
	assertNear(t, "left", plan.Placement.Left, -100)

	shrink := compile(t, Spec{Start: "center", Type: "arc shrink", Time: 4}, box)
	assertNear(t, "shrink start scale", shrink.Keyframes[0].Transform.Matrix()[0], 1.15)
	assertNear(t, "shrink offset", shrink.Offsets[10], .5)
}

func TestGrowBounceEasing(t *testing.T) {
	plan := compile(t, Spec{Start: "center", Type: "grow bounce", Time: 1}, box)
	if plan.Timing.Easing != Overshoot {
		t.Errorf("easing = %v", plan.Timing.Easing)
	}
	plan = compile(t, Spec{Start: "left", Type: "elastic bounce", Time: 1}, box)
	if plan.Timing.Easing != Overshoot {
		t.Errorf("elastic bounce easing = %v", plan.Timing.Easing)
	}
}

func TestGrowBlur(t *testing.T) {
	plan := compile(t, Spec{Start: "left", Type: "grow blur", Time: 1}, box)
	if len(plan.Keyframes) != 2 {
		t.Fatalf("keyframes = %d", len(plan.Keyframes))
	}
	k := plan.Keyframes[0]
	if k.Blur != 20 || k.Opacity != NearZero || k.Transform.Matrix()[4] != -300 {
		t.Errorf("first = %v", k)
	}

	center := compile(t, Spec{Start: "center", Type: "grow blur", Time: 1}, box)
	if len(center.Keyframes) != 2 || center.Keyframes[1].Blur != 0 {
		t.Errorf("center grow blur = %v", center.Keyframes)
	}
}

func TestScroll(t *testing.T) {
	plan := compile(t, Spec{Start: "left", Type: "scroll", Time: 1}, box)
	if !plan.Timing.Infinite() {
		t.Error("scroll should loop")
	}
	if len(plan.Keyframes) != 2 {
		t.Fatalf("keyframes = %d", len(plan.Keyframes))
	}
	assertNear(t, "exit", plan.Keyframes[1].Transform.Matrix()[4], 924)
}

func TestAuxiliaryScheduling(t *testing.T) {
	plan := compile(t, Spec{Start: "center", Type: "tv", Delay: .5, Time: 5}, box)
	if len(plan.Aux) != 1 || plan.Aux[0].Kind != AuxNoise {
		t.Fatalf("aux = %+v", plan.Aux)
	}
	noise := plan.Aux[0]
	if noise.Delay != 3500*time.Millisecond || noise.Duration != NoiseFade {
		t.Errorf("noise delay/duration = %v/%v", noise.Delay, noise.Duration)
	}
	if noise.Width != 100 || noise.Height != 50 || noise.ZIndex != 3 || !noise.Prepend {
		t.Errorf("noise = %+v", noise)
	}

	short := compile(t, Spec{Start: "center", Type: "tv", Delay: .5, Time: 1}, box)
	if short.Aux[0].Delay != 500*time.Millisecond || short.Aux[0].Duration != time.Second {
		t.Errorf("short noise = %+v", short.Aux[0])
	}

	px := compile(t, Spec{Start: "center", Type: "pixelate", Delay: 1, Time: 2}, box)
	if px.Aux[0].Kind != AuxPixelate || px.Aux[0].Amount != 1 || px.Aux[0].Delay != time.Second || px.Aux[0].Duration != 2*time.Second {
		t.Errorf("pixelate aux = %+v", px.Aux[0])
	}

	stripes := compile(t, Spec{Start: "center", Type: "stripes", Time: 1}, box)
	if a := stripes.Aux[0]; a.Kind != AuxSlicer || !a.Simple || a.Slices != 16 {
		t.Errorf("stripes aux = %+v", a)
	}
}

func TestRandomBounceNeverEnds(t *testing.T) {
	plan := compile(t, Spec{Start: "center", Type: "bounce random", Delay: 1, Time: 3}, box)
	var found bool
	for _, a := range plan.Aux {
		if a.Kind != AuxBounce {
			continue
		}
		found = true
		if a.Delay != time.Second || a.Duration != 0 {
			t.Errorf("bounce delay/duration = %v/%v, want 1s/0", a.Delay, a.Duration)
		}
	}
	if !found {
		t.Fatalf("aux = %+v, want a bounce", plan.Aux)
	}
}

func TestScheduleAuxEasing(t *testing.T) {
	timing := Timing{Delay: time.Second, Duration: 4 * time.Second, Easing: Ease}
	if a := scheduleAux(AuxSpec{Kind: AuxPixelate}, timing); a.Easing != Ease {
		t.Errorf("pixelate easing = %v, want ease", a.Easing)
	}
	if a := scheduleAux(AuxSpec{Kind: AuxNoise}, timing); a.Easing != Linear {
		t.Errorf("noise easing = %v, want linear", a.Easing)
	}
}

func TestRegisteredEffects(t *testing.T) {
	c := NewCompiler()
	if got := len(c.EntryEffects()); got != 25 {
		t.Errorf("entry effects = %d, want 25", got)
	}
	if got := len(c.ExitEffects()); got != 10 {
		t.Errorf("exit effects = %d, want 10", got)
	}

	c.RegisterEntry("wobble", func(in Input) Fragment {
		return Fragment{Keyframes: []Keyframe{Frame(in.Base.Then(Rotate(10)))}}
	})
	plan, err := c.Compile(Spec{Start: "center", Type: "wobble", Time: 1}, box, nil, RefScreen)
	if err != nil || len(plan.Keyframes) != 2 {
		t.Errorf("custom effect: %v, %d keyframes", err, len(plan.Keyframes))
	}
}

func TestEveryEntryEffectCompiles(t *testing.T) {
	c := NewCompiler()
	for _, name := range c.EntryEffects() {
		plan, err := c.Compile(Spec{Start: "center", Type: name, Time: 1}, box, Transform{Rotate(15)}, RefScreen)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if len(plan.Keyframes) < 2 {
			t.Errorf("%s: %d keyframes", name, len(plan.Keyframes))
		}
		if len(plan.Offsets) != len(plan.Keyframes) {
			t.Errorf("%s: offsets not resolved", name)
		}
	}
}
