package transition

import (
	"math"
	"testing"
	"time"
)

func TestResolveOffsets(t *testing.T) {
	tests := []struct {
		name   string
		frames []Keyframe
		want   []float64
	}{
		{"empty", nil, []float64{}},
		{"single", []Keyframe{{}}, []float64{0}},
		{"pair", []Keyframe{{}, {}}, []float64{0, 1}},
		{"even", []Keyframe{{}, {}, {}, {}, {}}, []float64{0, .25, .5, .75, 1}},
		{"between explicit", []Keyframe{{}, {}, Keyframe{}.At(.6), {}, {}}, []float64{0, .3, .6, .8, 1}},
		{"explicit first", []Keyframe{Keyframe{}.At(.2), {}}, []float64{.2, 1}},
		{"clamped", []Keyframe{{}, Keyframe{}.At(1.4), {}}, []float64{0, 1, 1}},
		{"monotonic", []Keyframe{{}, Keyframe{}.At(.6), Keyframe{}.At(.5), {}}, []float64{0, .6, .6, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOffsets(tt.frames)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				assertNear(t, "offset", got[i], tt.want[i])
			}
		})
	}
}

func TestSampleTranslation(t *testing.T) {
	frames := []Keyframe{
		Frame(Transform{TranslateX(-300)}).WithOpacity(0),
		Frame(Transform{TranslateX(0)}).WithOpacity(1),
	}
	offsets := ResolveOffsets(frames)

	s := Sample(frames, offsets, .5, Rest)
	assertNear(t, "tx", s.Transform[4], -150)
	assertNear(t, "opacity", s.Opacity, .5)

	s = Sample(frames, offsets, 1, Rest)
	assertNear(t, "tx end", s.Transform[4], 0)
	assertNear(t, "opacity end", s.Opacity, 1)
}

func TestSampleMismatchedFunctionsDecompose(t *testing.T) {
	frames := []Keyframe{
		Frame(Transform{TranslateX(-100)}),
		Frame(Transform{Scale(1)}),
	}
	s := Sample(frames, ResolveOffsets(frames), .25, Rest)
	assertMatrix(t, "quarter", s.Transform, Matrix{1, 0, 0, 1, -75, 0})
}

func TestSamplePadsShorterList(t *testing.T) {
	frames := []Keyframe{
		Frame(Transform{Rotate(30), Scale(.5)}),
		Frame(Transform{Rotate(30)}),
	}
	s := Sample(frames, ResolveOffsets(frames), .5, Rest)
	want := Transform{Rotate(30), Scale(.75)}.Matrix()
	assertMatrix(t, "padded", s.Transform, want)
}

func TestSamplePropertyFallsBackToUnderlying(t *testing.T) {
	frames := []Keyframe{
		Frame(nil),
		Frame(nil).WithOpacity(.2).At(.5),
		Frame(nil),
	}
	under := Rest
	under.Opacity = 1
	s := Sample(frames, ResolveOffsets(frames), .25, under)
	assertNear(t, "opacity toward pinned", s.Opacity, .6)
	s = Sample(frames, ResolveOffsets(frames), .75, under)
	assertNear(t, "opacity back", s.Opacity, .6)
}

func TestSampleVisibility(t *testing.T) {
	frames := []Keyframe{
		Frame(nil).WithVisibility(false),
		Frame(nil).WithVisibility(true),
	}
	offsets := ResolveOffsets(frames)
	if Sample(frames, offsets, 0, Rest).Visible {
		t.Error("hidden at start")
	}
	if !Sample(frames, offsets, .01, Rest).Visible {
		t.Error("visible once interpolation begins")
	}
	if !Sample(frames, offsets, 1, Rest).Visible {
		t.Error("visible at end")
	}
}

func TestSampleStackedOffsetsJump(t *testing.T) {
	frames := []Keyframe{
		Frame(nil).WithOpacity(0),
		Frame(nil).WithOpacity(0).At(.5),
		Frame(nil).WithOpacity(1).At(.5),
		Frame(nil).WithOpacity(1),
	}
	offsets := ResolveOffsets(frames)
	assertNear(t, "before", Sample(frames, offsets, .49, Rest).Opacity, 0)
	assertNear(t, "at", Sample(frames, offsets, .5, Rest).Opacity, 1)
}

func TestSampleExtrapolatesOvershoot(t *testing.T) {
	frames := []Keyframe{
		Frame(Transform{Scale(0)}),
		Frame(Transform{Scale(1)}),
	}
	s := Sample(frames, ResolveOffsets(frames), 1.2, Rest)
	assertNear(t, "scale", s.Transform[0], 1.2)
}

func TestStateApply(t *testing.T) {
	k := Frame(Transform{TranslateY(10)}).WithOpacity(.5)
	s := Rest.Apply(k)
	assertNear(t, "ty", s.Transform[5], 10)
	assertNear(t, "opacity", s.Opacity, .5)
	if !s.Visible {
		t.Error("visibility untouched should stay visible")
	}
}

func TestKeyframeString(t *testing.T) {
	k := Frame(Transform{Rotate(15), TranslateX(-300)}).WithOpacity(NearZero).WithBlur(20)
	want := "transform: rotate(15deg) translateX(-300px); opacity: 0.0001; filter: blur(20px)"
	if got := k.String(); got != want {
		t.Errorf("String = %q\nwant %q", got, want)
	}
}

func TestMatrixDecomposeRoundTrip(t *testing.T) {
	ms := []Matrix{
		Identity,
		Transform{Translate(10, -4), Rotate(33), Scale(2)}.Matrix(),
		Transform{ScaleX(-1), Rotate(120)}.Matrix(),
		Transform{RotateY(60), TranslateY(5)}.Matrix(),
	}
	for _, m := range ms {
		assertMatrix(t, "roundtrip", m.Decompose().Recompose(), m)
	}
}

func TestMatrixAbout(t *testing.T) {
	m := Transform{Rotate(180)}.Matrix().About(50, 25)
	x, y := m.Apply(0, 0)
	if math.Abs(x-100) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("rotate about centre: (%v, %v), want (100, 50)", x, y)
	}
}

func TestPlanAt(t *testing.T) {
	plan := compile(t, Spec{Start: "left", Type: "fade", Delay: 1, Time: 2}, box)
	under := plan.Underlying(Rest)
	assertNear(t, "underlying opacity", under.Opacity, NearZero)

	s, active, done := plan.At(500*time.Millisecond, under)
	if active || done {
		t.Errorf("before delay: active=%v done=%v", active, done)
	}
	assertNear(t, "held", s.Transform[4], -300)

	s, active, _ = plan.At(2*time.Second, under)
	if !active {
		t.Fatal("should be active mid-way")
	}
	assertNear(t, "mid tx", s.Transform[4], -150)

	s, active, done = plan.At(10*time.Second, under)
	if !active || !done {
		t.Errorf("after end: active=%v done=%v", active, done)
	}
	assertMatrix(t, "final", s.Transform, Identity)
	assertNear(t, "final opacity", s.Opacity, 1)
}
