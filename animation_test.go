package ultraspin

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/justindarc/ultraspin/transition"
)

// --- FieldTween ---

func TestTweenAlphaReachesTarget(t *testing.T) {
	n := NewContainer("n")
	g := TweenAlpha(n, 0.25, 1.0, ease.Linear)
	for i := 0; i < 20; i++ {
		g.Update(0.1)
	}
	if !g.Done {
		t.Error("tween should be done")
	}
	assertNear(t, "Alpha", n.Alpha, 0.25)
}

func TestTweenAlphaInterpolates(t *testing.T) {
	n := NewContainer("n")
	g := TweenAlpha(n, 0, 1.0, ease.Linear)
	g.Update(0.5)
	if math.Abs(n.Alpha-0.5) > 1e-3 {
		t.Errorf("Alpha mid = %v, want 0.5", n.Alpha)
	}
	if g.Done {
		t.Error("tween done too early")
	}
}

func TestTweenValueArbitraryField(t *testing.T) {
	v := 8.0
	g := TweenValue(nil, &v, 0, 1, ease.Linear)
	g.Update(2)
	if v != 0 || !g.Done {
		t.Errorf("v = %v done = %v", v, g.Done)
	}
}

func TestFieldTweenDisposedNode(t *testing.T) {
	n := NewContainer("n")
	g := TweenAlpha(n, 0, 1, ease.Linear)
	n.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("group on a disposed node should stop")
	}
	if n.Alpha != 1 {
		t.Error("disposed node was written")
	}
}

// --- Animation ---

func fadePlan(delay, duration time.Duration) transition.Plan {
	frames := []transition.Keyframe{
		transition.Keyframe{}.WithOpacity(0),
		transition.Keyframe{}.WithOpacity(1),
	}
	return transition.Plan{
		Keyframes: frames,
		Offsets:   transition.ResolveOffsets(frames),
		Timing: transition.Timing{
			Delay:        delay,
			Duration:     duration,
			Easing:       transition.Linear,
			Iterations:   1,
			FillForwards: true,
		},
	}
}

func TestAnimationStartsPaused(t *testing.T) {
	n := NewContainer("n")
	a := NewAnimation(n, fadePlan(0, time.Second))
	a.Update(0.5)
	if a.Elapsed() != 0 || a.Playing() {
		t.Error("animation advanced before Play")
	}
}

func TestAnimationHoldsDuringDelay(t *testing.T) {
	n := NewContainer("n")
	plan := fadePlan(500*time.Millisecond, time.Second)
	n.ApplyKeyframe(plan.Initial())
	a := NewAnimation(n, plan)
	a.Play()

	a.Update(0.25)
	if n.Alpha != 0 {
		t.Errorf("Alpha during delay = %v, want 0", n.Alpha)
	}
	a.Update(0.75) // 1.0s elapsed, halfway through
	if math.Abs(n.Alpha-0.5) > 1e-3 {
		t.Errorf("Alpha mid = %v, want 0.5", n.Alpha)
	}
}

func TestAnimationFinishesAndFillsForwards(t *testing.T) {
	n := NewContainer("n")
	plan := fadePlan(0, time.Second)
	n.ApplyKeyframe(plan.Initial())
	a := NewAnimation(n, plan)
	calls := 0
	a.OnFinish = func() { calls++ }
	a.Play()

	for i := 0; i < 8; i++ {
		a.Update(0.25)
	}
	if !a.Finished() || a.Playing() {
		t.Error("animation should be finished")
	}
	if calls != 1 {
		t.Errorf("OnFinish called %d times, want 1", calls)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want final 1", n.Alpha)
	}
	if a.Elapsed() != time.Second {
		t.Errorf("Elapsed = %v, want 1s", a.Elapsed())
	}
	a.Play()
	if a.Playing() {
		t.Error("finished animation restarted")
	}
}

func TestAnimationInfiniteNeverFinishes(t *testing.T) {
	n := NewContainer("n")
	plan := fadePlan(0, time.Second)
	plan.Timing.Iterations = math.Inf(1)
	a := NewAnimation(n, plan)
	a.Play()
	for i := 0; i < 100; i++ {
		a.Update(0.1)
	}
	if a.Finished() {
		t.Error("infinite plan finished")
	}
	if a.Elapsed() < 9*time.Second {
		t.Errorf("Elapsed = %v", a.Elapsed())
	}
}

func TestAnimationCancelRestoresUnderlying(t *testing.T) {
	n := NewContainer("n")
	plan := fadePlan(0, time.Second)
	n.ApplyKeyframe(plan.Initial())
	a := NewAnimation(n, plan)
	a.Play()
	a.Update(0.5)
	a.Cancel()
	if !a.Finished() || n.Alpha != 0 {
		t.Errorf("after cancel: finished=%v alpha=%v", a.Finished(), n.Alpha)
	}
}

func TestAnimationPause(t *testing.T) {
	n := NewContainer("n")
	a := NewAnimation(n, fadePlan(0, time.Second))
	a.Play()
	a.Update(0.25)
	a.Pause()
	a.Update(0.25)
	if a.Elapsed() != 250*time.Millisecond {
		t.Errorf("Elapsed = %v, want 250ms", a.Elapsed())
	}
}

func TestAnimationDisposedNodeStops(t *testing.T) {
	n := NewContainer("n")
	a := NewAnimation(n, fadePlan(0, time.Second))
	a.Play()
	n.Dispose()
	a.Update(0.1)
	if !a.Finished() {
		t.Error("animation on disposed node should finish")
	}
}
