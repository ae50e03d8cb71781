package ultraspin

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/justindarc/ultraspin/transition"
)

// FieldTween animates one float64 field of a node. Create one via TweenAlpha
// or TweenValue and call Update(dt) each frame. The value is written and the
// node marked dirty on every update. If the node is disposed, the tween stops
// immediately.
//
// There is no global animation manager; processes own their tweens.
type FieldTween struct {
	tween  *gween.Tween
	field  *float64
	target *Node
	Done   bool
}

// Update advances the tween by dt seconds and writes the value to the field.
// If the target node has been disposed, Done is set and nothing is written.
func (g *FieldTween) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	val, finished := g.tween.Update(dt)
	*g.field = float64(val)
	g.Done = finished

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenAlpha creates a FieldTween that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *FieldTween {
	return TweenValue(node, &node.Alpha, to, duration, fn)
}

// TweenValue creates a FieldTween that animates an arbitrary field from its
// current value. node may be nil; when set, it is marked dirty on each update.
func TweenValue(node *Node, field *float64, to float64, duration float32, fn ease.TweenFunc) *FieldTween {
	return &FieldTween{
		tween:  gween.New(float32(*field), float32(to), duration, fn),
		field:  field,
		target: node,
	}
}

// --- Keyframe player ---

// Animation plays a compiled transition plan on a node. It starts paused;
// call Play, then Update(dt) every frame. The node's pose is written on
// every update once the plan's delay has elapsed. Finite plans with
// FillForwards hold their final keyframe after finishing.
type Animation struct {
	node       *Node
	plan       transition.Plan
	underlying transition.State

	// clock covers [0, end] for finite plans; infinite plans count elapsed
	// directly.
	clock   *gween.Tween
	elapsed time.Duration

	playing  bool
	finished bool

	// OnFinish is called once when a finite plan ends.
	OnFinish func()
}

// NewAnimation creates a paused player for plan. The node's current pose is
// the underlying style keyframes fall back to, so Plan.Initial should
// already be applied (Scene.Play does this).
func NewAnimation(node *Node, plan transition.Plan) *Animation {
	a := &Animation{
		node:       node,
		plan:       plan,
		underlying: node.State(),
	}
	if end := plan.Timing.End(); end >= 0 {
		secs := float32(end.Seconds())
		a.clock = gween.New(0, secs, secs, ease.Linear)
	}
	return a
}

// Node returns the node being animated.
func (a *Animation) Node() *Node { return a.node }

// Plan returns the plan being played.
func (a *Animation) Plan() transition.Plan { return a.plan }

// Play starts or resumes playback.
func (a *Animation) Play() {
	if a.finished {
		return
	}
	a.playing = true
}

// Pause stops the clock. The node keeps its current pose.
func (a *Animation) Pause() {
	a.playing = false
}

// Playing reports whether the clock is running.
func (a *Animation) Playing() bool { return a.playing }

// Finished reports whether a finite plan has ended. Infinite plans never
// finish.
func (a *Animation) Finished() bool { return a.finished }

// Elapsed returns the time played so far, delay included.
func (a *Animation) Elapsed() time.Duration { return a.elapsed }

// Cancel stops playback and restores the underlying style.
func (a *Animation) Cancel() {
	a.playing = false
	a.finished = true
	if !a.node.IsDisposed() {
		a.node.ApplyState(a.underlying)
	}
}

// Update advances the clock by dt seconds and writes the node's pose.
func (a *Animation) Update(dt float32) {
	if !a.playing || a.finished {
		return
	}
	if a.node.IsDisposed() {
		a.playing = false
		a.finished = true
		return
	}

	ended := false
	if a.clock != nil {
		v, done := a.clock.Update(dt)
		a.elapsed = time.Duration(float64(v) * float64(time.Second))
		if done {
			a.elapsed = a.plan.Timing.End()
			ended = true
		}
	} else {
		a.elapsed += time.Duration(float64(dt) * float64(time.Second))
	}

	s, active, done := a.plan.At(a.elapsed, a.underlying)
	if active || done {
		a.node.ApplyState(s)
	}
	if ended || done {
		a.playing = false
		a.finished = true
		if a.OnFinish != nil {
			a.OnFinish()
		}
	}
}
