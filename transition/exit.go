package transition

import (
	"math"
	"time"
)

// Draft is the keyframe list and timing under construction, handed to the
// exit pass.
type Draft struct {
	Keyframes []Keyframe
	Timing    Timing
	// start is the entry offset recorded for directional starts.
	start    axis
	hasStart bool
	// ChasePause is the idle gap between chase legs.
	ChasePause time.Duration
}

// StartOffset returns the signed entry translation in pixels and whether
// the start was an edge; vertical reports the axis.
func (d *Draft) StartOffset() (offset float64, vertical, ok bool) {
	return d.start.d, d.start.y, d.hasStart
}

// ExitEffect appends to or rewrites a draft.
type ExitEffect func(in Input, d *Draft)

func defaultExitEffects() map[string]ExitEffect {
	return map[string]ExitEffect{
		"bounce":         bounceBack,
		"chase":          chase,
		"ease":           easeExit,
		"elastic":        elastic,
		"elastic bounce": elasticBounce,
		"fade":           fadeExit,
		"grow blur":      growBlur,
		"scroll":         scroll,
		"sweep left":     sweep(true),
		"sweep right":    sweep(false),
	}
}

// bounceBack lands and rebounds toward the start edge with halving height.
// Without an edge start there is nothing to bounce toward.
func bounceBack(in Input, d *Draft) {
	if !d.hasStart {
		return
	}
	s := d.start
	land := Frame(in.base(Scale(1)))
	d.Keyframes = append(d.Keyframes,
		land.At(.2),
		Frame(in.base(s.translate(s.d/4))).At(.4),
		land.At(.6),
		Frame(in.base(s.translate(s.d/8))).At(.7),
		land.At(.8),
		Frame(in.base(s.translate(s.d/16))).At(.9),
		land.At(1),
	)
}

// chase runs the element across the screen and back, mirrored on the
// return leg, forever. Each leg waits ChasePause off-screen.
func chase(in Input, d *Draft) {
	d.Timing.Duration = (d.Timing.Duration + d.ChasePause) * 2
	d.Timing.Iterations = math.Inf(1)
	pause := 0.0
	if d.Timing.Duration > 0 {
		pause = float64(d.ChasePause) / float64(d.Timing.Duration)
	}
	d.Timing.IterationStart = pause

	left, right := in.offLeft(), in.offRight()
	d.Keyframes = []Keyframe{
		Frame(in.base(TranslateX(left))),
		Frame(in.base(TranslateX(left))).At(.00001 + pause),
		Frame(in.base(TranslateX(right))).At(.5),
		Frame(in.base(TranslateX(right), RotateY(180))).At(.50001 + pause),
		Frame(in.base(TranslateX(left), RotateY(180))),
	}
}

func easeExit(_ Input, d *Draft) {
	d.Timing.Easing = Ease
}

// elastic overshoots the resting position, oscillating with shrinking
// amplitude.
func elastic(in Input, d *Draft) {
	if !d.hasStart {
		return
	}
	s := d.start
	d.Keyframes = append(d.Keyframes,
		Frame(in.base(s.translate(-s.d/4))).At(.2),
		Frame(in.base(s.translate(s.d/6))).At(.4),
		Frame(in.base(s.translate(-s.d/8))).At(.6),
		Frame(in.base(s.translate(s.d/12))).At(.7),
		Frame(in.base(s.translate(-s.d/16))).At(.8),
		Frame(in.base(s.translate(s.d/24))).At(.9),
		Frame(in.base(Scale(1))).At(1),
	)
}

func elasticBounce(_ Input, d *Draft) {
	d.Timing.Easing = Overshoot
}

func fadeExit(_ Input, d *Draft) {
	d.Timing.Easing = Linear
	if len(d.Keyframes) > 0 {
		d.Keyframes[0] = d.Keyframes[0].WithOpacity(NearZero)
	}
}

func growBlur(in Input, d *Draft) {
	if len(d.Keyframes) > 0 {
		d.Keyframes[0] = d.Keyframes[0].WithOpacity(NearZero).WithBlur(20)
	} else {
		d.Keyframes = append(d.Keyframes, Frame(in.base()).WithOpacity(NearZero).WithBlur(20))
	}
	d.Keyframes = append(d.Keyframes, Frame(in.base()).WithOpacity(1).WithBlur(0))
}

// scroll carries the element from its start edge clear across to the
// opposite edge, forever.
func scroll(in Input, d *Draft) {
	switch in.Spec.Start {
	case StartTop:
		d.Keyframes = append(d.Keyframes, Frame(in.base(TranslateY(in.offBottom()))))
	case StartRight:
		d.Keyframes = append(d.Keyframes, Frame(in.base(TranslateX(in.offLeft()))))
	case StartBottom:
		d.Keyframes = append(d.Keyframes, Frame(in.base(TranslateY(in.offTop()))))
	case StartLeft:
		d.Keyframes = append(d.Keyframes, Frame(in.base(TranslateX(in.offRight()))))
	}
	d.Timing.Iterations = math.Inf(1)
}

// sweep crosses the screen, then drops in from the top to rest.
func sweep(fromLeft bool) ExitEffect {
	return func(in Input, d *Draft) {
		from, to := in.offLeft(), in.offRight()
		if !fromLeft {
			from, to = to, from
		}
		d.Keyframes = []Keyframe{
			Frame(in.base(TranslateX(from))),
			Frame(in.base(TranslateX(to))).At(.5),
			Frame(in.base(TranslateY(in.offTop()))).At(.50001),
			Frame(in.base()),
		}
	}
}
