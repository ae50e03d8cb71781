package transition

import "time"

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Placement overrides where a component sits for effects that ignore the
// authored position. Left and Top are the box's top-left corner in pixels.
// Origin, when set, is the transform origin relative to the box's top-left
// corner; otherwise the box centre is used.
type Placement struct {
	Left, Top float64
	Origin    *Point
}

// Plan is a compiled transition.
type Plan struct {
	Start     string
	Type      string
	Keyframes []Keyframe
	// Offsets holds the resolved offset of each keyframe.
	Offsets   []float64
	Timing    Timing
	Aux       []AuxSpec
	Placement *Placement
}

// Initial is the first keyframe. It is applied to the element's style
// before playback starts.
func (p Plan) Initial() Keyframe {
	if len(p.Keyframes) == 0 {
		return Keyframe{}
	}
	return p.Keyframes[0]
}

// Underlying is the style the element holds once Initial has been applied
// over rest.
func (p Plan) Underlying(rest State) State {
	return rest.Apply(p.Initial())
}

// At evaluates the plan elapsed after it was started. active is false while
// the plan does not drive the element (before its delay); done reports that
// a finite plan has ended.
func (p Plan) At(elapsed time.Duration, underlying State) (s State, active, done bool) {
	progress, active, done := p.Timing.Progress(elapsed)
	if !active {
		return underlying, false, done
	}
	return Sample(p.Keyframes, p.Offsets, progress, underlying), true, done
}
