package transition

import (
	"math"
	"time"
)

// Direction controls whether alternate iterations play in reverse.
type Direction uint8

const (
	Normal Direction = iota
	Alternate
)

func (d Direction) String() string {
	if d == Alternate {
		return "alternate"
	}
	return "normal"
}

// Timing is the schedule of a keyframe animation.
type Timing struct {
	Delay    time.Duration
	Duration time.Duration
	Easing   Easing
	// Iterations is the number of times the keyframes play. math.Inf(1)
	// loops forever.
	Iterations float64
	// IterationStart shifts playback into the cycle, as a fraction of one
	// iteration.
	IterationStart float64
	Direction      Direction
	// FillForwards holds the final state once playback ends.
	FillForwards bool
}

// Infinite reports whether the animation never finishes.
func (t Timing) Infinite() bool { return math.IsInf(t.Iterations, 1) }

// End is the time from start to the end of the active interval.
// Infinite timings report -1.
func (t Timing) End() time.Duration {
	if t.Infinite() {
		return -1
	}
	return t.Delay + time.Duration(float64(t.Duration)*t.Iterations)
}

// Progress converts elapsed time since start into eased iteration progress.
// active is false before the delay, and after the end when FillForwards is
// not set; done is true once a finite animation has ended.
func (t Timing) Progress(elapsed time.Duration) (p float64, active, done bool) {
	local := elapsed - t.Delay
	if local < 0 {
		return 0, false, false
	}
	iterations := t.Iterations
	if iterations < 0 || math.IsNaN(iterations) {
		iterations = 1
	}

	var overall float64
	ended := false
	switch {
	case t.Duration <= 0:
		overall = t.IterationStart + iterations
		ended = true
	default:
		overall = t.IterationStart + float64(local)/float64(t.Duration)
		if !math.IsInf(iterations, 1) && float64(local) >= float64(t.Duration)*iterations {
			overall = t.IterationStart + iterations
			ended = true
		}
	}
	if ended && math.IsInf(iterations, 1) {
		// A zero-length loop has nothing to show.
		return 0, false, true
	}

	iteration := math.Floor(overall)
	p = overall - iteration
	if ended && p == 0 && iterations > 0 {
		p = 1
		iteration--
	}
	if t.Direction == Alternate && int64(iteration)%2 != 0 {
		p = 1 - p
	}
	p = t.Easing.At(p)

	if ended {
		return p, t.FillForwards, true
	}
	return p, true, false
}
