package ultraspin

import (
	"time"

	"github.com/justindarc/ultraspin/transition"
)

// Process is an auxiliary effect that runs beside a keyframe animation:
// static noise, pixelation, a waving flag and so on. Processes are driven by
// the scene like animations; nothing runs in the background.
type Process interface {
	// Start arms the process. It begins delay after Start and runs for
	// duration; a zero duration runs until Stop.
	Start(delay, duration time.Duration)
	// Stop ends the process early and restores the node it was attached to.
	Stop()
	// Update advances the process by dt seconds.
	Update(dt float32)
	// Done reports whether the process has finished and released its node.
	Done() bool
}

// processClock is the delay/duration bookkeeping shared by every process.
type processClock struct {
	delay    time.Duration
	duration time.Duration
	elapsed  time.Duration
	started  bool
	done     bool
}

func (c *processClock) start(delay, duration time.Duration) {
	c.delay = max(delay, 0)
	c.duration = max(duration, 0)
	c.elapsed = 0
	c.started = true
	c.done = false
}

// advance moves the clock forward and returns the time since the delay
// ran out. running is false before the delay and once the process is done.
func (c *processClock) advance(dt float32) (local time.Duration, running bool) {
	if !c.started || c.done {
		return 0, false
	}
	c.elapsed += seconds(dt)
	local = c.elapsed - c.delay
	return local, local >= 0
}

// progress returns local as a fraction of the duration, clamped to [0, 1].
// Processes without a duration report 0.
func (c *processClock) progress(local time.Duration) float64 {
	if c.duration <= 0 {
		return 0
	}
	return clamp01(float64(local) / float64(c.duration))
}

// expired reports whether a process with a duration has run its course.
func (c *processClock) expired(local time.Duration) bool {
	return c.duration > 0 && local >= c.duration
}

func (c *processClock) Done() bool { return c.done }

// seconds converts a frame delta in seconds to a Duration.
func seconds(dt float32) time.Duration {
	return time.Duration(float64(dt) * float64(time.Second))
}

// newProcess builds the process an auxiliary spec asks for, attached to
// node. bounds is the area bouncing processes stay inside.
func newProcess(node *Node, aux transition.AuxSpec, bounds Rect) Process {
	switch aux.Kind {
	case transition.AuxBounce:
		return NewBounce(node, bounds)
	case transition.AuxBounce3D:
		return NewBounce3D(node, bounds)
	case transition.AuxFlag:
		return NewFlag(node)
	case transition.AuxNoise:
		return NewNoise(node, NoiseOptions{
			Width:   aux.Width,
			Height:  aux.Height,
			ZIndex:  aux.ZIndex,
			Prepend: aux.Prepend,
		})
	case transition.AuxPixelate:
		p := NewPixelate(node, aux.Amount)
		p.Easing = aux.Easing
		return p
	case transition.AuxRain:
		return NewRain(node)
	case transition.AuxSlicer:
		return NewSlicer(node, aux.Slices, aux.Simple)
	}
	return nil
}
