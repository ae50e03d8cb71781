package ultraspin

import (
	"math"
	"time"
)

// Rain sheds small copies of a node's image from the top of its box while
// the node arrives. Emission stops when the duration is over; the process
// finishes once the last drop has fallen.
type Rain struct {
	processClock
	node    *Node
	emitter *Node
}

// rainDrops is the drop pool size.
const rainDrops = 96

// NewRain creates a rain shower over node.
func NewRain(node *Node) *Rain {
	return &Rain{node: node}
}

// Emitter returns the particle node, or nil before Start and after the
// shower ends.
func (r *Rain) Emitter() *Node { return r.emitter }

// Start attaches the emitter. Drops begin falling after the delay.
func (r *Rain) Start(delay, duration time.Duration) {
	r.start(delay, duration)
	if r.node.IsDisposed() {
		r.done = true
		return
	}
	w, h := r.node.Width, r.node.Height
	scale := 0.1
	if img := r.node.Image; img != nil {
		// Drops are about a twentieth of the box wide.
		scale = math.Max(w/20, 4) / float64(img.Bounds().Dx())
	}
	r.emitter = NewParticleEmitter("rain", EmitterConfig{
		MaxParticles: rainDrops,
		EmitRate:     rainDrops / 2,
		Lifetime:     Range{0.6, 1.2},
		Speed:        Range{h * 0.5, h},
		Angle:        Range{math.Pi/2 - 0.1, math.Pi/2 + 0.1},
		Scale:        Range{scale, scale * 1.5},
		Shrink:       0.5,
		Gravity:      Vec2{Y: h},
		Spawn:        Rect{Width: w},
		Image:        r.node.Image,
	})
	r.emitter.Width, r.emitter.Height = w, h
	r.emitter.Origin = &Vec2{}
	r.node.AddChild(r.emitter)
}

// Stop removes the emitter and any drops still in the air.
func (r *Rain) Stop() {
	if r.done {
		return
	}
	r.done = true
	if r.emitter != nil {
		r.emitter.Dispose()
		r.emitter = nil
	}
}

// Update turns emission on and off. The scene steps the particles.
func (r *Rain) Update(dt float32) {
	local, running := r.advance(dt)
	if !running || r.emitter == nil {
		return
	}
	if r.node.IsDisposed() || r.emitter.IsDisposed() {
		r.Stop()
		return
	}
	e := r.emitter.Emitter
	switch {
	case r.expired(local):
		e.Stop()
		if e.AliveCount() == 0 {
			r.Stop()
		}
	case !e.IsActive():
		e.Start()
	}
}
