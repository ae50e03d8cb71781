package ultraspin

import (
	"math"
	"math/rand/v2"
	"time"
)

// DefaultBounceSpeed is the speed, in pixels per second, bouncing nodes
// travel at.
const DefaultBounceSpeed = 240

// Bounce moves a node around inside a rectangle, reflecting off its edges.
// It writes the node's offset and runs until Stop, or for its duration when
// one is given.
type Bounce struct {
	processClock
	node   *Node
	bounds Rect
	vx, vy float64
	// Speed is the travel speed in pixels per second.
	Speed float64
}

// NewBounce creates a bounce that keeps node's box inside bounds, which are
// in the node's parent space. The direction is random.
func NewBounce(node *Node, bounds Rect) *Bounce {
	b := &Bounce{node: node, bounds: bounds, Speed: DefaultBounceSpeed}
	a := rand.Float64() * 2 * math.Pi
	b.vx, b.vy = math.Cos(a), math.Sin(a)
	return b
}

// Start arms the bounce.
func (b *Bounce) Start(delay, duration time.Duration) { b.start(delay, duration) }

// Stop freezes the node where it is.
func (b *Bounce) Stop() { b.done = true }

// Update moves the node and reflects it off the bounds.
func (b *Bounce) Update(dt float32) {
	local, running := b.advance(dt)
	if !running {
		return
	}
	if b.node.IsDisposed() {
		b.done = true
		return
	}
	step := b.Speed * float64(dt)
	n := b.node
	n.OffsetX, b.vx = reflect(n.Left, n.OffsetX+b.vx*step, n.Width, b.bounds.X, b.bounds.Width, b.vx)
	n.OffsetY, b.vy = reflect(n.Top, n.OffsetY+b.vy*step, n.Height, b.bounds.Y, b.bounds.Height, b.vy)
	n.MarkDirty()
	if b.expired(local) {
		b.done = true
	}
}

// reflect keeps the span [base+off, base+off+size] inside [lo, lo+extent],
// flipping v when an edge is hit. Spans larger than the extent are pinned
// to its start.
func reflect(base, off, size, lo, extent, v float64) (float64, float64) {
	if size >= extent {
		return lo - base, v
	}
	pos := base + off
	switch {
	case pos < lo:
		pos = lo + (lo - pos)
		v = math.Abs(v)
	case pos+size > lo+extent:
		pos = lo + extent - size - (pos + size - lo - extent)
		v = -math.Abs(v)
	}
	pos = math.Max(lo, math.Min(pos, lo+extent-size))
	return pos - base, v
}

// Bounce3DDepth is how much a bounce in depth grows and shrinks the node.
const Bounce3DDepth = 0.5

// Bounce3D bounces a node in three dimensions: across the screen and in
// depth, shown as scale. The motion dies down linearly over the duration and
// the node comes to rest at its layout position.
type Bounce3D struct {
	processClock
	node       *Node
	bounds     Rect
	x, y, z    float64
	vx, vy, vz float64
	Speed      float64
}

// NewBounce3D creates a depth bounce that keeps node inside bounds.
func NewBounce3D(node *Node, bounds Rect) *Bounce3D {
	b := &Bounce3D{node: node, bounds: bounds, Speed: DefaultBounceSpeed}
	theta := rand.Float64() * 2 * math.Pi
	phi := rand.Float64()*math.Pi - math.Pi/2
	b.vx = math.Cos(theta) * math.Cos(phi)
	b.vy = math.Sin(theta) * math.Cos(phi)
	b.vz = math.Sin(phi)
	return b
}

// Start arms the bounce.
func (b *Bounce3D) Start(delay, duration time.Duration) { b.start(delay, duration) }

// Stop puts the node back at rest.
func (b *Bounce3D) Stop() {
	if b.done {
		return
	}
	b.done = true
	if b.node.IsDisposed() {
		return
	}
	b.node.OffsetX, b.node.OffsetY = 0, 0
	b.node.ScaleX, b.node.ScaleY = 1, 1
	b.node.MarkDirty()
}

// Update moves the node in all three dimensions.
func (b *Bounce3D) Update(dt float32) {
	local, running := b.advance(dt)
	if !running {
		return
	}
	if b.node.IsDisposed() || b.expired(local) {
		b.Stop()
		return
	}
	n := b.node
	step := b.Speed * float64(dt)
	b.x, b.vx = reflect(n.Left, b.x+b.vx*step, n.Width, b.bounds.X, b.bounds.Width, b.vx)
	b.y, b.vy = reflect(n.Top, b.y+b.vy*step, n.Height, b.bounds.Y, b.bounds.Height, b.vy)
	// Depth bounces between -1 and 1; one unit of depth is a screen width.
	zstep := step / math.Max(b.bounds.Width, 1) * 2
	b.z += b.vz * zstep
	if b.z > 1 {
		b.z, b.vz = 2-b.z, -math.Abs(b.vz)
	} else if b.z < -1 {
		b.z, b.vz = -2-b.z, math.Abs(b.vz)
	}

	envelope := 1.0
	if b.duration > 0 {
		envelope = 1 - b.progress(local)
	}
	n.OffsetX = b.x * envelope
	n.OffsetY = b.y * envelope
	s := 1 + Bounce3DDepth*b.z*envelope
	n.ScaleX, n.ScaleY = s, s
	n.MarkDirty()
}
