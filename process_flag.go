package ultraspin

import (
	"math"
	"time"
)

// Flag wave shape.
const (
	flagCols      = 24
	flagRows      = 4
	flagWaves     = 2.0         // crests across the width
	flagSpeed     = 2 * math.Pi // radians per second
	flagAmplitude = 0.1         // fraction of the box height
)

// Flag waves a sprite like a flag on a pole. The sprite's own drawing is
// replaced by a distortion grid whose wave is pinned at the left edge and
// calms down over the duration.
type Flag struct {
	processClock
	node  *Node
	grid  *DistortionGrid
	mesh  *Node
	phase float64
}

// NewFlag creates a flag wave for node. Nodes without an image are left
// alone.
func NewFlag(node *Node) *Flag {
	return &Flag{node: node}
}

// Start swaps the sprite for the wave mesh.
func (f *Flag) Start(delay, duration time.Duration) {
	f.start(delay, duration)
	if f.node.Image == nil || f.node.IsDisposed() {
		f.done = true
		return
	}
	f.grid, f.mesh = NewDistortionGrid("flag", f.node.Image, f.node.Width, f.node.Height, flagCols, flagRows)
	f.mesh.BlendMode = f.node.BlendMode
	f.node.PrependChild(f.mesh)
	f.node.Renderable = false
	f.wave(flagAmplitude * f.node.Height)
}

// Stop removes the mesh and shows the sprite again.
func (f *Flag) Stop() {
	if f.done {
		return
	}
	f.done = true
	if f.mesh != nil {
		f.mesh.Dispose()
		f.mesh = nil
	}
	if !f.node.IsDisposed() {
		f.node.Renderable = true
	}
}

// Update advances the wave.
func (f *Flag) Update(dt float32) {
	if f.done || f.grid == nil {
		return
	}
	if f.node.IsDisposed() {
		f.Stop()
		return
	}
	f.phase += flagSpeed * float64(dt)
	local, running := f.advance(dt)
	amp := flagAmplitude * f.node.Height
	if running {
		if f.expired(local) {
			f.Stop()
			return
		}
		if f.duration > 0 {
			amp *= 1 - f.progress(local)
		}
	}
	f.wave(amp)
}

func (f *Flag) wave(amp float64) {
	w := f.node.Width
	if w <= 0 {
		return
	}
	f.grid.SetAllVertices(func(col, row int, restX, restY float64) (float64, float64) {
		u := restX / w
		// u scales the swing so the pole side stays still.
		return 0, amp * u * math.Sin(u*flagWaves*2*math.Pi-f.phase)
	})
	f.mesh.MarkDirty()
}
