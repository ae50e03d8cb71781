package ultraspin

import "time"

// DefaultSlices is the stripe count used when none is given.
const DefaultSlices = 8

// Slicer assembles a sprite from horizontal stripes that slide in from
// alternating sides. In simple mode every stripe moves together; otherwise
// each stripe starts a little after the one above it.
type Slicer struct {
	processClock
	node   *Node
	slices int
	simple bool
	mesh   *Node
}

// NewSlicer creates a stripe entrance for node. slices <= 0 uses
// DefaultSlices.
func NewSlicer(node *Node, slices int, simple bool) *Slicer {
	if slices <= 0 {
		slices = DefaultSlices
	}
	return &Slicer{node: node, slices: slices, simple: simple}
}

// Mesh returns the stripe mesh while the entrance runs.
func (s *Slicer) Mesh() *Node { return s.mesh }

// Start hides the sprite behind its stripes, all pushed off to the sides.
func (s *Slicer) Start(delay, duration time.Duration) {
	s.start(delay, duration)
	if s.node.Image == nil || s.node.IsDisposed() {
		s.done = true
		return
	}
	s.mesh = NewSliceMesh("slices", s.node.Image, s.node.Width, s.node.Height, s.slices)
	s.mesh.BlendMode = s.node.BlendMode
	s.node.PrependChild(s.mesh)
	s.node.Renderable = false
	s.place(0)
}

// Stop removes the stripes and shows the sprite again.
func (s *Slicer) Stop() {
	if s.done {
		return
	}
	s.done = true
	if s.mesh != nil {
		s.mesh.Dispose()
		s.mesh = nil
	}
	if !s.node.IsDisposed() {
		s.node.Renderable = true
	}
}

// Update slides the stripes in.
func (s *Slicer) Update(dt float32) {
	local, running := s.advance(dt)
	if !running || s.mesh == nil {
		return
	}
	if s.node.IsDisposed() || s.expired(local) || s.duration <= 0 {
		s.Stop()
		return
	}
	s.place(s.progress(local))
}

// place positions every stripe for overall progress t in [0, 1].
func (s *Slicer) place(t float64) {
	for i := 0; i < s.slices; i++ {
		p := t
		if !s.simple && s.slices > 1 {
			// Stripe i runs over [i/(n-1)/2, i/(n-1)/2 + 1/2] of the duration.
			start := float64(i) / float64(s.slices-1) / 2
			p = clamp01((t - start) * 2)
		}
		dir := 1.0
		if i%2 == 1 {
			dir = -1
		}
		SetSliceOffset(s.mesh, i, dir*(1-p)*s.node.Width)
	}
	s.mesh.MarkDirty()
}
