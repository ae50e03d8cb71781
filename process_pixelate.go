package ultraspin

import (
	"time"

	"github.com/justindarc/ultraspin/transition"
)

// Pixelate blocks a node up and sharpens it back to normal over the
// duration. The filter is in place from construction, so the node is
// pixelated from its first frame.
type Pixelate struct {
	processClock
	node   *Node
	filter *PixelateFilter
	tween  *FieldTween
	// Easing shapes the sharpening. The zero value is linear.
	Easing transition.Easing
}

// NewPixelate attaches a pixelate filter of the given strength to node.
func NewPixelate(node *Node, amount float64) *Pixelate {
	p := &Pixelate{node: node, filter: NewPixelateFilter(amount)}
	node.Filters = append(node.Filters, p.filter)
	return p
}

// Filter returns the attached filter.
func (p *Pixelate) Filter() *PixelateFilter { return p.filter }

// Start arms the sharpening.
func (p *Pixelate) Start(delay, duration time.Duration) { p.start(delay, duration) }

// Stop detaches the filter.
func (p *Pixelate) Stop() {
	if p.done {
		return
	}
	p.done = true
	p.filter.Amount = 0
	for i, f := range p.node.Filters {
		if f == Filter(p.filter) {
			p.node.Filters = append(p.node.Filters[:i], p.node.Filters[i+1:]...)
			break
		}
	}
}

// Update sharpens the node once the delay has passed.
func (p *Pixelate) Update(dt float32) {
	local, running := p.advance(dt)
	if !running {
		return
	}
	if p.node.IsDisposed() {
		p.done = true
		return
	}
	if p.duration <= 0 {
		return
	}
	if p.tween == nil {
		p.tween = TweenValue(p.node, &p.filter.Amount, 0, float32(p.duration.Seconds()), p.Easing.TweenFunc())
		// The first step covers whatever the delay overshot.
		dt = float32(local.Seconds())
	}
	p.tween.Update(dt)
	if p.tween.Done {
		p.Stop()
	}
}
