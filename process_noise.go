package ultraspin

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// noiseCell is the edge length, in screen pixels, of one noise grain.
const noiseCell = 2

// NoiseOptions places the static overlay.
type NoiseOptions struct {
	// Width and Height size the overlay in pixels. Zero uses the node's box.
	Width, Height float64
	// ZIndex orders the overlay among the node's children.
	ZIndex int
	// Prepend inserts the overlay before existing children.
	Prepend bool
}

// Noise lays television static over a node. The static is regenerated every
// frame and fades out over the duration once the delay has passed, after
// which the overlay removes itself.
type Noise struct {
	processClock
	node    *Node
	overlay *Node
	img     *ebiten.Image
	pix     []byte
	fade    *FieldTween
}

// NewNoise attaches the static overlay to node right away.
func NewNoise(node *Node, opts NoiseOptions) *Noise {
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = node.Width, node.Height
	}
	pw := max(int(math.Ceil(w/noiseCell)), 1)
	ph := max(int(math.Ceil(h/noiseCell)), 1)

	n := &Noise{node: node}
	n.img = ebiten.NewImage(pw, ph)
	n.pix = make([]byte, pw*ph*4)
	n.overlay = NewSprite("noise", n.img)
	n.overlay.Width, n.overlay.Height = w, h
	n.overlay.ZIndex = opts.ZIndex
	if opts.Prepend {
		node.PrependChild(n.overlay)
	} else {
		node.AddChild(n.overlay)
	}
	n.regenerate()
	return n
}

// Overlay returns the static sprite, or nil once it has been removed.
func (n *Noise) Overlay() *Node { return n.overlay }

// Start arms the fade.
func (n *Noise) Start(delay, duration time.Duration) { n.start(delay, duration) }

// Stop removes the overlay.
func (n *Noise) Stop() {
	if n.done {
		return
	}
	n.done = true
	if n.overlay != nil {
		n.overlay.Dispose()
		n.overlay = nil
	}
	if n.img != nil {
		n.img.Deallocate()
		n.img = nil
	}
}

// Update redraws the static and runs the fade.
func (n *Noise) Update(dt float32) {
	if n.done {
		return
	}
	if n.node.IsDisposed() || n.overlay.IsDisposed() {
		n.Stop()
		return
	}
	n.regenerate()
	local, running := n.advance(dt)
	if !running {
		return
	}
	if n.fade == nil {
		n.fade = TweenAlpha(n.overlay, 0, float32(n.duration.Seconds()), ease.Linear)
		dt = float32(local.Seconds())
	}
	n.fade.Update(dt)
	if n.fade.Done {
		n.Stop()
	}
}

// regenerate fills the overlay with fresh grey grains.
func (n *Noise) regenerate() {
	for i := 0; i < len(n.pix); i += 4 {
		v := byte(rand.IntN(256))
		n.pix[i] = v
		n.pix[i+1] = v
		n.pix[i+2] = v
		n.pix[i+3] = 0xff
	}
	n.img.WritePixels(n.pix)
}
