package ultraspin

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Render texture pool ---

// renderTexturePool manages reusable offscreen ebiten.Images keyed by
// power-of-two dimensions. After warmup, Acquire/Release are zero-alloc.
type renderTexturePool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Dimensions are rounded up to the next power of two.
func (p *renderTexturePool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here.
func (p *renderTexturePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// size returns the number of pooled images.
func (p *renderTexturePool) size() int {
	n := 0
	for _, stack := range p.buckets {
		n += len(stack)
	}
	return n
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

// --- Subtree bounds ---

// subtreeBounds computes the bounding rectangle of a node and all its
// descendants in the node's local coordinate space.
func subtreeBounds(n *Node) Rect {
	var r Rect
	first := true
	subtreeBoundsWalk(n, identityTransform, &r, &first)
	return r
}

// subtreeBoundsWalk recursively accumulates bounds.
func subtreeBoundsWalk(n *Node, localTransform [6]float64, bounds *Rect, first *bool) {
	if !n.Visible {
		return
	}
	aabb, ok := contentBounds(n, localTransform)
	if ok {
		if *first {
			*bounds = aabb
			*first = false
		} else {
			*bounds = rectUnion(*bounds, aabb)
		}
	}

	for _, child := range n.children {
		childLocal := computeLocalTransform(child)
		childTransform := multiplyAffine(localTransform, childLocal)
		subtreeBoundsWalk(child, childTransform, bounds, first)
	}
}

// contentBounds returns the bounds of what n itself draws, transformed by m.
func contentBounds(n *Node, m [6]float64) (Rect, bool) {
	switch n.Type {
	case NodeTypeSprite, NodeTypeParticleEmitter:
		if n.Width > 0 && n.Height > 0 {
			return worldAABB(m, n.Width, n.Height), true
		}
	case NodeTypeMesh:
		if len(n.Vertices) == 0 {
			return Rect{}, false
		}
		local := meshAABB(n.Vertices)
		shifted := m
		shifted[4] += m[0]*local.X + m[2]*local.Y
		shifted[5] += m[1]*local.X + m[3]*local.Y
		return worldAABB(shifted, local.Width, local.Height), true
	}
	return Rect{}, false
}

// meshAABB scans DstX/DstY of the given vertices and returns the
// axis-aligned bounding box in local space.
func meshAABB(verts []ebiten.Vertex) Rect {
	minX := float64(verts[0].DstX)
	minY := float64(verts[0].DstY)
	maxX, maxY := minX, minY
	for _, v := range verts[1:] {
		minX = min(minX, float64(v.DstX))
		minY = min(minY, float64(v.DstY))
		maxX = max(maxX, float64(v.DstX))
		maxY = max(maxY, float64(v.DstY))
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// rectUnion returns the smallest Rect containing both a and b.
func rectUnion(a, b Rect) Rect {
	minX := math.Min(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	maxX := math.Max(a.X+a.Width, b.X+b.Width)
	maxY := math.Max(a.Y+a.Height, b.Y+b.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Subtree rendering ---

// renderSubtree renders a node and its children to the given target image.
// It temporarily swaps the scene's command buffer to avoid disturbing the
// main render pass. The node's content is rendered at local-space origin,
// offset by -bounds.X, -bounds.Y so everything fits in the target.
func renderSubtree(s *Scene, n *Node, target *ebiten.Image, bounds Rect) {
	savedCmds := s.commands
	// Nested filtered nodes take a fresh buffer.
	s.commands = s.offscreenCmds[:0]
	s.offscreenCmds = nil

	offset := [6]float64{1, 0, 0, 1, -bounds.X, -bounds.Y}

	// The node's own alpha is applied once, by the composite command.
	emitNodeCommand(s, n, offset, 1.0)
	for _, child := range sortedChildren(n) {
		s.walk(child, offset, 1.0)
	}

	s.submit(target)

	s.offscreenCmds = s.commands[:0]
	s.commands = savedCmds
}
