package ultraspin

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite   CommandType = iota // DrawImage
	CommandMesh                        // DrawTriangles
	CommandParticle                    // one DrawImage per live particle
)

// RenderCommand is a single draw instruction emitted during scene traversal.
// Commands are emitted in draw order.
type RenderCommand struct {
	Type      CommandType
	Transform [6]float64
	Color     Color
	BlendMode BlendMode

	// Sprite fields. The image is stretched over a Width x Height box;
	// natural draws it at its own size (filtered offscreen output).
	image         *ebiten.Image
	width, height float64
	natural       bool

	// Mesh fields (slice headers, not copies of vertex data).
	meshVerts []ebiten.Vertex
	meshInds  []uint16
	meshImage *ebiten.Image

	emitter *ParticleEmitter
}

// walk visits n and its subtree, emitting commands for everything visible.
func (s *Scene) walk(n *Node, parentTransform [6]float64, parentAlpha float64) {
	if !n.Visible {
		return
	}
	transform := multiplyAffine(parentTransform, computeLocalTransform(n))
	alpha := parentAlpha * n.Alpha

	// Filtered nodes render their subtree to an offscreen image and emit a
	// single composite command.
	if hasFilters(n) {
		s.renderFilteredNode(n, transform, alpha)
		return
	}

	emitNodeCommand(s, n, transform, alpha)
	for _, child := range sortedChildren(n) {
		s.walk(child, transform, alpha)
	}
}

// sortedChildren returns n's children in ZIndex order, rebuilding the cached
// order when it is stale. Uses insertion sort: stable and O(n) when the
// children are already nearly sorted.
func sortedChildren(n *Node) []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if n.childrenSorted && len(n.sortedChildren) == len(n.children) {
		return n.sortedChildren
	}
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
	return n.sortedChildren
}

// emitNodeCommand emits a render command for a single node at the given transform.
func emitNodeCommand(s *Scene, n *Node, transform [6]float64, alpha float64) {
	if !n.Renderable {
		return
	}
	tint := Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * alpha}
	switch n.Type {
	case NodeTypeSprite:
		if n.Width <= 0 || n.Height <= 0 {
			return
		}
		s.commands = append(s.commands, RenderCommand{
			Type:      CommandSprite,
			Transform: transform,
			Color:     tint,
			BlendMode: n.BlendMode,
			image:     n.Image,
			width:     n.Width,
			height:    n.Height,
		})
	case NodeTypeMesh:
		if len(n.Vertices) == 0 || len(n.Indices) == 0 {
			return
		}
		dst := ensureTransformedVerts(n)
		transformVertices(n.Vertices, dst, transform, tint)
		s.commands = append(s.commands, RenderCommand{
			Type:      CommandMesh,
			Transform: transform,
			BlendMode: n.BlendMode,
			meshVerts: dst,
			meshInds:  n.Indices,
			meshImage: n.MeshImage,
		})
	case NodeTypeParticleEmitter:
		if n.Emitter != nil && n.Emitter.alive > 0 {
			s.commands = append(s.commands, RenderCommand{
				Type:      CommandParticle,
				Transform: transform,
				Color:     tint,
				BlendMode: n.BlendMode,
				emitter:   n.Emitter,
			})
		}
	}
}

// renderFilteredNode renders n's subtree offscreen, runs its filters and
// emits the result as one sprite command.
func (s *Scene) renderFilteredNode(n *Node, transform [6]float64, alpha float64) {
	filters := nodeFilters(n)
	bounds := subtreeBounds(n)
	padding := float64(filterChainPadding(filters))
	bounds.X -= padding
	bounds.Y -= padding
	bounds.Width += padding * 2
	bounds.Height += padding * 2

	w := int(math.Ceil(bounds.Width))
	h := int(math.Ceil(bounds.Height))
	if w <= 0 || h <= 0 {
		return
	}

	// RT pixel (0,0) corresponds to local (bounds.X, bounds.Y).
	adjusted := transform
	adjusted[4] += transform[0]*bounds.X + transform[2]*bounds.Y
	adjusted[5] += transform[1]*bounds.X + transform[3]*bounds.Y

	rt := s.rtPool.Acquire(w, h)
	renderSubtree(s, n, rt, bounds)
	result := applyFilters(filters, rt, &s.rtPool)
	if result != rt {
		s.rtPool.Release(rt)
	}

	// Released after the frame is submitted.
	s.rtDeferred = append(s.rtDeferred, result)
	s.commands = append(s.commands, RenderCommand{
		Type:      CommandSprite,
		Transform: adjusted,
		Color:     Color{1, 1, 1, alpha},
		BlendMode: n.BlendMode,
		image:     result,
		natural:   true,
	})
}

// --- Submission ---

// submit draws the current command list onto target.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandSprite:
			submitSprite(target, cmd, &op)
		case CommandMesh:
			submitMesh(target, cmd)
		case CommandParticle:
			submitParticles(target, cmd, &op)
		}
	}
}

func submitSprite(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	img := cmd.image
	if img == nil {
		img = WhitePixel
	}
	op.GeoM.Reset()
	if !cmd.natural {
		b := img.Bounds()
		op.GeoM.Scale(cmd.width/float64(b.Dx()), cmd.height/float64(b.Dy()))
	}
	op.GeoM.Concat(commandGeoM(cmd))
	setColorScale(op, cmd.Color)
	op.Blend = cmd.BlendMode.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	target.DrawImage(img, op)
}

// submitMesh draws a mesh command using DrawTriangles.
func submitMesh(target *ebiten.Image, cmd *RenderCommand) {
	if cmd.meshImage == nil {
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = cmd.BlendMode.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.Filter = ebiten.FilterLinear
	target.DrawTriangles(cmd.meshVerts, cmd.meshInds, cmd.meshImage, &triOp)
}

func submitParticles(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	e := cmd.emitter
	img := e.config.Image
	if img == nil {
		img = WhitePixel
	}
	b := img.Bounds()
	hw, hh := float64(b.Dx())/2, float64(b.Dy())/2
	base := commandGeoM(cmd)

	for i := range e.drops[:e.alive] {
		p := &e.drops[i]
		scale, alpha := p.look(e.config.Shrink)
		op.GeoM.Reset()
		op.GeoM.Translate(-hw, -hh)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(p.pos.X, p.pos.Y)
		op.GeoM.Concat(base)
		c := cmd.Color
		c.A *= alpha
		setColorScale(op, c)
		op.Blend = cmd.BlendMode.EbitenBlend()
		op.Filter = ebiten.FilterLinear
		target.DrawImage(img, op)
	}
}

// setColorScale writes a premultiplied tint into op.
func setColorScale(op *ebiten.DrawImageOptions, c Color) {
	op.ColorScale.Reset()
	a := float32(c.A)
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
}

// commandGeoM converts a command's [6]float64 transform into an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, cmd.Transform[0])
	m.SetElement(1, 0, cmd.Transform[1])
	m.SetElement(0, 1, cmd.Transform[2])
	m.SetElement(1, 1, cmd.Transform[3])
	m.SetElement(0, 2, cmd.Transform[4])
	m.SetElement(1, 2, cmd.Transform[5])
	return m
}
