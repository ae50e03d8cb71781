package ultraspin

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// layout box and pose. Returns [a, b, c, d, tx, ty].
//
// Composition order, applied right to left:
//
//	Translate(-origin) -> Scale(ScaleX, ScaleY) -> Transform -> Translate(origin) -> Translate(Left+OffsetX, Top+OffsetY)
func computeLocalTransform(n *Node) [6]float64 {
	ox, oy := n.origin()
	sx, sy := n.ScaleX, n.ScaleY
	m := n.Transform

	// Scale about the origin, then the pose.
	a := m[0] * sx
	b := m[1] * sx
	c := m[2] * sy
	d := m[3] * sy
	tx := -a*ox - c*oy + m[4] + ox
	ty := -b*ox - d*oy + m[5] + oy

	return [6]float64{a, b, c, d, tx + n.Left + n.OffsetX, ty + n.Top + n.OffsetY}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns identity if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det == 0 {
		return identityTransform
	}
	invDet := 1.0 / det
	return [6]float64{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes the world transform and alpha of n and its
// descendants when they or an ancestor changed.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.transformDirty = false
	}
	n.worldAlpha = parentAlpha * n.Alpha
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// SetLayout sets the node's layout box.
func (n *Node) SetLayout(left, top, width, height float64) {
	n.Left, n.Top = left, top
	n.Width, n.Height = width, height
	n.transformDirty = true
}

// SetOffset sets the process displacement.
func (n *Node) SetOffset(x, y float64) {
	n.OffsetX, n.OffsetY = x, y
	n.transformDirty = true
}

// SetScale sets the process scale.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX, n.ScaleY = sx, sy
	n.transformDirty = true
}

// SetAlpha sets the node's opacity.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// WorldTransform returns the node's last computed world matrix.
func (n *Node) WorldTransform() [6]float64 {
	return n.worldTransform
}

// WorldToLocal converts a world-space point to the node's box space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}

// LocalToWorld converts a point in the node's box space to world space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}

// WorldBounds returns the axis-aligned bounds of the node's box in world
// space.
func (n *Node) WorldBounds() Rect {
	return worldAABB(n.worldTransform, n.Width, n.Height)
}

// worldAABB returns the axis-aligned bounding box of a w x h rectangle
// transformed by m.
func worldAABB(m [6]float64, w, h float64) Rect {
	x0, y0 := transformPoint(m, 0, 0)
	x1, y1 := transformPoint(m, w, 0)
	x2, y2 := transformPoint(m, w, h)
	x3, y3 := transformPoint(m, 0, h)
	minX := min(x0, x1, x2, x3)
	minY := min(y0, y1, y2, y3)
	maxX := max(x0, x1, x2, x3)
	maxY := max(y0, y1, y2, y3)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
