package ultraspin

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// transformVertices applies an affine transform and color tint to src vertices,
// writing the result into dst. dst must be at least len(src) in length.
//
// Matrix layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
// newX = a*x + c*y + tx, newY = b*x + d*y + ty
//
// Color components are multiplied (vertex color * tint). The tint's alpha
// already has worldAlpha baked in, so no double-alpha correction is needed.
func transformVertices(src, dst []ebiten.Vertex, transform [6]float64, tint Color) {
	a, b, c, d, tx, ty := transform[0], transform[1], transform[2], transform[3], transform[4], transform[5]
	cr := float32(tint.R)
	cg := float32(tint.G)
	cb := float32(tint.B)
	ca := float32(tint.A)

	for i := range src {
		s := &src[i]
		ox := float64(s.DstX)
		oy := float64(s.DstY)
		dst[i] = ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(b*ox + d*oy + ty),
			SrcX:   s.SrcX,
			SrcY:   s.SrcY,
			ColorR: s.ColorR * cr * ca,
			ColorG: s.ColorG * cg * ca,
			ColorB: s.ColorB * cb * ca,
			ColorA: s.ColorA * ca,
		}
	}
}

// ensureTransformedVerts grows the node's transformedVerts buffer to fit
// len(n.Vertices), using a high-water-mark strategy (never shrinks).
// Returns the resliced buffer.
func ensureTransformedVerts(n *Node) []ebiten.Vertex {
	need := len(n.Vertices)
	if cap(n.transformedVerts) < need {
		n.transformedVerts = make([]ebiten.Vertex, need)
	}
	n.transformedVerts = n.transformedVerts[:need]
	return n.transformedVerts
}

// appendQuad appends the two triangles of the quad starting at vertex base,
// ordered top-left, top-right, bottom-left, bottom-right.
func appendQuad(inds []uint16, base uint16) []uint16 {
	return append(inds, base, base+2, base+1, base+1, base+2, base+3)
}

// --- DistortionGrid ---

// DistortionGrid is a mesh that stretches an image over a cols x rows grid
// whose vertices can be displaced individually.
type DistortionGrid struct {
	node    *Node
	cols    int
	rows    int
	restPos []Vec2
}

// NewDistortionGrid creates a grid mesh over img sized w x h pixels. The
// returned node's box is w x h with its origin at the top-left corner.
func NewDistortionGrid(name string, img *ebiten.Image, w, h float64, cols, rows int) (*DistortionGrid, *Node) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	var imgW, imgH float64
	if img != nil {
		b := img.Bounds()
		imgW = float64(b.Dx())
		imgH = float64(b.Dy())
	}

	vcols := cols + 1
	vrows := rows + 1
	verts := make([]ebiten.Vertex, vcols*vrows)
	inds := make([]uint16, 0, cols*rows*6)
	restPos := make([]Vec2, vcols*vrows)

	for r := 0; r < vrows; r++ {
		for c := 0; c < vcols; c++ {
			idx := r*vcols + c
			fx := float64(c) / float64(cols)
			fy := float64(r) / float64(rows)
			x, y := fx*w, fy*h
			verts[idx] = ebiten.Vertex{
				DstX: float32(x), DstY: float32(y),
				SrcX: float32(fx * imgW), SrcY: float32(fy * imgH),
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			}
			restPos[idx] = Vec2{X: x, Y: y}
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			tl := uint16(r*vcols + c)
			tr := tl + 1
			bl := uint16((r+1)*vcols + c)
			br := bl + 1
			inds = append(inds, tl, bl, tr, tr, bl, br)
		}
	}

	n := NewMesh(name, img, verts, inds)
	n.Width, n.Height = w, h
	n.Origin = &Vec2{}
	return &DistortionGrid{node: n, cols: cols, rows: rows, restPos: restPos}, n
}

// Node returns the underlying mesh node.
func (g *DistortionGrid) Node() *Node {
	return g.node
}

// Cols returns the number of grid columns.
func (g *DistortionGrid) Cols() int { return g.cols }

// Rows returns the number of grid rows.
func (g *DistortionGrid) Rows() int { return g.rows }

// SetAllVertices calls fn for each vertex, passing (col, row, restX, restY).
// fn returns the (dx, dy) displacement from the rest position.
func (g *DistortionGrid) SetAllVertices(fn func(col, row int, restX, restY float64) (dx, dy float64)) {
	vcols := g.cols + 1
	vrows := g.rows + 1
	for r := 0; r < vrows; r++ {
		for c := 0; c < vcols; c++ {
			idx := r*vcols + c
			rest := g.restPos[idx]
			dx, dy := fn(c, r, rest.X, rest.Y)
			g.node.Vertices[idx].DstX = float32(rest.X + dx)
			g.node.Vertices[idx].DstY = float32(rest.Y + dy)
		}
	}
}

// Reset returns all vertices to their original positions.
func (g *DistortionGrid) Reset() {
	for idx, rest := range g.restPos {
		g.node.Vertices[idx].DstX = float32(rest.X)
		g.node.Vertices[idx].DstY = float32(rest.Y)
	}
}

// --- Slices ---

// NewSliceMesh cuts img into n horizontal bands laid over a w x h box. Band
// i owns vertices 4i..4i+3, so callers can slide bands independently with
// SetSliceOffset.
func NewSliceMesh(name string, img *ebiten.Image, w, h float64, n int) *Node {
	if n < 1 {
		n = 1
	}
	var imgW, imgH float64
	if img != nil {
		b := img.Bounds()
		imgW = float64(b.Dx())
		imgH = float64(b.Dy())
	}
	verts := make([]ebiten.Vertex, 0, n*4)
	inds := make([]uint16, 0, n*6)
	for i := 0; i < n; i++ {
		f0 := float64(i) / float64(n)
		f1 := float64(i+1) / float64(n)
		y0, y1 := f0*h, f1*h
		v0, v1 := float32(f0*imgH), float32(f1*imgH)
		base := uint16(len(verts))
		verts = append(verts,
			ebiten.Vertex{DstX: 0, DstY: float32(y0), SrcX: 0, SrcY: v0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			ebiten.Vertex{DstX: float32(w), DstY: float32(y0), SrcX: float32(imgW), SrcY: v0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			ebiten.Vertex{DstX: 0, DstY: float32(y1), SrcX: 0, SrcY: v1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			ebiten.Vertex{DstX: float32(w), DstY: float32(y1), SrcX: float32(imgW), SrcY: v1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		)
		inds = appendQuad(inds, base)
	}
	node := NewMesh(name, img, verts, inds)
	node.Width, node.Height = w, h
	node.Origin = &Vec2{}
	return node
}

// SetSliceOffset shifts band i of a slice mesh horizontally by dx pixels.
func SetSliceOffset(n *Node, i int, dx float64) {
	base := i * 4
	if base+3 >= len(n.Vertices) {
		return
	}
	w := float32(n.Width)
	n.Vertices[base].DstX = float32(dx)
	n.Vertices[base+1].DstX = w + float32(dx)
	n.Vertices[base+2].DstX = float32(dx)
	n.Vertices[base+3].DstX = w + float32(dx)
}

// --- Border ring ---

// cornerSegments is the number of arc segments per rounded corner.
const cornerSegments = 8

// NewBorderMesh builds a solid ring of the given thickness around a w x h
// box. The ring's inner edge is the box; its outer edge extends size pixels
// beyond it. rounded gives the outer corners a radius equal to size.
func NewBorderMesh(name string, w, h, size float64, rounded bool, c Color) *Node {
	verts, inds := borderRing(w, h, size, rounded)
	n := NewMesh(name, nil, verts, inds)
	n.Width, n.Height = w, h
	n.Origin = &Vec2{}
	n.Color = c
	return n
}

// borderRing triangulates the ring between the box [0,w]x[0,h] and the box
// grown by size. Each inner corner fans out to its outer corner points;
// straight edges are quads between neighbouring corners.
func borderRing(w, h, size float64, rounded bool) ([]ebiten.Vertex, []uint16) {
	if size <= 0 {
		return nil, nil
	}
	inner := [4]Vec2{{0, 0}, {w, 0}, {w, h}, {0, h}}
	// Outer corner centres and the start angle of each corner's arc,
	// clockwise from top-left.
	centres := [4]Vec2{{0, 0}, {w, 0}, {w, h}, {0, h}}
	starts := [4]float64{math.Pi, 1.5 * math.Pi, 0, 0.5 * math.Pi}

	segs := 1
	if rounded {
		segs = cornerSegments
	}

	verts := make([]ebiten.Vertex, 0, 4*(segs+2))
	inds := make([]uint16, 0, 4*(segs*3+6))
	vert := func(p Vec2) uint16 {
		verts = append(verts, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: .5, SrcY: .5,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		})
		return uint16(len(verts) - 1)
	}

	var first, last [4]uint16
	var innerIdx [4]uint16
	for i := 0; i < 4; i++ {
		innerIdx[i] = vert(inner[i])
		var pts []Vec2
		if rounded {
			for s := 0; s <= segs; s++ {
				a := starts[i] + float64(s)/float64(segs)*math.Pi/2
				pts = append(pts, Vec2{centres[i].X + math.Cos(a)*size, centres[i].Y + math.Sin(a)*size})
			}
		} else {
			// Square corner: the outer corner point only.
			dx := -size
			if inner[i].X > 0 {
				dx = size
			}
			dy := -size
			if inner[i].Y > 0 {
				dy = size
			}
			pts = []Vec2{{inner[i].X + dx, inner[i].Y + dy}}
		}
		prev := vert(pts[0])
		first[i] = prev
		for _, p := range pts[1:] {
			cur := vert(p)
			inds = append(inds, innerIdx[i], prev, cur)
			prev = cur
		}
		last[i] = prev
	}
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		inds = append(inds,
			innerIdx[i], last[i], first[j],
			innerIdx[i], first[j], innerIdx[j],
		)
	}
	return verts, inds
}
