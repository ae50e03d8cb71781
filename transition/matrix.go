package transition

import "math"

// Matrix is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// Identity is the identity matrix.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Multiply returns m * n.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// About returns the matrix applied around origin (ox, oy) instead of (0, 0).
func (m Matrix) About(ox, oy float64) Matrix {
	return Matrix{1, 0, 0, 1, ox, oy}.Multiply(m).Multiply(Matrix{1, 0, 0, 1, -ox, -oy})
}

// Decomposed is a matrix split into translate, rotate, scale and skew.
type Decomposed struct {
	TX, TY   float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // radians
	Skew     float64
}

// Decompose splits m the way CSS 2D matrix interpolation does.
func (m Matrix) Decompose() Decomposed {
	d := Decomposed{TX: m[4], TY: m[5]}
	ax, ay := m[0], m[1]
	bx, by := m[2], m[3]

	d.ScaleX = math.Hypot(ax, ay)
	if d.ScaleX != 0 {
		ax, ay = ax/d.ScaleX, ay/d.ScaleX
	}
	d.Skew = ax*bx + ay*by
	bx, by = bx-ax*d.Skew, by-ay*d.Skew
	d.ScaleY = math.Hypot(bx, by)
	if d.ScaleY != 0 {
		bx, by = bx/d.ScaleY, by/d.ScaleY
		d.Skew /= d.ScaleY
	}
	// Flip one axis when the determinant is negative.
	if ax*by-ay*bx < 0 {
		ax, ay = -ax, -ay
		d.ScaleX = -d.ScaleX
		d.Skew = -d.Skew
	}
	d.Rotation = math.Atan2(ay, ax)
	return d
}

// Lerp blends two decompositions, taking the shorter way round.
func (d Decomposed) Lerp(o Decomposed, t float64) Decomposed {
	ra, rb := d.Rotation, o.Rotation
	sxa, sxb := d.ScaleX, o.ScaleX
	sya, syb := d.ScaleY, o.ScaleY
	if (sxa < 0 && syb < 0) || (sya < 0 && sxb < 0) {
		sxa, sya = -sxa, -sya
		ra += math.Pi
	}
	if math.Abs(ra-rb) > math.Pi {
		if ra > rb {
			ra -= 2 * math.Pi
		} else {
			rb -= 2 * math.Pi
		}
	}
	return Decomposed{
		TX:       lerp(d.TX, o.TX, t),
		TY:       lerp(d.TY, o.TY, t),
		ScaleX:   lerp(sxa, sxb, t),
		ScaleY:   lerp(sya, syb, t),
		Rotation: lerp(ra, rb, t),
		Skew:     lerp(d.Skew, o.Skew, t),
	}
}

// Recompose rebuilds the matrix: translate * rotate * skew * scale.
func (d Decomposed) Recompose() Matrix {
	sin, cos := math.Sincos(d.Rotation)
	m := Matrix{1, 0, 0, 1, d.TX, d.TY}
	m = m.Multiply(Matrix{cos, sin, -sin, cos, 0, 0})
	m = m.Multiply(Matrix{1, 0, d.Skew, 1, 0, 0})
	return m.Multiply(Matrix{d.ScaleX, 0, 0, d.ScaleY, 0, 0})
}
