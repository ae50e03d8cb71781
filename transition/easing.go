package transition

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Easing is a timing function: linear or a cubic Bézier through (0,0),
// (X1,Y1), (X2,Y2), (1,1).
type Easing struct {
	Name           string
	X1, Y1, X2, Y2 float64
	linear         bool
}

var (
	Linear    = Easing{Name: "linear", linear: true}
	Ease      = CubicBezier("ease", .25, .1, .25, 1)
	EaseInOut = CubicBezier("ease-in-out", .42, 0, .58, 1)
	// Overshoot rises past 1 before settling, giving a bounce on arrival.
	Overshoot = CubicBezier("", .25, 1.5, .5, 2)
)

// CubicBezier builds a Bézier easing. An empty name renders as the
// cubic-bezier(...) form.
func CubicBezier(name string, x1, y1, x2, y2 float64) Easing {
	return Easing{Name: name, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func (e Easing) String() string {
	if e.Name != "" {
		return e.Name
	}
	if e.linear {
		return "linear"
	}
	return "cubic-bezier(" + num(e.X1) + "," + num(e.Y1) + "," + num(e.X2) + "," + num(e.Y2) + ")"
}

// IsLinear reports whether e is the identity curve.
func (e Easing) IsLinear() bool {
	return e.linear || (e == Easing{})
}

// At maps input progress x in [0, 1] to output progress. Bézier curves may
// return values outside [0, 1].
func (e Easing) At(x float64) float64 {
	if e.IsLinear() {
		return x
	}
	if x <= 0 || x >= 1 {
		return e.extrapolate(x)
	}
	return bezier(e.Y1, e.Y2, e.solveT(x))
}

// TweenFunc adapts e to gween's easing signature.
func (e Easing) TweenFunc() ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		if d == 0 {
			return b + c
		}
		return b + c*float32(e.At(float64(t/d)))
	}
}

// extrapolate continues the curve linearly past its endpoints using the
// tangent there.
func (e Easing) extrapolate(x float64) float64 {
	if x <= 0 {
		switch {
		case e.X1 > 0:
			return e.Y1 / e.X1 * x
		case e.Y1 == 0 && e.X2 > 0:
			return e.Y2 / e.X2 * x
		}
		return 0
	}
	switch {
	case e.X2 < 1:
		return 1 + (e.Y2-1)/(e.X2-1)*(x-1)
	case e.Y2 == 1 && e.X1 < 1:
		return 1 + (e.Y1-1)/(e.X1-1)*(x-1)
	}
	return 1
}

// bezier evaluates one coordinate of the curve with endpoints 0 and 1.
func bezier(p1, p2, t float64) float64 {
	mt := 1 - t
	return 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t
}

func bezierSlope(p1, p2, t float64) float64 {
	mt := 1 - t
	return 3*mt*mt*p1 + 6*mt*t*(p2-p1) + 3*t*t*(1-p2)
}

// solveT finds the curve parameter whose x coordinate is x. Newton steps
// first, bisection when the slope flattens.
func (e Easing) solveT(x float64) float64 {
	const eps = 1e-7
	t := x
	for range 8 {
		dx := bezier(e.X1, e.X2, t) - x
		if math.Abs(dx) < eps {
			return t
		}
		slope := bezierSlope(e.X1, e.X2, t)
		if math.Abs(slope) < 1e-6 {
			break
		}
		t -= dx / slope
	}
	lo, hi := 0.0, 1.0
	t = x
	for range 64 {
		v := bezier(e.X1, e.X2, t)
		if math.Abs(v-x) < eps {
			return t
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}
