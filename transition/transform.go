package transition

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OpKind identifies a transform function.
type OpKind uint8

const (
	OpTranslate OpKind = iota
	OpTranslateX
	OpTranslateY
	OpScale
	OpScaleX
	OpScaleY
	OpRotate
	OpRotateY
)

// Op is one transform function. Lengths are screen pixels, angles degrees.
// Scale uses X and Y; single-axis kinds use X only.
type Op struct {
	Kind OpKind
	X, Y float64
}

// Transform is a transform function list. Functions compose left to right:
// the rightmost applies to the element first.
type Transform []Op

func Translate(x, y float64) Op { return Op{Kind: OpTranslate, X: x, Y: y} }
func TranslateX(x float64) Op   { return Op{Kind: OpTranslateX, X: x} }
func TranslateY(y float64) Op   { return Op{Kind: OpTranslateY, X: y} }
func Scale(s float64) Op        { return Op{Kind: OpScale, X: s, Y: s} }
func ScaleX(s float64) Op       { return Op{Kind: OpScaleX, X: s} }
func ScaleY(s float64) Op       { return Op{Kind: OpScaleY, X: s} }
func Rotate(deg float64) Op     { return Op{Kind: OpRotate, X: deg} }

// RotateY turns the element about its vertical axis. Without perspective
// this flattens to a horizontal scale by cos(deg).
func RotateY(deg float64) Op { return Op{Kind: OpRotateY, X: deg} }

// Then returns a new list with ops appended. t is not modified.
func (t Transform) Then(ops ...Op) Transform {
	out := make(Transform, 0, len(t)+len(ops))
	out = append(out, t...)
	return append(out, ops...)
}

// Matrix returns the composed affine matrix.
func (t Transform) Matrix() Matrix {
	m := Identity
	for _, op := range t {
		m = m.Multiply(op.Matrix())
	}
	return m
}

// Matrix returns the affine matrix of a single function.
func (o Op) Matrix() Matrix {
	switch o.Kind {
	case OpTranslate:
		return Matrix{1, 0, 0, 1, o.X, o.Y}
	case OpTranslateX:
		return Matrix{1, 0, 0, 1, o.X, 0}
	case OpTranslateY:
		return Matrix{1, 0, 0, 1, 0, o.X}
	case OpScale:
		return Matrix{o.X, 0, 0, o.Y, 0, 0}
	case OpScaleX:
		return Matrix{o.X, 0, 0, 1, 0, 0}
	case OpScaleY:
		return Matrix{1, 0, 0, o.X, 0, 0}
	case OpRotate:
		sin, cos := math.Sincos(o.X * math.Pi / 180)
		return Matrix{cos, sin, -sin, cos, 0, 0}
	case OpRotateY:
		return Matrix{math.Cos(o.X * math.Pi / 180), 0, 0, 1, 0, 0}
	}
	return Identity
}

func (o Op) String() string {
	switch o.Kind {
	case OpTranslate:
		return "translate(" + px(o.X) + ", " + px(o.Y) + ")"
	case OpTranslateX:
		return "translateX(" + px(o.X) + ")"
	case OpTranslateY:
		return "translateY(" + px(o.X) + ")"
	case OpScale:
		if o.X == o.Y {
			return "scale(" + num(o.X) + ")"
		}
		return "scale(" + num(o.X) + ", " + num(o.Y) + ")"
	case OpScaleX:
		return "scaleX(" + num(o.X) + ")"
	case OpScaleY:
		return "scaleY(" + num(o.X) + ")"
	case OpRotate:
		return "rotate(" + num(o.X) + "deg)"
	case OpRotateY:
		return "rotateY(" + num(o.X) + "deg)"
	}
	return fmt.Sprintf("op(%d)", o.Kind)
}

func (t Transform) String() string {
	if len(t) == 0 {
		return "none"
	}
	parts := make([]string, len(t))
	for i, op := range t {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func px(v float64) string { return num(math.Round(v*1000)/1000) + "px" }

// neutral returns the identity function of the same kind as o.
func (o Op) neutral() Op {
	switch o.Kind {
	case OpScale:
		return Op{Kind: o.Kind, X: 1, Y: 1}
	case OpScaleX, OpScaleY:
		return Op{Kind: o.Kind, X: 1}
	}
	return Op{Kind: o.Kind}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Interpolate blends two transform lists. Lists whose functions pair up by
// kind (the shorter padded with identity functions) blend function by
// function; anything else blends the decomposed matrices.
func Interpolate(a, b Transform, t float64) Matrix {
	n := max(len(a), len(b))
	pairwise := true
	for i := 0; i < n; i++ {
		switch {
		case i >= len(a) || i >= len(b):
		case a[i].Kind != b[i].Kind:
			pairwise = false
		}
	}
	if !pairwise {
		return a.Matrix().Decompose().Lerp(b.Matrix().Decompose(), t).Recompose()
	}
	m := Identity
	for i := 0; i < n; i++ {
		var oa, ob Op
		switch {
		case i >= len(a):
			ob = b[i]
			oa = ob.neutral()
		case i >= len(b):
			oa = a[i]
			ob = oa.neutral()
		default:
			oa, ob = a[i], b[i]
		}
		m = m.Multiply(Op{Kind: oa.Kind, X: lerp(oa.X, ob.X, t), Y: lerp(oa.Y, ob.Y, t)}.Matrix())
	}
	return m
}
