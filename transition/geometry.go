package transition

// Reference canvas themes are authored against.
const (
	RefWidth  = 1024
	RefHeight = 768
)

// Screen is the viewport in pixels.
type Screen struct {
	Width, Height float64
}

// RefScreen is the reference canvas at scale 1.
var RefScreen = Screen{Width: RefWidth, Height: RefHeight}

// ScaleX is the horizontal pixels per reference unit.
func (s Screen) ScaleX() float64 { return s.Width / RefWidth }

// ScaleY is the vertical pixels per reference unit.
func (s Screen) ScaleY() float64 { return s.Height / RefHeight }

// Geometry is a placed component in reference units. X and Y are its
// centre; W and H its natural size.
type Geometry struct {
	X, Y     float64
	W, H     float64
	Rotation float64 // degrees
}

// Spec selects a transition. Delay and Time are seconds.
type Spec struct {
	Start string
	Type  string
	Delay float64
	Time  float64
}

// Start edges.
const (
	StartTop    = "top"
	StartRight  = "right"
	StartBottom = "bottom"
	StartLeft   = "left"
	StartCenter = "center"
	StartNone   = "none"
)

// Input is what an effect sees: the transition, the geometry in reference
// units and the screen it resolves to.
type Input struct {
	Spec     Spec
	Geometry Geometry
	Screen   Screen
	// Base is the component's resting transform, normally its rotation.
	Base Transform
}

// X converts a horizontal reference length to pixels.
func (in Input) X(ref float64) float64 { return ref * in.Screen.ScaleX() }

// Y converts a vertical reference length to pixels.
func (in Input) Y(ref float64) float64 { return ref * in.Screen.ScaleY() }

// VW converts percent of viewport width to pixels.
func (in Input) VW(pct float64) float64 { return pct / 100 * in.Screen.Width }

// VH converts percent of viewport height to pixels.
func (in Input) VH(pct float64) float64 { return pct / 100 * in.Screen.Height }

// Width and Height are the component size in pixels.
func (in Input) Width() float64  { return in.X(in.Geometry.W) }
func (in Input) Height() float64 { return in.Y(in.Geometry.H) }

// Edge distances: how far to translate so the component starts beyond the
// named edge.
func (in Input) offLeft() float64   { return in.X(-(in.Geometry.X + in.Geometry.W)) }
func (in Input) offRight() float64  { return in.X(RefWidth - (in.Geometry.X - in.Geometry.W)) }
func (in Input) offTop() float64    { return in.Y(-(in.Geometry.Y + in.Geometry.H)) }
func (in Input) offBottom() float64 { return in.Y(RefHeight - (in.Geometry.Y - in.Geometry.H)) }

// base returns the resting transform followed by ops.
func (in Input) base(ops ...Op) Transform { return in.Base.Then(ops...) }
