package transition

import (
	"math"
	"time"
)

// Fragment is the contribution of an entry effect.
type Fragment struct {
	Keyframes []Keyframe
	Aux       []AuxSpec
	Placement *Placement
	Easing    *Easing
	// Loop repeats the animation forever.
	Loop      bool
	Alternate bool
	// Tail lengthens each iteration beyond the transition time.
	Tail time.Duration
}

// EntryEffect builds the starting keyframes of a centre/none transition.
type EntryEffect func(in Input) Fragment

// loopTail pads looping path effects so each cycle rests off-screen.
const loopTail = time.Second

func defaultEntryEffects() map[string]EntryEffect {
	return map[string]EntryEffect{
		"arc grow":           arcGrow,
		"arc shrink":         arcShrink,
		"blur":               blurIn,
		"bounce around 3D":   withAux(AuxSpec{Kind: AuxBounce3D}),
		"bounce random":      bounceRandom,
		"fade":               fadeIn,
		"flag":               fadeWithAux(AuxSpec{Kind: AuxFlag}),
		"flip":               transformFrom(RotateY(90)),
		"grow":               transformFrom(Scale(NearZero)),
		"grow bounce":        growBounce,
		"grow center shrink": growCenterShrink,
		"grow x":             transformFrom(ScaleX(NearZero)),
		"grow y":             transformFrom(ScaleY(NearZero)),
		"none":               hidden,
		"pendulum":           pendulum,
		"pixelate":           fadeWithAux(AuxSpec{Kind: AuxPixelate, Amount: 1}),
		"pixelate zoom out":  pixelateZoomOut,
		"pump":               pump,
		"rain float":         rainFloat,
		"stripes":            withAux(AuxSpec{Kind: AuxSlicer, Simple: true, Slices: 16}),
		"stripes 2":          withAux(AuxSpec{Kind: AuxSlicer}),
		"strobe":             strobe,
		"tv":                 tv(1),
		"tv zoom out":        tv(4),
		"zoom out":           zoomOut,
	}
}

// edgeEntry is the off-screen start for a directional transition. The
// signed distance is kept for exit effects that bounce back toward it.
func edgeEntry(in Input) (Keyframe, axis, bool) {
	switch in.Spec.Start {
	case StartTop:
		d := in.offTop()
		return Frame(in.base(TranslateY(d))), axis{y: true, d: d}, true
	case StartRight:
		d := in.offRight()
		return Frame(in.base(TranslateX(d))), axis{d: d}, true
	case StartBottom:
		d := in.offBottom()
		return Frame(in.base(TranslateY(d))), axis{y: true, d: d}, true
	case StartLeft:
		d := in.offLeft()
		return Frame(in.base(TranslateX(d))), axis{d: d}, true
	}
	return Keyframe{}, axis{}, false
}

// axis is the start offset recorded by the entry pass.
type axis struct {
	y bool
	d float64
}

func (a axis) translate(d float64) Op {
	if a.y {
		return TranslateY(d)
	}
	return TranslateX(d)
}

func transformFrom(op Op) EntryEffect {
	return func(in Input) Fragment {
		return Fragment{Keyframes: []Keyframe{Frame(in.base(op))}}
	}
}

func withAux(aux AuxSpec) EntryEffect {
	return func(in Input) Fragment {
		return Fragment{Keyframes: []Keyframe{Frame(in.base())}, Aux: []AuxSpec{aux}}
	}
}

func fadeWithAux(aux AuxSpec) EntryEffect {
	return func(in Input) Fragment {
		f := fadeIn(in)
		f.Aux = []AuxSpec{aux}
		return f
	}
}

// arcPath is the shared path of the arc effects: viewport-relative
// translation and scale per offset.
var arcPath = []struct {
	vw, vh, scale, offset float64
}{
	{25, -19.80, .15, 0},
	{35, -32.05, .25, .05},
	{45, -38.85, .35, .1},
	{55, -39.65, .45, .15},
	{65, -34.35, .55, .2},
	{75, -24.15, .65, .25},
	{85, -10.20, .75, .3},
	{95, 7.20, .85, .35},
	{105, 24.20, .95, .4},
	{115, 39.80, 1.05, .45},
	{125, 52.05, 1.15, .5},
}

// arcPlacement parks the element off the left edge, vertically centred.
// The arc effects ignore the authored position.
func arcPlacement(in Input) *Placement {
	return &Placement{
		Left: -in.Width(),
		Top:  in.VH(50) - math.Floor(in.Height()/2),
	}
}

func arcFrame(in Input, vw, vh, scale, offset float64) Keyframe {
	return Frame(Transform{Translate(in.VW(vw), in.VH(vh)), Scale(scale)}).At(offset)
}

func arcGrow(in Input) Fragment {
	frames := make([]Keyframe, 0, len(arcPath)+1)
	for _, p := range arcPath {
		frames = append(frames, arcFrame(in, p.vw, p.vh, p.scale, p.offset))
	}
	frames = append(frames, arcFrame(in, 150, 100, 1.25, 1))
	return Fragment{Keyframes: frames, Placement: arcPlacement(in), Loop: true, Tail: loopTail}
}

func arcShrink(in Input) Fragment {
	frames := make([]Keyframe, 0, len(arcPath)+1)
	for i := len(arcPath) - 1; i >= 0; i-- {
		p := arcPath[i]
		frames = append(frames, arcFrame(in, p.vw, p.vh, p.scale, arcPath[len(arcPath)-1-i].offset))
	}
	frames = append(frames, arcFrame(in, -25, 25, .05, 1))
	return Fragment{Keyframes: frames, Placement: arcPlacement(in), Loop: true, Tail: loopTail}
}

func blurIn(in Input) Fragment {
	return Fragment{Keyframes: []Keyframe{
		Frame(in.base()).WithOpacity(NearZero).WithBlur(20),
		Frame(in.base()).WithOpacity(1).WithBlur(0),
	}}
}

func bounceRandom(in Input) Fragment {
	return Fragment{
		Keyframes: []Keyframe{Frame(in.base())},
		Aux:       []AuxSpec{{Kind: AuxBounce}},
		Placement: &Placement{},
	}
}

func fadeIn(in Input) Fragment {
	return Fragment{Keyframes: []Keyframe{Frame(in.base()).WithOpacity(NearZero)}}
}

func growBounce(in Input) Fragment {
	e := Overshoot
	return Fragment{Keyframes: []Keyframe{Frame(in.base(Scale(NearZero)))}, Easing: &e}
}

// growCenterShrink pops the element up in the middle of the screen, holds,
// then shrinks it into place.
func growCenterShrink(in Input) Fragment {
	toCenter := Translate(in.X(RefWidth/2-in.Geometry.X), in.Y(RefHeight/2-in.Geometry.Y))
	return Fragment{Keyframes: []Keyframe{
		Frame(in.base(toCenter, Scale(NearZero))),
		Frame(in.base(toCenter, Scale(2.5))).At(.2),
		Frame(in.base(toCenter, Scale(2.5))).At(.8),
		Frame(in.base()),
	}}
}

func hidden(in Input) Fragment {
	return Fragment{Keyframes: []Keyframe{Frame(in.base()).WithVisibility(false)}}
}

// pendulum swings the element from a pivot one screen height above it,
// hung at the bottom centre of the screen.
func pendulum(in Input) Fragment {
	e := EaseInOut
	w, h := in.Width(), in.Height()
	return Fragment{
		Keyframes: []Keyframe{
			Frame(Transform{Rotate(90)}),
			Frame(Transform{Rotate(-90)}),
		},
		Placement: &Placement{
			Left:   in.VW(50) - w/2,
			Top:    in.VH(100) - h,
			Origin: &Point{X: w / 2, Y: -in.VH(100)},
		},
		Easing:    &e,
		Loop:      true,
		Alternate: true,
		Tail:      loopTail,
	}
}

func pixelateZoomOut(in Input) Fragment {
	return Fragment{
		Keyframes: []Keyframe{Frame(in.base(Scale(2))).WithOpacity(NearZero)},
		Aux:       []AuxSpec{{Kind: AuxPixelate, Amount: 1}},
	}
}

var pumpSteps = [][2]float64{
	{.125, 0}, {.375, .2}, {.25, .25}, {.625, .45}, {.5, .5},
	{.875, .7}, {.75, .75}, {1.125, .95}, {1, 1},
}

func pump(in Input) Fragment {
	frames := make([]Keyframe, len(pumpSteps))
	for i, s := range pumpSteps {
		frames[i] = Frame(in.base(Scale(s[0]))).At(s[1])
	}
	return Fragment{Keyframes: frames}
}

func rainFloat(in Input) Fragment {
	return Fragment{
		Keyframes: []Keyframe{Frame(in.base())},
		Aux:       []AuxSpec{{Kind: AuxRain}},
		Placement: &Placement{},
	}
}

// maxStrobes caps the flash count of long strobes.
const maxStrobes = 64

// strobe flashes the element four times a second, each flash brighter than
// the last, ending fully opaque. Past maxStrobes the flashes stretch.
func strobe(in Input) Fragment {
	frames := []Keyframe{Frame(in.base()).WithOpacity(NearZero)}
	strobes := min(in.Spec.Time*4, maxStrobes)
	if strobes <= 0 {
		return Fragment{Keyframes: append(frames, Frame(in.base()).WithOpacity(1))}
	}
	per := 1 / strobes
	opacity := 0.0
	for i := 0; float64(i) < strobes; i++ {
		opacity += per
		frames = append(frames,
			Frame(in.base()).WithOpacity(NearZero).At(opacity-per+NearZero),
			Frame(in.base()).WithOpacity(NearZero).At(opacity-per/2),
			Frame(in.base()).WithOpacity(math.Min(opacity, 1)).At(opacity-per/2+NearZero),
			Frame(in.base()).WithOpacity(math.Min(opacity, 1)).At(opacity),
		)
	}
	return Fragment{Keyframes: append(frames, Frame(in.base()).WithOpacity(1))}
}

// tv covers the element with static that fades away as it appears.
func tv(scale float64) EntryEffect {
	return func(in Input) Fragment {
		t := in.base()
		if scale != 1 {
			t = in.base(Scale(scale))
		}
		return Fragment{
			Keyframes: []Keyframe{Frame(t).WithOpacity(NearZero)},
			Aux: []AuxSpec{{
				Kind:    AuxNoise,
				Width:   in.Width(),
				Height:  in.Height(),
				ZIndex:  3,
				Prepend: true,
			}},
		}
	}
}

func zoomOut(in Input) Fragment {
	return Fragment{Keyframes: []Keyframe{Frame(in.base(Scale(4))).WithOpacity(NearZero)}}
}
