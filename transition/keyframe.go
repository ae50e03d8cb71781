package transition

import (
	"math"
	"strings"
)

// Prop is a set of style properties a keyframe specifies.
type Prop uint8

const (
	PropTransform Prop = 1 << iota
	PropOpacity
	PropVisibility
	PropBlur
)

// NearZero stands in for zero opacity or scale. Exactly zero would make the
// element's matrix singular.
const NearZero = .0001

// Keyframe is one stop of an animation. Only the properties named in Props
// take part; the rest fall through to the element's underlying style.
type Keyframe struct {
	Transform Transform
	Opacity   float64
	Visible   bool
	Blur      float64 // px

	// Offset is meaningful only when HasOffset is set. Unset offsets are
	// filled in by ResolveOffsets.
	Offset    float64
	HasOffset bool

	Props Prop
}

// Frame returns a keyframe that sets only the transform.
func Frame(t Transform) Keyframe {
	return Keyframe{Transform: t, Props: PropTransform}
}

// WithOpacity returns k with opacity set.
func (k Keyframe) WithOpacity(o float64) Keyframe {
	k.Opacity = o
	k.Props |= PropOpacity
	return k
}

// WithBlur returns k with a blur radius in pixels.
func (k Keyframe) WithBlur(px float64) Keyframe {
	k.Blur = px
	k.Props |= PropBlur
	return k
}

// WithVisibility returns k with visibility set.
func (k Keyframe) WithVisibility(visible bool) Keyframe {
	k.Visible = visible
	k.Props |= PropVisibility
	return k
}

// At returns k pinned to offset.
func (k Keyframe) At(offset float64) Keyframe {
	k.Offset = offset
	k.HasOffset = true
	return k
}

// Has reports whether k specifies p.
func (k Keyframe) Has(p Prop) bool { return k.Props&p != 0 }

func (k Keyframe) String() string {
	var b strings.Builder
	if k.Has(PropTransform) {
		b.WriteString("transform: " + k.Transform.String())
	}
	add := func(s string) {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(s)
	}
	if k.Has(PropOpacity) {
		add("opacity: " + num(k.Opacity))
	}
	if k.Has(PropVisibility) {
		if k.Visible {
			add("visibility: visible")
		} else {
			add("visibility: hidden")
		}
	}
	if k.Has(PropBlur) {
		add("filter: blur(" + num(k.Blur) + "px)")
	}
	return b.String()
}

// ResolveOffsets returns the effective offset of every keyframe. A missing
// first offset is 0 and a missing last offset is 1. Missing interior offsets
// are spaced evenly between their explicit neighbours. Results are clamped
// to [0, 1] and never decrease.
func ResolveOffsets(frames []Keyframe) []float64 {
	n := len(frames)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	set := make([]bool, n)
	for i, k := range frames {
		if k.HasOffset {
			out[i] = k.Offset
			set[i] = true
		}
	}
	if !set[0] {
		out[0], set[0] = 0, true
	}
	if n > 1 && !set[n-1] {
		out[n-1], set[n-1] = 1, true
	}

	prev := 0
	for i := 1; i < n; i++ {
		if !set[i] {
			continue
		}
		if gap := i - prev; gap > 1 {
			for j := prev + 1; j < i; j++ {
				out[j] = out[prev] + (out[i]-out[prev])*float64(j-prev)/float64(gap)
			}
		}
		prev = i
	}

	for i := range out {
		out[i] = math.Min(1, math.Max(0, out[i]))
		if i > 0 && out[i] < out[i-1] {
			out[i] = out[i-1]
		}
	}
	return out
}

// State is a resolved style: what an element looks like at one instant.
type State struct {
	Transform Matrix
	Opacity   float64
	Visible   bool
	Blur      float64
}

// Rest is the style of an element with no transition applied.
var Rest = State{Transform: Identity, Opacity: 1, Visible: true}

// Apply returns s with every property k specifies copied in.
func (s State) Apply(k Keyframe) State {
	if k.Has(PropTransform) {
		s.Transform = k.Transform.Matrix()
	}
	if k.Has(PropOpacity) {
		s.Opacity = k.Opacity
	}
	if k.Has(PropVisibility) {
		s.Visible = k.Visible
	}
	if k.Has(PropBlur) {
		s.Blur = k.Blur
	}
	return s
}

// Sample evaluates frames at progress p. Each property is interpolated
// across only the keyframes that specify it; the underlying style fills in
// at offsets 0 and 1 when those keyframes are absent. Progress outside
// [0, 1] extrapolates the first or last interval.
func Sample(frames []Keyframe, offsets []float64, p float64, underlying State) State {
	out := underlying
	if len(frames) == 0 {
		return out
	}

	if idx, t, ok := segment(frames, offsets, PropTransform, p); ok {
		a, b := idx[0], idx[1]
		switch {
		case a < 0:
			out.Transform = underlying.Transform.Decompose().Lerp(frames[b].Transform.Matrix().Decompose(), t).Recompose()
		case b < 0:
			out.Transform = frames[a].Transform.Matrix().Decompose().Lerp(underlying.Transform.Decompose(), t).Recompose()
		default:
			out.Transform = Interpolate(frames[a].Transform, frames[b].Transform, t)
		}
	}
	if idx, t, ok := segment(frames, offsets, PropOpacity, p); ok {
		out.Opacity = lerp(pick(frames, idx[0], underlying.Opacity, func(k Keyframe) float64 { return k.Opacity }),
			pick(frames, idx[1], underlying.Opacity, func(k Keyframe) float64 { return k.Opacity }), t)
		out.Opacity = math.Min(1, math.Max(0, out.Opacity))
	}
	if idx, t, ok := segment(frames, offsets, PropBlur, p); ok {
		out.Blur = lerp(pick(frames, idx[0], underlying.Blur, func(k Keyframe) float64 { return k.Blur }),
			pick(frames, idx[1], underlying.Blur, func(k Keyframe) float64 { return k.Blur }), t)
		out.Blur = math.Max(0, out.Blur)
	}
	if idx, t, ok := segment(frames, offsets, PropVisibility, p); ok {
		va, vb := underlying.Visible, underlying.Visible
		if idx[0] >= 0 {
			va = frames[idx[0]].Visible
		}
		if idx[1] >= 0 {
			vb = frames[idx[1]].Visible
		}
		switch {
		case va == vb:
			out.Visible = va
		case t <= 0:
			out.Visible = va
		case t >= 1:
			out.Visible = vb
		default:
			out.Visible = true
		}
	}
	return out
}

func pick(frames []Keyframe, i int, fallback float64, get func(Keyframe) float64) float64 {
	if i < 0 {
		return fallback
	}
	return get(frames[i])
}

// segment finds the pair of keyframes specifying prop that bracket p and the
// local interpolation factor. An index of -1 stands for the underlying style
// at offset 0 (first slot) or 1 (second slot).
func segment(frames []Keyframe, offsets []float64, prop Prop, p float64) ([2]int, float64, bool) {
	type stop struct {
		idx    int
		offset float64
	}
	var stops []stop
	for i, k := range frames {
		if k.Has(prop) {
			stops = append(stops, stop{i, offsets[i]})
		}
	}
	if len(stops) == 0 {
		return [2]int{}, 0, false
	}
	if stops[0].offset > 0 {
		stops = append([]stop{{-1, 0}}, stops...)
	}
	if stops[len(stops)-1].offset < 1 {
		stops = append(stops, stop{-1, 1})
	}
	if len(stops) == 1 {
		return [2]int{stops[0].idx, stops[0].idx}, 0, true
	}

	last := len(stops) - 1
	if p >= stops[last].offset {
		// Step back over keyframes stacked at the final offset so a value
		// past the end extrapolates the last real interval.
		i := last - 1
		for i > 0 && stops[i].offset == stops[last].offset {
			i--
		}
		a, b := stops[i], stops[last]
		span := b.offset - a.offset
		if span == 0 || p == b.offset {
			return [2]int{a.idx, b.idx}, 1, true
		}
		return [2]int{a.idx, b.idx}, (p - a.offset) / span, true
	}

	// Ties at equal offsets resolve to the later interval so a keyframe
	// pinned at p takes effect.
	i := 0
	for j := 0; j < last; j++ {
		if p >= stops[j].offset && p < stops[j+1].offset {
			i = j
		}
	}
	a, b := stops[i], stops[i+1]
	span := b.offset - a.offset
	if span == 0 {
		return [2]int{a.idx, b.idx}, 1, true
	}
	return [2]int{a.idx, b.idx}, (p - a.offset) / span, true
}
