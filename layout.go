package ultraspin

import (
	"math"

	"github.com/justindarc/ultraspin/probe"
	"github.com/justindarc/ultraspin/theme"
	"github.com/justindarc/ultraspin/transition"
)

// Box is a layout box in screen pixels.
type Box struct {
	Left, Top     float64
	Width, Height float64
}

// layoutImage places an image of natural size centred on the reference
// point (x, y). anchor is the size the centring uses; Flash files centre on
// their world extent rather than their stage.
func layoutImage(x, y float64, natural, anchor probe.Size, screen transition.Screen) Box {
	sx, sy := screen.ScaleX(), screen.ScaleY()
	return Box{
		Left:   x*sx - anchor.Width*sx/2,
		Top:    y*sy - anchor.Height*sy/2,
		Width:  natural.Width * sx,
		Height: natural.Height * sy,
	}
}

// fitAspectRatio keeps width and derives the height from aspect.
func fitAspectRatio(width, aspect float64) (float64, float64) {
	if aspect <= 0 {
		return width, 0
	}
	return width, math.Ceil(width / aspect)
}

// Border is one frame drawn around a video.
type Border struct {
	Size    float64
	Color   Color
	Rounded bool
}

// videoBorders reads the three border rings a video may have. A ring is
// present only when both its size and color are set; bshape rounds them
// all.
func videoBorders(attrs theme.Attributes) []Border {
	rounded := attrs.Has("bshape")
	var out []Border
	for _, suffix := range []string{"", "2", "3"} {
		size, ok := attrs.Float("bsize" + suffix)
		if !ok || !attrs.Has("bcolor"+suffix) || size <= 0 {
			continue
		}
		out = append(out, Border{
			Size:    size,
			Color:   HexColor(theme.ParseColor(attrs["bcolor"+suffix])),
			Rounded: rounded,
		})
	}
	return out
}

// totalBorder is the combined thickness of every border ring, set or not.
func totalBorder(attrs theme.Attributes) float64 {
	return attrs.FloatOr("bsize", 0) + attrs.FloatOr("bsize2", 0) + attrs.FloatOr("bsize3", 0)
}

// layoutVideo sizes the video box from the theme's w and h, less the
// borders, and centres it on x, y. Unless forceaspect is set the height is
// refitted to the video's own aspect ratio.
func layoutVideo(attrs theme.Attributes, video probe.Size, screen transition.Screen) Box {
	sx, sy := screen.ScaleX(), screen.ScaleY()
	border := totalBorder(attrs)
	w := attrs.FloatOr("w", 0)*sx - border
	h := attrs.FloatOr("h", 0)*sy - border
	if forceAspect(attrs) == "none" {
		w, h = fitAspectRatio(w, video.Aspect())
	}
	return Box{
		Left:   attrs.FloatOr("x", 0)*sx - w/2,
		Top:    attrs.FloatOr("y", 0)*sy - h/2,
		Width:  w,
		Height: h,
	}
}

// forceAspect returns the forceaspect attribute, "none" when unset.
func forceAspect(attrs theme.Attributes) string {
	if s := attrs.String("forceaspect"); s != "" {
		return s
	}
	return "none"
}

// layoutOverlay places video overlay artwork of natural size relative to
// the video box, shifted by overlayoffsetx/y reference units.
func layoutOverlay(attrs theme.Attributes, natural probe.Size, video Box, screen transition.Screen) Box {
	sx, sy := screen.ScaleX(), screen.ScaleY()
	w := natural.Width * sx
	h := natural.Height * sy
	x := attrs.FloatOr("x", 0) + attrs.FloatOr("overlayoffsetx", 0)
	y := attrs.FloatOr("y", 0) + attrs.FloatOr("overlayoffsety", 0)
	return Box{
		Left:   x*sx - w/2 - video.Left,
		Top:    y*sy - h/2 - video.Top,
		Width:  w,
		Height: h,
	}
}

// truthy reports whether a theme flag attribute is switched on.
func truthy(attrs theme.Attributes, name string) bool {
	v, ok := attrs[name]
	if !ok {
		return false
	}
	if f, ok := v.Float(); ok {
		return f != 0
	}
	switch v.String() {
	case "", "false", "no":
		return false
	}
	return true
}

// geometry converts a placed box back to the reference-unit geometry the
// transition compiler expects: centre from the theme, size from the box.
func geometry(attrs theme.Attributes, box Box, screen transition.Screen) transition.Geometry {
	g := transition.Geometry{
		X:        attrs.FloatOr("x", 0),
		Y:        attrs.FloatOr("y", 0),
		Rotation: attrs.FloatOr("r", 0),
	}
	if sx := screen.ScaleX(); sx > 0 {
		g.W = box.Width / sx
	}
	if sy := screen.ScaleY(); sy > 0 {
		g.H = box.Height / sy
	}
	return g
}
