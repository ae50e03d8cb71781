package ultraspin

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is the interface for visual effects applied to a node's rendered output.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to accommodate
	// the effect (e.g. blur radius). Zero means no padding.
	Padding() int
}

// --- Kage shader sources ---
// All shaders use //kage:unit pixels as required by Ebitengine.

const pixelateShaderSrc = `//kage:unit pixels
package main

var Size float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	p := src - origin
	block := floor(p/Size)*Size + Size/2
	block = min(block, size-0.5)
	return imageSrc0At(origin + block)
}
`

// --- Lazy shader compilation (no sync.Once, the scene is single-threaded) ---

var pixelateShader *ebiten.Shader

func ensurePixelateShader() *ebiten.Shader {
	if pixelateShader == nil {
		s, err := ebiten.NewShader([]byte(pixelateShaderSrc))
		if err != nil {
			panic("ultraspin: failed to compile pixelate shader: " + err.Error())
		}
		pixelateShader = s
	}
	return pixelateShader
}

// --- BlurFilter ---

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// No Kage shader needed: bilinear filtering during DrawImage does the work.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius (in pixels).
func NewBlurFilter(radius int) *BlurFilter {
	if radius < 0 {
		radius = 0
	}
	return &BlurFilter{Radius: radius}
}

// Apply renders a Kawase blur from src into dst using iterative downscale/upscale.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	if f.Radius <= 0 {
		f.imgOp.GeoM.Reset()
		f.imgOp.ColorScale.Reset()
		f.imgOp.Filter = ebiten.FilterNearest
		dst.DrawImage(src, &f.imgOp)
		return
	}

	// Number of iterations: log2(radius), minimum 1.
	passes := int(math.Ceil(math.Log2(float64(f.Radius))))
	if passes < 1 {
		passes = 1
	}

	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	// Deallocate excess temp images from a previous larger radius.
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	op := &f.imgOp

	// Downscale passes: each half-size
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		drawScaled(f.temps[i], current, op)
		current = f.temps[i]
	}

	// Upscale passes: draw each back up
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		drawScaled(f.temps[i], current, op)
		current = f.temps[i]
	}

	drawScaled(dst, current, op)
}

// drawScaled draws src stretched over dst with bilinear filtering.
func drawScaled(dst, src *ebiten.Image, op *ebiten.DrawImageOptions) {
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sw := float64(src.Bounds().Dx())
	sh := float64(src.Bounds().Dy())
	tw := float64(dst.Bounds().Dx())
	th := float64(dst.Bounds().Dy())
	op.GeoM.Scale(tw/sw, th/sh)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// Padding returns the blur radius; the offscreen buffer is expanded to avoid clipping.
func (f *BlurFilter) Padding() int { return f.Radius }

// --- PixelateFilter ---

// DefaultPixelateSize is the block size, in pixels, at full strength.
const DefaultPixelateSize = 32

// PixelateFilter replaces each block of pixels with the colour at its
// centre. Amount in [0, 1] scales the block size from 1 pixel up to
// MaxSize.
type PixelateFilter struct {
	Amount   float64
	MaxSize  float64
	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
	imgOp    ebiten.DrawImageOptions
}

// NewPixelateFilter creates a pixelate filter at the given strength.
func NewPixelateFilter(amount float64) *PixelateFilter {
	return &PixelateFilter{
		Amount:   amount,
		MaxSize:  DefaultPixelateSize,
		uniforms: make(map[string]any, 1),
	}
}

// BlockSize returns the current block edge length in pixels.
func (f *PixelateFilter) BlockSize() float64 {
	return 1 + clamp01(f.Amount)*(f.MaxSize-1)
}

// Apply renders the pixelated source into dst.
func (f *PixelateFilter) Apply(src, dst *ebiten.Image) {
	size := f.BlockSize()
	if size <= 1 {
		f.imgOp.GeoM.Reset()
		f.imgOp.ColorScale.Reset()
		dst.DrawImage(src, &f.imgOp)
		return
	}
	shader := ensurePixelateShader()
	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	f.uniforms["Size"] = float32(size)
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// Padding returns 0; pixelation doesn't expand the image bounds.
func (f *PixelateFilter) Padding() int { return 0 }

// --- Filter helpers ---

// nodeFilters returns the filters to run over n: a blur sized by n.Blur
// followed by n.Filters.
func nodeFilters(n *Node) []Filter {
	radius := int(math.Round(n.Blur))
	if radius <= 0 {
		return n.Filters
	}
	if n.blurFilter == nil {
		n.blurFilter = NewBlurFilter(radius)
	}
	n.blurFilter.Radius = radius
	out := make([]Filter, 0, len(n.Filters)+1)
	out = append(out, n.blurFilter)
	return append(out, n.Filters...)
}

// hasFilters reports whether n renders through the offscreen filter path.
func hasFilters(n *Node) bool {
	return len(n.Filters) > 0 || math.Round(n.Blur) > 0
}

// filterChainPadding returns the cumulative padding required by a slice of filters.
func filterChainPadding(filters []Filter) int {
	pad := 0
	for _, f := range filters {
		pad += f.Padding()
	}
	return pad
}

// applyFilters runs a filter chain on src, ping-ponging between two images.
// Returns the image containing the final result (either src or the provided
// scratch image). The caller must handle releasing scratch if pooled.
func applyFilters(filters []Filter, src *ebiten.Image, pool *renderTexturePool) *ebiten.Image {
	if len(filters) == 0 {
		return src
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	current := src
	var scratch *ebiten.Image

	for _, f := range filters {
		if scratch == nil {
			scratch = pool.Acquire(w, h)
		} else {
			scratch.Clear()
		}
		f.Apply(current, scratch)
		current, scratch = scratch, current
	}

	// scratch now holds the other buffer; release it unless it is src.
	if scratch != nil && scratch != src {
		pool.Release(scratch)
	}
	return current
}
