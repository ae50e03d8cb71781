package transition

import "time"

// AuxKind names an auxiliary effect that runs beside the keyframe animation.
type AuxKind uint8

const (
	AuxBounce AuxKind = iota
	AuxBounce3D
	AuxFlag
	AuxNoise
	AuxPixelate
	AuxRain
	AuxSlicer
)

var auxNames = [...]string{
	AuxBounce:   "bounce",
	AuxBounce3D: "bounce3d",
	AuxFlag:     "flag",
	AuxNoise:    "noise",
	AuxPixelate: "pixelate",
	AuxRain:     "rain",
	AuxSlicer:   "slicer",
}

func (k AuxKind) String() string {
	if int(k) < len(auxNames) {
		return auxNames[k]
	}
	return "aux"
}

// NoiseFade is how long static noise takes to fade out at the end of a
// transition.
const NoiseFade = 2 * time.Second

// AuxSpec describes one auxiliary effect. Delay and Duration are filled in
// by the compiler from the primary timing.
type AuxSpec struct {
	Kind     AuxKind
	Delay    time.Duration
	Duration time.Duration
	// Easing is the curve effects that track the keyframes progress on.
	Easing Easing

	// Width and Height size generated content (noise), in pixels.
	Width, Height float64
	// Amount is the starting pixelation strength in [0, 1].
	Amount float64
	// Slices is the stripe count for the slicer; 0 picks its default.
	Slices int
	// Simple selects the slicer's plain stripe mode.
	Simple bool
	// ZIndex and Prepend control where generated content is attached.
	ZIndex  int
	Prepend bool
}
