package transition

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/justindarc/ultraspin/logging"
)

// ErrUnsupported reports a start/type pair that produces no keyframes.
var ErrUnsupported = errors.New("transition: unsupported")

// DefaultChasePause is the idle gap between the legs of a chase.
const DefaultChasePause = 2 * time.Second

// Option configures a Compiler.
type Option func(*Compiler)

// WithChasePause overrides DefaultChasePause.
func WithChasePause(d time.Duration) Option {
	return func(c *Compiler) {
		if d >= 0 {
			c.chasePause = d
		}
	}
}

// WithLogger sets the logger for skipped passes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) { c.logger = logging.NewComponentLogger(logger, "transition") }
}

// Compiler turns transition specs into plans. The zero value is not usable;
// call NewCompiler. A Compiler is safe for concurrent Compile calls once
// registration is finished.
type Compiler struct {
	entries    map[string]EntryEffect
	exits      map[string]ExitEffect
	chasePause time.Duration
	logger     *slog.Logger
}

// NewCompiler returns a compiler with the built-in effects registered.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		entries:    defaultEntryEffects(),
		exits:      defaultExitEffects(),
		chasePause: DefaultChasePause,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterEntry adds or replaces a centre/none effect.
func (c *Compiler) RegisterEntry(name string, fn EntryEffect) {
	if fn == nil {
		panic("transition: nil entry effect " + name)
	}
	c.entries[name] = fn
}

// RegisterExit adds or replaces an exit effect.
func (c *Compiler) RegisterExit(name string, fn ExitEffect) {
	if fn == nil {
		panic("transition: nil exit effect " + name)
	}
	c.exits[name] = fn
}

// EntryEffects lists the registered centre/none effect names, sorted.
func (c *Compiler) EntryEffects() []string {
	return sortedKeys(c.entries)
}

// ExitEffects lists the registered exit effect names, sorted.
func (c *Compiler) ExitEffects() []string {
	return sortedKeys(c.exits)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Compile builds the plan for spec applied to a component at geom with
// resting transform base, on screen. It returns ErrUnsupported when
// neither pass yields a keyframe.
func (c *Compiler) Compile(spec Spec, geom Geometry, base Transform, screen Screen) (Plan, error) {
	spec.Delay = clampSeconds(spec.Delay)
	spec.Time = clampSeconds(spec.Time)
	in := Input{Spec: spec, Geometry: geom, Screen: screen, Base: base}
	d := &Draft{
		Timing: Timing{
			Delay:        seconds(spec.Delay),
			Duration:     seconds(spec.Time),
			Easing:       Linear,
			Iterations:   1,
			FillForwards: true,
		},
		ChasePause: c.chasePause,
	}
	var frag Fragment

	switch spec.Start {
	case StartTop, StartRight, StartBottom, StartLeft:
		k, s, _ := edgeEntry(in)
		d.Keyframes = append(d.Keyframes, k)
		d.start, d.hasStart = s, true
	case StartCenter, StartNone:
		if fn, ok := c.entries[spec.Type]; ok {
			frag = fn(in)
			d.Keyframes = append(d.Keyframes, frag.Keyframes...)
			if frag.Easing != nil {
				d.Timing.Easing = *frag.Easing
			}
			d.Timing.Duration += frag.Tail
			if frag.Loop {
				d.Timing.Iterations = math.Inf(1)
			}
			if frag.Alternate {
				d.Timing.Direction = Alternate
			}
		} else if _, isExit := c.exits[spec.Type]; !isExit {
			c.logger.Debug("unknown entry effect", logging.String(logging.FieldEffect, spec.Type))
		}
	default:
		c.logger.Debug("unknown transition start", logging.String("start", spec.Start))
	}

	if fn, ok := c.exits[spec.Type]; ok {
		fn(in, d)
	} else if _, isEntry := c.entries[spec.Type]; !isEntry {
		c.logger.Debug("unknown exit effect", logging.String(logging.FieldEffect, spec.Type))
	}

	switch len(d.Keyframes) {
	case 0:
		return Plan{}, fmt.Errorf("%w: start=%q type=%q", ErrUnsupported, spec.Start, spec.Type)
	case 1:
		d.Keyframes = append(d.Keyframes, landing(in, d.Keyframes[0]))
	}

	plan := Plan{
		Start:     spec.Start,
		Type:      spec.Type,
		Keyframes: d.Keyframes,
		Offsets:   ResolveOffsets(d.Keyframes),
		Timing:    d.Timing,
		Placement: frag.Placement,
	}
	for _, aux := range frag.Aux {
		plan.Aux = append(plan.Aux, scheduleAux(aux, d.Timing))
	}
	return plan, nil
}

// landing is the resting keyframe added after a lone starting keyframe. It
// restores whichever property the start touched.
func landing(in Input, first Keyframe) Keyframe {
	k := Frame(in.base(Scale(1)))
	switch {
	case first.Has(PropOpacity):
		return k.WithOpacity(1)
	case first.Has(PropVisibility):
		return k.WithVisibility(true)
	}
	return k
}

// scheduleAux binds an auxiliary effect to the primary timing. Noise fades
// out linearly over the last NoiseFade of the primary animation instead,
// and a random bounce never ends.
func scheduleAux(aux AuxSpec, t Timing) AuxSpec {
	aux.Delay = t.Delay
	aux.Duration = t.Duration
	aux.Easing = t.Easing
	switch aux.Kind {
	case AuxNoise:
		fade := min(NoiseFade, t.Duration)
		aux.Delay = t.Delay + t.Duration - fade
		aux.Duration = fade
		aux.Easing = Linear
	case AuxBounce:
		aux.Duration = 0
	}
	return aux
}

// MaxSeconds bounds authored delays and durations. Larger values, and
// infinities, are theme errors.
const MaxSeconds = 3600

// clampSeconds maps an authored time onto [0, MaxSeconds]. NaN and negative
// values become 0, as does +Inf.
func clampSeconds(s float64) float64 {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 1) {
		return 0
	}
	return min(s, MaxSeconds)
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(clampSeconds(s) * float64(time.Second)))
}
