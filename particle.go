package ultraspin

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultDrops is the pool size used when EmitterConfig.MaxParticles is unset.
const defaultDrops = 64

// EmitterConfig describes a shower of image drops.
type EmitterConfig struct {
	// MaxParticles is the pool size. Spawns past it are skipped.
	MaxParticles int
	// EmitRate is drops per second while the emitter is on.
	EmitRate float64
	// Lifetime is how long a drop lives, in seconds.
	Lifetime Range
	// Speed is the launch speed in pixels per second.
	Speed Range
	// Angle is the launch heading in radians; pi/2 is straight down.
	Angle Range
	// Scale is the drop's scale at birth.
	Scale Range
	// Shrink is the fraction of the birth scale a drop has lost when it
	// dies. Zero keeps the size constant.
	Shrink float64
	// Gravity accelerates every drop, in pixels per second squared.
	Gravity Vec2
	// Spawn is the area, in the emitter node's box space, drops are born
	// in. A zero Rect spawns at the box's top-left corner.
	Spawn Rect
	// Image is drawn for each drop, centred on its position. nil draws
	// a 1x1 white pixel.
	Image *ebiten.Image
}

type particle struct {
	pos, vel Vec2
	age      float64
	life     float64
	scale    float64
}

// look returns the drop's current scale and alpha. Alpha fades out
// linearly over the drop's life.
func (p *particle) look(shrink float64) (scale, alpha float64) {
	t := p.age / p.life
	return p.scale * (1 - shrink*t), 1 - t
}

// ParticleEmitter keeps a fixed pool of drops. Live drops occupy the front
// of the pool; a dead drop is replaced by the last live one.
type ParticleEmitter struct {
	config EmitterConfig
	drops  []particle
	alive  int
	owed   float64
	on     bool
}

func newParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	n := cfg.MaxParticles
	if n <= 0 {
		n = defaultDrops
	}
	return &ParticleEmitter{config: cfg, drops: make([]particle, n)}
}

// Start turns emission on.
func (e *ParticleEmitter) Start() { e.on = true }

// Stop turns emission off. Drops already falling live out their lifetime.
func (e *ParticleEmitter) Stop() { e.on = false }

// IsActive reports whether new drops are being spawned.
func (e *ParticleEmitter) IsActive() bool { return e.on }

// AliveCount returns the number of drops still falling.
func (e *ParticleEmitter) AliveCount() int { return e.alive }

func (e *ParticleEmitter) update(dt float64) {
	g := e.config.Gravity
	for i := 0; i < e.alive; {
		p := &e.drops[i]
		p.age += dt
		if p.age >= p.life {
			e.alive--
			e.drops[i] = e.drops[e.alive]
			continue
		}
		p.vel.X += g.X * dt
		p.vel.Y += g.Y * dt
		p.pos.X += p.vel.X * dt
		p.pos.Y += p.vel.Y * dt
		i++
	}

	if !e.on || e.config.EmitRate <= 0 {
		return
	}
	e.owed += e.config.EmitRate * dt
	for ; e.owed >= 1; e.owed-- {
		if e.alive < len(e.drops) {
			e.spawn()
		}
	}
}

// spawn fills the first free slot.
func (e *ParticleEmitter) spawn() {
	cfg := &e.config
	heading, speed := cfg.Angle.Random(), cfg.Speed.Random()
	life := cfg.Lifetime.Random()
	if life <= 0 {
		life = 1
	}
	e.drops[e.alive] = particle{
		pos: Vec2{
			X: Range{cfg.Spawn.X, cfg.Spawn.X + cfg.Spawn.Width}.Random(),
			Y: Range{cfg.Spawn.Y, cfg.Spawn.Y + cfg.Spawn.Height}.Random(),
		},
		vel:   Vec2{X: math.Cos(heading) * speed, Y: math.Sin(heading) * speed},
		life:  life,
		scale: cfg.Scale.Random(),
	}
	e.alive++
}

// Random returns a uniform value in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}
