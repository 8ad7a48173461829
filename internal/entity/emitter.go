package entity

import (
	"math"
	"math/rand/v2"

	"mini-scene/internal/graphics/renderer"
	"mini-scene/internal/resource"
	"mini-scene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// EmitterStyle selects how emitted particles move
type EmitterStyle int

const (
	// Fireworks sprays particles in every direction with random colours
	Fireworks EmitterStyle = iota
	// Rain drops blue particles straight down from a horizontal disc
	Rain
)

// Emitter is an invisible generator that spawns particles at a fixed rate
type Emitter struct {
	Transform
	Style       EmitterStyle
	Rate        float64 // particles per second
	Speed       float32
	Spread      float32 // rain disc radius
	ParticleTTL float64
	// Lifetime bounds how long the emitter runs; zero runs forever.
	Lifetime    float64

	lived   float64
	backlog float64
	rng     *rand.Rand
	cache   *resource.Cache
}

// NewEmitter creates an emitter at pos. seed makes the output reproducible.
func NewEmitter(cache *resource.Cache, style EmitterStyle, pos mgl32.Vec3, rate float64, seed uint64) *Emitter {
	return &Emitter{
		Transform:   NewTransform(pos),
		Style:       style,
		Rate:        rate,
		Speed:       4,
		Spread:      5,
		ParticleTTL: DefaultProjectileTTL,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		cache:       cache,
	}
}

// Update spawns the particles due for dt and reports false once Lifetime has passed
func (e *Emitter) Update(dt float64, h scene.Handle) bool {
	e.lived += dt
	if e.Lifetime > 0 && e.lived > e.Lifetime {
		return false
	}

	e.backlog += dt * e.Rate
	for e.backlog >= 1 {
		e.backlog--
		h.Spawn(e.emit())
	}
	return true
}

func (e *Emitter) emit() *Particle {
	switch e.Style {
	case Rain:
		a := e.rng.Float64() * 2 * math.Pi
		r := e.Spread * float32(math.Sqrt(e.rng.Float64()))
		pos := e.Position.Add(mgl32.Vec3{r * float32(math.Cos(a)), 0, r * float32(math.Sin(a))})
		p := NewParticle(e.cache, pos, mgl32.Vec3{0, -e.Speed, 0}, e.ParticleTTL)
		p.Color = mgl32.Vec3{0.4, 0.6, 1}
		return p
	default:
		p := NewParticle(e.cache, e.Position, e.randomDirection().Mul(e.Speed), e.ParticleTTL)
		p.Color = mgl32.Vec3{
			0.5 + 0.5*e.rng.Float32(),
			0.5 + 0.5*e.rng.Float32(),
			0.5 + 0.5*e.rng.Float32(),
		}
		return p
	}
}

// randomDirection samples the unit sphere uniformly
func (e *Emitter) randomDirection() mgl32.Vec3 {
	z := 2*e.rng.Float64() - 1
	a := e.rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return mgl32.Vec3{float32(r * math.Cos(a)), float32(r * math.Sin(a)), float32(z)}
}

// Render draws nothing: only the particles are visible.
func (e *Emitter) Render(ctx renderer.RenderContext) {}
