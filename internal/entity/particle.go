package entity

import (
	"mini-scene/internal/graphics/renderer"
	"mini-scene/internal/logging"
	"mini-scene/internal/resource"
	"mini-scene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultParticleRadius is the rendered and collision radius of a particle
const DefaultParticleRadius = 0.1

// Particle is a transient point that drifts with a constant velocity and
// expires once it has lived longer than its TTL.
type Particle struct {
	Transform
	Velocity  mgl32.Vec3
	Color     mgl32.Vec3
	LivedTime float64
	TTL       float64
	Radius    float32

	// AxisMask, when non-nil, restricts integration to the masked axes
	// (component-wise multiply). {1,0,0} moves along X only.
	AxisMask *mgl32.Vec3

	// Projectile particles destroy asteroids they touch.
	Projectile bool

	look appearance
}

// NewParticle creates a white particle at pos. cache may be nil for headless use.
func NewParticle(cache *resource.Cache, pos, vel mgl32.Vec3, ttl float64) *Particle {
	p := &Particle{
		Transform: NewTransform(pos),
		Velocity:  vel,
		Color:     mgl32.Vec3{1, 1, 1},
		TTL:       ttl,
		Radius:    DefaultParticleRadius,
		look:      newAppearance(cache, ParticleDescriptor),
	}
	p.Scale = mgl32.Vec3{p.Radius, p.Radius, p.Radius}
	return p
}

// Update moves the particle and reports whether it is still alive.
// The particle survives while LivedTime <= TTL.
func (p *Particle) Update(dt float64, h scene.Handle) bool {
	step := p.Velocity.Mul(float32(dt))
	if p.AxisMask != nil {
		m := *p.AxisMask
		step = mgl32.Vec3{step.X() * m.X(), step.Y() * m.Y(), step.Z() * m.Z()}
	}
	p.Position = p.Position.Add(step)
	p.LivedTime += dt

	logging.Logger().Debug("particle", "lived", p.LivedTime, "ttl", p.TTL)
	return p.LivedTime <= p.TTL
}

// Render draws the particle as a small sphere
func (p *Particle) Render(ctx renderer.RenderContext) {
	p.look.draw(ctx, p.ModelMatrix(), p.Color)
}

// BoundingSphere returns the particle's collision sphere
func (p *Particle) BoundingSphere() (mgl32.Vec3, float32) {
	return p.Position, p.Radius
}
