package entity

import (
	"mini-scene/internal/graphics/renderer"
	"mini-scene/internal/resource"
	"mini-scene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultAsteroidBounds is the distance from the origin past which an asteroid is dropped
const DefaultAsteroidBounds = 30.0

// Asteroid drifts and spins through the scene. It is destroyed by
// projectiles and dropped when it leaves Bounds.
type Asteroid struct {
	Transform
	Velocity mgl32.Vec3
	Spin     mgl32.Vec3 // degrees per second
	Radius   float32
	Bounds   float32
	Color    mgl32.Vec3

	look appearance
}

// NewAsteroid creates an asteroid of the given radius drifting with vel
func NewAsteroid(cache *resource.Cache, pos, vel mgl32.Vec3, radius float32) *Asteroid {
	a := &Asteroid{
		Transform: NewTransform(pos),
		Velocity:  vel,
		Spin:      mgl32.Vec3{40, 25, 0},
		Radius:    radius,
		Bounds:    DefaultAsteroidBounds,
		Color:     mgl32.Vec3{0.55, 0.5, 0.45},
		look:      newAppearance(cache, AsteroidDescriptor),
	}
	a.Scale = mgl32.Vec3{radius, radius, radius}
	return a
}

// Update drifts and spins the asteroid. It expires out of bounds or when a projectile touches it.
func (a *Asteroid) Update(dt float64, h scene.Handle) bool {
	a.Position = a.Position.Add(a.Velocity.Mul(float32(dt)))
	a.Rotation = wrapDegrees(a.Rotation.Add(a.Spin.Mul(float32(dt))))

	if a.Position.Len() > a.Bounds {
		return false
	}

	shot := false
	h.Each(func(id scene.ID, e scene.Entity) bool {
		p, ok := e.(*Particle)
		if !ok || !p.Projectile {
			return true
		}
		if overlaps(a.Position, a.Radius, p.Position, p.Radius) {
			shot = true
			return false
		}
		return true
	})
	return !shot
}

// Render draws the asteroid mesh
func (a *Asteroid) Render(ctx renderer.RenderContext) {
	a.look.draw(ctx, a.ModelMatrix(), a.Color)
}

// BoundingSphere implements Hostile
func (a *Asteroid) BoundingSphere() (mgl32.Vec3, float32) {
	return a.Position, a.Radius
}
