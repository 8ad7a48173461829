package entity

import (
	"mini-scene/internal/graphics/renderer"
	"mini-scene/internal/resource"
	"mini-scene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Cube is a box that spins forever. Thin scaled cubes double as axis markers.
type Cube struct {
	Transform
	AngularVelocity mgl32.Vec3 // degrees per second
	Color           mgl32.Vec3

	look appearance
}

// NewCube creates a unit cube at pos. cache may be nil for headless use.
func NewCube(cache *resource.Cache, pos mgl32.Vec3, color mgl32.Vec3) *Cube {
	return &Cube{
		Transform: NewTransform(pos),
		Color:     color,
		look:      newAppearance(cache, CubeDescriptor),
	}
}

// NewAxes returns three thin cubes along +X (red), +Y (green) and +Z (blue)
func NewAxes(cache *resource.Cache, length float32) []*Cube {
	const thickness = 0.05
	half := length / 2
	x := NewCube(cache, mgl32.Vec3{half, 0, 0}, mgl32.Vec3{1, 0, 0})
	x.Scale = mgl32.Vec3{length, thickness, thickness}
	y := NewCube(cache, mgl32.Vec3{0, half, 0}, mgl32.Vec3{0, 1, 0})
	y.Scale = mgl32.Vec3{thickness, length, thickness}
	z := NewCube(cache, mgl32.Vec3{0, 0, half}, mgl32.Vec3{0, 0, 1})
	z.Scale = mgl32.Vec3{thickness, thickness, length}
	return []*Cube{x, y, z}
}

// Update advances the rotation. A cube never expires.
func (c *Cube) Update(dt float64, h scene.Handle) bool {
	c.Rotation = wrapDegrees(c.Rotation.Add(c.AngularVelocity.Mul(float32(dt))))
	return true
}

// Render draws the cube in its colour
func (c *Cube) Render(ctx renderer.RenderContext) {
	c.look.draw(ctx, c.ModelMatrix(), c.Color)
}
