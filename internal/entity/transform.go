// Package entity holds the concrete scene entities: particles, the player
// duck, asteroids, emitters and shape actors.
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform places an entity in the world. Rotation is Euler angles in degrees.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// NewTransform returns an unrotated, unit-scale transform at pos
func NewTransform(pos mgl32.Vec3) Transform {
	return Transform{Position: pos, Scale: mgl32.Vec3{1, 1, 1}}
}

// ModelMatrix composes T * Rz * Ry * Rx * S
func (t Transform) ModelMatrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation.Z())))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation.Y())))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation.X())))
	return m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// WorldPosition returns the translation component
func (t Transform) WorldPosition() mgl32.Vec3 {
	return t.Position
}

// wrapDegrees keeps accumulated angles in [0, 360) for any finite input
func wrapDegrees(v mgl32.Vec3) mgl32.Vec3 {
	for i := range 3 {
		a := math.Mod(float64(v[i]), 360)
		if a < 0 {
			a += 360
		}
		// a tiny negative remainder rounds up to 360 in float32
		if float32(a) >= 360 {
			a = 0
		}
		v[i] = float32(a)
	}
	return v
}

// overlaps tests two bounding spheres
func overlaps(a mgl32.Vec3, ra float32, b mgl32.Vec3, rb float32) bool {
	return a.Sub(b).Len() < ra+rb
}
