package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraProjectionFixedAtConstruction(t *testing.T) {
	c := NewCamera(60, 1.5, 0.1, 100)
	want := mgl32.Perspective(mgl32.DegToRad(60), 1.5, 0.1, 100)

	assert.Equal(t, want, c.Projection())

	c.Position = mgl32.Vec3{3, 4, 5}
	c.Update()
	assert.Equal(t, want, c.Projection())
	assert.Equal(t, float32(60), c.FOV())
	assert.Equal(t, float32(1.5), c.AspectRatio())
}

func TestCameraUpdateIsIdempotent(t *testing.T) {
	c := NewCamera(60, 1, 0.1, 100)
	c.Position = mgl32.Vec3{0, 5, -20}

	c.Update()
	first := c.View()
	c.Update()
	assert.Equal(t, first, c.View())

	c.Position = mgl32.Vec3{1, 5, -20}
	c.Update()
	assert.NotEqual(t, first, c.View())
	assert.Equal(t, mgl32.LookAtV(c.Position, c.Target, c.Up), c.View())
}

func TestCameraRayThroughCenter(t *testing.T) {
	c := NewCamera(60, 1, 0.1, 100)

	r := c.Ray(0, 0)
	assert.InDelta(t, 0, r.Dir.X(), 1e-3)
	assert.InDelta(t, 0, r.Dir.Y(), 1e-3)
	assert.InDelta(t, 1, r.Dir.Z(), 1e-3)

	dist, hit := r.HitSphere(mgl32.Vec3{0, 0, 0}, 1)
	require.True(t, hit)
	assert.InDelta(t, 18.9, dist, 0.05)

	_, hit = r.HitSphere(mgl32.Vec3{5, 0, 0}, 1)
	assert.False(t, hit)
}

func TestRayHitSphereBehindOrigin(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 0, 0}, Dir: mgl32.Vec3{0, 0, 1}}

	_, hit := r.HitSphere(mgl32.Vec3{0, 0, -5}, 1)
	assert.False(t, hit)

	// origin inside the sphere hits the far side
	dist, hit := r.HitSphere(mgl32.Vec3{0, 0, 0}, 2)
	require.True(t, hit)
	assert.InDelta(t, 2, dist, 1e-5)
}

func TestScreenToNDC(t *testing.T) {
	x, y := ScreenToNDC(256, 256, 512, 512)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)

	x, y = ScreenToNDC(0, 0, 512, 512)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)
}
