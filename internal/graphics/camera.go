package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera holds a projection fixed at construction and a view matrix
// recomputed by Update from Position, Target and Up.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	fov         float32
	aspectRatio float32
	near        float32
	far         float32

	projection mgl32.Mat4
	view       mgl32.Mat4
}

// NewCamera creates a camera with a perspective projection.
// fov is the vertical field of view in degrees.
func NewCamera(fov, aspectRatio, near, far float32) *Camera {
	c := &Camera{
		Position:    mgl32.Vec3{0, 0, -20},
		Target:      mgl32.Vec3{0, 0, 0},
		Up:          mgl32.Vec3{0, 1, 0},
		fov:         fov,
		aspectRatio: aspectRatio,
		near:        near,
		far:         far,
		projection:  mgl32.Perspective(mgl32.DegToRad(fov), aspectRatio, near, far),
	}
	c.Update()
	return c
}

// Update recalculates the view matrix from the current position, target and up vector.
func (c *Camera) Update() {
	c.view = mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) View() mgl32.Mat4       { return c.view }
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }
func (c *Camera) FOV() float32           { return c.fov }
func (c *Camera) AspectRatio() float32   { return c.aspectRatio }

// Ray returns the world-space ray through the given normalized device
// coordinates (x, y in [-1, 1], y up).
func (c *Camera) Ray(ndcX, ndcY float32) Ray {
	inv := c.projection.Mul4(c.view).Inv()
	near := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
	nearPt := near.Vec3().Mul(1 / near.W())
	farPt := far.Vec3().Mul(1 / far.W())
	return Ray{Origin: nearPt, Dir: farPt.Sub(nearPt).Normalize()}
}

// ScreenToNDC converts window pixel coordinates (origin top-left) to NDC.
func ScreenToNDC(x, y float64, width, height int) (float32, float32) {
	nx := float32(2*x/float64(width) - 1)
	ny := float32(1 - 2*y/float64(height))
	return nx, ny
}

// Ray is a half-line used for picking.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3 // normalized
}

// HitSphere returns the distance along the ray to the first intersection
// with the sphere, if any lies in front of the origin.
func (r Ray) HitSphere(center mgl32.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
