package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Positioned entities expose their world position for proximity queries.
type Positioned interface {
	WorldPosition() mgl32.Vec3
}

// Nearest re-scans the scene for the entity of type T closest to from.
// The result is only valid for the current frame; keep the ID, not the value.
func Nearest[T Positioned](h Handle, from mgl32.Vec3) (ID, T, bool) {
	var (
		bestID ID
		best   T
		found  bool
		bestD  = float32(math.MaxFloat32)
	)
	h.Each(func(id ID, e Entity) bool {
		t, ok := e.(T)
		if !ok {
			return true
		}
		d := t.WorldPosition().Sub(from).Len()
		if d < bestD {
			bestID, best, bestD, found = id, t, d, true
		}
		return true
	})
	return bestID, best, found
}
