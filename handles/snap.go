package handles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Snap rounds value to the nearest multiple of d. Ties go up. d == 0 leaves value as is.
func Snap(value, d float32) float32 {
	if d == 0 {
		return value
	}
	f := float64(value / d)
	lo := math.Floor(f)
	hi := math.Ceil(f)
	if math.Abs(lo-f) < math.Abs(hi-f) {
		return float32(lo) * d
	}
	return float32(hi) * d
}

// snapVec3 applies the XZ snap to X and Z and the Y snap to Y.
func (h *Handles) snapVec3(v mgl32.Vec3) mgl32.Vec3 {
	if h.snapXZ {
		v[0] = Snap(v[0], h.snapDistanceXZ)
		v[2] = Snap(v[2], h.snapDistanceXZ)
	}
	if h.snapY {
		v[1] = Snap(v[1], h.snapDistanceY)
	}
	return v
}
