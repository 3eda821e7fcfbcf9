// Package projective converts between world space and screen space for a camera.
//
// Screen coordinates are in pixels relative to the viewport, origin top-left, Y down.
// Every function works for both perspective and orthographic cameras; callers never
// branch on the projection type.
package projective

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/skylicht/editor/core"
)

const clipEpsilon = 1e-7

// WorldToScreen projects p into viewport pixels. It fails when the point is behind the
// camera (clip-space W <= 0).
func WorldToScreen(cam *core.Camera, p mgl32.Vec3, width, height int) (mgl32.Vec2, bool) {
	return ProjectWithMatrix(cam.ViewProjection(), p, width, height)
}

// ProjectWithMatrix is WorldToScreen with an explicit view-projection matrix, so callers
// projecting many points compute the matrix once.
func ProjectWithMatrix(vp mgl32.Mat4, p mgl32.Vec3, width, height int) (mgl32.Vec2, bool) {
	clip := vp.Mul4x1(p.Vec4(1.0))
	if clip.W() <= 0 {
		return mgl32.Vec2{}, false
	}

	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()

	return mgl32.Vec2{
		(ndcX*0.5 + 0.5) * float32(width),
		(0.5 - ndcY*0.5) * float32(height),
	}, true
}

// ViewRay unprojects a pixel into a world-space ray starting on the near plane.
func ViewRay(cam *core.Camera, x, y float32, width, height int) core.Ray {
	ndcX := 2.0*x/float32(width) - 1.0
	ndcY := 1.0 - 2.0*y/float32(height)

	inv := cam.ViewProjection().Inv()

	near := unproject(inv, mgl32.Vec4{ndcX, ndcY, -1.0, 1.0})
	far := unproject(inv, mgl32.Vec4{ndcX, ndcY, 1.0, 1.0})

	dir := far.Sub(near)
	if dir.Len() < clipEpsilon {
		dir = cam.LookVector()
	}
	return core.NewRay(near, dir)
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	w := inv.Mul4x1(ndc)
	if w.W() != 0 {
		return w.Vec3().Mul(1.0 / w.W())
	}
	return w.Vec3()
}

// SegmentLengthClipSpace is the apparent length of [p0, p1] after projection, with the
// vertical component corrected by the aspect ratio. It is the zoom-invariant metric used
// to size handles.
func SegmentLengthClipSpace(cam *core.Camera, p0, p1 mgl32.Vec3) float32 {
	vp := cam.ViewProjection()
	a := toClip(vp, p0)
	b := toClip(vp, p1)

	seg := b.Sub(a)
	if cam.Aspect > 0 {
		seg[1] /= cam.Aspect
	}
	return seg.Len()
}

// ParallelogramArea is the clip-space area spanned by (a - o) and (b - o).
func ParallelogramArea(cam *core.Camera, o, a, b mgl32.Vec3) float32 {
	vp := cam.ViewProjection()
	po := toClip(vp, o)
	segA := toClip(vp, a).Sub(po)
	segB := toClip(vp, b).Sub(po)
	if cam.Aspect > 0 {
		segA[1] /= cam.Aspect
		segB[1] /= cam.Aspect
	}

	ortho := mgl32.Vec2{-segA.Y(), segA.X()}
	if ortho.Len() < clipEpsilon {
		return 0
	}
	ortho = ortho.Normalize()
	return segA.Len() * float32(math.Abs(float64(ortho.Dot(segB))))
}

// toClip returns the xy of the projected point after the perspective divide, skipping
// the divide when W is ~0 (point on the camera plane).
func toClip(vp mgl32.Mat4, p mgl32.Vec3) mgl32.Vec2 {
	c := vp.Mul4x1(p.Vec4(1.0))
	out := mgl32.Vec2{c.X(), c.Y()}
	if math.Abs(float64(c.W())) > clipEpsilon {
		out = out.Mul(1.0 / c.W())
	}
	return out
}
