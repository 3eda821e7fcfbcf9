package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type ProjectionType int

const (
	Perspective ProjectionType = iota
	Orthographic
)

// Viewport is the pixel rectangle the camera renders into.
type Viewport struct {
	X, Y          int
	Width, Height int
}

func NewViewport(width, height int) Viewport {
	return Viewport{Width: width, Height: height}
}

// Camera describes a view and a projection. Handles and picking only read it.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	Projection ProjectionType
	Fov        float32 // vertical, degrees
	Aspect     float32
	Near       float32
	Far        float32

	// OrthoHeight is the visible height in world units for Orthographic cameras.
	OrthoHeight float32
}

func NewPerspectiveCamera(position, target mgl32.Vec3, fov, aspect float32) *Camera {
	return &Camera{
		Position:   position,
		Target:     target,
		Up:         mgl32.Vec3{0, 1, 0},
		Projection: Perspective,
		Fov:        fov,
		Aspect:     aspect,
		Near:       0.1,
		Far:        1000.0,
	}
}

func NewOrthographicCamera(position, target mgl32.Vec3, height, aspect float32) *Camera {
	return &Camera{
		Position:    position,
		Target:      target,
		Up:          mgl32.Vec3{0, 1, 0},
		Projection:  Orthographic,
		Aspect:      aspect,
		Near:        0.1,
		Far:         1000.0,
		OrthoHeight: height,
	}
}

func (c *Camera) LookVector() mgl32.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

func (c *Camera) RightVector() mgl32.Vec3 {
	return c.LookVector().Cross(c.Up).Normalize()
}

// UpVector returns the up direction orthogonal to the look vector.
func (c *Camera) UpVector() mgl32.Vec3 {
	return c.RightVector().Cross(c.LookVector()).Normalize()
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	if c.Projection == Orthographic {
		h := c.OrthoHeight * 0.5
		w := h * c.Aspect
		return mgl32.Ortho(-w, w, -h, h, c.Near, c.Far)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Frustum holds 6 planes (Left, Right, Bottom, Top, Near, Far) in Ax + By + Cz + D = 0
// form with normals pointing inside.
type Frustum [6]mgl32.Vec4

func (c *Camera) Frustum() Frustum {
	return ExtractFrustum(c.ViewProjection())
}

// ExtractFrustum extracts the 6 planes of the frustum from the view-projection matrix.
func ExtractFrustum(vp mgl32.Mat4) Frustum {
	var planes Frustum

	row := func(r int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(r, 0), vp.At(r, 1), vp.At(r, 2), vp.At(r, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	planes[0] = r3.Add(r0) // Left
	planes[1] = r3.Sub(r0) // Right
	planes[2] = r3.Add(r1) // Bottom
	planes[3] = r3.Sub(r1) // Top
	planes[4] = r3.Add(r2) // Near (OpenGL-style -1..1)
	planes[5] = r3.Sub(r2) // Far

	for i := 0; i < 6; i++ {
		length := float32(math.Sqrt(float64(planes[i][0]*planes[i][0] + planes[i][1]*planes[i][1] + planes[i][2]*planes[i][2])))
		if length > 0 {
			planes[i] = planes[i].Mul(1.0 / length)
		}
	}

	return planes
}

// IntersectsAABB reports whether the box is at least partially inside the frustum.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for i := 0; i < 6; i++ {
		plane := f[i]

		// most-inside corner; if it is behind the plane the whole box is
		var p mgl32.Vec3
		for k := 0; k < 3; k++ {
			if plane[k] > 0 {
				p[k] = box.Max[k]
			} else {
				p[k] = box.Min[k]
			}
		}

		if plane[0]*p[0]+plane[1]*p[1]+plane[2]*p[2]+plane[3] < 0 {
			return false
		}
	}
	return true
}
