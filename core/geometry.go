package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-6

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

func NewPlane(point, normal mgl32.Vec3) Plane {
	return Plane{Point: point, Normal: normal.Normalize()}
}

// IntersectRay returns the point where the ray crosses the plane. It fails when the ray is
// parallel to the plane or the plane is behind the ray origin.
func (p Plane) IntersectRay(r Ray) (mgl32.Vec3, bool) {
	denom := p.Normal.Dot(r.Direction)
	if abs32(denom) < epsilon {
		return mgl32.Vec3{}, false
	}
	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}

type Triangle struct {
	A, B, C mgl32.Vec3
}

// IntersectRay is the Moller-Trumbore test; t is the distance along the ray direction.
func (tri Triangle) IntersectRay(r Ray) (point mgl32.Vec3, t float32, ok bool) {
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if abs32(det) < epsilon {
		return mgl32.Vec3{}, 0, false
	}
	inv := 1.0 / det

	s := r.Origin.Sub(tri.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return mgl32.Vec3{}, 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return mgl32.Vec3{}, 0, false
	}

	t = e2.Dot(q) * inv
	if t < 0 {
		return mgl32.Vec3{}, 0, false
	}
	return r.At(t), t, true
}

// PointOnSegment returns the point of segment [a, b] closest to p.
func PointOnSegment(p, a, b mgl32.Vec2) mgl32.Vec2 {
	seg := b.Sub(a)
	length := seg.Len()
	if length < epsilon {
		return a
	}
	v := seg.Mul(1.0 / length)

	t := v.Dot(p.Sub(a))
	if t < 0 {
		return a
	}
	if t > length {
		return b
	}
	return a.Add(v.Mul(t))
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
