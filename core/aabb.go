package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func NewAABB(center, halfExtents mgl32.Vec3) AABB {
	return AABB{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) Extent() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the 8 box vertices; bit 0 selects X max, bit 1 Y max, bit 2 Z max.
func (b AABB) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}
}

var boxTriangleIndices = [12][3]int{
	{0, 2, 1}, {1, 2, 3}, // -Z
	{4, 5, 6}, {5, 7, 6}, // +Z
	{0, 4, 2}, {2, 4, 6}, // -X
	{1, 3, 5}, {3, 7, 5}, // +X
	{0, 1, 4}, {1, 5, 4}, // -Y
	{2, 6, 3}, {3, 6, 7}, // +Y
}

// Triangles decomposes the box surface into 12 triangles.
func (b AABB) Triangles() [12]Triangle {
	c := b.Corners()
	var tris [12]Triangle
	for i, idx := range boxTriangleIndices {
		tris[i] = Triangle{A: c[idx[0]], B: c[idx[1]], C: c[idx[2]]}
	}
	return tris
}

// Transform returns the world box enclosing b after applying m.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	inf := float32(math.Inf(1))
	out := AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
	for _, c := range b.Corners() {
		out = out.AddPoint(TransformPoint(m, c))
	}
	return out
}

func (b AABB) AddPoint(p mgl32.Vec3) AABB {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
	return b
}

func (b AABB) Merge(other AABB) AABB {
	return b.AddPoint(other.Min).AddPoint(other.Max)
}

// IntersectRay is a slab test. It returns the entry distance (0 when the origin is inside).
func (b AABB) IntersectRay(r Ray) (float32, bool) {
	tMin := float32(0)
	tMax := float32(math.MaxFloat32)

	for k := 0; k < 3; k++ {
		if abs32(r.Direction[k]) < epsilon {
			if r.Origin[k] < b.Min[k] || r.Origin[k] > b.Max[k] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / r.Direction[k]
		t1 := (b.Min[k] - r.Origin[k]) * inv
		t2 := (b.Max[k] - r.Origin[k]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
