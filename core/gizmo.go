package core

import "github.com/go-gl/mathgl/mgl32"

type GizmoType int

const (
	GizmoLine GizmoType = iota
	GizmoTriangleFill
	GizmoPolygonFill
	GizmoPolyline
	GizmoBillboard // screen-facing rect centered on Points[0], Size is width/height
)

type Color [4]float32

// WithAlpha returns c with alpha given on the 0..255 scale.
func (c Color) WithAlpha(a uint8) Color {
	c[3] = float32(a) / 255.0
	return c
}

// Gizmo is one debug primitive to be drawn without depth test.
type Gizmo struct {
	Type   GizmoType
	Color  Color
	Points []mgl32.Vec3
	Closed bool // Polyline only
	Size   mgl32.Vec2
}

// GizmoList is the per-frame buffer the handle renderer fills. The render pipeline
// consumes it; nothing here talks to a GPU.
type GizmoList struct {
	Items []Gizmo
}

func (l *GizmoList) Clear() {
	l.Items = l.Items[:0]
}

func (l *GizmoList) Len() int {
	return len(l.Items)
}

func (l *GizmoList) AddLine(a, b mgl32.Vec3, color Color) {
	l.Items = append(l.Items, Gizmo{Type: GizmoLine, Color: color, Points: []mgl32.Vec3{a, b}})
}

func (l *GizmoList) AddTriangleFill(a, b, c mgl32.Vec3, color Color) {
	l.Items = append(l.Items, Gizmo{Type: GizmoTriangleFill, Color: color, Points: []mgl32.Vec3{a, b, c}})
}

func (l *GizmoList) AddPolygonFill(points []mgl32.Vec3, color Color) {
	if len(points) < 3 {
		return
	}
	l.Items = append(l.Items, Gizmo{Type: GizmoPolygonFill, Color: color, Points: append([]mgl32.Vec3(nil), points...)})
}

func (l *GizmoList) AddPolyline(points []mgl32.Vec3, closed bool, color Color) {
	if len(points) < 2 {
		return
	}
	l.Items = append(l.Items, Gizmo{Type: GizmoPolyline, Color: color, Points: append([]mgl32.Vec3(nil), points...), Closed: closed})
}

func (l *GizmoList) AddBillboard(center mgl32.Vec3, width, height float32, color Color) {
	l.Items = append(l.Items, Gizmo{Type: GizmoBillboard, Color: color, Points: []mgl32.Vec3{center}, Size: mgl32.Vec2{width, height}})
}

// AddBox draws the 12 edges of a box.
func (l *GizmoList) AddBox(box AABB, color Color) {
	c := box.Corners()
	edges := [12][2]int{
		{0, 1}, {1, 3}, {3, 2}, {2, 0},
		{4, 5}, {5, 7}, {7, 6}, {6, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		l.AddLine(c[e[0]], c[e[1]], color)
	}
}

// Count returns how many primitives of type t are buffered.
func (l *GizmoList) Count(t GizmoType) int {
	n := 0
	for _, g := range l.Items {
		if g.Type == t {
			n++
		}
	}
	return n
}
