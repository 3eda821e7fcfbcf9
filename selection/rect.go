package selection

import "github.com/go-gl/mathgl/mgl32"

// Rect is a screen-space rectangle normalized so Min <= Max.
type Rect struct {
	Min, Max mgl32.Vec2
}

func NewRect(a, b mgl32.Vec2) Rect {
	return Rect{
		Min: mgl32.Vec2{min(a.X(), b.X()), min(a.Y(), b.Y())},
		Max: mgl32.Vec2{max(a.X(), b.X()), max(a.Y(), b.Y())},
	}
}

func (r Rect) Contains(p mgl32.Vec2) bool {
	return p.X() >= r.Min.X() && p.X() <= r.Max.X() &&
		p.Y() >= r.Min.Y() && p.Y() <= r.Max.Y()
}

func (r Rect) Width() float32  { return r.Max.X() - r.Min.X() }
func (r Rect) Height() float32 { return r.Max.Y() - r.Min.Y() }
