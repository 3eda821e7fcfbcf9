package handles

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/skylicht/editor/core"
	"github.com/skylicht/editor/projective"
)

func (r *Renderer) drawListPositions(pos mgl32.Vec3, rot mgl32.Quat) {
	h := r.handles
	right := r.camera.RightVector()

	for i, p := range h.points {
		p = core.TransformPoint(h.world, p)
		l := projective.SegmentLengthClipSpace(r.camera, p, p.Add(right))
		if l <= 0 {
			continue
		}
		size := 0.01 / l
		color := directionColor[1]
		if i == r.hoverPoint {
			color = selectionColor
		}
		r.gizmos.AddBillboard(p, size, size, color)
	}

	r.drawTranslate(pos, rot)
}

// handleSelectPoint hovers the nearest projected point while the button is up and
// moves the gizmo to it on press. Axis and plane hover win over points.
func (r *Renderer) handleSelectPoint(mouse mgl32.Vec2) {
	if r.IsHoverOnAxisOrPlane() || r.using {
		return
	}

	h := r.handles
	if !r.pressed {
		r.hoverPoint = -1
		best := float32(hoverPixels)
		for i, p := range h.points {
			sp, ok := r.toScreen(core.TransformPoint(h.world, p))
			if !ok {
				continue
			}
			if d := sp.Sub(mouse).Len(); d < best {
				best = d
				r.hoverPoint = i
			}
		}
		return
	}

	if r.hoverPoint >= 0 && r.hoverPoint < len(h.points) && r.hoverPoint != h.selectedIndex {
		h.selectedIndex = r.hoverPoint
		h.targetPosition = h.points[r.hoverPoint]
		h.position = h.targetPosition
		h.pending = false
		r.mouseDown = false
	}
}
