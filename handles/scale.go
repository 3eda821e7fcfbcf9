package handles

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/skylicht/editor/core"
)

func (r *Renderer) drawScale(pos mgl32.Vec3, rot mgl32.Quat) {
	h := r.handles
	sf := r.screenFactor

	side := r.camera.UpVector().Cross(r.camera.LookVector())
	if side.Len() > 0 {
		side = side.Normalize()
	}
	sideQuad := side.Mul(sf * 0.05)
	upQuad := r.camera.UpVector().Mul(sf * 0.05)

	for i := 0; i < 3; i++ {
		dirAxis, dirPlaneX, dirPlaneY := r.tripod(i, pos, rot)

		r.scaleAxis[i] = segment{start: pos, end: pos.Add(dirAxis.Mul(sf))}
		r.scalePlane[i] = pos
		r.translatePlane[i].dirX = dirPlaneX
		r.translatePlane[i].dirY = dirPlaneY

		if !r.axisVisible[i] {
			continue
		}

		stretch := float32(1)
		if r.using && r.lastScale[i] != 0 {
			stretch = h.scale[i] / r.lastScale[i]
		}
		end := pos.Add(dirAxis.Mul(sf * stretch))

		color := r.hoverColor(r.hoverAxis[i], i)
		r.gizmos.AddLine(pos, end, color)
		r.gizmos.AddPolygonFill([]mgl32.Vec3{
			end.Sub(sideQuad).Add(upQuad),
			end.Add(sideQuad).Add(upQuad),
			end.Add(sideQuad).Sub(upQuad),
			end.Sub(sideQuad).Sub(upQuad),
		}, color)

		r.scalePlane[i] = pos.Add(dirAxis.Mul(sf * scalePlaneMin))
	}

	fill := selectionColor.WithAlpha(50)
	if r.hoverPlane[0] {
		fill = selectionColor
	}
	r.gizmos.AddPolygonFill(r.scalePlane[:], fill)
	r.gizmos.AddPolyline(r.scalePlane[:], true, selectionColor)
}

func (r *Renderer) handleScale(mouse mgl32.Vec2, pressed bool) Result {
	h := r.handles

	res := r.transition(mouse, pressed, func() bool {
		s := h.scale
		if s.X() == 0 || s.Y() == 0 || s.Z() == 0 {
			return false
		}
		if !r.IsHoverOnAxisOrPlane() {
			r.hoverScale(mouse)
		}
		r.lastScale = s
		return true
	})
	if res != Continuing || r.cancel {
		return res
	}

	if !r.mouseDown {
		r.hoverScale(mouse)
		return Continuing
	}

	if r.hoverPlane[0] {
		r.dragUniformScale(mouse)
		return Continuing
	}

	for i := 0; i < 3; i++ {
		if !r.hoverAxis[i] {
			continue
		}
		if !r.using {
			r.planeNormal = r.dragPlaneNormal(r.translatePlane[i].dirX, r.translatePlane[i].dirY)
		}
		r.using = true

		axis := r.scaleAxis[i].vector()
		if axis.Len() == 0 {
			break
		}
		axis = axis.Normalize()

		offset, ok := r.axisDelta(mouse, r.scaleAxis[i].start, axis, r.planeNormal)
		if !ok {
			break
		}

		from := axis.Mul(r.screenFactor)
		axisLength := from.Len()
		if axisLength <= 1e-6 {
			break
		}

		ratio := from.Add(offset).Len() / axisLength
		if axis.Dot(offset)+axisLength < 0 {
			ratio = -ratio
		}

		s := mgl32.Vec3{1, 1, 1}
		s[i] = ratio
		h.setTargetScale(mulVec3(r.lastScale, s))
		break
	}
	return Continuing
}

// dragUniformScale maps the dominant screen delta to a uniform ratio.
func (r *Renderer) dragUniformScale(mouse mgl32.Vec2) {
	dx := mouse.X() - r.lastMouse.X()
	dy := r.lastMouse.Y() - mouse.Y()

	drag := dx
	if abs32(dy) > abs32(dx) {
		drag = dy
	}

	d := float32(r.viewport.Width)
	if h := float32(r.viewport.Height); h > d {
		d = h
	}
	d *= 0.2
	if d <= 0 {
		return
	}

	r.using = true
	r.handles.setTargetScale(r.lastScale.Mul(1 + drag/d))
}

func (r *Renderer) hoverScale(mouse mgl32.Vec2) {
	r.clearHover()
	if r.screenFactor <= 0 {
		return
	}

	tri := core.Triangle{A: r.scalePlane[0], B: r.scalePlane[1], C: r.scalePlane[2]}
	if _, _, ok := tri.IntersectRay(r.viewRay(mouse)); ok {
		r.hoverPlane[0] = true
		return
	}

	for i := 0; i < 3; i++ {
		if r.axisVisible[i] && r.hoverSegment(mouse, r.scaleAxis[i], 0) {
			r.hoverAxis[i] = true
			return
		}
	}
}

func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
