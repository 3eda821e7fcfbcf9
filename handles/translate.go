package handles

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/skylicht/editor/core"
)

var translateQuad = [4]mgl32.Vec2{
	{quadMin, quadMin},
	{quadMin, quadMax},
	{quadMax, quadMax},
	{quadMax, quadMin},
}

func (r *Renderer) drawTranslate(pos mgl32.Vec3, rot mgl32.Quat) {
	if !r.handles.useLocalSpace {
		rot = mgl32.QuatIdent()
	}
	sf := r.screenFactor

	for i := 0; i < 3; i++ {
		dirAxis, dirPlaneX, dirPlaneY := r.tripod(i, pos, rot)

		r.translateAxis[i] = segment{start: pos, end: pos.Add(dirAxis.Mul(sf))}

		if r.axisVisible[i] {
			color := r.hoverColor(r.hoverAxis[i], i)
			r.gizmos.AddLine(r.translateAxis[i].start, r.translateAxis[i].end, color)

			// arrow head
			look := r.camera.Position.Sub(pos).Normalize()
			side := dirAxis.Cross(look)
			if side.Len() > 0 {
				side = side.Normalize()
			}
			a := r.translateAxis[i].end
			m := a.Sub(dirAxis.Mul(sf * 0.1))
			r.gizmos.AddTriangleFill(a, m.Add(side.Mul(sf*0.05)), m.Sub(side.Mul(sf*0.05)), color)
		}

		quad := planeQuad{dirX: dirPlaneX, dirY: dirPlaneY}
		for j, q := range translateQuad {
			quad.points[j] = pos.Add(dirPlaneX.Mul(q.X()).Add(dirPlaneY.Mul(q.Y())).Mul(sf))
		}
		r.translatePlane[i] = quad

		if r.planeVisible[i] {
			color := r.hoverColor(r.hoverPlane[i], i)
			r.gizmos.AddPolyline(quad.points[:], true, color)
			r.gizmos.AddPolygonFill(quad.points[:], color.WithAlpha(50))
		}
	}

	if r.using {
		r.drawTranslateGhost(pos)
	}
}

// drawTranslateGhost links the drag anchor to the live position, with one leg per
// moved world axis.
func (r *Renderer) drawTranslateGhost(pos mgl32.Vec3) {
	last := r.lastTranslatePosition
	r.gizmos.AddLine(last, pos, rgba(100, 100, 100, 255))

	d := pos.Sub(last)
	legColors := [3]core.Color{
		rgba(50, 0, 0, 100),
		rgba(0, 50, 0, 100),
		rgba(0, 0, 50, 100),
	}
	for k := 0; k < 3; k++ {
		if abs32(d[k]) <= 0.001 {
			continue
		}
		p := last
		p[k] += d[k]
		r.gizmos.AddLine(last, p, legColors[k])
		r.gizmos.AddLine(pos, p, legColors[k])
	}
}

func (r *Renderer) handleTranslate(mouse mgl32.Vec2, pressed bool) Result {
	res := r.transition(mouse, pressed, func() bool {
		if !r.IsHoverOnAxisOrPlane() {
			r.hoverTranslate(mouse)
		}
		r.lastTranslatePosition = core.TransformPoint(r.handles.world, r.handles.position)
		return true
	})
	if res != Continuing || r.cancel {
		return res
	}

	if !r.mouseDown {
		r.hoverTranslate(mouse)
		return Continuing
	}
	r.dragTranslate(mouse)
	return Continuing
}

// hoverTranslate tests planes before the axis for each index and keeps the first hit.
func (r *Renderer) hoverTranslate(mouse mgl32.Vec2) {
	r.clearHover()
	if r.screenFactor <= 0 {
		return
	}

	ray := r.viewRay(mouse)
	for i := 0; i < 3; i++ {
		if r.planeVisible[i] {
			axis := r.translateAxis[i]
			plane := core.NewPlane(axis.start, axis.vector())
			if out, ok := plane.IntersectRay(ray); ok {
				v := out.Sub(axis.start).Mul(1.0 / r.screenFactor)
				dx := r.translatePlane[i].dirX.Dot(v)
				dy := r.translatePlane[i].dirY.Dot(v)
				if dx >= quadMin && dx <= quadMax && dy >= quadMin && dy <= quadMax {
					r.hoverPlane[i] = true
					return
				}
			}
		}

		if r.axisVisible[i] && r.hoverSegment(mouse, r.translateAxis[i], hoverPixels) {
			r.hoverAxis[i] = true
			return
		}
	}
}

func (r *Renderer) dragTranslate(mouse mgl32.Vec2) {
	for i := 0; i < 3; i++ {
		axis := r.translateAxis[i]

		if r.hoverAxis[i] {
			if !r.using {
				r.planeNormal = r.dragPlaneNormal(r.translatePlane[i].dirX, r.translatePlane[i].dirY)
			}
			r.using = true

			if offset, ok := r.axisDelta(mouse, axis.start, axis.vector(), r.planeNormal); ok {
				r.setTranslateResult(r.lastTranslatePosition.Add(offset))
			}
			return
		}

		if r.hoverPlane[i] {
			r.using = true

			plane := core.NewPlane(axis.start, axis.vector())
			out0, ok0 := plane.IntersectRay(r.viewRay(r.lastMouse))
			out1, ok1 := plane.IntersectRay(r.viewRay(mouse))
			if ok0 && ok1 {
				r.setTranslateResult(r.lastTranslatePosition.Add(out1.Sub(out0)))
			}
			return
		}
	}
}

func (r *Renderer) setTranslateResult(world mgl32.Vec3) {
	h := r.handles
	local := core.TransformPoint(h.worldInv, world)
	h.setTargetPosition(h.snapVec3(local))
}
