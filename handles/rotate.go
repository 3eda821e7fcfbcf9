package handles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/skylicht/editor/core"
)

// ringNormals returns the world normal of each rotation ring; ring i turns around axis i.
func (r *Renderer) ringNormals(rot mgl32.Quat) [3]mgl32.Vec3 {
	normals := directionUnary
	if r.handles.useLocalSpace {
		for i := range normals {
			normals[i] = rot.Rotate(normals[i]).Normalize()
		}
	}
	return normals
}

func (r *Renderer) drawRotation(pos mgl32.Vec3, rot mgl32.Quat) {
	viewVector := pos.Sub(r.camera.Position).Normalize()
	sf := r.screenFactor

	ringRotation := rot
	if !r.handles.useLocalSpace {
		ringRotation = mgl32.QuatIdent()
	}

	for axis := 0; axis < 3; axis++ {
		color := r.hoverColor(r.hoverAxis[axis], axis)
		u := directionUnary[(axis+1)%3]
		v := directionUnary[(axis+2)%3]

		var last mgl32.Vec3
		for i := 0; i <= 2*circleSegments; i++ {
			ng := math.Pi * float64(i) / circleSegments
			d := u.Mul(float32(math.Cos(ng))).Add(v.Mul(float32(math.Sin(ng))))
			d = ringRotation.Rotate(d).Normalize()

			lineColor := color
			if viewVector.Dot(d) > 1e-6 {
				// back half
				lineColor = lineColor.WithAlpha(50)
			}

			p := pos.Add(d.Mul(sf))
			if i > 0 {
				r.gizmos.AddLine(last, p, lineColor)
			}
			last = p
		}
	}

	if !r.using {
		return
	}

	normal := r.ringNormals(rot)[r.rotationAxis]
	if abs32(r.rotationAngle) <= 1e-6 {
		r.gizmos.AddLine(pos, pos.Add(r.rotationSource.Mul(sf)), selectionColor)
		return
	}

	arc := make([]mgl32.Vec3, circleSegments)
	arc[0] = pos
	for i := 1; i < circleSegments; i++ {
		ng := r.rotationAngle * float32(i-1) / float32(circleSegments-1)
		arc[i] = pos.Add(mgl32.QuatRotate(ng, normal).Rotate(r.rotationSource).Mul(sf))
	}
	r.gizmos.AddPolygonFill(arc, selectionColor.WithAlpha(50))
	r.gizmos.AddPolyline(arc, true, selectionColor)
}

func (r *Renderer) handleRotation(mouse mgl32.Vec2, pressed bool) Result {
	h := r.handles
	pos := core.TransformPoint(h.world, h.position)
	parentRotation := core.RotationFromMatrix(h.world)
	rot := parentRotation.Mul(h.rotation).Normalize()
	normals := r.ringNormals(rot)

	res := r.transition(mouse, pressed, func() bool {
		if !r.IsHoverOnAxisOrPlane() {
			r.hoverRotation(mouse, pos, normals)
		}
		r.lastRotation = h.rotation
		r.rotationAngle = 0
		return true
	})
	if res != Continuing || r.cancel {
		return res
	}

	if !r.mouseDown {
		r.hoverRotation(mouse, pos, normals)
		return Continuing
	}

	for i := 0; i < 3; i++ {
		if !r.hoverAxis[i] {
			continue
		}
		r.using = true
		r.rotationAxis = i

		ray := r.viewRay(mouse)
		out, ok := core.NewPlane(pos, normals[i]).IntersectRay(ray)
		if !ok {
			break
		}
		hit := out.Sub(pos)
		if hit.Len() == 0 {
			break
		}
		r.rotationAngle = r.angleOnPlane(hit.Normalize(), normals[i])
		if h.snapRotate {
			r.rotationAngle = Snap(r.rotationAngle, mgl32.DegToRad(h.snapRotateDeg))
		}

		// turn around the world-space ring normal expressed in parent space
		axis := parentRotation.Inverse().Rotate(normals[i]).Normalize()
		result := mgl32.QuatRotate(r.rotationAngle, axis).Mul(r.lastRotation).Normalize()
		h.setTargetRotation(result)
		break
	}
	return Continuing
}

// hoverRotation skips hits on the back half of a ring and keeps the first ring whose
// circle point is within hoverPixels of the hit.
func (r *Renderer) hoverRotation(mouse mgl32.Vec2, pos mgl32.Vec3, normals [3]mgl32.Vec3) {
	r.clearHover()
	if r.screenFactor <= 0 {
		return
	}

	ray := r.viewRay(mouse)
	for i := 0; i < 3; i++ {
		out, ok := core.NewPlane(pos, normals[i]).IntersectRay(ray)
		if !ok {
			continue
		}
		hit := out.Sub(pos)
		if hit.Len() == 0 {
			continue
		}
		hit = hit.Normalize()
		if ray.Direction.Dot(hit) > 1e-6 {
			continue
		}

		ideal := pos.Add(hit.Mul(r.screenFactor))
		p1, ok1 := r.toScreen(out)
		p2, ok2 := r.toScreen(ideal)
		if !ok1 || !ok2 {
			continue
		}
		if p1.Sub(p2).Len() < hoverPixels {
			r.rotationSource = hit
			r.rotationAngle = 0
			r.rotationAxis = i
			r.hoverAxis[i] = true
			return
		}
	}
}

// angleOnPlane is the signed angle from the drag source vector to v around normal.
func (r *Renderer) angleOnPlane(v, normal mgl32.Vec3) float32 {
	perp := r.rotationSource.Cross(normal)
	if perp.Len() > 0 {
		perp = perp.Normalize()
	}
	c := v.Dot(r.rotationSource)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	angle := float32(math.Acos(float64(c)))
	if v.Dot(perp) < 0 {
		return angle
	}
	return -angle
}
