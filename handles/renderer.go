package handles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/skylicht/editor/core"
	"github.com/skylicht/editor/projective"
)

const (
	// hoverPixels is the screen distance under which an axis, ring or point is hovered.
	hoverPixels = 10.0

	flipEpsilon       = 0.001
	axisVisibleLimit  = 0.02   // clip-space length
	planeVisibleLimit = 0.0025 // clip-space area

	quadMin = 0.1
	quadMax = 0.4

	scalePlaneMin = 0.3

	circleSegments = 64
)

var directionUnary = [3]mgl32.Vec3{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

func rgba(r, g, b, a uint8) core.Color {
	return core.Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

var (
	directionColor = [3]core.Color{
		rgba(0xAA, 0x00, 0x00, 0xFF),
		rgba(0x00, 0xAA, 0x00, 0xFF),
		rgba(0x00, 0x00, 0xAA, 0xFF),
	}
	selectionColor = rgba(0x10, 0x80, 0xFF, 0xFF)
)

type segment struct {
	start, end mgl32.Vec3
}

func (s segment) vector() mgl32.Vec3 {
	return s.end.Sub(s.start)
}

type planeQuad struct {
	points     [4]mgl32.Vec3
	dirX, dirY mgl32.Vec3
}

// Renderer draws the gizmo for the active Handles mode and turns mouse events into
// new target values.
type Renderer struct {
	handles *Handles

	enabled       bool
	allowAxisFlip bool

	camera   *core.Camera
	viewport core.Viewport
	gizmos   core.GizmoList

	drawn        Mode
	screenFactor float32

	axisFactor   [3]float32
	axisVisible  [3]bool
	planeVisible [3]bool

	hoverAxis  [3]bool
	hoverPlane [3]bool
	hoverPoint int

	translateAxis  [3]segment
	translatePlane [3]planeQuad
	scaleAxis      [3]segment
	scalePlane     [3]mgl32.Vec3

	pressed   bool // last reported button state
	mouseDown bool // drag armed
	using     bool // drag has produced a value
	cancel    bool

	lastMouse             mgl32.Vec2
	lastTranslatePosition mgl32.Vec3 // world space
	lastRotation          mgl32.Quat
	lastScale             mgl32.Vec3
	planeNormal           mgl32.Vec3

	rotationSource mgl32.Vec3
	rotationAngle  float32
	rotationAxis   int
}

// NewRenderer attaches a renderer to h. Handles.Reset cancels through it.
func NewRenderer(h *Handles) *Renderer {
	if h == nil {
		panic("handles: NewRenderer with nil Handles")
	}
	r := &Renderer{
		handles:       h,
		enabled:       true,
		allowAxisFlip: true,
		hoverPoint:    -1,
		lastRotation:  mgl32.QuatIdent(),
		lastScale:     mgl32.Vec3{1, 1, 1},
	}
	for i := 0; i < 3; i++ {
		r.axisFactor[i] = 1
		r.axisVisible[i] = true
		r.planeVisible[i] = true
	}
	h.renderer = r
	return r
}

func (r *Renderer) SetEnabled(b bool) { r.enabled = b }
func (r *Renderer) Enabled() bool     { return r.enabled }

func (r *Renderer) SetAllowAxisFlip(b bool) { r.allowAxisFlip = b }
func (r *Renderer) AllowAxisFlip() bool     { return r.allowAxisFlip }

func (r *Renderer) ScreenFactor() float32 { return r.screenFactor }

// AxisFactor is +1 or -1 depending on whether axis i is drawn flipped.
func (r *Renderer) AxisFactor(i int) float32 { return r.axisFactor[i] }

func (r *Renderer) AxisVisible(i int) bool  { return r.axisVisible[i] }
func (r *Renderer) PlaneVisible(i int) bool { return r.planeVisible[i] }

func (r *Renderer) HoverAxis(i int) bool  { return r.hoverAxis[i] }
func (r *Renderer) HoverPlane(i int) bool { return r.hoverPlane[i] }
func (r *Renderer) HoverPoint() int       { return r.hoverPoint }

// IsUsing reports an active drag.
func (r *Renderer) IsUsing() bool { return r.using }

// IsHoverOnAxisOrPlane is used by picking and camera controls to stay out of the way.
func (r *Renderer) IsHoverOnAxisOrPlane() bool {
	for i := 0; i < 3; i++ {
		if r.hoverAxis[i] || r.hoverPlane[i] {
			return true
		}
	}
	return false
}

func (r *Renderer) Gizmos() *core.GizmoList { return &r.gizmos }

// Update recomputes the gizmo geometry for this frame and fills the draw list. The
// camera and viewport are used by the OnMouse calls that follow.
func (r *Renderer) Update(cam *core.Camera, vp core.Viewport) {
	r.gizmos.Clear()
	r.camera = cam
	r.viewport = vp
	r.drawn = ModeNone

	h := r.handles
	if !r.enabled || cam == nil || h.mode == ModeNone {
		r.resetDrag()
		return
	}

	pos := core.TransformPoint(h.world, h.position)
	rot := core.RotationFromMatrix(h.world).Mul(h.rotation).Normalize()

	r.screenFactor = 0
	if l := projective.SegmentLengthClipSpace(cam, pos, pos.Add(cam.RightVector())); l > 0 {
		r.screenFactor = 0.2 / l
	}

	switch h.mode {
	case ModeTranslate:
		r.drawTranslate(pos, rot)
	case ModeRotate:
		r.drawRotation(pos, rot)
	case ModeScale:
		r.drawScale(pos, rot)
	case ModeListPositions:
		r.drawListPositions(pos, rot)
	}
	r.drawn = h.mode
}

// OnMouse feeds one mouse sample in viewport pixels. pressed is the left button state.
func (r *Renderer) OnMouse(x, y float32, pressed bool) Result {
	h := r.handles
	if !r.enabled || r.camera == nil || r.drawn == ModeNone || r.drawn != h.mode {
		r.pressed = pressed
		return Continuing
	}

	mouse := mgl32.Vec2{x, y}

	switch h.mode {
	case ModeTranslate:
		return r.handleTranslate(mouse, pressed)
	case ModeRotate:
		return r.handleRotation(mouse, pressed)
	case ModeScale:
		return r.handleScale(mouse, pressed)
	case ModeListPositions:
		res := r.handleTranslate(mouse, pressed)
		r.handleSelectPoint(mouse)
		return res
	}
	return Continuing
}

// transition applies the press/release edge shared by every mode. onDown snapshots the
// value being edited and may refuse to arm the drag.
func (r *Renderer) transition(mouse mgl32.Vec2, pressed bool, onDown func() bool) Result {
	if pressed == r.pressed {
		return Continuing
	}
	r.pressed = pressed

	if pressed {
		r.using = false
		if onDown() {
			r.mouseDown = true
			r.lastMouse = mouse
		}
		return Continuing
	}

	if r.cancel {
		r.cancel = false
		return Cancelled
	}

	committed := r.using
	r.mouseDown = false
	r.using = false
	if committed {
		r.handles.endCheck = true
		return Committed
	}
	return Continuing
}

// Cancel abandons the current drag and restores the value captured at mouse-down. If
// the button is still held, the release that follows reports Cancelled.
func (r *Renderer) Cancel() {
	h := r.handles

	if r.using {
		switch h.mode {
		case ModeTranslate, ModeListPositions:
			h.setTargetPosition(core.TransformPoint(h.worldInv, r.lastTranslatePosition))
		case ModeRotate:
			h.setTargetRotation(r.lastRotation)
		case ModeScale:
			h.setTargetScale(r.lastScale)
		}
	}

	if r.mouseDown {
		r.cancel = true
	}
	r.mouseDown = false
	r.using = false
	r.rotationAngle = 0
	r.clearHover()
}

// Skip ends the active mode as if the drag had been released.
func (r *Renderer) Skip() Result {
	if !r.using {
		return Continuing
	}
	r.pressed = false
	r.mouseDown = false
	r.using = false
	r.clearHover()
	r.hoverPoint = -1

	r.handles.End()
	r.handles.endCheck = true
	return Committed
}

func (r *Renderer) resetDrag() {
	r.mouseDown = false
	r.using = false
	r.cancel = false
	r.clearHover()
	r.hoverPoint = -1
}

func (r *Renderer) clearHover() {
	for i := 0; i < 3; i++ {
		r.hoverAxis[i] = false
		r.hoverPlane[i] = false
	}
}

func (r *Renderer) hoverColor(hover bool, i int) core.Color {
	if hover {
		return selectionColor
	}
	return directionColor[i]
}

// tripod returns the axis and plane directions for axis index i. Flip factors and
// visibility are only recomputed while no drag is in progress.
func (r *Renderer) tripod(i int, origin mgl32.Vec3, rot mgl32.Quat) (dirAxis, dirPlaneX, dirPlaneY mgl32.Vec3) {
	ix, iy := (i+1)%3, (i+2)%3
	dirAxis = rot.Rotate(directionUnary[i]).Normalize()
	dirPlaneX = rot.Rotate(directionUnary[ix]).Normalize()
	dirPlaneY = rot.Rotate(directionUnary[iy]).Normalize()

	if !r.using {
		r.axisFactor[i] = r.flipFactor(origin, dirAxis)
		r.axisFactor[ix] = r.flipFactor(origin, dirPlaneX)
		r.axisFactor[iy] = r.flipFactor(origin, dirPlaneY)
	}

	dirAxis = dirAxis.Mul(r.axisFactor[i])
	dirPlaneX = dirPlaneX.Mul(r.axisFactor[ix])
	dirPlaneY = dirPlaneY.Mul(r.axisFactor[iy])

	if !r.using {
		sf := r.screenFactor
		axisLen := projective.SegmentLengthClipSpace(r.camera, origin, origin.Add(dirAxis.Mul(sf)))
		area := projective.ParallelogramArea(r.camera, origin, origin.Add(dirPlaneX.Mul(sf)), origin.Add(dirPlaneY.Mul(sf)))
		r.axisVisible[i] = axisLen > axisVisibleLimit
		r.planeVisible[i] = area > planeVisibleLimit
	}
	return dirAxis, dirPlaneX, dirPlaneY
}

// flipFactor is -1 when the negative direction projects measurably longer.
func (r *Renderer) flipFactor(origin, dir mgl32.Vec3) float32 {
	if !r.allowAxisFlip {
		return 1
	}
	lenPlus := projective.SegmentLengthClipSpace(r.camera, origin, origin.Add(dir))
	lenMinus := projective.SegmentLengthClipSpace(r.camera, origin, origin.Sub(dir))
	if lenMinus-lenPlus > flipEpsilon {
		return -1
	}
	return 1
}

func (r *Renderer) viewRay(p mgl32.Vec2) core.Ray {
	return projective.ViewRay(r.camera, p.X(), p.Y(), r.viewport.Width, r.viewport.Height)
}

func (r *Renderer) toScreen(p mgl32.Vec3) (mgl32.Vec2, bool) {
	return projective.WorldToScreen(r.camera, p, r.viewport.Width, r.viewport.Height)
}

// hoverSegment reports whether mouse is within hoverPixels of the projected segment
// and, when minFromStart > 0, at least that far from its start.
func (r *Renderer) hoverSegment(mouse mgl32.Vec2, s segment, minFromStart float32) bool {
	start, ok := r.toScreen(s.start)
	if !ok {
		return false
	}
	end, ok := r.toScreen(s.end)
	if !ok {
		return false
	}
	onSegment := core.PointOnSegment(mouse, start, end)
	if onSegment.Sub(mouse).Len() >= hoverPixels {
		return false
	}
	if minFromStart > 0 && mouse.Sub(start).Len() <= minFromStart {
		return false
	}
	return true
}

// dragPlaneNormal picks the candidate plane that faces the camera best.
func (r *Renderer) dragPlaneNormal(candidateA, candidateB mgl32.Vec3) mgl32.Vec3 {
	look := r.camera.LookVector()
	if abs32(look.Dot(candidateA)) >= abs32(look.Dot(candidateB)) {
		return candidateA.Normalize()
	}
	return candidateB.Normalize()
}

// axisDelta intersects the rays under the drag anchor and the current mouse with the
// plane through origin and returns the movement projected on axis.
func (r *Renderer) axisDelta(mouse mgl32.Vec2, origin, axis, normal mgl32.Vec3) (mgl32.Vec3, bool) {
	plane := core.NewPlane(origin, normal)
	out0, ok := plane.IntersectRay(r.viewRay(r.lastMouse))
	if !ok {
		return mgl32.Vec3{}, false
	}
	out1, ok := plane.IntersectRay(r.viewRay(mouse))
	if !ok {
		return mgl32.Vec3{}, false
	}
	axis = axis.Normalize()
	h0 := axis.Dot(out0)
	h1 := axis.Dot(out1)
	return axis.Mul(h1 - h0), true
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
