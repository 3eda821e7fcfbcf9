// Package handles holds the transform gizmo state and its interaction handler.
//
// A Handles value is the per-session "what is being manipulated" state. Callers that
// own a position, rotation or scale call the matching *Handle method once per frame
// and apply the returned value. The Renderer draws the active gizmo into a
// core.GizmoList, hit-tests it against the mouse and runs the drag state machine that
// writes new target values back into Handles.
package handles

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Mode int

const (
	ModeNone Mode = iota
	ModeTranslate
	ModeRotate
	ModeScale
	ModeListPositions
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeTranslate:
		return "translate"
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	case ModeListPositions:
		return "list-positions"
	}
	return "unknown"
}

// Result is what a mouse event did to the current drag.
type Result int

const (
	Continuing Result = iota
	Committed
	Cancelled
)

func (r Result) String() string {
	switch r {
	case Continuing:
		return "continuing"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

type Handles struct {
	mode Mode

	// position and rotation locate the gizmo in parent space; scale is the live value
	// for ModeScale.
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	targetPosition mgl32.Vec3
	targetRotation mgl32.Quat
	targetScale    mgl32.Vec3

	// pending is set when the renderer wrote a target the caller has not picked up yet.
	pending bool
	// revert is the mode whose restored target survives a Reset until the next
	// *Handle call of that mode picks it up.
	revert Mode

	points        []mgl32.Vec3
	selectedIndex int

	world    mgl32.Mat4
	worldInv mgl32.Mat4

	useLocalSpace bool

	snapXZ         bool
	snapY          bool
	snapRotate     bool
	snapDistanceXZ float32
	snapDistanceY  float32
	snapRotateDeg  float32

	endCheck bool

	renderer *Renderer
}

func New() *Handles {
	return &Handles{
		rotation:       mgl32.QuatIdent(),
		targetRotation: mgl32.QuatIdent(),
		scale:          mgl32.Vec3{1, 1, 1},
		targetScale:    mgl32.Vec3{1, 1, 1},
		world:          mgl32.Ident4(),
		worldInv:       mgl32.Ident4(),
		useLocalSpace:  true,
		snapDistanceXZ: 1.0,
		snapDistanceY:  1.0,
		snapRotateDeg:  15.0,
	}
}

func (h *Handles) Mode() Mode { return h.mode }

func (h *Handles) IsHandlePosition() bool     { return h.mode == ModeTranslate }
func (h *Handles) IsHandleRotation() bool     { return h.mode == ModeRotate }
func (h *Handles) IsHandleScale() bool        { return h.mode == ModeScale }
func (h *Handles) IsHandleListPosition() bool { return h.mode == ModeListPositions }

// dragging reports whether the attached renderer is mid-drag.
func (h *Handles) dragging() bool {
	return h.renderer != nil && h.renderer.using
}

// PositionHandle makes translate the active mode and returns the value the caller
// should apply to its position this frame.
func (h *Handles) PositionHandle(current mgl32.Vec3, localRotation mgl32.Quat) mgl32.Vec3 {
	if h.mode != ModeTranslate {
		if !h.reverted(ModeTranslate) {
			h.targetPosition = current
		}
		h.mode = ModeTranslate
		h.pending = false
	} else if h.pending || h.dragging() {
		h.pending = false
	} else {
		h.targetPosition = current
	}

	h.position = h.targetPosition
	h.rotation = localRotation
	return h.targetPosition
}

// RotateHandle makes rotate the active mode; position is the pivot.
func (h *Handles) RotateHandle(position mgl32.Vec3, rotation mgl32.Quat) mgl32.Quat {
	if h.mode != ModeRotate {
		if !h.reverted(ModeRotate) {
			h.targetRotation = rotation
		}
		h.mode = ModeRotate
		h.pending = false
	} else if h.pending || h.dragging() {
		h.pending = false
	} else {
		h.targetRotation = rotation
	}

	h.position = position
	h.rotation = h.targetRotation
	return h.targetRotation
}

// ScaleHandle makes scale the active mode. The gizmo is always drawn along the local
// axes given by rotation.
func (h *Handles) ScaleHandle(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Vec3 {
	if h.mode != ModeScale {
		if !h.reverted(ModeScale) {
			h.targetScale = scale
		}
		h.mode = ModeScale
		h.pending = false
	} else if h.pending || h.dragging() {
		h.pending = false
	} else {
		h.targetScale = scale
	}

	h.position = position
	h.rotation = rotation
	h.scale = h.targetScale
	return h.targetScale
}

// ListPositionHandle manipulates points[selectedIndex] in place. It returns false and
// leaves the mode untouched when the index is out of range. Clicking another point
// changes SelectedIndex; pass that value back on the next call.
func (h *Handles) ListPositionHandle(points []mgl32.Vec3, selectedIndex int, localRotation mgl32.Quat) bool {
	if selectedIndex < 0 || selectedIndex >= len(points) {
		return false
	}

	if h.mode != ModeListPositions || selectedIndex != h.selectedIndex {
		if h.reverted(ModeListPositions) && selectedIndex == h.selectedIndex {
			points[selectedIndex] = h.targetPosition
		} else {
			h.targetPosition = points[selectedIndex]
		}
		h.mode = ModeListPositions
		h.selectedIndex = selectedIndex
		h.pending = false
	} else if h.pending || h.dragging() {
		h.pending = false
		points[selectedIndex] = h.targetPosition
	} else {
		h.targetPosition = points[selectedIndex]
	}

	h.points = points
	h.position = h.targetPosition
	h.rotation = localRotation
	return true
}

// SelectedIndex is the point the list gizmo is attached to. The renderer changes it
// when the user clicks another point.
func (h *Handles) SelectedIndex() int { return h.selectedIndex }

func (h *Handles) Points() []mgl32.Vec3 { return h.points }

// End clears the active mode. Call it whenever the selection changes.
func (h *Handles) End() {
	h.mode = ModeNone
	h.pending = false
	h.revert = ModeNone
}

// Reset cancels any drag in progress, then ends. When a drag was reverted, the next
// *Handle call for the same mode returns the pre-drag value instead of the caller's
// current one, so the caller restores it through the usual per-frame contract.
func (h *Handles) Reset() {
	mode := h.mode
	restored := false
	if h.renderer != nil && h.renderer.using {
		h.renderer.Cancel()
		restored = h.pending
	}
	h.End()
	if restored {
		h.revert = mode
	}
}

// reverted reports whether Reset left a restored target for m. It clears the mark.
func (h *Handles) reverted(m Mode) bool {
	ok := h.revert == m
	h.revert = ModeNone
	return ok
}

// EndCheck returns true once per completed drag.
func (h *Handles) EndCheck() bool {
	ok := h.endCheck
	h.endCheck = false
	return ok
}

func (h *Handles) TargetPosition() mgl32.Vec3 { return h.targetPosition }
func (h *Handles) TargetRotation() mgl32.Quat { return h.targetRotation }
func (h *Handles) TargetScale() mgl32.Vec3    { return h.targetScale }

func (h *Handles) setTargetPosition(p mgl32.Vec3) {
	h.targetPosition = p
	h.pending = true
}

func (h *Handles) setTargetRotation(q mgl32.Quat) {
	h.targetRotation = q
	h.pending = true
}

func (h *Handles) setTargetScale(s mgl32.Vec3) {
	h.targetScale = s
	h.pending = true
}

// SetWorld sets the parent transform of the manipulated value. Drags are computed in
// world space and written back in parent space.
func (h *Handles) SetWorld(parentWorld mgl32.Mat4) {
	h.world = parentWorld
	if parentWorld.Det() == 0 {
		h.worldInv = mgl32.Ident4()
		return
	}
	h.worldInv = parentWorld.Inv()
}

func (h *Handles) World() mgl32.Mat4    { return h.world }
func (h *Handles) WorldInv() mgl32.Mat4 { return h.worldInv }

func (h *Handles) UseLocalSpace() bool         { return h.useLocalSpace }
func (h *Handles) SetUseLocalSpace(b bool)     { h.useLocalSpace = b }
func (h *Handles) IsSnapXZ() bool              { return h.snapXZ }
func (h *Handles) SetSnapXZ(b bool)            { h.snapXZ = b }
func (h *Handles) IsSnapY() bool               { return h.snapY }
func (h *Handles) SetSnapY(b bool)             { h.snapY = b }
func (h *Handles) IsSnapRotate() bool          { return h.snapRotate }
func (h *Handles) SetSnapRotate(b bool)        { h.snapRotate = b }
func (h *Handles) SnapDistanceXZ() float32     { return h.snapDistanceXZ }
func (h *Handles) SetSnapDistanceXZ(d float32) { h.snapDistanceXZ = d }
func (h *Handles) SnapDistanceY() float32      { return h.snapDistanceY }
func (h *Handles) SetSnapDistanceY(d float32)  { h.snapDistanceY = d }
func (h *Handles) SnapRotateDeg() float32      { return h.snapRotateDeg }
func (h *Handles) SetSnapRotateDeg(d float32)  { h.snapRotateDeg = d }

// Renderer returns the interaction handler attached by NewRenderer, or nil.
func (h *Handles) Renderer() *Renderer { return h.renderer }
