package selection

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/skylicht/editor/core"
	"github.com/skylicht/editor/projective"
	"github.com/skylicht/editor/scene"
)

const (
	// DefaultMaxDistanceSQ bounds click picking, squared world units.
	DefaultMaxDistanceSQ = 500.0 * 500.0

	dragDeadzone = 2.0
)

// GizmoState is the part of the handle renderer picking must stay out of the way of.
type GizmoState interface {
	IsHoverOnAxisOrPlane() bool
	IsUsing() bool
}

// HistoryRecorder brackets selection changes so undo sees them as one step.
type HistoryRecorder interface {
	BeginSelect(ids []string)
	EndSelect(ids []string)
}

// Selecting turns mouse input into selection changes: a click raycasts the candidates,
// a drag beyond the deadzone selects by rectangle.
type Selecting struct {
	system    *SelectObjectSystem
	selection *Selection
	gizmo     GizmoState
	history   HistoryRecorder

	MaxDistanceSQ float32

	pressed    bool
	mouseDown  bool
	dragging   bool
	suppressed bool
	downPos    mgl32.Vec2
	mousePos   mgl32.Vec2
}

// NewSelecting wires picking to its collaborators. gizmo and history may be nil.
func NewSelecting(system *SelectObjectSystem, sel *Selection, gizmo GizmoState, history HistoryRecorder) *Selecting {
	if system == nil || sel == nil {
		panic("selection: NewSelecting needs a system and a selection")
	}
	return &Selecting{
		system:        system,
		selection:     sel,
		gizmo:         gizmo,
		history:       history,
		MaxDistanceSQ: DefaultMaxDistanceSQ,
	}
}

func (s *Selecting) gizmoBusy() bool {
	return s.gizmo != nil && (s.gizmo.IsHoverOnAxisOrPlane() || s.gizmo.IsUsing())
}

// OnMouse feeds one mouse sample in viewport pixels and reports whether the selection
// changed.
func (s *Selecting) OnMouse(x, y float32, pressed bool) bool {
	s.mousePos = mgl32.Vec2{x, y}
	changed := false

	if pressed != s.pressed {
		if pressed {
			s.mouseDown = true
			s.dragging = false
			s.suppressed = s.gizmoBusy()
			s.downPos = s.mousePos
		} else if s.mouseDown {
			if !s.suppressed && !s.gizmoBusy() {
				if s.dragging {
					changed = s.applyMultiSelect(NewRect(s.downPos, s.mousePos))
				} else {
					changed = s.applySingleSelect(x, y)
				}
			}
			s.mouseDown = false
			s.dragging = false
			s.suppressed = false
		}
	}
	s.pressed = pressed

	if s.mouseDown && !s.suppressed && !s.dragging {
		if s.mousePos.Sub(s.downPos).Len() > dragDeadzone {
			s.dragging = true
		}
	}
	return changed
}

// DragRect is the rectangle being dragged, if any.
func (s *Selecting) DragRect() (Rect, bool) {
	if !s.dragging || s.suppressed {
		return Rect{}, false
	}
	return NewRect(s.downPos, s.mousePos), true
}

func (s *Selecting) beginSelect() {
	if s.history != nil {
		s.history.BeginSelect(s.selection.IDs())
	}
}

func (s *Selecting) endSelect() {
	if s.history != nil {
		s.history.EndSelect(s.selection.IDs())
	}
}

// applySingleSelect keeps the selection when clicking a selected node, replaces it
// when clicking another one and clears it when clicking empty space.
func (s *Selecting) applySingleSelect(x, y float32) bool {
	before := s.selection.Version()
	node := s.DoSingleSelect(x, y)

	s.beginSelect()
	if node == nil {
		s.selection.Clear()
	} else if !s.selection.Contains(node) {
		s.selection.Clear()
		s.selection.Add(node)
	}
	s.endSelect()

	return s.selection.Version() != before
}

func (s *Selecting) applyMultiSelect(rect Rect) bool {
	before := s.selection.Version()
	nodes := s.DoMultiSelect(rect)

	s.beginSelect()
	if len(nodes) == 0 {
		s.selection.Clear()
	} else {
		s.selection.Set(nodes)
	}
	s.endSelect()

	return s.selection.Version() != before
}

// DoSingleSelect returns the node under the pixel, or nil.
func (s *Selecting) DoSingleSelect(x, y float32) *scene.Node {
	cam := s.system.Camera()
	if cam == nil {
		return nil
	}
	vp := s.system.Viewport()
	ray := projective.ViewRay(cam, x, y, vp.Width, vp.Height)

	c, ok := s.PickRay(ray, s.MaxDistanceSQ)
	if !ok {
		return nil
	}
	return resolve(c)
}

// PickRay returns the unlocked candidate whose box surface is hit nearest to the ray
// origin, closer than sqrt(maxDistanceSQ).
func (s *Selecting) PickRay(ray core.Ray, maxDistanceSQ float32) (Candidate, bool) {
	best := maxDistanceSQ
	var result Candidate
	found := false

	for _, c := range s.system.Candidates() {
		if c.Locked {
			continue
		}
		if _, ok := c.Box.IntersectRay(ray); !ok {
			continue
		}
		for _, tri := range c.Box.Triangles() {
			point, _, ok := tri.IntersectRay(ray)
			if !ok {
				continue
			}
			d := point.Sub(ray.Origin)
			if distSQ := d.Dot(d); distSQ < best {
				best = distSQ
				result = c
				found = true
			}
		}
	}
	return result, found
}

// DoMultiSelect returns the nodes whose projected box center and at least one
// projected corner fall inside rect.
func (s *Selecting) DoMultiSelect(rect Rect) []*scene.Node {
	cam := s.system.Camera()
	if cam == nil {
		return nil
	}
	vp := s.system.Viewport()
	viewProj := cam.ViewProjection()

	inside := func(p mgl32.Vec3) bool {
		sp, ok := projective.ProjectWithMatrix(viewProj, p, vp.Width, vp.Height)
		return ok && rect.Contains(sp)
	}

	var nodes []*scene.Node
	seen := make(map[*scene.Node]bool)
	for _, c := range s.system.Candidates() {
		if c.Locked || !inside(c.Box.Center()) {
			continue
		}
		corner := false
		for _, p := range c.Box.Corners() {
			if inside(p) {
				corner = true
				break
			}
		}
		if !corner {
			continue
		}

		n := resolve(c)
		if seen[n] {
			continue
		}
		seen[n] = true
		nodes = append(nodes, n)
	}
	return nodes
}

// resolve maps a picked candidate to the node that gets selected: the root of its
// template instance when it belongs to one, otherwise the node the box came from.
func resolve(c Candidate) *scene.Node {
	if root := c.Object.TemplateRoot(); root != nil {
		return root
	}
	n := c.Node()
	if root := n.TemplateRoot(); root != nil {
		return root
	}
	return n
}
