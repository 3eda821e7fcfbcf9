package selection

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/skylicht/editor/core"
	"github.com/skylicht/editor/scene"
)

// Candidate is one pickable world box gathered for the current frame.
type Candidate struct {
	Box core.AABB

	// Object is the owning game object; Entity is the sub-entity carrying the box, or
	// nil when the box sits on the object itself.
	Object *scene.Node
	Entity *scene.Node
	Locked bool
}

// Node is the node the box was declared on.
func (c Candidate) Node() *scene.Node {
	if c.Entity != nil {
		return c.Entity
	}
	return c.Object
}

type SelectedBox struct {
	Object *scene.Node
	Box    core.AABB
}

var selectedBoxColor = core.Color{1, 1, 1, 180.0 / 255.0}

// SelectObjectSystem rebuilds the pick candidates once per rendered frame for the
// camera it is bound to.
type SelectObjectSystem struct {
	camera   *core.Camera
	viewport core.Viewport

	candidates []Candidate
	selected   []SelectedBox
	skipped    bool
}

func NewSelectObjectSystem() *SelectObjectSystem {
	return &SelectObjectSystem{}
}

// Bind sets the camera and viewport picking runs against.
func (s *SelectObjectSystem) Bind(cam *core.Camera, vp core.Viewport) {
	s.camera = cam
	s.viewport = vp
}

func (s *SelectObjectSystem) Camera() *core.Camera    { return s.camera }
func (s *SelectObjectSystem) Viewport() core.Viewport { return s.viewport }

// Skipped reports whether the last Update ran for another camera and kept the
// previous candidates.
func (s *SelectObjectSystem) Skipped() bool { return s.skipped }

// Update gathers visible, non-culled renderables under root for camera cam. Calls for
// a camera other than the bound one are ignored.
func (s *SelectObjectSystem) Update(root *scene.Node, cam *core.Camera, sel *Selection) {
	if cam == nil || cam != s.camera {
		s.skipped = true
		return
	}
	s.skipped = false
	s.candidates = s.candidates[:0]
	s.selected = s.selected[:0]

	if root == nil {
		return
	}

	frustum := cam.Frustum()
	boxIndex := make(map[*scene.Node]int)

	root.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if len(n.Renderables) == 0 {
			return true
		}

		owner := n.Owner()
		if owner == nil {
			return true
		}
		var entity *scene.Node
		if n.Kind == scene.KindEntity {
			entity = n
		}

		world := n.WorldMatrix()
		for _, r := range n.Renderables {
			if r.Culled || r.Hidden {
				continue
			}
			box := r.Box.Transform(world)
			if !frustum.IntersectsAABB(box) {
				continue
			}

			s.candidates = append(s.candidates, Candidate{
				Box:    box,
				Object: owner,
				Entity: entity,
				Locked: owner.Locked || (entity != nil && entity.Locked),
			})

			if sel == nil {
				continue
			}
			target := selectedAncestor(sel, n)
			if target == nil {
				continue
			}
			if i, ok := boxIndex[target]; ok {
				s.selected[i].Box = s.selected[i].Box.Merge(box)
			} else {
				boxIndex[target] = len(s.selected)
				s.selected = append(s.selected, SelectedBox{Object: target, Box: box})
			}
		}
		return true
	})
}

// selectedAncestor returns the nearest selected node at or above n.
func selectedAncestor(sel *Selection, n *scene.Node) *scene.Node {
	for p := n; p != nil; p = p.Parent() {
		if sel.Contains(p) {
			return p
		}
	}
	return nil
}

func (s *SelectObjectSystem) Candidates() []Candidate { return s.candidates }

// SelectedBoxes are the merged world boxes of every selected node, descendants
// included.
func (s *SelectObjectSystem) SelectedBoxes() []SelectedBox { return s.selected }

// TransformBox returns the merged box of obj. When obj has no candidate this frame it
// returns a unit box around its world position and false.
func (s *SelectObjectSystem) TransformBox(obj *scene.Node) (core.AABB, bool) {
	for _, b := range s.selected {
		if b.Object == obj {
			return b.Box, true
		}
	}

	found := false
	var box core.AABB
	for _, c := range s.candidates {
		n := c.Node()
		if n != obj && !n.IsDescendantOf(obj) {
			continue
		}
		if !found {
			box = c.Box
			found = true
			continue
		}
		box = box.Merge(c.Box)
	}
	if found {
		return box, true
	}
	return core.NewAABB(obj.World().Position, mgl32.Vec3{0.5, 0.5, 0.5}), false
}

// DrawSelection outlines every selected box.
func (s *SelectObjectSystem) DrawSelection(list *core.GizmoList) {
	for _, b := range s.selected {
		list.AddBox(b.Box, selectedBoxColor)
	}
}
