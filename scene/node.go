// Package scene is the minimal scene graph the editor manipulates: a tree of tagged
// nodes with local transforms, pickable bounds and template (prefab) membership.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/skylicht/editor/core"
)

type Kind int

const (
	KindScene Kind = iota
	KindZone
	KindContainer
	KindGameObject
	KindEntity
)

func (k Kind) String() string {
	switch k {
	case KindScene:
		return "scene"
	case KindZone:
		return "zone"
	case KindContainer:
		return "container"
	case KindGameObject:
		return "game-object"
	case KindEntity:
		return "entity"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// HasTransform reports whether nodes of this kind carry a movable transform.
func (k Kind) HasTransform() bool {
	switch k {
	case KindScene, KindZone:
		return false
	case KindContainer, KindGameObject, KindEntity:
		return true
	}
	return false
}

// CanContain reports whether a node of kind k may parent a node of kind child.
func (k Kind) CanContain(child Kind) bool {
	switch k {
	case KindScene:
		return child == KindZone
	case KindZone, KindContainer:
		return child == KindContainer || child == KindGameObject
	case KindGameObject:
		return child == KindGameObject || child == KindEntity
	case KindEntity:
		return false
	}
	return false
}

var ErrInvalidChild = errors.New("scene: invalid child kind")

// Renderable is a pickable bounding box in the owning node's local space.
type Renderable struct {
	Box    core.AABB
	Culled bool
	Hidden bool
}

type Node struct {
	ID         string
	Name       string
	Kind       Kind
	TemplateID string
	Locked     bool
	Visible    bool

	// Transform is relative to the parent.
	Transform   core.Transform
	Renderables []Renderable

	parent   *Node
	children []*Node
}

func newNode(kind Kind, name string) *Node {
	return &Node{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      kind,
		Visible:   true,
		Transform: core.NewTransform(),
	}
}

func NewScene(name string) *Node {
	return newNode(KindScene, name)
}

// AddChild creates a child of the given kind.
func (n *Node) AddChild(kind Kind, name string) (*Node, error) {
	if !n.Kind.CanContain(kind) {
		return nil, fmt.Errorf("%w: %s under %s", ErrInvalidChild, kind, n.Kind)
	}
	child := newNode(kind, name)
	child.parent = n
	n.children = append(n.children, child)
	return child, nil
}

// MustAddChild is AddChild for tree construction code that knows the kinds are valid.
func (n *Node) MustAddChild(kind Kind, name string) *Node {
	child, err := n.AddChild(kind, name)
	if err != nil {
		panic(err)
	}
	return child
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Walk visits n and its descendants depth-first. Returning false from fn skips the
// node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

func (n *Node) FindByName(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// IsDescendantOf reports whether ancestor is a strict ancestor of n.
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// IsVisible is false when n or any ancestor is hidden.
func (n *Node) IsVisible() bool {
	for p := n; p != nil; p = p.parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// World composes the transforms from the root down to n.
func (n *Node) World() core.Transform {
	if n.parent == nil {
		if n.Kind.HasTransform() {
			return n.Transform
		}
		return core.NewTransform()
	}
	parent := n.parent.World()
	if !n.Kind.HasTransform() {
		return parent
	}
	return parent.Compose(n.Transform)
}

func (n *Node) WorldMatrix() mgl32.Mat4 {
	return n.World().Matrix()
}

// ParentWorldMatrix is the space n.Transform is expressed in.
func (n *Node) ParentWorldMatrix() mgl32.Mat4 {
	if n.parent == nil {
		return mgl32.Ident4()
	}
	return n.parent.WorldMatrix()
}

// Owner is the game object a node belongs to: n itself for game objects, the
// nearest game object ancestor for entities, nil otherwise.
func (n *Node) Owner() *Node {
	switch n.Kind {
	case KindGameObject:
		return n
	case KindEntity:
		for p := n.parent; p != nil; p = p.parent {
			if p.Kind == KindGameObject {
				return p
			}
		}
		return nil
	case KindScene, KindZone, KindContainer:
		return nil
	}
	return nil
}

// TemplateRoot returns the top-most ancestor that belongs to the same template
// instance as n, or nil when n is not part of a template.
func (n *Node) TemplateRoot() *Node {
	if n.TemplateID == "" {
		return nil
	}
	root := n
	for p := n.parent; p != nil && p.TemplateID == n.TemplateID; p = p.parent {
		root = p
	}
	return root
}
