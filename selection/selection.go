// Package selection keeps the set of selected scene nodes and implements object
// picking: per-frame pick candidates, click raycasts and rectangle selection.
package selection

import (
	"github.com/skylicht/editor/scene"
)

// Selection is an ordered set of nodes keyed by node ID. The last added node is the
// current one for single-target tools. Version changes on every mutation so views
// can poll for changes.
type Selection struct {
	items   []*scene.Node
	index   map[string]int
	version uint64
}

func New() *Selection {
	return &Selection{index: make(map[string]int)}
}

// Add appends n if it is not selected yet.
func (s *Selection) Add(n *scene.Node) bool {
	if n == nil {
		return false
	}
	if _, ok := s.index[n.ID]; ok {
		return false
	}
	s.index[n.ID] = len(s.items)
	s.items = append(s.items, n)
	s.version++
	return true
}

func (s *Selection) Remove(n *scene.Node) bool {
	if n == nil {
		return false
	}
	i, ok := s.index[n.ID]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, n.ID)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID] = j
	}
	s.version++
	return true
}

func (s *Selection) Clear() {
	if len(s.items) == 0 {
		return
	}
	s.items = s.items[:0]
	s.index = make(map[string]int)
	s.version++
}

// Set replaces the selection with nodes, keeping their order.
func (s *Selection) Set(nodes []*scene.Node) {
	s.items = s.items[:0]
	s.index = make(map[string]int)
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if _, ok := s.index[n.ID]; ok {
			continue
		}
		s.index[n.ID] = len(s.items)
		s.items = append(s.items, n)
	}
	s.version++
}

func (s *Selection) Get(id string) *scene.Node {
	if i, ok := s.index[id]; ok {
		return s.items[i]
	}
	return nil
}

func (s *Selection) Contains(n *scene.Node) bool {
	if n == nil {
		return false
	}
	_, ok := s.index[n.ID]
	return ok
}

// ContainsAncestorOf reports whether n or one of its ancestors is selected.
func (s *Selection) ContainsAncestorOf(n *scene.Node) bool {
	for p := n; p != nil; p = p.Parent() {
		if s.Contains(p) {
			return true
		}
	}
	return false
}

// Last is the most recently selected node, or nil.
func (s *Selection) Last() *scene.Node {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// All returns a copy of the selected nodes in selection order.
func (s *Selection) All() []*scene.Node {
	return append([]*scene.Node(nil), s.items...)
}

func (s *Selection) IDs() []string {
	ids := make([]string, len(s.items))
	for i, n := range s.items {
		ids[i] = n.ID
	}
	return ids
}

func (s *Selection) Len() int        { return len(s.items) }
func (s *Selection) Version() uint64 { return s.version }
