// Package history records selection changes and transform edits as undo records.
package history

import (
	"slices"

	"github.com/skylicht/editor/core"
)

type Kind int

const (
	KindSelect Kind = iota
	KindModify
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindModify:
		return "modify"
	}
	return "unknown"
}

// Rec is one undoable step.
type Rec struct {
	Kind Kind

	// selection ids before and after a KindSelect step
	Before []string
	After  []string

	// object ids and their transforms before and after a KindModify step
	Objects []string
	Old     []core.Transform
	New     []core.Transform
}

// Mgr keeps the records and the undo position. Idx is the record the next Undo
// returns; -1 when nothing can be undone.
type Mgr struct {
	Idx  int
	Recs []*Rec

	selectOpen   bool
	selectBefore []string

	modify *Rec
}

func NewMgr() *Mgr {
	return &Mgr{Idx: -1}
}

// save appends r after the current index, dropping any redo records.
func (um *Mgr) save(r *Rec) {
	um.Recs = append(um.Recs[:um.Idx+1], r)
	um.Idx = len(um.Recs) - 1
}

func (um *Mgr) BeginSelect(ids []string) {
	um.selectOpen = true
	um.selectBefore = slices.Clone(ids)
}

// EndSelect records the change since BeginSelect. Unchanged selections are not recorded.
func (um *Mgr) EndSelect(ids []string) {
	if !um.selectOpen {
		return
	}
	um.selectOpen = false
	if slices.Equal(um.selectBefore, ids) {
		return
	}
	um.save(&Rec{Kind: KindSelect, Before: um.selectBefore, After: slices.Clone(ids)})
}

// BeginModify opens a transform edit on the given objects with their current values.
func (um *Mgr) BeginModify(ids []string, current []core.Transform) {
	um.modify = &Rec{
		Kind:    KindModify,
		Objects: slices.Clone(ids),
		Old:     slices.Clone(current),
		New:     slices.Clone(current),
	}
}

// SaveModify updates the values the open edit will commit.
func (um *Mgr) SaveModify(current []core.Transform) {
	if um.modify == nil {
		return
	}
	um.modify.New = slices.Clone(current)
}

// EndModify commits the open edit unless it changed nothing.
func (um *Mgr) EndModify() bool {
	r := um.modify
	um.modify = nil
	if r == nil || slices.Equal(r.Old, r.New) {
		return false
	}
	um.save(r)
	return true
}

// Discard drops the open edit.
func (um *Mgr) Discard() {
	um.modify = nil
}

func (um *Mgr) IsModifying() bool { return um.modify != nil }

func (um *Mgr) IsUndoAvail() bool { return um.Idx >= 0 }

func (um *Mgr) IsRedoAvail() bool { return um.Idx < len(um.Recs)-1 }

// Undo returns the record at the current index and steps back.
func (um *Mgr) Undo() (*Rec, bool) {
	if um.Idx < 0 {
		return nil, false
	}
	r := um.Recs[um.Idx]
	um.Idx--
	return r, true
}

func (um *Mgr) Redo() (*Rec, bool) {
	if um.Idx >= len(um.Recs)-1 {
		return nil, false
	}
	um.Idx++
	return um.Recs[um.Idx], true
}

func (um *Mgr) Len() int { return len(um.Recs) }
