// Package editor wires the transform gizmo, object picking, selection and undo history
// into one per-frame editing session.
package editor

import (
	"strings"

	"github.com/skylicht/editor/core"
	"github.com/skylicht/editor/handles"
	"github.com/skylicht/editor/history"
	"github.com/skylicht/editor/scene"
	"github.com/skylicht/editor/selection"
)

type Tool int

const (
	ToolSelect Tool = iota
	ToolTranslate
	ToolRotate
	ToolScale
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolTranslate:
		return "translate"
	case ToolRotate:
		return "rotate"
	case ToolScale:
		return "scale"
	}
	return "unknown"
}

// Editor is one editing session over a scene tree. It owns every piece of gizmo and
// selection state; nothing is global.
type Editor struct {
	root   *scene.Node
	config Config
	logger Logger

	handles   *handles.Handles
	renderer  *handles.Renderer
	selection *selection.Selection
	system    *selection.SelectObjectSystem
	selecting *selection.Selecting
	history   *history.Mgr

	tool             Tool
	target           *scene.Node
	selectionVersion uint64

	gizmos core.GizmoList
}

// New creates a session on root. A nil logger is replaced by a no-op one.
func New(root *scene.Node, cfg Config, logger Logger) *Editor {
	if root == nil {
		panic("editor: New needs a scene root")
	}
	if logger == nil {
		logger = NewNopLogger()
	}

	h := handles.New()
	r := handles.NewRenderer(h)
	sel := selection.New()
	sys := selection.NewSelectObjectSystem()
	hist := history.NewMgr()

	e := &Editor{
		root:      root,
		logger:    logger,
		handles:   h,
		renderer:  r,
		selection: sel,
		system:    sys,
		selecting: selection.NewSelecting(sys, sel, r, hist),
		history:   hist,
		tool:      ToolTranslate,
	}
	e.SetConfig(cfg)
	return e
}

func (e *Editor) Root() *scene.Node                     { return e.root }
func (e *Editor) Config() Config                        { return e.config }
func (e *Editor) Handles() *handles.Handles             { return e.handles }
func (e *Editor) Renderer() *handles.Renderer           { return e.renderer }
func (e *Editor) Selection() *selection.Selection       { return e.selection }
func (e *Editor) System() *selection.SelectObjectSystem { return e.system }
func (e *Editor) Selecting() *selection.Selecting       { return e.selecting }
func (e *Editor) History() *history.Mgr                 { return e.history }
func (e *Editor) Tool() Tool                            { return e.tool }

// Target is the node the gizmo is attached to: the last selected node that has a
// transform, or nil.
func (e *Editor) Target() *scene.Node { return e.target }

// Logger never returns nil.
func (e *Editor) Logger() Logger {
	if e.logger == nil {
		return NewNopLogger()
	}
	return e.logger
}

// Gizmos is everything to draw this frame: the active handle and the selection boxes.
func (e *Editor) Gizmos() *core.GizmoList { return &e.gizmos }

func (e *Editor) SetConfig(cfg Config) {
	e.config = cfg
	cfg.Apply(e.handles)
}

// SetTool switches the active gizmo. Switching ends the current handle.
func (e *Editor) SetTool(t Tool) {
	if t == e.tool {
		return
	}
	e.abandonDrag()
	e.tool = t
	e.handles.End()
	e.logger.Debugf("tool %s", t)
}

// Frame runs one editor tick: it rebuilds pick candidates for cam, applies the handle
// to the target, then feeds the mouse to the gizmo first and to picking second.
// Mouse coordinates in in are window pixels and are made relative to vp.
func (e *Editor) Frame(in *Input, cam *core.Camera, vp core.Viewport) handles.Result {
	e.system.Bind(cam, vp)
	e.system.Update(e.root, cam, e.selection)

	e.handleKeys(in)
	e.syncSelection()
	e.applyHandle()
	e.renderer.Update(cam, vp)

	if in.JustPressed[KeyEscape] || in.JustPressed[KeyLeftAlt] {
		e.renderer.Cancel()
	}

	x := float32(in.MouseX) - float32(vp.X)
	y := float32(in.MouseY) - float32(vp.Y)
	left := in.Pressed[MouseButtonLeft]

	res := e.renderer.OnMouse(x, y, left)
	e.applyHandle()
	e.finishDrag(res)

	if e.selecting.OnMouse(x, y, left) {
		e.logger.Debugf("picked [%s] (%d selected)", e.selectionNames(), e.selection.Len())
	}
	e.syncSelection()

	e.gizmos.Clear()
	e.gizmos.Items = append(e.gizmos.Items, e.renderer.Gizmos().Items...)
	e.system.DrawSelection(&e.gizmos)
	return res
}

// Skip ends the current drag as committed, e.g. when another widget takes focus.
func (e *Editor) Skip() handles.Result {
	res := e.renderer.Skip()
	e.finishDrag(res)
	return res
}

func (e *Editor) handleKeys(in *Input) {
	if e.renderer.IsUsing() {
		return
	}
	if in.Pressed[KeyControl] {
		switch {
		case in.JustPressed[KeyZ]:
			e.Undo()
		case in.JustPressed[KeyY]:
			e.Redo()
		}
		return
	}
	switch {
	case in.JustPressed[KeyDelete]:
		e.ClearSelection()
	case in.JustPressed[KeyQ]:
		e.SetTool(ToolSelect)
	case in.JustPressed[KeyW]:
		e.SetTool(ToolTranslate)
	case in.JustPressed[KeyE]:
		e.SetTool(ToolRotate)
	case in.JustPressed[KeyR]:
		e.SetTool(ToolScale)
	}
}

// ClearSelection deselects everything as one undoable step.
func (e *Editor) ClearSelection() {
	if e.selection.Len() == 0 {
		return
	}
	e.history.BeginSelect(e.selection.IDs())
	e.selection.Clear()
	e.history.EndSelect(e.selection.IDs())
	e.logger.Debugf("selection cleared")
}

// syncSelection retargets the gizmo when the selection changed since the last call.
func (e *Editor) syncSelection() {
	v := e.selection.Version()
	if v == e.selectionVersion {
		return
	}
	e.selectionVersion = v
	e.abandonDrag()
	e.handles.End()

	e.target = nil
	if last := e.selection.Last(); last != nil && last.Kind.HasTransform() {
		e.target = last
	}
}

// applyHandle runs the active tool's handle against the target's local transform and
// writes the result back. The first call after a drag starts opens a history edit
// with the untouched transform.
func (e *Editor) applyHandle() {
	t := e.target
	if t == nil || e.tool == ToolSelect {
		if e.handles.Mode() != handles.ModeNone {
			e.handles.End()
		}
		return
	}

	if e.renderer.IsUsing() && !e.history.IsModifying() {
		e.history.BeginModify([]string{t.ID}, []core.Transform{t.Transform})
	}

	e.handles.SetWorld(t.ParentWorldMatrix())
	tr := &t.Transform
	switch e.tool {
	case ToolTranslate:
		tr.Position = e.handles.PositionHandle(tr.Position, tr.Rotation)
	case ToolRotate:
		tr.Rotation = e.handles.RotateHandle(tr.Position, tr.Rotation)
	case ToolScale:
		tr.Scale = e.handles.ScaleHandle(tr.Position, tr.Rotation, tr.Scale)
	}

	if e.history.IsModifying() {
		e.history.SaveModify([]core.Transform{*tr})
	}
}

func (e *Editor) finishDrag(res handles.Result) {
	switch res {
	case handles.Committed:
		if e.history.EndModify() {
			e.logger.Debugf("%s committed on %s", e.tool, e.targetName())
		}
	case handles.Cancelled:
		e.history.Discard()
		e.logger.Debugf("%s cancelled on %s", e.tool, e.targetName())
	}
}

// abandonDrag reverts an unfinished drag before the gizmo is detached.
func (e *Editor) abandonDrag() {
	if !e.renderer.IsUsing() {
		return
	}
	e.handles.Reset()
	e.applyHandle()
	e.history.Discard()
}

func (e *Editor) selectionNames() string {
	names := make([]string, 0, e.selection.Len())
	for _, n := range e.selection.All() {
		names = append(names, n.Name)
	}
	return strings.Join(names, ", ")
}

func (e *Editor) targetName() string {
	if e.target == nil {
		return "<none>"
	}
	return e.target.Name
}

// Undo steps the history back and applies the record to the scene. It does nothing
// while a drag is in progress.
func (e *Editor) Undo() bool {
	if e.renderer.IsUsing() {
		return false
	}
	r, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.applyRec(r, true)
	e.logger.Debugf("undo %s", r.Kind)
	return true
}

func (e *Editor) Redo() bool {
	if e.renderer.IsUsing() {
		return false
	}
	r, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.applyRec(r, false)
	e.logger.Debugf("redo %s", r.Kind)
	return true
}

func (e *Editor) applyRec(r *history.Rec, undo bool) {
	switch r.Kind {
	case history.KindSelect:
		ids := r.After
		if undo {
			ids = r.Before
		}
		nodes := make([]*scene.Node, 0, len(ids))
		for _, id := range ids {
			if n := e.root.Find(id); n != nil {
				nodes = append(nodes, n)
			}
		}
		e.selection.Set(nodes)
	case history.KindModify:
		values := r.New
		if undo {
			values = r.Old
		}
		for i, id := range r.Objects {
			if n := e.root.Find(id); n != nil && i < len(values) {
				n.Transform = values[i]
			}
		}
	}
}
