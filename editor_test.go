package editor

import (
	"bytes"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylicht/editor/core"
	"github.com/skylicht/editor/handles"
	"github.com/skylicht/editor/history"
	"github.com/skylicht/editor/projective"
	"github.com/skylicht/editor/scene"
)

const (
	vpWidth  = 800
	vpHeight = 600
)

var xAxis = mgl32.Vec3{1, 0, 0}

type session struct {
	t    *testing.T
	ed   *Editor
	in   Input
	cam  *core.Camera
	vp   core.Viewport
	zone *scene.Node
}

// newSession builds a scene with one zone and an editor looking down +Z from the origin.
func newSession(t *testing.T, cfg Config) *session {
	t.Helper()
	root := scene.NewScene("main")
	s := &session{
		t:    t,
		cam:  core.NewPerspectiveCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}, 60, float32(vpWidth)/float32(vpHeight)),
		vp:   core.NewViewport(vpWidth, vpHeight),
		zone: root.MustAddChild(scene.KindZone, "zone"),
	}
	s.ed = New(root, cfg, nil)
	return s
}

func addCube(parent *scene.Node, name string, pos mgl32.Vec3) *scene.Node {
	n := parent.MustAddChild(scene.KindGameObject, name)
	n.Transform.Position = pos
	n.Renderables = []scene.Renderable{{Box: core.NewAABB(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.5, 0.5})}}
	return n
}

// frame runs one tick with the cursor at p, the left button state and the keys held.
func (s *session) frame(p mgl32.Vec2, down bool, keys ...int) handles.Result {
	s.in.SetMouse(float64(p.X()), float64(p.Y()))
	for k := 0; k < keyCount; k++ {
		if k == MouseButtonLeft {
			s.in.SetButton(k, down)
			continue
		}
		s.in.SetButton(k, slices.Contains(keys, k))
	}
	return s.ed.Frame(&s.in, s.cam, s.vp)
}

func (s *session) click(p mgl32.Vec2) {
	s.frame(p, false)
	s.frame(p, true)
	s.frame(p, false)
}

func (s *session) toScreen(p mgl32.Vec3) mgl32.Vec2 {
	s.t.Helper()
	v, ok := projective.WorldToScreen(s.cam, p, vpWidth, vpHeight)
	require.True(s.t, ok)
	return v
}

// dragX grabs the X axis of the gizmo on the current target and pulls it by dist world
// units. It returns the cursor position at the end of the drag with the button still down.
func (s *session) dragX(dist float32) mgl32.Vec2 {
	s.t.Helper()
	pivot := s.ed.Target().World().Position
	grab := pivot.Add(xAxis.Mul(0.6 * s.ed.Renderer().ScreenFactor()))
	start := s.toScreen(grab)
	end := s.toScreen(grab.Add(xAxis.Mul(dist)))

	s.frame(start, false)
	require.True(s.t, s.ed.Renderer().HoverAxis(0))
	s.frame(start, true)
	s.frame(end, true)
	require.True(s.t, s.ed.Renderer().IsUsing())
	return end
}

func assertVec3(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for k := 0; k < 3; k++ {
		assert.InDelta(t, expected[k], actual[k], delta, "component %d of %v", k, actual)
	}
}

var center = mgl32.Vec2{vpWidth / 2, vpHeight / 2}

func TestClickSelectsAndAttachesGizmo(t *testing.T) {
	s := newSession(t, DefaultConfig())
	cube := addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})

	s.click(center)
	require.Equal(t, 1, s.ed.Selection().Len())
	assert.Same(t, cube, s.ed.Target())

	s.frame(center, false)
	assert.Equal(t, handles.ModeTranslate, s.ed.Handles().Mode())
	assert.Greater(t, s.ed.Renderer().ScreenFactor(), float32(0))
	// gizmo lines plus the 12 edges of the selection box
	assert.Greater(t, s.ed.Gizmos().Count(core.GizmoLine), 12)
}

func TestClickEmptySpaceClearsTarget(t *testing.T) {
	s := newSession(t, DefaultConfig())
	addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})

	s.click(center)
	require.NotNil(t, s.ed.Target())

	s.click(mgl32.Vec2{50, 50})
	assert.Equal(t, 0, s.ed.Selection().Len())
	assert.Nil(t, s.ed.Target())
	assert.Equal(t, handles.ModeNone, s.ed.Handles().Mode())
}

func TestDragCommitsAndRecordsHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Snap.XZ = true
	s := newSession(t, cfg)
	cube := addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})
	s.click(center)
	s.frame(center, false)

	end := s.dragX(1.37)
	assertVec3(t, mgl32.Vec3{1, 0, 5}, cube.Transform.Position, 1e-4)

	assert.Equal(t, handles.Committed, s.frame(end, false))
	assert.True(t, s.ed.Handles().EndCheck())
	assertVec3(t, mgl32.Vec3{1, 0, 5}, cube.Transform.Position, 1e-4)

	// select + modify
	require.Equal(t, 2, s.ed.History().Len())
	assert.Equal(t, history.KindModify, s.ed.History().Recs[1].Kind)

	require.True(t, s.ed.Undo())
	assertVec3(t, mgl32.Vec3{0, 0, 5}, cube.Transform.Position, 1e-6)
	require.True(t, s.ed.Redo())
	assertVec3(t, mgl32.Vec3{1, 0, 5}, cube.Transform.Position, 1e-4)

	// the gizmo follows the undone value while idle
	require.True(t, s.ed.Undo())
	s.frame(end, false)
	assertVec3(t, mgl32.Vec3{0, 0, 5}, s.ed.Handles().TargetPosition(), 1e-6)
}

func TestEscapeCancelsDrag(t *testing.T) {
	s := newSession(t, DefaultConfig())
	cube := addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})
	s.click(center)
	s.frame(center, false)

	end := s.dragX(1.0)
	assert.InDelta(t, 1.0, cube.Transform.Position.X(), 1e-2)

	s.frame(end, true, KeyEscape)
	assertVec3(t, mgl32.Vec3{0, 0, 5}, cube.Transform.Position, 1e-5)
	assert.False(t, s.ed.Renderer().IsUsing())

	assert.Equal(t, handles.Cancelled, s.frame(end, false))
	assert.False(t, s.ed.Handles().EndCheck())
	assert.False(t, s.ed.History().IsModifying())
	assert.Equal(t, 1, s.ed.History().Len())
	assert.Equal(t, 1, s.ed.Selection().Len())
}

func TestLeftAltCancelsDrag(t *testing.T) {
	s := newSession(t, DefaultConfig())
	cube := addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})
	s.click(center)
	s.frame(center, false)

	end := s.dragX(1.0)
	s.frame(end, true, KeyLeftAlt)
	assertVec3(t, mgl32.Vec3{0, 0, 5}, cube.Transform.Position, 1e-5)

	assert.Equal(t, handles.Cancelled, s.frame(end, false))
	assert.False(t, s.ed.History().IsModifying())
	assert.Equal(t, 1, s.ed.History().Len())
}

func TestDragWritesParentLocalPosition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Snap.XZ = true
	s := newSession(t, cfg)
	rig := s.zone.MustAddChild(scene.KindGameObject, "rig")
	rig.Transform.Position = mgl32.Vec3{10, 0, 0}
	cube := addCube(rig, "cube", mgl32.Vec3{-10, 0, 5})

	s.click(center)
	require.Same(t, cube, s.ed.Target())
	s.frame(center, false)

	end := s.dragX(1.37)
	assert.Equal(t, handles.Committed, s.frame(end, false))
	assertVec3(t, mgl32.Vec3{-9, 0, 5}, cube.Transform.Position, 1e-4)
	assertVec3(t, mgl32.Vec3{1, 0, 5}, cube.World().Position, 1e-4)
}

func TestSkipCommitsDrag(t *testing.T) {
	s := newSession(t, DefaultConfig())
	cube := addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})
	s.click(center)
	s.frame(center, false)

	s.dragX(0.5)
	assert.Equal(t, handles.Committed, s.ed.Skip())
	assert.Equal(t, handles.ModeNone, s.ed.Handles().Mode())
	assert.InDelta(t, 0.5, cube.Transform.Position.X(), 1e-2)
	assert.Equal(t, 2, s.ed.History().Len())
	assert.Equal(t, handles.Continuing, s.ed.Skip())
}

func TestToolKeys(t *testing.T) {
	s := newSession(t, DefaultConfig())
	addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})
	s.click(center)

	s.frame(center, false, KeyE)
	assert.Equal(t, ToolRotate, s.ed.Tool())
	assert.Equal(t, handles.ModeRotate, s.ed.Handles().Mode())

	s.frame(center, false, KeyR)
	assert.Equal(t, ToolScale, s.ed.Tool())
	assert.Equal(t, handles.ModeScale, s.ed.Handles().Mode())

	s.frame(center, false, KeyQ)
	assert.Equal(t, ToolSelect, s.ed.Tool())
	assert.Equal(t, handles.ModeNone, s.ed.Handles().Mode())
	assert.Equal(t, 0, s.ed.Renderer().Gizmos().Len())

	s.frame(center, false, KeyW)
	assert.Equal(t, ToolTranslate, s.ed.Tool())
}

func TestToolKeysIgnoredWhileDragging(t *testing.T) {
	s := newSession(t, DefaultConfig())
	addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})
	s.click(center)
	s.frame(center, false)

	end := s.dragX(0.5)
	s.frame(end, true, KeyE)
	assert.Equal(t, ToolTranslate, s.ed.Tool())
	assert.True(t, s.ed.Renderer().IsUsing())
}

func TestSetToolRevertsActiveDrag(t *testing.T) {
	s := newSession(t, DefaultConfig())
	cube := addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})
	s.click(center)
	s.frame(center, false)

	s.dragX(0.5)
	s.ed.SetTool(ToolRotate)
	assertVec3(t, mgl32.Vec3{0, 0, 5}, cube.Transform.Position, 1e-5)
	assert.False(t, s.ed.History().IsModifying())
	assert.Equal(t, handles.ModeNone, s.ed.Handles().Mode())
}

func TestUndoSelection(t *testing.T) {
	s := newSession(t, DefaultConfig())
	cube := addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})
	s.click(center)
	require.True(t, s.ed.Selection().Contains(cube))

	s.frame(center, false, KeyControl, KeyZ)
	assert.Equal(t, 0, s.ed.Selection().Len())
	assert.Nil(t, s.ed.Target())

	s.frame(center, false, KeyControl, KeyY)
	assert.True(t, s.ed.Selection().Contains(cube))
	assert.Same(t, cube, s.ed.Target())

	assert.False(t, s.ed.Redo())
}

func TestDeleteKeyClearsSelection(t *testing.T) {
	s := newSession(t, DefaultConfig())
	cube := addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})
	s.click(center)
	require.Same(t, cube, s.ed.Target())

	s.frame(center, false, KeyDelete)
	assert.Equal(t, 0, s.ed.Selection().Len())
	assert.Nil(t, s.ed.Target())
	assert.Equal(t, 2, s.ed.History().Len())

	require.True(t, s.ed.Undo())
	assert.True(t, s.ed.Selection().Contains(cube))

	// nothing selected: no record
	s.ed.Selection().Clear()
	s.ed.ClearSelection()
	assert.Equal(t, 2, s.ed.History().Len())
}

func TestTargetNeedsTransform(t *testing.T) {
	s := newSession(t, DefaultConfig())
	s.ed.Selection().Add(s.zone)
	s.frame(center, false)
	assert.Nil(t, s.ed.Target())
	assert.Equal(t, handles.ModeNone, s.ed.Handles().Mode())
}

func TestEditorLogsPicksAndCommits(t *testing.T) {
	var out bytes.Buffer
	s := newSession(t, DefaultConfig())
	s.ed = New(s.ed.Root(), DefaultConfig(), NewWriterLogger("editor", true, &out, &out))
	addCube(s.zone, "cube", mgl32.Vec3{0, 0, 5})

	s.click(center)
	assert.Contains(t, out.String(), "DEBUG: picked [cube] (1 selected)")

	s.frame(center, false)
	end := s.dragX(0.5)
	s.frame(end, false)
	assert.Contains(t, out.String(), "translate committed on cube")

	s.click(mgl32.Vec2{50, 50})
	assert.Contains(t, out.String(), "picked [] (0 selected)")
}

func TestNewEditor(t *testing.T) {
	assert.Panics(t, func() { New(nil, DefaultConfig(), nil) })

	cfg := DefaultConfig()
	cfg.Snap.Y = true
	cfg.Snap.DistanceY = 0.25
	cfg.AllowAxisFlip = false
	ed := New(scene.NewScene("main"), cfg, nil)
	require.NotNil(t, ed.Logger())
	assert.Equal(t, ToolTranslate, ed.Tool())
	assert.True(t, ed.Handles().IsSnapY())
	assert.Equal(t, float32(0.25), ed.Handles().SnapDistanceY())
	assert.False(t, ed.Renderer().AllowAxisFlip())
	assert.Equal(t, "rotate", ToolRotate.String())
}
