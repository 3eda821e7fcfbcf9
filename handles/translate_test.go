package handles

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylicht/editor/core"
	"github.com/skylicht/editor/projective"
)

var xAxis = mgl32.Vec3{1, 0, 0}

// translateFixture puts an object at (0,0,5) in front of the origin camera.
func translateFixture(t *testing.T) (*Handles, *Renderer, mgl32.Vec3) {
	t.Helper()
	h := New()
	r := NewRenderer(h)
	pivot := mgl32.Vec3{0, 0, 5}

	h.PositionHandle(pivot, mgl32.QuatIdent())
	r.Update(frontCamera(), testViewport())
	require.Greater(t, r.ScreenFactor(), float32(0))
	return h, r, pivot
}

func TestTranslateAlongXWithSnap(t *testing.T) {
	h, r, pivot := translateFixture(t)
	h.SetSnapXZ(true)
	h.SetSnapDistanceXZ(1.0)
	cam := frontCamera()

	grab := pivot.Add(xAxis.Mul(0.6 * r.ScreenFactor()))
	start := toScreen(t, cam, grab)
	end := toScreen(t, cam, grab.Add(xAxis.Mul(1.37)))

	assert.Equal(t, Continuing, r.OnMouse(start.X(), start.Y(), false))
	assert.True(t, r.HoverAxis(0))
	assert.Equal(t, float32(1), r.AxisFactor(0))

	r.OnMouse(start.X(), start.Y(), true)
	r.OnMouse(end.X(), end.Y(), true)
	assert.True(t, r.IsUsing())

	assert.Equal(t, Committed, r.OnMouse(end.X(), end.Y(), false))
	assert.False(t, r.IsUsing())

	got := h.PositionHandle(pivot, mgl32.QuatIdent())
	assertVec3(t, mgl32.Vec3{1, 0, 5}, got, 1e-4)
	assert.True(t, h.EndCheck())
	assert.False(t, h.EndCheck())
}

func TestTranslateAlongXWithoutSnap(t *testing.T) {
	h, r, pivot := translateFixture(t)
	cam := frontCamera()

	grab := pivot.Add(xAxis.Mul(0.6 * r.ScreenFactor()))
	start := toScreen(t, cam, grab)
	end := toScreen(t, cam, grab.Add(xAxis.Mul(1.37)))

	r.OnMouse(start.X(), start.Y(), false)
	r.OnMouse(start.X(), start.Y(), true)
	r.OnMouse(end.X(), end.Y(), true)

	assertVec3(t, mgl32.Vec3{1.37, 0, 5}, h.TargetPosition(), 1e-2)
}

func TestTranslatePressWithoutPriorMove(t *testing.T) {
	h, r, pivot := translateFixture(t)
	cam := frontCamera()

	grab := pivot.Add(xAxis.Mul(0.6 * r.ScreenFactor()))
	start := toScreen(t, cam, grab)
	end := toScreen(t, cam, grab.Add(xAxis.Mul(0.5)))

	r.OnMouse(start.X(), start.Y(), true)
	assert.True(t, r.HoverAxis(0))
	r.OnMouse(end.X(), end.Y(), true)

	assertVec3(t, mgl32.Vec3{0.5, 0, 5}, h.TargetPosition(), 1e-2)
}

func TestTranslatePlaneDrag(t *testing.T) {
	h, r, pivot := translateFixture(t)
	cam := frontCamera()
	sf := r.ScreenFactor()

	// the XY quad (normal Z) faces the camera; aim at its middle
	quad := r.translatePlane[2]
	center := pivot.Add(quad.dirX.Mul(0.25 * sf)).Add(quad.dirY.Mul(0.25 * sf))
	start := toScreen(t, cam, center)
	end := toScreen(t, cam, center.Add(mgl32.Vec3{0.5, -0.25, 0}))

	r.OnMouse(start.X(), start.Y(), false)
	require.True(t, r.HoverPlane(2))
	assert.False(t, r.HoverAxis(0))

	r.OnMouse(start.X(), start.Y(), true)
	r.OnMouse(end.X(), end.Y(), true)
	assert.Equal(t, Committed, r.OnMouse(end.X(), end.Y(), false))

	assertVec3(t, mgl32.Vec3{0.5, -0.25, 5}, h.PositionHandle(pivot, mgl32.QuatIdent()), 1e-3)
}

func TestAxisClickWithoutMoveCommits(t *testing.T) {
	h, r, pivot := translateFixture(t)
	cam := frontCamera()
	s := toScreen(t, cam, pivot.Add(xAxis.Mul(0.6*r.ScreenFactor())))

	r.OnMouse(s.X(), s.Y(), false)
	r.OnMouse(s.X(), s.Y(), true)
	assert.True(t, r.IsUsing())
	assert.Equal(t, Committed, r.OnMouse(s.X(), s.Y(), false))
	assert.True(t, h.EndCheck())
	assertVec3(t, pivot, h.PositionHandle(pivot, mgl32.QuatIdent()), 1e-5)
}

func TestTranslatePlaneDragSkipsMissedRay(t *testing.T) {
	h := New()
	r := NewRenderer(h)
	pivot := mgl32.Vec3{0, 0, 5}
	// looking down at the pivot so the XZ quad is visible
	cam := core.NewPerspectiveCamera(mgl32.Vec3{0, 5, 0}, pivot, 60, float32(vpWidth)/float32(vpHeight))

	h.PositionHandle(pivot, mgl32.QuatIdent())
	r.Update(cam, testViewport())
	sf := r.ScreenFactor()
	require.Greater(t, sf, float32(0))
	require.True(t, r.PlaneVisible(1))

	quad := r.translatePlane[1]
	grab := pivot.Add(quad.dirX.Mul(0.35 * sf)).Add(quad.dirY.Mul(0.35 * sf))
	start := toScreen(t, cam, grab)
	mid := toScreen(t, cam, grab.Add(mgl32.Vec3{0.5, 0, 0}))
	end := toScreen(t, cam, grab.Add(mgl32.Vec3{1, 0, 0.5}))

	r.OnMouse(start.X(), start.Y(), false)
	require.True(t, r.HoverPlane(1))
	r.OnMouse(start.X(), start.Y(), true)
	r.OnMouse(mid.X(), mid.Y(), true)
	assertVec3(t, mgl32.Vec3{0.5, 0, 5}, h.TargetPosition(), 1e-3)

	// far above the horizon: the ray points away from the drag plane
	r.OnMouse(vpWidth/2, -5000, true)
	assert.True(t, r.IsUsing())
	assertVec3(t, mgl32.Vec3{0.5, 0, 5}, h.TargetPosition(), 1e-3)

	// the next valid sample is measured from the press point again
	r.OnMouse(end.X(), end.Y(), true)
	assertVec3(t, mgl32.Vec3{1, 0, 5.5}, h.TargetPosition(), 1e-3)
	assert.Equal(t, Committed, r.OnMouse(end.X(), end.Y(), false))
}

func TestTranslateCancelRestoresSnapshot(t *testing.T) {
	for _, moves := range []int{0, 1, 5} {
		h, r, pivot := translateFixture(t)
		cam := frontCamera()

		grab := pivot.Add(xAxis.Mul(0.6 * r.ScreenFactor()))
		start := toScreen(t, cam, grab)
		r.OnMouse(start.X(), start.Y(), false)
		r.OnMouse(start.X(), start.Y(), true)
		for i := 1; i <= moves; i++ {
			p := toScreen(t, cam, grab.Add(xAxis.Mul(0.3*float32(i))))
			r.OnMouse(p.X(), p.Y(), true)
		}

		r.Cancel()
		assert.False(t, r.IsUsing())
		assert.False(t, r.IsHoverOnAxisOrPlane())

		// moves are ignored until the button goes up
		far := toScreen(t, cam, grab.Add(xAxis.Mul(2)))
		assert.Equal(t, Continuing, r.OnMouse(far.X(), far.Y(), true))
		assert.Equal(t, Cancelled, r.OnMouse(far.X(), far.Y(), false))

		assertVec3(t, pivot, h.PositionHandle(pivot, mgl32.QuatIdent()), 1e-5)
		assert.False(t, h.EndCheck(), "moves=%d", moves)
	}
}

func TestTranslateHoverIsIdempotent(t *testing.T) {
	_, r, pivot := translateFixture(t)
	cam := frontCamera()

	probes := []mgl32.Vec3{
		pivot.Add(xAxis.Mul(0.6 * r.ScreenFactor())),
		pivot.Add(mgl32.Vec3{0, 0.5 * r.ScreenFactor(), 0}),
		pivot.Add(mgl32.Vec3{3, 3, 0}),
	}
	for _, p := range probes {
		s := toScreen(t, cam, p)
		r.OnMouse(s.X(), s.Y(), false)
		axis, plane := r.hoverAxis, r.hoverPlane
		r.OnMouse(s.X(), s.Y(), false)
		assert.Equal(t, axis, r.hoverAxis)
		assert.Equal(t, plane, r.hoverPlane)
	}
}

func TestClickOutsideGizmoDoesNotCommit(t *testing.T) {
	h, r, pivot := translateFixture(t)
	s := toScreen(t, frontCamera(), pivot.Add(mgl32.Vec3{3, 3, 0}))

	r.OnMouse(s.X(), s.Y(), true)
	assert.Equal(t, Continuing, r.OnMouse(s.X(), s.Y(), false))
	assert.False(t, h.EndCheck())
}

func TestTranslateInParentSpace(t *testing.T) {
	h := New()
	r := NewRenderer(h)
	cam := frontCamera()
	h.SetWorld(mgl32.Translate3D(10, 0, 0))

	local := mgl32.Vec3{-10, 0, 5}
	h.PositionHandle(local, mgl32.QuatIdent())
	r.Update(cam, testViewport())

	grab := mgl32.Vec3{0, 0, 5}.Add(xAxis.Mul(0.6 * r.ScreenFactor()))
	start := toScreen(t, cam, grab)
	end := toScreen(t, cam, grab.Add(xAxis.Mul(1)))

	r.OnMouse(start.X(), start.Y(), false)
	require.True(t, r.HoverAxis(0))
	r.OnMouse(start.X(), start.Y(), true)
	r.OnMouse(end.X(), end.Y(), true)

	assertVec3(t, mgl32.Vec3{-9, 0, 5}, h.TargetPosition(), 1e-2)
}

func TestAxisFlipFollowsClipLengths(t *testing.T) {
	cam := frontCamera()
	cam.Position = mgl32.Vec3{4, 3, -8}
	cam.Target = mgl32.Vec3{0, 0, 0}

	for _, allow := range []bool{true, false} {
		h := New()
		r := NewRenderer(h)
		r.SetAllowAxisFlip(allow)
		h.PositionHandle(mgl32.Vec3{}, mgl32.QuatIdent())
		r.Update(cam, testViewport())

		flipped := 0
		for i := 0; i < 3; i++ {
			dir := directionUnary[i]
			lenPlus := projective.SegmentLengthClipSpace(cam, mgl32.Vec3{}, dir)
			lenMinus := projective.SegmentLengthClipSpace(cam, mgl32.Vec3{}, dir.Mul(-1))

			expected := float32(1)
			if allow && lenMinus-lenPlus > 0.001 {
				expected = -1
				flipped++
			}
			assert.Equal(t, expected, r.AxisFactor(i), "axis %d allow=%v", i, allow)
		}
		if allow {
			assert.Greater(t, flipped, 0)
		}
	}
}

func TestFlipIsFrozenWhileDragging(t *testing.T) {
	h, r, pivot := translateFixture(t)
	cam := frontCamera()

	grab := pivot.Add(xAxis.Mul(0.6 * r.ScreenFactor()))
	start := toScreen(t, cam, grab)
	r.OnMouse(start.X(), start.Y(), false)
	r.OnMouse(start.X(), start.Y(), true)
	require.True(t, r.IsUsing())

	before := r.axisFactor
	moved := frontCamera()
	moved.Position = mgl32.Vec3{-6, 0, 5.5}
	moved.Target = pivot
	h.PositionHandle(pivot, mgl32.QuatIdent())
	r.Update(moved, testViewport())

	assert.Equal(t, before, r.axisFactor)
}

func TestTranslateDrawsGizmo(t *testing.T) {
	_, r, _ := translateFixture(t)
	g := r.Gizmos()

	// X and Y arrows; Z points at the camera and is hidden
	assert.Equal(t, 2, g.Count(core.GizmoTriangleFill))
	assert.False(t, r.AxisVisible(2))
	assert.True(t, r.PlaneVisible(2))
	assert.Equal(t, 1, g.Count(core.GizmoPolygonFill))
}
