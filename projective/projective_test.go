package projective

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylicht/editor/core"
)

const (
	vpWidth  = 800
	vpHeight = 600
)

func testCamera() *core.Camera {
	return core.NewPerspectiveCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}, 60, float32(vpWidth)/float32(vpHeight))
}

func TestWorldToScreenCenter(t *testing.T) {
	cam := testCamera()

	p, ok := WorldToScreen(cam, mgl32.Vec3{0, 0, 5}, vpWidth, vpHeight)
	require.True(t, ok)
	assert.InDelta(t, 400.0, p.X(), 1e-3)
	assert.InDelta(t, 300.0, p.Y(), 1e-3)

	// +Y is up on screen, so a point above the axis has a smaller pixel Y
	up, ok := WorldToScreen(cam, mgl32.Vec3{0, 1, 5}, vpWidth, vpHeight)
	require.True(t, ok)
	assert.Less(t, up.Y(), float32(300))
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	cam := testCamera()

	_, ok := WorldToScreen(cam, mgl32.Vec3{0, 0, -5}, vpWidth, vpHeight)
	assert.False(t, ok)
}

func TestViewRayRoundTrip(t *testing.T) {
	cams := map[string]*core.Camera{
		"perspective":  testCamera(),
		"orthographic": core.NewOrthographicCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}, 10, float32(vpWidth)/float32(vpHeight)),
	}

	for name, cam := range cams {
		t.Run(name, func(t *testing.T) {
			world := mgl32.Vec3{1.5, -0.75, 8}
			screen, ok := WorldToScreen(cam, world, vpWidth, vpHeight)
			require.True(t, ok)

			ray := ViewRay(cam, screen.X(), screen.Y(), vpWidth, vpHeight)
			assert.InDelta(t, 1.0, ray.Direction.Len(), 1e-4)

			// the point must lie on the ray
			toPoint := world.Sub(ray.Origin)
			along := toPoint.Dot(ray.Direction)
			closest := ray.At(along)
			assert.InDelta(t, 0.0, closest.Sub(world).Len(), 1e-2)
		})
	}
}

func TestSegmentLengthClipSpaceShrinksWithDistance(t *testing.T) {
	cam := testCamera()
	right := cam.RightVector()

	near := SegmentLengthClipSpace(cam, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 5}.Add(right))
	far := SegmentLengthClipSpace(cam, mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 10}.Add(right))

	assert.Greater(t, near, float32(0))
	assert.InDelta(t, near/2, far, 1e-4)
}

func TestSegmentLengthClipSpaceOrthographicIsDistanceInvariant(t *testing.T) {
	cam := core.NewOrthographicCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}, 10, 1)
	right := cam.RightVector()

	near := SegmentLengthClipSpace(cam, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 5}.Add(right))
	far := SegmentLengthClipSpace(cam, mgl32.Vec3{0, 0, 50}, mgl32.Vec3{0, 0, 50}.Add(right))

	assert.InDelta(t, near, far, 1e-5)
	assert.InDelta(t, 0.2, near, 1e-5)
}

func TestParallelogramArea(t *testing.T) {
	cam := testCamera()
	o := mgl32.Vec3{0, 0, 5}

	facing := ParallelogramArea(cam, o, o.Add(mgl32.Vec3{1, 0, 0}), o.Add(mgl32.Vec3{0, 1, 0}))
	edgeOn := ParallelogramArea(cam, o, o.Add(mgl32.Vec3{1, 0, 0}), o.Add(mgl32.Vec3{0, 0, 1}))

	assert.Greater(t, facing, float32(0.01))
	assert.InDelta(t, 0.0, edgeOn, 1e-5)
}
