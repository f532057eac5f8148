package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/projection"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-6

func assertVec3(t *testing.T, expected, actual mgl64.Vec3, msgAndArgs ...any) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], tolerance, msgAndArgs...)
	}
}

func assertVec2(t *testing.T, expected, actual mgl64.Vec2, msgAndArgs ...any) {
	t.Helper()
	for i := range 2 {
		assert.InDelta(t, expected[i], actual[i], tolerance, msgAndArgs...)
	}
}

// projectWorld maps a world point to NDC through the camera's view-projection matrix.
func projectWorld(c Camera, point mgl64.Vec3) mgl64.Vec3 {
	clip := c.ViewProjectionMatrix().Mul4x1(point.Vec4(1))
	return clip.Vec3().Mul(1 / clip[3])
}

func unitCube() common.AABB {
	return common.NewAABB(mgl64.Vec3{-0.5, -0.5, -0.5}, mgl64.Vec3{0.5, 0.5, 0.5})
}

func newOrthographic(t *testing.T, options ...projection.Option) *projection.Orthographic {
	t.Helper()
	o, err := projection.NewOrthographic(options...)
	require.NoError(t, err)
	return o
}

func newPerspective(t *testing.T, options ...projection.Option) *projection.Perspective {
	t.Helper()
	p, err := projection.NewPerspective(options...)
	require.NoError(t, err)
	return p
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.True(t, c.Pose().ApproxEqual(common.IdentityTransform(), tolerance))
	assert.Equal(t, projection.KindPerspective, c.Projection().Kind())

	c = NewCamera(WithPosition(mgl64.Vec3{1, 2, 3}), WithProjection(nil))
	assertVec3(t, mgl64.Vec3{1, 2, 3}, c.Position())
	assert.Equal(t, projection.KindPerspective, c.Projection().Kind())
}

func TestLookAt(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.LookAt(mgl64.Vec3{0, -10, 0}, mgl64.Vec3{}, mgl64.Vec3{}))

	right, up, backward := c.Pose().Basis()
	assertVec3(t, common.AxisX, right)
	assertVec3(t, common.AxisZ, up)
	assertVec3(t, mgl64.Vec3{0, -1, 0}, backward)
	assertVec3(t, mgl64.Vec3{0, -10, 0}, c.Position())
}

func TestLookAtDegenerate(t *testing.T) {
	c := NewCamera(WithPosition(mgl64.Vec3{1, 1, 1}))

	err := c.LookAt(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}, common.AxisZ)
	assert.ErrorIs(t, err, ErrDegenerateOrientation)

	err = c.LookAt(mgl64.Vec3{2, 2, 2}, mgl64.Vec3{2, 2, 2}, common.AxisZ)
	assert.ErrorIs(t, err, ErrDegenerateOrientation)

	assertVec3(t, mgl64.Vec3{1, 1, 1}, c.Position(), "failed lookAt leaves the pose alone")
}

func TestOrbitPreservesTargetDistance(t *testing.T) {
	target := mgl64.Vec3{1, 2, 3}
	angles := []struct{ pitch, yaw float64 }{
		{0.3, 0},
		{0, -1.2},
		{0.7, 2.1},
		{-math.Pi / 2, math.Pi},
	}
	for _, orbitType := range []OrbitType{OrbitFree, OrbitConstrained} {
		for _, a := range angles {
			c := NewCamera()
			require.NoError(t, c.LookAt(mgl64.Vec3{10, -5, 4}, target, mgl64.Vec3{}))
			before := c.Position().Sub(target).Len()

			c.Orbit(target, a.pitch, a.yaw, orbitType)

			assert.InDelta(t, before, c.Position().Sub(target).Len(), tolerance, "%s %+v", orbitType, a)
			toTarget := target.Sub(c.Position()).Normalize()
			assertVec3(t, toTarget, c.Pose().Vector(mgl64.Vec3{0, 0, -1}), "still looking at the target")
		}
	}
}

func TestOrbitConstrainedYawKeepsHeight(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.LookAt(mgl64.Vec3{10, -5, 4}, mgl64.Vec3{}, mgl64.Vec3{}))

	c.Orbit(mgl64.Vec3{}, 0, math.Pi/2, OrbitConstrained)
	assertVec3(t, mgl64.Vec3{5, 10, 4}, c.Position())
}

func TestOrbitFreeYawsAboutCameraUp(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.LookAt(mgl64.Vec3{0, -10, 0}, mgl64.Vec3{}, mgl64.Vec3{}))
	c.Orbit(mgl64.Vec3{}, math.Pi/4, 0, OrbitFree)
	up := c.Pose().Vector(common.AxisY)

	c.Orbit(mgl64.Vec3{}, 0, 0.5, OrbitFree)
	assertVec3(t, up, c.Pose().Vector(common.AxisY), "yaw about the up axis leaves it fixed")
}

func TestRollInversePair(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.LookAt(mgl64.Vec3{3, 4, 5}, mgl64.Vec3{}, mgl64.Vec3{}))
	before := c.Pose()

	for _, angle := range []float64{0.1, -2.5, math.Pi} {
		c.Roll(angle)
		c.Roll(-angle)
		assert.True(t, before.ApproxEqual(c.Pose(), tolerance), "angle %v", angle)
	}
}

func TestRollIsCounterClockwise(t *testing.T) {
	c := NewCamera()
	c.Roll(math.Pi / 2)
	// the camera's right axis now points where its up axis was
	assertVec3(t, common.AxisY, c.Pose().Vector(common.AxisX))
	assertVec3(t, mgl64.Vec3{}, c.Position())
}

func TestTrackInversePair(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.LookAt(mgl64.Vec3{3, 4, 5}, mgl64.Vec3{}, mgl64.Vec3{}))
	before := c.Pose()

	c.Track(2.5, -1.5)
	assert.False(t, before.ApproxEqual(c.Pose(), tolerance))
	c.TrackVector(mgl64.Vec2{-2.5, 1.5})
	assert.True(t, before.ApproxEqual(c.Pose(), tolerance))
}

func TestDollyMovesAlongViewAxis(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.LookAt(mgl64.Vec3{0, -10, 0}, mgl64.Vec3{}, mgl64.Vec3{}))
	c.Dolly(-4)
	assertVec3(t, mgl64.Vec3{0, -6, 0}, c.Position())
	c.Dolly(4)
	assertVec3(t, mgl64.Vec3{0, -10, 0}, c.Position())
}

func TestWorldToCameraIsExactInverse(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.LookAt(mgl64.Vec3{7, -3, 2}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{}))
	c.Roll(0.4)

	product := c.ViewMatrix().Mul4(c.Pose().Matrix())
	identity := mgl64.Ident4()
	for i := range product {
		assert.InDelta(t, identity[i], product[i], tolerance, "element %d", i)
	}
	assertVec3(t, mgl64.Vec3{}, c.WorldToCamera().Point(c.Position()))
}

func TestFitPerspectiveUnitCube(t *testing.T) {
	c := NewCamera()
	p := c.Projection().(*projection.Perspective)
	bounds := unitCube()

	c.Fit(bounds)

	distance := bounds.SphereRadius() / math.Sin(math.Min(p.HorizontalFov(), p.VerticalFov())/2)
	assertVec3(t, mgl64.Vec3{0, 0, distance}, c.Position(), "along the initial backward axis")
	assert.InDelta(t, math.Sqrt(3), distance, tolerance)
}

func TestFitOrthographic(t *testing.T) {
	bounds := unitCube()
	diameter := 2 * bounds.SphereRadius()

	wide := newOrthographic(t, projection.WithAspect(2))
	c := NewCamera(WithProjection(wide))
	c.Fit(bounds)
	assert.InDelta(t, diameter, wide.Height(), tolerance)
	assertVec3(t, mgl64.Vec3{0, 0, diameter}, c.Position())

	tall := newOrthographic(t, projection.WithAspect(0.5))
	c = NewCamera(WithProjection(tall))
	c.Fit(bounds)
	assert.InDelta(t, diameter, tall.Width(), tolerance)
}

func TestFitEmptyBoundsIsNoop(t *testing.T) {
	c := NewCamera(WithPosition(mgl64.Vec3{1, 2, 3}))
	c.Fit(common.EmptyAABB())
	assertVec3(t, mgl64.Vec3{1, 2, 3}, c.Position())
}

func TestCameraSpaceLiesOnNearPlane(t *testing.T) {
	ndc := mgl64.Vec2{0.5, -0.25}

	persp := newPerspective(t, projection.WithAspect(1.5))
	c := NewCamera(WithProjection(persp))
	point := c.CameraSpace(ndc)
	assert.InDelta(t, -persp.Near(), point.Z(), tolerance)
	projected := persp.Project(point)
	assertVec2(t, ndc, projected.Vec2())
	assert.InDelta(t, -1, projected.Z(), tolerance)

	ortho := newOrthographic(t, projection.WithWidth(6), projection.WithAspect(2))
	c.SetProjection(ortho)
	point = c.CameraSpace(ndc)
	assertVec3(t, mgl64.Vec3{1.5, -0.375, -ortho.Near()}, point)
	assertVec2(t, ndc, ortho.Project(point).Vec2())
}

func TestCastRayPerspective(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.LookAt(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}, common.AxisY))

	ray := c.CastRay(mgl64.Vec2{})
	assertVec3(t, mgl64.Vec3{0, 0, 10}, ray.Origin)
	assertVec3(t, mgl64.Vec3{0, 0, -1}, ray.Direction)
	assert.InDelta(t, 0, ray.ClosestDistance(mgl64.Vec3{}), tolerance, "passes through the origin")

	ndc := mgl64.Vec2{0.5, -0.25}
	ray = c.CastRay(ndc)
	assert.InDelta(t, 1, ray.Direction.Len(), tolerance)
	for _, distance := range []float64{1, 10, 100} {
		assertVec2(t, ndc, projectWorld(c, ray.At(distance)).Vec2())
	}
}

func TestCastRayOrthographic(t *testing.T) {
	ortho := newOrthographic(t, projection.WithWidth(4))
	c := NewCamera(WithProjection(ortho))
	require.NoError(t, c.LookAt(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}, common.AxisY))

	ray := c.CastRay(mgl64.Vec2{})
	assertVec3(t, mgl64.Vec3{0, 0, -1}, ray.Direction)
	assertVec3(t, mgl64.Vec3{0, 0, 10 - ortho.Near()}, ray.Origin)

	ray = c.CastRay(mgl64.Vec2{1, 0})
	assertVec3(t, mgl64.Vec3{0, 0, -1}, ray.Direction, "rays are parallel")
	assertVec3(t, mgl64.Vec3{2, 0, 10 - ortho.Near()}, ray.Origin)
}

func TestSetProjectionSwapsWholesale(t *testing.T) {
	c := NewCamera()
	ortho := newOrthographic(t)
	c.SetProjection(ortho)
	assert.Same(t, ortho, c.Projection())

	c.SetProjection(nil)
	assert.Same(t, ortho, c.Projection())
	assert.Equal(t, ortho.Matrix(), c.ProjectionMatrix())
}

func TestFrustumFollowsPose(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.LookAt(mgl64.Vec3{0, -10, 0}, mgl64.Vec3{}, mgl64.Vec3{}))
	frustum := c.Frustum()
	assert.True(t, frustum.ContainsPoint(mgl64.Vec3{}))
	assert.False(t, frustum.ContainsPoint(mgl64.Vec3{0, -20, 0}), "behind the camera")
	assert.True(t, frustum.IntersectsAABB(unitCube()))
}

func TestOrbitTypeString(t *testing.T) {
	assert.Equal(t, "free", OrbitFree.String())
	assert.Equal(t, "constrained", OrbitConstrained.String())
	assert.Equal(t, "OrbitType(5)", OrbitType(5).String())
}
