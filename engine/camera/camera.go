package camera

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/projection"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegenerateOrientation is returned by LookAt when the requested orientation is ambiguous:
// the position coincides with the target or the up vector is parallel to the view direction.
var ErrDegenerateOrientation = errors.New("camera: degenerate orientation")

// OrbitType selects the axis used for yaw while orbiting.
type OrbitType int

const (
	// OrbitFree yaws about the camera's own up axis.
	OrbitFree OrbitType = iota
	// OrbitConstrained yaws about the world up axis (Z).
	OrbitConstrained
)

func (o OrbitType) String() string {
	switch o {
	case OrbitFree:
		return "free"
	case OrbitConstrained:
		return "constrained"
	default:
		return fmt.Sprintf("OrbitType(%d)", int(o))
	}
}

type cameraImpl struct {
	mu *sync.Mutex

	pose       common.Transform
	projection projection.Projection
}

// Camera owns a camera-to-world pose and exactly one projection.
// The camera looks down its local negative Z axis with local X to the right and local Y up.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl64.Vec3: world-space camera position
	Position() mgl64.Vec3

	// SetPosition moves the camera without altering its orientation.
	//
	// Parameters:
	//   - position: new world-space position
	SetPosition(position mgl64.Vec3)

	// Pose returns the camera-to-world transform.
	//
	// Returns:
	//   - common.Transform: the current pose
	Pose() common.Transform

	// SetPose replaces the camera-to-world transform.
	//
	// Parameters:
	//   - pose: the new pose
	SetPose(pose common.Transform)

	// WorldToCamera returns the exact inverse of the pose.
	//
	// Returns:
	//   - common.Transform: the world-to-camera transform
	WorldToCamera() common.Transform

	// Projection returns the projection owned by the camera.
	//
	// Returns:
	//   - projection.Projection: the current projection
	Projection() projection.Projection

	// SetProjection replaces the projection wholesale. A nil projection is ignored.
	//
	// Parameters:
	//   - p: the new projection
	SetProjection(p projection.Projection)

	// ViewMatrix returns the world-to-camera matrix (column-major).
	//
	// Returns:
	//   - mgl64.Mat4: the view matrix
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the camera-to-clip matrix (column-major).
	//
	// Returns:
	//   - mgl64.Mat4: the projection matrix
	ProjectionMatrix() mgl64.Mat4

	// ViewProjectionMatrix returns projection · view (column-major).
	//
	// Returns:
	//   - mgl64.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl64.Mat4

	// Frustum returns the six world-space clipping planes of the current view.
	//
	// Returns:
	//   - common.Frustum: the view frustum
	Frustum() common.Frustum

	// LookAt rebuilds the pose from a position and a target.
	// A zero up vector selects the world Z axis.
	//
	// Parameters:
	//   - position: new world-space camera position
	//   - target: world-space point to look at
	//   - up: approximate world up direction
	//
	// Returns:
	//   - error: ErrDegenerateOrientation if up is parallel to the view direction or position equals target
	LookAt(position, target, up mgl64.Vec3) error

	// Orbit rotates the pose about target by pitch around the camera's right axis, then by yaw
	// around either the camera's up axis (OrbitFree) or the world Z axis (OrbitConstrained).
	//
	// Parameters:
	//   - target: world-space pivot point
	//   - pitch: rotation about the right axis in radians
	//   - yaw: rotation about the yaw axis in radians
	//   - orbitType: which yaw axis to use
	Orbit(target mgl64.Vec3, pitch, yaw float64, orbitType OrbitType)

	// Roll rotates the camera about its own view axis. Positive angles are counter-clockwise as seen by the camera.
	//
	// Parameters:
	//   - angle: roll angle in radians
	Roll(angle float64)

	// Dolly translates the camera along its local Z axis. Positive values move away from the view direction.
	//
	// Parameters:
	//   - z: camera-space distance
	Dolly(z float64)

	// Track translates the camera along its local right and up axes.
	//
	// Parameters:
	//   - x: distance along the right axis
	//   - y: distance along the up axis
	Track(x, y float64)

	// TrackVector is Track with the offset packed in a vector.
	//
	// Parameters:
	//   - offset: camera-space (right, up) distance
	TrackVector(offset mgl64.Vec2)

	// Fit frames bounds along the current view direction.
	// Perspective cameras move; orthographic cameras resize the projection and back off.
	// Empty bounds leave the camera untouched.
	//
	// Parameters:
	//   - bounds: world-space box to frame
	Fit(bounds common.AABB)

	// CameraSpace unprojects an NDC point onto the near clipping plane in camera space.
	//
	// Parameters:
	//   - ndc: normalized device coordinates in [-1, 1]²
	//
	// Returns:
	//   - mgl64.Vec3: camera-space point on the near plane
	CameraSpace(ndc mgl64.Vec2) mgl64.Vec3

	// CastRay returns the world-space ray through an NDC point.
	//
	// Parameters:
	//   - ndc: normalized device coordinates in [-1, 1]²
	//
	// Returns:
	//   - common.Ray: world-space ray with unit direction
	CastRay(ndc mgl64.Vec2) common.Ray
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at the identity pose with the default perspective projection.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		pose:       common.IdentityTransform(),
		projection: projection.DefaultPerspective(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Position() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose.Translation
}

func (c *cameraImpl) SetPosition(position mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose.Translation = position
}

func (c *cameraImpl) Pose() common.Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

func (c *cameraImpl) SetPose(pose common.Transform) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = common.NewTransform(pose.Rotation, pose.Translation)
}

func (c *cameraImpl) WorldToCamera() common.Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose.Inverse()
}

func (c *cameraImpl) Projection() projection.Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) SetProjection(p projection.Projection) {
	if p == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = p
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose.Inverse().Matrix()
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection.Matrix()
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjection()
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustumFromMatrix(c.viewProjection())
}

func (c *cameraImpl) LookAt(position, target, up mgl64.Vec3) error {
	up = common.Coalesce(up, common.AxisZ)

	forward := position.Sub(target)
	if common.NearlyZero(forward.Len()) {
		return fmt.Errorf("%w: position %v equals target", ErrDegenerateOrientation, position)
	}
	forward = forward.Normalize()

	right := up.Cross(forward)
	if right.Len() <= common.Epsilon*up.Len() {
		return fmt.Errorf("%w: up %v is parallel to view direction %v", ErrDegenerateOrientation, up, forward)
	}
	right = right.Normalize()
	trueUp := forward.Cross(right)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = common.TransformFromBasis(right, trueUp, forward, position)
	return nil
}

func (c *cameraImpl) Orbit(target mgl64.Vec3, pitch, yaw float64, orbitType OrbitType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pose := common.TranslationTransform(target.Mul(-1)).Mul(c.pose)
	pose = common.RotationTransform(pose.Vector(common.AxisX), pitch).Mul(pose)

	yawAxis := common.AxisZ
	if orbitType == OrbitFree {
		yawAxis = pose.Vector(common.AxisY)
	}
	pose = common.RotationTransform(yawAxis, yaw).Mul(pose)

	c.pose = common.TranslationTransform(target).Mul(pose)
}

func (c *cameraImpl) Roll(angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = c.pose.Mul(common.RotationTransform(common.AxisZ, angle))
}

func (c *cameraImpl) Dolly(z float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = c.pose.Mul(common.TranslationTransform(mgl64.Vec3{0, 0, z}))
}

func (c *cameraImpl) Track(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = c.pose.Mul(common.TranslationTransform(mgl64.Vec3{x, y, 0}))
}

func (c *cameraImpl) TrackVector(offset mgl64.Vec2) {
	c.Track(offset.X(), offset.Y())
}

func (c *cameraImpl) Fit(bounds common.AABB) {
	if bounds.IsEmpty() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	center := bounds.Center()
	radius := bounds.SphereRadius()
	backward := c.pose.Vector(common.AxisZ)

	switch p := c.projection.(type) {
	case *projection.Perspective:
		halfFov := math.Min(p.HorizontalFov(), p.VerticalFov()) / 2
		c.pose.Translation = center.Add(backward.Mul(radius / math.Sin(halfFov)))
	case *projection.Orthographic:
		diameter := 2 * radius
		if diameter > 0 {
			if p.Aspect() < 1 {
				_ = p.SetWidth(diameter)
			} else {
				_ = p.SetHeight(diameter)
			}
		}
		c.pose.Translation = center.Add(backward.Mul(2 * radius))
	}
}

func (c *cameraImpl) CameraSpace(ndc mgl64.Vec2) mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cameraSpace(ndc)
}

func (c *cameraImpl) CastRay(ndc mgl64.Vec2) common.Ray {
	c.mu.Lock()
	defer c.mu.Unlock()

	point := c.cameraSpace(ndc)
	if c.projection.Kind() == projection.KindOrthographic {
		return common.NewRay(c.pose.Point(point), c.pose.Vector(mgl64.Vec3{0, 0, -1}))
	}
	return common.NewRay(c.pose.Translation, c.pose.Vector(point))
}

// cameraSpace reads the diagonal of the analytic inverse. Caller must hold the mutex.
func (c *cameraImpl) cameraSpace(ndc mgl64.Vec2) mgl64.Vec3 {
	inverse := c.projection.Inverse()
	near := c.projection.Near()
	if c.projection.Kind() == projection.KindPerspective {
		return mgl64.Vec3{inverse[0] * ndc.X() * near, inverse[5] * ndc.Y() * near, -near}
	}
	return mgl64.Vec3{inverse[0] * ndc.X(), inverse[5] * ndc.Y(), -near}
}

// viewProjection combines the projection and view matrices. Caller must hold the mutex.
func (c *cameraImpl) viewProjection() mgl64.Mat4 {
	return c.projection.Matrix().Mul4(c.pose.Inverse().Matrix())
}

// unitDepth scales a camera-space point onto the plane z = -1.
func unitDepth(point mgl64.Vec3) mgl64.Vec3 {
	if common.NearlyZero(point.Z()) {
		return point
	}
	return point.Mul(-1 / point.Z())
}
