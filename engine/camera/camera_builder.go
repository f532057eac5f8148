package camera

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/projection"
	"github.com/go-gl/mathgl/mgl64"
)

type CameraBuilderOption func(*cameraImpl)

// WithPose sets the camera's initial camera-to-world transform.
//
// Parameters:
//   - pose: the initial pose
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's pose
func WithPose(pose common.Transform) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pose = common.NewTransform(pose.Rotation, pose.Translation)
	}
}

// WithPosition sets the camera's initial world-space position, keeping the current orientation.
//
// Parameters:
//   - position: world-space camera position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position mgl64.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pose.Translation = position
	}
}

// WithProjection gives the camera ownership of a projection. A nil projection keeps the default.
//
// Parameters:
//   - p: the projection to own
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's projection
func WithProjection(p projection.Projection) CameraBuilderOption {
	return func(c *cameraImpl) {
		if p != nil {
			c.projection = p
		}
	}
}
