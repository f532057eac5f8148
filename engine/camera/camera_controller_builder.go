package camera

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithCamera sets the camera the controller drives. The controller takes ownership of it.
// Without this option a camera with a perspective projection built from the settings is created.
//
// Parameters:
//   - camera: the camera to control
//
// Returns:
//   - CameraControllerOption: functional option to set the camera
func WithCamera(camera Camera) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.camera = camera
	}
}

// WithScene sets the scene whose bounds are used for fitting, view presets, the clip guard and
// projection toggling.
//
// Parameters:
//   - scene: the scene boundary
//
// Returns:
//   - CameraControllerOption: functional option to set the scene
func WithScene(scene Scene) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.scene = scene
	}
}

// WithBounds is WithScene for a scene with fixed bounds.
//
// Parameters:
//   - bounds: world-space scene bounds
//
// Returns:
//   - CameraControllerOption: functional option to set static scene bounds
func WithBounds(bounds common.AABB) CameraControllerOption {
	return WithScene(StaticScene(bounds))
}

// WithSettings replaces the default speed and step constants.
//
// Parameters:
//   - settings: controller settings, validated at construction
//
// Returns:
//   - CameraControllerOption: functional option to set the settings
func WithSettings(settings Settings) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.settings = settings
	}
}

// WithTarget sets the initial orbit target. Defaults to the scene bounds center, or the origin.
//
// Parameters:
//   - target: world-space orbit pivot
//
// Returns:
//   - CameraControllerOption: functional option to set the target
func WithTarget(target mgl64.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = target
		cc.targetSet = true
	}
}

// WithOrbitType sets the initial orbit type. Defaults to OrbitConstrained.
//
// Parameters:
//   - orbitType: the orbit type
//
// Returns:
//   - CameraControllerOption: functional option to set the orbit type
func WithOrbitType(orbitType OrbitType) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitType = orbitType
	}
}

// WithLocked sets the initial orientation lock.
//
// Parameters:
//   - locked: true to start with orientation commands disabled
//
// Returns:
//   - CameraControllerOption: functional option to set the lock
func WithLocked(locked bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.locked = locked
	}
}

// WithLogger sets the logger used for debug records. Defaults to a logger that discards everything.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - CameraControllerOption: functional option to set the logger
func WithLogger(logger *slog.Logger) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if logger != nil {
			cc.logger = logger
		}
	}
}
