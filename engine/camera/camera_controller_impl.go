package camera

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/projection"
	"github.com/go-gl/mathgl/mgl64"
)

// cameraControllerImpl is the single implementation of CameraController.
// It is driven from one goroutine (the host's input loop) and is not safe for concurrent use;
// the camera it owns guards its own state.
type cameraControllerImpl struct {
	camera Camera
	scene  Scene

	settings Settings

	target    mgl64.Vec3
	targetSet bool

	orbitType OrbitType
	locked    bool

	// verticalFov is the last perspective field of view, restored when toggling back from orthographic.
	verticalFov float64

	logger *slog.Logger
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller with the default settings, a constrained orbit and no lock.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
//   - error: a wrapped ErrInvalidSettings or a projection construction error
func NewCameraController(options ...CameraControllerOption) (CameraController, error) {
	cc := &cameraControllerImpl{
		settings:  DefaultSettings(),
		orbitType: OrbitConstrained,
		logger:    slog.New(slog.DiscardHandler),
	}

	for _, option := range options {
		option(cc)
	}

	if err := cc.settings.Validate(); err != nil {
		return nil, err
	}
	if cc.camera == nil {
		lens, err := cc.settings.newPerspective(projection.DefaultAspect)
		if err != nil {
			return nil, fmt.Errorf("failed to create camera projection: %w", err)
		}
		cc.camera = NewCamera(WithProjection(lens))
	}
	if !cc.targetSet {
		if bounds := cc.bounds(); !bounds.IsEmpty() {
			cc.target = bounds.Center()
		}
	}
	cc.verticalFov = cc.settings.VerticalFov
	if p, ok := cc.camera.Projection().(*projection.Perspective); ok {
		cc.verticalFov = p.VerticalFov()
	}
	return cc, nil
}

// --- internal helpers ---

// bounds returns the scene bounds, or an empty box when no scene is attached.
func (cc *cameraControllerImpl) bounds() common.AABB {
	if cc.scene == nil {
		return common.EmptyAABB()
	}
	return cc.scene.Bounds()
}

// dollyWillClip reports whether dollying outward by displacement would push the back of the
// scene beyond the far clipping plane.
func (cc *cameraControllerImpl) dollyWillClip(displacement float64) bool {
	if displacement <= 0 {
		return false
	}
	bounds := cc.bounds()
	if bounds.IsEmpty() {
		return false
	}

	worldToCamera := cc.camera.WorldToCamera()
	back := math.Inf(1)
	for _, corner := range bounds.Corners() {
		back = math.Min(back, worldToCamera.Point(corner).Z())
	}
	return displacement-back > cc.camera.Projection().Far()
}

// rotateAboutTarget rotates the camera pose by angle around an axis through the target.
func (cc *cameraControllerImpl) rotateAboutTarget(axis mgl64.Vec3, angle float64) {
	rotation := common.TranslationTransform(cc.target).
		Mul(common.RotationTransform(axis, angle)).
		Mul(common.TranslationTransform(cc.target.Mul(-1)))
	cc.camera.SetPose(rotation.Mul(cc.camera.Pose()))
}

// viewDirection returns the preset direction, preferring a settings override.
func (cc *cameraControllerImpl) viewDirection(preset ViewPreset) mgl64.Vec3 {
	if override, ok := cc.settings.Views[preset.String()]; ok {
		return mgl64.Vec3(override)
	}
	return preset.Direction()
}

func (cc *cameraControllerImpl) orbit(pitch, yaw float64) bool {
	if cc.locked {
		return false
	}
	cc.camera.Orbit(cc.target, pitch, yaw, cc.orbitType)
	return true
}

func (cc *cameraControllerImpl) roll(angle float64) float64 {
	if cc.locked {
		return 0
	}
	cc.camera.Roll(angle)
	return angle
}

// --- state ---

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}

func (cc *cameraControllerImpl) Settings() Settings {
	return cc.settings
}

func (cc *cameraControllerImpl) Target() mgl64.Vec3 {
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target mgl64.Vec3) {
	cc.target = target
}

func (cc *cameraControllerImpl) OrbitType() OrbitType {
	return cc.orbitType
}

func (cc *cameraControllerImpl) ToggleOrbitType() {
	if cc.orbitType == OrbitConstrained {
		cc.orbitType = OrbitFree
	} else {
		cc.orbitType = OrbitConstrained
	}
	cc.logger.Debug("orbit type toggled", "orbit_type", cc.orbitType)
}

func (cc *cameraControllerImpl) Locked() bool {
	return cc.locked
}

func (cc *cameraControllerImpl) ToggleLock() {
	cc.locked = !cc.locked
	cc.logger.Debug("orientation lock toggled", "locked", cc.locked)
}

// --- orbit ---

func (cc *cameraControllerImpl) OrbitCursor(delta mgl64.Vec2) bool {
	angle := delta.Mul(cc.settings.OrbitSpeed)
	return cc.orbit(angle.Y(), -angle.X())
}

func (cc *cameraControllerImpl) OrbitScroll(scroll mgl64.Vec2) bool {
	angle := scroll.Mul(cc.settings.OrbitStep)
	return cc.orbit(angle.Y(), angle.X())
}

func (cc *cameraControllerImpl) OrbitDirection(direction Direction) (bool, error) {
	step := cc.settings.OrbitStep
	switch direction {
	case DirectionLeft:
		return cc.orbit(0, -step), nil
	case DirectionRight:
		return cc.orbit(0, step), nil
	case DirectionUp:
		return cc.orbit(-step, 0), nil
	case DirectionDown:
		return cc.orbit(step, 0), nil
	default:
		return false, fmt.Errorf("%w: cannot orbit %s", ErrInvalidDirection, direction)
	}
}

// --- roll ---

func (cc *cameraControllerImpl) RollCursor(cursor, delta mgl64.Vec2) float64 {
	// radius runs from the screen center to where the drag started
	radius := cursor.Sub(delta)
	if common.NearlyZero(radius.Len()) {
		return 0
	}
	tangent := mgl64.Vec2{radius.Y(), -radius.X()}.Normalize()
	return cc.roll(cc.settings.RollSpeed * delta.Dot(tangent))
}

func (cc *cameraControllerImpl) RollDirection(direction Direction) (float64, error) {
	switch direction {
	case DirectionClockwise:
		return cc.roll(-cc.settings.RollStep), nil
	case DirectionCounterClockwise:
		return cc.roll(cc.settings.RollStep), nil
	default:
		return 0, fmt.Errorf("%w: cannot roll %s", ErrInvalidDirection, direction)
	}
}

// --- track ---

func (cc *cameraControllerImpl) TrackCursor(delta mgl64.Vec2) {
	point := cc.camera.CameraSpace(delta)

	shift := point.Vec2()
	if cc.camera.Projection().Kind() == projection.KindPerspective {
		depth := -cc.camera.WorldToCamera().Point(cc.target).Z()
		shift = unitDepth(point).Vec2().Mul(depth)
	}

	// the scene follows the cursor, so the camera moves the other way
	cc.camera.TrackVector(shift.Mul(-1))
}

func (cc *cameraControllerImpl) TrackDirection(direction Direction) error {
	step := cc.settings.TrackStep
	switch direction {
	case DirectionLeft:
		cc.camera.Track(-step, 0)
	case DirectionRight:
		cc.camera.Track(step, 0)
	case DirectionUp:
		cc.camera.Track(0, step)
	case DirectionDown:
		cc.camera.Track(0, -step)
	default:
		return fmt.Errorf("%w: cannot track %s", ErrInvalidDirection, direction)
	}
	return nil
}

// --- scale ---

func (cc *cameraControllerImpl) Scale(amount float64) bool {
	if ortho, ok := cc.camera.Projection().(*projection.Orthographic); ok {
		ortho.Zoom(amount)
		return true
	}
	if cc.dollyWillClip(amount) {
		cc.logger.Debug("dolly refused by clip guard", "displacement", amount)
		return false
	}
	cc.camera.Dolly(amount)
	return true
}

func (cc *cameraControllerImpl) ScaleCursor(delta mgl64.Vec2) bool {
	return cc.Scale(cc.settings.ScaleSpeed * delta.Y())
}

func (cc *cameraControllerImpl) ScaleScroll(scroll mgl64.Vec2) bool {
	return cc.Scale(cc.settings.ScaleStep * scroll.Y() * cc.settings.ScaleIn)
}

func (cc *cameraControllerImpl) ScaleDirection(direction Direction) (bool, error) {
	switch direction {
	case DirectionIn:
		return cc.Scale(-cc.settings.ScaleStep), nil
	case DirectionOut:
		return cc.Scale(cc.settings.ScaleStep), nil
	default:
		return false, fmt.Errorf("%w: cannot scale %s", ErrInvalidDirection, direction)
	}
}

func (cc *cameraControllerImpl) ScaleToCursor(cursor mgl64.Vec2, direction float64) bool {
	// dolly distance for perspective, width change for orthographic
	deltaScale := direction * cc.settings.ScaleStep
	point := cc.camera.CameraSpace(cursor)

	var shift mgl64.Vec2
	if ortho, ok := cc.camera.Projection().(*projection.Orthographic); ok {
		width := ortho.Width()
		if !cc.Scale(deltaScale) {
			return false
		}
		shift = point.Vec2().Mul(-(ortho.Width() - width) / width)
	} else {
		if !cc.Scale(deltaScale) {
			return false
		}
		shift = unitDepth(point).Vec2().Mul(-deltaScale)
	}

	if deltaScale < 0 {
		cc.camera.TrackVector(shift)
	}
	return true
}

// --- framing ---

func (cc *cameraControllerImpl) ToggleProjection() (bool, error) {
	bounds := cc.bounds()
	var center mgl64.Vec3
	if !bounds.IsEmpty() {
		center = bounds.Center()
	}
	point := cc.camera.WorldToCamera().Point(center)
	preserved := true

	switch lens := cc.camera.Projection().(type) {
	case *projection.Perspective:
		cc.verticalFov = lens.VerticalFov()

		// equal NDC x at the center: P00·x / -z == 2·x / width
		width := -2 * point.Z() / lens.Matrix()[0]
		if -point.Z() <= lens.Near() {
			width = 2 * bounds.SphereRadius()
		}
		if !(width > 0) {
			width = projection.DefaultWidth
		}

		ortho, err := projection.NewOrthographic(
			projection.WithAspect(lens.Aspect()),
			projection.WithNearClip(lens.Near()),
			projection.WithFarClip(lens.Far()),
			projection.WithWidth(width),
		)
		if err != nil {
			return false, fmt.Errorf("failed to create orthographic projection: %w", err)
		}
		cc.camera.SetProjection(ortho)

		// a parallel projection cannot frame the scene from inside it
		if !bounds.IsEmpty() && bounds.Contains(cc.camera.Position()) {
			cc.camera.Dolly(2 * bounds.SphereRadius())
		}
		cc.logger.Debug("projection toggled", "projection", ortho.Kind(), "width", width)

	case *projection.Orthographic:
		persp, err := projection.NewPerspective(
			projection.WithAspect(lens.Aspect()),
			projection.WithNearClip(lens.Near()),
			projection.WithFarClip(lens.Far()),
			projection.WithVerticalFov(common.Coalesce(cc.verticalFov, cc.settings.VerticalFov)),
		)
		if err != nil {
			return false, fmt.Errorf("failed to create perspective projection: %w", err)
		}
		cc.camera.SetProjection(persp)

		// move so the center sits at z = -P00·width/2
		delta := point.Z() + persp.Matrix()[0]*lens.Width()/2
		if cc.dollyWillClip(delta) {
			cc.logger.Info("projection toggled without keeping apparent size: dolly refused by clip guard", "displacement", delta)
			preserved = false
		} else {
			cc.camera.Dolly(delta)
		}
		cc.logger.Debug("projection toggled", "projection", persp.Kind(), "vertical_fov", persp.VerticalFov())
	}
	return preserved, nil
}

func (cc *cameraControllerImpl) Fit() bool {
	bounds := cc.bounds()
	if bounds.IsEmpty() {
		return false
	}
	cc.camera.Fit(bounds)
	cc.target = bounds.Center()
	return true
}

func (cc *cameraControllerImpl) View(preset ViewPreset) (bool, error) {
	if !preset.valid() {
		return false, fmt.Errorf("%w: %s", ErrUnknownView, preset)
	}
	if cc.locked {
		return false, nil
	}

	direction := cc.viewDirection(preset)
	bounds := cc.bounds()
	var center mgl64.Vec3
	distance := 1.0
	if !bounds.IsEmpty() {
		center = bounds.Center()
		distance = math.Max(2*bounds.SphereRadius(), distance)
	}

	position := center.Sub(direction.Normalize().Mul(distance))
	if err := cc.camera.LookAt(position, center, UpVector(direction)); err != nil {
		return false, fmt.Errorf("failed to look at %s view: %w", preset, err)
	}
	if !bounds.IsEmpty() {
		cc.camera.Fit(bounds)
	}
	cc.target = center
	return true, nil
}

func (cc *cameraControllerImpl) NormalTo() bool {
	if cc.locked {
		return false
	}

	axes := common.Axes()
	backward := cc.camera.Pose().Vector(common.AxisZ)
	nearest, angle := common.NearestAxis(backward, axes[:])
	cc.rotateAboutTarget(backward.Cross(nearest), angle)

	candidates := make([]mgl64.Vec3, 0, len(axes)-2)
	for _, axis := range axes {
		if axis != nearest && axis != nearest.Mul(-1) {
			candidates = append(candidates, axis)
		}
	}
	right := cc.camera.Pose().Vector(common.AxisX)
	nearest, angle = common.NearestAxis(right, candidates)
	cc.rotateAboutTarget(right.Cross(nearest), angle)
	return true
}

// --- boundary ---

func (cc *cameraControllerImpl) Resize(width, height float64) error {
	return cc.camera.Projection().Resize(width, height)
}

func (cc *cameraControllerImpl) CastRay(cursor mgl64.Vec2) common.Ray {
	return cc.camera.CastRay(cursor)
}
