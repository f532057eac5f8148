package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrInvalidDirection is returned when a named direction is not valid for a command.
	ErrInvalidDirection = errors.New("camera: invalid direction")
	// ErrUnknownView is returned when a view preset name is not recognized.
	ErrUnknownView = errors.New("camera: unknown view")
)

// Scene is the controller's view of the scene: only its world-space bounds matter.
type Scene interface {
	// Bounds returns the world-space bounding box of everything in the scene.
	//
	// Returns:
	//   - common.AABB: the scene bounds, possibly empty
	Bounds() common.AABB
}

// SceneFunc adapts a function to the Scene interface.
type SceneFunc func() common.AABB

func (f SceneFunc) Bounds() common.AABB {
	return f()
}

// StaticScene is a Scene with fixed bounds.
type StaticScene common.AABB

func (s StaticScene) Bounds() common.AABB {
	return common.AABB(s)
}

// Direction names a discrete step for directional commands.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
	DirectionUp
	DirectionDown
	DirectionIn
	DirectionOut
	DirectionClockwise
	DirectionCounterClockwise
)

var directionNames = map[Direction]string{
	DirectionNone:             "none",
	DirectionLeft:             "left",
	DirectionRight:            "right",
	DirectionUp:               "up",
	DirectionDown:             "down",
	DirectionIn:               "in",
	DirectionOut:              "out",
	DirectionClockwise:        "clockwise",
	DirectionCounterClockwise: "counter_clockwise",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection converts a binding suffix such as "left" or "counter_clockwise" into a Direction.
// The short forms "cw" and "ccw" are accepted for roll.
//
// Parameters:
//   - name: the direction name
//
// Returns:
//   - Direction: the parsed direction
//   - error: ErrInvalidDirection if the name is not recognized
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "cw":
		return DirectionClockwise, nil
	case "ccw":
		return DirectionCounterClockwise, nil
	}
	for d, n := range directionNames {
		if n == name && d != DirectionNone {
			return d, nil
		}
	}
	return DirectionNone, fmt.Errorf("%w: %q", ErrInvalidDirection, name)
}

// ViewPreset names a canonical viewing direction.
type ViewPreset int

const (
	ViewBack ViewPreset = iota
	ViewBottom
	ViewFront
	ViewIsometric
	ViewLeft
	ViewRight
	ViewTop
)

var viewPresets = []struct {
	name      string
	direction mgl64.Vec3
}{
	ViewBack:      {"back", mgl64.Vec3{0, -1, 0}},
	ViewBottom:    {"bottom", mgl64.Vec3{0, 0, 1}},
	ViewFront:     {"front", mgl64.Vec3{0, 1, 0}},
	ViewIsometric: {"isometric", mgl64.Vec3{-1, 1, -1}},
	ViewLeft:      {"left", mgl64.Vec3{1, 0, 0}},
	ViewRight:     {"right", mgl64.Vec3{-1, 0, 0}},
	ViewTop:       {"top", mgl64.Vec3{0, 0, -1}},
}

// ViewPresets returns every preset in declaration order.
//
// Returns:
//   - []ViewPreset: all view presets
func ViewPresets() []ViewPreset {
	presets := make([]ViewPreset, len(viewPresets))
	for i := range viewPresets {
		presets[i] = ViewPreset(i)
	}
	return presets
}

func (v ViewPreset) valid() bool {
	return v >= 0 && int(v) < len(viewPresets)
}

func (v ViewPreset) String() string {
	if !v.valid() {
		return fmt.Sprintf("ViewPreset(%d)", int(v))
	}
	return viewPresets[v].name
}

// Direction returns the default view direction: the way the camera looks, not where it sits.
//
// Returns:
//   - mgl64.Vec3: the view direction (not normalized)
func (v ViewPreset) Direction() mgl64.Vec3 {
	if !v.valid() {
		return mgl64.Vec3{}
	}
	return viewPresets[v].direction
}

// ParseViewPreset converts a preset name into a ViewPreset. "iso" is accepted for isometric.
//
// Parameters:
//   - name: the preset name
//
// Returns:
//   - ViewPreset: the parsed preset
//   - error: ErrUnknownView if the name is not recognized
func ParseViewPreset(name string) (ViewPreset, error) {
	if name == "iso" {
		return ViewIsometric, nil
	}
	for i, preset := range viewPresets {
		if preset.name == name {
			return ViewPreset(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// colinearAngle is the largest angle to Z at which a view direction still takes Y as its up vector.
const colinearAngle = 1e-6

// UpVector returns the up vector to pair with a view direction: world Z unless the direction is
// colinear with Z, in which case Y (looking along +Z) or -Y (looking along -Z) is used.
//
// Parameters:
//   - direction: the view direction
//
// Returns:
//   - mgl64.Vec3: the up vector
func UpVector(direction mgl64.Vec3) mgl64.Vec3 {
	angle := common.AngleBetween(direction, common.AxisZ)
	switch {
	case angle <= colinearAngle:
		return common.AxisY
	case math.Pi-angle <= colinearAngle:
		return common.AxisY.Mul(-1)
	default:
		return common.AxisZ
	}
}

// CameraController is the interactive layer over a Camera.
// It tracks an orbit target, an orbit type and an orientation lock, and turns discrete commands
// into camera primitives. Cursor positions, cursor deltas and scroll vectors are in NDC.
type CameraController interface {
	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera owned by this controller
	Camera() Camera

	// Settings returns the speed and step constants in use.
	//
	// Returns:
	//   - Settings: the controller settings
	Settings() Settings

	// Target returns the orbit target.
	//
	// Returns:
	//   - mgl64.Vec3: world-space orbit pivot
	Target() mgl64.Vec3

	// SetTarget moves the orbit target, typically in response to a pick.
	//
	// Parameters:
	//   - target: world-space point
	SetTarget(target mgl64.Vec3)

	// OrbitType returns the current orbit type.
	//
	// Returns:
	//   - OrbitType: free or constrained
	OrbitType() OrbitType

	// ToggleOrbitType flips between OrbitFree and OrbitConstrained.
	ToggleOrbitType()

	// Locked reports whether orientation commands are disabled.
	//
	// Returns:
	//   - bool: true if orbit, roll, view and normal-to are no-ops
	Locked() bool

	// ToggleLock flips the orientation lock.
	ToggleLock()

	// OrbitCursor orbits by a cursor drag.
	//
	// Parameters:
	//   - delta: NDC cursor delta
	//
	// Returns:
	//   - bool: false if the orientation is locked
	OrbitCursor(delta mgl64.Vec2) bool

	// OrbitScroll orbits by a scroll vector: x yaws and y pitches, one orbit step per unit.
	//
	// Parameters:
	//   - scroll: scroll amounts
	//
	// Returns:
	//   - bool: false if the orientation is locked
	OrbitScroll(scroll mgl64.Vec2) bool

	// OrbitDirection orbits one step left, right, up or down.
	//
	// Parameters:
	//   - direction: the orbit direction
	//
	// Returns:
	//   - bool: false if the orientation is locked
	//   - error: ErrInvalidDirection for a non-orbit direction
	OrbitDirection(direction Direction) (bool, error)

	// RollCursor rolls by the tangential component of a circular drag around the screen center.
	//
	// Parameters:
	//   - cursor: NDC cursor position at the end of the drag
	//   - delta: NDC cursor delta
	//
	// Returns:
	//   - float64: the applied roll angle; zero when locked or the drag started at the center
	RollCursor(cursor, delta mgl64.Vec2) float64

	// RollDirection rolls one step clockwise or counter-clockwise.
	//
	// Parameters:
	//   - direction: DirectionClockwise or DirectionCounterClockwise
	//
	// Returns:
	//   - float64: the applied roll angle; zero when locked
	//   - error: ErrInvalidDirection for a non-roll direction
	RollDirection(direction Direction) (float64, error)

	// TrackCursor moves the camera so the scene follows a cursor drag.
	// Perspective drags are scaled by the target depth so the target moves with the cursor.
	//
	// Parameters:
	//   - delta: NDC cursor delta
	TrackCursor(delta mgl64.Vec2)

	// TrackDirection tracks one step left, right, up or down.
	//
	// Parameters:
	//   - direction: the track direction
	//
	// Returns:
	//   - error: ErrInvalidDirection for a non-track direction
	TrackDirection(direction Direction) error

	// Scale dollies (perspective) or zooms (orthographic) by amount. Positive moves away.
	//
	// Parameters:
	//   - amount: dolly distance or width change
	//
	// Returns:
	//   - bool: false if the clip guard refused the dolly
	Scale(amount float64) bool

	// ScaleCursor scales by a vertical cursor drag.
	//
	// Parameters:
	//   - delta: NDC cursor delta
	//
	// Returns:
	//   - bool: false if the clip guard refused
	ScaleCursor(delta mgl64.Vec2) bool

	// ScaleScroll scales by a vertical scroll, one scale step per unit, honoring the scale-in sign.
	//
	// Parameters:
	//   - scroll: scroll amounts
	//
	// Returns:
	//   - bool: false if the clip guard refused
	ScaleScroll(scroll mgl64.Vec2) bool

	// ScaleDirection scales one step in or out.
	//
	// Parameters:
	//   - direction: DirectionIn or DirectionOut
	//
	// Returns:
	//   - bool: false if the clip guard refused
	//   - error: ErrInvalidDirection for a non-scale direction
	ScaleDirection(direction Direction) (bool, error)

	// ScaleToCursor scales and, when zooming in, tracks so the point under the cursor stays put.
	//
	// Parameters:
	//   - cursor: NDC cursor position
	//   - direction: number of scale steps; negative zooms in
	//
	// Returns:
	//   - bool: false if the clip guard refused
	ScaleToCursor(cursor mgl64.Vec2, direction float64) bool

	// ToggleProjection switches between orthographic and perspective while keeping the
	// apparent size of the scene center.
	//
	// Returns:
	//   - bool: false if the clip guard refused the dolly that keeps the apparent size; the projection is swapped either way
	//   - error: a projection construction error
	ToggleProjection() (bool, error)

	// Fit frames the scene bounds and moves the target to their center.
	//
	// Returns:
	//   - bool: false if the scene is empty
	Fit() bool

	// View looks at the scene along a preset direction and fits it.
	//
	// Parameters:
	//   - preset: the view preset
	//
	// Returns:
	//   - bool: false if the orientation is locked
	//   - error: ErrUnknownView or a lookAt error
	View(preset ViewPreset) (bool, error)

	// NormalTo snaps the view direction and then the right axis to the nearest world axes,
	// rotating about the target.
	//
	// Returns:
	//   - bool: false if the orientation is locked
	NormalTo() bool

	// Resize forwards new output pixel dimensions to the projection.
	//
	// Parameters:
	//   - width: output width in pixels
	//   - height: output height in pixels
	//
	// Returns:
	//   - error: projection.ErrInvalidSize if either dimension is not positive
	Resize(width, height float64) error

	// CastRay returns the world-space ray through an NDC cursor position.
	//
	// Parameters:
	//   - cursor: NDC cursor position
	//
	// Returns:
	//   - common.Ray: the pick ray
	CastRay(cursor mgl64.Vec2) common.Ray

	// Dispatch validates a command and routes it to the matching handler.
	//
	// Parameters:
	//   - spec: the command and its single input shape
	//
	// Returns:
	//   - bool: whether the command changed anything (guarded and locked commands report false)
	//   - error: a validation or configuration error
	Dispatch(spec CommandSpec) (bool, error)
}
