package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/engine/projection"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoute(t *testing.T) {
	cases := []struct {
		route     string
		kind      CommandKind
		direction Direction
		view      ViewPreset
	}{
		{route: "camera.fit", kind: CommandFit},
		{route: "camera.lock_toggle", kind: CommandLockToggle},
		{route: "camera.normal_to", kind: CommandNormalTo},
		{route: "camera.orbit", kind: CommandOrbit},
		{route: "camera.orbit.down", kind: CommandOrbit, direction: DirectionDown},
		{route: "camera.orbit.left", kind: CommandOrbit, direction: DirectionLeft},
		{route: "camera.orbit_toggle", kind: CommandOrbitToggle},
		{route: "camera.projection_toggle", kind: CommandProjectionToggle},
		{route: "camera.roll", kind: CommandRoll},
		{route: "camera.roll.clockwise", kind: CommandRoll, direction: DirectionClockwise},
		{route: "camera.roll.counter_clockwise", kind: CommandRoll, direction: DirectionCounterClockwise},
		{route: "camera.scale.in", kind: CommandScale, direction: DirectionIn},
		{route: "camera.scale.out", kind: CommandScale, direction: DirectionOut},
		{route: "camera.track.up", kind: CommandTrack, direction: DirectionUp},
		{route: "camera.view.back", kind: CommandView, view: ViewBack},
		{route: "camera.view.isometric", kind: CommandView, view: ViewIsometric},
		{route: "camera.view.top", kind: CommandView, view: ViewTop},
	}
	for _, tc := range cases {
		t.Run(tc.route, func(t *testing.T) {
			spec, err := ParseRoute(tc.route)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, spec.Kind)
			assert.Equal(t, tc.direction, spec.Direction)
			assert.Equal(t, tc.view, spec.View)
			assert.Equal(t, tc.route, spec.Route())
		})
	}
}

func TestParseRouteAliases(t *testing.T) {
	spec, err := ParseRoute("camera.view.iso")
	require.NoError(t, err)
	assert.Equal(t, ViewIsometric, spec.View)

	spec, err = ParseRoute("camera.roll.ccw")
	require.NoError(t, err)
	assert.Equal(t, DirectionCounterClockwise, spec.Direction)
}

func TestParseRouteErrors(t *testing.T) {
	cases := map[string]error{
		"window.fit":            ErrUnknownCommand,
		"camera":                ErrUnknownCommand,
		"camera.bogus":          ErrUnknownCommand,
		"camera.fit.now":        ErrUnknownCommand,
		"camera.orbit.left.now": ErrUnknownCommand,
		"camera.view":           ErrUnknownView,
		"camera.view.sideways":  ErrUnknownView,
		"camera.orbit.sideways": ErrInvalidDirection,
	}
	for route, expected := range cases {
		_, err := ParseRoute(route)
		assert.ErrorIs(t, err, expected, route)
	}
}

func TestCommandSpecValidate(t *testing.T) {
	delta := mgl64.Vec2{0.1, 0.1}

	assert.NoError(t, CommandSpec{Kind: CommandOrbit, CursorDelta: &delta}.Validate())
	assert.NoError(t, CommandSpec{Kind: CommandFit}.Validate())

	err := CommandSpec{Kind: CommandOrbit, Direction: DirectionLeft, Scroll: &delta}.Validate()
	assert.ErrorIs(t, err, ErrAmbiguousInput)

	err = CommandSpec{Kind: CommandTrack}.Validate()
	assert.ErrorIs(t, err, ErrMissingInput)

	err = CommandSpec{Kind: CommandRoll, Scroll: &delta}.Validate()
	assert.ErrorIs(t, err, ErrUnsupportedInput)

	err = CommandSpec{Kind: CommandFit, CursorDelta: &delta}.Validate()
	assert.ErrorIs(t, err, ErrUnsupportedInput)

	err = CommandSpec{Kind: CommandKind(99)}.Validate()
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestDispatch(t *testing.T) {
	cc := lookingAt(t, mgl64.Vec3{0, -10, 0})

	spec, err := ParseRoute("camera.orbit.left")
	require.NoError(t, err)
	applied, err := cc.Dispatch(spec)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Less(t, cc.Camera().Position().X(), 0.0, "the camera swings to its left")

	applied, err = cc.Dispatch(CommandSpec{Kind: CommandLockToggle})
	require.NoError(t, err)
	assert.True(t, applied)
	applied, err = cc.Dispatch(spec)
	require.NoError(t, err)
	assert.False(t, applied, "orbit is a no-op while locked")

	applied, err = cc.Dispatch(CommandSpec{Kind: CommandProjectionToggle})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, projection.KindOrthographic, cc.Camera().Projection().Kind())

	_, err = cc.Dispatch(CommandSpec{Kind: CommandTrack})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestDispatchScrollScalesToCursor(t *testing.T) {
	cc := newController(t)
	c := cc.Camera()
	c.SetPosition(mgl64.Vec3{0, 0, 100})

	scroll := mgl64.Vec2{0, -1}
	applied, err := cc.Dispatch(CommandSpec{Kind: CommandScale, CursorPosition: mgl64.Vec2{0.5, 0}, Scroll: &scroll})
	require.NoError(t, err)
	assert.True(t, applied)

	position := c.Position()
	assert.InDelta(t, 100-cc.Settings().ScaleStep, position.Z(), tolerance)
	assert.Greater(t, position.X(), 0.0, "zooming in moves toward the cursor")
}

func TestDispatchRollCursor(t *testing.T) {
	cc := newController(t)
	delta := mgl64.Vec2{0, 0.1}

	applied, err := cc.Dispatch(CommandSpec{Kind: CommandRoll, CursorPosition: mgl64.Vec2{0.5, 0.1}, CursorDelta: &delta})
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = cc.Dispatch(CommandSpec{Kind: CommandRoll, CursorPosition: delta, CursorDelta: &delta})
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestDispatchView(t *testing.T) {
	cc := newController(t, WithBounds(unitCube()))
	spec, err := ParseRoute("camera.view.front")
	require.NoError(t, err)

	applied, err := cc.Dispatch(spec)
	require.NoError(t, err)
	assert.True(t, applied)
	assertVec3(t, mgl64.Vec3{0, 1, 0}, cc.Camera().Pose().Vector(mgl64.Vec3{0, 0, -1}))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "projection_toggle", CommandProjectionToggle.String())
	assert.Equal(t, "CommandKind(99)", CommandKind(99).String())
	assert.Equal(t, "counter_clockwise", DirectionCounterClockwise.String())
	assert.Equal(t, "Direction(99)", Direction(99).String())
	assert.Equal(t, "isometric", ViewIsometric.String())
	assert.Equal(t, "ViewPreset(99)", ViewPreset(99).String())

	_, err := ParseDirection("none")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
