package camera

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrUnknownCommand is returned for a command kind or route that does not exist.
	ErrUnknownCommand = errors.New("camera: unknown command")
	// ErrAmbiguousInput is returned when more than one input shape is populated on a command.
	ErrAmbiguousInput = errors.New("camera: more than one input shape provided")
	// ErrMissingInput is returned when a command requires an input shape and none is provided.
	ErrMissingInput = errors.New("camera: no input provided")
	// ErrUnsupportedInput is returned when a command does not accept the provided input shape.
	ErrUnsupportedInput = errors.New("camera: input shape not supported by command")
)

// RoutePrefix is the namespace of every camera command route.
const RoutePrefix = "camera"

// CommandKind is the closed set of controller commands.
type CommandKind int

const (
	CommandFit CommandKind = iota
	CommandLockToggle
	CommandNormalTo
	CommandOrbit
	CommandOrbitToggle
	CommandProjectionToggle
	CommandRoll
	CommandScale
	CommandTrack
	CommandView
)

var commandNames = map[CommandKind]string{
	CommandFit:              "fit",
	CommandLockToggle:       "lock_toggle",
	CommandNormalTo:         "normal_to",
	CommandOrbit:            "orbit",
	CommandOrbitToggle:      "orbit_toggle",
	CommandProjectionToggle: "projection_toggle",
	CommandRoll:             "roll",
	CommandScale:            "scale",
	CommandTrack:            "track",
	CommandView:             "view",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// CommandSpec is one command invocation. At most one input shape is populated:
// a named Direction, a CursorDelta or a Scroll. CursorPosition accompanies the cursor and
// scroll shapes where the command needs it (roll, scale to cursor).
type CommandSpec struct {
	Kind      CommandKind
	Direction Direction
	View      ViewPreset

	CursorPosition mgl64.Vec2
	CursorDelta    *mgl64.Vec2
	Scroll         *mgl64.Vec2
}

// inputShape is a bit set of the input shapes a command accepts.
type inputShape uint8

const (
	inputDirection inputShape = 1 << iota
	inputCursor
	inputScroll
)

func (s CommandSpec) shape() inputShape {
	var shape inputShape
	if s.Direction != DirectionNone {
		shape |= inputDirection
	}
	if s.CursorDelta != nil {
		shape |= inputCursor
	}
	if s.Scroll != nil {
		shape |= inputScroll
	}
	return shape
}

type commandHandler struct {
	// accepts is zero for commands that take no input
	accepts inputShape
	run     func(cc *cameraControllerImpl, spec CommandSpec) (bool, error)
}

var commandHandlers = map[CommandKind]commandHandler{
	CommandFit: {
		run: func(cc *cameraControllerImpl, _ CommandSpec) (bool, error) {
			return cc.Fit(), nil
		},
	},
	CommandLockToggle: {
		run: func(cc *cameraControllerImpl, _ CommandSpec) (bool, error) {
			cc.ToggleLock()
			return true, nil
		},
	},
	CommandNormalTo: {
		run: func(cc *cameraControllerImpl, _ CommandSpec) (bool, error) {
			return cc.NormalTo(), nil
		},
	},
	CommandOrbit: {
		accepts: inputDirection | inputCursor | inputScroll,
		run: func(cc *cameraControllerImpl, spec CommandSpec) (bool, error) {
			switch {
			case spec.CursorDelta != nil:
				return cc.OrbitCursor(*spec.CursorDelta), nil
			case spec.Scroll != nil:
				return cc.OrbitScroll(*spec.Scroll), nil
			default:
				return cc.OrbitDirection(spec.Direction)
			}
		},
	},
	CommandOrbitToggle: {
		run: func(cc *cameraControllerImpl, _ CommandSpec) (bool, error) {
			cc.ToggleOrbitType()
			return true, nil
		},
	},
	CommandProjectionToggle: {
		run: func(cc *cameraControllerImpl, _ CommandSpec) (bool, error) {
			return cc.ToggleProjection()
		},
	},
	CommandRoll: {
		accepts: inputDirection | inputCursor,
		run: func(cc *cameraControllerImpl, spec CommandSpec) (bool, error) {
			if spec.CursorDelta != nil {
				return cc.RollCursor(spec.CursorPosition, *spec.CursorDelta) != 0, nil
			}
			angle, err := cc.RollDirection(spec.Direction)
			return angle != 0, err
		},
	},
	CommandScale: {
		accepts: inputDirection | inputCursor | inputScroll,
		run: func(cc *cameraControllerImpl, spec CommandSpec) (bool, error) {
			switch {
			case spec.CursorDelta != nil:
				return cc.ScaleCursor(*spec.CursorDelta), nil
			case spec.Scroll != nil:
				return cc.ScaleToCursor(spec.CursorPosition, spec.Scroll.Y()*cc.settings.ScaleIn), nil
			default:
				return cc.ScaleDirection(spec.Direction)
			}
		},
	},
	CommandTrack: {
		accepts: inputDirection | inputCursor,
		run: func(cc *cameraControllerImpl, spec CommandSpec) (bool, error) {
			if spec.CursorDelta != nil {
				cc.TrackCursor(*spec.CursorDelta)
				return true, nil
			}
			if err := cc.TrackDirection(spec.Direction); err != nil {
				return false, err
			}
			return true, nil
		},
	},
	CommandView: {
		run: func(cc *cameraControllerImpl, spec CommandSpec) (bool, error) {
			return cc.View(spec.View)
		},
	},
}

// Validate checks that the command exists and carries an input shape it accepts.
//
// Returns:
//   - error: ErrUnknownCommand, ErrAmbiguousInput, ErrMissingInput or ErrUnsupportedInput
func (s CommandSpec) Validate() error {
	handler, ok := commandHandlers[s.Kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, s.Kind)
	}
	shape := s.shape()
	switch {
	case shape&(shape-1) != 0:
		return fmt.Errorf("%w: %s", ErrAmbiguousInput, s.Kind)
	case shape == 0 && handler.accepts != 0:
		return fmt.Errorf("%w: %s", ErrMissingInput, s.Kind)
	case shape&^handler.accepts != 0:
		return fmt.Errorf("%w: %s", ErrUnsupportedInput, s.Kind)
	}
	return nil
}

func (cc *cameraControllerImpl) Dispatch(spec CommandSpec) (bool, error) {
	if err := spec.Validate(); err != nil {
		return false, err
	}
	applied, err := commandHandlers[spec.Kind].run(cc, spec)
	cc.logger.Debug("camera command dispatched", "command", spec.Kind, "direction", spec.Direction, "applied", applied)
	return applied, err
}

// ParseRoute converts a binding route such as "camera.orbit.left" or "camera.view.top" into a
// CommandSpec. Routes without a parameter ("camera.orbit") leave the input shape for the caller
// to fill in.
//
// Parameters:
//   - route: the dotted command route
//
// Returns:
//   - CommandSpec: the parsed command
//   - error: ErrUnknownCommand, ErrInvalidDirection or ErrUnknownView
func ParseRoute(route string) (CommandSpec, error) {
	parts := strings.Split(route, ".")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != RoutePrefix {
		return CommandSpec{}, fmt.Errorf("%w: %q", ErrUnknownCommand, route)
	}

	spec := CommandSpec{Kind: -1}
	for kind, name := range commandNames {
		if name == parts[1] {
			spec.Kind = kind
			break
		}
	}
	if spec.Kind < 0 {
		return CommandSpec{}, fmt.Errorf("%w: %q", ErrUnknownCommand, route)
	}

	handler := commandHandlers[spec.Kind]
	switch {
	case spec.Kind == CommandView:
		if len(parts) != 3 {
			return CommandSpec{}, fmt.Errorf("%w: %q needs a view name", ErrUnknownView, route)
		}
		view, err := ParseViewPreset(parts[2])
		if err != nil {
			return CommandSpec{}, err
		}
		spec.View = view
	case len(parts) == 3:
		if handler.accepts&inputDirection == 0 {
			return CommandSpec{}, fmt.Errorf("%w: %q takes no parameter", ErrUnknownCommand, route)
		}
		direction, err := ParseDirection(parts[2])
		if err != nil {
			return CommandSpec{}, err
		}
		spec.Direction = direction
	}
	return spec, nil
}

// Route returns the dotted binding route for the command, the inverse of ParseRoute.
//
// Returns:
//   - string: the route, such as "camera.roll.clockwise"
func (s CommandSpec) Route() string {
	parts := []string{RoutePrefix, s.Kind.String()}
	switch {
	case s.Kind == CommandView:
		parts = append(parts, s.View.String())
	case s.Direction != DirectionNone:
		parts = append(parts, s.Direction.String())
	}
	return strings.Join(parts, ".")
}
