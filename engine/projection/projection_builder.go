package projection

import "math"

// Default lens parameters.
const (
	DefaultAspect      = 1.0
	DefaultNearClip    = 0.1
	DefaultFarClip     = 10000.0
	DefaultWidth       = 1.0
	DefaultVerticalFov = math.Pi / 3 // 60 degrees
)

// params collects option values before a projection variant is validated and built.
type params struct {
	aspect      float64
	near        float64
	far         float64
	width       float64
	verticalFov float64
}

func defaultParams() params {
	return params{
		aspect:      DefaultAspect,
		near:        DefaultNearClip,
		far:         DefaultFarClip,
		width:       DefaultWidth,
		verticalFov: DefaultVerticalFov,
	}
}

// Option is a functional option for configuring a projection at construction.
type Option func(*params)

// WithAspect sets the aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio, must be positive
//
// Returns:
//   - Option: functional option to set the aspect ratio
func WithAspect(aspect float64) Option {
	return func(p *params) {
		p.aspect = aspect
	}
}

// WithNearClip sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance, must be positive
//
// Returns:
//   - Option: functional option to set the near plane
func WithNearClip(near float64) Option {
	return func(p *params) {
		p.near = near
	}
}

// WithFarClip sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance, must exceed the near distance
//
// Returns:
//   - Option: functional option to set the far plane
func WithFarClip(far float64) Option {
	return func(p *params) {
		p.far = far
	}
}

// WithWidth sets the orthographic width. Ignored by perspective projections.
//
// Parameters:
//   - width: distance between the left and right clipping planes, must be positive
//
// Returns:
//   - Option: functional option to set the width
func WithWidth(width float64) Option {
	return func(p *params) {
		p.width = width
	}
}

// WithVerticalFov sets the perspective vertical field of view. Ignored by orthographic projections.
//
// Parameters:
//   - fov: vertical field of view in radians, in (0, π)
//
// Returns:
//   - Option: functional option to set the field of view
func WithVerticalFov(fov float64) Option {
	return func(p *params) {
		p.verticalFov = fov
	}
}
