package projection

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Perspective is a symmetric-frustum projection defined by its vertical field of view.
type Perspective struct {
	lens
	verticalFov float64
}

var _ Projection = &Perspective{}

// NewPerspective creates a perspective projection.
// Parameters are validated rather than clamped.
//
// Parameters:
//   - options: functional options (WithAspect, WithNearClip, WithFarClip, WithVerticalFov)
//
// Returns:
//   - *Perspective: the new projection
//   - error: a wrapped ErrInvalidAspect, ErrInvalidClip or ErrInvalidFov
func NewPerspective(options ...Option) (*Perspective, error) {
	p := defaultParams()
	for _, option := range options {
		option(&p)
	}
	pr := &Perspective{
		lens:        lens{aspect: p.aspect, near: p.near, far: p.far},
		verticalFov: p.verticalFov,
	}
	if err := pr.validate(); err != nil {
		return nil, err
	}
	if !(pr.verticalFov > 0 && pr.verticalFov < math.Pi) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFov, pr.verticalFov)
	}
	return pr, nil
}

// DefaultPerspective returns a perspective projection built from the package defaults.
//
// Returns:
//   - *Perspective: a 60° projection with aspect 1, near 0.1 and far 10000
func DefaultPerspective() *Perspective {
	return &Perspective{
		lens:        lens{aspect: DefaultAspect, near: DefaultNearClip, far: DefaultFarClip},
		verticalFov: DefaultVerticalFov,
	}
}

func (p *Perspective) Kind() Kind {
	return KindPerspective
}

// VerticalFov returns the vertical field of view in radians.
func (p *Perspective) VerticalFov() float64 {
	return p.verticalFov
}

// HorizontalFov returns the horizontal field of view in radians, derived from the aspect ratio.
func (p *Perspective) HorizontalFov() float64 {
	return 2 * math.Atan(p.aspect*math.Tan(p.verticalFov/2))
}

// Resize only updates the aspect ratio; the vertical field of view is resize-invariant.
func (p *Perspective) Resize(width, height float64) error {
	aspect, err := aspectFor(width, height)
	if err != nil {
		return err
	}
	p.aspect = aspect
	return nil
}

func (p *Perspective) Matrix() mgl64.Mat4 {
	return mgl64.Perspective(p.verticalFov, p.aspect, p.near, p.far)
}

// Inverse is the closed-form inverse of the perspective matrix
//
//	| a 0 0 0 |        | 1/a  0   0    0  |
//	| 0 b 0 0 |   ->   |  0  1/b  0    0  |
//	| 0 0 c d |        |  0   0   0   -1  |
//	| 0 0 -1 0|        |  0   0  1/d  c/d |
func (p *Perspective) Inverse() mgl64.Mat4 {
	scale := p.scale()
	c := -(p.far + p.near) / p.Depth()
	d := -2 * p.far * p.near / p.Depth()

	var m mgl64.Mat4
	m[0] = p.aspect / scale
	m[5] = 1 / scale
	m[11] = 1 / d
	m[14] = -1
	m[15] = c / d
	return m
}

func (p *Perspective) Project(point mgl64.Vec3) mgl64.Vec3 {
	return project(p.Matrix(), point)
}

// scale is the cotangent of half the vertical field of view.
func (p *Perspective) scale() float64 {
	return 1 / math.Tan(p.verticalFov/2)
}
