package projection

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MinWidth is the smallest orthographic width reachable by zooming.
const MinWidth = 0.01

// Orthographic is a parallel projection bounded by six clipping planes.
// Only the width is stored; the height follows from the aspect ratio.
type Orthographic struct {
	lens
	width float64
}

var _ Projection = &Orthographic{}

// NewOrthographic creates an orthographic projection.
// Parameters are validated rather than clamped.
//
// Parameters:
//   - options: functional options (WithAspect, WithNearClip, WithFarClip, WithWidth)
//
// Returns:
//   - *Orthographic: the new projection
//   - error: a wrapped ErrInvalidAspect, ErrInvalidClip or ErrInvalidWidth
func NewOrthographic(options ...Option) (*Orthographic, error) {
	p := defaultParams()
	for _, option := range options {
		option(&p)
	}
	o := &Orthographic{
		lens:  lens{aspect: p.aspect, near: p.near, far: p.far},
		width: p.width,
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if !positive(o.width) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidWidth, o.width)
	}
	return o, nil
}

func (o *Orthographic) Kind() Kind {
	return KindOrthographic
}

// Width returns the distance between the left and right clipping planes.
func (o *Orthographic) Width() float64 {
	return o.width
}

// Height returns the distance between the bottom and top clipping planes.
func (o *Orthographic) Height() float64 {
	return o.width / o.aspect
}

// SetWidth sets the distance between the left and right clipping planes.
//
// Parameters:
//   - width: the new width, must be positive
//
// Returns:
//   - error: ErrInvalidWidth if width is not positive
func (o *Orthographic) SetWidth(width float64) error {
	if !positive(width) {
		return fmt.Errorf("%w: got %v", ErrInvalidWidth, width)
	}
	o.width = width
	return nil
}

// SetHeight sets the distance between the bottom and top clipping planes by adjusting the width.
//
// Parameters:
//   - height: the new height, must be positive
//
// Returns:
//   - error: ErrInvalidWidth if height is not positive
func (o *Orthographic) SetHeight(height float64) error {
	return o.SetWidth(height * o.aspect)
}

// Zoom grows or shrinks the width by amount, never below MinWidth.
//
// Parameters:
//   - amount: width change; negative zooms in
func (o *Orthographic) Zoom(amount float64) {
	o.width = math.Max(o.width+amount, MinWidth)
}

// Resize updates the aspect ratio and rescales the width by new/old aspect so the scene keeps its
// apparent size when the window changes shape.
func (o *Orthographic) Resize(width, height float64) error {
	aspect, err := aspectFor(width, height)
	if err != nil {
		return err
	}
	o.width *= aspect / o.aspect
	o.aspect = aspect
	return nil
}

// Matrix maps [-w/2, w/2] × [-h/2, h/2] × [-far, -near] onto the canonical clip cube.
func (o *Orthographic) Matrix() mgl64.Mat4 {
	halfWidth := o.width / 2
	halfHeight := o.Height() / 2
	return mgl64.Ortho(-halfWidth, halfWidth, -halfHeight, halfHeight, o.near, o.far)
}

func (o *Orthographic) Inverse() mgl64.Mat4 {
	var m mgl64.Mat4
	m[0] = o.width / 2
	m[5] = o.Height() / 2
	m[10] = -o.Depth() / 2
	m[14] = -(o.far + o.near) / 2
	m[15] = 1
	return m
}

func (o *Orthographic) Project(point mgl64.Vec3) mgl64.Vec3 {
	return project(o.Matrix(), point)
}
