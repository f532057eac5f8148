// Package projection models the camera lens: how camera-space points map to clip space.
// Two variants exist, Orthographic and Perspective, both implementing Projection with
// analytic inverses so unprojection stays exact every interactive frame.
package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrInvalidAspect is returned when the aspect ratio is not a positive finite number.
	ErrInvalidAspect = errors.New("projection: aspect ratio must be positive")
	// ErrInvalidClip is returned when the clipping planes do not satisfy 0 < near < far.
	ErrInvalidClip = errors.New("projection: clipping planes must satisfy 0 < near < far")
	// ErrInvalidWidth is returned when an orthographic width or height is not positive.
	ErrInvalidWidth = errors.New("projection: orthographic width must be positive")
	// ErrInvalidFov is returned when a vertical field of view is outside (0, π).
	ErrInvalidFov = errors.New("projection: vertical field of view must be in (0, π)")
	// ErrInvalidSize is returned when an output size has a non-positive dimension.
	ErrInvalidSize = errors.New("projection: output size must be positive")
)

// Kind identifies a projection variant.
type Kind int

const (
	// KindOrthographic is a parallel projection.
	KindOrthographic Kind = iota
	// KindPerspective is a symmetric-frustum perspective projection.
	KindPerspective
)

func (k Kind) String() string {
	switch k {
	case KindOrthographic:
		return "orthographic"
	case KindPerspective:
		return "perspective"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Projection is the lens model owned by a camera.
// Cameras look down their local negative Z axis; matrices follow OpenGL clip conventions.
type Projection interface {
	// Kind returns which variant this projection is.
	//
	// Returns:
	//   - Kind: the projection variant
	Kind() Kind

	// Aspect returns the width over height of the projection plane.
	//
	// Returns:
	//   - float64: the aspect ratio
	Aspect() float64

	// Near returns the distance to the near clipping plane.
	//
	// Returns:
	//   - float64: near clip distance
	Near() float64

	// Far returns the distance to the far clipping plane.
	//
	// Returns:
	//   - float64: far clip distance
	Far() float64

	// Depth returns the distance between the near and far clipping planes.
	//
	// Returns:
	//   - float64: far - near
	Depth() float64

	// Matrix returns the camera-space to clip-space matrix.
	//
	// Returns:
	//   - mgl64.Mat4: the projection matrix (column-major)
	Matrix() mgl64.Mat4

	// Inverse returns the analytic inverse of Matrix.
	//
	// Returns:
	//   - mgl64.Mat4: the inverse projection matrix (column-major)
	Inverse() mgl64.Mat4

	// Project maps a camera-space point to normalized device coordinates (after the perspective divide).
	//
	// Parameters:
	//   - point: camera-space point
	//
	// Returns:
	//   - mgl64.Vec3: the NDC position
	Project(point mgl64.Vec3) mgl64.Vec3

	// Resize updates the projection for new output pixel dimensions.
	//
	// Parameters:
	//   - width: output width in pixels
	//   - height: output height in pixels
	//
	// Returns:
	//   - error: ErrInvalidSize if either dimension is not positive
	Resize(width, height float64) error
}

// lens holds the attributes shared by both projection variants.
type lens struct {
	aspect float64
	near   float64
	far    float64
}

func (l *lens) Aspect() float64 { return l.aspect }
func (l *lens) Near() float64   { return l.near }
func (l *lens) Far() float64    { return l.far }
func (l *lens) Depth() float64  { return l.far - l.near }

func (l *lens) validate() error {
	if !positive(l.aspect) {
		return fmt.Errorf("%w: got %v", ErrInvalidAspect, l.aspect)
	}
	if !positive(l.near) || !positive(l.far) || l.far <= l.near {
		return fmt.Errorf("%w: got near=%v far=%v", ErrInvalidClip, l.near, l.far)
	}
	return nil
}

// aspectFor validates output dimensions and returns their ratio.
func aspectFor(width, height float64) (float64, error) {
	if !positive(width) || !positive(height) {
		return 0, fmt.Errorf("%w: got %vx%v", ErrInvalidSize, width, height)
	}
	return width / height, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// project applies m to a camera-space point and performs the perspective divide.
func project(m mgl64.Mat4, point mgl64.Vec3) mgl64.Vec3 {
	clip := m.Mul4x1(point.Vec4(1))
	if clip[3] == 0 {
		return clip.Vec3()
	}
	return clip.Vec3().Mul(1 / clip[3])
}
