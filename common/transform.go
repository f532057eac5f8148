package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a rigid transformation: a unit quaternion rotation followed by a translation.
// Applied to a point p it yields Rotation·p + Translation.
// The zero value is not valid; use IdentityTransform.
type Transform struct {
	Rotation    mgl64.Quat
	Translation mgl64.Vec3
}

// IdentityTransform returns the transform that leaves every point unchanged.
//
// Returns:
//   - Transform: the identity transform
func IdentityTransform() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// NewTransform builds a transform from a rotation and translation.
// The rotation is normalized so that the orientation invariant holds.
//
// Parameters:
//   - rotation: orientation quaternion (any non-zero length)
//   - translation: translation vector
//
// Returns:
//   - Transform: the new transform
func NewTransform(rotation mgl64.Quat, translation mgl64.Vec3) Transform {
	return Transform{Rotation: rotation.Normalize(), Translation: translation}
}

// TranslationTransform returns a pure translation.
//
// Parameters:
//   - translation: the translation vector
//
// Returns:
//   - Transform: the translation transform
func TranslationTransform(translation mgl64.Vec3) Transform {
	return Transform{Rotation: mgl64.QuatIdent(), Translation: translation}
}

// RotationTransform returns a rotation of angle radians about axis (right-handed).
// A zero-length axis yields the identity.
//
// Parameters:
//   - axis: the rotation axis (need not be normalized)
//   - angle: rotation angle in radians
//
// Returns:
//   - Transform: the rotation transform
func RotationTransform(axis mgl64.Vec3, angle float64) Transform {
	length := axis.Len()
	if NearlyZero(length) {
		return IdentityTransform()
	}
	return Transform{Rotation: mgl64.QuatRotate(angle, axis.Mul(1/length)).Normalize()}
}

// TransformFromBasis builds the transform whose local X, Y and Z axes map onto right, up and
// forward respectively and whose origin maps onto translation. The three axes must form a
// right-handed orthonormal basis.
//
// Parameters:
//   - right: world direction of local X
//   - up: world direction of local Y
//   - forward: world direction of local Z
//   - translation: world position of the local origin
//
// Returns:
//   - Transform: the transform described by the basis
func TransformFromBasis(right, up, forward, translation mgl64.Vec3) Transform {
	m := mgl64.Mat4FromCols(right.Vec4(0), up.Vec4(0), forward.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	return NewTransform(mgl64.Mat4ToQuat(m), translation)
}

// Mul composes two transforms. The result applies o first, then t.
//
// Parameters:
//   - o: the transform applied first
//
// Returns:
//   - Transform: t ∘ o
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Mul(o.Rotation).Normalize(),
		Translation: t.Rotation.Rotate(o.Translation).Add(t.Translation),
	}
}

// Inverse returns the exact inverse of the rigid transform.
//
// Returns:
//   - Transform: the inverse transform
func (t Transform) Inverse() Transform {
	inverse := t.Rotation.Conjugate()
	return Transform{
		Rotation:    inverse,
		Translation: inverse.Rotate(t.Translation).Mul(-1),
	}
}

// Point applies the full transform (rotation and translation) to a point.
func (t Transform) Point(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// Vector applies only the rotation to a direction vector.
func (t Transform) Vector(v mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(v)
}

// Basis returns the world directions of the local X, Y and Z axes.
//
// Returns:
//   - x, y, z: the rotated coordinate axes
func (t Transform) Basis() (x, y, z mgl64.Vec3) {
	return t.Vector(AxisX), t.Vector(AxisY), t.Vector(AxisZ)
}

// Matrix returns the 4x4 homogeneous matrix of the transform (column-major).
//
// Returns:
//   - mgl64.Mat4: translation · rotation
func (t Transform) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).Mul4(t.Rotation.Mat4())
}

// ApproxEqual reports whether two transforms describe the same placement within threshold.
// Quaternions q and -q describe the same orientation and compare equal.
//
// Parameters:
//   - o: the transform to compare against
//   - threshold: absolute tolerance on each translation component and on 1-|q·p|
//
// Returns:
//   - bool: true if the transforms match
func (t Transform) ApproxEqual(o Transform, threshold float64) bool {
	for i := range 3 {
		if math.Abs(t.Translation[i]-o.Translation[i]) > threshold {
			return false
		}
	}
	return 1-math.Abs(t.Rotation.Dot(o.Rotation)) <= threshold
}

