package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used when deciding whether a length or angle is effectively zero.
const Epsilon = 1e-9

// World coordinate axes. The world is Z-up.
var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// Axes returns the six signed world coordinate axes in the order +X, +Y, +Z, -X, -Y, -Z.
//
// Returns:
//   - [6]mgl64.Vec3: the signed axes
func Axes() [6]mgl64.Vec3 {
	return [6]mgl64.Vec3{
		AxisX, AxisY, AxisZ,
		AxisX.Mul(-1), AxisY.Mul(-1), AxisZ.Mul(-1),
	}
}

// NearlyZero reports whether v is within Epsilon of zero.
//
// Parameters:
//   - v: the value to test
//
// Returns:
//   - bool: true if |v| <= Epsilon
func NearlyZero(v float64) bool {
	return math.Abs(v) <= Epsilon
}

// AngleBetween returns the unsigned angle between two vectors in radians, in [0, π].
// If either vector has zero length the angle is reported as zero.
//
// Parameters:
//   - a: first vector
//   - b: second vector
//
// Returns:
//   - float64: the angle in radians
func AngleBetween(a, b mgl64.Vec3) float64 {
	lengths := a.Len() * b.Len()
	if NearlyZero(lengths) {
		return 0
	}
	return math.Acos(mgl64.Clamp(a.Dot(b)/lengths, -1, 1))
}

// NearestAxis returns the candidate closest in direction to v along with the angle between them.
// Candidates are compared by angle; ties keep the earlier candidate.
//
// Parameters:
//   - v: the reference direction
//   - candidates: directions to choose from (must not be empty)
//
// Returns:
//   - mgl64.Vec3: the closest candidate
//   - float64: the angle between v and that candidate in radians
func NearestAxis(v mgl64.Vec3, candidates []mgl64.Vec3) (mgl64.Vec3, float64) {
	best := candidates[0]
	minimum := AngleBetween(v, best)
	for _, candidate := range candidates[1:] {
		if angle := AngleBetween(v, candidate); angle < minimum {
			best, minimum = candidate, angle
		}
	}
	return best, minimum
}
