// Package common contains common types that are used throughout this module. They are not interface-wrapped structs, just plain structs that express
// commonly used geometric data-types layered on top of mgl64.
package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned bounding box in world space.
// A box with any Min component greater than the matching Max component is empty.
// The zero value is a degenerate box containing only the origin.
type AABB struct {
	// Min is the corner with the smallest coordinates.
	Min mgl64.Vec3
	// Max is the corner with the largest coordinates.
	Max mgl64.Vec3
}

// EmptyAABB returns a box that contains nothing. Extending it with a point yields a box around that point.
//
// Returns:
//   - AABB: the empty box
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// NewAABB returns the smallest box enclosing all provided points.
// With no points the result is empty.
//
// Parameters:
//   - points: points to enclose
//
// Returns:
//   - AABB: the enclosing box
func NewAABB(points ...mgl64.Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.Extend(p)
	}
	return box
}

// IsEmpty reports whether the box contains no points.
func (b AABB) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend returns the smallest box enclosing both b and p.
//
// Parameters:
//   - p: the point to include
//
// Returns:
//   - AABB: the grown box
func (b AABB) Extend(p mgl64.Vec3) AABB {
	for i := range 3 {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b AABB) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// SphereRadius returns the radius of the sphere centered on the box that passes through its corners
// (half the length of the diagonal).
//
// Returns:
//   - float64: the bounding sphere radius (0 for an empty box)
func (b AABB) SphereRadius() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Size().Len() / 2
}

// Corners returns the eight corners of the box.
//
// Returns:
//   - [8]mgl64.Vec3: the corners, ordered by the binary pattern (x, y, z) of min/max selection
func (b AABB) Corners() [8]mgl64.Vec3 {
	var corners [8]mgl64.Vec3
	for i := range corners {
		for axis := range 3 {
			if i&(1<<axis) != 0 {
				corners[i][axis] = b.Max[axis]
			} else {
				corners[i][axis] = b.Min[axis]
			}
		}
	}
	return corners
}

// Contains reports whether p lies inside or on the boundary of the box.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - bool: true if p is inside the box
func (b AABB) Contains(p mgl64.Vec3) bool {
	for i := range 3 {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Ray is a half-line in world space with a unit-length direction.
type Ray struct {
	// Origin is the start point of the ray.
	Origin mgl64.Vec3
	// Direction is the unit direction of travel.
	Direction mgl64.Vec3
}

// NewRay builds a ray, normalizing the direction.
//
// Parameters:
//   - origin: the ray start point
//   - direction: the direction of travel (must be non-zero)
//
// Returns:
//   - Ray: the new ray
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ClosestDistance returns the shortest distance between the ray's supporting line and p.
//
// Parameters:
//   - p: the point to measure to
//
// Returns:
//   - float64: the perpendicular distance
func (r Ray) ClosestDistance(p mgl64.Vec3) float64 {
	toPoint := p.Sub(r.Origin)
	return toPoint.Sub(r.Direction.Mul(toPoint.Dot(r.Direction))).Len()
}
