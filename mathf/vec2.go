// Package mathf provides the 2D pose math used throughout the physics
// pipeline: vectors, rotors, poses and rays, all in f64 for simulation
// stability.
package mathf

import "github.com/go-gl/mathgl/mgl64"

// Vec2 is a 2D vector. It is a thin alias over mgl64.Vec2 so the rest of
// the engine gets mgl64's arithmetic for free while staying 2D-only.
type Vec2 = mgl64.Vec2

// Zero2 is the zero vector.
func Zero2() Vec2 { return Vec2{0, 0} }

// UnitX2 is the x-axis unit vector.
func UnitX2() Vec2 { return Vec2{1, 0} }

// UnitY2 is the y-axis unit vector.
func UnitY2() Vec2 { return Vec2{0, 1} }

// Cross2 is the scalar (z-component) cross product of two 2D vectors.
func Cross2(a, b Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// LeftNormal rotates v by +90 degrees.
func LeftNormal(v Vec2) Vec2 {
	return Vec2{-v[1], v[0]}
}

// RightNormal rotates v by -90 degrees.
func RightNormal(v Vec2) Vec2 {
	return Vec2{v[1], -v[0]}
}

// Unit2 is a vector known (by construction) to have unit length.
type Unit2 struct {
	v Vec2
}

// NewUnit2Normalize normalizes v into a Unit2. Panics if v is degenerate;
// callers that can't guarantee a nonzero vector should check first.
func NewUnit2Normalize(v Vec2) Unit2 {
	l := v.Len()
	if l < 1e-12 {
		panic("mathf: cannot normalize a near-zero vector")
	}
	return Unit2{v: v.Mul(1.0 / l)}
}

// NewUnit2Unchecked wraps v without normalizing, trusting the caller.
func NewUnit2Unchecked(v Vec2) Unit2 {
	return Unit2{v: v}
}

// Vec returns the underlying vector.
func (u Unit2) Vec() Vec2 { return u.v }

// Neg returns the opposite unit vector.
func (u Unit2) Neg() Unit2 { return Unit2{v: u.v.Mul(-1)} }

// Dot between a unit vector and a plain vector.
func (u Unit2) Dot(v Vec2) float64 { return u.v.Dot(v) }
