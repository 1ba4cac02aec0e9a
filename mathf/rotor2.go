package mathf

import "math"

// Angle is a small wrapper that disambiguates radians from degrees at
// call sites, mirroring the source's Angle::Deg(...)/Angle::Rad(...)
// constructors.
type Angle struct {
	radians float64
}

// Deg builds an Angle from degrees.
func Deg(deg float64) Angle {
	return Angle{radians: deg * math.Pi / 180.0}
}

// Rad builds an Angle from radians.
func Rad(rad float64) Angle {
	return Angle{radians: rad}
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return a.radians }

// Rotor2 is a 2D rotor: a unit complex number (cos, sin) representing a
// rotation. mgl64 has no 2D rotor type, so this stands in for the role
// mgl64.Quat plays for 3D rotation.
type Rotor2 struct {
	Cos, Sin float64
}

// Identity2 is the zero rotation.
func Identity2() Rotor2 {
	return Rotor2{Cos: 1, Sin: 0}
}

// RotorFromAngle builds a rotor from an Angle.
func RotorFromAngle(a Angle) Rotor2 {
	s, c := math.Sincos(a.Radians())
	return Rotor2{Cos: c, Sin: s}
}

// Angle returns the rotation this rotor represents.
func (r Rotor2) Angle() Angle {
	return Rad(math.Atan2(r.Sin, r.Cos))
}

// Mul composes two rotors (rotate by r, then by other).
func (r Rotor2) Mul(other Rotor2) Rotor2 {
	return Rotor2{
		Cos: r.Cos*other.Cos - r.Sin*other.Sin,
		Sin: r.Sin*other.Cos + r.Cos*other.Sin,
	}
}

// Reversed returns the inverse rotation.
func (r Rotor2) Reversed() Rotor2 {
	return Rotor2{Cos: r.Cos, Sin: -r.Sin}
}

// Rotate applies the rotor to a vector.
func (r Rotor2) Rotate(v Vec2) Vec2 {
	return Vec2{
		r.Cos*v[0] - r.Sin*v[1],
		r.Sin*v[0] + r.Cos*v[1],
	}
}

// RotateUnit applies the rotor to a unit vector, preserving unit-ness.
func (r Rotor2) RotateUnit(u Unit2) Unit2 {
	return NewUnit2Unchecked(r.Rotate(u.Vec()))
}

// Normalized renormalizes a rotor drifted by repeated incremental updates.
func (r Rotor2) Normalized() Rotor2 {
	l := math.Hypot(r.Cos, r.Sin)
	if l < 1e-12 {
		return Identity2()
	}
	return Rotor2{Cos: r.Cos / l, Sin: r.Sin / l}
}

// Integrate advances the rotor by an angular velocity (rad/s) over dt,
// the 2D analogue of feather/actor.RigidBody's quaternion derivative
// integration (q_dot = 0.5 * omegaQuat * q), since a 2D rotor's
// derivative under angular velocity omega is simply a further rotation
// by omega*dt.
func (r Rotor2) Integrate(angularVelocity, dt float64) Rotor2 {
	return r.Mul(RotorFromAngle(Rad(angularVelocity * dt))).Normalized()
}
