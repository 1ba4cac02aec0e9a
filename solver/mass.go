package solver

// Mass carries the inverse mass and inverse moment of inertia the
// solver needs for impulse and positional-correction math. Infinite
// mass (static geometry, kinematic anchors) carries zero inverse mass
// and inertia so it never absorbs a correction, mirroring
// feather/actor.RigidBody's math.Inf(1) mass for BodyTypeStatic without
// needing to special-case infinities in every formula.
type Mass struct {
	invMass    float64
	invInertia float64
	finite     bool
}

// FiniteMass builds the mass of a body with finite mass and moment of
// inertia, typically from collider.ComputeInfo scaled by a density.
func FiniteMass(mass, momentOfInertia float64) Mass {
	return Mass{invMass: 1 / mass, invInertia: 1 / momentOfInertia, finite: true}
}

// InfiniteMass is the mass of a body that never moves under force:
// static geometry and kinematic anchors driven by prescribed velocity.
func InfiniteMass() Mass {
	return Mass{}
}

// IsFinite reports whether this mass can be accelerated at all.
func (m Mass) IsFinite() bool { return m.finite }

// InvMass is 1/mass, or 0 for infinite mass.
func (m Mass) InvMass() float64 { return m.invMass }

// InvInertia is 1/momentOfInertia, or 0 for infinite mass.
func (m Mass) InvInertia() float64 { return m.invInertia }
