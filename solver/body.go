// Package solver implements the XPBD-style sub-stepped constraint
// solver: body integration, contact/attachment/rope/user constraints,
// velocity-level restitution and friction, and sleeping. Grounded on
// feather/actor.RigidBody's integrate/sleep lifecycle and
// feather/constraint.ContactConstraint's position/velocity split,
// adapted from 3D quaternions and a mutex-guarded shared body to 2D
// rotors and islands that the caller already knows are independent.
package solver

import (
	"github.com/starframe/starframe/collider"
	"github.com/starframe/starframe/mathf"
)

// BodyKind distinguishes dynamic bodies from the two flavours of
// anchor: static geometry that never moves, and kinematic bodies whose
// velocity is prescribed externally (by an animation, a player
// controller) rather than by the solver.
type BodyKind int

const (
	Dynamic BodyKind = iota
	Kinematic
	Static
)

// IsAnchor reports whether bodies of this kind act as islands' anchor
// points: ones attached to every island that touches them without being
// unioned, and never accelerated by forces or constraint corrections.
func (k BodyKind) IsAnchor() bool { return k != Dynamic }

// Body is one rigid body tracked by the solver.
type Body struct {
	Pose     mathf.Pose
	PrevPose mathf.Pose

	Velocity        mathf.Vec2
	AngularVelocity float64

	Mass     Mass
	Material collider.Material
	Kind     BodyKind

	// IgnoresGravity opts a dynamic body out of the gravity term during
	// prediction, e.g. for a projectile under a custom force field.
	IgnoresGravity bool

	Sleeping   bool
	sleepTimer float64

	// force accumulates one tick's worth of external force (e.g. from a
	// ForceField), consumed and cleared by the first sub-step's predict.
	// Mirrors actor.RigidBody.accumulatedForce/AddForce/ClearForces.
	force mathf.Vec2
}

// AddForce accumulates an external force (mass·acceleration) to be
// applied during this tick's first predict step, then cleared. Wakes a
// sleeping body, the same as actor.RigidBody.AddForce.
func (b *Body) AddForce(f mathf.Vec2) {
	if b.Kind == Dynamic {
		b.Wake()
		b.force = b.force.Add(f)
	}
}

// NewDynamicBody builds a body that forces and constraints can move.
func NewDynamicBody(pose mathf.Pose, mass Mass, material collider.Material) *Body {
	return &Body{Pose: pose, PrevPose: pose, Mass: mass, Material: material, Kind: Dynamic}
}

// NewStaticBody builds an immovable anchor, e.g. level geometry.
func NewStaticBody(pose mathf.Pose) *Body {
	return &Body{Pose: pose, PrevPose: pose, Mass: InfiniteMass(), Kind: Static}
}

// NewKinematicBody builds an anchor whose Velocity the caller drives
// directly; the solver integrates its pose from that velocity but never
// applies forces or constraint corrections to it.
func NewKinematicBody(pose mathf.Pose) *Body {
	return &Body{Pose: pose, PrevPose: pose, Mass: InfiniteMass(), Kind: Kinematic}
}

// IsAnchor reports whether this body is static or kinematic.
func (b *Body) IsAnchor() bool { return b.Kind.IsAnchor() }

// Wake clears the sleep state, e.g. when a new contact or constraint
// touches a previously sleeping body.
func (b *Body) Wake() {
	b.Sleeping = false
	b.sleepTimer = 0
}

// updateSleep increments the sleep timer while the body's linear and
// angular speed stay below velocityThreshold, and puts it to sleep once
// that holds for timeThreshold seconds. Mirrors
// feather/actor.RigidBody.TrySleep, generalized from mgl64.Vec3.Len to
// the 2D linear speed plus a scalar angular speed.
func (b *Body) updateSleep(dt, velocityThreshold, timeThreshold float64) {
	if b.Kind != Dynamic {
		return
	}
	below := b.Velocity.Len() < velocityThreshold && abs(b.AngularVelocity) < velocityThreshold
	if below {
		b.sleepTimer += dt
		// The small tolerance absorbs the rounding of summing dt, so e.g.
		// 30 ticks of 1/60 s reach a 0.5 s threshold.
		if b.sleepTimer >= timeThreshold-1e-9 {
			b.Sleeping = true
			b.Velocity = mathf.Zero2()
			b.AngularVelocity = 0
		}
	} else {
		b.Wake()
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
