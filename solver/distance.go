package solver

import "github.com/starframe/starframe/mathf"

// DistanceConstraint keeps the world-space distance between an anchor
// point on each body within [Min, Max], going slack outside that
// window. An Attachment is the degenerate case Min == Max == 0: a rigid
// point-to-point pin. A rope's individual segments are also
// DistanceConstraints, with Min 0 and Max the segment's rest length
// times (1 + maxStretch), so the rope can go slack, and stretching past
// Max is resisted as softly as the rope's compliance allows.
type DistanceConstraint struct {
	BodyA, BodyB   *Body
	LocalAnchorA   mathf.Vec2
	LocalAnchorB   mathf.Vec2
	Min, Max       float64
	Compliance     float64
	LinearDamping  float64
	AngularDamping float64

	lambda float64
}

// NewAttachment pins bodyA's LocalAnchorA to bodyB's LocalAnchorB
// exactly, with zero compliance.
func NewAttachment(bodyA, bodyB *Body, localAnchorA, localAnchorB mathf.Vec2) *DistanceConstraint {
	return &DistanceConstraint{BodyA: bodyA, BodyB: bodyB, LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB}
}

// NewDistanceConstraint builds a general min/max range constraint
// between two anchor points.
func NewDistanceConstraint(bodyA, bodyB *Body, localAnchorA, localAnchorB mathf.Vec2, min, max, compliance float64) *DistanceConstraint {
	return &DistanceConstraint{
		BodyA: bodyA, BodyB: bodyB,
		LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB,
		Min: min, Max: max, Compliance: compliance,
	}
}

func (d *DistanceConstraint) Bodies() (*Body, *Body) { return d.BodyA, d.BodyB }

func (d *DistanceConstraint) ResetLambda() { d.lambda = 0 }

func (d *DistanceConstraint) SolvePosition(dt float64) {
	if d.BodyA.Sleeping && d.BodyB.Sleeping {
		return
	}
	rA := d.BodyA.Pose.TransformVec(d.LocalAnchorA)
	rB := d.BodyB.Pose.TransformVec(d.LocalAnchorB)
	pA := d.BodyA.Pose.Translation.Add(rA)
	pB := d.BodyB.Pose.Translation.Add(rB)

	delta := pB.Sub(pA)
	dist := delta.Len()
	if dist < 1e-12 {
		return
	}
	dir := delta.Mul(1 / dist)

	var c float64
	switch {
	case dist < d.Min:
		c = dist - d.Min
	case dist > d.Max:
		c = dist - d.Max
	default:
		d.lambda = 0
		return
	}

	d.lambda = positionalCorrection(d.BodyA, d.BodyB, rA, rB, dir, c, d.Compliance, dt, d.lambda)
}

func (d *DistanceConstraint) SolveVelocity(dt float64) {
	if d.BodyA.Sleeping && d.BodyB.Sleeping {
		return
	}
	if d.LinearDamping <= 0 && d.AngularDamping <= 0 {
		return
	}
	if !d.BodyA.IsAnchor() {
		d.BodyA.Velocity = d.BodyA.Velocity.Mul(1 - clamp01(d.LinearDamping*dt))
		d.BodyA.AngularVelocity *= 1 - clamp01(d.AngularDamping*dt)
	}
	if !d.BodyB.IsAnchor() {
		d.BodyB.Velocity = d.BodyB.Velocity.Mul(1 - clamp01(d.LinearDamping*dt))
		d.BodyB.AngularVelocity *= 1 - clamp01(d.AngularDamping*dt)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
