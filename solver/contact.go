package solver

import (
	"math"

	"github.com/starframe/starframe/mathf"
	"github.com/starframe/starframe/narrowphase"
)

// ContactConstraint resolves the (up to two) contact points a single
// narrow-phase test produced between two bodies' colliders. Grounded on
// feather/constraint.ContactConstraint's position/velocity split, with
// the penetration depth recomputed from the narrow-phase offsets every
// position iteration (rather than cached once at contact-generation
// time) so it stays correct across the sub-steps a single tick's
// contact set is reused over.
type ContactConstraint struct {
	BodyA, BodyB                 *Body
	Contacts                     []narrowphase.Contact
	Compliance                   float64
	RestitutionVelocityThreshold float64

	lambdas    []float64
	preNormVel []float64
}

// NewContactConstraint wraps the contacts narrowphase.Intersect found
// between bodyA's and bodyB's colliders for use across one tick's
// sub-steps.
func NewContactConstraint(bodyA, bodyB *Body, contacts []narrowphase.Contact) *ContactConstraint {
	return &ContactConstraint{
		BodyA:                        bodyA,
		BodyB:                        bodyB,
		Contacts:                     contacts,
		RestitutionVelocityThreshold: 0.5,
		lambdas:                      make([]float64, len(contacts)),
		preNormVel:                   make([]float64, len(contacts)),
	}
}

func (c *ContactConstraint) Bodies() (*Body, *Body) { return c.BodyA, c.BodyB }

func (c *ContactConstraint) ResetLambda() {
	for i := range c.lambdas {
		c.lambdas[i] = 0
	}
}

// CaptureRestitutionBaseline records each contact point's normal
// velocity for this sub-step. Substep calls it right after predict has
// integrated velocities and poses, and before any position projection.
func (c *ContactConstraint) CaptureRestitutionBaseline() {
	for i, ct := range c.Contacts {
		rA := c.BodyA.Pose.TransformVec(ct.Offsets[0])
		rB := c.BodyB.Pose.TransformVec(ct.Offsets[1])
		vA := pointVelocity(c.BodyA.Velocity, c.BodyA.AngularVelocity, rA)
		vB := pointVelocity(c.BodyB.Velocity, c.BodyB.AngularVelocity, rB)
		c.preNormVel[i] = vB.Sub(vA).Dot(ct.Normal.Vec())
	}
}

func (c *ContactConstraint) SolvePosition(dt float64) {
	if c.BodyA.Sleeping && c.BodyB.Sleeping {
		return
	}
	staticFriction := math.Sqrt(c.BodyA.Material.StaticFriction * c.BodyB.Material.StaticFriction)

	for i, ct := range c.Contacts {
		rA := c.BodyA.Pose.TransformVec(ct.Offsets[0])
		rB := c.BodyB.Pose.TransformVec(ct.Offsets[1])
		pA := c.BodyA.Pose.Translation.Add(rA)
		pB := c.BodyB.Pose.Translation.Add(rB)
		normal := ct.Normal.Vec()
		depth := normal.Dot(pA.Sub(pB))
		if depth <= 0 {
			c.lambdas[i] = 0
			continue
		}

		// C = -depth, per the contact-normal constraint formula.
		c.lambdas[i] = positionalCorrection(c.BodyA, c.BodyB, rA, rB, normal, -depth, c.Compliance, dt, c.lambdas[i])

		if c.lambdas[i] <= 0 {
			continue
		}
		// static friction: cancel the tangential slide accumulated over
		// this sub-step, unless doing so would exceed Coulomb's limit.
		rAPrev := c.BodyA.PrevPose.TransformVec(ct.Offsets[0])
		rBPrev := c.BodyB.PrevPose.TransformVec(ct.Offsets[1])
		pAPrev := c.BodyA.PrevPose.Translation.Add(rAPrev)
		pBPrev := c.BodyB.PrevPose.Translation.Add(rBPrev)
		slide := pA.Sub(pAPrev).Sub(pB.Sub(pBPrev))
		slide = slide.Sub(normal.Mul(slide.Dot(normal)))
		if slideLen := slide.Len(); slideLen > 1e-12 {
			tangent := slide.Mul(1 / slideLen)
			rigidTangentialCorrection(c.BodyA, c.BodyB, rA, rB, tangent, slideLen, staticFriction*c.lambdas[i])
		}
	}
}

func (c *ContactConstraint) SolveVelocity(dt float64) {
	if c.BodyA.Sleeping && c.BodyB.Sleeping {
		return
	}
	restitution := (c.BodyA.Material.Restitution + c.BodyB.Material.Restitution) / 2
	dynamicFriction := math.Sqrt(c.BodyA.Material.DynamicFriction * c.BodyB.Material.DynamicFriction)

	for i, ct := range c.Contacts {
		if c.lambdas[i] <= 0 {
			continue
		}
		normal := ct.Normal.Vec()
		rA := c.BodyA.Pose.TransformVec(ct.Offsets[0])
		rB := c.BodyB.Pose.TransformVec(ct.Offsets[1])

		vA := pointVelocity(c.BodyA.Velocity, c.BodyA.AngularVelocity, rA)
		vB := pointVelocity(c.BodyB.Velocity, c.BodyB.AngularVelocity, rB)
		relVel := vB.Sub(vA)
		normalVel := relVel.Dot(normal)

		waA := mathf.Cross2(rA, normal)
		waB := mathf.Cross2(rB, normal)
		wN := c.BodyA.Mass.InvMass() + c.BodyA.Mass.InvInertia()*waA*waA +
			c.BodyB.Mass.InvMass() + c.BodyB.Mass.InvInertia()*waB*waB
		if wN < 1e-12 {
			continue
		}

		target := normalVel
		if math.Abs(c.preNormVel[i]) > c.RestitutionVelocityThreshold {
			target = -restitution * c.preNormVel[i]
		}
		impulseN := (target - normalVel) / wN
		if impulseN < 0 {
			// a contact normal can only push, never pull bodies together
			impulseN = 0
		}
		applyVelocityImpulse(c.BodyA, c.BodyB, rA, rB, normal, impulseN)

		// dynamic friction, proportional to the normal impulse just applied.
		vA = pointVelocity(c.BodyA.Velocity, c.BodyA.AngularVelocity, rA)
		vB = pointVelocity(c.BodyB.Velocity, c.BodyB.AngularVelocity, rB)
		relVel = vB.Sub(vA)
		tangentVel := relVel.Sub(normal.Mul(relVel.Dot(normal)))
		speed := tangentVel.Len()
		if speed < 1e-9 {
			continue
		}
		tangent := tangentVel.Mul(1 / speed)
		waAt := mathf.Cross2(rA, tangent)
		waBt := mathf.Cross2(rB, tangent)
		wT := c.BodyA.Mass.InvMass() + c.BodyA.Mass.InvInertia()*waAt*waAt +
			c.BodyB.Mass.InvMass() + c.BodyB.Mass.InvInertia()*waBt*waBt
		if wT < 1e-12 {
			continue
		}
		maxFriction := dynamicFriction * math.Abs(impulseN)
		impulseT := -speed / wT
		if impulseT < -maxFriction {
			impulseT = -maxFriction
		} else if impulseT > maxFriction {
			impulseT = maxFriction
		}
		applyVelocityImpulse(c.BodyA, c.BodyB, rA, rB, tangent, impulseT)
	}
}

// applyVelocityImpulse applies a linear impulse of magnitude impulse
// along dir at lever arms rA, rB: bodyA receives -impulse, bodyB
// receives +impulse, the same sign convention as
// feather/constraint.ContactConstraint.SolveVelocity.
func applyVelocityImpulse(bodyA, bodyB *Body, rA, rB, dir mathf.Vec2, impulse float64) {
	j := dir.Mul(impulse)
	if !bodyA.IsAnchor() {
		bodyA.Velocity = bodyA.Velocity.Sub(j.Mul(bodyA.Mass.InvMass()))
		bodyA.AngularVelocity -= bodyA.Mass.InvInertia() * mathf.Cross2(rA, j)
	}
	if !bodyB.IsAnchor() {
		bodyB.Velocity = bodyB.Velocity.Add(j.Mul(bodyB.Mass.InvMass()))
		bodyB.AngularVelocity += bodyB.Mass.InvInertia() * mathf.Cross2(rB, j)
	}
}
