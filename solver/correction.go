package solver

import "github.com/starframe/starframe/mathf"

// positionalCorrection runs one XPBD Lagrange update for a scalar
// constraint with value c (driven toward zero), acting along the
// world-space unit direction dir at world-space lever arms rA, rB from
// each body's center. lambda is the constraint's running multiplier for
// the current sub-step (callers reset it to 0 at the start of each
// sub-step so it accumulates correctly across Gauss-Seidel iterations);
// the updated multiplier is returned.
//
// Mirrors feather/constraint.ContactConstraint.SolvePosition's
// deltaLambda/alphaTilde math, generalized from 3D quaternion small-angle
// corrections to an exact 2D rotor composition (see Rotor2.Integrate).
func positionalCorrection(bodyA, bodyB *Body, rA, rB, dir mathf.Vec2, c, compliance, dt, lambda float64) float64 {
	waA := mathf.Cross2(rA, dir)
	waB := mathf.Cross2(rB, dir)
	wA := bodyA.Mass.InvMass() + bodyA.Mass.InvInertia()*waA*waA
	wB := bodyB.Mass.InvMass() + bodyB.Mass.InvInertia()*waB*waB
	w := wA + wB
	if w < 1e-12 {
		return lambda
	}

	alphaTilde := compliance / (dt * dt)
	deltaLambda := (-c - alphaTilde*lambda) / (w + alphaTilde)
	lambda += deltaLambda

	// dir runs from bodyA's anchor toward bodyB's anchor (contacts:
	// away from the first collider), so C's gradient at A is -dir and
	// at B is +dir.
	impulse := dir.Mul(deltaLambda)
	if !bodyA.IsAnchor() {
		bodyA.Pose.Translation = bodyA.Pose.Translation.Sub(impulse.Mul(bodyA.Mass.InvMass()))
		dTheta := -bodyA.Mass.InvInertia() * waA * deltaLambda
		bodyA.Pose.Rotation = bodyA.Pose.Rotation.Integrate(dTheta, 1).Normalized()
	}
	if !bodyB.IsAnchor() {
		bodyB.Pose.Translation = bodyB.Pose.Translation.Add(impulse.Mul(bodyB.Mass.InvMass()))
		dTheta := bodyB.Mass.InvInertia() * waB * deltaLambda
		bodyB.Pose.Rotation = bodyB.Pose.Rotation.Integrate(dTheta, 1).Normalized()
	}
	return lambda
}

// rigidTangentialCorrection resolves a tangential constraint value ct
// (a relative sliding distance the caller wants to cancel) with no
// compliance, clamping the implied impulse to maxImpulse. Used for
// static-friction position correction, where exceeding the Coulomb
// limit means the contact should have slid rather than stuck. Unlike
// positionalCorrection, dir here points along bodyA's own sliding
// motion relative to bodyB, so the gradient signs are reversed: A gets
// the `Add`, B gets the `Sub`.
func rigidTangentialCorrection(bodyA, bodyB *Body, rA, rB, dir mathf.Vec2, ct, maxImpulse float64) {
	waA := mathf.Cross2(rA, dir)
	waB := mathf.Cross2(rB, dir)
	w := bodyA.Mass.InvMass() + bodyA.Mass.InvInertia()*waA*waA +
		bodyB.Mass.InvMass() + bodyB.Mass.InvInertia()*waB*waB
	if w < 1e-12 {
		return
	}

	lambda := -ct / w
	if lambda > maxImpulse {
		lambda = maxImpulse
	} else if lambda < -maxImpulse {
		lambda = -maxImpulse
	}

	impulse := dir.Mul(lambda)
	if !bodyA.IsAnchor() {
		bodyA.Pose.Translation = bodyA.Pose.Translation.Add(impulse.Mul(bodyA.Mass.InvMass()))
		dTheta := bodyA.Mass.InvInertia() * waA * lambda
		bodyA.Pose.Rotation = bodyA.Pose.Rotation.Integrate(dTheta, 1).Normalized()
	}
	if !bodyB.IsAnchor() {
		bodyB.Pose.Translation = bodyB.Pose.Translation.Sub(impulse.Mul(bodyB.Mass.InvMass()))
		dTheta := -bodyB.Mass.InvInertia() * waB * lambda
		bodyB.Pose.Rotation = bodyB.Pose.Rotation.Integrate(dTheta, 1).Normalized()
	}
}

// pointVelocity returns the world-space velocity of a material point
// rigidly attached to a body at world-space offset r from its center:
// v + omega x r, specialized to 2D (omega x r = omega * leftNormal(r)).
func pointVelocity(v mathf.Vec2, omega float64, r mathf.Vec2) mathf.Vec2 {
	return v.Add(mathf.LeftNormal(r).Mul(omega))
}
