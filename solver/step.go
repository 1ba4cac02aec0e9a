package solver

import (
	"log"
	"math"

	"github.com/starframe/starframe/mathf"
)

// Island is one independent group of bodies and the constraints linking
// them, as produced by package island and handed to the solver for one
// sub-step. Constraint categories are kept separate rather than one
// flat slice so Step can enforce the {contacts, attachments, ropes,
// user constraints} ordering guarantee without sorting every sub-step.
type Island struct {
	Bodies      []*Body
	Contacts    []*ContactConstraint
	Attachments []*DistanceConstraint
	Ropes       []*Rope
	User        []Constraint
}

// Params configures a tick's sub-stepped solve.
type Params struct {
	Gravity             mathf.Vec2
	Substeps            int
	Iterations          int
	SleepVelocityEps    float64
	SleepTime           float64
	SolverIterationsMin int
}

// DefaultParams returns reasonable defaults: 8 sub-steps, 1 Gauss-Seidel
// iteration per sub-step (XPBD amortises iterations across sub-steps
// rather than within one), and a half-second sleep timer.
func DefaultParams() Params {
	return Params{
		Gravity:          mathf.Vec2{0, -9.81},
		Substeps:         8,
		Iterations:       1,
		SleepVelocityEps: 0.01,
		SleepTime:        0.5,
	}
}

// Tick runs dt seconds of simulation over island, sub-stepped per p.
func Tick(island *Island, dt float64, p Params) {
	substeps := p.Substeps
	if substeps < 1 {
		substeps = 1
	}
	dtSub := dt / float64(substeps)
	for s := 0; s < substeps; s++ {
		Substep(island, dtSub, p)
	}
}

// Substep runs one XPBD sub-step: predict, project constraints in their
// guaranteed order, recompute velocities, apply restitution/damping,
// and guard against NaNs. Sleep timers are advanced separately, once a
// tick, by UpdateSleep.
func Substep(island *Island, dtSub float64, p Params) {
	predict(island, dtSub, p.Gravity)

	for _, c := range island.Contacts {
		c.CaptureRestitutionBaseline()
	}

	iterations := p.Iterations
	if iterations < 1 {
		iterations = 1
	}
	resetLambdas(island)
	for iter := 0; iter < iterations; iter++ {
		for _, c := range island.Contacts {
			c.SolvePosition(dtSub)
		}
		for _, a := range island.Attachments {
			a.SolvePosition(dtSub)
		}
		for _, r := range island.Ropes {
			r.SolvePosition(dtSub)
		}
		for _, u := range island.User {
			u.SolvePosition(dtSub)
		}
	}

	recomputeVelocities(island, dtSub)

	for _, c := range island.Contacts {
		c.SolveVelocity(dtSub)
	}
	for _, a := range island.Attachments {
		a.SolveVelocity(dtSub)
	}
	for _, r := range island.Ropes {
		r.SolveVelocity(dtSub)
	}
	for _, u := range island.User {
		u.SolveVelocity(dtSub)
	}

	guardNaNs(island)
}

func resetLambdas(island *Island) {
	for _, c := range island.Contacts {
		c.ResetLambda()
	}
	for _, a := range island.Attachments {
		a.ResetLambda()
	}
	for _, r := range island.Ropes {
		r.ResetLambda()
	}
	for _, u := range island.User {
		u.ResetLambda()
	}
}

func predict(island *Island, dtSub float64, gravity mathf.Vec2) {
	for _, b := range island.Bodies {
		if b.Kind == Static || b.Sleeping {
			continue
		}
		b.PrevPose = b.Pose
		if b.Kind == Dynamic {
			if !b.IgnoresGravity {
				b.Velocity = b.Velocity.Add(gravity.Mul(dtSub))
			}
			if b.force != mathf.Zero2() {
				b.Velocity = b.Velocity.Add(b.force.Mul(b.Mass.InvMass() * dtSub))
				b.force = mathf.Zero2()
			}
		}
		b.Pose.Translation = b.Pose.Translation.Add(b.Velocity.Mul(dtSub))
		b.Pose.Rotation = b.Pose.Rotation.Integrate(b.AngularVelocity, dtSub)
	}
}

func recomputeVelocities(island *Island, dtSub float64) {
	for _, b := range island.Bodies {
		if b.Kind == Static || b.Sleeping {
			continue
		}
		b.Velocity = b.Pose.Translation.Sub(b.PrevPose.Translation).Mul(1 / dtSub)
		relative := b.PrevPose.Rotation.Reversed().Mul(b.Pose.Rotation)
		b.AngularVelocity = relative.Angle().Radians() / dtSub
	}
}

func guardNaNs(island *Island) {
	for _, b := range island.Bodies {
		if b.Kind == Static {
			continue
		}
		if poseIsFinite(b.Pose) {
			continue
		}
		log.Printf("solver: non-finite pose recovered, restoring previous pose")
		b.Pose = b.PrevPose
		b.Velocity = mathf.Zero2()
		b.AngularVelocity = 0
	}
}

func poseIsFinite(p mathf.Pose) bool {
	return isFinite(p.Translation[0]) && isFinite(p.Translation[1]) &&
		isFinite(p.Rotation.Cos) && isFinite(p.Rotation.Sin)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// UpdateSleep advances every dynamic body's sleep timer by dt, putting
// bodies whose linear and angular speed stays below p.SleepVelocityEps
// for p.SleepTime seconds to sleep.
func UpdateSleep(island *Island, dt float64, p Params) {
	for _, b := range island.Bodies {
		b.updateSleep(dt, p.SleepVelocityEps, p.SleepTime)
	}
}
