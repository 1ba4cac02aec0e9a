package solver

import (
	"math"
	"testing"

	"github.com/starframe/starframe/collider"
	"github.com/starframe/starframe/mathf"
	"github.com/starframe/starframe/narrowphase"
)

func almostEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("got %v, want %v (tol %v)", got, want, tol)
	}
}

// Two equal-mass bodies approaching head-on with restitution 1 should
// swap velocities exactly, the textbook 1D elastic collision result.
func TestContactConstraintElasticBounceSwapsVelocities(t *testing.T) {
	material := collider.Material{Restitution: 1}
	bodyA := NewDynamicBody(mathf.NewPose(mathf.Vec2{-1, 0}, mathf.Identity2()), FiniteMass(1, 1), material)
	bodyB := NewDynamicBody(mathf.NewPose(mathf.Vec2{1, 0}, mathf.Identity2()), FiniteMass(1, 1), material)
	bodyA.Velocity = mathf.Vec2{2, 0}
	bodyB.Velocity = mathf.Vec2{-2, 0}

	contacts := []narrowphase.Contact{{
		Normal:  mathf.NewUnit2Unchecked(mathf.Vec2{1, 0}),
		Offsets: [2]mathf.Vec2{{0, 0}, {0, 0}},
	}}
	c := NewContactConstraint(bodyA, bodyB, contacts)
	c.CaptureRestitutionBaseline()
	// pretend this sub-step's position solve already found these bodies
	// interpenetrating, as it would once gravity-free approach closes
	// the remaining gap.
	c.lambdas[0] = 1

	c.SolveVelocity(1.0 / 60.0)

	almostEqual(t, bodyA.Velocity[0], -2, 1e-9)
	almostEqual(t, bodyB.Velocity[0], 2, 1e-9)
}

// A resting contact with zero restitution should settle the falling
// ball on the ground rather than letting it sink through or bounce.
func TestBallRestsOnStaticGroundWithoutSinkingOrBouncing(t *testing.T) {
	radius := 0.5
	ground := NewStaticBody(mathf.Identity())
	ball := NewDynamicBody(mathf.NewPose(mathf.Vec2{0, 2}, mathf.Identity2()), FiniteMass(1, 1), collider.Material{})

	contacts := []narrowphase.Contact{{
		Normal:  mathf.NewUnit2Unchecked(mathf.Vec2{0, 1}),
		Offsets: [2]mathf.Vec2{{0, 0}, {0, -radius}},
	}}
	c := NewContactConstraint(ground, ball, contacts)

	island := &Island{Bodies: []*Body{ground, ball}, Contacts: []*ContactConstraint{c}}
	p := DefaultParams()

	for i := 0; i < 300; i++ {
		Tick(island, 1.0/60.0, p)
	}

	if ball.Pose.Translation[1] < radius-0.1 {
		t.Fatalf("ball sank through the ground: y=%v", ball.Pose.Translation[1])
	}
	if ball.Pose.Translation[1] > radius+0.3 {
		t.Fatalf("ball did not settle near the ground: y=%v", ball.Pose.Translation[1])
	}
	if ball.Velocity.Len() > 1.0 {
		t.Fatalf("ball should have settled to a small velocity, got %v", ball.Velocity)
	}
}
