package narrowphase

import (
	"math"
	"testing"

	"github.com/starframe/starframe/collider"
	"github.com/starframe/starframe/mathf"
)

func identityPose() mathf.Pose { return mathf.Identity() }

func posedAt(x, y float64) mathf.Pose {
	return mathf.NewPose(mathf.Vec2{x, y}, mathf.Identity2())
}

func TestCircleCircleOverlapProducesOneContact(t *testing.T) {
	a := collider.NewCircle(1)
	b := collider.NewCircle(1)

	result := Intersect([2]mathf.Pose{posedAt(0, 0), posedAt(1.5, 0)}, [2]collider.Collider{a, b})
	if result.Len() != 1 {
		t.Fatalf("expected one contact, got %d", result.Len())
	}
	c := result.At(0)
	if c.Normal.Vec()[0] <= 0 {
		t.Fatalf("normal should point from a towards b (+x), got %v", c.Normal.Vec())
	}
}

func TestCircleCircleSeparatedMisses(t *testing.T) {
	a := collider.NewCircle(1)
	b := collider.NewCircle(1)
	result := Intersect([2]mathf.Pose{posedAt(0, 0), posedAt(5, 0)}, [2]collider.Collider{a, b})
	if !result.IsZero() {
		t.Fatalf("expected no contact, got %d", result.Len())
	}
}

func TestRectOnRectFlatOverlapProducesTwoContacts(t *testing.T) {
	a := collider.NewRect(4, 2)
	b := collider.NewRect(4, 2)

	// b sits right above a, overlapping by 0.5 along y: a flat two-point
	// contact along the shared edge.
	result := Intersect([2]mathf.Pose{identityPose(), posedAt(0, 1.5)}, [2]collider.Collider{a, b})
	if result.Len() != 2 {
		t.Fatalf("expected a two-point contact, got %d", result.Len())
	}
	for _, c := range result.Contacts() {
		if math.Abs(c.Normal.Vec()[1]-1) > 1e-9 {
			t.Fatalf("normal should point straight up, got %v", c.Normal.Vec())
		}
	}
}

func TestCapsuleRestingOnRectProducesTwoContacts(t *testing.T) {
	capsule := collider.NewCapsule(4, 0.5)
	ground := collider.NewRect(20, 2)

	// capsule lying flat, sunk 0.05 into the ground's top face.
	result := Intersect([2]mathf.Pose{posedAt(0, 1.45), identityPose()}, [2]collider.Collider{capsule, ground})
	if result.Len() != 2 {
		t.Fatalf("capsule resting flat on a rect should produce two contacts, got %d", result.Len())
	}
}

func TestCircleVsRectInteriorCenter(t *testing.T) {
	circ := collider.NewCircle(0.5)
	rect := collider.NewRect(4, 4)

	result := Intersect([2]mathf.Pose{posedAt(0, 0), identityPose()}, [2]collider.Collider{circ, rect})
	if result.Len() != 1 {
		t.Fatalf("circle centered inside rect should produce one contact, got %d", result.Len())
	}
}

func TestFlippedOrderProducesMirroredNormal(t *testing.T) {
	circ := collider.NewCircle(1)
	rect := collider.NewRect(4, 4)

	forward := Intersect([2]mathf.Pose{posedAt(-2.2, 0), identityPose()}, [2]collider.Collider{circ, rect})
	backward := Intersect([2]mathf.Pose{identityPose(), posedAt(-2.2, 0)}, [2]collider.Collider{rect, circ})

	if forward.IsZero() || backward.IsZero() {
		t.Fatalf("expected a contact in both orders, got forward=%d backward=%d", forward.Len(), backward.Len())
	}
	fn := forward.At(0).Normal.Vec()
	bn := backward.At(0).Normal.Vec()
	if math.Abs(fn[0]+bn[0]) > 1e-9 || math.Abs(fn[1]+bn[1]) > 1e-9 {
		t.Fatalf("swapping argument order should negate the normal: %v vs %v", fn, bn)
	}
}
