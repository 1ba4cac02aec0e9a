package query

import (
	"testing"

	"github.com/starframe/starframe/collider"
	"github.com/starframe/starframe/mathf"
)

func TestPointColliderCircle(t *testing.T) {
	c := collider.NewCircle(1)
	pose := mathf.NewPose(mathf.Vec2{2, 0}, mathf.Identity2())

	if !PointCollider(mathf.Vec2{2.5, 0}, pose, c) {
		t.Fatalf("point inside circle should report true")
	}
	if PointCollider(mathf.Vec2{5, 0}, pose, c) {
		t.Fatalf("point far outside circle should report false")
	}
}

func TestPointColliderRect(t *testing.T) {
	c := collider.NewRect(4, 2)
	pose := mathf.Identity()

	if !PointCollider(mathf.Vec2{0, 0}, pose, c) {
		t.Fatalf("origin should be inside the rect")
	}
	if !PointCollider(mathf.Vec2{1.9, 0.9}, pose, c) {
		t.Fatalf("point near the corner should still be inside")
	}
	if PointCollider(mathf.Vec2{10, 10}, pose, c) {
		t.Fatalf("far point should be outside")
	}
}

func TestPointColliderRoundedRectCorner(t *testing.T) {
	c := collider.NewRoundedRect(4, 2, 0.5)
	pose := mathf.Identity()

	// just outside the sharp corner but within the rounding radius
	if !PointCollider(mathf.Vec2{2.3, 1.3}, pose, c) {
		t.Fatalf("point within the rounding radius of the corner should be inside")
	}
	if PointCollider(mathf.Vec2{3, 2}, pose, c) {
		t.Fatalf("point well past the rounding radius should be outside")
	}
}
