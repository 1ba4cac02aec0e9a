package mathf

import (
	"math"
	"testing"
)

func TestRotorIntegrateMatchesDirectAngle(t *testing.T) {
	r := Identity2()
	dt := 1.0 / 60.0
	omega := 2.0
	for i := 0; i < 60; i++ {
		r = r.Integrate(omega, dt)
	}
	got := r.Angle().Radians()
	want := omega * 1.0
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("integrated angle = %v, want %v", got, want)
	}
}

func TestPoseInverseRoundTrips(t *testing.T) {
	p := NewPose(Vec2{3, -2}, RotorFromAngle(Deg(40)))
	pt := Vec2{1.5, 2.5}
	world := p.TransformPoint(pt)
	back := p.Inversed().TransformPoint(world)
	if math.Abs(back[0]-pt[0]) > 1e-9 || math.Abs(back[1]-pt[1]) > 1e-9 {
		t.Fatalf("round trip mismatch: got %v, want %v", back, pt)
	}
}

func TestPointToLocalMatchesInversed(t *testing.T) {
	p := NewPose(Vec2{-4, 8}, RotorFromAngle(Deg(123)))
	world := Vec2{9, -1}
	a := p.PointToLocal(world)
	b := p.Inversed().TransformPoint(world)
	if math.Abs(a[0]-b[0]) > 1e-9 || math.Abs(a[1]-b[1]) > 1e-9 {
		t.Fatalf("PointToLocal mismatch: %v vs %v", a, b)
	}
}

func TestRayTransformedRoundTrips(t *testing.T) {
	p := NewPose(Vec2{1, 1}, RotorFromAngle(Deg(30)))
	r := Ray{Start: Vec2{0, 0}, Dir: NewUnit2Normalize(Vec2{1, 1})}
	transformed := r.Transformed(p)
	back := transformed.ToLocal(p)
	if math.Abs(back.Start[0]-r.Start[0]) > 1e-9 || math.Abs(back.Start[1]-r.Start[1]) > 1e-9 {
		t.Fatalf("ray round trip start mismatch: %v vs %v", back.Start, r.Start)
	}
}
