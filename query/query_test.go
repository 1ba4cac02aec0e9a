package query

import (
	"math"
	"testing"

	"github.com/starframe/starframe/collider"
	"github.com/starframe/starframe/mathf"
)

func assertTEq(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) >= 0.0001 {
		t.Fatalf("hit the wrong thing at t %v (expected %v)", got, want)
	}
}

func dirOf(x, y float64) mathf.Unit2 {
	return mathf.NewUnit2Normalize(mathf.Vec2{x, y})
}

func TestRayCircleSmoketest(t *testing.T) {
	if _, ok := rayCircle(
		mathf.Ray{Start: mathf.Zero2(), Dir: mathf.NewUnit2Unchecked(mathf.UnitY2())},
		mathf.Vec2{0, 2}, 1); !ok {
		t.Fatalf("expected a hit")
	}
	if _, ok := rayCircle(
		mathf.Ray{Start: mathf.Zero2(), Dir: dirOf(1, 1)},
		mathf.Vec2{0, 2}, 1); ok {
		t.Fatalf("expected a miss")
	}
}

func TestRayCapsule(t *testing.T) {
	pose := mathf.NewPose(mathf.Vec2{5, 3.5}, mathf.RotorFromAngle(mathf.Deg(65)))
	cap := collider.NewCapsule(4, 1)

	shouldHit := func(ray mathf.Ray, expectedT float64) {
		t.Helper()
		got, ok := RayCollider(ray.Transformed(pose), pose, cap)
		if !ok {
			t.Fatalf("expected a hit")
		}
		assertTEq(t, got, expectedT)
	}
	shouldHitCircle := func(ray mathf.Ray, circPos mathf.Vec2) {
		t.Helper()
		capHit, capOk := RayCollider(ray.Transformed(pose), pose, cap)
		circHit, circOk := rayCircle(ray, circPos, cap.CircleR)
		if capOk != circOk {
			t.Fatalf("one of circle/capsule missed but the other didn't (cap=%v circ=%v)", capOk, circOk)
		}
		if capOk {
			assertTEq(t, capHit, circHit)
		}
	}
	shouldMiss := func(ray mathf.Ray) {
		t.Helper()
		if _, ok := RayCollider(ray.Transformed(pose), pose, cap); ok {
			t.Fatalf("expected a miss")
		}
	}

	ray := mathf.Ray{Start: mathf.Vec2{0, -2}, Dir: mathf.NewUnit2Unchecked(mathf.UnitY2())}
	shouldHit(ray, 1.0)
	ray.Dir = dirOf(1, 1)
	shouldHit(ray, math.Sqrt2)
	ray.Dir = dirOf(2.1, 1)
	shouldHitCircle(ray, mathf.Vec2{2, 0})
	ray.Dir = mathf.NewUnit2Unchecked(mathf.UnitX2())
	shouldMiss(ray)
	ray.Start[0] = -3
	ray.Dir = dirOf(1, 1)
	shouldHitCircle(ray, mathf.Vec2{-2, 0})
	ray.Dir = dirOf(2, 1)
	shouldHit(ray, math.Sqrt(5))
	ray.Start[0] = -2.5
	ray.Dir = mathf.NewUnit2Unchecked(mathf.UnitY2())
	shouldHitCircle(ray, mathf.Vec2{-2, 0})
	ray.Start = mathf.Vec2{-500, 0}
	ray.Dir = mathf.NewUnit2Unchecked(mathf.UnitX2())
	shouldHitCircle(ray, mathf.Vec2{-2, 0})
	ray.Start[1] = 3
	shouldMiss(ray)
}

func TestRayRect(t *testing.T) {
	pose := mathf.NewPose(mathf.Vec2{-5, 8.3}, mathf.RotorFromAngle(mathf.Deg(2)))
	rect := collider.NewRect(4, 2)

	shouldHit := func(ray mathf.Ray, expectedT float64) {
		t.Helper()
		got, ok := RayCollider(ray.Transformed(pose), pose, rect)
		if !ok {
			t.Fatalf("expected a hit")
		}
		assertTEq(t, got, expectedT)
	}
	shouldMiss := func(ray mathf.Ray) {
		t.Helper()
		if _, ok := RayCollider(ray.Transformed(pose), pose, rect); ok {
			t.Fatalf("expected a miss")
		}
	}

	ray := mathf.Ray{Start: mathf.Vec2{0, -2}, Dir: mathf.NewUnit2Unchecked(mathf.UnitY2())}
	shouldHit(ray, 1.0)
	ray.Dir = dirOf(1, 1)
	shouldHit(ray, math.Sqrt2)
	ray.Dir = dirOf(2.1, 1)
	shouldMiss(ray)
	ray.Dir = mathf.NewUnit2Unchecked(mathf.UnitX2())
	shouldMiss(ray)
	ray.Start[0] = -3
	shouldMiss(ray)
	ray.Dir = dirOf(1, 1)
	shouldHit(ray, math.Sqrt2)
	ray.Dir = dirOf(2, 1)
	shouldHit(ray, math.Sqrt(5))
	ray.Dir = dirOf(1, 2)
	shouldHit(ray, math.Sqrt(5))
}

func TestRayRoundedRect(t *testing.T) {
	pose := mathf.NewPose(mathf.Vec2{500, 8.5}, mathf.RotorFromAngle(mathf.Deg(23)))
	rect := collider.NewRoundedRect(6, 4, 1)

	shouldHit := func(ray mathf.Ray, expectedT float64) {
		t.Helper()
		got, ok := RayCollider(ray.Transformed(pose), pose, rect)
		if !ok {
			t.Fatalf("expected a hit")
		}
		assertTEq(t, got, expectedT)
	}
	shouldHitCircle := func(ray mathf.Ray, circPos mathf.Vec2) {
		t.Helper()
		boxHit, boxOk := RayCollider(ray.Transformed(pose), pose, rect)
		circHit, circOk := rayCircle(ray, circPos, rect.CircleR)
		if boxOk != circOk {
			t.Fatalf("one of circle/box missed but the other didn't")
		}
		if boxOk {
			assertTEq(t, boxHit, circHit)
		}
	}
	shouldMiss := func(ray mathf.Ray) {
		t.Helper()
		if _, ok := RayCollider(ray.Transformed(pose), pose, rect); ok {
			t.Fatalf("expected a miss")
		}
	}

	ray := mathf.Ray{Start: mathf.Vec2{0, -3}, Dir: mathf.NewUnit2Unchecked(mathf.UnitY2())}
	shouldHit(ray, 1.0)
	ray.Dir = dirOf(1, 1)
	shouldHit(ray, math.Sqrt2)
	ray.Dir = dirOf(2.1, 1)
	shouldHitCircle(ray, mathf.Vec2{2, -1})
	ray.Dir = mathf.NewUnit2Unchecked(mathf.UnitX2())
	shouldMiss(ray)
	ray.Start[0] = -4
	shouldMiss(ray)
	ray.Dir = dirOf(1, 1)
	shouldHitCircle(ray, mathf.Vec2{-2, -1})
	ray.Dir = dirOf(2, 1)
	shouldHit(ray, math.Sqrt(5))
	ray.Dir = dirOf(1, 2)
	shouldHit(ray, math.Sqrt(5))
	ray.Start[0] = -2.5
	ray.Dir = mathf.NewUnit2Unchecked(mathf.UnitY2())
	shouldHitCircle(ray, mathf.Vec2{-2, -1})
}

// Convention: a ray always misses if it starts inside the collider.
func TestInsideAlwaysMisses(t *testing.T) {
	pose := mathf.Identity()
	colliders := []collider.Collider{
		collider.NewCircle(1),
		collider.NewCapsule(2, 0.5),
		collider.NewRect(2, 1),
		collider.NewRoundedRect(2, 1, 0.25),
	}
	for _, c := range colliders {
		ray := mathf.Ray{Start: mathf.Zero2(), Dir: mathf.NewUnit2Unchecked(mathf.UnitX2())}
		for angle := 0.0; angle < 2*math.Pi*2; angle += 0.05 {
			ray.Dir = mathf.NewUnit2Unchecked(mathf.Vec2{math.Cos(angle), math.Sin(angle)})
			if _, ok := RayCollider(ray, pose, c); ok {
				t.Fatalf("hit shape %v from the inside at angle %f", c.Polygon.Kind(), angle)
			}
		}
	}
}
