package query

import (
	"math"

	"github.com/starframe/starframe/collider"
	"github.com/starframe/starframe/mathf"
)

// RayCollider returns the parameter t at which ray (in world space)
// first hits the collider posed by pose, or false if it misses.
// Point and LineSegment get dedicated special cases since they don't
// have a well-formed outer polygon to clip against; every other shape
// goes through the generic clipping loop.
func RayCollider(ray mathf.Ray, pose mathf.Pose, c collider.Collider) (float64, bool) {
	r := c.CircleR

	switch c.Polygon.Kind() {
	case collider.KindPoint:
		return rayCircle(ray, pose.Translation, r)

	case collider.KindLineSegment:
		return rayCapsule(ray.ToLocal(pose), c, r)

	default:
		return rayPolygon(ray.ToLocal(pose), c, r)
	}
}

func rayCapsule(ray mathf.Ray, c collider.Collider, r float64) (float64, bool) {
	hl, _ := c.Polygon.HalfExtent()
	dir := ray.Dir.Vec()

	if math.Abs(dir[1]) < 0.0001 {
		// ray runs parallel to the capsule's spine.
		if math.Abs(ray.Start[1]) >= r || math.Abs(ray.Start[0]) < hl {
			return 0, false
		}
		return rayCircle(ray, mathf.Vec2{math.Copysign(hl, ray.Start[0]), 0}, r)
	}

	facingEdgeY := math.Copysign(r, -dir[1])
	tToFacingEdge := (facingEdgeY - ray.Start[1]) / dir[1]
	if tToFacingEdge < 0 {
		return 0, false
	}

	xAtEdgeHit := ray.Start[0] + tToFacingEdge*dir[0]
	if math.Abs(xAtEdgeHit) <= hl {
		return tToFacingEdge, true
	}
	return rayCircle(ray, mathf.Vec2{math.Copysign(hl, xAtEdgeHit), 0}, r)
}

func rayPolygon(ray mathf.Ray, c collider.Collider, r float64) (float64, bool) {
	poly := c.Polygon

	rayDirPerp := mathf.NewUnit2Unchecked(mathf.LeftNormal(ray.Dir.Vec()))
	rayDist := ray.Start.Dot(rayDirPerp.Vec())
	if rayDist < 0 {
		rayDirPerp = rayDirPerp.Neg()
		rayDist = -rayDist
	}

	polyExtent := collider.ProjectedExtent(poly, rayDirPerp.Vec())
	if polyExtent+r <= rayDist {
		return 0, false
	}

	var outerEdgeExtraLength float64
	if r != 0 {
		angleTan := collider.HalfAngleBetweenEdgesTan(poly)
		outerEdgeExtraLength = r / angleTan
	}

	var vertexForCircleCheck *mathf.Vec2
	closestHitT := math.MaxFloat64

	n := collider.EdgeCount(poly)
	for i := 0; i < n; i++ {
		edge := collider.GetEdge(poly, i)
		if edge.Normal.Dot(ray.Dir.Vec()) > 0 {
			if poly.IsRotationallySymmetrical() {
				edge = mirrorSupportingEdge(edge)
			} else {
				continue
			}
		}
		outerEdge := edge.Edge.Offset(edge.Normal.Vec().Mul(r))

		edgeDistFromRay := outerEdge.Start.Sub(ray.Start)
		rayspeedToEdge := ray.Dir.Dot(edge.Normal.Vec().Mul(-1))
		if rayspeedToEdge == 0 {
			continue
		}
		rayTToEdge := edgeDistFromRay.Dot(edge.Normal.Vec().Mul(-1)) / rayspeedToEdge
		if rayTToEdge < 0 {
			continue
		}

		raySpeedAlongEdge := ray.Dir.Dot(edge.Edge.Dir.Vec())
		edgeTToIntersection := rayTToEdge*raySpeedAlongEdge - edgeDistFromRay.Dot(edge.Edge.Dir.Vec())

		if edgeTToIntersection < -outerEdgeExtraLength || edgeTToIntersection > edge.Edge.Length+outerEdgeExtraLength {
			continue
		}
		if closestHitT <= rayTToEdge {
			continue
		}

		closestHitT = rayTToEdge
		switch {
		case edgeTToIntersection < 0:
			v := edge.Edge.Start
			vertexForCircleCheck = &v
		case edgeTToIntersection > edge.Edge.Length:
			v := edge.Edge.Start.Add(edge.Edge.Dir.Vec().Mul(edge.Edge.Length))
			vertexForCircleCheck = &v
		default:
			vertexForCircleCheck = nil
		}
	}

	if closestHitT == math.MaxFloat64 {
		return 0, false
	}
	if vertexForCircleCheck != nil {
		return rayCircle(ray, *vertexForCircleCheck, r)
	}
	return closestHitT, true
}

func mirrorSupportingEdge(e collider.SupportingEdge) collider.SupportingEdge {
	return collider.SupportingEdge{
		Edge:   e.Edge.Mirrored(),
		Normal: e.Normal.Neg(),
	}
}

// rayCircle solves the ray/circle intersection via the quadratic from
// Real-Time Collision Detection ch. 5: t^2 + 2(m.d)t + (m.m - r^2) = 0.
func rayCircle(ray mathf.Ray, circPos mathf.Vec2, r float64) (float64, bool) {
	rayStartWrtCirc := ray.Start.Sub(circPos)
	b := rayStartWrtCirc.Dot(ray.Dir.Vec())
	cc := rayStartWrtCirc.Dot(rayStartWrtCirc) - r*r
	if b > 0 && cc > 0 {
		return 0, false
	}
	discr := b*b - cc
	if discr < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(discr)
	if t >= 0 {
		return t, true
	}
	// ray started inside the circle; by convention that's a miss.
	return 0, false
}
