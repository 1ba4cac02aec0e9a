// Package query implements point and ray intersection tests against
// colliders, grounded on
// original_source/src/physics/collision/query.rs.
package query

import (
	"math"

	"github.com/starframe/starframe/collider"
	"github.com/starframe/starframe/mathf"
)

// PointCollider reports whether point (in world space) lies within the
// collider posed by pose.
func PointCollider(point mathf.Vec2, pose mathf.Pose, c collider.Collider) bool {
	r := c.CircleR
	pWrtC := pose.PointToLocal(point)

	switch c.Polygon.Kind() {
	case collider.KindPoint:
		return pWrtC.Dot(pWrtC) < r*r

	case collider.KindLineSegment:
		hl, _ := c.Polygon.HalfExtent()
		xDist := math.Max(math.Abs(pWrtC[0])-hl, 0)
		yDist := math.Abs(pWrtC[1])
		return xDist*xDist+yDist*yDist < r*r

	case collider.KindRect:
		hw, hh := c.Polygon.HalfExtent()
		xDist := math.Abs(pWrtC[0]) - hw
		yDist := math.Abs(pWrtC[1]) - hh
		if xDist <= 0 && yDist <= 0 {
			return true
		}
		xDist = math.Max(xDist, 0)
		yDist = math.Max(yDist, 0)
		return xDist*xDist+yDist*yDist < r*r

	default:
		// Triangle and Hexagon: no closed form, fall back to the
		// boundary-distance test that works for any convex polygon.
		closest, isInterior := collider.ClosestBoundaryPoint(c.Polygon, pWrtC)
		if isInterior {
			return true
		}
		d := closest.Sub(pWrtC)
		return d.Dot(d) < r*r
	}
}
