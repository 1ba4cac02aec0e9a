package narrowphase

import (
	"math"

	"github.com/starframe/starframe/collider"
	"github.com/starframe/starframe/mathf"
)

// Intersect checks two colliders, posed in world space, for
// intersection. Dispatches to the cheaper circle/circle and circle/any
// special cases when either shape is a plain circle (Polygon kind
// Point), falling back to the generic SAT-plus-clip test otherwise.
func Intersect(poses [2]mathf.Pose, shapes [2]collider.Collider) ContactResult {
	r0, r1 := shapes[0].CircleR, shapes[1].CircleR
	k0, k1 := shapes[0].Polygon.Kind(), shapes[1].Polygon.Kind()

	switch {
	case k0 == collider.KindPoint && k1 == collider.KindPoint:
		return circleCircle(poses[0], r0, poses[1], r1)
	case k0 == collider.KindPoint:
		return circleAny(poses[0], r0, poses[1], shapes[1], r1)
	case k1 == collider.KindPoint:
		return flipContacts(circleAny(poses[1], r1, poses[0], shapes[0], r0))
	default:
		return anyAny(poses, shapes)
	}
}

func circleCircle(pose1 mathf.Pose, r1 float64, pose2 mathf.Pose, r2 float64) ContactResult {
	dist := pose2.Translation.Sub(pose1.Translation)
	distSq := dist.Dot(dist)
	rSum := r1 + r2

	var normal mathf.Unit2
	switch {
	case distSq < 0.001:
		// same position: treat the penetration as being along the x axis.
		normal = mathf.NewUnit2Unchecked(mathf.UnitX2())
	case distSq < rSum*rSum:
		normal = mathf.NewUnit2Normalize(dist)
	default:
		return Zero()
	}

	return One(Contact{
		Normal: normal,
		Offsets: [2]mathf.Vec2{
			pose1.Rotation.Reversed().Rotate(normal.Vec().Mul(r1)),
			pose2.Rotation.Reversed().Rotate(normal.Vec().Mul(-r2)),
		},
	})
}

func circleAny(poseCirc mathf.Pose, rCirc float64, poseOther mathf.Pose, shapeOther collider.Collider, rOther float64) ContactResult {
	poseCircLocal := poseOther.Inversed().Mul(poseCirc)
	dist := poseCircLocal.Translation

	closestPt, isInterior := collider.ClosestBoundaryPoint(shapeOther.Polygon, dist)
	distFromClosest := dist.Sub(closestPt)

	if isInterior {
		dirFromClosest := mathf.NewUnit2Normalize(distFromClosest)
		return One(Contact{
			// normal points away from the circle; here dir_from_closest
			// points inward, into the other shape, which is correct.
			Normal: poseOther.Rotation.RotateUnit(dirFromClosest),
			Offsets: [2]mathf.Vec2{
				poseCircLocal.Rotation.Reversed().Rotate(dirFromClosest.Vec().Mul(rCirc)),
				closestPt.Sub(dirFromClosest.Vec().Mul(rOther)),
			},
		})
	}

	rSum := rCirc + rOther
	distSq := distFromClosest.Dot(distFromClosest)
	if distSq >= rSum*rSum {
		return Zero()
	}
	dirFromClosest := mathf.NewUnit2Unchecked(distFromClosest.Mul(1 / math.Sqrt(distSq)))
	return One(Contact{
		Normal: poseOther.Rotation.RotateUnit(dirFromClosest.Neg()),
		Offsets: [2]mathf.Vec2{
			poseCircLocal.Rotation.Reversed().Rotate(dirFromClosest.Neg().Vec().Mul(rCirc)),
			closestPt.Add(dirFromClosest.Vec().Mul(rOther)),
		},
	})
}

func anyAny(poses [2]mathf.Pose, shapes [2]collider.Collider) ContactResult {
	po2Wrt1 := poses[0].Inversed().Mul(poses[1])
	relativePoses := [2]mathf.Pose{po2Wrt1.Inversed(), po2Wrt1}

	// separating axis test along both polygons' own faces; gives an
	// early out plus the closest pair of edges to clip against.
	penDepth := math.MaxFloat64
	var penAxis collider.SeparatingAxis
	var shapeOrder [2]int
	found := false

	consider := func(axis collider.SeparatingAxis, order [2]int) (zero bool) {
		dist := relativePoses[order[1]].Translation
		if axis.Axis.Dot(dist) < 0 {
			if !axis.Symmetrical {
				return false
			}
			axis = axis.Mirrored()
		}

		axisWrtOther := relativePoses[order[0]].Rotation.Rotate(axis.Axis.Vec()).Mul(-1)
		depth := axis.Extent + shapes[0].CircleR +
			collider.ProjectedExtent(shapes[order[1]].Polygon, axisWrtOther) +
			shapes[1].CircleR - dist.Dot(axis.Axis.Vec())

		if depth <= 0 {
			return true
		}
		if depth < penDepth {
			penDepth = depth
			penAxis = axis
			shapeOrder = order
			found = true
		}
		return false
	}

	for _, a := range collider.SeparatingAxes(shapes[0].Polygon) {
		if consider(a, [2]int{0, 1}) {
			return Zero()
		}
	}
	for _, a := range collider.SeparatingAxes(shapes[1].Polygon) {
		if consider(a, [2]int{1, 0}) {
			return Zero()
		}
	}

	if !found {
		panic("narrowphase: don't use anyAny for a circle-circle pair")
	}

	orient := func(r ContactResult) ContactResult { return r }
	if shapeOrder[0] != 0 {
		orient = flipContacts
	}

	owningEdge := penAxis.Edge
	if shapes[shapeOrder[0]].CircleR != 0 {
		owningEdge = owningEdge.Offset(penAxis.Axis.Vec().Mul(shapes[shapeOrder[0]].CircleR))
	}

	penAxisWrtSnd := relativePoses[shapeOrder[0]].Rotation.Rotate(penAxis.Axis.Vec()).Mul(-1)

	incidentEdgeInnerLocal, ok := collider.SupportingEdgeOf(shapes[shapeOrder[1]].Polygon, penAxisWrtSnd)
	if !ok {
		panic("narrowphase: don't use generic collision detection with circles")
	}
	bothSimplePolygons := shapes[shapeOrder[0]].CircleR == 0 && shapes[shapeOrder[1]].CircleR == 0

	incidentEdgeInner := incidentEdgeInnerLocal.Transformed(relativePoses[shapeOrder[1]])
	incidentEdgeOuter := incidentEdgeInner.Edge
	if shapes[shapeOrder[1]].CircleR != 0 {
		incidentEdgeOuter = incidentEdgeOuter.Offset(incidentEdgeInner.Normal.Vec().Mul(shapes[shapeOrder[1]].CircleR))
	}

	switch clip := clipEdge(owningEdge, incidentEdgeOuter); clip.Kind {
	case clipPasses:
		startDepth := penAxis.Extent + shapes[shapeOrder[0]].CircleR -
			incidentEdgeOuter.Start.Dot(penAxis.Axis.Vec())
		dirDotAxis := incidentEdgeOuter.Dir.Dot(penAxis.Axis.Vec())

		enterDepth := startDepth - clip.Enters*dirDotAxis
		exitDepth := startDepth - clip.Exits*dirDotAxis

		if enterDepth > 0 && exitDepth > 0 {
			enterPoint := incidentEdgeOuter.Start.Add(incidentEdgeOuter.Dir.Vec().Mul(clip.Enters))
			exitPoint := incidentEdgeOuter.Start.Add(incidentEdgeOuter.Dir.Vec().Mul(clip.Exits))
			normalWorld := poses[shapeOrder[0]].Rotation.RotateUnit(penAxis.Axis)

			return orient(Two(
				Contact{
					Normal: normalWorld,
					Offsets: [2]mathf.Vec2{
						enterPoint.Add(penAxis.Axis.Vec().Mul(enterDepth)),
						relativePoses[shapeOrder[0]].TransformPoint(enterPoint),
					},
				},
				Contact{
					Normal: normalWorld,
					Offsets: [2]mathf.Vec2{
						exitPoint.Add(penAxis.Axis.Vec().Mul(exitDepth)),
						relativePoses[shapeOrder[0]].TransformPoint(exitPoint),
					},
				},
			))
		} else if bothSimplePolygons {
			return Zero()
		}
	case clipMisses:
		if bothSimplePolygons {
			return Zero()
		}
	}

	closestPointOnOther := incidentEdgeInner.Edge.Start

	if closestPointOnOther.Dot(penAxis.Axis.Vec()) <= penAxis.Extent {
		// polygon components' edges intersect: a collision for sure.
		supportingPoint := closestPointOnOther.Sub(penAxis.Axis.Vec().Mul(shapes[shapeOrder[1]].CircleR))
		suppPointDepth := penAxis.Extent - penAxis.Axis.Dot(supportingPoint)
		normalWorld := poses[shapeOrder[0]].Rotation.RotateUnit(penAxis.Axis)
		return orient(One(Contact{
			Normal: normalWorld,
			Offsets: [2]mathf.Vec2{
				supportingPoint.Add(penAxis.Axis.Vec().Mul(suppPointDepth)),
				relativePoses[shapeOrder[0]].TransformPoint(supportingPoint),
			},
		}))
	}

	// polygon components don't overlap: one more check for the distance
	// between closest points, which may land on a circular corner.
	edgeStartToClosest := closestPointOnOther.Sub(penAxis.Edge.Start)
	tToClosestProjected := edgeStartToClosest.Dot(penAxis.Edge.Dir.Vec())
	closestOnPenEdge := penAxis.Edge.Start.Add(
		penAxis.Edge.Dir.Vec().Mul(clampF(tToClosestProjected, 0, penAxis.Edge.Length)))

	distBtwClosestPoints := closestPointOnOther.Sub(closestOnPenEdge)
	distSq := distBtwClosestPoints.Dot(distBtwClosestPoints)
	rSum := shapes[0].CircleR + shapes[1].CircleR
	if distSq >= rSum*rSum {
		return Zero()
	}

	axis := mathf.NewUnit2Unchecked(distBtwClosestPoints.Mul(1 / math.Sqrt(distSq)))
	axisWorld := poses[shapeOrder[0]].Rotation.RotateUnit(axis)

	return orient(One(Contact{
		Normal: axisWorld,
		Offsets: [2]mathf.Vec2{
			closestOnPenEdge.Add(axis.Vec().Mul(shapes[shapeOrder[0]].CircleR)),
			relativePoses[shapeOrder[0]].TransformPoint(closestPointOnOther.Sub(axis.Vec().Mul(shapes[shapeOrder[1]].CircleR))),
		},
	}))
}
