// Package collider defines the rounded-polygon ("sum shape") collider
// model: a closed set of convex polygon variants inflated by a circular
// radius, plus the material, layer mask and solid/trigger kind attached
// to each collider.
//
// Grounded on original_source/src/physics/collision/shape_shape.rs and
// query.rs's usage of ColliderPolygon (closest_boundary_point,
// separating_axes, supporting_edge, projected_extent,
// half_angle_between_edges_tan, edge_count/get_edge), and on
// feather/actor/shape.go's per-variant dispatch style.
package collider

import (
	"math"

	"github.com/starframe/starframe/mathf"
)

// PolygonKind tags which of the closed set of polygon variants a
// Polygon holds. Spec.md §9 calls these variants closed, so a tagged
// union (kind + parameters) fits better than a Go interface hierarchy.
type PolygonKind int

const (
	// KindPoint is a degenerate polygon: a single point. Summed with a
	// circle radius it becomes a plain circle.
	KindPoint PolygonKind = iota
	// KindLineSegment is a capsule core: a segment of half-length HalfLength.
	KindLineSegment
	// KindRect is an axis-aligned (in local space) rectangle.
	KindRect
	// KindTriangle is an arbitrary triangle given by three local-space vertices.
	KindTriangle
	// KindHexagon is an arbitrary (assumed regular) hexagon given by six vertices.
	KindHexagon
)

// Polygon is the convex polygon component of a rounded-polygon collider.
type Polygon struct {
	kind PolygonKind

	// HalfLength is used by KindLineSegment.
	halfLength float64
	// HalfWidth/HalfHeight are used by KindRect.
	halfWidth, halfHeight float64
	// verts holds local-space vertices in CCW order for KindTriangle and
	// KindHexagon.
	verts []mathf.Vec2
}

// Kind returns the polygon's variant tag.
func (p Polygon) Kind() PolygonKind { return p.kind }

// NewPoint builds a degenerate point polygon.
func NewPoint() Polygon {
	return Polygon{kind: KindPoint}
}

// NewLineSegment builds a capsule core of half-length hl along the local x axis.
func NewLineSegment(hl float64) Polygon {
	return Polygon{kind: KindLineSegment, halfLength: hl}
}

// NewRectPolygon builds an axis-aligned rectangle of half-width hw and half-height hh.
func NewRectPolygon(hw, hh float64) Polygon {
	return Polygon{kind: KindRect, halfWidth: hw, halfHeight: hh}
}

// NewTriangle builds a triangle from three local-space vertices. Vertices
// must be given in CCW order.
func NewTriangle(a, b, c mathf.Vec2) Polygon {
	return Polygon{kind: KindTriangle, verts: []mathf.Vec2{a, b, c}}
}

// NewRegularHexagon builds a regular hexagon of circumradius r centered
// at the local origin, with a vertex pointing along +x (flat sides
// facing ±y).
func NewRegularHexagon(r float64) Polygon {
	verts := make([]mathf.Vec2, 6)
	for i := 0; i < 6; i++ {
		angle := float64(i) * math.Pi / 3.0
		verts[i] = mathf.Vec2{r * math.Cos(angle), r * math.Sin(angle)}
	}
	return Polygon{kind: KindHexagon, verts: verts}
}

// HalfExtent returns (hw, hh) for KindRect and (hl, 0) for KindLineSegment;
// undefined for other kinds.
func (p Polygon) HalfExtent() (float64, float64) {
	switch p.kind {
	case KindRect:
		return p.halfWidth, p.halfHeight
	case KindLineSegment:
		return p.halfLength, 0
	default:
		return 0, 0
	}
}

// Vertices returns the local-space vertex list for KindTriangle/KindHexagon.
func (p Polygon) Vertices() []mathf.Vec2 { return p.verts }

// IsRotationallySymmetrical reports whether the polygon is centrally
// symmetric (180-degree rotation maps it onto itself), which lets SAT
// mirror a single separating axis instead of enumerating both sides of
// the shape. Point, LineSegment, Rect and the regular Hexagon all are;
// a Triangle in general is not.
func (p Polygon) IsRotationallySymmetrical() bool {
	switch p.kind {
	case KindPoint, KindLineSegment, KindRect, KindHexagon:
		return true
	default:
		return false
	}
}

// ClosestBoundaryPoint returns the point on the polygon's boundary
// closest to p (in the polygon's local space) plus whether p lies
// inside the polygon. Used by circle/any narrow-phase tests and by
// point_collider for Triangle/Hexagon.
func ClosestBoundaryPoint(poly Polygon, p mathf.Vec2) (pt mathf.Vec2, isInterior bool) {
	switch poly.kind {
	case KindPoint:
		return mathf.Zero2(), p == mathf.Zero2()
	case KindLineSegment:
		x := clamp(p[0], -poly.halfLength, poly.halfLength)
		if math.Abs(p[1]) < 1e-12 && x == p[0] {
			return mathf.Vec2{x, 0}, true
		}
		return mathf.Vec2{x, 0}, false
	case KindRect:
		return rectClosestBoundaryPoint(poly.halfWidth, poly.halfHeight, p)
	default:
		return convexClosestBoundaryPoint(poly.verts, p)
	}
}

func rectClosestBoundaryPoint(hw, hh float64, p mathf.Vec2) (mathf.Vec2, bool) {
	insideX := p[0] >= -hw && p[0] <= hw
	insideY := p[1] >= -hh && p[1] <= hh
	if insideX && insideY {
		// interior: clamp to whichever face is closer
		dx := hw - math.Abs(p[0])
		dy := hh - math.Abs(p[1])
		if dx < dy {
			return mathf.Vec2{math.Copysign(hw, p[0]), p[1]}, true
		}
		return mathf.Vec2{p[0], math.Copysign(hh, p[1])}, true
	}
	cx := clamp(p[0], -hw, hw)
	cy := clamp(p[1], -hh, hh)
	return mathf.Vec2{cx, cy}, false
}

func convexClosestBoundaryPoint(verts []mathf.Vec2, p mathf.Vec2) (mathf.Vec2, bool) {
	n := len(verts)
	inside := true
	bestDist := math.MaxFloat64
	var bestPt mathf.Vec2

	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		edge := b.Sub(a)
		normal := mathf.RightNormal(edge).Mul(1 / edge.Len())
		toP := p.Sub(a)
		dist := toP.Dot(normal)
		if dist > 0 {
			inside = false
		}
		t := clamp(toP.Dot(edge)/edge.Dot(edge), 0, 1)
		closest := a.Add(edge.Mul(t))
		d := closest.Sub(p).Len()
		if d < bestDist {
			bestDist = d
			bestPt = closest
		}
	}
	return bestPt, inside
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Edge is a directed line segment with a unit direction, the Go form of
// shape_shape.rs's private Edge type.
type Edge struct {
	Start  mathf.Vec2
	Dir    mathf.Unit2
	Length float64
}

// Transformed maps an edge by a pose.
func (e Edge) Transformed(p mathf.Pose) Edge {
	return Edge{
		Start:  p.TransformPoint(e.Start),
		Dir:    mathf.NewUnit2Unchecked(p.TransformVec(e.Dir.Vec())),
		Length: e.Length,
	}
}

// Mirrored reflects the edge through the local origin.
func (e Edge) Mirrored() Edge {
	return Edge{
		Start:  e.Start.Mul(-1),
		Dir:    e.Dir.Neg(),
		Length: e.Length,
	}
}

// Offset translates the edge's start point by amount.
func (e Edge) Offset(amount mathf.Vec2) Edge {
	return Edge{Start: e.Start.Add(amount), Dir: e.Dir, Length: e.Length}
}

// SupportingEdge is the polygon edge most facing a query direction,
// along with its outward normal (used to expand the edge to the sum
// shape's outer boundary).
type SupportingEdge struct {
	Edge   Edge
	Normal mathf.Unit2
}

// Transformed maps a supporting edge by a pose.
func (s SupportingEdge) Transformed(p mathf.Pose) SupportingEdge {
	return SupportingEdge{
		Edge:   s.Edge.Transformed(p),
		Normal: mathf.NewUnit2Unchecked(p.TransformVec(s.Normal.Vec())),
	}
}

// SupportingEdge returns the polygon edge whose normal most closely
// faces dir. Only meaningful for Rect/Triangle/Hexagon; LineSegment and
// Point have their own special-cased narrow-phase and query paths and
// never call this.
func SupportingEdgeOf(poly Polygon, dir mathf.Vec2) (SupportingEdge, bool) {
	switch poly.kind {
	case KindRect:
		return rectSupportingEdge(poly.halfWidth, poly.halfHeight, dir), true
	case KindTriangle, KindHexagon:
		return convexSupportingEdge(poly.verts, dir), true
	default:
		return SupportingEdge{}, false
	}
}

func rectSupportingEdge(hw, hh float64, dir mathf.Vec2) SupportingEdge {
	// Pick whichever axis-aligned face's outward normal is closer to dir.
	if math.Abs(dir[0]) >= math.Abs(dir[1]) {
		sx := math.Copysign(1, dir[0])
		return SupportingEdge{
			Edge: Edge{
				Start:  mathf.Vec2{sx * hw, -hh * sx},
				Dir:    mathf.NewUnit2Unchecked(mathf.Vec2{0, sx}),
				Length: 2 * hh,
			},
			Normal: mathf.NewUnit2Unchecked(mathf.Vec2{sx, 0}),
		}
	}
	sy := math.Copysign(1, dir[1])
	return SupportingEdge{
		Edge: Edge{
			Start:  mathf.Vec2{hw * sy, sy * hh},
			Dir:    mathf.NewUnit2Unchecked(mathf.Vec2{-sy, 0}),
			Length: 2 * hw,
		},
		Normal: mathf.NewUnit2Unchecked(mathf.Vec2{0, sy}),
	}
}

func convexSupportingEdge(verts []mathf.Vec2, dir mathf.Vec2) SupportingEdge {
	n := len(verts)
	best := -1
	bestDot := -math.MaxFloat64
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		edge := b.Sub(a)
		normal := mathf.RightNormal(edge).Mul(1 / edge.Len())
		d := normal.Dot(dir)
		if d > bestDot {
			bestDot = d
			best = i
		}
	}
	a := verts[best]
	b := verts[(best+1)%n]
	edge := b.Sub(a)
	l := edge.Len()
	normal := mathf.RightNormal(edge).Mul(1 / l)
	return SupportingEdge{
		Edge:   Edge{Start: a, Dir: mathf.NewUnit2Normalize(edge), Length: l},
		Normal: mathf.NewUnit2Unchecked(normal),
	}
}

// SeparatingAxis is a candidate SAT axis plus the information needed to
// reconstruct the edge it came from and to mirror it when the owning
// polygon is centrally symmetric.
type SeparatingAxis struct {
	Axis        mathf.Unit2
	Extent      float64
	Edge        Edge
	Symmetrical bool
}

// Mirrored reflects the axis through the local origin. Only valid when
// Symmetrical is true.
func (a SeparatingAxis) Mirrored() SeparatingAxis {
	if !a.Symmetrical {
		panic("collider: only symmetrical axes make sense to mirror")
	}
	return SeparatingAxis{
		Axis:        a.Axis.Neg(),
		Extent:      a.Extent,
		Edge:        a.Edge.Mirrored(),
		Symmetrical: a.Symmetrical,
	}
}

// SeparatingAxes returns the candidate SAT axes for the polygon's own
// faces. Point has none (it never owns an axis in any_any); LineSegment
// contributes its single perpendicular axis.
func SeparatingAxes(poly Polygon) []SeparatingAxis {
	switch poly.kind {
	case KindPoint:
		return nil
	case KindLineSegment:
		return []SeparatingAxis{{
			Axis:   mathf.NewUnit2Unchecked(mathf.Vec2{0, 1}),
			Extent: 0,
			Edge: Edge{
				Start:  mathf.Vec2{-poly.halfLength, 0},
				Dir:    mathf.NewUnit2Unchecked(mathf.Vec2{1, 0}),
				Length: 2 * poly.halfLength,
			},
			Symmetrical: true,
		}}
	case KindRect:
		return []SeparatingAxis{
			{
				Axis:   mathf.NewUnit2Unchecked(mathf.Vec2{1, 0}),
				Extent: poly.halfWidth,
				Edge: Edge{
					Start:  mathf.Vec2{poly.halfWidth, -poly.halfHeight},
					Dir:    mathf.NewUnit2Unchecked(mathf.Vec2{0, 1}),
					Length: 2 * poly.halfHeight,
				},
				Symmetrical: true,
			},
			{
				Axis:   mathf.NewUnit2Unchecked(mathf.Vec2{0, 1}),
				Extent: poly.halfHeight,
				Edge: Edge{
					Start:  mathf.Vec2{-poly.halfWidth, poly.halfHeight},
					Dir:    mathf.NewUnit2Unchecked(mathf.Vec2{1, 0}),
					Length: 2 * poly.halfWidth,
				},
				Symmetrical: true,
			},
		}
	default:
		return convexSeparatingAxes(poly.verts, poly.IsRotationallySymmetrical())
	}
}

func convexSeparatingAxes(verts []mathf.Vec2, symmetrical bool) []SeparatingAxis {
	n := len(verts)
	limit := n
	if symmetrical {
		// opposite edges are parallel, so only the first half produce
		// distinct axes; the rest are generated by mirroring.
		limit = n / 2
	}
	axes := make([]SeparatingAxis, 0, limit)
	for i := 0; i < limit; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		edge := b.Sub(a)
		l := edge.Len()
		normal := mathf.RightNormal(edge).Mul(1 / l)
		axes = append(axes, SeparatingAxis{
			Axis:        mathf.NewUnit2Unchecked(normal),
			Extent:      normal.Dot(a),
			Edge:        Edge{Start: a, Dir: mathf.NewUnit2Normalize(edge), Length: l},
			Symmetrical: symmetrical,
		})
	}
	return axes
}

// ProjectedExtent is the polygon's support value along axis: the
// maximum signed distance any vertex reaches along axis from the
// polygon's local origin.
func ProjectedExtent(poly Polygon, axis mathf.Vec2) float64 {
	switch poly.kind {
	case KindPoint:
		return 0
	case KindLineSegment:
		return poly.halfLength * math.Abs(axis[0])
	case KindRect:
		return poly.halfWidth*math.Abs(axis[0]) + poly.halfHeight*math.Abs(axis[1])
	default:
		best := -math.MaxFloat64
		for _, v := range poly.verts {
			if d := v.Dot(axis); d > best {
				best = d
			}
		}
		return best
	}
}

// EdgeCount returns the number of polygon edges usable by the generic
// ray-query loop. Point and LineSegment are handled by their own
// special cases and report zero.
func EdgeCount(poly Polygon) int {
	switch poly.kind {
	case KindRect:
		return 4
	case KindTriangle, KindHexagon:
		return len(poly.verts)
	default:
		return 0
	}
}

// GetEdge returns the supporting-edge view of polygon edge i, with its
// normal pointing outward, for the generic ray-query loop.
func GetEdge(poly Polygon, i int) SupportingEdge {
	switch poly.kind {
	case KindRect:
		corners := []mathf.Vec2{
			{poly.halfWidth, -poly.halfHeight},
			{poly.halfWidth, poly.halfHeight},
			{-poly.halfWidth, poly.halfHeight},
			{-poly.halfWidth, -poly.halfHeight},
		}
		a := corners[i]
		b := corners[(i+1)%4]
		edge := b.Sub(a)
		l := edge.Len()
		normal := mathf.RightNormal(edge).Mul(1 / l)
		return SupportingEdge{
			Edge:   Edge{Start: a, Dir: mathf.NewUnit2Normalize(edge), Length: l},
			Normal: mathf.NewUnit2Unchecked(normal),
		}
	default:
		n := len(poly.verts)
		a := poly.verts[i]
		b := poly.verts[(i+1)%n]
		edge := b.Sub(a)
		l := edge.Len()
		normal := mathf.RightNormal(edge).Mul(1 / l)
		return SupportingEdge{
			Edge:   Edge{Start: a, Dir: mathf.NewUnit2Normalize(edge), Length: l},
			Normal: mathf.NewUnit2Unchecked(normal),
		}
	}
}

// HalfAngleBetweenEdgesTan returns tan(pi/2 - pi/n) for a regular
// n-sided polygon, the tangent of half the interior angle at each
// vertex, used to extend a ray-hit edge's effective length when
// rounding its corners by circle_r (see query.rs's ray_collider:
// `circle_r / angle_tan`), so the offset edges reach the point where
// neighbouring offset edges meet.
func HalfAngleBetweenEdgesTan(poly Polygon) float64 {
	switch poly.kind {
	case KindRect:
		return math.Tan(math.Pi / 4)
	case KindHexagon:
		return math.Tan(math.Pi / 3)
	case KindTriangle:
		return math.Tan(math.Pi / 6)
	default:
		return 1
	}
}
