package collider

import (
	"math"

	"github.com/starframe/starframe/mathf"
)

// Kind distinguishes solid colliders, which generate contacts the
// solver resolves, from triggers, which only ever generate
// enter/stay/exit events.
type Kind int

const (
	// Solid colliders participate in contact generation and the solver.
	Solid Kind = iota
	// Trigger colliders only generate overlap events.
	Trigger
)

// Material carries the per-collider physical response parameters used
// by the contact solver. Grounded on actor/rigidbody.go's Material,
// trimmed to the fields the 2D solver actually consumes (no density —
// mass lives on the rigid body, not the collider, per spec.md §3).
type Material struct {
	Restitution     float64
	StaticFriction  float64
	DynamicFriction float64
}

// DefaultMaterial matches a reasonable rigid, slightly-grippy surface.
func DefaultMaterial() Material {
	return Material{Restitution: 0.0, StaticFriction: 0.6, DynamicFriction: 0.4}
}

// LayerMask is a bitmask of collision layers. Two colliders interact
// only when each one's mask has the other's layer bit set.
type LayerMask uint32

// AllLayers collides with every layer.
const AllLayers LayerMask = math.MaxUint32

// Collider is a Polygon inflated by CircleR, together with the
// metadata the narrow-phase, events and solver need: its Material, the
// Kind of interaction it takes part in, and the LayerMask filtering
// which other colliders it can touch.
type Collider struct {
	Polygon  Polygon
	CircleR  float64
	Material Material
	Kind     Kind
	Layer    LayerMask
	Collides LayerMask
}

// NewCircle builds a solid circular collider of radius r.
func NewCircle(r float64) Collider {
	return newCollider(NewPoint(), r)
}

// NewCapsule builds a solid capsule of total length and radius r.
func NewCapsule(length, r float64) Collider {
	return newCollider(NewLineSegment(length/2), r)
}

// NewRect builds a solid rectangle of the given full width and height.
func NewRect(width, height float64) Collider {
	return newCollider(NewRect2(width, height), 0)
}

// NewRoundedRect builds a solid rectangle of the given full width and
// height, with its corners rounded by radius r.
func NewRoundedRect(width, height, r float64) Collider {
	return newCollider(NewRect2(width, height), r)
}

// NewRect2 is the Polygon-level rectangle constructor taking full
// width/height, matching Collider's and the rest of the public API's
// full-extent convention (half-extents are an implementation detail of
// Polygon).
func NewRect2(width, height float64) Polygon {
	return NewRectPolygon(width/2, height/2)
}

// NewTriangleCollider builds a solid triangle from three local-space
// vertices, optionally rounded by radius r.
func NewTriangleCollider(a, b, c mathf.Vec2, r float64) Collider {
	return newCollider(NewTriangle(a, b, c), r)
}

// NewHexagonCollider builds a solid regular hexagon of circumradius,
// optionally rounded by radius r.
func NewHexagonCollider(circumradius, r float64) Collider {
	return newCollider(NewRegularHexagon(circumradius), r)
}

func newCollider(poly Polygon, r float64) Collider {
	return Collider{
		Polygon:  poly,
		CircleR:  r,
		Material: DefaultMaterial(),
		Kind:     Solid,
		Layer:    1,
		Collides: AllLayers,
	}
}

// WithMaterial returns a copy of c with its material replaced.
func (c Collider) WithMaterial(m Material) Collider {
	c.Material = m
	return c
}

// WithKind returns a copy of c marked as a trigger or solid collider.
func (c Collider) WithKind(k Kind) Collider {
	c.Kind = k
	return c
}

// WithLayers returns a copy of c with its own layer and the mask of
// layers it collides with replaced.
func (c Collider) WithLayers(own, collidesWith LayerMask) Collider {
	c.Layer = own
	c.Collides = collidesWith
	return c
}

// CanCollideWith reports whether a and b are allowed to interact under
// their layer masks.
func CanCollideWith(a, b Collider) bool {
	return a.Collides&b.Layer != 0 && b.Collides&a.Layer != 0
}

// WorldAABB returns the tight axis-aligned bound of c posed by pose,
// computed by support along the world x and y axes (each mapped into
// the collider's local frame first) rather than by rotating a
// precomputed local box, so it stays exact for rotated bodies. Used by
// the physics façade to populate the broad-phase grid each tick.
func WorldAABB(pose mathf.Pose, c Collider) (min, max mathf.Vec2) {
	localX := pose.VecToLocal(mathf.UnitX2())
	localY := pose.VecToLocal(mathf.UnitY2())

	maxX := ProjectedExtent(c.Polygon, localX) + c.CircleR
	minX := -ProjectedExtent(c.Polygon, localX.Mul(-1)) - c.CircleR
	maxY := ProjectedExtent(c.Polygon, localY) + c.CircleR
	minY := -ProjectedExtent(c.Polygon, localY.Mul(-1)) - c.CircleR

	t := pose.Translation
	return mathf.Vec2{t[0] + minX, t[1] + minY}, mathf.Vec2{t[0] + maxX, t[1] + maxY}
}

// Info is the mass-generation data computed from a collider's shape:
// its area and second moment of area about its own local origin, used
// by the rigid body to derive mass and moment of inertia from a
// material density.
type Info struct {
	Area               float64
	SecondMomentOfArea float64
}

// ComputeInfo derives Info for the sum shape (polygon inflated by
// circle_r): area and second moment of the inner polygon plus a
// circle/rounding correction. For the common Point (plain circle) and
// Rect (plain or rounded) cases closed forms are used; Triangle and
// Hexagon approximate the rounding correction by treating the inflation
// as negligible against the polygon's own moment, which holds for the
// small rounding radii these shapes are used with.
func ComputeInfo(c Collider) Info {
	switch c.Polygon.Kind() {
	case KindPoint:
		r := c.CircleR
		area := math.Pi * r * r
		// second moment of a disk about its center: (1/2) m r^2 with
		// unit areal density, i.e. (pi/2) r^4.
		return Info{Area: area, SecondMomentOfArea: 0.5 * math.Pi * r * r * r * r}

	case KindLineSegment:
		hl := c.Polygon.halfLength
		r := c.CircleR
		rectArea := 2 * hl * 2 * r
		capArea := math.Pi * r * r
		area := rectArea + capArea
		// rectangle moment about its own centroid plus two half-disk
		// moments about the capsule's centroid (parallel axis theorem).
		rectMoment := rectArea * ((2*hl)*(2*hl) + (2*r)*(2*r)) / 12
		diskMoment := 0.5 * math.Pi * r * r * r * r
		offset := hl + (4*r)/(3*math.Pi)
		capMoment := diskMoment + capArea*offset*offset
		return Info{Area: area, SecondMomentOfArea: rectMoment + capMoment}

	case KindRect:
		hw, hh := c.Polygon.halfWidth, c.Polygon.halfHeight
		r := c.CircleR
		w, h := 2*hw, 2*hh
		area := w*h + 2*r*(w+h) + math.Pi*r*r
		innerMoment := area * (w*w + h*h) / 12
		return Info{Area: area, SecondMomentOfArea: innerMoment}

	default:
		area, moment := polygonAreaAndMoment(c.Polygon.verts)
		return Info{Area: area, SecondMomentOfArea: moment}
	}
}

// polygonAreaAndMoment computes the area and second moment of area
// (about the local origin) of a simple polygon via the shoelace /
// second-moment formulas for a triangle fan from the origin.
func polygonAreaAndMoment(verts []mathf.Vec2) (area, moment float64) {
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		cross := mathf.Cross2(a, b)
		area += cross
		moment += cross * (a.Dot(a) + a.Dot(b) + b.Dot(b))
	}
	area /= 2
	moment /= 12
	return math.Abs(area), math.Abs(moment)
}
