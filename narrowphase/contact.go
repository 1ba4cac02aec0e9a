// Package narrowphase generates 0-2 contact points between two rounded
// convex polygons (see package collider), replacing the teacher's
// general-purpose GJK/EPA pipeline with the dedicated SAT + edge-clip
// algorithm the 2D sum-shape model affords. Grounded on
// original_source/src/physics/collision/shape_shape.rs, whose structure
// this package follows closely: circle/circle and circle/any special
// cases, falling back to a generic any/any SAT-plus-clip path.
package narrowphase

import "github.com/starframe/starframe/mathf"

// Contact is one point of intersection between two colliders.
type Contact struct {
	// Normal points away from the first collider, in world space.
	Normal mathf.Unit2
	// Offsets give the contact point in each collider's own local
	// space: Offsets[0] relative to the first collider, Offsets[1]
	// relative to the second.
	Offsets [2]mathf.Vec2
}

// ContactResult holds the 0, 1 or 2 contacts a single narrow-phase test
// can produce. A fixed two-element array avoids allocating for the
// common case.
type ContactResult struct {
	count int
	pts   [2]Contact
}

// Zero is the empty contact result (no intersection).
func Zero() ContactResult { return ContactResult{} }

// One wraps a single contact.
func One(c Contact) ContactResult { return ContactResult{count: 1, pts: [2]Contact{c}} }

// Two wraps a pair of contacts.
func Two(a, b Contact) ContactResult { return ContactResult{count: 2, pts: [2]Contact{a, b}} }

// IsZero reports whether the result has no contacts.
func (r ContactResult) IsZero() bool { return r.count == 0 }

// Len returns how many contacts the result holds (0, 1 or 2).
func (r ContactResult) Len() int { return r.count }

// At returns the i'th contact; panics if i >= Len().
func (r ContactResult) At(i int) Contact {
	if i < 0 || i >= r.count {
		panic("narrowphase: contact index out of range")
	}
	return r.pts[i]
}

// Contacts returns the contacts as a slice for range-based iteration.
func (r ContactResult) Contacts() []Contact {
	return r.pts[:r.count]
}

// mapContacts applies f to every contact in the result, the Go
// equivalent of ContactResult::map.
func (r ContactResult) mapContacts(f func(Contact) Contact) ContactResult {
	out := r
	for i := 0; i < r.count; i++ {
		out.pts[i] = f(r.pts[i])
	}
	return out
}

// flipContacts reorients a result computed as (second, first) back to
// (first, second): negate the normal and swap each contact's offsets.
func flipContacts(r ContactResult) ContactResult {
	return r.mapContacts(func(c Contact) Contact {
		return Contact{
			Normal:  c.Normal.Neg(),
			Offsets: [2]mathf.Vec2{c.Offsets[1], c.Offsets[0]},
		}
	})
}
