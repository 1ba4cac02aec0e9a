package starframe

// Handle is a generational index into one of Physics's arenas: a slot
// together with the generation counter stamped on it when filled, so a
// handle into a freed-and-reused slot is distinguishable from a live
// one. Mirrors graph.Key's (slot, generation) pair, kept as its own
// type here because these arenas aren't graph layers — Physics owns
// bodies/colliders/constraints/ropes directly, per spec.md §4.7.
type Handle struct {
	slot       int
	generation uint32
}

// BodyKey, ColliderKey, ConstraintKey and RopeKey are distinct handle
// types so a key minted from one arena can't be used, by a type error
// the compiler catches, to index a different one.
type BodyKey struct{ h Handle }

type ColliderKey struct{ h Handle }

type ConstraintKey struct{ h Handle }

type RopeKey struct{ h Handle }
