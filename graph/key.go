// Package graph implements the component graph: typed layers of
// components plus a sparse edge matrix connecting nodes across layers.
//
// Grounded on original_source/src/core/graph.rs, translated from Rust
// generics + borrow lifetimes to Go generics + a generational Key. The
// source's NodeRef<'a, T> couples a borrow with (layer_idx, item_idx);
// here a Key is the borrow-free (layer, slot, generation) value, and a
// NodeRef[T] is the short-lived accessor layer.Get(key) hands back.
package graph

// Key identifies a component slot in a layer. Unlike the source's plain
// item_idx, Key carries a generation counter so that a slot freed by
// Delete and later reused is distinguishable from the stale key a caller
// might still be holding (see spec's deletion-semantics design note).
type Key struct {
	Layer      int
	Slot       int
	Generation uint32
}
