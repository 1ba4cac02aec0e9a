package graph

// NodeRef is a borrowed accessor to a component: a pointer into its
// layer's storage plus the Key that produced it. Mirrors the source's
// NodeRef<'a, T>, minus the lifetime (Go has no borrow checker, so
// callers are trusted not to hold a NodeRef past the layer's next
// mutation, same discipline the source enforces at compile time).
type NodeRef[T any] struct {
	item *T
	key  Key
}

// Value returns the referenced component. Takes the place of the
// source's Deref impl, since Go has no operator overloading.
func (n NodeRef[T]) Value() T {
	return *n.item
}

// Key returns the (layer, slot, generation) identity of this node.
func (n NodeRef[T]) Key() Key {
	return n.key
}

// Set overwrites the referenced component in place.
func (n NodeRef[T]) Set(value T) {
	*n.item = value
}

// Downgrade drops the borrow, producing a freely copyable WeakNodeRef
// that can be stored in other components.
func (n NodeRef[T]) Downgrade() WeakNodeRef[T] {
	return WeakNodeRef[T]{key: n.key}
}

// WeakNodeRef is a borrow-free token referencing a component, typed so
// that Upgrade can only be called against the matching Layer[T].
// Mirrors the source's WeakNodeRef<T>, whose doc comment calls out the
// "deleted nodes break weak refs" problem this type's generational Key
// resolves (see spec.md §9).
type WeakNodeRef[T any] struct {
	key Key
}

// Key returns the underlying Key.
func (w WeakNodeRef[T]) Key() Key {
	return w.key
}

// Upgrade resolves the weak reference against its layer. Panics if the
// layer doesn't match the one this reference was created from — the
// source's upgrade asserts layer.index == self.layer_idx for the same
// reason. A stale-but-matching-layer key (freed and not yet reused, or
// reused by a different generation) instead returns ok=false, since that
// is the recoverable "dead entity" case spec.md §7 describes, not misuse.
func (w WeakNodeRef[T]) Upgrade(layer *Layer[T]) (NodeRef[T], bool) {
	if w.key.Layer != layer.index {
		panic("graph: WeakNodeRef upgraded against the wrong layer")
	}
	return layer.Get(w.key)
}
