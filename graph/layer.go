package graph

// slot holds one component plus the bookkeeping needed for generational
// deletion: alive marks whether the slot currently holds live data, and
// generation is bumped every time the slot is freed so stale Keys can be
// detected without scanning.
type slot[T any] struct {
	value      T
	generation uint32
	alive      bool
}

// Layer is an append-capable, delete-capable typed store of one
// component kind, addressed by Key. It corresponds to the source's
// Layer<T>, generalized with a free list so Delete doesn't leave
// permanent holes.
type Layer[T any] struct {
	index    int
	slots    []slot[T]
	freeList []int
	len      int
}

// newLayer is called only by CreateLayer, which owns assigning the
// dense layer index.
func newLayer[T any](index int) *Layer[T] {
	return &Layer[T]{index: index}
}

// Index returns this layer's stable id, matching the outer dimension of
// the owning Graph's edge matrix.
func (l *Layer[T]) Index() int { return l.index }

// Len returns the number of live components in the layer.
func (l *Layer[T]) Len() int { return l.len }

// Push inserts a component, reusing a freed slot if one is available,
// and returns a NodeRef to it. Mirrors Layer::push in the source.
func (l *Layer[T]) Push(value T) NodeRef[T] {
	l.len++
	if n := len(l.freeList); n > 0 {
		idx := l.freeList[n-1]
		l.freeList = l.freeList[:n-1]
		s := &l.slots[idx]
		s.value = value
		s.alive = true
		key := Key{Layer: l.index, Slot: idx, Generation: s.generation}
		return NodeRef[T]{item: &s.value, key: key}
	}

	idx := len(l.slots)
	l.slots = append(l.slots, slot[T]{value: value, alive: true})
	s := &l.slots[idx]
	key := Key{Layer: l.index, Slot: idx, Generation: 0}
	return NodeRef[T]{item: &s.value, key: key}
}

// Get resolves a Key to a NodeRef, failing if the slot was freed or
// belongs to a different layer (or never existed).
func (l *Layer[T]) Get(key Key) (NodeRef[T], bool) {
	if key.Layer != l.index || key.Slot < 0 || key.Slot >= len(l.slots) {
		return NodeRef[T]{}, false
	}
	s := &l.slots[key.Slot]
	if !s.alive || s.generation != key.Generation {
		return NodeRef[T]{}, false
	}
	return NodeRef[T]{item: &s.value, key: key}, true
}

// GetMut is like Get but documents intent to mutate through the
// returned pointer; since NodeRef already holds a *T this is the same
// accessor, kept distinct to mirror the source's get/get_mut split in
// spec.md §6's external interface list.
func (l *Layer[T]) GetMut(key Key) (NodeRef[T], bool) {
	return l.Get(key)
}

// Delete frees a slot, bumping its generation so existing Keys/WeakNodeRefs
// become stale. Returns whether a live slot was actually freed.
func (l *Layer[T]) Delete(key Key) bool {
	if key.Layer != l.index || key.Slot < 0 || key.Slot >= len(l.slots) {
		return false
	}
	s := &l.slots[key.Slot]
	if !s.alive || s.generation != key.Generation {
		return false
	}
	var zero T
	s.value = zero
	s.alive = false
	s.generation++
	l.freeList = append(l.freeList, key.Slot)
	l.len--
	return true
}

// Iter returns the live components in slot order. When no deletions have
// happened this reproduces insertion order exactly, per spec.md §8's
// round-trip property.
func (l *Layer[T]) Iter() *LayerIter[T] {
	return &LayerIter[T]{layer: l, idx: 0}
}

// LayerIter walks the live slots of a Layer.
type LayerIter[T any] struct {
	layer *Layer[T]
	idx   int
}

// Next advances the iterator, returning false once exhausted.
func (it *LayerIter[T]) Next() (NodeRef[T], bool) {
	for it.idx < len(it.layer.slots) {
		i := it.idx
		it.idx++
		s := &it.layer.slots[i]
		if s.alive {
			key := Key{Layer: it.layer.index, Slot: i, Generation: s.generation}
			return NodeRef[T]{item: &s.value, key: key}, true
		}
	}
	return NodeRef[T]{}, false
}
