package island

import "sort"

// Link is an edge contributed by one contact, constraint, or rope
// segment produced during a tick. A and B are body handles (indices
// into the body arena).
type Link struct {
	A, B int
}

// Island is a maximal connected subgraph of bodies linked by contacts,
// constraints, or ropes within one tick. Islands carry no state between
// ticks; they exist only to partition the solver's work and let
// unrelated groups of bodies settle or sleep independently.
type Island struct {
	Bodies []int
}

// Build groups numBodies bodies into islands given the links collected
// during broad/narrow-phase and constraint gathering this tick.
//
// isAnchor reports whether a body handle is kinematic or static. Anchor
// bodies are never added to the union-find, so they never merge the
// dynamic islands that touch them into one: a single static floor touched by a hundred
// unrelated stacks of boxes must not collapse those stacks into a
// single island. Anchors are attached to every island that touches
// them, so the same anchor body handle can appear in more than one
// Island's Bodies slice.
//
// A dynamic body with no links of its own still gets a singleton
// island, since the solver still needs to integrate it.
func Build(numBodies int, isAnchor func(handle int) bool, links []Link) []Island {
	uf := newUnionFind[int]()
	isDynamic := make([]bool, numBodies)
	for i := 0; i < numBodies; i++ {
		if !isAnchor(i) {
			isDynamic[i] = true
			uf.add(i)
		}
	}

	var anchorLinks []Link
	for _, l := range links {
		aDyn, bDyn := isDynamic[l.A], isDynamic[l.B]
		switch {
		case aDyn && bDyn:
			uf.union(l.A, l.B)
		case aDyn && !bDyn:
			anchorLinks = append(anchorLinks, Link{A: l.A, B: l.B})
		case bDyn && !aDyn:
			anchorLinks = append(anchorLinks, Link{A: l.B, B: l.A})
		}
	}

	membersByRoot := make(map[int][]int)
	for i := 0; i < numBodies; i++ {
		if isDynamic[i] {
			root := uf.find(i)
			membersByRoot[root] = append(membersByRoot[root], i)
		}
	}

	anchorsByRoot := make(map[int]map[int]bool)
	for _, l := range anchorLinks {
		root := uf.find(l.A)
		set := anchorsByRoot[root]
		if set == nil {
			set = make(map[int]bool)
			anchorsByRoot[root] = set
		}
		set[l.B] = true
	}

	roots := make([]int, 0, len(membersByRoot))
	for root := range membersByRoot {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	islands := make([]Island, 0, len(roots))
	for _, root := range roots {
		members := append([]int(nil), membersByRoot[root]...)
		sort.Ints(members)
		anchors := make([]int, 0, len(anchorsByRoot[root]))
		for a := range anchorsByRoot[root] {
			anchors = append(anchors, a)
		}
		sort.Ints(anchors)
		members = append(members, anchors...)
		islands = append(islands, Island{Bodies: members})
	}
	return islands
}
