package island

import "testing"

func hasBody(bodies []int, want int) bool {
	for _, b := range bodies {
		if b == want {
			return true
		}
	}
	return false
}

func TestBuildMergesDirectlyLinkedDynamicBodies(t *testing.T) {
	// 0 and 1 touch via a contact, 2 is untouched.
	islands := Build(3, func(int) bool { return false }, []Link{{A: 0, B: 1}})
	if len(islands) != 2 {
		t.Fatalf("expected 2 islands, got %d: %+v", len(islands), islands)
	}
	var sawPair, sawSingleton bool
	for _, is := range islands {
		switch len(is.Bodies) {
		case 2:
			sawPair = true
			if !hasBody(is.Bodies, 0) || !hasBody(is.Bodies, 1) {
				t.Fatalf("pair island should contain bodies 0 and 1, got %v", is.Bodies)
			}
		case 1:
			sawSingleton = true
			if is.Bodies[0] != 2 {
				t.Fatalf("singleton island should be body 2, got %v", is.Bodies)
			}
		}
	}
	if !sawPair || !sawSingleton {
		t.Fatalf("expected one pair island and one singleton, got %+v", islands)
	}
}

func TestBuildDoesNotMergeAcrossAnAnchor(t *testing.T) {
	// body 0 is a static floor; bodies 1 and 2 each rest on it but are
	// otherwise unrelated and must stay in separate islands.
	isAnchor := func(h int) bool { return h == 0 }
	links := []Link{{A: 1, B: 0}, {A: 2, B: 0}}
	islands := Build(3, isAnchor, links)

	if len(islands) != 2 {
		t.Fatalf("expected 2 islands (one per dynamic body), got %d: %+v", len(islands), islands)
	}
	for _, is := range islands {
		if !hasBody(is.Bodies, 0) {
			t.Fatalf("every island touching the anchor should include it, got %v", is.Bodies)
		}
		if len(is.Bodies) != 2 {
			t.Fatalf("expected exactly one dynamic body plus the anchor, got %v", is.Bodies)
		}
	}
}

func TestBuildChainsThroughConstraintsAndRopes(t *testing.T) {
	// a rope links 0-1, a distance constraint links 1-2: one island.
	links := []Link{{A: 0, B: 1}, {A: 1, B: 2}}
	islands := Build(3, func(int) bool { return false }, links)

	if len(islands) != 1 {
		t.Fatalf("expected a single merged island, got %d: %+v", len(islands), islands)
	}
	for _, b := range []int{0, 1, 2} {
		if !hasBody(islands[0].Bodies, b) {
			t.Fatalf("island should contain body %d, got %v", b, islands[0].Bodies)
		}
	}
}

func TestBuildIgnoresAnchorOnlyLinks(t *testing.T) {
	// two anchors linked to each other contribute no dynamic island.
	isAnchor := func(h int) bool { return h == 0 || h == 1 }
	islands := Build(2, isAnchor, []Link{{A: 0, B: 1}})
	if len(islands) != 0 {
		t.Fatalf("expected no islands when only anchors are linked, got %+v", islands)
	}
}
