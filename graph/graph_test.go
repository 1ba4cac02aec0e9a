package graph

import "testing"

type transformC struct{ v int }
type velocityC struct{ v int }
type rigidBodyC struct{ v int }
type shapeC struct{ v int }

func TestCreateLayerGrowsEdgeMatrix(t *testing.T) {
	g := New()
	l0 := CreateLayer[transformC](g)
	l1 := CreateLayer[velocityC](g)

	if got := len(g.edgeLayers[l0.Index()]); got != 2 {
		t.Fatalf("l0 target columns = %d, want 2", got)
	}
	if got := len(g.edgeLayers[l1.Index()]); got != 2 {
		t.Fatalf("l1 target columns = %d, want 2", got)
	}

	l2 := CreateLayer[shapeC](g)
	for _, l := range []int{l0.Index(), l1.Index(), l2.Index()} {
		if got := len(g.edgeLayers[l]); got != 3 {
			t.Fatalf("layer %d target columns = %d, want 3", l, got)
		}
	}
}

func TestConnectAndGetNeighbor(t *testing.T) {
	g := New()
	trs := CreateLayer[transformC](g)
	vels := CreateLayer[velocityC](g)
	rbs := CreateLayer[rigidBodyC](g)
	shapes := CreateLayer[shapeC](g)

	everyonesShape := shapes.Push(shapeC{69}).Downgrade()

	for i := 0; i < 3; i++ {
		trNode := trs.Push(transformC{i})
		velNode := vels.Push(velocityC{i})
		rbNode := rbs.Push(rigidBodyC{i})
		shapeNode, ok := everyonesShape.Upgrade(shapes)
		if !ok {
			t.Fatalf("shared shape should still be alive")
		}

		Connect(g, velNode, trNode)
		Connect(g, rbNode, trNode)
		Connect(g, rbNode, velNode)
		ConnectOneway(g, rbNode, shapeNode)

		if n, ok := GetNeighbor(g, rbNode, shapes); !ok || n.Value().v != 69 {
			t.Fatalf("rb -> shape neighbor = %v, %v; want 69, true", n, ok)
		}
		if n, ok := GetNeighbor(g, trNode, rbs); !ok || n.Value().v != i {
			t.Fatalf("tr -> rb neighbor = %v, %v; want %d, true", n, ok, i)
		}
		if _, ok := GetNeighbor(g, trNode, shapes); ok {
			t.Fatalf("tr -> shape should have no edge")
		}

		trNode2 := trs.Push(transformC{42 + i})
		shapeNode2 := shapes.Push(shapeC{i})
		Connect(g, trNode2, shapeNode2)
		if n, ok := GetNeighbor(g, trNode2, shapes); !ok || n.Value().v != i {
			t.Fatalf("tr2 -> shape neighbor = %v, %v; want %d, true", n, ok, i)
		}
	}
}

func TestConnectOverwriteDifferentTargetPanics(t *testing.T) {
	g := New()
	a := CreateLayer[transformC](g)
	b := CreateLayer[velocityC](g)

	n1 := a.Push(transformC{1})
	v1 := b.Push(velocityC{1})
	v2 := b.Push(velocityC{2})

	ConnectOneway(g, n1, v1)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when overwriting an edge with a different target")
		}
	}()
	ConnectOneway(g, n1, v2)
}

func TestConnectOnewaySameTargetIsIdempotent(t *testing.T) {
	g := New()
	a := CreateLayer[transformC](g)
	b := CreateLayer[velocityC](g)

	n1 := a.Push(transformC{1})
	v1 := b.Push(velocityC{1})

	ConnectOneway(g, n1, v1)
	ConnectOneway(g, n1, v1)

	if n, ok := GetNeighbor(g, n1, b); !ok || n.Value().v != 1 {
		t.Fatalf("idempotent connect broke the edge: %v, %v", n, ok)
	}
}

func TestDowngradeUpgradeRoundTrips(t *testing.T) {
	g := New()
	l := CreateLayer[transformC](g)
	node := l.Push(transformC{7})
	weak := node.Downgrade()

	upgraded, ok := weak.Upgrade(l)
	if !ok {
		t.Fatalf("upgrade should succeed for a live slot")
	}
	if upgraded.Key() != node.Key() {
		t.Fatalf("upgraded key = %v, want %v", upgraded.Key(), node.Key())
	}
	if upgraded.Value() != node.Value() {
		t.Fatalf("upgraded value = %v, want %v", upgraded.Value(), node.Value())
	}
}

func TestUpgradeWrongLayerPanics(t *testing.T) {
	g := New()
	a := CreateLayer[transformC](g)
	b := CreateLayer[velocityC](g)
	_ = b

	node := a.Push(transformC{1})
	weak := node.Downgrade()

	bWrongType := CreateLayer[transformC](g)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic upgrading against the wrong layer")
		}
	}()
	weak.Upgrade(bWrongType)
}

func TestDeleteFreesSlotAndStalesKey(t *testing.T) {
	g := New()
	l := CreateLayer[transformC](g)
	node := l.Push(transformC{1})
	weak := node.Downgrade()

	if !l.Delete(node.Key()) {
		t.Fatalf("delete should report the slot was freed")
	}
	if _, ok := weak.Upgrade(l); ok {
		t.Fatalf("upgrading a freed slot should fail")
	}

	reused := l.Push(transformC{2})
	if reused.Key().Slot != node.Key().Slot {
		t.Fatalf("expected slot reuse, got slot %d want %d", reused.Key().Slot, node.Key().Slot)
	}
	if reused.Key().Generation == node.Key().Generation {
		t.Fatalf("reused slot should bump generation")
	}
}

func TestIterateReproducesInsertionOrderAndFollowsOnlyRealEdges(t *testing.T) {
	g := New()
	trs := CreateLayer[transformC](g)
	vels := CreateLayer[velocityC](g)
	rbs := CreateLayer[rigidBodyC](g)
	shapes := CreateLayer[shapeC](g)

	everyonesShape := shapes.Push(shapeC{69}).Downgrade()

	for i := 0; i < 10; i++ {
		trNode := trs.Push(transformC{i})
		velNode := vels.Push(velocityC{i})
		rbNode := rbs.Push(rigidBodyC{10 - i})
		Connect(g, rbNode, trNode)
		if i%2 == 0 {
			Connect(g, trNode, velNode)
		}
		if i%4 == 0 {
			shapeNode, _ := everyonesShape.Upgrade(shapes)
			ConnectOneway(g, rbNode, shapeNode)
		}
	}

	matchCount := 0
	fullMatchCount := 0
	it := rbs.Iter()
	for {
		rb, ok := it.Next()
		if !ok {
			break
		}
		tr, ok := GetNeighbor(g, rb, trs)
		if !ok {
			continue
		}
		vel, ok := GetNeighbor(g, tr, vels)
		if !ok {
			continue
		}
		matchCount++

		if _, ok := GetNeighbor(g, rb, shapes); ok {
			fullMatchCount++
		}

		if vel.Value().v%2 != 0 {
			t.Fatalf("followed a non-existent edge: vel = %v", vel.Value())
		}
	}
	if matchCount != 5 {
		t.Fatalf("matchCount = %d, want 5", matchCount)
	}
	if fullMatchCount != 3 {
		t.Fatalf("fullMatchCount = %d, want 3", fullMatchCount)
	}
}
