package graph

// Graph holds only the edge matrix: a three-dimensional sparse map
// edges[from_layer][to_layer][from_slot] -> *Key, exactly the shape
// the source's edge_layers field describes. Layer contents live in the
// Layer[T] values themselves, never in the Graph, because edges are by
// index only — no type erasure is needed across layers.
type Graph struct {
	edgeLayers [][][]*Key
}

// New creates an empty graph with no layers.
func New() *Graph {
	return &Graph{}
}

// CreateLayer registers a new typed layer with the graph and returns it.
// Must be a free function, not a method, because it introduces a type
// parameter a Graph method cannot carry. Mirrors Graph::create_layer:
// every existing layer gains one more (empty) target column, and the
// new layer is seeded with a target column for every layer including
// itself.
func CreateLayer[T any](g *Graph) *Layer[T] {
	nextIdx := len(g.edgeLayers)

	for i := range g.edgeLayers {
		g.edgeLayers[i] = append(g.edgeLayers[i], nil)
	}
	targets := make([][]*Key, nextIdx+1)
	g.edgeLayers = append(g.edgeLayers, targets)

	return newLayer[T](nextIdx)
}

// ConnectOneway writes a single directed edge from start to end. Writing
// onto an edge already pointing at the same target is idempotent;
// writing over an edge pointing somewhere else is a fatal misuse, since
// an edge is single-valued per (from_layer, to_layer, from_slot) and
// silently clobbering another owner's edge is almost always a bug, not
// intentional shared ownership (for which you call ConnectOneway again
// with the same target, or model it with a separate layer of indirection
// nodes).
func ConnectOneway[From, To any](g *Graph, start NodeRef[From], end NodeRef[To]) {
	fromLayer, toLayer := start.key.Layer, end.key.Layer
	row := g.edgeLayers[fromLayer][toLayer]
	for len(row) <= start.key.Slot {
		row = append(row, nil)
	}

	if existing := row[start.key.Slot]; existing != nil {
		if *existing == end.key {
			return
		}
		panic("graph: attempted to overwrite an edge with a different target; " +
			"if you meant shared ownership, connect the same target again")
	}

	k := end.key
	row[start.key.Slot] = &k
	g.edgeLayers[fromLayer][toLayer] = row
}

// Connect writes edges in both directions between two nodes.
func Connect[A, B any](g *Graph, a NodeRef[A], b NodeRef[B]) {
	ConnectOneway(g, a, b)
	ConnectOneway(g, b, a)
}

// GetNeighbor follows the edge from node into toLayer, resolving through
// toLayer.Get so a target deleted since the edge was written is reported
// as "no neighbor" rather than a dangling reference. Runs in O(1).
func GetNeighbor[From, To any](g *Graph, node NodeRef[From], toLayer *Layer[To]) (NodeRef[To], bool) {
	row := g.edgeLayers[node.key.Layer][toLayer.index]
	if node.key.Slot >= len(row) {
		return NodeRef[To]{}, false
	}
	target := row[node.key.Slot]
	if target == nil {
		return NodeRef[To]{}, false
	}
	return toLayer.Get(*target)
}
