// Package spatial implements the broad-phase spatial index: a
// hierarchy of uniform grids with geometrically increasing cell sizes.
// Each collider is sorted into the smallest level whose cells are
// bigger than its AABB, and candidate pairs are gathered both within a
// collider's own level and against every coarser level, so a small
// fast-moving object is still checked against a huge static one.
//
// Grounded on feather/spatialgrid.go's CellKey/hashCell/Insert/FindPairs
// idiom, generalized from a single flat 3D grid to G 2D levels (see
// spec.md §4.2).
package spatial

import (
	"math"

	"github.com/starframe/starframe/mathf"
)

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max mathf.Vec2
}

// Overlaps reports whether two AABBs intersect.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min[0] <= b.Max[0] && a.Max[0] >= b.Min[0] &&
		a.Min[1] <= b.Max[1] && a.Max[1] >= b.Min[1]
}

// Extent returns the box's (width, height).
func (a AABB) Extent() mathf.Vec2 {
	return a.Max.Sub(a.Min)
}

// CellKey identifies a single cell within one grid level.
type CellKey struct {
	X, Y int
}

// Pair is a candidate pair of handles the broad phase wants the
// narrow phase to examine further.
type Pair struct {
	A, B int
}

type level struct {
	cellSize float64
	cells    map[CellKey][]int
}

type entry struct {
	handle int
	box    AABB
	level  int
}

// Grid is the hierarchical multi-level uniform grid. Level 0 has the
// smallest cells; each subsequent level's cell size is growthFactor
// times the previous one's.
type Grid struct {
	levels  []level
	entries []entry
}

// NewGrid builds a grid of numLevels levels, with level 0 cells of side
// baseCellSize and each following level's cells growthFactor times
// bigger.
func NewGrid(baseCellSize float64, numLevels int, growthFactor float64) *Grid {
	if numLevels < 1 {
		numLevels = 1
	}
	levels := make([]level, numLevels)
	size := baseCellSize
	for i := range levels {
		levels[i] = level{cellSize: size, cells: make(map[CellKey][]int)}
		size *= growthFactor
	}
	return &Grid{levels: levels}
}

// Clear empties the grid, ready for the next tick's Insert calls.
func (g *Grid) Clear() {
	for i := range g.levels {
		g.levels[i].cells = make(map[CellKey][]int)
	}
	g.entries = g.entries[:0]
}

// Insert adds handle (typically a body or collider index) at box to
// the grid, choosing the smallest level whose cell size exceeds box's
// largest extent.
func (g *Grid) Insert(handle int, box AABB) {
	li := g.levelFor(box)
	lvl := &g.levels[li]
	g.entries = append(g.entries, entry{handle: handle, box: box, level: li})

	for _, key := range cellsCovering(box, lvl.cellSize) {
		lvl.cells[key] = append(lvl.cells[key], handle)
	}
}

func (g *Grid) levelFor(box AABB) int {
	ext := box.Extent()
	maxSide := math.Max(ext[0], ext[1])
	for i, lvl := range g.levels {
		if lvl.cellSize > maxSide {
			return i
		}
	}
	return len(g.levels) - 1
}

// Pairs returns every candidate pair of overlapping AABBs: both within
// a handle's own level and against every coarser level, so broad-phase
// coverage doesn't miss a small object passing next to a huge one.
func (g *Grid) Pairs() []Pair {
	pairs := make([]Pair, 0, len(g.entries))
	seen := make(map[[2]int]bool)

	emit := func(a, b int, boxA, boxB AABB) {
		if a == b {
			return
		}
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if seen[key] {
			return
		}
		if !boxA.Overlaps(boxB) {
			return
		}
		seen[key] = true
		pairs = append(pairs, Pair{A: key[0], B: key[1]})
	}

	byHandle := make(map[int]AABB, len(g.entries))
	for _, e := range g.entries {
		byHandle[e.handle] = e.box
	}

	for _, e := range g.entries {
		own := &g.levels[e.level]
		for _, key := range cellsCovering(e.box, own.cellSize) {
			for _, other := range own.cells[key] {
				emit(e.handle, other, e.box, byHandle[other])
			}
		}
		for li := e.level + 1; li < len(g.levels); li++ {
			coarser := &g.levels[li]
			for _, key := range cellsCovering(e.box, coarser.cellSize) {
				for _, other := range coarser.cells[key] {
					emit(e.handle, other, e.box, byHandle[other])
				}
			}
		}
	}
	return pairs
}

// Query returns every handle stored in a cell that box covers, scanning
// every level (a query box of unknown size can't be pinned to one
// level the way Insert pins a collider to its smallest-fitting one).
// Candidates are deduplicated but their stored AABBs are not tested
// against box; callers still need their own precise test since this
// only narrows by grid cell.
func (g *Grid) Query(box AABB) []int {
	seen := make(map[int]bool)
	var out []int
	for li := range g.levels {
		lvl := &g.levels[li]
		for _, key := range cellsCovering(box, lvl.cellSize) {
			for _, handle := range lvl.cells[key] {
				if seen[handle] {
					continue
				}
				seen[handle] = true
				out = append(out, handle)
			}
		}
	}
	return out
}

func cellsCovering(box AABB, cellSize float64) []CellKey {
	minCell := worldToCell(box.Min, cellSize)
	maxCell := worldToCell(box.Max, cellSize)
	keys := make([]CellKey, 0, (maxCell.X-minCell.X+1)*(maxCell.Y-minCell.Y+1))
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			keys = append(keys, CellKey{X: x, Y: y})
		}
	}
	return keys
}

func worldToCell(pos mathf.Vec2, cellSize float64) CellKey {
	return CellKey{
		X: int(math.Floor(pos[0] / cellSize)),
		Y: int(math.Floor(pos[1] / cellSize)),
	}
}
