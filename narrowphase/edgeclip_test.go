package narrowphase

import (
	"math"
	"testing"

	"github.com/starframe/starframe/collider"
	"github.com/starframe/starframe/mathf"
)

func TestClipVariousEdges(t *testing.T) {
	unitX := mathf.NewUnit2Unchecked(mathf.UnitX2())

	// intersection
	target := collider.Edge{Start: mathf.Vec2{1, 1}, Dir: unitX, Length: 2}
	edge := collider.Edge{
		Start:  mathf.Vec2{1, 0},
		Dir:    mathf.NewUnit2Normalize(mathf.Vec2{1, 1}),
		Length: 2,
	}
	if got := clipEdge(target, edge).Kind; got != clipIntersects {
		t.Fatalf("expected intersection, got kind %v", got)
	}

	// miss that starts at 0
	edge = collider.Edge{
		Start:  mathf.Vec2{2, 0},
		Dir:    mathf.NewUnit2Unchecked(mathf.RotorFromAngle(mathf.Rad(math.Pi / 6)).Rotate(mathf.UnitX2())),
		Length: 2,
	}
	result := clipEdge(target, edge)
	if result.Kind != clipPasses {
		t.Fatalf("expected pass, got kind %v", result.Kind)
	}
	if result.Enters != 0 {
		t.Fatalf("enters = %f, want 0", result.Enters)
	}
	wantExits := 1.0 / math.Cos(math.Pi/6)
	if math.Abs(result.Exits-wantExits) >= 0.001 {
		t.Fatalf("exits = %f, want ~%f", result.Exits, wantExits)
	}

	// miss that starts before 0 but ends at length, starting at the end
	// of the other edge
	edge = collider.Edge{
		Start:  mathf.Vec2{4, 0},
		Dir:    mathf.NewUnit2Unchecked(mathf.RotorFromAngle(mathf.Rad(7 * math.Pi / 8)).Rotate(mathf.UnitX2())),
		Length: 2,
	}
	result = clipEdge(target, edge)
	if result.Kind != clipPasses {
		t.Fatalf("expected pass, got kind %v", result.Kind)
	}
	wantEnters := 1.0 / math.Cos(math.Pi/8)
	if math.Abs(result.Enters-wantEnters) >= 0.001 {
		t.Fatalf("enters = %f, want ~%f", result.Enters, wantEnters)
	}
	if result.Exits != 2 {
		t.Fatalf("exits = %f, want 2", result.Exits)
	}
}
