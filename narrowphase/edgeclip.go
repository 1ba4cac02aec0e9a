package narrowphase

import "github.com/starframe/starframe/collider"

// edgeClipKind tags the three possible outcomes of clipEdge.
type edgeClipKind int

const (
	clipIntersects edgeClipKind = iota
	clipPasses
	clipMisses
)

// edgeClipResult is the Go form of shape_shape.rs's EdgeClipResult.
// Enters/Exits are only meaningful when Kind == clipPasses, and are
// parameters along the second edge passed to clipEdge.
type edgeClipResult struct {
	Kind          edgeClipKind
	Enters, Exits float64
}

// clipEdge finds where edge crosses the pair of lines perpendicular to
// target running through target's two endpoints. If edge and target
// intersect directly, that's reported as Intersects (a single contact
// point at an already-known location); otherwise Passes reports the
// parameter range of edge that lies within target's perpendicular
// "slab", or Misses if none of it does.
func clipEdge(target, edge collider.Edge) edgeClipResult {
	startDist := target.Start.Sub(edge.Start)

	targetDir := target.Dir.Vec()
	edgeDir := edge.Dir.Vec()

	// Cramer's rule solution for t in At = b, A = [edgeDir, -targetDir].
	// denom is 0 (t0/t1 come out infinite, or NaN when their numerator is
	// also 0) when the directions are parallel, but the
	// bounds check below correctly evaluates to false in that case and
	// t is never used afterwards.
	denom := edgeDir[0]*(-targetDir[1]) - (-targetDir[0])*edgeDir[1]
	t0 := (startDist[0]*(-targetDir[1]) - (-targetDir[0])*startDist[1]) / denom
	t1 := (edgeDir[0]*startDist[1] - startDist[0]*edgeDir[1]) / denom

	if t0 >= 0 && t0 <= edge.Length && t1 >= 0 && t1 <= target.Length {
		return edgeClipResult{Kind: clipIntersects}
	}

	distDotDir2 := startDist.Dot(targetDir)
	dirsDot := edgeDir.Dot(targetDir)
	startClipT := distDotDir2 / dirsDot
	endClipT := (target.Length + distDotDir2) / dirsDot

	if (startClipT <= 0 && endClipT <= 0) || (startClipT >= edge.Length && endClipT >= edge.Length) {
		return edgeClipResult{Kind: clipMisses}
	}

	var enters, exits float64
	if startClipT < endClipT {
		enters, exits = clampF(startClipT, 0, edge.Length), clampF(endClipT, 0, edge.Length)
	} else {
		enters, exits = clampF(endClipT, 0, edge.Length), clampF(startClipT, 0, edge.Length)
	}
	return edgeClipResult{Kind: clipPasses, Enters: enters, Exits: exits}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
