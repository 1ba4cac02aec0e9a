package solver

import "github.com/starframe/starframe/mathf"

// Rope is a chain of particle bodies linked end to end by distance
// constraints: each segment has a rest length, a maximum stretch past
// that rest length, and the chain as a whole resists bending through a
// damping term applied between every pair of bodies two segments apart
// (i, i+2), rather than a bend-angle constraint neither XPBD nor the
// rest of this solver models. Ropes are processed as their own
// category (after contacts and attachments, before user constraints)
// so a taut rope's corrections don't get starved by whatever else is
// sharing its island this sub-step.
type Rope struct {
	Segments []*DistanceConstraint
	Bends    []*DistanceConstraint
}

// NewRope builds a rope from consecutive bodies and each segment's rest
// length, anchoring every segment at its two bodies' centers. maxStretch
// is the fraction past segmentLength a segment may be pulled before the
// XPBD correction engages (0 is inextensible; the teacher's old
// behavior). compliance softens the segments the way
// compliance.go's material presets soften a contact or attachment, and
// bendDamping is the velocity-level damping applied between every
// (i, i+2) pair to resist the chain whipping or curling sharply.
func NewRope(bodies []*Body, segmentLength, maxStretch, compliance, bendDamping float64) *Rope {
	maxLength := segmentLength * (1 + maxStretch)

	segs := make([]*DistanceConstraint, 0, len(bodies)-1)
	for i := 0; i+1 < len(bodies); i++ {
		segs = append(segs, NewDistanceConstraint(bodies[i], bodies[i+1], mathf.Zero2(), mathf.Zero2(), 0, maxLength, compliance))
	}

	var bends []*DistanceConstraint
	if len(bodies) > 2 {
		bends = make([]*DistanceConstraint, 0, len(bodies)-2)
		for i := 0; i+2 < len(bodies); i++ {
			bend := NewDistanceConstraint(bodies[i], bodies[i+2], mathf.Zero2(), mathf.Zero2(), 0, 2*maxLength, 0)
			bend.LinearDamping = bendDamping
			bends = append(bends, bend)
		}
	}

	return &Rope{Segments: segs, Bends: bends}
}

// SolvePosition runs every segment's position projection once, in
// order from one end of the rope to the other, then the bend pairs'.
func (r *Rope) SolvePosition(dt float64) {
	for _, s := range r.Segments {
		s.SolvePosition(dt)
	}
	for _, b := range r.Bends {
		b.SolvePosition(dt)
	}
}

// SolveVelocity runs every segment's and bend pair's velocity-level
// damping.
func (r *Rope) SolveVelocity(dt float64) {
	for _, s := range r.Segments {
		s.SolveVelocity(dt)
	}
	for _, b := range r.Bends {
		b.SolveVelocity(dt)
	}
}

// ResetLambda resets every segment's and bend pair's accumulated
// multiplier.
func (r *Rope) ResetLambda() {
	for _, s := range r.Segments {
		s.ResetLambda()
	}
	for _, b := range r.Bends {
		b.ResetLambda()
	}
}
