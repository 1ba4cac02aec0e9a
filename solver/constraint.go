package solver

// Constraint is anything the sub-step loop can project positionally and
// then resolve at the velocity level. Mirrors
// feather/constraint.Constraint, generalized to expose the pair of
// bodies it links (so the solver can build islands and order passes
// without a type switch) and an explicit per-sub-step lambda reset for
// XPBD's compliance accounting.
type Constraint interface {
	Bodies() (a, b *Body)
	ResetLambda()
	SolvePosition(dt float64)
	SolveVelocity(dt float64)
}
