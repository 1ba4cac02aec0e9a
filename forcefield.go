package starframe

import (
	"github.com/starframe/starframe/mathf"
	"github.com/starframe/starframe/solver"
)

// ForceField computes an extra world-space force (mass·acceleration,
// not yet divided by mass) to apply to body this tick, on top of
// gravity and whatever the solver itself contributes — a wind gust, a
// radial explosion, a thruster under player control. Grounded on
// spec.md §6's tick(dt, &force_field, graph_views) parameter and
// feather/actor.RigidBody's accumulated-force model.
type ForceField interface {
	Force(key BodyKey, body *solver.Body) mathf.Vec2
}

// ForceFieldFunc adapts a plain function to ForceField.
type ForceFieldFunc func(key BodyKey, body *solver.Body) mathf.Vec2

func (f ForceFieldFunc) Force(key BodyKey, body *solver.Body) mathf.Vec2 { return f(key, body) }

// NoForces contributes nothing beyond gravity and the solver itself.
var NoForces ForceField = ForceFieldFunc(func(BodyKey, *solver.Body) mathf.Vec2 { return mathf.Zero2() })
