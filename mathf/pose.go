package mathf

// Pose is a rigid 2D transform: translation plus rotor. It plays the
// role original_source's m::Pose plays throughout shape_shape.rs and
// query.rs (`pose.inversed() * x`, `pose * ray`, etc.), and the role
// feather/actor.Transform plays for 3D.
type Pose struct {
	Translation Vec2
	Rotation    Rotor2
}

// Identity is the pose at the origin with no rotation.
func Identity() Pose {
	return Pose{Translation: Zero2(), Rotation: Identity2()}
}

// NewPose builds a pose from a position and rotation.
func NewPose(pos Vec2, rot Rotor2) Pose {
	return Pose{Translation: pos, Rotation: rot}
}

// TransformPoint maps a point from this pose's local space to world space.
func (p Pose) TransformPoint(local Vec2) Vec2 {
	return p.Translation.Add(p.Rotation.Rotate(local))
}

// TransformVec rotates (but does not translate) a vector into world space.
func (p Pose) TransformVec(local Vec2) Vec2 {
	return p.Rotation.Rotate(local)
}

// Inversed returns the pose that undoes this one.
func (p Pose) Inversed() Pose {
	invRot := p.Rotation.Reversed()
	return Pose{
		Translation: invRot.Rotate(p.Translation).Mul(-1),
		Rotation:    invRot,
	}
}

// Mul composes two poses: the result first applies other, then p — the
// same convention original_source uses for `pose1 * pose2`.
func (p Pose) Mul(other Pose) Pose {
	return Pose{
		Translation: p.TransformPoint(other.Translation),
		Rotation:    p.Rotation.Mul(other.Rotation),
	}
}

// PointToLocal maps a world-space point into this pose's local space.
// Equivalent to p.Inversed().TransformPoint(world) but avoids building
// the intermediate pose.
func (p Pose) PointToLocal(world Vec2) Vec2 {
	return p.Rotation.Reversed().Rotate(world.Sub(p.Translation))
}

// VecToLocal maps a world-space vector (no translation) into local space.
func (p Pose) VecToLocal(world Vec2) Vec2 {
	return p.Rotation.Reversed().Rotate(world)
}
