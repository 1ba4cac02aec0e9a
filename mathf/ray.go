package mathf

// Ray is a half-line used by raycast queries against colliders.
// Grounded on original_source/src/physics/collision/query.rs's Ray.
type Ray struct {
	Start Vec2
	Dir   Unit2
}

// PointAtT returns the point reached by travelling t units along the ray.
func (r Ray) PointAtT(t float64) Vec2 {
	return r.Start.Add(r.Dir.Vec().Mul(t))
}

// Transformed maps the ray by a pose, the Go form of query.rs's
// `impl Mul<Ray> for Pose`.
func (r Ray) Transformed(p Pose) Ray {
	return Ray{
		Start: p.TransformPoint(r.Start),
		Dir:   NewUnit2Unchecked(p.TransformVec(r.Dir.Vec())),
	}
}

// ToLocal maps the ray into a pose's local space, the inverse of Transformed.
func (r Ray) ToLocal(p Pose) Ray {
	return Ray{
		Start: p.PointToLocal(r.Start),
		Dir:   NewUnit2Unchecked(p.VecToLocal(r.Dir.Vec())),
	}
}
