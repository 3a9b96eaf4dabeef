package core

// TraceResult describes the nearest surface hit along a ray.
type TraceResult struct {
	Distance      float64
	Point         Vec3
	Normal        Vec3 // Unit length, always facing against the ray
	FrontFace     bool // True when the ray hit the outward side of the surface
	GeometryIndex int  // Index of the owning entry in the scene geometry list
	UV            Vec2
}

// SetFaceNormal orients the normal against the ray and records which side was hit.
// outwardNormal must be unit length.
func (tr *TraceResult) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	tr.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if tr.FrontFace {
		tr.Normal = outwardNormal
	} else {
		tr.Normal = outwardNormal.Negate()
	}
}
