package geometry

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	uvs        [3]core.Vec2 // Per-vertex UVs, used when hasUVs is set
	hasUVs     bool
	normal     core.Vec3 // Unit outward normal
}

// NewTriangle creates a triangle whose outward normal follows the
// counter-clockwise winding V0→V1→V2 and whose UV is the barycentric pair
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		normal: v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
	}
}

// NewTriangleWithUVs creates a triangle with per-vertex UVs and an explicit outward normal
func NewTriangleWithUVs(v0, v1, v2 core.Vec3, uvs [3]core.Vec2, normal core.Vec3) *Triangle {
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		uvs:    uvs,
		hasUVs: true,
		normal: normal.Normalize(),
	}
}

// Normal returns the unit outward normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray, interval core.Interval) (core.TraceResult, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle, or the triangle is degenerate
	if a > -epsilon && a < epsilon {
		return core.TraceResult{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	b1 := f * s.Dot(h)
	if b1 < 0.0 || b1 > 1.0 {
		return core.TraceResult{}, false
	}

	q := s.Cross(edge1)
	b2 := f * ray.Direction.Dot(q)
	if b2 < 0.0 || b1+b2 > 1.0 {
		return core.TraceResult{}, false
	}

	dist := f * edge2.Dot(q)
	if !interval.Surrounds(dist) {
		return core.TraceResult{}, false
	}

	result := core.TraceResult{
		Distance: dist,
		Point:    ray.At(dist),
		UV:       t.uvAt(b1, b2),
	}
	result.SetFaceNormal(ray, t.normal)
	return result, true
}

func (t *Triangle) uvAt(b1, b2 float64) core.Vec2 {
	if !t.hasUVs {
		return core.NewVec2(b1, b2)
	}
	b0 := 1 - b1 - b2
	return t.uvs[0].Multiply(b0).Add(t.uvs[1].Multiply(b1)).Add(t.uvs[2].Multiply(b2))
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2).Pad(1e-4)
}
