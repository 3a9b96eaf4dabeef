package geometry

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Quad is a parallelogram spanned by two edge vectors from an origin corner.
// Its outward normal is U × V.
type Quad struct {
	Origin core.Vec3
	U      core.Vec3
	V      core.Vec3
	normal core.Vec3 // Unit normal, zero for degenerate edges
	d      float64   // Plane constant: normal · p = d
	w      core.Vec3 // Dual vector for expressing points in the (U, V) basis
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(origin, u, v core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	var w core.Vec3
	if lenSq := cross.LengthSquared(); lenSq > 0 {
		w = cross.Multiply(1.0 / lenSq)
	}

	return &Quad{
		Origin: origin,
		U:      u,
		V:      v,
		normal: normal,
		d:      normal.Dot(origin),
		w:      w,
	}
}

// Normal returns the unit outward normal
func (q *Quad) Normal() core.Vec3 {
	return q.normal
}

// Intersect hits the plane then keeps points whose (U, V) coordinates lie in [0,1]²
func (q *Quad) Intersect(ray core.Ray, interval core.Interval) (core.TraceResult, bool) {
	denominator := ray.Direction.Dot(q.normal)

	// Parallel rays and degenerate quads miss
	if math.Abs(denominator) < 1e-6 {
		return core.TraceResult{}, false
	}

	t := (q.d - ray.Origin.Dot(q.normal)) / denominator
	if !interval.Surrounds(t) {
		return core.TraceResult{}, false
	}

	hitPoint := ray.At(t)
	planar := hitPoint.Subtract(q.Origin)
	alpha := q.w.Dot(planar.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(planar))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return core.TraceResult{}, false
	}

	result := core.TraceResult{
		Distance: t,
		Point:    hitPoint,
		UV:       core.NewVec2(alpha, beta),
	}
	result.SetFaceNormal(ray, q.normal)
	return result, true
}

// Triangles splits the quad along its O→O+U+V diagonal, keeping UVs and orientation
func (q *Quad) Triangles() []*Triangle {
	p00 := q.Origin
	p10 := q.Origin.Add(q.U)
	p11 := p10.Add(q.V)
	p01 := q.Origin.Add(q.V)
	uv00, uv10, uv11, uv01 := core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1), core.NewVec2(0, 1)

	return []*Triangle{
		NewTriangleWithUVs(p00, p10, p11, [3]core.Vec2{uv00, uv10, uv11}, q.normal),
		NewTriangleWithUVs(p00, p11, p01, [3]core.Vec2{uv00, uv11, uv01}, q.normal),
	}
}

// BoundingBox returns the bounding box of the four corners, padded when flat
func (q *Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Origin,
		q.Origin.Add(q.U),
		q.Origin.Add(q.V),
		q.Origin.Add(q.U).Add(q.V),
	).Pad(1e-4)
}

// Validate implements Shape
func (q *Quad) Validate() error {
	return finite(q.Origin, q.U, q.V)
}
