package geometry

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Intersect solves the ray-sphere quadratic, preferring the nearer root
func (s *Sphere) Intersect(ray core.Ray, interval core.Interval) (core.TraceResult, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return core.TraceResult{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if !interval.Surrounds(root) {
		root = (-halfB + sqrtD) / a
		if !interval.Surrounds(root) {
			return core.TraceResult{}, false
		}
	}

	result := core.TraceResult{
		Distance: root,
		Point:    ray.At(root),
	}
	outwardNormal := result.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	result.SetFaceNormal(ray, outwardNormal)
	result.UV = sphereUV(outwardNormal)

	return result, true
}

// sphereUV maps a point on the unit sphere to (u, v) in [0,1]²:
// u wraps around the Y axis starting from -X, v runs from bottom to top.
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}

// Validate implements Shape
func (s *Sphere) Validate() error {
	if err := finite(s.Center); err != nil {
		return err
	}
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return ErrInvalidRadius
	}
	return nil
}
