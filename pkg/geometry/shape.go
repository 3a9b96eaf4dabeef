package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

var (
	ErrMissingShape    = errors.New("geometry: missing shape")
	ErrMissingMaterial = errors.New("geometry: missing material")
	ErrInvalidRadius   = errors.New("geometry: sphere radius must be positive")
	ErrNonFinite       = errors.New("geometry: non-finite coordinate")
	ErrEmptyMesh       = errors.New("geometry: mesh has no triangles")
	ErrIndexOutOfRange = errors.New("geometry: mesh index out of range")
	ErrUVCount         = errors.New("geometry: mesh UV count does not match vertex count")
)

// Shape is the surface of a scene object: *Sphere, *Quad, *Box or *TriangleMesh.
type Shape interface {
	BoundingBox() core.AABB
	Validate() error
}

// Primitive is a shape with a closed-form ray intersection. The returned
// result leaves GeometryIndex unset; backends fill it in.
type Primitive interface {
	Intersect(ray core.Ray, interval core.Interval) (core.TraceResult, bool)
	BoundingBox() core.AABB
}

// Triangulated shapes can be expressed as triangles that reproduce their
// normals and UVs exactly.
type Triangulated interface {
	Triangles() []*Triangle
}

// Geometry is one scene entry: a shape and the material applied to it.
type Geometry struct {
	Shape    Shape
	Material material.Material
}

// NewGeometry pairs a shape with a material
func NewGeometry(shape Shape, mat material.Material) Geometry {
	return Geometry{Shape: shape, Material: mat}
}

// Validate reports malformed input before any backend is built
func (g Geometry) Validate() error {
	if g.Shape == nil {
		return ErrMissingShape
	}
	if g.Material == nil {
		return ErrMissingMaterial
	}
	return g.Shape.Validate()
}

// ValidateAll checks every entry and names the first bad index
func ValidateAll(geometries []Geometry) error {
	for i, g := range geometries {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("geometry %d: %w", i, err)
		}
	}
	return nil
}

func finite(points ...core.Vec3) error {
	for _, p := range points {
		if !p.IsFinite() {
			return ErrNonFinite
		}
	}
	return nil
}
