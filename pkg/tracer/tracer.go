package tracer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/log"
)

var (
	ErrUnknownBackend   = errors.New("tracer: unknown backend")
	ErrUnsupportedShape = errors.New("tracer: unsupported shape")
	ErrNonFiniteBounds  = errors.New("tracer: non-finite primitive bounds")
)

var logger = log.New("tracer")

// Tracer finds the closest surface along a ray.
// Implementations are immutable after construction and safe for concurrent use.
type Tracer interface {
	// Trace returns the nearest hit with distance strictly inside interval
	Trace(ray core.Ray, interval core.Interval) (core.TraceResult, bool)
}

// Backend selects an intersection strategy
type Backend string

const (
	// Naive tests every primitive in order
	Naive Backend = "naive"
	// BVH walks a bounding volume hierarchy over spheres and triangles
	BVH Backend = "bvh"
)

// Backends lists the available backends
func Backends() []Backend {
	return []Backend{Naive, BVH}
}

// ParseBackend converts a name such as "naive" or "bvh" to a Backend
func ParseBackend(name string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(name))) {
	case Naive:
		return Naive, nil
	case BVH, "accelerated", "embree":
		return BVH, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// New validates the geometry and builds the requested backend.
// Both backends report the same GeometryIndex, normal orientation and UV.
func New(backend Backend, geometries []geometry.Geometry) (Tracer, error) {
	if err := geometry.ValidateAll(geometries); err != nil {
		return nil, err
	}

	switch backend {
	case Naive:
		primitives, err := flatten(geometries, false)
		if err != nil {
			return nil, err
		}
		return newNaiveTracer(primitives), nil
	case BVH:
		primitives, err := flatten(geometries, true)
		if err != nil {
			return nil, err
		}
		return newBVHTracer(primitives)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// indexedPrimitive ties a primitive to the scene entry that produced it
type indexedPrimitive struct {
	geometry.Primitive
	index int
}

func (p indexedPrimitive) intersect(ray core.Ray, interval core.Interval) (core.TraceResult, bool) {
	hit, ok := p.Intersect(ray, interval)
	if ok {
		hit.GeometryIndex = p.index
	}
	return hit, ok
}

// flatten turns the scene into primitives. Meshes always become triangles;
// with triangulate set, quads and boxes do too.
func flatten(geometries []geometry.Geometry, triangulate bool) ([]indexedPrimitive, error) {
	var primitives []indexedPrimitive
	for i, g := range geometries {
		switch shape := g.Shape.(type) {
		case *geometry.Sphere:
			primitives = append(primitives, indexedPrimitive{shape, i})
		case *geometry.Quad:
			if triangulate {
				primitives = appendTriangles(primitives, shape, i)
			} else {
				primitives = append(primitives, indexedPrimitive{shape, i})
			}
		case *geometry.Box:
			if triangulate {
				primitives = appendTriangles(primitives, shape, i)
			} else {
				primitives = append(primitives, indexedPrimitive{shape, i})
			}
		case *geometry.TriangleMesh:
			primitives = appendTriangles(primitives, shape, i)
		default:
			return nil, fmt.Errorf("geometry %d: %w: %T", i, ErrUnsupportedShape, g.Shape)
		}
	}
	return primitives, nil
}

func appendTriangles(primitives []indexedPrimitive, shape geometry.Triangulated, index int) []indexedPrimitive {
	for _, tri := range shape.Triangles() {
		primitives = append(primitives, indexedPrimitive{tri, index})
	}
	return primitives
}
