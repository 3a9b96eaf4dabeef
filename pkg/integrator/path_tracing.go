package integrator

import (
	"math/rand"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/material"
	"github.com/df07/go-interactive-raytracer/pkg/tracer"
)

// PathTracer estimates the radiance along a ray by following a single random
// scattering path. It holds no mutable state and is safe for concurrent use.
type PathTracer struct {
	tracer      tracer.Tracer
	materials   []material.Material // Indexed by TraceResult.GeometryIndex
	environment Environment
}

// NewPathTracer creates a path tracer over the given scene geometry
func NewPathTracer(tr tracer.Tracer, geometries []geometry.Geometry, environment Environment) *PathTracer {
	materials := make([]material.Material, len(geometries))
	for i, g := range geometries {
		materials[i] = g.Material
	}
	if environment == nil {
		environment = BlackEnvironment{}
	}
	return &PathTracer{tracer: tr, materials: materials, environment: environment}
}

// Environment returns the radiance source for escaping rays
func (pt *PathTracer) Environment() Environment {
	return pt.environment
}

// RayColor follows up to maxDepth bounces. Each surface adds its emission
// weighted by the current throughput; an escaping ray adds the environment.
// Running out of bounces keeps what was gathered so far.
func (pt *PathTracer) RayColor(ray core.Ray, maxDepth int, random *rand.Rand) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for depth := 0; depth < maxDepth; depth++ {
		hit, ok := pt.tracer.Trace(ray, core.RayInterval())
		if !ok {
			return radiance.Add(throughput.MultiplyVec(pt.environment.Radiance(ray)))
		}

		mat := pt.materials[hit.GeometryIndex]
		radiance = radiance.Add(throughput.MultiplyVec(mat.Emit()))

		scatter, scattered := mat.Scatter(ray, hit, random)
		if !scattered {
			return radiance
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	return radiance
}
