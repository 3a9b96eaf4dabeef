package material

import (
	"math/rand"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Material decides how light leaves a surface.
// Implementations are immutable and safe for concurrent use.
type Material interface {
	// Scatter returns the outgoing ray for an incoming ray that hit the surface.
	// The boolean is false when the ray is absorbed.
	Scatter(rayIn core.Ray, hit core.TraceResult, random *rand.Rand) (ScatterResult, bool)

	// Emit returns the constant radiance the surface gives off.
	Emit() core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The outgoing ray, direction normalized
	Attenuation core.Vec3 // Per-channel throughput factor
}
