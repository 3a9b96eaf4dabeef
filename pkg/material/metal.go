package material

import (
	"math/rand"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo    core.Vec3 // Metal color
	Fuzziness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
	Emission  core.Vec3
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzziness float64) *Metal {
	return &Metal{Albedo: albedo, Fuzziness: max(0, min(1, fuzziness))}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit core.TraceResult, random *rand.Rand) (ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal).Normalize()
	if m.Fuzziness > 0 {
		reflected = reflected.Add(core.RandomUnitVector(random).Multiply(m.Fuzziness)).Normalize()
	}

	// Fuzz can push the ray below the surface; treat that as absorbed
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo,
	}, true
}

// Emit implements the Material interface
func (m *Metal) Emit() core.Vec3 {
	return m.Emission
}
