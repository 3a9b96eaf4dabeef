package material

import (
	"math/rand"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo   Texture   // Base reflectance, sampled at the hit UV
	Emission core.Vec3 // Constant emitted radiance, zero for non-emitters
}

// NewLambertian creates a new lambertian material with a solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with a texture
func NewTexturedLambertian(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// NewDiffuseLight creates a lambertian surface that also emits light
func NewDiffuseLight(albedo, emission core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo), Emission: emission}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.TraceResult, random *rand.Rand) (ScatterResult, bool) {
	direction := hit.Normal.Add(core.RandomUnitVector(random))

	// The unit vector can cancel the normal almost exactly
	if direction.NearZero(1e-8) {
		direction = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction.Normalize()),
		Attenuation: l.Albedo.Sample(hit.UV),
	}, true
}

// Emit implements the Material interface
func (l *Lambertian) Emit() core.Vec3 {
	return l.Emission
}
