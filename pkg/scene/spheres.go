package scene

import (
	"math/rand"

	"github.com/df07/go-interactive-raytracer/pkg/camera"
	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/integrator"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// NewRandomSpheresScene scatters small spheres over a ground quad around a
// glass, a checker-textured and a mirror sphere. The layout is fixed by seed.
func NewRandomSpheresScene(seed int64) Description {
	random := rand.New(rand.NewSource(seed))
	d := Description{
		Name:        "spheres",
		Camera:      camera.DefaultConfig(),
		Environment: integrator.NewSkyEnvironment(),
	}

	d.add(geometry.NewQuad(core.NewVec3(-100, 0, -100), core.NewVec3(200, 0, 0), core.NewVec3(0, 0, 200)),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	randomColor := func() core.Vec3 {
		return core.NewVec3(random.Float64(), random.Float64(), random.Float64())
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				mat = material.NewLambertian(randomColor().MultiplyVec(randomColor()))
			case chooseMat < 0.95:
				albedo := randomColor().Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
				mat = material.NewMetal(albedo, random.Float64()*0.5)
			default:
				mat = material.NewDielectric(1.5)
			}
			d.add(geometry.NewSphere(center, 0.2), mat)
		}
	}

	d.add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1), material.NewDielectric(1.5))
	d.add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1), material.NewTexturedLambertian(
		material.NewChecker(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9), 0.05)))
	d.add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1), material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0))

	return d
}
