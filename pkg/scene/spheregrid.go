package scene

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/camera"
	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/integrator"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	lms := [3]float64{
		l + 0.3963377774*a + 0.2158037573*b,
		l - 0.1055613458*a - 0.0638541728*b,
		l - 0.0894841775*a - 1.2914855480*b,
	}
	for i := range lms {
		lms[i] = lms[i] * lms[i] * lms[i]
	}

	rgb := core.NewVec3(
		+4.0767416621*lms[0]-3.3077115913*lms[1]+0.2309699292*lms[2],
		-1.2684380046*lms[0]+2.6097574011*lms[1]-0.3413193965*lms[2],
		-0.0041960863*lms[0]-0.7034186147*lms[1]+1.7076147010*lms[2],
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a 20x20 grid of metal spheres on a ground quad.
// The shape count makes the BVH backend noticeably faster than the naive one.
func NewSphereGridScene() Description {
	const (
		gridSize   = 20
		targetArea = 9.0
	)

	from := core.NewVec3(4.5, 6, 18)
	lookAt := core.NewVec3(4.5, 0.8, 4.5)
	yaw, pitch := camera.LookAt(from, lookAt)

	d := Description{
		Name: "spheregrid",
		Camera: camera.Config{
			Position:      from,
			Yaw:           yaw,
			Pitch:         pitch,
			VFov:          40,
			FocusDistance: lookAt.Subtract(from).Length(),
			DefocusAngle:  0.1,
			Sensitivity:   2,
			Width:         800,
			Height:        450,
		},
		Environment: integrator.NewSkyEnvironment(),
	}

	d.add(NewGroundQuad(core.NewVec3(4.5, 0, 4.5), 60), material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	spacing := targetArea / float64(gridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2 + 4.5
			z := float64(j)*spacing - targetArea/2 + 4.5

			// Hue across X, chroma across Z
			hue := float64(i) / float64(gridSize-1) * 360
			chroma := 0.05 + float64(j)/float64(gridSize-1)*0.2
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2
			d.add(geometry.NewSphere(core.NewVec3(x, radius, z), radius),
				material.NewMetal(oklchToRGB(lightness, chroma, hue), roughness))
		}
	}

	return d
}
