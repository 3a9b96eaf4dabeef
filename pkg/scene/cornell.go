package scene

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/camera"
	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/integrator"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// NewCornellScene creates the classic Cornell box. There is no sky: the
// ceiling panel is the only light.
func NewCornellScene() Description {
	const boxSize = 555.0

	from := core.NewVec3(278, 278, -800)
	yaw, pitch := camera.LookAt(from, core.NewVec3(278, 278, 0))
	d := Description{
		Name: "cornell",
		Camera: camera.Config{
			Position:      from,
			Yaw:           yaw,
			Pitch:         pitch,
			VFov:          40,
			FocusDistance: 800 + boxSize/2,
			Sensitivity:   60,
			Width:         400,
			Height:        400,
		},
		Environment: integrator.BlackEnvironment{},
	}

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Floor, ceiling, back wall
	d.add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize)), white)
	d.add(geometry.NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize)), white)
	d.add(geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0)), white)

	// Side walls
	d.add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0)), red)
	d.add(geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize)), green)

	// Ceiling light, slightly below the ceiling
	const lightSize = 130.0
	lightOffset := (boxSize - lightSize) / 2
	d.add(geometry.NewQuad(core.NewVec3(lightOffset, boxSize-1, lightOffset), core.NewVec3(lightSize, 0, 0), core.NewVec3(0, 0, lightSize)),
		material.NewDiffuseLight(core.Vec3{}, core.NewVec3(15, 15, 15)))

	// Tall box rotated about 15 degrees, short box rotated the other way
	d.add(rotatedBox(core.NewVec3(265, 0, 295), 165, 330, 165, 15), white)
	d.add(rotatedBox(core.NewVec3(130, 0, 65), 165, 165, 165, -18), white)

	return d
}

// rotatedBox creates a box standing on the floor with its corner at base,
// turned by degrees about the vertical axis through that corner
func rotatedBox(base core.Vec3, width, height, depth, degrees float64) *geometry.Box {
	theta := degrees * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)
	return geometry.NewBox(base,
		core.NewVec3(width*cos, 0, -width*sin),
		core.NewVec3(0, height, 0),
		core.NewVec3(depth*sin, 0, depth*cos))
}
