package scene

import (
	"github.com/df07/go-interactive-raytracer/pkg/camera"
	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/integrator"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// NewShowcaseScene lines up one of every shape type, each with a different
// material or texture, on a checkered floor under the sky
func NewShowcaseScene() Description {
	from := core.NewVec3(0, 2.5, 9)
	lookAt := core.NewVec3(0, 1, 0)
	yaw, pitch := camera.LookAt(from, lookAt)

	d := Description{
		Name: "showcase",
		Camera: camera.Config{
			Position:      from,
			Yaw:           yaw,
			Pitch:         pitch,
			VFov:          45,
			FocusDistance: lookAt.Subtract(from).Length(),
			Sensitivity:   2,
			Width:         800,
			Height:        450,
		},
		Environment: integrator.NewSkyEnvironment(),
	}

	floor := material.NewChecker(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.6), 0.02)
	d.add(NewGroundQuad(core.NewVec3(0, 0, 0), 50), material.NewTexturedLambertian(floor))

	// Sphere with a generated UV gradient image
	d.add(geometry.NewSphere(core.NewVec3(-4.5, 1, 0), 1), material.NewTexturedLambertian(uvGradientTexture(64, 32)))

	// Glass sphere
	d.add(geometry.NewSphere(core.NewVec3(-2.2, 1, 1), 1), material.NewDielectric(1.5))

	// Oblique box with a fine checker
	d.add(rotatedBox(core.NewVec3(-0.6, 0, -0.4), 1.4, 1.4, 1.4, 30),
		material.NewTexturedLambertian(material.NewChecker(core.NewVec3(0.7, 0.3, 0.1), core.NewVec3(0.5, 0.2, 0.05), 0.25)))

	// Tetrahedron mesh, barycentric UVs
	d.add(tetrahedron(core.NewVec3(2.4, 0, 0.5), 1.6), material.NewMetal(core.NewVec3(0.8, 0.7, 0.3), 0.15))

	// Upright mirror quad
	d.add(geometry.NewQuad(core.NewVec3(3.8, 0, -1.5), core.NewVec3(1.5, 0, 1), core.NewVec3(0, 2.5, 0)),
		material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0))

	// Small warm light sphere
	d.add(geometry.NewSphere(core.NewVec3(0, 3.5, 1.5), 0.4), material.NewDiffuseLight(core.Vec3{}, core.NewVec3(6, 5, 3)))

	return d
}

// tetrahedron creates a regular-ish tetrahedron resting on the floor at base
func tetrahedron(base core.Vec3, size float64) *geometry.TriangleMesh {
	h := size * 0.8165
	vertices := []core.Vec3{
		base.Add(core.NewVec3(-size/2, 0, -size*0.2887)),
		base.Add(core.NewVec3(size/2, 0, -size*0.2887)),
		base.Add(core.NewVec3(0, 0, size*0.5774)),
		base.Add(core.NewVec3(0, h, 0)),
	}
	indices := [][3]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}}
	mesh, err := geometry.NewTriangleMesh(vertices, indices, nil)
	if err != nil {
		panic(err) // fixed indices
	}
	return mesh
}

// uvGradientTexture builds an image where red follows U and green follows V
func uvGradientTexture(width, height int) *material.ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(width-1)
			v := 1 - float64(y)/float64(height-1)
			pixels[y*width+x] = core.NewVec3(u, v, 0.25)
		}
	}
	return material.NewImageTexture(width, height, pixels)
}
