package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-interactive-raytracer/pkg/camera"
	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/integrator"
	"github.com/df07/go-interactive-raytracer/pkg/material"
	"github.com/df07/go-interactive-raytracer/pkg/tracer"
)

// Description is everything needed to build a scene, before a backend is chosen
type Description struct {
	Name        string
	Camera      camera.Config
	Environment integrator.Environment
	Geometries  []geometry.Geometry
}

// Scene contains all the elements needed for rendering. Geometry, tracer and
// integrator are immutable once built; only the camera changes between batches.
type Scene struct {
	Name       string
	Camera     *camera.Camera
	Geometries []geometry.Geometry
	Backend    tracer.Backend
	Tracer     tracer.Tracer
	Integrator *integrator.PathTracer
}

// New builds the intersection backend and integrator for a description
func New(desc Description, backend tracer.Backend) (*Scene, error) {
	tr, err := tracer.New(backend, desc.Geometries)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", desc.Name, err)
	}

	return &Scene{
		Name:       desc.Name,
		Camera:     camera.New(desc.Camera),
		Geometries: desc.Geometries,
		Backend:    backend,
		Tracer:     tr,
		Integrator: integrator.NewPathTracer(tr, desc.Geometries, desc.Environment),
	}, nil
}

// Width returns the output width in pixels
func (s *Scene) Width() int {
	return s.Camera.Width()
}

// Height returns the output height in pixels
func (s *Scene) Height() int {
	return s.Camera.Height()
}

// Resize changes the camera resolution
func (s *Scene) Resize(width, height int) {
	s.Camera.SetResolution(width, height)
}

// RenderSample traces one jittered camera ray through pixel (x, y)
func (s *Scene) RenderSample(x, y, maxDepth int, random *rand.Rand) core.Vec3 {
	ray := s.Camera.GenerateRay(x, y, random)
	return s.Integrator.RayColor(ray, maxDepth, random)
}

// RenderPixel averages samplesPerPixel samples of pixel (x, y)
func (s *Scene) RenderPixel(x, y, samplesPerPixel, maxDepth int, random *rand.Rand) core.Vec3 {
	if samplesPerPixel <= 0 {
		return core.Vec3{}
	}
	sum := core.Vec3{}
	for i := 0; i < samplesPerPixel; i++ {
		sum = sum.Add(s.RenderSample(x, y, maxDepth, random))
	}
	return sum.Multiply(1 / float64(samplesPerPixel))
}

// NewGroundQuad creates a square horizontal quad centered at center.
// Its edges run along +X then +Z, so the outward normal points down; diffuse
// surfaces do not care which side is outward.
func NewGroundQuad(center core.Vec3, size float64) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	return geometry.NewQuad(corner, core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size))
}

// add appends a geometry entry
func (d *Description) add(shape geometry.Shape, mat material.Material) {
	d.Geometries = append(d.Geometries, geometry.NewGeometry(shape, mat))
}
