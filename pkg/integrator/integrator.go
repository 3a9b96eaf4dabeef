package integrator

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Environment gives the radiance arriving along rays that escape the scene
type Environment interface {
	Radiance(ray core.Ray) core.Vec3
}

// BlackEnvironment contributes nothing; only emissive surfaces light the scene
type BlackEnvironment struct{}

// Radiance implements Environment
func (BlackEnvironment) Radiance(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// SolidEnvironment is a uniform sky
type SolidEnvironment struct {
	Color core.Vec3
}

// Radiance implements Environment
func (e SolidEnvironment) Radiance(ray core.Ray) core.Vec3 {
	return e.Color
}

// GradientEnvironment blends from Bottom (looking down) to Top (looking up)
type GradientEnvironment struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewSkyEnvironment returns the usual white-to-blue sky
func NewSkyEnvironment() GradientEnvironment {
	return GradientEnvironment{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Radiance implements Environment
func (e GradientEnvironment) Radiance(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return e.Bottom.Lerp(e.Top, t)
}
