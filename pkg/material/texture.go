package material

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Texture maps surface (u, v) coordinates to a color
type Texture interface {
	Sample(uv core.Vec2) core.Vec3
}

// SolidColor is a uniform texture
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Sample returns the solid color regardless of UV
func (s *SolidColor) Sample(uv core.Vec2) core.Vec3 {
	return s.Color
}

// Checker alternates two colors on a grid of cells Scale wide in UV space
type Checker struct {
	Even  core.Vec3
	Odd   core.Vec3
	Scale float64
}

// NewChecker creates a new checker texture
func NewChecker(even, odd core.Vec3, scale float64) *Checker {
	return &Checker{Even: even, Odd: odd, Scale: scale}
}

// Sample picks Even when floor(u/scale)+floor(v/scale) is even
func (c *Checker) Sample(uv core.Vec2) core.Vec3 {
	x := int(math.Floor(uv.X / c.Scale))
	y := int(math.Floor(uv.Y / c.Scale))
	if (x+y)%2 == 0 {
		return c.Even
	}
	return c.Odd
}
