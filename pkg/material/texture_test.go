package material

import (
	"testing"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

func TestChecker_Sample(t *testing.T) {
	even := core.NewVec3(1, 0, 0)
	odd := core.NewVec3(0, 0, 1)
	checker := NewChecker(even, odd, 0.25)

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"origin cell", core.NewVec2(0.1, 0.1), even},
		{"one step in u", core.NewVec2(0.3, 0.1), odd},
		{"one step in v", core.NewVec2(0.1, 0.3), odd},
		{"diagonal", core.NewVec2(0.3, 0.3), even},
		{"negative u", core.NewVec2(-0.1, 0.1), odd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Sample(tt.uv); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestImageTexture_Sample(t *testing.T) {
	// 2x2 image: top row red/green, bottom row blue/white
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	blue := core.NewVec3(0, 0, 1)
	white := core.NewVec3(1, 1, 1)
	texture := NewImageTexture(2, 2, []core.Vec3{red, green, blue, white})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom left is last row", core.NewVec2(0, 0), blue},
		{"top left is first row", core.NewVec2(0, 1), red},
		{"top right", core.NewVec2(1, 1), green},
		{"bottom right", core.NewVec2(1, 0), white},
		{"center blends all four", core.NewVec2(0.5, 0.5), core.NewVec3(0.5, 0.5, 0.5)},
		{"out of range clamps", core.NewVec2(-3, 7), red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texture.Sample(tt.uv)
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
