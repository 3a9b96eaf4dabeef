package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

func TestQuad_Intersect_BasicIntersection(t *testing.T) {
	// 1x1 quad in the XZ plane at y=0, normal is X × Z = -Y
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	ray := core.NewRay(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, -1, 0))

	hit, ok := quad.Intersect(ray, core.RayInterval())
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.Distance-1) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.Distance)
	}
	if hit.Point.Subtract(core.NewVec3(0.5, 0, 0.5)).Length() > 1e-9 {
		t.Errorf("Expected hit point (0.5,0,0.5), got %v", hit.Point)
	}
	if hit.FrontFace {
		t.Error("Ray travels along the outward normal, expected back face")
	}
	if hit.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Expected normal flipped toward the ray, got %v", hit.Normal)
	}
}

func TestQuad_Intersect_CenterUV(t *testing.T) {
	origin := core.NewVec3(-1, -1, 3)
	u := core.NewVec3(2, 0, 0)
	v := core.NewVec3(0, 2, 0)
	quad := NewQuad(origin, u, v)

	center := origin.Add(u.Multiply(0.5)).Add(v.Multiply(0.5))
	ray := core.NewRay(core.NewVec3(0, 0, 0), center.Normalize())

	hit, ok := quad.Intersect(ray, core.RayInterval())
	if !ok {
		t.Fatal("Expected hit at quad center")
	}
	if math.Abs(hit.UV.X-0.5) > 1e-9 || math.Abs(hit.UV.Y-0.5) > 1e-9 {
		t.Errorf("Expected UV (0.5,0.5), got %v", hit.UV)
	}
}

func TestQuad_Intersect_ObliqueUV(t *testing.T) {
	// Non-orthogonal edges: UV must still be the affine coordinates
	origin := core.NewVec3(0, 0, 0)
	u := core.NewVec3(2, 0, 0)
	v := core.NewVec3(1, 1, 0)
	quad := NewQuad(origin, u, v)

	target := origin.Add(u.Multiply(0.25)).Add(v.Multiply(0.75))
	ray := core.NewRay(target.Add(core.NewVec3(0, 0, 5)), core.NewVec3(0, 0, -1))

	hit, ok := quad.Intersect(ray, core.RayInterval())
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.UV.X-0.25) > 1e-9 || math.Abs(hit.UV.Y-0.75) > 1e-9 {
		t.Errorf("Expected UV (0.25,0.75), got %v", hit.UV)
	}
}

func TestQuad_Intersect_OutsideBounds(t *testing.T) {
	origin := core.NewVec3(0, 0, 0)
	u := core.NewVec3(1, 0, 0)
	v := core.NewVec3(0, 0, 1)
	quad := NewQuad(origin, u, v)

	tests := []struct {
		name   string
		target core.Vec3
	}{
		{"u below zero", origin.Add(u.Multiply(-0.1)).Add(v.Multiply(0.5))},
		{"u above one", origin.Add(u.Multiply(1.1)).Add(v.Multiply(0.5))},
		{"v below zero", origin.Add(u.Multiply(0.5)).Add(v.Multiply(-0.1))},
		{"v above one", origin.Add(u.Multiply(0.5)).Add(v.Multiply(1.1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.target.Add(core.NewVec3(0, 1, 0)), core.NewVec3(0, -1, 0))
			if hit, ok := quad.Intersect(ray, core.RayInterval()); ok {
				t.Errorf("Expected miss, got hit at %v", hit.Point)
			}
		})
	}
}

func TestQuad_Intersect_ParallelAndDegenerate(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	parallel := core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1))
	if _, ok := quad.Intersect(parallel, core.RayInterval()); ok {
		t.Error("Expected parallel ray to miss")
	}

	degenerate := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 0))
	down := core.NewRay(core.NewVec3(0.5, 1, 0), core.NewVec3(0, -1, 0))
	if _, ok := degenerate.Intersect(down, core.RayInterval()); ok {
		t.Error("Expected zero-area quad to miss")
	}
}

func TestQuad_TrianglesMatchQuad(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0.5, 1, 0))
	triangles := quad.Triangles()
	if len(triangles) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(triangles))
	}

	for _, uv := range []core.Vec2{{X: 0.2, Y: 0.1}, {X: 0.9, Y: 0.8}, {X: 0.3, Y: 0.6}} {
		target := quad.Origin.Add(quad.U.Multiply(uv.X)).Add(quad.V.Multiply(uv.Y))
		ray := core.NewRay(target.Add(core.NewVec3(0, 0, 3)), core.NewVec3(0, 0, -1))

		want, ok := quad.Intersect(ray, core.RayInterval())
		if !ok {
			t.Fatalf("Expected quad hit at %v", uv)
		}
		var got core.TraceResult
		found := false
		for _, tri := range triangles {
			if hit, ok := tri.Intersect(ray, core.RayInterval()); ok {
				got, found = hit, true
			}
		}
		if !found {
			t.Fatalf("Expected triangle hit at %v", uv)
		}
		if math.Abs(got.UV.X-want.UV.X) > 1e-9 || math.Abs(got.UV.Y-want.UV.Y) > 1e-9 || got.FrontFace != want.FrontFace {
			t.Errorf("Triangle hit %v/%v differs from quad hit %v/%v", got.UV, got.FrontFace, want.UV, want.FrontFace)
		}
	}
}
