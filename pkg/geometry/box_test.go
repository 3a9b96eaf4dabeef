package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

func TestBox_Intersect_AxisAligned(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		origin   core.Vec3
		dir      core.Vec3
		distance float64
		normal   core.Vec3
		front    bool
	}{
		{"from minus X", core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0), 4, core.NewVec3(-1, 0, 0), true},
		{"from plus Y", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), 4, core.NewVec3(0, 1, 0), true},
		{"from minus Z", core.NewVec3(0.2, 0.3, -3), core.NewVec3(0, 0, 1), 2, core.NewVec3(0, 0, -1), true},
		{"from inside", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 1, core.NewVec3(0, 0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := box.Intersect(core.NewRay(tt.origin, tt.dir), core.RayInterval())
			if !ok {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.Distance-tt.distance) > 1e-9 {
				t.Errorf("Expected distance %f, got %f", tt.distance, hit.Distance)
			}
			if hit.Normal.Subtract(tt.normal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.normal, hit.Normal)
			}
			if hit.FrontFace != tt.front {
				t.Errorf("Expected front=%v, got %v", tt.front, hit.FrontFace)
			}
		})
	}
}

func TestBox_Intersect_Miss(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	rays := []core.Ray{
		core.NewRay(core.NewVec3(-1, 2, 0.5), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(-1, 0.5, 0.5), core.NewVec3(-1, 0, 0)),
		core.NewRay(core.NewVec3(-1, -1, 0.5), core.NewVec3(1, 3, 0).Normalize()),
	}
	for i, ray := range rays {
		if hit, ok := box.Intersect(ray, core.RayInterval()); ok {
			t.Errorf("ray %d: expected miss, got hit at %v", i, hit.Point)
		}
	}
}

func TestBox_FaceUV(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		origin   core.Vec3
		dir      core.Vec3
		expected core.Vec2
	}{
		{"X face uses (z, y)", core.NewVec3(-1, 0.2, 0.7), core.NewVec3(1, 0, 0), core.NewVec2(0.7, 0.2)},
		{"Y face uses (x, z)", core.NewVec3(0.3, 2, 0.6), core.NewVec3(0, -1, 0), core.NewVec2(0.3, 0.6)},
		{"Z face uses (x, y)", core.NewVec3(0.4, 0.9, -1), core.NewVec3(0, 0, 1), core.NewVec2(0.4, 0.9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := box.Intersect(core.NewRay(tt.origin, tt.dir), core.RayInterval())
			if !ok {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.UV.X-tt.expected.X) > 1e-9 || math.Abs(hit.UV.Y-tt.expected.Y) > 1e-9 {
				t.Errorf("Expected UV %v, got %v", tt.expected, hit.UV)
			}
		})
	}
}

func TestBox_ObliqueNormalIsFacePerpendicular(t *testing.T) {
	// Sheared box: the +X face is spanned by V and W, so its normal must be perpendicular to both
	u := core.NewVec3(2, 0, 0)
	v := core.NewVec3(1, 2, 0)
	w := core.NewVec3(0, 0, 1)
	box := NewBox(core.NewVec3(0, 0, 0), u, v, w)

	ray := core.NewRay(core.NewVec3(10, 1, 0.5), core.NewVec3(-1, 0, 0))
	hit, ok := box.Intersect(ray, core.RayInterval())
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.Normal.Dot(v)) > 1e-9 || math.Abs(hit.Normal.Dot(w)) > 1e-9 {
		t.Errorf("Normal %v is not perpendicular to the face", hit.Normal)
	}
	if !hit.FrontFace || hit.Normal.Dot(u) <= 0 {
		t.Errorf("Expected outward front-facing normal on the +U side, got %v", hit.Normal)
	}
}

func TestBox_Degenerate(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 1))
	ray := core.NewRay(core.NewVec3(0.5, 5, 0.5), core.NewVec3(0, -1, 0))
	if _, ok := box.Intersect(ray, core.RayInterval()); ok {
		t.Error("Expected coplanar edges to never hit")
	}
	if len(box.Triangles()) != 0 {
		t.Error("Expected no triangles for a degenerate box")
	}
}

func TestBox_TrianglesMatchBox(t *testing.T) {
	box := NewBox(core.NewVec3(1, 0, -1), core.NewVec3(1, 0, 0.5), core.NewVec3(0, 2, 0), core.NewVec3(-0.5, 0, 1))
	triangles := box.Triangles()
	if len(triangles) != 12 {
		t.Fatalf("Expected 12 triangles, got %d", len(triangles))
	}

	random := rand.New(rand.NewSource(42))
	center := box.BoundingBox().Center()
	hits := 0
	for i := 0; i < 200; i++ {
		origin := center.Add(core.RandomUnitVector(random).Multiply(6))
		target := center.Add(core.RandomUnitVector(random).Multiply(0.5))
		ray := core.NewRay(origin, target.Subtract(origin).Normalize())

		want, ok := box.Intersect(ray, core.RayInterval())
		if !ok {
			continue
		}
		var got core.TraceResult
		found := false
		for _, tri := range triangles {
			if hit, ok := tri.Intersect(ray, core.RayInterval().WithMax(math.Inf(1))); ok && (!found || hit.Distance < got.Distance) {
				got, found = hit, true
			}
		}
		if !found {
			t.Fatalf("Triangles missed a box hit at %v", want.Point)
		}
		hits++
		if math.Abs(got.Distance-want.Distance) > 1e-6 {
			t.Errorf("Distance mismatch: %f vs %f", got.Distance, want.Distance)
		}
		if got.Normal.Subtract(want.Normal).Length() > 1e-6 || got.FrontFace != want.FrontFace {
			t.Errorf("Normal mismatch: %v/%v vs %v/%v", got.Normal, got.FrontFace, want.Normal, want.FrontFace)
		}
		if math.Abs(got.UV.X-want.UV.X) > 1e-6 || math.Abs(got.UV.Y-want.UV.Y) > 1e-6 {
			t.Errorf("UV mismatch: %v vs %v", got.UV, want.UV)
		}
	}
	if hits == 0 {
		t.Fatal("Expected some rays to hit the box")
	}
}
