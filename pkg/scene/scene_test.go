package scene

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/tracer"
)

func TestPresets_BuildWithEveryBackend(t *testing.T) {
	for _, info := range ListScenes() {
		for _, backend := range tracer.Backends() {
			t.Run(info.ID+"/"+string(backend), func(t *testing.T) {
				desc, err := LookupPreset(info.ID)
				if err != nil {
					t.Fatalf("LookupPreset failed: %v", err)
				}
				if len(desc.Geometries) == 0 {
					t.Fatal("Expected geometry")
				}

				s, err := New(desc, backend)
				if err != nil {
					t.Fatalf("New failed: %v", err)
				}
				if s.Width() <= 0 || s.Height() <= 0 {
					t.Errorf("Expected positive resolution, got %dx%d", s.Width(), s.Height())
				}

				random := rand.New(rand.NewSource(42))
				c := s.RenderPixel(s.Width()/2, s.Height()/2, 2, 5, random)
				if !c.IsFinite() || c.X < 0 || c.Y < 0 || c.Z < 0 {
					t.Errorf("Expected finite non-negative color, got %v", c)
				}
			})
		}
	}
}

func TestListScenes_Sorted(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(presets) {
		t.Fatalf("Expected %d scenes, got %d", len(presets), len(scenes))
	}
	for i := 1; i < len(scenes); i++ {
		if scenes[i-1].ID >= scenes[i].ID {
			t.Errorf("Scenes not sorted: %q before %q", scenes[i-1].ID, scenes[i].ID)
		}
	}
}

func TestLookupPreset_Unknown(t *testing.T) {
	_, err := LookupPreset("nope")
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestRandomSpheres_DeterministicBySeed(t *testing.T) {
	a := NewRandomSpheresScene(7)
	b := NewRandomSpheresScene(7)
	if len(a.Geometries) != len(b.Geometries) {
		t.Fatalf("Expected equal geometry counts, got %d and %d", len(a.Geometries), len(b.Geometries))
	}
	for i := range a.Geometries {
		sa, okA := a.Geometries[i].Shape.(*geometry.Sphere)
		sb, okB := b.Geometries[i].Shape.(*geometry.Sphere)
		if okA != okB || (okA && *sa != *sb) {
			t.Fatalf("Geometry %d differs between identical seeds", i)
		}
	}
}

func TestCornell_CenterRayHitsScene(t *testing.T) {
	s, err := New(NewCornellScene(), tracer.BVH)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	random := rand.New(rand.NewSource(42))
	ray := s.Camera.GenerateRay(s.Width()/2, s.Height()/2, random)
	hit, ok := s.Tracer.Trace(ray, core.RayInterval())
	if !ok {
		t.Fatal("Expected the center ray to hit the room")
	}
	if hit.GeometryIndex < 0 || hit.GeometryIndex >= len(s.Geometries) {
		t.Errorf("Geometry index %d out of range", hit.GeometryIndex)
	}
}

func TestRenderPixel_ZeroSamples(t *testing.T) {
	s, err := New(NewCornellScene(), tracer.Naive)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := s.RenderPixel(0, 0, 0, 5, rand.New(rand.NewSource(1))); got != (core.Vec3{}) {
		t.Errorf("Expected black for zero samples, got %v", got)
	}
}

func TestScene_Resize(t *testing.T) {
	s, err := New(NewShowcaseScene(), tracer.Naive)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Resize(320, 200)
	if s.Width() != 320 || s.Height() != 200 {
		t.Errorf("Expected 320x200, got %dx%d", s.Width(), s.Height())
	}
}

func TestNewGroundQuad_Centered(t *testing.T) {
	q := NewGroundQuad(core.NewVec3(1, 2, 3), 10)
	center := q.BoundingBox().Center()
	if math.Abs(center.X-1) > 1e-9 || math.Abs(center.Y-2) > 1e-4 || math.Abs(center.Z-3) > 1e-9 {
		t.Errorf("Expected center (1,2,3), got %v", center)
	}
}

func TestOklchToRGB_InRange(t *testing.T) {
	for hue := 0.0; hue < 360; hue += 30 {
		c := oklchToRGB(0.65, 0.25, hue)
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
			t.Errorf("Hue %.0f out of range: %v", hue, c)
		}
	}
}
