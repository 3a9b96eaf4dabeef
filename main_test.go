package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-interactive-raytracer/pkg/log"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

func init() {
	log.Discard()
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"raytracer"}, args...))
	return out.String(), err
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		scene string
	}{
		{"cornell", "cornell"},
		{"spheres", "spheres"},
		{"showcase", "showcase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "nested", "frame.png")
			_, err := run(t, "render", "--scene", tt.scene, "--width", "24", "--height", "16",
				"--spp", "2", "--depth", "3", "--workers", "2", "--out", out)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}

			file, err := os.Open(out)
			if err != nil {
				t.Fatalf("Expected output file: %v", err)
			}
			defer file.Close()
			img, err := png.Decode(file)
			if err != nil {
				t.Fatalf("Failed to decode PNG: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
				t.Errorf("Expected 24x16, got %v", b)
			}
		})
	}
}

func TestRender_SceneFile(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "scene.json")
	data := `{
		"name": "single sphere",
		"camera": {"position": [0, 0, 5], "look_at": [0, 0, 0], "fov": 40, "width": 12, "height": 12},
		"geometries": [
			{"shape": {"type": "sphere", "center": [0, 0, 0], "radius": 1},
			 "material": {"type": "lambertian", "albedo": [0.8, 0.2, 0.2]}}
		]
	}`
	if err := os.WriteFile(sceneFile, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	out := filepath.Join(dir, "frame.png")
	if _, err := run(t, "render", "--scene-file", sceneFile, "--spp", "1", "--out", out); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected output file: %v", err)
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"render", "--scene", "nonexistent"}},
		{"unknown backend", []string{"render", "--backend", "gpu"}},
		{"missing scene file", []string{"render", "--scene-file", "does/not/exist.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--out", filepath.Join(t.TempDir(), "x.png"))
			if _, err := run(t, args...); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestBench(t *testing.T) {
	if _, err := run(t, "bench", "--scene", "cornell", "--width", "16", "--height", "16",
		"--spp", "1", "--depth", "2", "--frames", "2"); err != nil {
		t.Fatalf("Bench failed: %v", err)
	}
}

func TestScenes(t *testing.T) {
	out, err := run(t, "scenes")
	if err != nil {
		t.Fatalf("Scenes failed: %v", err)
	}
	for _, info := range scene.ListScenes() {
		if !strings.Contains(out, info.ID) {
			t.Errorf("Expected scene %q in listing:\n%s", info.ID, out)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := run(t, "--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out, "0.1.0") {
		t.Errorf("Expected version in output, got %q", out)
	}

	// -v stays the verbose flag
	out, err = run(t, "-v", "scenes")
	if err != nil {
		t.Fatalf("-v scenes failed: %v", err)
	}
	if !strings.Contains(out, "cornell") {
		t.Errorf("Expected scene listing, got %q", out)
	}
}
