package loaders

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3
f 1/1 3/3 4/4
`

func TestLoadOBJ_WithTextureCoordinates(t *testing.T) {
	path := writeFile(t, t.TempDir(), "quad.obj", quadOBJ)

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(mesh.Indices) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(mesh.Indices))
	}
	if len(mesh.UVs) != len(mesh.Vertices) {
		t.Fatalf("Expected one UV per vertex, got %d UVs for %d vertices", len(mesh.UVs), len(mesh.Vertices))
	}

	// Each vertex carries the UV equal to its XY position
	for i, v := range mesh.Vertices {
		uv := mesh.UVs[i]
		if uv.X != v.X || uv.Y != v.Y {
			t.Errorf("Vertex %d at %v has UV %v", i, v, uv)
		}
	}

	box := mesh.BoundingBox()
	if box.Max.X < 1-1e-6 || box.Max.Y < 1-1e-6 {
		t.Errorf("Unexpected bounds %v", box)
	}
}

func TestLoadOBJ_PositionsOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tri.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(mesh.Vertices) != 3 || len(mesh.Indices) != 1 {
		t.Errorf("Expected 3 vertices and 1 triangle, got %d and %d", len(mesh.Vertices), len(mesh.Indices))
	}
	if len(mesh.UVs) != 0 {
		t.Errorf("Expected no UVs, got %d", len(mesh.UVs))
	}
}

func TestLoadOBJ_Empty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.obj", "# nothing here\n")

	// The parser may reject the file itself; otherwise the mesh is empty
	_, err := LoadOBJ(path)
	if err == nil {
		t.Fatal("Expected error for empty mesh")
	}
}

func TestLoadOBJ_Missing(t *testing.T) {
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("Expected error for missing file")
	}
}
