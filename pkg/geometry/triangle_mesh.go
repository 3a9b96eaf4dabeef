package geometry

import (
	"fmt"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// TriangleMesh is an indexed triangle list with optional per-vertex UVs
type TriangleMesh struct {
	Vertices []core.Vec3
	Indices  [][3]int
	UVs      []core.Vec2 // Empty, or one per vertex
}

// NewTriangleMesh creates a validated mesh
func NewTriangleMesh(vertices []core.Vec3, indices [][3]int, uvs []core.Vec2) (*TriangleMesh, error) {
	mesh := &TriangleMesh{Vertices: vertices, Indices: indices, UVs: uvs}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// Validate implements Shape
func (m *TriangleMesh) Validate() error {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return ErrEmptyMesh
	}
	if len(m.UVs) != 0 && len(m.UVs) != len(m.Vertices) {
		return fmt.Errorf("%w: %d UVs for %d vertices", ErrUVCount, len(m.UVs), len(m.Vertices))
	}
	if err := finite(m.Vertices...); err != nil {
		return err
	}
	for i, tri := range m.Indices {
		for _, idx := range tri {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("%w: triangle %d references vertex %d of %d", ErrIndexOutOfRange, i, idx, len(m.Vertices))
			}
		}
	}
	return nil
}

// Triangles returns one triangle per index triple
func (m *TriangleMesh) Triangles() []*Triangle {
	triangles := make([]*Triangle, 0, len(m.Indices))
	for _, tri := range m.Indices {
		v0, v1, v2 := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		if len(m.UVs) == 0 {
			triangles = append(triangles, NewTriangle(v0, v1, v2))
			continue
		}
		normal := v1.Subtract(v0).Cross(v2.Subtract(v0))
		uvs := [3]core.Vec2{m.UVs[tri[0]], m.UVs[tri[1]], m.UVs[tri[2]]}
		triangles = append(triangles, NewTriangleWithUVs(v0, v1, v2, uvs, normal))
	}
	return triangles
}

// BoundingBox returns the bounding box of all vertices
func (m *TriangleMesh) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(m.Vertices...).Pad(1e-4)
}
