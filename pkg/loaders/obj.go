package loaders

import (
	"fmt"

	"github.com/udhos/gwob"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/log"
)

var logger = log.New("loaders")

// LoadOBJ reads a Wavefront OBJ file into a triangle mesh. Faces with more
// than three vertices are fan-triangulated by the parser; texture coordinates
// are kept when present. Normals and materials are ignored.
func LoadOBJ(filename string) (*geometry.TriangleMesh, error) {
	options := &gwob.ObjParserOptions{
		IgnoreNormals: true,
		Logger:        func(msg string) { logger.Debug(msg) },
	}

	obj, err := gwob.NewObjFromFile(filename, options)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OBJ %s: %w", filename, err)
	}

	mesh, err := meshFromObj(obj)
	if err != nil {
		return nil, fmt.Errorf("OBJ %s: %w", filename, err)
	}
	logger.Infof("Loaded %s: %d vertices, %d triangles", filename, len(mesh.Vertices), len(mesh.Indices))
	return mesh, nil
}

func meshFromObj(obj *gwob.Obj) (*geometry.TriangleMesh, error) {
	if obj.StrideSize == 0 || len(obj.Indices) == 0 {
		return nil, geometry.ErrEmptyMesh
	}

	// Strides and offsets are in bytes of float32
	stride := obj.StrideSize / 4
	position := obj.StrideOffsetPosition / 4
	texture := obj.StrideOffsetTexture / 4

	count := obj.NumberOfElements()
	vertices := make([]core.Vec3, count)
	var uvs []core.Vec2
	if obj.TextCoordFound {
		uvs = make([]core.Vec2, count)
	}

	for i := 0; i < count; i++ {
		base := i * stride
		vertices[i] = core.NewVec3(
			obj.Coord64(base+position),
			obj.Coord64(base+position+1),
			obj.Coord64(base+position+2),
		)
		if uvs != nil {
			uvs[i] = core.NewVec2(obj.Coord64(base+texture), obj.Coord64(base+texture+1))
		}
	}

	indices := make([][3]int, 0, len(obj.Indices)/3)
	for i := 0; i+2 < len(obj.Indices); i += 3 {
		indices = append(indices, [3]int{obj.Indices[i], obj.Indices[i+1], obj.Indices[i+2]})
	}

	return geometry.NewTriangleMesh(vertices, indices, uvs)
}
