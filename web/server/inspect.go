package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// InspectResponse contains information about the surface under a pixel
type InspectResponse struct {
	Hit           bool                   `json:"hit"`
	GeometryIndex int                    `json:"geometryIndex"`
	ShapeType     string                 `json:"shapeType,omitempty"`
	MaterialType  string                 `json:"materialType,omitempty"`
	Point         [3]float64             `json:"point"`
	Normal        [3]float64             `json:"normal"`
	Distance      float64                `json:"distance"`
	FrontFace     bool                   `json:"frontFace"`
	UV            [2]float64             `json:"uv"`
	Properties    map[string]interface{} `json:"properties,omitempty"`
	Material      map[string]interface{} `json:"material,omitempty"`
}

// handleInspect reports what the primary ray through pixel (x, y) hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	x, err := queryInt(r, "x")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := queryInt(r, "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	stats := s.session.Stats()
	if x < 0 || x >= stats.Width || y < 0 || y >= stats.Height {
		writeError(w, http.StatusBadRequest, fmt.Errorf("pixel (%d, %d) outside %dx%d image", x, y, stats.Width, stats.Height))
		return
	}

	hit, geom, ok := s.session.Pick(x, y)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	shapeType, shapeProps := describeShape(geom.Shape)
	materialType, materialProps := describeMaterial(geom.Material)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:           true,
		GeometryIndex: hit.GeometryIndex,
		ShapeType:     shapeType,
		MaterialType:  materialType,
		Point:         vecArray(hit.Point),
		Normal:        vecArray(hit.Normal),
		Distance:      hit.Distance,
		FrontFace:     hit.FrontFace,
		UV:            [2]float64{hit.UV.X, hit.UV.Y},
		Properties:    shapeProps,
		Material:      materialProps,
	})
}

func queryInt(r *http.Request, key string) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, fmt.Errorf("missing %s parameter", key)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	return n, nil
}

func describeShape(shape geometry.Shape) (string, map[string]interface{}) {
	switch sh := shape.(type) {
	case *geometry.Sphere:
		return "sphere", map[string]interface{}{
			"center": vecArray(sh.Center),
			"radius": sh.Radius,
		}
	case *geometry.Quad:
		return "quad", map[string]interface{}{
			"origin": vecArray(sh.Origin),
			"u":      vecArray(sh.U),
			"v":      vecArray(sh.V),
			"normal": vecArray(sh.Normal()),
		}
	case *geometry.Box:
		return "box", map[string]interface{}{
			"origin": vecArray(sh.Origin),
			"u":      vecArray(sh.U),
			"v":      vecArray(sh.V),
			"w":      vecArray(sh.W),
		}
	case *geometry.TriangleMesh:
		return "mesh", map[string]interface{}{
			"vertices":  len(sh.Vertices),
			"triangles": len(sh.Indices),
			"hasUVs":    len(sh.UVs) > 0,
		}
	}
	return fmt.Sprintf("%T", shape), nil
}

func describeMaterial(mat material.Material) (string, map[string]interface{}) {
	switch m := mat.(type) {
	case *material.Lambertian:
		props := map[string]interface{}{"texture": describeTexture(m.Albedo)}
		if m.Emission != (core.Vec3{}) {
			props["emission"] = vecArray(m.Emission)
		}
		return "lambertian", props
	case *material.Metal:
		return "metal", map[string]interface{}{
			"albedo":    vecArray(m.Albedo),
			"fuzziness": m.Fuzziness,
		}
	case *material.Dielectric:
		return "dielectric", map[string]interface{}{
			"refractiveIndex": m.RefractiveIndex,
		}
	}
	return fmt.Sprintf("%T", mat), nil
}

func describeTexture(texture material.Texture) string {
	switch texture.(type) {
	case *material.SolidColor:
		return "solid"
	case *material.Checker:
		return "checker"
	case *material.ImageTexture:
		return "image"
	}
	return fmt.Sprintf("%T", texture)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
