package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/df07/go-interactive-raytracer/pkg/camera"
	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/integrator"
	"github.com/df07/go-interactive-raytracer/pkg/material"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

var (
	ErrUnknownShape       = errors.New("loaders: unknown shape type")
	ErrUnknownMeshType    = errors.New("loaders: unknown mesh type")
	ErrUnknownMaterial    = errors.New("loaders: unknown material type")
	ErrUnknownTexture     = errors.New("loaders: unknown texture type")
	ErrUnknownEnvironment = errors.New("loaders: unknown environment type")
	ErrBadVector          = errors.New("loaders: vector has wrong length or is not finite")
	ErrBadValue           = errors.New("loaders: value out of range")
)

// SceneFile is the JSON layout of a scene. Vectors are arrays of numbers.
type SceneFile struct {
	Name        string           `json:"name"`
	Camera      CameraFile       `json:"camera"`
	Environment *EnvironmentFile `json:"environment"`
	Geometries  []GeometryFile   `json:"geometries"`
}

// CameraFile holds camera settings. When LookAt is set it overrides Yaw and Pitch.
type CameraFile struct {
	Position      []float64 `json:"position"`
	LookAt        []float64 `json:"look_at"`
	Yaw           float64   `json:"yaw"`
	Pitch         float64   `json:"pitch"`
	VFov          float64   `json:"fov"`
	FocusDistance float64   `json:"focus_distance"`
	DefocusAngle  float64   `json:"defocus_angle"`
	Sensitivity   float64   `json:"sensitivity"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
}

// EnvironmentFile selects the background: "black", "solid" or "gradient"
type EnvironmentFile struct {
	Type   string    `json:"type"`
	Color  []float64 `json:"color"`
	Top    []float64 `json:"top"`
	Bottom []float64 `json:"bottom"`
}

// GeometryFile pairs a shape with its material
type GeometryFile struct {
	Shape    ShapeFile    `json:"shape"`
	Material MaterialFile `json:"material"`
}

// ShapeFile is one of "sphere", "quad", "triangle", "box" or "mesh". Boxes
// take either Min/Max or Origin with U, V, W edges. Triangles load as
// single-triangle meshes. Meshes are "implicit" (inline data), "obj_file" or
// "ply_file" (Path relative to the scene file).
type ShapeFile struct {
	Type string `json:"type"`

	Center []float64 `json:"center"`
	Radius float64   `json:"radius"`

	Origin []float64 `json:"origin"`
	U      []float64 `json:"u"`
	V      []float64 `json:"v"`
	W      []float64 `json:"w"`
	Min    []float64 `json:"min"`
	Max    []float64 `json:"max"`

	Vertices  [][]float64 `json:"verts"`
	Indices   [][3]int    `json:"indices"`
	TexCoords [][]float64 `json:"tex_coords"`
	MeshType  string      `json:"mesh_type"`
	Path      string      `json:"path"`
}

// MaterialFile is one of "lambertian", "metal", "dielectric" or "light".
// Any material may emit.
type MaterialFile struct {
	Type            string       `json:"type"`
	Albedo          []float64    `json:"albedo"`
	Texture         *TextureFile `json:"texture"`
	Fuzziness       float64      `json:"fuzziness"`
	RefractiveIndex float64      `json:"refractive_index"`
	Emission        []float64    `json:"emission"`
}

// TextureFile is one of "solid", "checker" or "image"
type TextureFile struct {
	Type  string    `json:"type"`
	Color []float64 `json:"color"`
	Even  []float64 `json:"even"`
	Odd   []float64 `json:"odd"`
	Scale float64   `json:"scale"`
	Path  string    `json:"path"`
}

// LoadSceneFile reads a JSON scene. Relative mesh and image paths are
// resolved against the scene file's directory.
func LoadSceneFile(filename string) (scene.Description, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return scene.Description{}, fmt.Errorf("failed to read scene file: %w", err)
	}

	desc, err := ParseScene(data, filepath.Dir(filename))
	if err != nil {
		return scene.Description{}, fmt.Errorf("%s: %w", filename, err)
	}
	if desc.Name == "" {
		desc.Name = filepath.Base(filename)
	}
	logger.Infof("Loaded scene %q from %s: %d geometries", desc.Name, filename, len(desc.Geometries))
	return desc, nil
}

// ParseScene decodes and validates a JSON scene
func ParseScene(data []byte, baseDir string) (scene.Description, error) {
	var file SceneFile
	if err := json.Unmarshal(data, &file); err != nil {
		return scene.Description{}, fmt.Errorf("invalid scene JSON: %w", err)
	}
	return file.Build(baseDir)
}

// Build converts the file layout into a validated scene description
func (f SceneFile) Build(baseDir string) (scene.Description, error) {
	cam, err := f.Camera.config()
	if err != nil {
		return scene.Description{}, fmt.Errorf("camera: %w", err)
	}

	env, err := f.Environment.environment()
	if err != nil {
		return scene.Description{}, fmt.Errorf("environment: %w", err)
	}

	desc := scene.Description{Name: f.Name, Camera: cam, Environment: env}
	for i, g := range f.Geometries {
		shape, err := g.Shape.shape(baseDir)
		if err != nil {
			return scene.Description{}, fmt.Errorf("geometry %d: %w", i, err)
		}
		mat, err := g.Material.material(baseDir)
		if err != nil {
			return scene.Description{}, fmt.Errorf("geometry %d: %w", i, err)
		}
		desc.Geometries = append(desc.Geometries, geometry.NewGeometry(shape, mat))
	}

	if err := geometry.ValidateAll(desc.Geometries); err != nil {
		return scene.Description{}, err
	}
	return desc, nil
}

func (c CameraFile) config() (camera.Config, error) {
	cfg := camera.DefaultConfig()

	if c.Position != nil {
		p, err := vec3(c.Position)
		if err != nil {
			return cfg, fmt.Errorf("position: %w", err)
		}
		cfg.Position = p
	}
	cfg.Yaw, cfg.Pitch = c.Yaw, c.Pitch
	if c.LookAt != nil {
		target, err := vec3(c.LookAt)
		if err != nil {
			return cfg, fmt.Errorf("look_at: %w", err)
		}
		cfg.Yaw, cfg.Pitch = camera.LookAt(cfg.Position, target)
		if c.FocusDistance == 0 {
			cfg.FocusDistance = target.Subtract(cfg.Position).Length()
		}
	}

	if c.VFov > 0 {
		cfg.VFov = c.VFov
	}
	if c.FocusDistance > 0 {
		cfg.FocusDistance = c.FocusDistance
	}
	cfg.DefocusAngle = c.DefocusAngle
	if c.Sensitivity > 0 {
		cfg.Sensitivity = c.Sensitivity
	}
	if c.Width > 0 {
		cfg.Width = c.Width
	}
	if c.Height > 0 {
		cfg.Height = c.Height
	}
	return cfg, nil
}

func (e *EnvironmentFile) environment() (integrator.Environment, error) {
	if e == nil {
		return integrator.NewSkyEnvironment(), nil
	}

	switch e.Type {
	case "black":
		return integrator.BlackEnvironment{}, nil
	case "solid":
		c, err := vec3(e.Color)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		return integrator.SolidEnvironment{Color: c}, nil
	case "gradient", "":
		sky := integrator.NewSkyEnvironment()
		if e.Top != nil {
			top, err := vec3(e.Top)
			if err != nil {
				return nil, fmt.Errorf("top: %w", err)
			}
			sky.Top = top
		}
		if e.Bottom != nil {
			bottom, err := vec3(e.Bottom)
			if err != nil {
				return nil, fmt.Errorf("bottom: %w", err)
			}
			sky.Bottom = bottom
		}
		return sky, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, e.Type)
	}
}

func (s ShapeFile) shape(baseDir string) (geometry.Shape, error) {
	switch s.Type {
	case "sphere":
		center, err := vec3(s.Center)
		if err != nil {
			return nil, fmt.Errorf("sphere center: %w", err)
		}
		return geometry.NewSphere(center, s.Radius), nil

	case "quad":
		v, err := vec3s(s.Origin, s.U, s.V)
		if err != nil {
			return nil, fmt.Errorf("quad: %w", err)
		}
		return geometry.NewQuad(v[0], v[1], v[2]), nil

	case "triangle":
		if len(s.Vertices) != 3 {
			return nil, fmt.Errorf("triangle: %w", ErrBadVector)
		}
		v, err := vec3s(s.Vertices...)
		if err != nil {
			return nil, fmt.Errorf("triangle: %w", err)
		}
		// A one-triangle mesh keeps triangles inside the shape set both backends accept
		return geometry.NewTriangleMesh(v, [][3]int{{0, 1, 2}}, nil)

	case "box":
		if s.Min != nil || s.Max != nil {
			v, err := vec3s(s.Min, s.Max)
			if err != nil {
				return nil, fmt.Errorf("box: %w", err)
			}
			return geometry.NewAxisAlignedBox(v[0], v[1]), nil
		}
		v, err := vec3s(s.Origin, s.U, s.V, s.W)
		if err != nil {
			return nil, fmt.Errorf("box: %w", err)
		}
		return geometry.NewBox(v[0], v[1], v[2], v[3]), nil

	case "mesh":
		return s.mesh(baseDir)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Type)
	}
}

func (s ShapeFile) mesh(baseDir string) (geometry.Shape, error) {
	switch s.MeshType {
	case "obj_file":
		return LoadOBJ(resolve(baseDir, s.Path))

	case "ply_file":
		return LoadPLY(resolve(baseDir, s.Path))

	case "implicit":
		vertices, err := vec3s(s.Vertices...)
		if err != nil {
			return nil, fmt.Errorf("mesh verts: %w", err)
		}
		var uvs []core.Vec2
		for _, tc := range s.TexCoords {
			if len(tc) != 2 {
				return nil, fmt.Errorf("mesh tex_coords: %w", ErrBadVector)
			}
			uvs = append(uvs, core.NewVec2(tc[0], tc[1]))
		}
		return geometry.NewTriangleMesh(vertices, s.Indices, uvs)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeshType, s.MeshType)
	}
}

func (m MaterialFile) material(baseDir string) (material.Material, error) {
	var emission core.Vec3
	if m.Emission != nil {
		e, err := vec3(m.Emission)
		if err != nil {
			return nil, fmt.Errorf("emission: %w", err)
		}
		emission = e
	}

	switch m.Type {
	case "lambertian", "":
		if m.Texture != nil {
			texture, err := m.Texture.texture(baseDir)
			if err != nil {
				return nil, err
			}
			mat := material.NewTexturedLambertian(texture)
			mat.Emission = emission
			return mat, nil
		}
		albedo, err := vec3(m.Albedo)
		if err != nil {
			return nil, fmt.Errorf("albedo: %w", err)
		}
		return material.NewDiffuseLight(albedo, emission), nil

	case "light":
		return material.NewDiffuseLight(core.Vec3{}, emission), nil

	case "metal":
		albedo, err := vec3(m.Albedo)
		if err != nil {
			return nil, fmt.Errorf("albedo: %w", err)
		}
		mat := material.NewMetal(albedo, m.Fuzziness)
		mat.Emission = emission
		return mat, nil

	case "dielectric":
		if m.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("refractive_index %v: %w", m.RefractiveIndex, ErrBadValue)
		}
		mat := material.NewDielectric(m.RefractiveIndex)
		mat.Emission = emission
		return mat, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, m.Type)
	}
}

func (t TextureFile) texture(baseDir string) (material.Texture, error) {
	switch t.Type {
	case "solid":
		c, err := vec3(t.Color)
		if err != nil {
			return nil, fmt.Errorf("texture color: %w", err)
		}
		return material.NewSolidColor(c), nil

	case "checker":
		v, err := vec3s(t.Even, t.Odd)
		if err != nil {
			return nil, fmt.Errorf("checker: %w", err)
		}
		if t.Scale <= 0 {
			return nil, fmt.Errorf("checker scale %v: %w", t.Scale, ErrBadValue)
		}
		return material.NewChecker(v[0], v[1], t.Scale), nil

	case "image":
		return LoadImageTexture(resolve(baseDir, t.Path))

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTexture, t.Type)
	}
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

func vec3(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, ErrBadVector
	}
	v := core.NewVec3(values[0], values[1], values[2])
	if !v.IsFinite() {
		return core.Vec3{}, ErrBadVector
	}
	return v, nil
}

func vec3s(values ...[]float64) ([]core.Vec3, error) {
	out := make([]core.Vec3, len(values))
	for i, v := range values {
		parsed, err := vec3(v)
		if err != nil {
			return nil, err
		}
		out[i] = parsed
	}
	return out, nil
}
