package geometry

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Box is a parallelepiped spanned by three edge vectors from an origin corner.
// Points inside satisfy origin + x*U + y*V + z*W with x, y, z in [0,1].
type Box struct {
	Origin  core.Vec3
	U, V, W core.Vec3
	inverse [3]core.Vec3 // Rows of the inverse edge matrix; zero when degenerate
	normals [3]core.Vec3 // Unit outward normals of the max-side faces per local axis
	valid   bool
}

// NewBox creates a box from an origin corner and three edge vectors
func NewBox(origin, u, v, w core.Vec3) *Box {
	b := &Box{Origin: origin, U: u, V: v, W: w}

	det := u.Dot(v.Cross(w))
	if math.Abs(det) < 1e-8 {
		return b
	}

	// The gradient of each local coordinate is the outward direction of its max face
	b.inverse = [3]core.Vec3{
		v.Cross(w).Multiply(1 / det),
		w.Cross(u).Multiply(1 / det),
		u.Cross(v).Multiply(1 / det),
	}
	for axis := range b.normals {
		b.normals[axis] = b.inverse[axis].Normalize()
	}
	b.valid = true
	return b
}

// NewAxisAlignedBox creates a box between two corners
func NewAxisAlignedBox(min, max core.Vec3) *Box {
	size := max.Subtract(min)
	return NewBox(min,
		core.NewVec3(size.X, 0, 0),
		core.NewVec3(0, size.Y, 0),
		core.NewVec3(0, 0, size.Z))
}

func (b *Box) toLocal(p core.Vec3) core.Vec3 {
	return core.NewVec3(b.inverse[0].Dot(p), b.inverse[1].Dot(p), b.inverse[2].Dot(p))
}

// boxFace identifies one face: a local axis and whether it is the max (1) side
type boxFace struct {
	axis int
	max  bool
}

// Intersect runs a slab test in local [0,1]³ space. The entry face is used
// when its distance is in range, otherwise the exit face (ray starts inside).
func (b *Box) Intersect(ray core.Ray, interval core.Interval) (core.TraceResult, bool) {
	if !b.valid {
		return core.TraceResult{}, false
	}

	origin := b.toLocal(ray.Origin.Subtract(b.Origin))
	direction := b.toLocal(ray.Direction)

	tEnter, tExit := math.Inf(-1), math.Inf(1)
	var enterFace, exitFace boxFace
	sliced := false
	for axis := 0; axis < 3; axis++ {
		o := origin.Axis(axis)
		d := direction.Axis(axis)
		if math.Abs(d) < 1e-8 {
			if o < 0 || o > 1 {
				return core.TraceResult{}, false
			}
			continue
		}
		sliced = true

		near := boxFace{axis: axis, max: d < 0}
		far := boxFace{axis: axis, max: d > 0}
		t0 := (0 - o) / d
		t1 := (1 - o) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter, enterFace = t0, near
		}
		if t1 < tExit {
			tExit, exitFace = t1, far
		}
	}

	if !sliced || tEnter > tExit {
		return core.TraceResult{}, false
	}

	t, face := tEnter, enterFace
	if !interval.Surrounds(t) {
		t, face = tExit, exitFace
		if !interval.Surrounds(t) {
			return core.TraceResult{}, false
		}
	}

	local := origin.Add(direction.Multiply(t))
	result := core.TraceResult{
		Distance: t,
		Point:    ray.At(t),
		UV:       faceUV(face.axis, local),
	}
	result.SetFaceNormal(ray, b.faceNormal(face))
	return result, true
}

func (b *Box) faceNormal(face boxFace) core.Vec3 {
	if face.max {
		return b.normals[face.axis]
	}
	return b.normals[face.axis].Negate()
}

// faceUV projects a local point onto the face: X faces use (z, y),
// Y faces (x, z), Z faces (x, y)
func faceUV(axis int, local core.Vec3) core.Vec2 {
	switch axis {
	case 0:
		return core.NewVec2(local.Z, local.Y)
	case 1:
		return core.NewVec2(local.X, local.Z)
	default:
		return core.NewVec2(local.X, local.Y)
	}
}

// faceLocal inverts faceUV for a face at the given side
func faceLocal(axis int, side float64, uv core.Vec2) core.Vec3 {
	switch axis {
	case 0:
		return core.NewVec3(side, uv.Y, uv.X)
	case 1:
		return core.NewVec3(uv.X, side, uv.Y)
	default:
		return core.NewVec3(uv.X, uv.Y, side)
	}
}

func (b *Box) toWorld(local core.Vec3) core.Vec3 {
	return b.Origin.
		Add(b.U.Multiply(local.X)).
		Add(b.V.Multiply(local.Y)).
		Add(b.W.Multiply(local.Z))
}

// Triangles returns two triangles per face carrying the face UVs and outward normals
func (b *Box) Triangles() []*Triangle {
	if !b.valid {
		return nil
	}

	corners := [4]core.Vec2{
		core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1), core.NewVec2(0, 1),
	}
	triangles := make([]*Triangle, 0, 12)
	for axis := 0; axis < 3; axis++ {
		for _, isMax := range []bool{false, true} {
			side := 0.0
			if isMax {
				side = 1
			}
			var p [4]core.Vec3
			for i, uv := range corners {
				p[i] = b.toWorld(faceLocal(axis, side, uv))
			}
			normal := b.faceNormal(boxFace{axis: axis, max: isMax})
			triangles = append(triangles,
				NewTriangleWithUVs(p[0], p[1], p[2], [3]core.Vec2{corners[0], corners[1], corners[2]}, normal),
				NewTriangleWithUVs(p[0], p[2], p[3], [3]core.Vec2{corners[0], corners[2], corners[3]}, normal),
			)
		}
	}
	return triangles
}

// BoundingBox returns the bounding box of the eight corners
func (b *Box) BoundingBox() core.AABB {
	var points []core.Vec3
	for _, x := range []float64{0, 1} {
		for _, y := range []float64{0, 1} {
			for _, z := range []float64{0, 1} {
				points = append(points, b.toWorld(core.NewVec3(x, y, z)))
			}
		}
	}
	return core.NewAABBFromPoints(points...).Pad(1e-4)
}

// Validate implements Shape
func (b *Box) Validate() error {
	return finite(b.Origin, b.U, b.V, b.W)
}
