package material

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 at the top
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Sample filters the image bilinearly. UV is clamped to [0,1]; v=0 is the
// bottom row of the image.
func (t *ImageTexture) Sample(uv core.Vec2) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}

	u := math.Max(0, math.Min(1, uv.X))
	v := 1 - math.Max(0, math.Min(1, uv.Y))

	x := u * float64(t.Width-1)
	y := v * float64(t.Height-1)
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := min(x0+1, t.Width-1)
	y1 := min(y0+1, t.Height-1)
	fx := x - float64(x0)
	fy := y - float64(y0)

	top := t.at(x0, y0).Lerp(t.at(x1, y0), fx)
	bottom := t.at(x0, y1).Lerp(t.at(x1, y1), fx)
	return top.Lerp(bottom, fy)
}

func (t *ImageTexture) at(x, y int) core.Vec3 {
	return t.Pixels[y*t.Width+x]
}
