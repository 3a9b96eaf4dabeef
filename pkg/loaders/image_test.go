package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// testImage is 2x2: white, red / green, blue
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, testImage()); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
}

func checkPixels(t *testing.T, pixels []core.Vec3) {
	t.Helper()
	expected := []core.Vec3{
		core.NewVec3(1, 1, 1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
	}
	if len(pixels) != len(expected) {
		t.Fatalf("Expected %d pixels, got %d", len(expected), len(pixels))
	}
	const tolerance = 0.01
	for i, want := range expected {
		got := pixels[i]
		if math.Abs(got.X-want.X) > tolerance || math.Abs(got.Y-want.Y) > tolerance || math.Abs(got.Z-want.Z) > tolerance {
			t.Errorf("Pixel %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestLoadImageTexture_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	writePNG(t, path)

	texture, err := LoadImageTexture(path)
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}
	if texture.Width != 2 || texture.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", texture.Width, texture.Height)
	}
	checkPixels(t, texture.Pixels)
}

func TestDecodeImageTexture_BMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage()); err != nil {
		t.Fatalf("Failed to encode BMP: %v", err)
	}

	texture, format, err := DecodeImageTexture(&buf)
	if err != nil {
		t.Fatalf("DecodeImageTexture failed: %v", err)
	}
	if format != "bmp" {
		t.Errorf("Expected bmp format, got %q", format)
	}
	checkPixels(t, texture.Pixels)
}

func TestLoadImageTexture_NotFound(t *testing.T) {
	if _, err := LoadImageTexture("nonexistent.png"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestDecodeImageTexture_Garbage(t *testing.T) {
	if _, _, err := DecodeImageTexture(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Expected decode error")
	}
}
