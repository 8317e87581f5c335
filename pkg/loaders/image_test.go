package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// TestLoadTexture creates a test PNG and verifies loading
func TestLoadTexture(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")

	// Create a simple 2x2 test image
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	tex, err := LoadTexture(testFile)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}

	if tex.Width != 2 || tex.Height != 2 {
		t.Fatalf("Expected 2x2 texture, got %dx%d", tex.Width, tex.Height)
	}

	// Row-major, row 0 at the top
	tests := []struct {
		name     string
		x, y     int
		expected core.Vec3
	}{
		{"top-left white", 0, 0, core.NewVec3(1, 1, 1)},
		{"top-right red", 1, 0, core.NewVec3(1, 0, 0)},
		{"bottom-left green", 0, 1, core.NewVec3(0, 1, 0)},
		{"bottom-right blue", 1, 1, core.NewVec3(0, 0, 1)},
	}
	for _, tt := range tests {
		if got := tex.At(tt.x, tt.y); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}

func TestLoadTexture_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTexture(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := LoadTexture(garbage); err == nil {
		t.Error("Expected error for undecodable file")
	}
}

func TestSaveImage_LosslessRoundTrip(t *testing.T) {
	source := texture.FromRGBBuffer(3, 2, []byte{
		255, 0, 0, 0, 255, 0, 0, 0, 255,
		12, 34, 56, 200, 100, 50, 128, 128, 128,
	})

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+ext)
			if err := SaveImage(path, source); err != nil {
				t.Fatalf("SaveImage failed: %v", err)
			}

			loaded, err := LoadTexture(path)
			if err != nil {
				t.Fatalf("LoadTexture failed: %v", err)
			}
			if loaded.Width != 3 || loaded.Height != 2 {
				t.Fatalf("Expected 3x2, got %dx%d", loaded.Width, loaded.Height)
			}

			want := source.RGBBuffer()
			got := loaded.RGBBuffer()
			for i := range want {
				if want[i] != got[i] {
					t.Fatalf("Byte %d: expected %d, got %d", i, want[i], got[i])
				}
			}
		})
	}
}

func TestSaveImage_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	tex := texture.NewCheckerboard(16, 16, 4, core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0))
	if err := SaveImage(path, tex); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	loaded, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}
	if loaded.Width != 16 || loaded.Height != 16 {
		t.Errorf("Expected 16x16, got %dx%d", loaded.Width, loaded.Height)
	}
}

func TestSaveImage_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.exr")
	err := SaveImage(path, texture.New(1, 1))
	if !errors.Is(err, ErrUnsupportedImageFormat) {
		t.Errorf("Expected ErrUnsupportedImageFormat, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("Expected no file to be created")
	}
}
