package scene

import (
	"context"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// countEmitters returns how many primitives carry an emissive material
func countEmitters(shapes []geometry.Shape) int {
	count := 0
	for _, shape := range shapes {
		switch s := shape.(type) {
		case *geometry.Sphere:
			if _, ok := s.Material.(material.Emitter); ok {
				count++
			}
		case *geometry.Triangle:
			if _, ok := s.Material.(material.Emitter); ok {
				count++
			}
		case *geometry.TriangleMesh:
			count += countEmitters(s.GetTriangles())
		}
	}
	return count
}

func TestBuiltinScenes_Construct(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewBuiltin(info.ID)
			if err != nil {
				t.Fatalf("NewBuiltin failed: %v", err)
			}
			if err := s.Camera.Config().Validate(); err != nil {
				t.Errorf("Expected valid camera, got %v", err)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Expected primitives")
			}
			if countEmitters(s.Shapes) == 0 {
				t.Error("Expected at least one light")
			}
		})
	}
}

func TestBuiltinScenes_RenderSmall(t *testing.T) {
	small := func(c *renderer.CameraConfig) {
		c.Height = 6
		c.SamplesPerPixel = 1
		c.MaxDepth = 4
	}

	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewBuiltin(info.ID, small)
			if err != nil {
				t.Fatalf("NewBuiltin failed: %v", err)
			}
			tex, stats, err := renderer.NewRaytracer(s, 1).RenderParallel(context.Background(), renderer.ParallelOptions{Workers: 2})
			if err != nil {
				t.Fatalf("RenderParallel failed: %v", err)
			}
			if tex.Height != 6 || tex.Width != s.Camera.Width() {
				t.Errorf("Expected %dx6 image, got %dx%d", s.Camera.Width(), tex.Width, tex.Height)
			}
			if stats.TotalSamples != tex.Width*tex.Height {
				t.Errorf("Expected %d samples, got %d", tex.Width*tex.Height, stats.TotalSamples)
			}
		})
	}
}

func TestScene_AddLights(t *testing.T) {
	s := New("lights", renderer.DefaultCameraConfig())
	s.AddLightTriangle(core.NewVec3(0, 0, -1), core.NewVec3(1, 0, -1), core.NewVec3(0, 1, -1), core.NewVec3(4, 4, 4))
	s.AddQuadLight(core.NewVec3(0, 2, -1), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1))

	if s.GetPrimitiveCount() != 3 {
		t.Errorf("Expected 3 primitives, got %d", s.GetPrimitiveCount())
	}
	if countEmitters(s.Shapes) != 3 {
		t.Errorf("Expected 3 emissive primitives, got %d", countEmitters(s.Shapes))
	}
}

func TestScene_ApplyCameraOverrides(t *testing.T) {
	s := New("empty", renderer.DefaultCameraConfig())

	if err := s.ApplyCameraOverrides(func(c *renderer.CameraConfig) { c.Height = 12 }); err != nil {
		t.Fatalf("Expected valid override, got %v", err)
	}
	if s.Camera.Height() != 12 {
		t.Errorf("Expected height 12, got %d", s.Camera.Height())
	}

	before := s.Camera
	if err := s.ApplyCameraOverrides(func(c *renderer.CameraConfig) { c.LookAt = c.Position }); err == nil {
		t.Error("Expected degenerate view to be rejected")
	}
	if s.Camera != before {
		t.Error("Expected camera to be unchanged after a rejected override")
	}
}
