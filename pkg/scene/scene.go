package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	Camera *renderer.Camera
	Shapes []geometry.Shape // Objects in the scene
}

// CameraOverride adjusts a scene's default camera configuration before the camera is built
type CameraOverride func(config *renderer.CameraConfig)

// New creates an empty scene with a camera built from config
func New(name string, config renderer.CameraConfig) *Scene {
	return &Scene{
		Name:   name,
		Camera: renderer.NewCamera(config),
		Shapes: make([]geometry.Shape, 0),
	}
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetShapes implements renderer.Scene
func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return renderer.CountPrimitives(s.Shapes)
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddLightTriangle adds an emissive triangle to the scene
func (s *Scene) AddLightTriangle(v0, v1, v2 core.Vec3, emission core.Vec3) {
	s.Shapes = append(s.Shapes, geometry.NewFlatTriangle(v0, v1, v2, material.NewLight(emission)))
}

// AddQuadLight adds a rectangular area light to the scene
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) {
	s.Shapes = append(s.Shapes, geometry.NewQuad(corner, u, v, material.NewLight(emission)))
}

// ApplyCameraOverrides rebuilds the camera with overrides applied and validates the result
func (s *Scene) ApplyCameraOverrides(overrides ...CameraOverride) error {
	config := s.Camera.Config()
	for _, override := range overrides {
		if override != nil {
			override(&config)
		}
	}
	if err := config.Validate(); err != nil {
		return err
	}
	s.Camera = renderer.NewCamera(config)
	return nil
}

func applyOverrides(config renderer.CameraConfig, overrides []CameraOverride) renderer.CameraConfig {
	for _, override := range overrides {
		if override != nil {
			override(&config)
		}
	}
	return config
}
