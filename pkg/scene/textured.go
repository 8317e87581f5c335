package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// NewTexturedScene creates a scene demonstrating texture mapping on spheres, quads and triangles
func NewTexturedScene(cameraOverrides ...CameraOverride) *Scene {
	config := renderer.DefaultCameraConfig()
	config.Position = core.NewVec3(0, 2, 8)
	config.LookAt = core.NewVec3(0, 1, 0)
	config.VFov = 45.0
	config.Height = 400
	config.AspectRatio = 16.0 / 9.0
	config.SamplesPerPixel = 64
	config.MaxDepth = 10
	config.Background = core.NewVec3(0.6, 0.7, 0.9)

	s := New("textured", applyOverrides(config, cameraOverrides))

	// Create procedural textures
	checkerboard := texture.NewCheckerboard(256, 128, 32,
		core.NewVec3(0.9, 0.9, 0.9), // White
		core.NewVec3(0.2, 0.2, 0.8), // Blue
	)
	redGreenGradient := texture.NewGradient(256, 256,
		core.NewVec3(1.0, 0.2, 0.2), // Red (top)
		core.NewVec3(0.2, 1.0, 0.2), // Green (bottom)
	)
	uvDebug := texture.NewUVDebug(256, 256)
	ground := texture.NewCheckerboard(512, 512, 16,
		core.NewVec3(0.7, 0.3, 0.1),  // Orange
		core.NewVec3(0.5, 0.2, 0.05), // Dark brown
	)

	// All shapes in a single row, left to right
	s.Add(
		geometry.NewSphere(core.NewVec3(-3, 1, 0), 1.0, material.NewTextured(checkerboard)),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewTextured(uvDebug)),
		geometry.NewQuad(core.NewVec3(1.6, 0, 0.2), core.NewVec3(1.5, 0, -0.3), core.NewVec3(0, 2, 0), material.NewTextured(redGreenGradient)),
		geometry.NewTriangle(
			[3]core.Vec3{core.NewVec3(3.5, 0, 0), core.NewVec3(5, 0, 0), core.NewVec3(4.25, 2, 0)},
			[3]core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)},
			[3]core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0.5, 1)},
			material.NewTextured(uvDebug),
		),
		geometry.NewQuad(core.NewVec3(-20, 0, 20), core.NewVec3(40, 0, 0), core.NewVec3(0, 0, -40), material.NewTextured(ground)),
	)

	s.AddQuadLight(
		core.NewVec3(-2, 6, -1),
		core.NewVec3(4, 0, 0),
		core.NewVec3(0, 0, 3),
		core.NewVec3(6, 6, 6),
	)

	return s
}
