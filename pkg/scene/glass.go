package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// NewGlassScene creates a row of dielectric spheres and a glass prism in front of a striped wall
func NewGlassScene(cameraOverrides ...CameraOverride) *Scene {
	config := renderer.DefaultCameraConfig()
	config.Position = core.NewVec3(0, 1.2, 4)
	config.LookAt = core.NewVec3(0, 0.6, 0)
	config.VFov = 45.0
	config.Height = 400
	config.AspectRatio = 16.0 / 9.0
	config.SamplesPerPixel = 128
	config.MaxDepth = 30
	config.Background = core.NewVec3(0.02, 0.02, 0.03)

	s := New("glass", applyOverrides(config, cameraOverrides))

	// Striped backdrop and floor make refraction visible
	stripes := texture.NewCheckerboard(512, 8, 32,
		core.NewVec3(0.9, 0.9, 0.9),
		core.NewVec3(0.1, 0.1, 0.1),
	)
	floorTex := texture.NewCheckerboard(256, 256, 32,
		core.NewVec3(0.8, 0.8, 0.8),
		core.NewVec3(0.3, 0.3, 0.35),
	)
	s.Add(
		geometry.NewQuad(core.NewVec3(-6, 0, -2), core.NewVec3(12, 0, 0), core.NewVec3(0, 4, 0), material.NewTextured(stripes)),
		geometry.NewQuad(core.NewVec3(-6, 0, 3), core.NewVec3(12, 0, 0), core.NewVec3(0, 0, -5), material.NewTextured(floorTex)),
	)

	// Spheres of increasing refractive index: water, glass, sapphire, diamond
	for i, ior := range []float64{1.33, 1.5, 1.77, 2.42} {
		x := -1.8 + float64(i)*1.2
		s.Add(geometry.NewSphere(core.NewVec3(x, 0.5, 0), 0.5, material.NewDielectric(ior)))
	}

	// Triangular prism as a closed glass mesh
	prism := geometry.NewTriangleMesh(
		[]core.Vec3{
			core.NewVec3(-0.4, 0, 1.2), core.NewVec3(0.4, 0, 1.2), core.NewVec3(0, 0.7, 1.2),
			core.NewVec3(-0.4, 0, 1.8), core.NewVec3(0.4, 0, 1.8), core.NewVec3(0, 0.7, 1.8),
		},
		[]int{
			0, 2, 1, // front cap
			3, 4, 5, // back cap
			0, 1, 4, 0, 4, 3, // bottom
			1, 2, 5, 1, 5, 4, // right slope
			2, 0, 3, 2, 3, 5, // left slope
		},
		material.NewDielectric(1.5),
		nil,
	)
	s.Add(prism)

	// Overhead area light
	s.AddQuadLight(
		core.NewVec3(-1.5, 4, -1),
		core.NewVec3(3, 0, 0),
		core.NewVec3(0, 0, 2),
		core.NewVec3(8, 8, 8),
	)

	return s
}
