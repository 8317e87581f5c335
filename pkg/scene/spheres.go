package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewSpheresScene creates the default scene: three spheres on a large ground sphere under a sky
func NewSpheresScene(cameraOverrides ...CameraOverride) *Scene {
	config := renderer.DefaultCameraConfig()
	config.Position = core.NewVec3(0, 0.75, 2)
	config.LookAt = core.NewVec3(0, 0.5, -1)
	config.VFov = 40.0
	config.Height = 450
	config.AspectRatio = 16.0 / 9.0
	config.SamplesPerPixel = 64
	config.MaxDepth = 20
	config.Background = core.NewVec3(0.7, 0.8, 1.0) // sky

	s := New("spheres", applyOverrides(config, cameraOverrides))

	// Create materials
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGreen), // ground
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, materialGlass),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.3), 0.25, materialGlass),
	)

	// Warm light above and behind the camera
	s.Add(geometry.NewSphere(core.NewVec3(30, 30.5, 15), 10, material.NewLight(core.NewVec3(15.0, 14.0, 13.0))))

	return s
}
