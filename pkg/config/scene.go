package config

import (
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// CameraOverride applies the configured camera fields to a scene camera
func (c *Config) CameraOverride() scene.CameraOverride {
	cc := c.Camera
	return func(config *renderer.CameraConfig) {
		if cc.Position.IsSet() {
			config.Position = cc.Position.Vec3()
		}
		if cc.LookAt.IsSet() {
			config.LookAt = cc.LookAt.Vec3()
		}
		if cc.Up.IsSet() {
			up := cc.Up.Vec3()
			config.Up = &up
		}
		if cc.VFov != nil {
			config.VFov = *cc.VFov
		}
		if cc.Height != nil {
			config.Height = *cc.Height
		}
		if cc.AspectRatio != nil {
			config.AspectRatio = *cc.AspectRatio
		}
		if cc.SamplesPerPixel != nil {
			config.SamplesPerPixel = *cc.SamplesPerPixel
		}
		if cc.MaxDepth != nil {
			config.MaxDepth = *cc.MaxDepth
		}
		if cc.Background.IsSet() {
			config.Background = cc.Background.Vec3()
		}
	}
}

// BuildScene resolves the base scene, applies camera overrides and appends the
// configured objects. With no base scene and some objects, the objects are rendered
// alone under the default camera. gltfDir is searched for "gltf:<name>" scenes.
func (c *Config) BuildScene(gltfDir string) (*scene.Scene, error) {
	materials, err := c.BuildMaterials()
	if err != nil {
		return nil, err
	}
	objects, err := c.BuildObjects(materials)
	if err != nil {
		return nil, err
	}

	var s *scene.Scene
	if c.Scene == "" && len(objects) > 0 {
		s = scene.New("custom", renderer.DefaultCameraConfig())
		if err := s.ApplyCameraOverrides(c.CameraOverride()); err != nil {
			return nil, err
		}
	} else {
		bindings, err := c.BuildBindings(materials)
		if err != nil {
			return nil, err
		}
		ref := c.Scene
		if scene.IsGLTFPath(ref) {
			ref = c.resolve(ref)
		}
		s, err = scene.Open(ref, gltfDir, bindings, c.CameraOverride())
		if err != nil {
			return nil, err
		}
	}

	s.Add(objects...)
	return s, nil
}
