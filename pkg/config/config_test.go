package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const cornellExtras = `
scene: cornell
render:
  seed: 7
  workers: 2
camera:
  height: 40
  samples_per_pixel: 4
  max_depth: 8
materials:
  lamp:
    type: light
    emission: [4, 4, 4]
  chrome:
    type: metal
    albedo: [0.9, 0.9, 0.9]
    fuzz: 0.1
objects:
  - type: triangle
    material: lamp
    vertices: [[0, 1, -1], [1, 1, -1], [0, 1, 0]]
  - type: sphere
    material: chrome
    center: [0, 0.3, -0.5]
    radius: 0.2
output:
  path: cornell.png
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(cornellExtras))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Scene != "cornell" {
		t.Errorf("Expected scene cornell, got %q", cfg.Scene)
	}
	if cfg.Render.Seed != 7 || cfg.Render.Workers != 2 {
		t.Errorf("Expected seed 7 and 2 workers, got %d and %d", cfg.Render.Seed, cfg.Render.Workers)
	}
	if cfg.Camera.Height == nil || *cfg.Camera.Height != 40 {
		t.Errorf("Expected height 40, got %v", cfg.Camera.Height)
	}
	if cfg.Camera.VFov != nil {
		t.Errorf("Expected vfov unset, got %v", *cfg.Camera.VFov)
	}
	if len(cfg.Materials) != 2 || len(cfg.Objects) != 2 {
		t.Errorf("Expected 2 materials and 2 objects, got %d and %d", len(cfg.Materials), len(cfg.Objects))
	}
	if cfg.Output.Path != "cornell.png" {
		t.Errorf("Expected output cornell.png, got %q", cfg.Output.Path)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	expected := Default()
	if cfg.Render != expected.Render || cfg.Output != expected.Output || cfg.Scene != "" {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name     string
		yaml     string
		expected error
	}{
		{"zero depth", "camera: {max_depth: 0}", ErrInvalidMaxDepth},
		{"depth above limit", "camera: {max_depth: 1025}", ErrInvalidMaxDepth},
		{"fov too wide", "camera: {vfov: 180}", ErrInvalidFov},
		{"fov zero", "camera: {vfov: 0}", ErrInvalidFov},
		{"zero height", "camera: {height: 0}", ErrInvalidImageSize},
		{"negative aspect", "camera: {aspect_ratio: -1}", ErrInvalidImageSize},
		{"zero samples", "camera: {samples_per_pixel: 0}", ErrInvalidSamples},
		{"short vector", "camera: {position: [1, 2]}", ErrInvalidVector},
		{"negative workers", "render: {workers: -1}", ErrInvalidWorkerOptions},
		{
			"unknown material type",
			"materials: {x: {type: plasma}}",
			ErrUnknownMaterialType,
		},
		{
			"unknown material reference",
			"objects: [{type: sphere, material: missing, center: [0, 0, 0], radius: 1}]",
			ErrUnknownMaterial,
		},
		{
			"unknown object type",
			"materials: {m: {type: lambertian, albedo: [1, 1, 1]}}\nobjects: [{type: torus, material: m}]",
			ErrUnknownObjectType,
		},
		{
			"sphere without radius",
			"materials: {m: {type: lambertian}}\nobjects: [{type: sphere, material: m, center: [0, 0, 0]}]",
			ErrInvalidObject,
		},
		{
			"triangle with two vertices",
			"materials: {m: {type: lambertian}}\nobjects: [{type: triangle, material: m, vertices: [[0, 0, 0], [1, 0, 0]]}]",
			ErrInvalidObject,
		},
		{
			"unknown binding material",
			"bindings: {Floor: missing}",
			ErrUnknownMaterial,
		},
		{
			"unknown texture type",
			"materials: {m: {type: textured, texture: {type: noise}}}",
			ErrUnknownTextureType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("camera: {zoom: 2}")); err == nil {
		t.Error("Expected unknown field to be rejected")
	}
}

func TestParse_DepthLimitAccepted(t *testing.T) {
	for _, yaml := range []string{"camera: {max_depth: 1}", "camera: {max_depth: 1024}"} {
		if _, err := Parse([]byte(yaml)); err != nil {
			t.Errorf("Parse(%q) failed: %v", yaml, err)
		}
	}
}

func TestBuildMaterial(t *testing.T) {
	cfg := Default()

	testCases := []struct {
		name  string
		spec  MaterialSpec
		check func(t *testing.T, m material.Material)
	}{
		{
			name: "lambertian",
			spec: MaterialSpec{Type: "lambertian", Albedo: Vector{0.5, 0.25, 1}},
			check: func(t *testing.T, m material.Material) {
				l, ok := m.(*material.Lambertian)
				if !ok || l.Albedo.Evaluate(core.Vec2{}, core.Vec3{}) != core.NewVec3(0.5, 0.25, 1) {
					t.Errorf("Expected lambertian (0.5,0.25,1), got %#v", m)
				}
			},
		},
		{
			name: "metal fuzz is clamped",
			spec: MaterialSpec{Type: "metal", Albedo: Vector{1, 1, 1}, Fuzz: 3},
			check: func(t *testing.T, m material.Material) {
				metal, ok := m.(*material.Metal)
				if !ok || metal.Fuzzness != 1 {
					t.Errorf("Expected metal with fuzz 1, got %#v", m)
				}
			},
		},
		{
			name: "dielectric",
			spec: MaterialSpec{Type: "dielectric", IOR: 1.33},
			check: func(t *testing.T, m material.Material) {
				d, ok := m.(*material.Dielectric)
				if !ok || d.RefractiveIndex != 1.33 {
					t.Errorf("Expected dielectric 1.33, got %#v", m)
				}
			},
		},
		{
			name: "light",
			spec: MaterialSpec{Type: "light", Emission: Vector{4, 4, 4}},
			check: func(t *testing.T, m material.Material) {
				e, ok := m.(material.Emitter)
				if !ok || e.Emit() != core.NewVec3(4, 4, 4) {
					t.Errorf("Expected light (4,4,4), got %#v", m)
				}
			},
		},
		{
			name: "checkerboard texture",
			spec: MaterialSpec{Type: "textured", Texture: &TextureSpec{
				Type: "checkerboard", Size: 4, Check: 2, Colors: []Vector{{1, 1, 1}, {0, 0, 0}},
			}},
			check: func(t *testing.T, m material.Material) {
				l, ok := m.(*material.Lambertian)
				if !ok {
					t.Fatalf("Expected textured lambertian, got %T", m)
				}
				// Bottom-left check of a 4x4 board with 2px squares is the second color
				if got := l.Albedo.Evaluate(core.NewVec2(0.1, 0.1), core.Vec3{}); got != (core.Vec3{}) {
					t.Errorf("Expected black check, got %v", got)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := cfg.BuildMaterial(tc.spec)
			if err != nil {
				t.Fatalf("BuildMaterial failed: %v", err)
			}
			tc.check(t, m)
		})
	}
}

func TestBuildObjects(t *testing.T) {
	cfg, err := Parse([]byte(cornellExtras))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	materials, err := cfg.BuildMaterials()
	if err != nil {
		t.Fatalf("BuildMaterials failed: %v", err)
	}
	shapes, err := cfg.BuildObjects(materials)
	if err != nil {
		t.Fatalf("BuildObjects failed: %v", err)
	}

	if len(shapes) != 2 {
		t.Fatalf("Expected 2 shapes, got %d", len(shapes))
	}
	tri, ok := shapes[0].(*geometry.Triangle)
	if !ok {
		t.Fatalf("Expected triangle first, got %T", shapes[0])
	}
	if tri.Material != materials["lamp"] {
		t.Error("Expected triangle to use the lamp material")
	}
	sphere, ok := shapes[1].(*geometry.Sphere)
	if !ok || sphere.Radius != 0.2 || sphere.Center != core.NewVec3(0, 0.3, -0.5) {
		t.Errorf("Expected chrome sphere, got %#v", shapes[1])
	}
}

func TestBuildObject_Quad(t *testing.T) {
	materials := map[string]material.Material{"m": material.NewLambertian(core.NewVec3(1, 1, 1))}
	spec := ObjectSpec{Type: "quad", Material: "m", Corner: Vector{0, 0, 0}, U: Vector{1, 0, 0}, V: Vector{0, 1, 0}}

	shape, err := BuildObject(spec, materials)
	if err != nil {
		t.Fatalf("BuildObject failed: %v", err)
	}
	mesh, ok := shape.(*geometry.TriangleMesh)
	if !ok || mesh.GetTriangleCount() != 2 {
		t.Errorf("Expected 2-triangle mesh, got %#v", shape)
	}
}

func TestBuildObject_RotatedQuad(t *testing.T) {
	materials := map[string]material.Material{"m": material.NewLambertian(core.NewVec3(1, 1, 1))}
	// A floor quad centered on the origin, tipped up to face +Z
	spec := ObjectSpec{
		Type: "quad", Material: "m",
		Corner: Vector{-1, 0, 1}, U: Vector{2, 0, 0}, V: Vector{0, 0, -2},
		Rotation: Vector{90, 0, 0},
	}

	shape, err := BuildObject(spec, materials)
	if err != nil {
		t.Fatalf("BuildObject failed: %v", err)
	}
	hit, ok := shape.Hit(core.NewRay(core.NewVec3(0.5, -0.3, 3), core.NewVec3(0, 0, -1)), core.HitEpsilon, math.Inf(1))
	if !ok {
		t.Fatal("Expected the rotated quad to face +Z")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected hit at t=3, got %f", hit.T)
	}

	// An explicit pivot moves the rotated quad
	spec.Center = Vector{0, 0, 3}
	shape, err = BuildObject(spec, materials)
	if err != nil {
		t.Fatalf("BuildObject failed: %v", err)
	}
	if _, ok := shape.Hit(core.NewRay(core.NewVec3(0.5, -0.3, 3), core.NewVec3(0, 0, -1)), core.HitEpsilon, math.Inf(1)); ok {
		t.Error("Expected the quad pivoted off-center to be missed")
	}

	sphere := ObjectSpec{Type: "sphere", Material: "m", Center: Vector{0, 0, 0}, Radius: 1, Rotation: Vector{0, 45, 0}}
	if _, err := BuildObject(sphere, materials); !errors.Is(err, ErrInvalidObject) {
		t.Errorf("Expected %v for a rotated sphere, got %v", ErrInvalidObject, err)
	}
}

func TestCameraOverride(t *testing.T) {
	vfov := 35.0
	spp := 9
	cfg := Default()
	cfg.Camera = CameraConfig{
		Position:        Vector{1, 2, 3},
		Up:              Vector{0, 0, 1},
		VFov:            &vfov,
		SamplesPerPixel: &spp,
	}

	config := renderer.DefaultCameraConfig()
	cfg.CameraOverride()(&config)

	if config.Position != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected position override, got %v", config.Position)
	}
	if config.Up == nil || *config.Up != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected up override, got %v", config.Up)
	}
	if config.VFov != 35 || config.SamplesPerPixel != 9 {
		t.Errorf("Expected vfov 35 and 9 spp, got %f and %d", config.VFov, config.SamplesPerPixel)
	}

	// Unset fields keep the scene's values
	defaults := renderer.DefaultCameraConfig()
	if config.LookAt != defaults.LookAt || config.Height != defaults.Height || config.MaxDepth != defaults.MaxDepth {
		t.Error("Expected unset fields to be left alone")
	}
}

func TestBuildScene(t *testing.T) {
	cfg, err := Parse([]byte(cornellExtras))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	s, err := cfg.BuildScene(t.TempDir())
	if err != nil {
		t.Fatalf("BuildScene failed: %v", err)
	}
	if s.Name != "cornell" {
		t.Errorf("Expected cornell base scene, got %q", s.Name)
	}
	if s.Camera.Height() != 40 || s.Camera.SamplesPerPixel() != 4 || s.Camera.MaxDepth() != 8 {
		t.Errorf("Expected camera overrides applied, got height=%d spp=%d depth=%d",
			s.Camera.Height(), s.Camera.SamplesPerPixel(), s.Camera.MaxDepth())
	}

	base, err := Default().BuildScene(t.TempDir())
	if err != nil {
		t.Fatalf("BuildScene failed: %v", err)
	}
	if base.Name == "custom" {
		t.Error("Expected the default built-in scene when nothing is configured")
	}

	cornell, err := Parse([]byte("scene: cornell"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	plain, err := cornell.BuildScene(t.TempDir())
	if err != nil {
		t.Fatalf("BuildScene failed: %v", err)
	}
	if len(s.Shapes) != len(plain.Shapes)+2 {
		t.Errorf("Expected 2 extra shapes, got %d vs %d", len(s.Shapes), len(plain.Shapes))
	}
}

func TestBuildScene_CustomObjectsOnly(t *testing.T) {
	cfg, err := Parse([]byte(`
materials:
  lamp: {type: light, emission: [4, 4, 4]}
objects:
  - {type: triangle, material: lamp, vertices: [[-10, -10, -1], [10, -10, -1], [0, 10, -1]]}
camera:
  height: 4
  aspect_ratio: 1
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	s, err := cfg.BuildScene("")
	if err != nil {
		t.Fatalf("BuildScene failed: %v", err)
	}
	if s.Name != "custom" || len(s.Shapes) != 1 {
		t.Fatalf("Expected custom scene with 1 shape, got %q with %d", s.Name, len(s.Shapes))
	}

	tex, _ := renderer.NewRaytracer(s, 1).Render()
	for i, b := range tex.RGBBuffer() {
		if b != 255 {
			t.Fatalf("Byte %d: expected saturated 255, got %d", i, b)
		}
	}
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	if err := os.WriteFile(path, []byte("scene: models/box.glb\noutput: {path: out.png}"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.resolve(cfg.Scene); got != filepath.Join(dir, "models", "box.glb") {
		t.Errorf("Expected path relative to config, got %q", got)
	}
	if got := cfg.resolve("/abs/tex.png"); got != "/abs/tex.png" {
		t.Errorf("Expected absolute path untouched, got %q", got)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(cornellExtras))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Scene != cfg.Scene || len(loaded.Objects) != len(cfg.Objects) || *loaded.Camera.Height != 40 {
		t.Errorf("Expected saved config to load back, got %+v", loaded)
	}
}
