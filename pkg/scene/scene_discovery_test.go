package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestBuiltinScenes(t *testing.T) {
	scenes := BuiltinScenes()
	if len(scenes) != len(builtinScenes) {
		t.Fatalf("Expected %d scenes, got %d", len(builtinScenes), len(scenes))
	}
	if scenes[0].ID != DefaultSceneID {
		t.Errorf("Expected default scene %q first, got %q", DefaultSceneID, scenes[0].ID)
	}

	seen := make(map[string]bool)
	for _, info := range scenes {
		if seen[info.ID] {
			t.Errorf("Duplicate scene ID %q", info.ID)
		}
		seen[info.ID] = true

		if info.Type != "builtin" || info.Group != builtinGroup {
			t.Errorf("%s: expected builtin type and group, got %q/%q", info.ID, info.Type, info.Group)
		}
		if info.DisplayName == "" || info.Description == "" {
			t.Errorf("%s: expected display name and description", info.ID)
		}
	}
}

func TestNewBuiltin(t *testing.T) {
	testCases := []struct {
		name      string
		id        string
		overrides []CameraOverride
		expected  error
	}{
		{name: "default scene", id: DefaultSceneID},
		{
			name: "valid override",
			id:   "cornell",
			overrides: []CameraOverride{func(c *renderer.CameraConfig) {
				c.Height = 20
				c.SamplesPerPixel = 2
			}},
		},
		{name: "unknown scene", id: "teapot", expected: ErrUnknownScene},
		{
			name: "invalid override",
			id:   "glass",
			overrides: []CameraOverride{func(c *renderer.CameraConfig) {
				c.VFov = 180
			}},
			expected: renderer.ErrInvalidFov,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewBuiltin(tc.id, tc.overrides...)
			if tc.expected != nil {
				if !errors.Is(err, tc.expected) {
					t.Errorf("Expected %v, got %v", tc.expected, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBuiltin(%q) failed: %v", tc.id, err)
			}
			if s.Name != tc.id {
				t.Errorf("Expected scene name %q, got %q", tc.id, s.Name)
			}
		})
	}
}

func TestNewBuiltin_OverrideApplied(t *testing.T) {
	s, err := NewBuiltin("spheres", func(c *renderer.CameraConfig) {
		c.Height = 30
		c.SamplesPerPixel = 3
	})
	if err != nil {
		t.Fatalf("NewBuiltin failed: %v", err)
	}
	if s.Camera.Height() != 30 || s.Camera.SamplesPerPixel() != 3 {
		t.Errorf("Expected height 30 and 3 spp, got %d and %d", s.Camera.Height(), s.Camera.SamplesPerPixel())
	}
}

func TestListGLTFScenes_MissingDirectory(t *testing.T) {
	scenes, err := ListGLTFScenes(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestListGLTFScenes_UnreadableFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken-box.gltf"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	scenes, err := ListGLTFScenes(dir)
	if err != nil {
		t.Fatalf("ListGLTFScenes failed: %v", err)
	}
	if len(scenes) != 1 {
		t.Fatalf("Expected 1 scene, got %d", len(scenes))
	}

	info := scenes[0]
	if info.ID != "gltf:broken-box" || info.DisplayName != "Broken Box" || info.Group != "glTF Scenes" {
		t.Errorf("Expected metadata derived from the file name, got %+v", info)
	}
	if info.Type != "gltf" {
		t.Errorf("Expected gltf type, got %q", info.Type)
	}
}

func TestListAllScenes_BuiltinGroupFirst(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "extra.gltf"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	groups, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != builtinGroup || len(groups[0].Scenes) != len(builtinScenes) {
		t.Errorf("Expected built-in group first with all built-in scenes, got %q with %d", groups[0].Name, len(groups[0].Scenes))
	}
	if groups[1].Name != "glTF Scenes" {
		t.Errorf("Expected glTF group second, got %q", groups[1].Name)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		ref      string
		expected error
	}{
		{name: "empty ref uses default", ref: ""},
		{name: "builtin", ref: "textured"},
		{name: "unknown builtin", ref: "nope", expected: ErrUnknownScene},
		{name: "unknown gltf id", ref: "gltf:nope", expected: ErrUnknownScene},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Open(tc.ref, dir, nil)
			if tc.expected != nil {
				if !errors.Is(err, tc.expected) {
					t.Errorf("Expected %v, got %v", tc.expected, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open(%q) failed: %v", tc.ref, err)
			}
			if len(s.Shapes) == 0 {
				t.Error("Expected shapes")
			}
		})
	}
}

func TestOpen_CorruptGLTFReportsParseError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.gltf"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := Open("gltf:broken", dir, nil)
	if err == nil {
		t.Fatal("Expected error for corrupt glTF file")
	}
	if errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected the parse error, got %v", err)
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	glb := filepath.Join(dir, "box.glb")
	if err := os.WriteFile(glb, []byte("glTF"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	testCases := []struct {
		ref      string
		expected string
		err      error
	}{
		{ref: "gltf:box", expected: glb},
		{ref: "gltf:missing", err: ErrUnknownScene},
		{ref: "models/car.gltf", expected: "models/car.gltf"},
		{ref: "cornell", expected: ""},
	}
	for _, tc := range testCases {
		path, err := ResolvePath(tc.ref, dir)
		if !errors.Is(err, tc.err) {
			t.Errorf("ResolvePath(%q): expected error %v, got %v", tc.ref, tc.err, err)
		}
		if path != tc.expected {
			t.Errorf("ResolvePath(%q) = %q, want %q", tc.ref, path, tc.expected)
		}
	}
}

func TestIsGLTFPath(t *testing.T) {
	testCases := map[string]bool{
		"scene.gltf":      true,
		"dir/SCENE.GLB":   true,
		"scene.yaml":      false,
		"cornell":         false,
		"archive.gltf.gz": false,
	}
	for path, expected := range testCases {
		if got := IsGLTFPath(path); got != expected {
			t.Errorf("IsGLTFPath(%q) = %v, want %v", path, got, expected)
		}
	}
}
