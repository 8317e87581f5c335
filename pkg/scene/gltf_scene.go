package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewGLTFScene imports a glTF file and builds a scene from its camera and meshes.
// Camera overrides are applied on top of the imported camera and validated.
func NewGLTFScene(path string, bindings loaders.MaterialBindings, cameraOverrides ...CameraOverride) (*Scene, error) {
	imported, err := loaders.LoadGLTF(path, bindings)
	if err != nil {
		return nil, err
	}

	config := applyOverrides(imported.Camera, cameraOverrides)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s := &Scene{
		Name:   titleCase(name),
		Camera: renderer.NewCamera(config),
	}
	s.Add(imported.Shapes...)
	return s, nil
}

// IsGLTFPath reports whether path names a .gltf or .glb file
func IsGLTFPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return true
	}
	return false
}

// Open resolves a scene reference: a built-in scene ID, a "gltf:<name>" ID found in
// dir, or a path to a glTF file.
func Open(ref, dir string, bindings loaders.MaterialBindings, cameraOverrides ...CameraOverride) (*Scene, error) {
	if ref == "" {
		ref = DefaultSceneID
	}

	path, err := ResolvePath(ref, dir)
	if err != nil {
		return nil, err
	}
	if path != "" {
		return NewGLTFScene(path, bindings, cameraOverrides...)
	}

	return NewBuiltin(ref, cameraOverrides...)
}

// ResolvePath returns the glTF file a scene reference names, or "" for built-in
// scene IDs. A "gltf:<name>" reference resolves to <name>.gltf or <name>.glb in dir.
func ResolvePath(ref, dir string) (string, error) {
	if name, ok := strings.CutPrefix(ref, "gltf:"); ok {
		for _, ext := range []string{".gltf", ".glb"} {
			path := filepath.Join(dir, name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownScene, ref)
	}

	if IsGLTFPath(ref) {
		return ref, nil
	}
	return "", nil
}
