package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/loaders"
)

// ErrUnknownScene is returned when a scene ID matches no built-in scene
var ErrUnknownScene = errors.New("scene: unknown scene")

// DefaultSceneID is the built-in scene rendered when none is requested
const DefaultSceneID = "spheres"

const builtinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Unique identifier
	Name        string // Scene name
	DisplayName string // Display name
	Description string // Optional description
	Group       string // Grouping category
	Type        string // "builtin" or "gltf"
	FilePath    string // Path to the glTF file (gltf type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string
	Scenes []SceneInfo
}

type builtinScene struct {
	info        SceneInfo
	constructor func(...CameraOverride) *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "spheres",
			Name:        "Spheres",
			Description: "Diffuse, metal and glass spheres on a ground sphere under a sky",
		},
		constructor: NewSpheresScene,
	},
	{
		info: SceneInfo{
			ID:          "cornell",
			Name:        "Cornell Box",
			Description: "Cornell box built from triangles with a ceiling light, a mirror and a glass sphere",
		},
		constructor: NewCornellScene,
	},
	{
		info: SceneInfo{
			ID:          "glass",
			Name:        "Glass",
			Description: "Dielectric spheres of increasing refractive index and a glass prism",
		},
		constructor: NewGlassScene,
	},
	{
		info: SceneInfo{
			ID:          "textured",
			Name:        "Textured",
			Description: "Procedural textures mapped onto spheres, quads and triangles",
		},
		constructor: NewTexturedScene,
	},
}

// BuiltinScenes returns metadata for every built-in scene in registration order
func BuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = "builtin"
		scenes[i] = info
	}
	return scenes
}

// NewBuiltin creates the built-in scene with the given ID, applying camera overrides.
// The resulting camera configuration is validated.
func NewBuiltin(id string, cameraOverrides ...CameraOverride) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			s := b.constructor()
			if err := s.ApplyCameraOverrides(cameraOverrides...); err != nil {
				return nil, fmt.Errorf("scene %q: %w", id, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// ListGLTFScenes scans dir for .gltf and .glb files and returns their metadata.
// A missing directory yields an empty list.
func ListGLTFScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.gltf", "*.glb"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		scenes = append(scenes, ParseGLTFMetadata(filePath))
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseGLTFMetadata extracts scene metadata from a glTF file, falling back to
// values derived from the file name when the document carries none
func ParseGLTFMetadata(filePath string) SceneInfo {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          fmt.Sprintf("gltf:%s", nameWithoutExt),
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "glTF Scenes", // Default group
		Type:        "gltf",
		FilePath:    filePath,
	}

	info, err := loaders.ReadGLTFInfo(filePath)
	if err != nil {
		sceneInfo.Description = fmt.Sprintf("unreadable: %v", err)
		return sceneInfo
	}

	if info.SceneName != "" {
		sceneInfo.Name = info.SceneName
		sceneInfo.DisplayName = info.SceneName
	}
	if info.Description != "" {
		sceneInfo.Description = info.Description
	} else {
		sceneInfo.Description = fmt.Sprintf("%d meshes, %d triangles", info.Meshes, info.Triangles)
	}
	if info.Group != "" {
		sceneInfo.Group = info.Group
	}

	return sceneInfo
}

// ListAllScenes returns both built-in and glTF scenes found in dir, grouped by category
func ListAllScenes(dir string) ([]SceneGroup, error) {
	gltfScenes, err := ListGLTFScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list glTF scenes: %w", err)
	}

	allScenes := append(BuiltinScenes(), gltfScenes...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	groups := []SceneGroup{{Name: builtinGroup, Scenes: groupMap[builtinGroup]}}
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return groups, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
