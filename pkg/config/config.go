package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// MaxDepthLimit bounds recursion depth so a configuration cannot exhaust the stack
const MaxDepthLimit = 1024

var (
	ErrInvalidImageSize     = errors.New("config: image height and aspect ratio must be positive")
	ErrInvalidSamples       = errors.New("config: samples per pixel must be positive")
	ErrInvalidMaxDepth      = fmt.Errorf("config: max depth must be in [1, %d]", MaxDepthLimit)
	ErrInvalidFov           = errors.New("config: vfov must be in (0, 180) degrees")
	ErrInvalidVector        = errors.New("config: vectors must have exactly 3 components")
	ErrUnknownMaterial      = errors.New("config: unknown material")
	ErrUnknownMaterialType  = errors.New("config: unknown material type")
	ErrUnknownObjectType    = errors.New("config: unknown object type")
	ErrUnknownTextureType   = errors.New("config: unknown texture type")
	ErrInvalidObject        = errors.New("config: invalid object")
	ErrInvalidWorkerOptions = errors.New("config: workers and tile size must not be negative")
)

// Config describes a render job: which scene to render, camera overrides, extra
// materials and objects, glTF material bindings and the output file
type Config struct {
	Scene     string                  `yaml:"scene"` // Built-in scene ID, "gltf:<name>" or a glTF path
	Render    RenderConfig            `yaml:"render"`
	Camera    CameraConfig            `yaml:"camera"`
	Materials map[string]MaterialSpec `yaml:"materials"`
	Objects   []ObjectSpec            `yaml:"objects"`
	Bindings  map[string]string       `yaml:"bindings"` // glTF mesh or material name -> material name
	Output    OutputConfig            `yaml:"output"`

	dir string // Directory relative paths are resolved against
}

// RenderConfig contains render loop settings
type RenderConfig struct {
	Seed       int64 `yaml:"seed"`
	Workers    int   `yaml:"workers"`   // 0 picks the logical CPU count
	TileSize   int   `yaml:"tile_size"` // 0 uses the renderer default
	Sequential bool  `yaml:"sequential"`
}

// CameraConfig overrides the scene camera. Unset fields keep the scene's values.
type CameraConfig struct {
	Position        Vector   `yaml:"position"`
	LookAt          Vector   `yaml:"look_at"`
	Up              Vector   `yaml:"up"`
	VFov            *float64 `yaml:"vfov"`
	Height          *int     `yaml:"height"`
	AspectRatio     *float64 `yaml:"aspect_ratio"`
	SamplesPerPixel *int     `yaml:"samples_per_pixel"`
	MaxDepth        *int     `yaml:"max_depth"`
	Background      Vector   `yaml:"background"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Path string `yaml:"path"` // Extension selects the image format
}

// Default returns a configuration that renders the default built-in scene
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Seed: 42,
		},
		Output: OutputConfig{
			Path: "output.png",
		},
	}
}

// Load reads and validates a YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %q: %w", path, err)
	}
	return nil
}

// Validate checks value ranges and that every material reference resolves
func (c *Config) Validate() error {
	if err := c.Camera.validate(); err != nil {
		return err
	}
	if c.Render.Workers < 0 || c.Render.TileSize < 0 {
		return ErrInvalidWorkerOptions
	}

	for name, spec := range c.Materials {
		if err := spec.validate(); err != nil {
			return fmt.Errorf("material %q: %w", name, err)
		}
	}

	for i, obj := range c.Objects {
		if err := obj.validate(); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		if _, ok := c.Materials[obj.Material]; !ok {
			return fmt.Errorf("object %d: %w %q", i, ErrUnknownMaterial, obj.Material)
		}
	}

	for mesh, name := range c.Bindings {
		if _, ok := c.Materials[name]; !ok {
			return fmt.Errorf("binding %q: %w %q", mesh, ErrUnknownMaterial, name)
		}
	}
	return nil
}

func (cc CameraConfig) validate() error {
	for _, v := range []Vector{cc.Position, cc.LookAt, cc.Up, cc.Background} {
		if err := v.validate(); err != nil {
			return fmt.Errorf("camera: %w", err)
		}
	}
	if cc.VFov != nil && !(*cc.VFov > 0 && *cc.VFov < 180) {
		return ErrInvalidFov
	}
	if cc.Height != nil && *cc.Height <= 0 {
		return ErrInvalidImageSize
	}
	if cc.AspectRatio != nil && *cc.AspectRatio <= 0 {
		return ErrInvalidImageSize
	}
	if cc.SamplesPerPixel != nil && *cc.SamplesPerPixel <= 0 {
		return ErrInvalidSamples
	}
	if cc.MaxDepth != nil && (*cc.MaxDepth < 1 || *cc.MaxDepth > MaxDepthLimit) {
		return ErrInvalidMaxDepth
	}
	return nil
}

// resolve returns path relative to the configuration file's directory
func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}
