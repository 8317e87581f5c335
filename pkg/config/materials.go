package config

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// Vector is a 3-component YAML sequence, e.g. [0.8, 0.3, 0.3]
type Vector []float64

// IsSet reports whether the vector was present in the YAML
func (v Vector) IsSet() bool {
	return len(v) > 0
}

// Vec3 converts the vector; an unset vector is the zero vector
func (v Vector) Vec3() core.Vec3 {
	if len(v) != 3 {
		return core.Vec3{}
	}
	return core.NewVec3(v[0], v[1], v[2])
}

func (v Vector) validate() error {
	if len(v) != 0 && len(v) != 3 {
		return fmt.Errorf("%w, got %d", ErrInvalidVector, len(v))
	}
	return nil
}

// MaterialSpec describes a material in YAML
type MaterialSpec struct {
	Type     string       `yaml:"type"` // lambertian, metal, dielectric, light, textured
	Albedo   Vector       `yaml:"albedo"`
	Fuzz     float64      `yaml:"fuzz"`
	IOR      float64      `yaml:"ior"`
	Emission Vector       `yaml:"emission"`
	Texture  *TextureSpec `yaml:"texture"`
}

// TextureSpec describes an image or procedural texture for textured materials
type TextureSpec struct {
	Type   string   `yaml:"type"` // image, checkerboard, uv_debug, gradient
	Path   string   `yaml:"path"`
	Size   int      `yaml:"size"`   // Procedural texture resolution
	Check  int      `yaml:"check"`  // Checker square size in pixels
	Colors []Vector `yaml:"colors"` // Two colors for checkerboard and gradient
}

const defaultProceduralSize = 256

func (m MaterialSpec) validate() error {
	for _, v := range []Vector{m.Albedo, m.Emission} {
		if err := v.validate(); err != nil {
			return err
		}
	}

	switch m.Type {
	case "lambertian", "metal", "light":
	case "dielectric":
		if m.IOR <= 0 {
			return fmt.Errorf("dielectric ior must be positive, got %g", m.IOR)
		}
	case "textured":
		if m.Texture == nil {
			return fmt.Errorf("textured material needs a texture")
		}
		return m.Texture.validate()
	default:
		return fmt.Errorf("%w %q", ErrUnknownMaterialType, m.Type)
	}
	return nil
}

func (t TextureSpec) validate() error {
	for _, c := range t.Colors {
		if err := c.validate(); err != nil {
			return err
		}
	}
	switch t.Type {
	case "image":
		if t.Path == "" {
			return fmt.Errorf("image texture needs a path")
		}
	case "checkerboard", "gradient":
		if len(t.Colors) != 2 {
			return fmt.Errorf("%s texture needs 2 colors, got %d", t.Type, len(t.Colors))
		}
	case "uv_debug":
	default:
		return fmt.Errorf("%w %q", ErrUnknownTextureType, t.Type)
	}
	return nil
}

// BuildMaterial turns a material spec into a material. Relative texture paths are
// resolved against the configuration file's directory.
func (c *Config) BuildMaterial(spec MaterialSpec) (material.Material, error) {
	switch spec.Type {
	case "lambertian":
		return material.NewLambertian(spec.Albedo.Vec3()), nil
	case "metal":
		return material.NewMetal(spec.Albedo.Vec3(), spec.Fuzz), nil
	case "dielectric":
		return material.NewDielectric(spec.IOR), nil
	case "light":
		return material.NewLight(spec.Emission.Vec3()), nil
	case "textured":
		if spec.Texture == nil {
			return nil, fmt.Errorf("textured material needs a texture")
		}
		tex, err := c.buildTexture(*spec.Texture)
		if err != nil {
			return nil, err
		}
		return material.NewTextured(tex), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownMaterialType, spec.Type)
}

func (c *Config) buildTexture(spec TextureSpec) (*texture.Texture, error) {
	size := spec.Size
	if size <= 0 {
		size = defaultProceduralSize
	}

	switch spec.Type {
	case "image":
		return loaders.LoadTexture(c.resolve(spec.Path))
	case "checkerboard":
		check := spec.Check
		if check <= 0 {
			check = max(1, size/8)
		}
		return texture.NewCheckerboard(size, size, check, spec.Colors[0].Vec3(), spec.Colors[1].Vec3()), nil
	case "gradient":
		return texture.NewGradient(size, size, spec.Colors[0].Vec3(), spec.Colors[1].Vec3()), nil
	case "uv_debug":
		return texture.NewUVDebug(size, size), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownTextureType, spec.Type)
}

// BuildMaterials builds every named material
func (c *Config) BuildMaterials() (map[string]material.Material, error) {
	materials := make(map[string]material.Material, len(c.Materials))
	for name, spec := range c.Materials {
		m, err := c.BuildMaterial(spec)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}
	return materials, nil
}

// BuildBindings maps glTF mesh or material names to built materials
func (c *Config) BuildBindings(materials map[string]material.Material) (loaders.MaterialBindings, error) {
	bindings := make(loaders.MaterialBindings, len(c.Bindings))
	for mesh, name := range c.Bindings {
		m, ok := materials[name]
		if !ok {
			return nil, fmt.Errorf("binding %q: %w %q", mesh, ErrUnknownMaterial, name)
		}
		bindings[mesh] = m
	}
	return bindings, nil
}
