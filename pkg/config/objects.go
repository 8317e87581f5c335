package config

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ObjectSpec describes a shape in YAML
type ObjectSpec struct {
	Type     string   `yaml:"type"` // sphere, triangle, quad
	Material string   `yaml:"material"`
	Center   Vector   `yaml:"center"` // Sphere center, or the pivot of a rotated quad
	Radius   float64  `yaml:"radius"`
	Vertices []Vector `yaml:"vertices"`
	Corner   Vector   `yaml:"corner"`
	U        Vector   `yaml:"u"`
	V        Vector   `yaml:"v"`
	Rotation Vector   `yaml:"rotation"` // Quad rotation in degrees about X, then Y, then Z
}

func (o ObjectSpec) validate() error {
	for _, v := range append([]Vector{o.Center, o.Corner, o.U, o.V, o.Rotation}, o.Vertices...) {
		if err := v.validate(); err != nil {
			return err
		}
	}

	if o.Rotation.IsSet() && o.Type != "quad" {
		return fmt.Errorf("%w: only quads can be rotated", ErrInvalidObject)
	}

	switch o.Type {
	case "sphere":
		if !o.Center.IsSet() || o.Radius <= 0 {
			return fmt.Errorf("%w: sphere needs a center and a positive radius", ErrInvalidObject)
		}
	case "triangle":
		if len(o.Vertices) != 3 {
			return fmt.Errorf("%w: triangle needs 3 vertices, got %d", ErrInvalidObject, len(o.Vertices))
		}
		for _, v := range o.Vertices {
			if !v.IsSet() {
				return fmt.Errorf("%w: triangle vertex is empty", ErrInvalidObject)
			}
		}
	case "quad":
		if !o.Corner.IsSet() || !o.U.IsSet() || !o.V.IsSet() {
			return fmt.Errorf("%w: quad needs corner, u and v", ErrInvalidObject)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownObjectType, o.Type)
	}
	return nil
}

// BuildObject turns an object spec into a shape using already built materials
func BuildObject(spec ObjectSpec, materials map[string]material.Material) (geometry.Shape, error) {
	mat, ok := materials[spec.Material]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMaterial, spec.Material)
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}

	switch spec.Type {
	case "sphere":
		return geometry.NewSphere(spec.Center.Vec3(), spec.Radius, mat), nil
	case "triangle":
		return geometry.NewFlatTriangle(spec.Vertices[0].Vec3(), spec.Vertices[1].Vec3(), spec.Vertices[2].Vec3(), mat), nil
	case "quad":
		corner, u, v := spec.Corner.Vec3(), spec.U.Vec3(), spec.V.Vec3()
		if !spec.Rotation.IsSet() {
			return geometry.NewQuad(corner, u, v, mat), nil
		}
		pivot := corner.Add(u.Add(v).Multiply(0.5))
		if spec.Center.IsSet() {
			pivot = spec.Center.Vec3()
		}
		rotation := spec.Rotation.Vec3().Multiply(math.Pi / 180)
		return geometry.NewRotatedQuad(corner, u, v, rotation, pivot, mat), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownObjectType, spec.Type)
}

// BuildObjects builds every configured object in order
func (c *Config) BuildObjects(materials map[string]material.Material) ([]geometry.Shape, error) {
	shapes := make([]geometry.Shape, 0, len(c.Objects))
	for i, spec := range c.Objects {
		shape, err := BuildObject(spec, materials)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

