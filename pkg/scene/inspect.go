package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// ErrPixelOutOfBounds is returned when an inspected pixel lies outside the image
var ErrPixelOutOfBounds = errors.New("scene: pixel coordinates out of bounds")

// InspectResult describes the first surface seen through a pixel
type InspectResult struct {
	Hit          bool
	Record       *material.HitRecord
	Shape        geometry.Shape // Top-level scene shape that was hit
	MaterialType string
	GeometryType string
	Properties   map[string]string // Material and geometry properties, prefixed by kind
}

// InspectPixel casts an unjittered ray through the center of pixel (x, y) and
// reports the nearest hit
func (s *Scene) InspectPixel(x, y int) (InspectResult, error) {
	if x < 0 || x >= s.Camera.Width() || y < 0 || y >= s.Camera.Height() {
		return InspectResult{}, fmt.Errorf("%w: (%d, %d)", ErrPixelOutOfBounds, x, y)
	}

	ray := s.Camera.PixelRay(x, y, core.Vec3{})

	result := InspectResult{Properties: make(map[string]string)}
	closest := math.Inf(1)
	for _, shape := range s.Shapes {
		if hit, ok := shape.Hit(ray, core.HitEpsilon, closest); ok {
			closest = hit.T
			result.Hit = true
			result.Record = hit
			result.Shape = shape
		}
	}
	if !result.Hit {
		return result, nil
	}

	var materialProps, geometryProps map[string]string
	result.MaterialType, materialProps = materialInfo(result.Record)
	result.GeometryType, geometryProps = geometryInfo(result.Shape)
	for k, v := range materialProps {
		result.Properties["material."+k] = v
	}
	for k, v := range geometryProps {
		result.Properties["geometry."+k] = v
	}
	return result, nil
}

func formatVec(v core.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// materialInfo extracts material details with type assertions
func materialInfo(hit *material.HitRecord) (string, map[string]string) {
	properties := make(map[string]string)

	switch m := hit.Material.(type) {
	case *material.Lambertian:
		if tex, ok := m.Albedo.(*texture.Texture); ok {
			properties["texture"] = fmt.Sprintf("%dx%d", tex.Width, tex.Height)
		}
		properties["albedo"] = formatVec(m.Albedo.Evaluate(hit.UV, hit.Point))
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = formatVec(m.Albedo)
		properties["fuzzness"] = fmt.Sprintf("%.3f", m.Fuzzness)
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = fmt.Sprintf("%.3f", m.RefractiveIndex)
		return "dielectric", properties

	case *material.Light:
		properties["emission"] = formatVec(m.Emission)
		return "light", properties

	default:
		if emitter, ok := hit.Material.(material.Emitter); ok {
			properties["emission"] = formatVec(emitter.Emit())
			return "emissive", properties
		}
		return "unknown", properties
	}
}

// geometryInfo extracts shape details
func geometryInfo(shape geometry.Shape) (string, map[string]string) {
	properties := make(map[string]string)

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = formatVec(geom.Center)
		properties["radius"] = fmt.Sprintf("%.3f", geom.Radius)
		return "sphere", properties

	case *geometry.Triangle:
		properties["v0"] = formatVec(geom.V0)
		properties["v1"] = formatVec(geom.V1)
		properties["v2"] = formatVec(geom.V2)
		return "triangle", properties

	case *geometry.TriangleMesh:
		properties["triangleCount"] = fmt.Sprintf("%d", geom.GetTriangleCount())
		return "triangle_mesh", properties

	default:
		return "unknown", properties
	}
}
