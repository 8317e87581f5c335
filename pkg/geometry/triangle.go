package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// determinantEpsilon rejects rays nearly parallel to the triangle plane
const determinantEpsilon = 1e-4

// Triangle represents a single triangle with per-vertex normals and texture coordinates
type Triangle struct {
	V0, V1, V2    core.Vec3         // The three vertices
	N0, N1, N2    core.Vec3         // Per-vertex normals
	UV0, UV1, UV2 core.Vec2         // Per-vertex texture coordinates
	Material      material.Material // Material of the triangle
	edge1, edge2  core.Vec3         // Cached V1-V0 and V2-V0
}

// NewTriangle creates a smooth-shaded triangle from vertices, normals and texture coordinates
func NewTriangle(vertices [3]core.Vec3, normals [3]core.Vec3, uvs [3]core.Vec2, material material.Material) *Triangle {
	return &Triangle{
		V0:       vertices[0],
		V1:       vertices[1],
		V2:       vertices[2],
		N0:       normals[0],
		N1:       normals[1],
		N2:       normals[2],
		UV0:      uvs[0],
		UV1:      uvs[1],
		UV2:      uvs[2],
		Material: material,
		edge1:    vertices[1].Subtract(vertices[0]),
		edge2:    vertices[2].Subtract(vertices[0]),
	}
}

// NewFlatTriangle creates a triangle whose normal is the face normal (counter-clockwise winding)
// and whose texture coordinates are all zero
func NewFlatTriangle(v0, v1, v2 core.Vec3, material material.Material) *Triangle {
	normal := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return NewTriangle(
		[3]core.Vec3{v0, v1, v2},
		[3]core.Vec3{normal, normal, normal},
		[3]core.Vec2{},
		material,
	)
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	h := ray.Direction.Cross(t.edge2)
	det := t.edge1.Dot(h)

	// Ray lies in (or nearly in) the plane of the triangle
	if math.Abs(det) < determinantEpsilon {
		return nil, false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(t.edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := f * t.edge2.Dot(q)
	if tHit <= tMin || tHit >= tMax {
		return nil, false
	}

	w := 1.0 - u - v
	normal := t.N0.Multiply(w).Add(t.N1.Multiply(u)).Add(t.N2.Multiply(v)).Normalize()
	uv := t.UV0.Multiply(w).Add(t.UV1.Multiply(u)).Add(t.UV2.Multiply(v))

	facing := material.Front
	if ray.Direction.Dot(normal) >= 0 {
		facing = material.Back
	}

	return &material.HitRecord{
		T:        tHit,
		Point:    ray.At(tHit),
		Normal:   normal,
		Facing:   facing,
		UV:       uv,
		Material: t.Material,
	}, true
}

// Barycentric returns the weights (w0, w1, w2) of point p with respect to the triangle's vertices.
// Weights of points inside the triangle are all in [0, 1] and sum to 1.
func (t *Triangle) Barycentric(p core.Vec3) (float64, float64, float64) {
	v2 := p.Subtract(t.V0)
	d00 := t.edge1.Dot(t.edge1)
	d01 := t.edge1.Dot(t.edge2)
	d11 := t.edge2.Dot(t.edge2)
	d20 := v2.Dot(t.edge1)
	d21 := v2.Dot(t.edge2)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return 1, 0, 0
	}
	u := (d11*d20 - d01*d21) / denom
	v := (d00*d21 - d01*d20) / denom
	return 1 - u - v, u, v
}
