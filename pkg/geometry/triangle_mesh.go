package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// TriangleMesh represents a collection of triangles sharing a vertex list.
// Intersection is a linear scan over its triangles.
type TriangleMesh struct {
	triangles ShapeList
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals  []core.Vec3 // Optional per-vertex normals (flat face normals when nil)
	UVs      []core.Vec2 // Optional per-vertex texture coordinates
	Rotation *core.Vec3  // Optional rotation (radians) to apply to vertices and normals
	Center   *core.Vec3  // Optional center point for rotation
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices
// vertices: array of 3D points
// faces: array of triangle indices (each group of 3 indices forms a triangle)
// material: material shared by all triangles
// options: optional parameters (can be nil for basic mesh)
func NewTriangleMesh(vertices []core.Vec3, faces []int, material material.Material, options *TriangleMeshOptions) *TriangleMesh {
	if len(faces)%3 != 0 {
		panic("Face indices must be a multiple of 3")
	}

	numTriangles := len(faces) / 3

	// Validate options if provided
	if options != nil {
		if options.Normals != nil && len(options.Normals) != len(vertices) {
			panic("Number of normals must match number of vertices")
		}
		if options.UVs != nil && len(options.UVs) != len(vertices) {
			panic("Number of texture coordinates must match number of vertices")
		}
	}

	// Apply rotation if specified
	workingVertices := vertices
	var workingNormals []core.Vec3
	if options != nil {
		workingNormals = options.Normals
	}
	if options != nil && options.Rotation != nil {
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			// Translate to center, rotate, then translate back
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = rotateVertex(vertex, *options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
			workingVertices[i] = vertex
		}
		if workingNormals != nil {
			rotated := make([]core.Vec3, len(workingNormals))
			for i, n := range workingNormals {
				rotated[i] = rotateVertex(n, *options.Rotation)
			}
			workingNormals = rotated
		}
	}

	triangles := make(ShapeList, numTriangles)

	for i := 0; i < numTriangles; i++ {
		i0 := faces[i*3]
		i1 := faces[i*3+1]
		i2 := faces[i*3+2]

		// Bounds check
		if i0 >= len(workingVertices) || i1 >= len(workingVertices) || i2 >= len(workingVertices) ||
			i0 < 0 || i1 < 0 || i2 < 0 {
			panic("Face index out of bounds")
		}

		v0, v1, v2 := workingVertices[i0], workingVertices[i1], workingVertices[i2]
		if workingNormals == nil && (options == nil || options.UVs == nil) {
			triangles[i] = NewFlatTriangle(v0, v1, v2, material)
			continue
		}

		var normals [3]core.Vec3
		if workingNormals != nil {
			normals = [3]core.Vec3{workingNormals[i0], workingNormals[i1], workingNormals[i2]}
		} else {
			n := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
			normals = [3]core.Vec3{n, n, n}
		}

		var uvs [3]core.Vec2
		if options.UVs != nil {
			uvs = [3]core.Vec2{options.UVs[i0], options.UVs[i1], options.UVs[i2]}
		}

		triangles[i] = NewTriangle([3]core.Vec3{v0, v1, v2}, normals, uvs, material)
	}

	return &TriangleMesh{triangles: triangles}
}

// NewQuad creates a parallelogram mesh spanning corner, corner+u, corner+u+v and corner+v.
// The face normal is u×v and texture coordinates run from (0,0) at corner to (1,1) at corner+u+v.
func NewQuad(corner, u, v core.Vec3, mat material.Material) *TriangleMesh {
	return newQuadMesh(corner, u, v, mat, nil, nil)
}

// NewRotatedQuad is NewQuad rotated about center by rotation, given in radians
// and applied around X, then Y, then Z.
func NewRotatedQuad(corner, u, v, rotation, center core.Vec3, mat material.Material) *TriangleMesh {
	return newQuadMesh(corner, u, v, mat, &rotation, &center)
}

func newQuadMesh(corner, u, v core.Vec3, mat material.Material, rotation, center *core.Vec3) *TriangleMesh {
	normal := u.Cross(v).Normalize()
	vertices := []core.Vec3{corner, corner.Add(u), corner.Add(u).Add(v), corner.Add(v)}
	return NewTriangleMesh(vertices, []int{0, 1, 2, 0, 2, 3}, mat, &TriangleMeshOptions{
		Normals:  []core.Vec3{normal, normal, normal, normal},
		UVs:      []core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1), core.NewVec2(0, 1)},
		Rotation: rotation,
		Center:   center,
	})
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return tm.triangles.Hit(ray, tMin, tMax)
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return len(tm.triangles)
}

// GetTriangles returns the individual triangles
func (tm *TriangleMesh) GetTriangles() []Shape {
	return tm.triangles
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	// Rotation around X axis
	if rotation.X != 0 {
		cos := math.Cos(rotation.X)
		sin := math.Sin(rotation.X)
		y := vertex.Y*cos - vertex.Z*sin
		z := vertex.Y*sin + vertex.Z*cos
		vertex = core.NewVec3(vertex.X, y, z)
	}

	// Rotation around Y axis
	if rotation.Y != 0 {
		cos := math.Cos(rotation.Y)
		sin := math.Sin(rotation.Y)
		x := vertex.X*cos + vertex.Z*sin
		z := -vertex.X*sin + vertex.Z*cos
		vertex = core.NewVec3(x, vertex.Y, z)
	}

	// Rotation around Z axis
	if rotation.Z != 0 {
		cos := math.Cos(rotation.Z)
		sin := math.Sin(rotation.Z)
		x := vertex.X*cos - vertex.Y*sin
		y := vertex.X*sin + vertex.Y*cos
		vertex = core.NewVec3(x, y, vertex.Z)
	}

	return vertex
}
