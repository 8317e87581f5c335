package loaders

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"golang.org/x/image/math/f64"
)

var (
	ErrCameraNotDefined   = errors.New("loaders: no camera defined")
	ErrOrthographicCamera = errors.New("loaders: orthographic cameras are not supported")
	ErrMissingProjection  = errors.New("loaders: camera has no perspective projection")
	ErrInvalidAccessor    = errors.New("loaders: accessor index out of range")
	ErrNodeCycle          = errors.New("loaders: node graph contains a cycle")
	ErrMissingPositions   = errors.New("loaders: primitive has no POSITION attribute")
	ErrInvalidIndices     = errors.New("loaders: primitive indices out of range")
)

// DefaultMeshAlbedo is the Lambertian albedo given to meshes with no bound material
var DefaultMeshAlbedo = core.NewVec3(0.8, 0.8, 0.8)

// MaterialBindings maps glTF mesh names (or glTF material names) to materials
type MaterialBindings map[string]material.Material

// GLTFScene is the result of importing a glTF document
type GLTFScene struct {
	Camera    renderer.CameraConfig // Camera extracted from the first camera node, defaults elsewhere
	Shapes    []geometry.Shape      // One triangle mesh per imported primitive
	Meshes    int                   // Mesh primitives imported
	Triangles int                   // Total triangles imported
	Skipped   int                   // Primitives ignored because they are not TRIANGLES
}

// gltfImporter carries state while walking the node graph
type gltfImporter struct {
	doc             *gltf.Document
	bindings        MaterialBindings
	defaultMaterial material.Material
	scene           *GLTFScene
	cameraFound     bool
	ancestors       map[int]bool
}

// LoadGLTF imports a .gltf or .glb file. Node transforms are composed from the root
// down, the first perspective camera becomes the scene camera, and every TRIANGLES
// primitive becomes a triangle mesh in world space.
func LoadGLTF(path string, bindings MaterialBindings) (*GLTFScene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return importDocument(doc, bindings)
}

func importDocument(doc *gltf.Document, bindings MaterialBindings) (*GLTFScene, error) {
	imp := &gltfImporter{
		doc:             doc,
		bindings:        bindings,
		ancestors:       make(map[int]bool),
		defaultMaterial: material.NewLambertian(DefaultMeshAlbedo),
		scene: &GLTFScene{
			Camera: renderer.DefaultCameraConfig(),
		},
	}

	for _, root := range rootNodes(doc) {
		if err := imp.visit(root, identity); err != nil {
			return nil, err
		}
	}

	if !imp.cameraFound {
		return nil, ErrCameraNotDefined
	}
	return imp.scene, nil
}

// rootNodes returns the nodes of the default scene, or of every scene when none is set
func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	var roots []int
	for _, s := range doc.Scenes {
		roots = append(roots, s.Nodes...)
	}
	return roots
}

func (imp *gltfImporter) visit(nodeIdx int, parent f64.Mat4) error {
	if nodeIdx < 0 || nodeIdx >= len(imp.doc.Nodes) {
		return fmt.Errorf("loaders: node index %d out of range", nodeIdx)
	}
	if imp.ancestors[nodeIdx] {
		return fmt.Errorf("%w at node %d", ErrNodeCycle, nodeIdx)
	}
	imp.ancestors[nodeIdx] = true
	defer delete(imp.ancestors, nodeIdx)

	node := imp.doc.Nodes[nodeIdx]
	world := mulMat4(parent, localTransform(node))

	if node.Camera != nil && !imp.cameraFound {
		if err := imp.loadCamera(*node.Camera, world); err != nil {
			return err
		}
	}

	if node.Mesh != nil {
		if err := imp.loadMesh(*node.Mesh, world); err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
	}

	for _, child := range node.Children {
		if err := imp.visit(child, world); err != nil {
			return err
		}
	}
	return nil
}

func (imp *gltfImporter) loadCamera(cameraIdx int, world f64.Mat4) error {
	if cameraIdx < 0 || cameraIdx >= len(imp.doc.Cameras) {
		return fmt.Errorf("loaders: camera index %d out of range", cameraIdx)
	}
	cam := imp.doc.Cameras[cameraIdx]
	if cam.Orthographic != nil {
		return ErrOrthographicCamera
	}
	if cam.Perspective == nil {
		return ErrMissingProjection
	}

	// glTF cameras look down -Z with +Y up in their local frame
	position := transformPoint(world, core.Vec3{})
	forward := transformVector(world, core.NewVec3(0, 0, -1))
	up := transformVector(world, core.NewVec3(0, 1, 0))

	config := &imp.scene.Camera
	config.Position = position
	config.LookAt = position.Add(forward)
	config.Up = &up
	config.VFov = cam.Perspective.Yfov * 180 / math.Pi
	if cam.Perspective.AspectRatio != nil && *cam.Perspective.AspectRatio > 0 {
		config.AspectRatio = *cam.Perspective.AspectRatio
	}

	imp.cameraFound = true
	return nil
}

func (imp *gltfImporter) loadMesh(meshIdx int, world f64.Mat4) error {
	if meshIdx < 0 || meshIdx >= len(imp.doc.Meshes) {
		return fmt.Errorf("loaders: mesh index %d out of range", meshIdx)
	}
	mesh := imp.doc.Meshes[meshIdx]
	normals := normalMatrix(world)

	for primIdx, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			imp.scene.Skipped++
			continue
		}

		shape, triangles, err := imp.loadPrimitive(prim, world, normals, imp.materialFor(mesh, prim))
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, primIdx, err)
		}
		if triangles == 0 {
			continue
		}

		imp.scene.Shapes = append(imp.scene.Shapes, shape)
		imp.scene.Meshes++
		imp.scene.Triangles += triangles
	}
	return nil
}

// materialFor resolves a binding by mesh name first, then by glTF material name
func (imp *gltfImporter) materialFor(mesh *gltf.Mesh, prim *gltf.Primitive) material.Material {
	if m, ok := imp.bindings[mesh.Name]; ok && m != nil {
		return m
	}
	if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(imp.doc.Materials) {
		if m, ok := imp.bindings[imp.doc.Materials[*prim.Material].Name]; ok && m != nil {
			return m
		}
	}
	return imp.defaultMaterial
}

func (imp *gltfImporter) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(imp.doc.Accessors) || imp.doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAccessor, idx)
	}
	return imp.doc.Accessors[idx], nil
}

func (imp *gltfImporter) loadPrimitive(prim *gltf.Primitive, world f64.Mat4, normalMat f64.Mat3, mat material.Material) (geometry.Shape, int, error) {
	doc := imp.doc

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, 0, ErrMissingPositions
	}
	posAccessor, err := imp.accessor(posIdx)
	if err != nil {
		return nil, 0, err
	}
	positions, err := modeler.ReadPosition(doc, posAccessor, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("read positions: %w", err)
	}

	vertices := make([]core.Vec3, len(positions))
	for i, p := range positions {
		vertices[i] = transformPoint(world, core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2])))
	}

	var faces []int
	if prim.Indices != nil {
		indexAccessor, err := imp.accessor(*prim.Indices)
		if err != nil {
			return nil, 0, err
		}
		indices, err := modeler.ReadIndices(doc, indexAccessor, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("read indices: %w", err)
		}
		faces = make([]int, len(indices))
		for i, idx := range indices {
			if int(idx) >= len(vertices) {
				return nil, 0, ErrInvalidIndices
			}
			faces[i] = int(idx)
		}
	} else {
		faces = make([]int, len(vertices))
		for i := range faces {
			faces[i] = i
		}
	}
	// Trailing indices that do not form a whole triangle are dropped
	faces = faces[:len(faces)-len(faces)%3]
	if len(faces) == 0 {
		return nil, 0, nil
	}

	options := &geometry.TriangleMeshOptions{}

	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normAccessor, err := imp.accessor(normIdx)
		if err != nil {
			return nil, 0, err
		}
		raw, err := modeler.ReadNormal(doc, normAccessor, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("read normals: %w", err)
		}
		if len(raw) == len(vertices) {
			options.Normals = make([]core.Vec3, len(raw))
			for i, n := range raw {
				options.Normals[i] = transformNormal(normalMat, core.NewVec3(float64(n[0]), float64(n[1]), float64(n[2])))
			}
		}
	}

	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvAccessor, err := imp.accessor(uvIdx)
		if err != nil {
			return nil, 0, err
		}
		raw, err := modeler.ReadTextureCoord(doc, uvAccessor, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("read texture coordinates: %w", err)
		}
		if len(raw) == len(vertices) {
			options.UVs = make([]core.Vec2, len(raw))
			for i, uv := range raw {
				options.UVs[i] = core.NewVec2(float64(uv[0]), float64(uv[1]))
			}
		}
	}

	mesh := geometry.NewTriangleMesh(vertices, faces, mat, options)
	return mesh, mesh.GetTriangleCount(), nil
}

// GLTFInfo summarizes a glTF file without building geometry
type GLTFInfo struct {
	SceneName   string
	Description string // asset.extras.description
	Group       string // asset.extras.group
	Cameras     int
	Meshes      int
	Triangles   int
}

// ReadGLTFInfo reads scene metadata and primitive counts from a glTF file
func ReadGLTFInfo(path string) (GLTFInfo, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return GLTFInfo{}, fmt.Errorf("gltf open %q: %w", path, err)
	}

	info := GLTFInfo{Cameras: len(doc.Cameras)}
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		info.SceneName = doc.Scenes[*doc.Scene].Name
	} else if len(doc.Scenes) > 0 {
		info.SceneName = doc.Scenes[0].Name
	}

	if extras, ok := doc.Asset.Extras.(map[string]interface{}); ok {
		if s, ok := extras["description"].(string); ok {
			info.Description = s
		}
		if s, ok := extras["group"].(string); ok {
			info.Group = s
		}
	}

	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			info.Meshes++

			var count int
			if prim.Indices != nil && *prim.Indices >= 0 && *prim.Indices < len(doc.Accessors) {
				count = int(doc.Accessors[*prim.Indices].Count)
			} else if posIdx, ok := prim.Attributes[gltf.POSITION]; ok && posIdx >= 0 && posIdx < len(doc.Accessors) {
				count = int(doc.Accessors[posIdx].Count)
			}
			info.Triangles += count / 3
		}
	}
	return info, nil
}
