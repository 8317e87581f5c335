package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter decides how rayIn continues after hitting the surface.
	// It returns false when the ray is absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// Emitter interface for materials that emit light.
// Materials that do not implement it emit nothing.
type Emitter interface {
	Emit() core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Linear color factor applied to light arriving along Scattered
}

// Facing records which side of a surface a ray struck
type Facing int

const (
	// Front means the ray hit the outward side of the surface
	Front Facing = iota
	// Back means the ray hit the inward side
	Back
)

func (f Facing) String() string {
	if f == Back {
		return "back"
	}
	return "front"
}

// HitRecord contains information about a ray-object intersection.
// Normal is always the unit outward normal; materials orient it using Facing.
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit outward surface normal
	Facing   Facing    // Which side of the surface was hit
	UV       core.Vec2 // Texture coordinates
	Material Material  // Material of the hit object
}

// OrientedNormal returns the normal on the side the ray arrived from
func (h *HitRecord) OrientedNormal() core.Vec3 {
	if h.Facing == Back {
		return h.Normal.Negate()
	}
	return h.Normal
}

// EmittedLight returns the light emitted by the hit material, or black if it does not emit
func (h *HitRecord) EmittedLight() core.Vec3 {
	if emitter, isEmissive := h.Material.(Emitter); isEmissive {
		return emitter.Emit()
	}
	return core.Vec3{X: 0, Y: 0, Z: 0}
}
