package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Light represents a light-emitting material.
// Emissive surfaces are the only energy source in a scene besides the background.
type Light struct {
	Emission core.Vec3 // Emitted light color/intensity
}

// NewLight creates a new emissive material
func NewLight(emission core.Vec3) *Light {
	return &Light{Emission: emission}
}

// Scatter implements the Material interface; lights absorb every incoming ray
func (l *Light) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit returns the emitted light for this material
func (l *Light) Emit() core.Vec3 {
	return l.Emission
}
