package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTextured creates a diffuse material whose albedo is looked up in a texture at the hit UV
func NewTextured(tex *texture.Texture) *Lambertian {
	return &Lambertian{Albedo: tex}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	albedo := l.Albedo.Evaluate(hit.UV, hit.Point)
	if albedo.NearZero() {
		return ScatterResult{}, false
	}

	// Normal plus a point on the unit sphere gives a cosine-distributed direction
	normal := hit.OrientedNormal()
	direction := normal.Add(core.RandomUnitVector(random))
	if direction.NearZero() {
		direction = normal
	}

	return ScatterResult{
		Scattered:   core.Ray{Origin: hit.Point, Direction: direction},
		Attenuation: albedo,
	}, true
}
