package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	// Entering the material on the front side, leaving it on the back side
	var refractionRatio float64
	if hit.Facing == Front {
		refractionRatio = 1.0 / d.RefractiveIndex
	} else {
		refractionRatio = d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Abs(unitDirection.Dot(hit.Normal))

	if random.Float64() > Reflectance(cosTheta, refractionRatio) {
		// Refract returns zero on total internal reflection; fall through to reflect
		refracted := unitDirection.Refract(hit.OrientedNormal(), refractionRatio)
		if refracted != (core.Vec3{}) {
			return ScatterResult{
				Scattered:   core.Ray{Origin: hit.Point, Direction: refracted},
				Attenuation: attenuation,
			}, true
		}
	}

	return ScatterResult{
		Scattered:   core.Ray{Origin: hit.Point, Direction: unitDirection.Reflect(hit.Normal)},
		Attenuation: attenuation,
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	// R0 is the reflectance at normal incidence
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
