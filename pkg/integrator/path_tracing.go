package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// PathTracingIntegrator implements unidirectional path tracing with material sampling only
type PathTracingIntegrator struct {
	background core.Vec3
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// background is the radiance returned by rays that leave the scene.
func NewPathTracingIntegrator(background core.Vec3) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		background: background,
	}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, depth int, random *rand.Rand) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, core.HitEpsilon, math.Inf(1))
	if !isHit {
		return pt.background
	}

	// Start with emitted light from the hit material
	colorEmitted := hit.EmittedLight()

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	incoming := pt.RayColor(scatter.Scattered, world, depth-1, random)
	return colorEmitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
