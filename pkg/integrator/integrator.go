package integrator

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the linear radiance arriving along ray.
	// depth is the number of bounces still allowed; zero returns black.
	RayColor(ray core.Ray, world geometry.Shape, depth int, random *rand.Rand) core.Vec3
}
