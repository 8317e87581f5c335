package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	// Quadratic equation coefficients: at² - 2ht + c = 0
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// The near root enters the sphere, the far root leaves it
	facing := material.Front
	root := (h - sqrtD) / a
	if root <= tMin || root >= tMax {
		facing = material.Back
		root = (h + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	return &material.HitRecord{
		T:        root,
		Point:    point,
		Normal:   outwardNormal,
		Facing:   facing,
		UV:       sphereUV(outwardNormal),
		Material: s.Material,
	}, true
}

// sphereUV maps a unit outward normal to texture coordinates.
// u wraps around the Y axis starting at -X, v runs from the south pole (0) to the north pole (1).
func sphereUV(n core.Vec3) core.Vec2 {
	y := math.Max(-1, math.Min(1, n.Y))
	phi := math.Atan2(-n.Z, n.X) + math.Pi
	theta := math.Acos(-y)
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
