package loaders

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/qmuntal/gltf"
	"golang.org/x/image/math/f64"
)

// identity is the row-major 4x4 identity
var identity = f64.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// mulMat4 returns a*b for row-major matrices
func mulMat4(a, b f64.Mat4) f64.Mat4 {
	var m f64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[row*4+k] * b[k*4+col]
			}
			m[row*4+col] = sum
		}
	}
	return m
}

// fromColumnMajor converts a glTF column-major matrix to row-major
func fromColumnMajor(c [16]float64) f64.Mat4 {
	var m f64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[row*4+col] = c[col*4+row]
		}
	}
	return m
}

// composeTRS builds T * R * S from a translation, unit quaternion [x y z w] and scale
func composeTRS(t [3]float64, q [4]float64, s [3]float64) f64.Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]

	r := [9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	}

	return f64.Mat4{
		r[0] * s[0], r[1] * s[1], r[2] * s[2], t[0],
		r[3] * s[0], r[4] * s[1], r[5] * s[2], t[1],
		r[6] * s[0], r[7] * s[1], r[8] * s[2], t[2],
		0, 0, 0, 1,
	}
}

// localTransform returns the node's local matrix. An explicit matrix wins over TRS
// unless it is the identity.
func localTransform(node *gltf.Node) f64.Mat4 {
	matrix := node.MatrixOrDefault()
	if matrix != gltf.DefaultMatrix {
		return fromColumnMajor(matrix)
	}
	return composeTRS(node.TranslationOrDefault(), node.RotationOrDefault(), node.ScaleOrDefault())
}

// transformPoint applies m to p with w = 1
func transformPoint(m f64.Mat4, p core.Vec3) core.Vec3 {
	return core.NewVec3(
		m[0]*p.X+m[1]*p.Y+m[2]*p.Z+m[3],
		m[4]*p.X+m[5]*p.Y+m[6]*p.Z+m[7],
		m[8]*p.X+m[9]*p.Y+m[10]*p.Z+m[11],
	)
}

// transformVector applies m to v with w = 0
func transformVector(m f64.Mat4, v core.Vec3) core.Vec3 {
	return core.NewVec3(
		m[0]*v.X+m[1]*v.Y+m[2]*v.Z,
		m[4]*v.X+m[5]*v.Y+m[6]*v.Z,
		m[8]*v.X+m[9]*v.Y+m[10]*v.Z,
	)
}

// normalMatrix returns the cofactor matrix of m's upper 3x3, which is the inverse
// transpose scaled by the determinant. The sign is fixed so mirrored transforms keep
// normals pointing outward; callers normalize the result.
func normalMatrix(m f64.Mat4) f64.Mat3 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[4], m[5], m[6]
	g, h, i := m[8], m[9], m[10]

	cof := f64.Mat3{
		e*i - f*h, -(d*i - f*g), d*h - e*g,
		-(b*i - c*h), a*i - c*g, -(a*h - b*g),
		b*f - c*e, -(a*f - c*d), a*e - b*d,
	}

	det := a*cof[0] + b*cof[1] + c*cof[2]
	if det < 0 {
		for k := range cof {
			cof[k] = -cof[k]
		}
	}
	return cof
}

// transformNormal applies a normal matrix and renormalizes
func transformNormal(n f64.Mat3, v core.Vec3) core.Vec3 {
	return core.NewVec3(
		n[0]*v.X+n[1]*v.Y+n[2]*v.Z,
		n[3]*v.X+n[4]*v.Y+n[5]*v.Z,
		n[6]*v.X+n[7]*v.Y+n[8]*v.Z,
	).Normalize()
}
