package texture

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// NewCheckerboard creates a procedural checkerboard pattern texture
func NewCheckerboard(width, height, checkSize int, color1, color2 core.Vec3) *Texture {
	tex := New(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Alternate colors based on check position
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.Set(x, y, color1)
			} else {
				tex.Set(x, y, color2)
			}
		}
	}

	return tex
}

// NewUVDebug creates a texture showing UV coordinates as colors.
// U maps to red, V maps to green, with v = 0 on the bottom row.
func NewUVDebug(width, height int) *Texture {
	tex := New(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(max(width-1, 1))
			v := 1.0 - float64(y)/float64(max(height-1, 1))
			tex.Set(x, y, core.NewVec3(u, v, 0.0))
		}
	}

	return tex
}

// NewGradient creates a vertical gradient from top (row 0) to bottom
func NewGradient(width, height int, top, bottom core.Vec3) *Texture {
	tex := New(width, height)

	for y := 0; y < height; y++ {
		t := float64(y) / float64(max(height-1, 1))
		c := top.Multiply(1.0 - t).Add(bottom.Multiply(t))

		for x := 0; x < width; x++ {
			tex.Set(x, y, c)
		}
	}

	return tex
}
