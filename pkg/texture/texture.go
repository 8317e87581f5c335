package texture

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture is a row-major buffer of linear-space colors. Row 0 is the top of the image.
// It is written by the renderer and read-only once bound to a material.
type Texture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// New creates a black texture of the given size
func New(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// FromRGBBuffer decodes a tightly packed 8-bit RGB buffer into linear space.
// The buffer must hold at least width*height*3 bytes.
func FromRGBBuffer(width, height int, buffer []byte) *Texture {
	tex := New(width, height)
	for i := range tex.Pixels {
		o := i * 3
		tex.Pixels[i] = ToLinear(core.NewVec3(
			float64(buffer[o])/255.0,
			float64(buffer[o+1])/255.0,
			float64(buffer[o+2])/255.0,
		))
	}
	return tex
}

// FromImage converts any decoded image into a linear-space texture
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := New(bounds.Dx(), bounds.Dy())

	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			tex.Pixels[y*tex.Width+x] = ToLinear(core.NewVec3(
				float64(c.R)/255.0,
				float64(c.G)/255.0,
				float64(c.B)/255.0,
			))
		}
	}

	return tex
}

// Set stores a linear color at pixel (x, y)
func (t *Texture) Set(x, y int, c core.Vec3) {
	t.Pixels[y*t.Width+x] = c
}

// At returns the linear color at pixel (x, y)
func (t *Texture) At(x, y int) core.Vec3 {
	return t.Pixels[y*t.Width+x]
}

// Sample looks up the texel under (u, v) using nearest-neighbor filtering.
// UVs are clamped to [0, 1]; v = 0 is the bottom row of the image.
func (t *Texture) Sample(u, v float64) core.Vec3 {
	u = clamp01(u)
	v = 1.0 - clamp01(v)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}

// Evaluate lets a texture act as a material albedo source
func (t *Texture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return t.Sample(uv.X, uv.Y)
}

// RGBBuffer gamma-encodes the texture into width*height*3 bytes, row-major top-to-bottom, RGB order
func (t *Texture) RGBBuffer() []byte {
	buffer := make([]byte, 0, len(t.Pixels)*3)
	for _, c := range t.Pixels {
		r, g, b := encodeColor(c)
		buffer = append(buffer, r, g, b)
	}
	return buffer
}

// Image gamma-encodes the texture into an opaque RGBA image for the stdlib encoders
func (t *Texture) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			r, g, b := encodeColor(t.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// ToGamma clamps a linear color to [0, 1] and applies the gamma-2 encode (square root)
func ToGamma(c core.Vec3) core.Vec3 {
	return c.Clamp(0.0, 1.0).Sqrt()
}

// ToLinear applies the gamma-2 decode (square)
func ToLinear(c core.Vec3) core.Vec3 {
	return c.Square()
}

func encodeColor(c core.Vec3) (uint8, uint8, uint8) {
	g := ToGamma(c)
	return toByte(g.X), toByte(g.Y), toByte(g.Z)
}

func toByte(v float64) uint8 {
	return uint8(math.Round(v * 255.0))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0.0, min(1.0, v))
}
