package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	SamplesPerPixel int           // Rays traced per pixel
	TotalSamples    int           // Total number of camera rays traced
	Primitives      int           // Number of spheres and triangles in the scene
	Workers         int           // Goroutines used (1 for sequential rendering)
	Tiles           int           // Tiles rendered (0 for sequential rendering)
	Duration        time.Duration // Wall-clock render time
}

// SamplesPerSecond returns the camera-ray throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// PixelStats accumulates samples for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// CountPrimitives returns the number of spheres and triangles, expanding meshes
func CountPrimitives(shapes []geometry.Shape) int {
	count := 0
	for _, shape := range shapes {
		switch s := shape.(type) {
		case *geometry.TriangleMesh:
			count += s.GetTriangleCount()
		case geometry.ShapeList:
			count += CountPrimitives(s)
		default:
			count++
		}
	}
	return count
}

// CalculateAverageLuminance returns the mean linear luminance of a rendered texture
func CalculateAverageLuminance(tex *texture.Texture) float64 {
	if len(tex.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range tex.Pixels {
		total += p.Luminance()
	}
	return total / float64(len(tex.Pixels))
}
