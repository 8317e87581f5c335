package renderer

import (
	"errors"
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	// ErrDegenerateView is returned when the camera looks at its own position
	ErrDegenerateView = errors.New("renderer: look-at point equals camera position")
	// ErrParallelUp is returned when the up vector is parallel to the view direction
	ErrParallelUp = errors.New("renderer: up vector is parallel to view direction")
	// ErrInvalidFov is returned for a vertical field of view outside (0, 180) degrees
	ErrInvalidFov = errors.New("renderer: vertical fov must be in (0, 180) degrees")
	// ErrInvalidImageSize is returned when the image has no pixels
	ErrInvalidImageSize = errors.New("renderer: image must be at least 1x1 pixels")
	// ErrInvalidSamples is returned when samples per pixel or max depth is not positive
	ErrInvalidSamples = errors.New("renderer: samples per pixel and max depth must be positive")
)

// CameraConfig contains all camera and frame parameters
type CameraConfig struct {
	Position        core.Vec3  // Camera position
	LookAt          core.Vec3  // Point the camera is looking at; its distance is the focal length
	Up              *core.Vec3 // Optional explicit up vector, overrides WorldUp
	WorldUp         core.Vec3  // World up direction used to build the camera basis
	VFov            float64    // Vertical field of view in degrees
	Height          int        // Image height in pixels
	AspectRatio     float64    // Width / height
	SamplesPerPixel int        // Rays traced per pixel
	MaxDepth        int        // Maximum ray bounce depth
	Background      core.Vec3  // Radiance of rays that leave the scene
}

// DefaultCameraConfig returns the default camera looking down -Z from the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		WorldUp:         core.NewVec3(0, 1, 0),
		VFov:            90.0,
		Height:          600,
		AspectRatio:     4.0 / 3.0,
		SamplesPerPixel: 1,
		MaxDepth:        20,
		Background:      core.NewVec3(0.01, 0.01, 0.01),
	}
}

// Width returns the image width in pixels
func (c CameraConfig) Width() int {
	return int(float64(c.Height) * c.AspectRatio)
}

// Validate reports configurations that would produce a degenerate camera
func (c CameraConfig) Validate() error {
	if c.Height <= 0 || c.Width() <= 0 {
		return ErrInvalidImageSize
	}
	if c.SamplesPerPixel <= 0 || c.MaxDepth <= 0 {
		return ErrInvalidSamples
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return ErrInvalidFov
	}
	view := c.LookAt.Subtract(c.Position)
	if view.NearZero() {
		return ErrDegenerateView
	}
	if c.up().Cross(view).NearZero() {
		return ErrParallelUp
	}
	return nil
}

func (c CameraConfig) up() core.Vec3 {
	if c.Up != nil {
		return *c.Up
	}
	return c.WorldUp
}

// Camera generates primary rays for a pinhole camera.
// Pixel (0, 0) is the upper-left corner of the image.
type Camera struct {
	config    CameraConfig
	width     int
	origin    core.Vec3
	upperLeft core.Vec3 // Direction to the center of pixel (0, 0)
	deltaU    core.Vec3 // Step to the next pixel to the right
	deltaV    core.Vec3 // Step to the next pixel down
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	// The view vector is not normalized: its length is the focal length
	view := config.LookAt.Subtract(config.Position)
	focalLength := view.Length()

	left := config.up().Cross(view).Normalize()
	up := view.Cross(left).Normalize()

	theta := config.VFov * math.Pi / 180.0
	viewportHeight := math.Tan(theta/2) * focalLength * 2
	viewportWidth := viewportHeight * config.AspectRatio
	pixelSize := viewportHeight / float64(config.Height)

	deltaU := left.Multiply(-pixelSize)
	deltaV := up.Multiply(-pixelSize)

	upperLeft := view.
		Add(left.Multiply(viewportWidth / 2)).
		Add(up.Multiply(viewportHeight / 2)).
		Add(deltaU.Multiply(0.5)).
		Add(deltaV.Multiply(0.5))

	return &Camera{
		config:    config,
		width:     config.Width(),
		origin:    config.Position,
		upperLeft: upperLeft,
		deltaU:    deltaU,
		deltaV:    deltaV,
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.config.Height
}

// SamplesPerPixel returns the number of rays traced per pixel
func (c *Camera) SamplesPerPixel() int {
	return c.config.SamplesPerPixel
}

// MaxDepth returns the maximum ray bounce depth
func (c *Camera) MaxDepth() int {
	return c.config.MaxDepth
}

// Background returns the radiance of rays that leave the scene
func (c *Camera) Background() core.Vec3 {
	return c.config.Background
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// SampleOffsets draws one sub-pixel jitter offset per sample. The same offsets are
// reused for every pixel of a frame.
func (c *Camera) SampleOffsets(random *rand.Rand) []core.Vec3 {
	offsets := make([]core.Vec3, c.config.SamplesPerPixel)
	for i := range offsets {
		offsets[i] = c.deltaU.Multiply(random.Float64() - 0.5).
			Add(c.deltaV.Multiply(random.Float64() - 0.5))
	}
	return offsets
}

// PixelRay returns the primary ray through pixel (x, y) displaced by offset
func (c *Camera) PixelRay(x, y int, offset core.Vec3) core.Ray {
	direction := c.upperLeft.
		Add(c.deltaU.Multiply(float64(x))).
		Add(c.deltaV.Multiply(float64(y))).
		Add(offset)
	return core.NewRay(c.origin, direction)
}
