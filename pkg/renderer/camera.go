package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// CameraConfig contains every setting the camera needs. There are no defaults:
// all fields must be provided.
type CameraConfig struct {
	AspectRatio     float64   // Ideal width over height
	Width           int       // Image width in pixels
	VFov            float64   // Vertical field of view in degrees
	SamplesPerPixel int       // Number of rays per pixel
	MaxDepth        int       // Maximum ray bounce depth
	LookFrom        core.Vec3 // Eye position
	LookAt          core.Vec3 // Point the camera looks at
	Up              core.Vec3 // Up direction hint
}

// Validate reports every missing or invalid field
func (c CameraConfig) Validate() error {
	var problems []error
	if !(c.AspectRatio > 0) {
		problems = append(problems, fmt.Errorf("aspect ratio must be positive, got %g", c.AspectRatio))
	}
	if c.Width <= 0 {
		problems = append(problems, fmt.Errorf("width must be positive, got %d", c.Width))
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		problems = append(problems, fmt.Errorf("vertical fov must be in (0, 180) degrees, got %g", c.VFov))
	}
	if c.SamplesPerPixel <= 0 {
		problems = append(problems, fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth <= 0 {
		problems = append(problems, fmt.Errorf("max depth must be positive, got %d", c.MaxDepth))
	}
	if c.LookFrom.Subtract(c.LookAt).NearZero() {
		problems = append(problems, errors.New("look from and look at must differ"))
	} else if c.Up.Cross(c.LookFrom.Subtract(c.LookAt)).NearZero() {
		problems = append(problems, errors.New("up vector must not be parallel to the view direction"))
	}
	return errors.Join(problems...)
}

// Camera generates rays for rendering and drives the render loop
type Camera struct {
	config CameraConfig
	random core.Random
	logger core.Logger

	imageHeight      int
	pixelSampleScale float64
	center           core.Vec3 // Camera position
	pixel00          core.Vec3 // Center of pixel (0, 0)
	pixelDeltaU      core.Vec3 // Offset to the pixel to the right
	pixelDeltaV      core.Vec3 // Offset to the pixel below
	u, v, w          core.Vec3 // Camera frame basis vectors
}

// NewCamera creates and initializes a camera
func NewCamera(config CameraConfig, random core.Random) *Camera {
	camera := &Camera{
		config: config,
		random: random,
		logger: NopLogger{},
	}
	camera.Initialize()
	return camera
}

// SetLogger sets the logger used for progress output
func (c *Camera) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	c.logger = logger
}

// Config returns the camera configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// SetConfig replaces the configuration and re-derives the viewport
func (c *Camera) SetConfig(config CameraConfig) {
	c.config = config
	c.Initialize()
}

// ImageHeight returns the derived image height in pixels
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// Initialize derives the image height, camera basis and pixel grid from the configuration.
// It is idempotent and must run again after the configuration changes.
func (c *Camera) Initialize() {
	cfg := c.config

	c.imageHeight = max(1, int(float64(cfg.Width)/cfg.AspectRatio))
	c.pixelSampleScale = 1.0 / float64(cfg.SamplesPerPixel)
	c.center = cfg.LookFrom

	// The distance to the look-at point doubles as the focal length
	focalLength := cfg.LookFrom.Subtract(cfg.LookAt).Length()
	h := math.Tan(mgl64.DegToRad(cfg.VFov) / 2)
	viewportHeight := 2 * h * focalLength
	viewportWidth := viewportHeight * float64(cfg.Width) / float64(c.imageHeight)

	c.w = cfg.LookFrom.Subtract(cfg.LookAt).Normalize()
	c.u = cfg.Up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Viewport edges: u runs left to right, v runs top to bottom
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Multiply(-viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(cfg.Width))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	upperLeft := c.center.
		Subtract(c.w.Multiply(focalLength)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	c.pixel00 = upperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))
}

// PixelCenter returns the world-space center of pixel (i, j)
func (c *Camera) PixelCenter(i, j int) core.Vec3 {
	return c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
}

// GetRay returns a ray from the camera through a random point inside pixel (i, j)
func (c *Camera) GetRay(i, j int) core.Ray {
	offsetX := c.random.Range(-0.5, 0.5)
	offsetY := c.random.Range(-0.5, 0.5)

	pixelSample := c.PixelCenter(i, j).
		Add(c.pixelDeltaU.Multiply(offsetX)).
		Add(c.pixelDeltaV.Multiply(offsetY))

	return core.NewRay(c.center, pixelSample.Subtract(c.center))
}
