package renderer

import (
	"fmt"
	"math"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// minHitDistance keeps scattered rays from re-hitting the surface they leave
const minHitDistance = 1e-4

var (
	black         = core.NewVec3(0, 0, 0)
	white         = core.NewVec3(1, 1, 1)
	skyBlue       = core.NewVec3(0.5, 0.7, 1.0)
	absorbedColor = white
)

// Sink consumes the rendered image as a header followed by pixels in row-major order
type Sink interface {
	WriteHeader(width, height, maxValue int) error
	WritePixel(p core.Pixel) error
}

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// NopLogger discards all output
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}

// RayColor returns the color carried back along ray, following at most depth bounces
func (c *Camera) RayColor(ray core.Ray, world geometry.Hittable, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return black
	}

	hit, isHit := world.Hit(ray, core.NewInterval(minHitDistance, math.Inf(1)))
	if !isHit {
		return backgroundGradient(ray)
	}

	scatter, didScatter := hit.Scatter(ray, c.random)
	if !didScatter {
		return absorbedColor
	}

	return scatter.Attenuation.MultiplyVec(c.RayColor(scatter.Scattered, world, depth-1))
}

// backgroundGradient blends white to sky blue by the ray's vertical direction
func backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return white.Multiply(1.0 - a).Add(skyBlue.Multiply(a))
}

// PixelColor averages SamplesPerPixel jittered samples of pixel (i, j)
func (c *Camera) PixelColor(world geometry.Hittable, i, j int) core.Vec3 {
	colorAccum := core.Vec3{}
	for sample := 0; sample < c.config.SamplesPerPixel; sample++ {
		ray := c.GetRay(i, j)
		colorAccum = colorAccum.Add(c.RayColor(ray, world, c.config.MaxDepth))
	}
	return colorAccum.Multiply(c.pixelSampleScale)
}

// Render traces every pixel top to bottom, left to right, and streams the
// results to sink. A sink error aborts the render.
func (c *Camera) Render(world geometry.Hittable, sink Sink) (RenderStats, error) {
	c.Initialize()

	width, height := c.config.Width, c.imageHeight
	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: c.config.SamplesPerPixel,
	}
	startTime := time.Now()

	if err := sink.WriteHeader(width, height, core.MaxChannelValue); err != nil {
		return stats, fmt.Errorf("write header: %w", err)
	}

	for j := 0; j < height; j++ {
		c.logger.Printf("Scanlines remaining: %d\n", height-j)

		for i := 0; i < width; i++ {
			pixel := core.ToPixel(c.PixelColor(world, i, j))
			if err := sink.WritePixel(pixel); err != nil {
				return stats, fmt.Errorf("write pixel (%d,%d): %w", i, j, err)
			}
			stats.AddPixel(c.config.SamplesPerPixel)
		}
	}

	stats.Elapsed = time.Since(startTime)
	c.logger.Printf("Render completed in %v\n", stats.Elapsed)

	return stats, nil
}
