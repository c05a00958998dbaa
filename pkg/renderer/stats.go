package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	SamplesPerPixel int           // Samples taken for each pixel
	TotalPixels     int           // Pixels written to the sink
	TotalSamples    int           // Camera rays traced
	Elapsed         time.Duration // Wall time of the render
}

// AddPixel records a completed pixel
func (s *RenderStats) AddPixel(samples int) {
	s.TotalPixels++
	s.TotalSamples += samples
}

// Complete reports whether every pixel of the image was written
func (s RenderStats) Complete() bool {
	return s.TotalPixels == s.Width*s.Height
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}
