package core

import "math"

// MaxChannelValue is the largest byte value a color channel is written as
const MaxChannelValue = 255

// Pixel is a display color with channels in [0, MaxChannelValue]
type Pixel struct {
	R, G, B int
}

// LinearToGamma converts a linear channel value to gamma 2 space.
// Negative values map to 0.
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToPixel gamma corrects a linear color, clamps it into the intensity
// range and quantizes each channel to a byte value
func ToPixel(color Vec3) Pixel {
	return Pixel{
		R: toByte(color.X),
		G: toByte(color.Y),
		B: toByte(color.Z),
	}
}

func toByte(linear float64) int {
	return int(255.999 * IntensityInterval.Clamp(LinearToGamma(linear)))
}
