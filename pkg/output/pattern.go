package output

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// patternBlue is the constant blue channel of the test pattern
const patternBlue = 0.25

// WriteTestPattern writes a red/green gradient without tracing any rays.
// Red grows left to right, green grows bottom to top.
func WriteTestPattern(sink renderer.Sink, width, height int) error {
	if err := sink.WriteHeader(width, height, core.MaxChannelValue); err != nil {
		return err
	}

	for j := height - 1; j >= 0; j-- {
		for i := 0; i < width; i++ {
			pixel := core.Pixel{
				R: patternByte(fraction(i, width)),
				G: patternByte(fraction(j, height)),
				B: patternByte(patternBlue),
			}
			if err := sink.WritePixel(pixel); err != nil {
				return err
			}
		}
	}
	return nil
}

func fraction(index, size int) float64 {
	if size <= 1 {
		return 0
	}
	return float64(index) / float64(size-1)
}

func patternByte(x float64) int {
	return int(255.99 * x)
}
