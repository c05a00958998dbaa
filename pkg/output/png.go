package output

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// PNG collects pixels into an in-memory image and encodes it on Close
type PNG struct {
	w       io.Writer
	closers []io.Closer
	img     *image.RGBA
	next    int
}

// NewPNG creates a PNG sink writing to w
func NewPNG(w io.Writer) *PNG {
	return &PNG{w: w}
}

// WriteHeader allocates the image. Only 8-bit channels are supported.
func (p *PNG) WriteHeader(width, height, maxValue int) error {
	if p.img != nil {
		return ErrHeaderWritten
	}
	if maxValue != core.MaxChannelValue {
		return fmt.Errorf("png supports max value %d, got %d", core.MaxChannelValue, maxValue)
	}
	p.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// WritePixel stores the next pixel in row-major order
func (p *PNG) WritePixel(px core.Pixel) error {
	if p.img == nil {
		return ErrNoHeader
	}
	bounds := p.img.Bounds()
	if p.next >= bounds.Dx()*bounds.Dy() {
		return ErrImageFull
	}
	x, y := p.next%bounds.Dx(), p.next/bounds.Dx()
	p.img.SetRGBA(x, y, color.RGBA{R: uint8(px.R), G: uint8(px.G), B: uint8(px.B), A: 255})
	p.next++
	return nil
}

// Image returns the image built so far, or nil before the header
func (p *PNG) Image() *image.RGBA {
	return p.img
}

// Close encodes the image
func (p *PNG) Close() error {
	var errs []error
	if p.img == nil {
		errs = append(errs, ErrNoHeader)
	} else if err := png.Encode(p.w, p.img); err != nil {
		errs = append(errs, fmt.Errorf("encode png: %w", err))
	}
	for _, c := range p.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
