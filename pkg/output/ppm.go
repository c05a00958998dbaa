package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Sink misuse errors
var (
	ErrNoHeader      = errors.New("pixel written before header")
	ErrHeaderWritten = errors.New("header already written")
	ErrImageFull     = errors.New("image already has all of its pixels")
)

// PPM writes a plain-text P3 image: a header followed by one "r g b" line per pixel
type PPM struct {
	w       *bufio.Writer
	closers []io.Closer // closed in order after the buffer is flushed

	width, height int
	written       int
	hasHeader     bool
}

// NewPPM creates a PPM sink writing to w
func NewPPM(w io.Writer) *PPM {
	return &PPM{w: bufio.NewWriter(w)}
}

// NewZstdPPM creates a PPM sink whose output is zstd compressed
func NewZstdPPM(w io.Writer) (*PPM, error) {
	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	ppm := NewPPM(encoder)
	ppm.closers = append(ppm.closers, encoder)
	return ppm, nil
}

// NewSnappyPPM creates a PPM sink whose output uses the snappy framing format
func NewSnappyPPM(w io.Writer) *PPM {
	stream := snappy.NewBufferedWriter(w)
	ppm := NewPPM(stream)
	ppm.closers = append(ppm.closers, stream)
	return ppm
}

// WriteHeader writes "P3\n<width> <height>\n<maxValue>\n"
func (p *PPM) WriteHeader(width, height, maxValue int) error {
	if p.hasHeader {
		return ErrHeaderWritten
	}
	if _, err := fmt.Fprintf(p.w, "P3\n%d %d\n%d\n", width, height, maxValue); err != nil {
		return err
	}
	p.width, p.height = width, height
	p.hasHeader = true
	return nil
}

// WritePixel writes one "r g b" line
func (p *PPM) WritePixel(px core.Pixel) error {
	if !p.hasHeader {
		return ErrNoHeader
	}
	if p.written >= p.width*p.height {
		return ErrImageFull
	}
	if _, err := fmt.Fprintf(p.w, "%d %d %d\n", px.R, px.G, px.B); err != nil {
		return err
	}
	p.written++
	return nil
}

// Flush pushes buffered text to the underlying writer
func (p *PPM) Flush() error {
	return p.w.Flush()
}

// Close flushes the image and finishes any compression stream
func (p *PPM) Close() error {
	errs := []error{p.Flush()}
	for _, c := range p.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
