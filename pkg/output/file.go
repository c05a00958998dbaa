package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Format identifies an image encoding
type Format string

const (
	FormatPPM       Format = "ppm"
	FormatPPMZstd   Format = "ppm.zst"
	FormatPPMSnappy Format = "ppm.sz"
	FormatPNG       Format = "png"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Sink is a renderer sink that must be closed to finish the image
type Sink interface {
	renderer.Sink
	io.Closer
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	// Longest suffixes first so ".ppm.zst" is not read as ".zst"
	for _, format := range []Format{FormatPPMZstd, FormatPPMSnappy, FormatPPM, FormatPNG} {
		if strings.HasSuffix(name, "."+string(format)) {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// NewSink creates a sink encoding to w in the given format
func NewSink(w io.Writer, format Format) (Sink, error) {
	switch format {
	case FormatPPM:
		return NewPPM(w), nil
	case FormatPPMZstd:
		ppm, err := NewZstdPPM(w)
		if err != nil {
			return nil, err
		}
		return ppm, nil
	case FormatPPMSnappy:
		return NewSnappyPPM(w), nil
	case FormatPNG:
		return NewPNG(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Create opens path for writing, creating parent directories, and returns a
// sink for its extension. Closing the sink closes the file.
func Create(path string) (Sink, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	sink, err := NewSink(file, format)
	if err != nil {
		file.Close()
		return nil, err
	}

	switch s := sink.(type) {
	case *PPM:
		s.closers = append(s.closers, file)
	case *PNG:
		s.closers = append(s.closers, file)
	}
	return sink, nil
}
