package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"image.ppm", FormatPPM, false},
		{"out/IMAGE.PPM", FormatPPM, false},
		{"image.ppm.zst", FormatPPMZstd, false},
		{"image.ppm.sz", FormatPPMSnappy, false},
		{"renders/final.png", FormatPNG, false},
		{"image.jpg", "", true},
		{"image.zst", "", true},
		{"ppm", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("Expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.ppm", "nested/b.ppm.zst", "c.ppm.sz", "d.png"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			sink, err := Create(path)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			writeTwoByOne(t, sink)

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("Output file missing: %v", err)
			}
			if info.Size() == 0 {
				t.Error("Output file is empty")
			}
		})
	}

	plain, err := os.ReadFile(filepath.Join(dir, "a.ppm"))
	if err != nil {
		t.Fatalf("Reading output failed: %v", err)
	}
	if !strings.HasPrefix(string(plain), "P3\n2 1\n255\n") {
		t.Errorf("Unexpected plain PPM contents %q", plain)
	}

	if _, err := Create(filepath.Join(dir, "e.bmp")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}
