package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

const validScene = `{
  "camera": {
    "aspectRatio": 1.7777777777777777,
    "width": 400,
    "vfov": 90,
    "samplesPerPixel": 1,
    "maxDepth": 1,
    "lookFrom": {"x": 0, "y": 0, "z": 0},
    "lookAt": {"x": 0, "y": 0, "z": -1}
  },
  "spheres": [
    {
      "center": {"x": 0, "y": 0, "z": -1},
      "radius": 0.5,
      "material": {"type": "lambertian", "albedo": {"x": 0.1, "y": 0.2, "z": 0.5}}
    },
    {
      "center": {"x": 0, "y": -100.5, "z": -1},
      "radius": 100,
      "material": {"type": "Metal", "albedo": {"x": 0.8, "y": 0.8, "z": 0.8}, "fuzz": 0.3},
      "half": {"x": 0, "y": 2, "z": 0}
    },
    {
      "center": {"x": 1, "y": 0, "z": -1},
      "radius": 0.5,
      "material": {"type": "dielectric", "refractionIndex": 1.5}
    },
    {
      "center": {"x": -1, "y": 0, "z": -1},
      "radius": 0.5,
      "material": {"type": "none"}
    }
  ]
}`

func writeSceneFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return path
}

func TestLoadScene(t *testing.T) {
	path := writeSceneFile(t, "spheres.json", validScene)

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	if s.Name != "spheres" {
		t.Errorf("Expected scene named after the file, got %q", s.Name)
	}
	if !s.CameraConfig.Up.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected default up vector, got %v", s.CameraConfig.Up)
	}
	if s.CameraConfig.Width != 400 || s.CameraConfig.VFov != 90 {
		t.Errorf("Unexpected camera config %+v", s.CameraConfig)
	}
	if s.SphereCount() != 4 {
		t.Fatalf("Expected 4 objects, got %d", s.SphereCount())
	}

	first, ok := s.World.Objects[0].(*geometry.Sphere)
	if !ok {
		t.Fatalf("Expected a sphere, got %T", s.World.Objects[0])
	}
	if first.Material != material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)) {
		t.Errorf("Unexpected material %+v", first.Material)
	}

	ground, ok := s.World.Objects[1].(*geometry.HalfSphere)
	if !ok {
		t.Fatalf("Expected a half sphere, got %T", s.World.Objects[1])
	}
	if !ground.Direction.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected normalized half direction, got %v", ground.Direction)
	}
	if ground.Material.Kind() != "metal" {
		t.Errorf("Expected metal ground, got %s", ground.Material.Kind())
	}

	kinds := []string{"lambertian", "metal", "dielectric", "none"}
	for i, obj := range s.World.Objects {
		var mat material.Material
		switch o := obj.(type) {
		case *geometry.Sphere:
			mat = o.Material
		case *geometry.HalfSphere:
			mat = o.Material
		}
		if mat.Kind() != kinds[i] {
			t.Errorf("Object %d: expected %s, got %s", i, kinds[i], mat.Kind())
		}
	}
}

func TestLoadScene_NameFromFile(t *testing.T) {
	named := strings.Replace(validScene, `"camera"`, `"name": "demo", "camera"`, 1)
	s, err := LoadScene(writeSceneFile(t, "other.json", named))
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if s.Name != "demo" {
		t.Errorf("Expected the name from the file contents, got %q", s.Name)
	}
}

func TestLoadScene_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantIs    error
		wantParts []string
	}{
		{
			name:    "unknown material",
			content: strings.Replace(validScene, `"type": "none"`, `"type": "plasma"`, 1),
			wantIs:  ErrUnknownMaterial,
		},
		{
			name:      "negative radius and bad glass",
			content:   strings.Replace(strings.Replace(validScene, `"radius": 0.5`, `"radius": -1`, 1), `"refractionIndex": 1.5`, `"refractionIndex": 0`, 1),
			wantParts: []string{"sphere 0: radius must be positive", "sphere 2: dielectric refractionIndex"},
		},
		{
			name:      "missing camera fields",
			content:   `{"camera": {"lookFrom": {"x": 1}}, "spheres": []}`,
			wantParts: []string{"camera:", "width must be positive", "max depth must be positive"},
		},
		{
			name:      "unknown field",
			content:   `{"camera": {}, "lights": []}`,
			wantParts: []string{"failed to decode scene", "lights"},
		},
		{
			name:      "malformed json",
			content:   `{"camera": `,
			wantParts: []string{"failed to decode scene"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScene(writeSceneFile(t, "scene.json", tt.content))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("Expected errors.Is(%v), got %v", tt.wantIs, err)
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(err.Error(), part) {
					t.Errorf("Expected error to contain %q, got: %v", part, err)
				}
			}
		})
	}
}

func TestLoadScene_InvalidPaths(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"empty", ""},
		{"wrong extension", "scenes/spheres.pbrt"},
		{"null byte", "scenes/spheres\x00.json"},
		{"too long", strings.Repeat("a", 600) + ".json"},
		{"missing", filepath.Join(t.TempDir(), "missing.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScene(tt.filename); err == nil {
				t.Errorf("Expected an error for %q", tt.filename)
			}
		})
	}
}

func TestIsSceneFile(t *testing.T) {
	if !IsSceneFile("scenes/Demo.JSON") {
		t.Error("Expected .JSON to be a scene file")
	}
	if IsSceneFile("playaround") {
		t.Error("Built-in scene names are not scene files")
	}
}
