package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// ErrUnknownMaterial is returned for a material type that does not exist
var ErrUnknownMaterial = errors.New("unknown material type")

// maxPathLength bounds scene file paths
const maxPathLength = 512

// Vectors are written as objects, e.g. {"x": 0, "y": 1, "z": 0}

type CameraCfg struct {
	AspectRatio     float64   `json:"aspectRatio"`
	Width           int       `json:"width"`
	VFov            float64   `json:"vfov"`
	SamplesPerPixel int       `json:"samplesPerPixel"`
	MaxDepth        int       `json:"maxDepth"`
	LookFrom        core.Vec3 `json:"lookFrom"`
	LookAt          core.Vec3 `json:"lookAt"`
	Up              core.Vec3 `json:"up,omitempty"` // defaults to +y
}

type MaterialCfg struct {
	Type            string    `json:"type"` // lambertian, metal, dielectric or none
	Albedo          core.Vec3 `json:"albedo,omitempty"`
	Fuzz            float64   `json:"fuzz,omitempty"`
	RefractionIndex float64   `json:"refractionIndex,omitempty"`
}

type SphereCfg struct {
	Center   core.Vec3   `json:"center"`
	Radius   float64     `json:"radius"`
	Material MaterialCfg `json:"material"`
	// When set, only the half facing this direction is solid
	Half *core.Vec3 `json:"half,omitempty"`
}

type SceneCfg struct {
	Name    string      `json:"name,omitempty"`
	Camera  CameraCfg   `json:"camera"`
	Spheres []SphereCfg `json:"spheres"`
}

// Build converts the camera section. Every field except up is required.
func (c CameraCfg) Build() (renderer.CameraConfig, error) {
	up := c.Up
	if up.Equals(core.Vec3{}) {
		up = core.NewVec3(0, 1, 0)
	}
	config := renderer.CameraConfig{
		AspectRatio:     c.AspectRatio,
		Width:           c.Width,
		VFov:            c.VFov,
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
		LookFrom:        c.LookFrom,
		LookAt:          c.LookAt,
		Up:              up,
	}
	return config, config.Validate()
}

// Build validates and constructs the material
func (m MaterialCfg) Build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(m.Albedo), nil
	case "metal":
		if m.Fuzz < 0 {
			return nil, fmt.Errorf("metal fuzz must not be negative, got %g", m.Fuzz)
		}
		return material.NewMetal(m.Albedo, m.Fuzz), nil
	case "dielectric":
		if m.RefractionIndex <= 0 {
			return nil, fmt.Errorf("dielectric refractionIndex must be positive, got %g", m.RefractionIndex)
		}
		return material.NewDielectric(m.RefractionIndex), nil
	case "none":
		return material.None{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, m.Type)
	}
}

// Build validates and constructs the sphere or half sphere
func (s SphereCfg) Build() (geometry.Hittable, error) {
	if !(s.Radius > 0) {
		return nil, fmt.Errorf("radius must be positive, got %g", s.Radius)
	}
	mat, err := s.Material.Build()
	if err != nil {
		return nil, err
	}
	if s.Half != nil {
		if s.Half.NearZero() {
			return nil, fmt.Errorf("half direction must not be zero")
		}
		return geometry.NewHalfSphere(s.Center, s.Radius, mat, *s.Half), nil
	}
	return geometry.NewSphere(s.Center, s.Radius, mat), nil
}

// ParseScene decodes a JSON scene. Unknown fields are rejected so typos surface
// as errors. Every invalid sphere is reported, not only the first.
func ParseScene(reader io.Reader) (*scene.Scene, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var cfg SceneCfg
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	var problems []error
	cameraConfig, err := cfg.Camera.Build()
	if err != nil {
		problems = append(problems, fmt.Errorf("camera: %w", err))
	}

	world := geometry.NewHittableList()
	for i, sphereCfg := range cfg.Spheres {
		object, err := sphereCfg.Build()
		if err != nil {
			problems = append(problems, fmt.Errorf("sphere %d: %w", i, err))
			continue
		}
		world.Add(object)
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &scene.Scene{
		Name:         cfg.Name,
		CameraConfig: cameraConfig,
		World:        world,
	}, nil
}

// LoadScene loads a JSON scene file. The scene is named after the file
// unless the file names it.
func LoadScene(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}

	s, err := ParseScene(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return s, nil
}

// IsSceneFile reports whether name looks like a scene file rather than a built-in scene
func IsSceneFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".json")
}

// validateFilePath rejects paths that cannot be scene files
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}
	if len(filepath.Clean(filename)) > maxPathLength {
		return fmt.Errorf("file path too long: maximum %d characters allowed", maxPathLength)
	}
	if !IsSceneFile(filename) {
		return fmt.Errorf("invalid file type: only .json files are allowed")
	}
	return nil
}
