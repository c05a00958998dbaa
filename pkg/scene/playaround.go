package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// NewPlayaroundScene creates a glass bubble holding three small spheres,
// flanked by a diffuse sphere and a fuzzy mirror, on a half-sphere ground
func NewPlayaroundScene() *Scene {
	s := newScene("playaround", renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		Width:           400,
		VFov:            20,
		SamplesPerPixel: 150,
		MaxDepth:        40,
		LookFrom:        core.NewVec3(-2, 1, 3),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
	})

	// Only the top half of the ground sphere is visible
	s.AddHalfSphere(
		core.NewVec3(0, -100.5, -1), 100,
		material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)),
		core.NewVec3(0, 1, 0),
	)

	s.AddSphere(core.NewVec3(0, 0, -1.2), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))

	// Glass shell with a thin air gap; the inner index models leaving soda glass
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.48, material.NewDielectric(1.0/1.614))

	// Contents of the bubble
	s.AddSphere(core.NewVec3(-0.9, -0.1, -0.9), 0.2, material.NewLambertian(core.NewVec3(0.2, 0.8, 0.6)))
	s.AddSphere(core.NewVec3(-1.1, 0.1, -1.1), 0.2, material.NewLambertian(core.NewVec3(0.8, 1.0, 0.2)))
	s.AddSphere(core.NewVec3(-0.8, 0.2, -1.0), 0.2, material.NewMetal(core.NewVec3(0.8, 1.0, 0.8), 0))

	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.8))

	return s
}
