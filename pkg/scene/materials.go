package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// NewMaterialsScene shows one sphere per material: diffuse in the middle,
// hollow glass on the left and brushed gold on the right
func NewMaterialsScene() *Scene {
	s := newScene("materials", renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		Width:           400,
		VFov:            20,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		LookFrom:        core.NewVec3(-2, 2, 1), // Above and to the left
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
	})

	// Create materials
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1.2), 0.5, center)
	s.AddHollowGlass(core.NewVec3(-1, 0, -1), 0.5, 0.1, 1.5)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, gold)

	return s
}
