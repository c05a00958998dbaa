package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// NewQuickScene creates the smallest useful scene: one diffuse sphere resting
// on a huge ground sphere, seen from the origin with a single sample and bounce.
func NewQuickScene() *Scene {
	s := newScene("quick", renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		Width:           400,
		VFov:            90,
		SamplesPerPixel: 1,
		MaxDepth:        1,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
	})

	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, gray)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, gray)

	return s
}
