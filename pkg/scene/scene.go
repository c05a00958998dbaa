package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	CameraConfig renderer.CameraConfig
	World        *geometry.HittableList // Objects in the scene
}

// NewCamera creates a camera for the scene that draws samples from random
func (s *Scene) NewCamera(random core.Random) *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig, random)
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// AddHalfSphere adds the half of a sphere facing direction
func (s *Scene) AddHalfSphere(center core.Vec3, radius float64, mat material.Material, direction core.Vec3) {
	s.World.Add(geometry.NewHalfSphere(center, radius, mat, direction))
}

// AddHollowGlass adds a glass sphere of the given thickness whose inside is air
func (s *Scene) AddHollowGlass(center core.Vec3, radius, thickness, refractionIndex float64) {
	s.AddSphere(center, radius, material.NewDielectric(refractionIndex))
	s.AddSphere(center, radius-thickness, material.NewDielectric(1.0/refractionIndex))
}

// SphereCount returns the number of objects in the scene
func (s *Scene) SphereCount() int {
	return s.World.Len()
}

func newScene(name string, cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		CameraConfig: cameraConfig,
		World:        geometry.NewHittableList(),
	}
}
