package geometry

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere. Radius must be positive.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	root, ok := s.nearestRoot(ray, rayT)
	if !ok {
		return nil, false
	}
	return s.hitRecord(ray, root), true
}

// roots solves |O + tD - C|² = r² in half-b form and returns both roots, nearest first
func (s *Sphere) roots(ray core.Ray) (near, far float64, ok bool) {
	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return (h - sqrtD) / a, (h + sqrtD) / a, true
}

// nearestRoot returns the closest root strictly inside rayT
func (s *Sphere) nearestRoot(ray core.Ray, rayT core.Interval) (float64, bool) {
	near, far, ok := s.roots(ray)
	if !ok {
		return 0, false
	}
	if rayT.Surrounds(near) {
		return near, true
	}
	if rayT.Surrounds(far) {
		return far, true
	}
	return 0, false
}

func (s *Sphere) hitRecord(ray core.Ray, root float64) *material.HitRecord {
	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Calculate outward normal (from center to hit point)
	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord
}
