package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// HalfSphere is a sphere cut by the plane through its center.
// Only the cap on the side Direction points to is solid; rays pass
// through the missing half and can hit the inside of the cap.
type HalfSphere struct {
	Sphere
	Direction core.Vec3 // Unit vector from the center towards the kept cap
}

// NewHalfSphere creates a new half sphere keeping the cap facing direction
func NewHalfSphere(center core.Vec3, radius float64, mat material.Material, direction core.Vec3) *HalfSphere {
	return &HalfSphere{
		Sphere:    Sphere{Center: center, Radius: radius, Material: mat},
		Direction: direction.Normalize(),
	}
}

// Hit tests if a ray intersects the kept cap
func (hs *HalfSphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	near, far, ok := hs.roots(ray)
	if !ok {
		return nil, false
	}

	for _, root := range [2]float64{near, far} {
		if !rayT.Surrounds(root) {
			continue
		}
		if hs.onCap(ray.At(root)) {
			return hs.hitRecord(ray, root), true
		}
	}
	return nil, false
}

func (hs *HalfSphere) onCap(point core.Vec3) bool {
	return point.Subtract(hs.Center).Dot(hs.Direction) >= 0
}
