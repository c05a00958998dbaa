package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Material is the closed set of surface behaviors: Lambertian, Metal,
// Dielectric and None. Materials are immutable values.
type Material interface {
	// Scatter returns the secondary ray and its color attenuation.
	// false means the ray was absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, random core.Random) (ScatterResult, bool)

	// Kind names the variant, e.g. "lambertian"
	Kind() string

	// sealed keeps the variant set closed to this package
	sealed()
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit normal, always facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Scatter dispatches to the hit material. A missing material absorbs like None.
func (h HitRecord) Scatter(rayIn core.Ray, random core.Random) (ScatterResult, bool) {
	if h.Material == nil {
		return None{}.Scatter(rayIn, h, random)
	}
	return h.Material.Scatter(rayIn, h, random)
}
