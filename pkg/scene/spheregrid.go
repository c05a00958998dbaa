package scene

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

const (
	gridHalfSize      = 5   // Cells run from -gridHalfSize to gridHalfSize-1 on x and z
	gridSphereRadius  = 0.2 // Radius of every small sphere
	gridJitter        = 0.9 // Max offset of a sphere inside its cell
	gridDiffuseChance = 0.7
	gridMetalChance   = 0.9 // Remaining spheres are glass
)

// oklchToRGB converts OKLCH to linear RGB, clamped to [0, 1].
// l: lightness (0-1), c: chroma (0-0.4), h: hue in degrees
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cone responses, then cubed
	lc := math.Pow(l+0.3963377774*a+0.2158037573*b, 3)
	mc := math.Pow(l-0.1055613458*a-0.0638541728*b, 3)
	sc := math.Pow(l-0.0894841775*a-1.2914855480*b, 3)

	rgb := core.NewVec3(
		+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	)
	return core.NewVec3(
		core.IntensityInterval.Clamp(rgb.X),
		core.IntensityInterval.Clamp(rgb.Y),
		core.IntensityInterval.Clamp(rgb.Z),
	)
}

// NewSphereGridScene scatters small spheres with random materials over a grid,
// around three large feature spheres. The layout depends only on random.
func NewSphereGridScene(random core.Random) *Scene {
	s := newScene("spheregrid", renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		Width:           400,
		VFov:            20,
		SamplesPerPixel: 50,
		MaxDepth:        20,
		LookFrom:        core.NewVec3(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		Up:              core.NewVec3(0, 1, 0),
	})

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	featureCenters := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(-4, 1, 0),
		core.NewVec3(4, 1, 0),
	}

	for i := -gridHalfSize; i < gridHalfSize; i++ {
		for j := -gridHalfSize; j < gridHalfSize; j++ {
			center := core.NewVec3(
				float64(i)+gridJitter*random.Float64(),
				gridSphereRadius,
				float64(j)+gridJitter*random.Float64(),
			)

			// Keep the feature spheres clear
			if overlapsAny(center, featureCenters, 1.2) {
				continue
			}

			s.AddSphere(center, gridSphereRadius, gridMaterial(random, i, j))
		}
	}

	s.AddSphere(featureCenters[0], 1.0, material.NewDielectric(1.5))
	s.AddSphere(featureCenters[1], 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(featureCenters[2], 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	return s
}

// gridMaterial picks a random material. Diffuse and metal colors sweep hue
// across the grid columns and chroma across the rows.
func gridMaterial(random core.Random, i, j int) material.Material {
	hue := float64(i+gridHalfSize) / float64(2*gridHalfSize) * 360.0
	chroma := 0.05 + float64(j+gridHalfSize)/float64(2*gridHalfSize)*0.2

	switch choice := random.Float64(); {
	case choice < gridDiffuseChance:
		return material.NewLambertian(oklchToRGB(0.65, chroma, hue))
	case choice < gridMetalChance:
		return material.NewMetal(oklchToRGB(0.8, chroma, hue), random.Range(0, 0.5))
	default:
		return material.NewDielectric(1.5)
	}
}

func overlapsAny(point core.Vec3, centers []core.Vec3, distance float64) bool {
	for _, c := range centers {
		if point.Subtract(c).Length() < distance {
			return true
		}
	}
	return false
}
