package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// None absorbs every ray. It is a placeholder and should not be attached to scene geometry.
type None struct{}

// Scatter never scatters and returns a zero ray with black attenuation
func (None) Scatter(rayIn core.Ray, hit HitRecord, random core.Random) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Kind implements the Material interface
func (None) Kind() string { return "none" }

func (None) sealed() {}
