package material

import (
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestNone_Absorbs(t *testing.T) {
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{Normal: core.NewVec3(0, 0, 1), Material: None{}}

	scatter, didScatter := hit.Scatter(rayIn, core.NewFixedRandom(0.5))
	if didScatter {
		t.Error("None should never scatter")
	}
	if scatter != (ScatterResult{}) {
		t.Errorf("Expected zero scatter result, got %+v", scatter)
	}
}

func TestHitRecord_NilMaterialAbsorbs(t *testing.T) {
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{Normal: core.NewVec3(0, 0, 1)}

	if _, didScatter := hit.Scatter(rayIn, core.NewFixedRandom(0.5)); didScatter {
		t.Error("A hit without material should be absorbed")
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 1, 0)

	tests := []struct {
		name           string
		direction      core.Vec3
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{"entering", core.NewVec3(0, -1, 0), true, outward},
		{"leaving", core.NewVec3(0, 1, 0), false, outward.Negate()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			hit.SetFaceNormal(core.NewRay(core.Vec3{}, tt.direction), outward)
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.Equals(tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Normal.Dot(tt.direction) >= 0 {
				t.Error("Normal should face against the ray")
			}
		})
	}
}

func TestMaterial_Kinds(t *testing.T) {
	materials := map[string]Material{
		"lambertian": NewLambertian(core.NewVec3(1, 1, 1)),
		"metal":      NewMetal(core.NewVec3(1, 1, 1), 0),
		"dielectric": NewDielectric(1.5),
		"none":       None{},
	}
	for kind, m := range materials {
		if m.Kind() != kind {
			t.Errorf("Expected kind %q, got %q", kind, m.Kind())
		}
	}
}
