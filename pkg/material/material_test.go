package material

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewMaterial_Defaults(t *testing.T) {
	m := NewMaterial()

	if m.KD != (core.Vec3{}) || m.KS != (core.Vec3{}) || m.KT != (core.Vec3{}) || m.KR != (core.Vec3{}) {
		t.Errorf("Expected all coefficients to be zero, got %+v", m)
	}
	if m.Shininess != 0 || m.Glossiness != 0 || m.Blurriness != 0 {
		t.Errorf("Expected zero shininess and grid sizes, got %+v", m)
	}
}

func TestMaterial_WithSettersDoNotMutate(t *testing.T) {
	base := NewDiffuse(0.5, 0.3, 20)
	glossy := base.WithKr(0.4).WithGlossiness(2)

	if base.KR != (core.Vec3{}) || base.Glossiness != 0 {
		t.Errorf("Expected base material to be unchanged, got %+v", base)
	}
	if glossy.KR != Uniform(0.4) {
		t.Errorf("Expected KR %v, got %v", Uniform(0.4), glossy.KR)
	}
	if glossy.KD != Uniform(0.5) || glossy.KS != Uniform(0.3) || glossy.Shininess != 20 {
		t.Errorf("Expected diffuse settings to carry over, got %+v", glossy)
	}
	if glossy.Glossiness != 2 {
		t.Errorf("Expected glossiness 2, got %f", glossy.Glossiness)
	}
}

func TestMaterial_Presets(t *testing.T) {
	tests := []struct {
		name     string
		material Material
		expected Material
	}{
		{"mirror", NewMirror(0.9), Material{KR: Uniform(0.9)}},
		{"glass", NewGlass(0.6), Material{KT: Uniform(0.6)}},
		{"glass blurred", NewGlass(0.6).WithBlurriness(3), Material{KT: Uniform(0.6), Blurriness: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.material != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, tt.material)
			}
		})
	}
}
