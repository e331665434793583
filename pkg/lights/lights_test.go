package lights

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func near(a, b core.Vec3) bool {
	const tolerance = 1e-9
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance && math.Abs(a.Z-b.Z) <= tolerance
}

func TestAmbientLight(t *testing.T) {
	a := NewAmbientLight(core.NewVec3(1, 0.5, 0.2), core.NewVec3(0.5, 0.5, 1))
	if !near(a.Intensity(), core.NewVec3(0.5, 0.25, 0.2)) {
		t.Errorf("Unexpected ambient intensity %v", a.Intensity())
	}
	u := NewUniformAmbientLight(core.NewVec3(1, 1, 1), 0.1)
	if !near(u.Intensity(), core.NewVec3(0.1, 0.1, 0.1)) {
		t.Errorf("Unexpected uniform ambient intensity %v", u.Intensity())
	}
	if NoAmbient.Intensity() != (core.Vec3{}) {
		t.Errorf("Expected black, got %v", NoAmbient.Intensity())
	}
}

func TestDirectionalLight(t *testing.T) {
	l, err := NewDirectionalLight(core.NewVec3(1, 1, 1), core.NewVec3(0, -2, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	p := core.NewVec3(5, 5, 5)
	if l.Direction(p) != core.NewVec3(0, -1, 0) {
		t.Errorf("Expected normalized direction, got %v", l.Direction(p))
	}
	if !math.IsInf(l.Distance(p), 1) {
		t.Errorf("Expected infinite distance, got %f", l.Distance(p))
	}
	if l.Intensity(p) != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected constant intensity, got %v", l.Intensity(p))
	}

	_, err = NewDirectionalLight(core.NewVec3(1, 1, 1), core.Vec3{})
	if !errors.Is(err, ErrInvalidLight) || !errors.Is(err, core.ErrZeroVector) {
		t.Errorf("Expected ErrInvalidLight wrapping ErrZeroVector, got %v", err)
	}
}

func TestPointLight(t *testing.T) {
	l, err := NewPointLight(core.NewVec3(10, 10, 10), core.NewVec3(0, 0, 0), WithAttenuation(1, 1, 1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	p := core.NewVec3(0, 2, 0)

	// 10 / (1 + 2 + 4)
	want := core.NewVec3(10.0/7, 10.0/7, 10.0/7)
	if !near(l.Intensity(p), want) {
		t.Errorf("Expected %v, got %v", want, l.Intensity(p))
	}
	if !near(l.Direction(p), core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected direction away from the light, got %v", l.Direction(p))
	}
	if l.Distance(p) != 2 {
		t.Errorf("Expected distance 2, got %f", l.Distance(p))
	}
	if l.ShadowSoftness() != 0 {
		t.Errorf("Expected hard shadows by default, got %f", l.ShadowSoftness())
	}
}

func TestPointLight_DefaultsDoNotAttenuate(t *testing.T) {
	l, err := NewPointLight(core.NewVec3(1, 2, 3), core.NewVec3(0, 0, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := l.Intensity(core.NewVec3(100, 0, 0)); got != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected unattenuated intensity, got %v", got)
	}
}

func TestPointLight_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"negative attenuation", WithAttenuation(1, -1, 0)},
		{"zero attenuation", WithAttenuation(0, 0, 0)},
		{"negative softness", WithShadowSoftness(-1)},
		{"zero narrow beam", WithNarrowBeam(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPointLight(core.NewVec3(1, 1, 1), core.Vec3{}, tt.opt); !errors.Is(err, ErrInvalidLight) {
				t.Errorf("Expected ErrInvalidLight, got %v", err)
			}
		})
	}
}

func TestSpotLight(t *testing.T) {
	spot, err := NewSpotLight(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		point core.Vec3
		want  core.Vec3
	}{
		{"straight ahead", core.NewVec3(0, 0, -5), core.NewVec3(1, 1, 1)},
		{"at 60 degrees", core.NewVec3(math.Sqrt(3), 0, -1), core.NewVec3(0.5, 0.5, 0.5)},
		{"sideways", core.NewVec3(1, 0, 0), core.Vec3{}},
		{"behind", core.NewVec3(0, 0, 5), core.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spot.Intensity(tt.point); !near(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSpotLight_NarrowBeam(t *testing.T) {
	spot, err := NewSpotLight(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1),
		WithNarrowBeam(2), WithShadowSoftness(0.5))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got := spot.Intensity(core.NewVec3(math.Sqrt(3), 0, -1))
	if !near(got, core.NewVec3(0.25, 0.25, 0.25)) {
		t.Errorf("Expected cos^2 falloff, got %v", got)
	}

	var light LightSource = spot
	soft, ok := light.(SoftShadowLight)
	if !ok || soft.ShadowSoftness() != 0.5 {
		t.Errorf("Expected spot light to expose shadow softness 0.5")
	}
	if light.Type() != LightTypeSpot {
		t.Errorf("Expected spot type, got %s", light.Type())
	}
}
