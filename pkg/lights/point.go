package lights

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Option configures point and spot lights
type Option func(*options)

type options struct {
	kC, kL, kQ float64
	softness   float64
	narrowBeam float64
}

func defaultOptions() options {
	return options{kC: 1, narrowBeam: 1}
}

// WithAttenuation sets the constant, linear and quadratic attenuation factors
func WithAttenuation(kC, kL, kQ float64) Option {
	return func(o *options) {
		o.kC, o.kL, o.kQ = kC, kL, kQ
	}
}

// WithShadowSoftness sets the size of the square shadow rays are spread over
func WithShadowSoftness(size float64) Option {
	return func(o *options) {
		o.softness = size
	}
}

// WithNarrowBeam sets the exponent focusing a spot light beam. Ignored by point lights.
func WithNarrowBeam(exponent float64) Option {
	return func(o *options) {
		o.narrowBeam = exponent
	}
}

func (o options) validate() error {
	if o.kC < 0 || o.kL < 0 || o.kQ < 0 {
		return fmt.Errorf("attenuation factors must not be negative (%g, %g, %g): %w", o.kC, o.kL, o.kQ, ErrInvalidLight)
	}
	if o.kC == 0 && o.kL == 0 && o.kQ == 0 {
		return fmt.Errorf("attenuation factors are all zero: %w", ErrInvalidLight)
	}
	if o.softness < 0 {
		return fmt.Errorf("shadow softness must not be negative, got %g: %w", o.softness, ErrInvalidLight)
	}
	if o.narrowBeam <= 0 {
		return fmt.Errorf("narrow beam must be positive, got %g: %w", o.narrowBeam, ErrInvalidLight)
	}
	return nil
}

// PointLight radiates in all directions from a position and fades with distance
type PointLight struct {
	intensity core.Vec3
	position  core.Vec3
	kC        float64 // Constant attenuation
	kL        float64 // Linear attenuation
	kQ        float64 // Quadratic attenuation
	softness  float64
}

// NewPointLight creates a point light with no attenuation unless configured
func NewPointLight(intensity, position core.Vec3, opts ...Option) (*PointLight, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("point light: %w", err)
	}
	return newPointLight(intensity, position, o), nil
}

func newPointLight(intensity, position core.Vec3, o options) *PointLight {
	return &PointLight{
		intensity: intensity,
		position:  position,
		kC:        o.kC,
		kL:        o.kL,
		kQ:        o.kQ,
		softness:  o.softness,
	}
}

func (l *PointLight) Type() LightType { return LightTypePoint }

// Intensity returns the attenuated intensity at p
func (l *PointLight) Intensity(p core.Vec3) core.Vec3 {
	d := l.position.Distance(p)
	return l.intensity.Multiply(1 / (l.kC + l.kL*d + l.kQ*d*d))
}

// Direction returns the unit vector from the light to p
func (l *PointLight) Direction(p core.Vec3) core.Vec3 {
	return p.Subtract(l.position).Normalize()
}

// Distance returns the distance from the light to p
func (l *PointLight) Distance(p core.Vec3) float64 {
	return l.position.Distance(p)
}

// Position returns the light position
func (l *PointLight) Position() core.Vec3 {
	return l.position
}

// ShadowSoftness returns the soft shadow area size
func (l *PointLight) ShadowSoftness() float64 {
	return l.softness
}

// Color returns the unattenuated intensity
func (l *PointLight) Color() core.Vec3 {
	return l.intensity
}

// Attenuation returns the constant, linear and quadratic factors
func (l *PointLight) Attenuation() (kC, kL, kQ float64) {
	return l.kC, l.kL, l.kQ
}
