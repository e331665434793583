package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SpotLight is a point light that only shines into the half space in front
// of its direction, strongest along the direction itself
type SpotLight struct {
	PointLight
	direction  core.Vec3
	narrowBeam float64
}

// NewSpotLight creates a spot light aimed along direction
func NewSpotLight(intensity, position, direction core.Vec3, opts ...Option) (*SpotLight, error) {
	dir, err := direction.Direction()
	if err != nil {
		return nil, fmt.Errorf("spot light: %w: %w", ErrInvalidLight, err)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("spot light: %w", err)
	}
	return &SpotLight{
		PointLight: *newPointLight(intensity, position, o),
		direction:  dir,
		narrowBeam: o.narrowBeam,
	}, nil
}

func (l *SpotLight) Type() LightType { return LightTypeSpot }

// Intensity scales the point light intensity by the beam factor, black behind the spot
func (l *SpotLight) Intensity(p core.Vec3) core.Vec3 {
	cos := core.AlignZero(l.direction.Dot(l.Direction(p)))
	if cos <= 0 {
		return core.Vec3{}
	}
	return l.PointLight.Intensity(p).Multiply(math.Pow(cos, l.narrowBeam))
}

// Aim returns the spot direction
func (l *SpotLight) Aim() core.Vec3 {
	return l.direction
}

// NarrowBeam returns the beam exponent
func (l *SpotLight) NarrowBeam() float64 {
	return l.narrowBeam
}
