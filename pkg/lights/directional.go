package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is a light at infinity shining along a fixed direction
type DirectionalLight struct {
	intensity core.Vec3
	direction core.Vec3
}

// NewDirectionalLight creates a directional light. The direction is normalized.
func NewDirectionalLight(intensity, direction core.Vec3) (*DirectionalLight, error) {
	dir, err := direction.Direction()
	if err != nil {
		return nil, fmt.Errorf("directional light: %w: %w", ErrInvalidLight, err)
	}
	return &DirectionalLight{intensity: intensity, direction: dir}, nil
}

func (l *DirectionalLight) Type() LightType { return LightTypeDirectional }

// Intensity is the same everywhere
func (l *DirectionalLight) Intensity(core.Vec3) core.Vec3 {
	return l.intensity
}

// Direction is the same everywhere
func (l *DirectionalLight) Direction(core.Vec3) core.Vec3 {
	return l.direction
}

// Distance is always infinite
func (l *DirectionalLight) Distance(core.Vec3) float64 {
	return math.Inf(1)
}

// Color returns the light intensity
func (l *DirectionalLight) Color() core.Vec3 {
	return l.intensity
}
