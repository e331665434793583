package lights

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidLight is wrapped by every light construction error
var ErrInvalidLight = errors.New("invalid light")

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
	LightTypeSpot        LightType = "spot"
)

// LightSource is a light that illuminates points from a direction
type LightSource interface {
	Type() LightType

	// Intensity returns the light color arriving at p
	Intensity(p core.Vec3) core.Vec3

	// Direction returns the unit vector from the light toward p
	Direction(p core.Vec3) core.Vec3

	// Distance returns the distance from the light to p, +Inf for lights at infinity
	Distance(p core.Vec3) float64
}

// SoftShadowLight is a light with a finite emitting area used for soft shadows
type SoftShadowLight interface {
	LightSource
	Position() core.Vec3

	// ShadowSoftness is the side of the square around Position that shadow
	// rays are spread over. Zero means hard shadows.
	ShadowSoftness() float64
}
