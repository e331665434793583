package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// AmbientLight is a constant light applied once to every visible surface
type AmbientLight struct {
	intensity core.Vec3
}

// NoAmbient is an ambient light contributing nothing
var NoAmbient = AmbientLight{}

// NewAmbientLight creates ambient light of color iA attenuated by kA
func NewAmbientLight(iA, kA core.Vec3) AmbientLight {
	return AmbientLight{intensity: iA.MultiplyVec(kA)}
}

// NewUniformAmbientLight creates ambient light with the same attenuation for every channel
func NewUniformAmbientLight(iA core.Vec3, kA float64) AmbientLight {
	return AmbientLight{intensity: iA.Multiply(kA)}
}

// Intensity returns the ambient color
func (a AmbientLight) Intensity() core.Vec3 {
	return a.intensity
}
