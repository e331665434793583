package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Material holds the Phong shading coefficients of a surface
type Material struct {
	KD         core.Vec3 // Diffuse attenuation
	KS         core.Vec3 // Specular attenuation
	Shininess  int       // Specular exponent
	KT         core.Vec3 // Transparency (refraction) attenuation
	KR         core.Vec3 // Reflection attenuation
	Glossiness float64   // Size of the reflected ray grid, 0 for a perfect mirror
	Blurriness float64   // Size of the refracted ray grid, 0 for clear transparency
}

// NewMaterial creates a black, fully opaque, non-reflective material
func NewMaterial() Material {
	return Material{}
}

// Uniform returns a color triple with all channels set to k
func Uniform(k float64) core.Vec3 {
	return core.NewVec3(k, k, k)
}

// WithKd returns a copy with a uniform diffuse coefficient
func (m Material) WithKd(kd float64) Material {
	m.KD = Uniform(kd)
	return m
}

// WithKs returns a copy with a uniform specular coefficient
func (m Material) WithKs(ks float64) Material {
	m.KS = Uniform(ks)
	return m
}

// WithShininess returns a copy with the given specular exponent
func (m Material) WithShininess(n int) Material {
	m.Shininess = n
	return m
}

// WithKt returns a copy with a uniform transparency coefficient
func (m Material) WithKt(kt float64) Material {
	m.KT = Uniform(kt)
	return m
}

// WithKr returns a copy with a uniform reflection coefficient
func (m Material) WithKr(kr float64) Material {
	m.KR = Uniform(kr)
	return m
}

// WithGlossiness returns a copy whose reflections are spread over a grid of the given size
func (m Material) WithGlossiness(size float64) Material {
	m.Glossiness = size
	return m
}

// WithBlurriness returns a copy whose refractions are spread over a grid of the given size
func (m Material) WithBlurriness(size float64) Material {
	m.Blurriness = size
	return m
}

// NewDiffuse creates a matte material with a Phong highlight
func NewDiffuse(kd, ks float64, shininess int) Material {
	return NewMaterial().WithKd(kd).WithKs(ks).WithShininess(shininess)
}

// NewMirror creates a reflective material
func NewMirror(kr float64) Material {
	return NewMaterial().WithKr(kr)
}

// NewGlass creates a transparent material
func NewGlass(kt float64) Material {
	return NewMaterial().WithKt(kt)
}
