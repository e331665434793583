package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// rgb converts 8-bit channel values to a linear color
func rgb(r, g, b float64) core.Vec3 {
	return core.NewVec3(r, g, b).Multiply(1.0 / 255)
}

// NewMirrorsScene creates two nested spheres standing between two facing
// mirrors. Light bounces between the mirrors until it fades below the
// contribution threshold or the recursion limit is reached.
func NewMirrorsScene() *Scene {
	s := NewScene("mirrors")
	s.Ambient = lights.NewUniformAmbientLight(rgb(255, 255, 255), 0.1)

	center := core.NewVec3(-950, -900, -1000)
	outer := geometry.Must(geometry.NewSphere(center, 400))
	inner := geometry.Must(geometry.NewSphere(center, 200))

	mirror := material.NewMirror(1)
	tinted := material.NewMaterial()
	tinted.KR = core.NewVec3(0.5, 0, 0.4)

	back := geometry.Must(geometry.NewTriangle(
		core.NewVec3(1500, -1500, -1500), core.NewVec3(-1500, 1500, -1500), core.NewVec3(670, 670, 3000)))
	side := geometry.Must(geometry.NewTriangle(
		core.NewVec3(1500, -1500, -1500), core.NewVec3(-1500, 1500, -1500), core.NewVec3(-1500, -1500, -2000)))

	glass := material.NewDiffuse(0.25, 0.25, 20)
	glass.KT = core.NewVec3(0.5, 0, 0)

	s.Add(
		geometry.Shade(outer, rgb(0, 50, 100), glass),
		geometry.Shade(inner, rgb(100, 50, 20), material.NewDiffuse(0.25, 0.25, 20)),
		geometry.Shade(back, rgb(20, 20, 20), mirror),
		geometry.Shade(side, rgb(20, 20, 20), tinted),
	)

	spot := geometry.Must(lights.NewSpotLight(
		rgb(1020, 400, 400),
		core.NewVec3(-750, -750, -150),
		core.NewVec3(-1, -1, -4),
		lights.WithAttenuation(1, 0.00001, 0.000005),
	))
	s.AddLight(spot)

	s.View = View{
		Location: core.NewVec3(0, 0, 10000),
		Target:   core.NewVec3(0, 0, 0),
		Width:    2500,
		Height:   2500,
		Distance: 10000,
	}
	return s
}
