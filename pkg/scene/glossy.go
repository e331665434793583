package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewGlossyScene creates two spheres reflected in a glossy floor and partly
// hidden behind a blurry translucent pane
func NewGlossyScene() *Scene {
	s := NewScene("glossy")
	s.Ambient = lights.NewUniformAmbientLight(rgb(255, 255, 255), 0.15)
	s.Background = rgb(150, 150, 200)

	shiny := material.NewDiffuse(0.5, 0.5, 100)

	red := geometry.Must(geometry.NewSphere(core.NewVec3(-100, 50, 0), 90))
	green := geometry.Must(geometry.NewSphere(core.NewVec3(40, 80, 50), 70))
	floor := geometry.Must(geometry.NewPlane(core.NewVec3(0, 0, -90), core.AxisZ))
	pane := geometry.Must(geometry.NewPolygon(
		core.NewVec3(-100, -50, 200),
		core.NewVec3(-100, -50, -200),
		core.NewVec3(200, -50, -200),
		core.NewVec3(200, -50, 200),
	))

	s.Add(
		geometry.Shade(red, rgb(255, 0, 0), shiny),
		geometry.Shade(green, rgb(0, 255, 0), shiny),
		geometry.Shade(floor, rgb(0, 0, 255), shiny.WithKr(0.5).WithGlossiness(50)),
		geometry.Shade(pane, rgb(0, 0, 255), shiny.WithKt(0.5).WithBlurriness(50)),
	)

	sun := geometry.Must(lights.NewDirectionalLight(rgb(255, 255, 255), core.NewVec3(3, 1, 0)))
	s.AddLight(sun)

	s.View = View{
		Location: core.NewVec3(0, -400, 0),
		Target:   core.NewVec3(0, 0, 0),
		Width:    200,
		Height:   200,
		Distance: 100,
	}
	return s
}
