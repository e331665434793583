package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewShapesScene creates one of every primitive on a reflective floor, lit
// by soft shadow point and spot lights plus a dim directional fill
func NewShapesScene() *Scene {
	s := NewScene("shapes")
	s.Ambient = lights.NewUniformAmbientLight(rgb(255, 255, 255), 0.05)
	s.Background = rgb(20, 20, 40)

	matte := material.NewDiffuse(0.6, 0.3, 40)
	floorMat := material.NewDiffuse(0.4, 0.2, 20).WithKr(0.3).WithGlossiness(10)

	floor := geometry.Must(geometry.NewPlane(core.NewVec3(0, -50, 0), core.AxisY))
	ball := geometry.Must(geometry.NewSphere(core.NewVec3(-90, -20, 0), 30))
	glassBall := geometry.Must(geometry.NewSphere(core.NewVec3(0, -25, 60), 25))
	can := geometry.Must(geometry.NewCylinder(
		core.NewRay(core.NewVec3(70, -50, -10), core.AxisY), 25, 70))
	pillar := geometry.Must(geometry.NewTube(
		core.NewRay(core.NewVec3(150, 0, -200), core.AxisY), 15))
	plate := geometry.Must(geometry.NewDisc(core.NewVec3(0, 20, -80), core.NewVec3(0, 0.3, 1), 40))
	sail := geometry.Must(geometry.NewTriangle(
		core.NewVec3(-160, -50, -120), core.NewVec3(-60, -50, -120), core.NewVec3(-110, 60, -140)))
	pentagon := geometry.Must(geometry.NewPolygon(
		core.NewVec3(30, -49, 100), core.NewVec3(60, -49, 90), core.NewVec3(65, -49, 120),
		core.NewVec3(45, -49, 140), core.NewVec3(25, -49, 125),
	))

	crate := geometry.Must(geometry.NewBox(core.NewVec3(-20, -35, -20), core.NewVec3(15, 15, 15),
		geometry.Shading{Emission: rgb(120, 80, 40), Material: matte}))
	pyramid := geometry.Must(geometry.NewTriangleMesh(
		[]core.Vec3{
			core.NewVec3(100, -50, 60), core.NewVec3(140, -50, 60),
			core.NewVec3(140, -50, 100), core.NewVec3(100, -50, 100),
			core.NewVec3(120, -10, 80),
		},
		[]int{0, 1, 4, 1, 2, 4, 2, 3, 4, 3, 0, 4},
		geometry.Shading{Emission: rgb(200, 180, 40), Material: matte},
	))

	s.Add(
		geometry.Shade(floor, rgb(40, 40, 40), floorMat),
		geometry.Shade(ball, rgb(180, 30, 30), matte),
		geometry.Shade(glassBall, rgb(10, 10, 30), material.NewDiffuse(0.1, 0.8, 200).WithKt(0.7)),
		geometry.Shade(can, rgb(30, 120, 180), matte),
		geometry.Shade(pillar, rgb(90, 90, 90), material.NewMirror(0.6)),
		geometry.Shade(plate, rgb(30, 160, 60), matte.WithKt(0.3).WithBlurriness(8)),
		geometry.Shade(sail, rgb(160, 60, 160), matte),
		geometry.Shade(pentagon, rgb(220, 220, 220), matte),
		crate,
		pyramid,
	)

	point := geometry.Must(lights.NewPointLight(rgb(400, 380, 360), core.NewVec3(-100, 150, 150),
		lights.WithAttenuation(1, 0.0005, 0.00001), lights.WithShadowSoftness(20)))
	spot := geometry.Must(lights.NewSpotLight(rgb(500, 500, 600), core.NewVec3(100, 200, 100), core.NewVec3(-0.5, -1, -0.5),
		lights.WithAttenuation(1, 0.0005, 0.00001), lights.WithShadowSoftness(10), lights.WithNarrowBeam(4)))
	fill := geometry.Must(lights.NewDirectionalLight(rgb(40, 40, 50), core.NewVec3(1, -1, -1)))
	s.AddLight(point, spot, fill)

	s.View = View{
		Location: core.NewVec3(0, 80, 500),
		Target:   core.NewVec3(0, -20, 0),
		Width:    320,
		Height:   240,
		Distance: 400,
	}
	return s
}
