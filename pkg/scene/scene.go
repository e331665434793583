package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	Background core.Vec3            // Color of rays that hit nothing
	Ambient    lights.AmbientLight  // Added once to every visible surface
	Geometries *geometry.Geometries // Root composite of all surfaces
	Lights     []lights.LightSource
	View       View // Suggested camera setup
}

// View describes a camera setup that frames the scene
type View struct {
	Location core.Vec3 // Camera position
	Target   core.Vec3 // Point the camera looks at
	Width    float64   // View plane width
	Height   float64   // View plane height
	Distance float64   // Distance from the camera to the view plane
}

// NewScene creates an empty scene with a black background and no ambient light
func NewScene(name string) *Scene {
	return &Scene{
		Name:       name,
		Ambient:    lights.NoAmbient,
		Geometries: geometry.NewGeometries(),
		View: View{
			Location: core.NewVec3(0, 0, 100),
			Target:   core.NewVec3(0, 0, 0),
			Width:    100,
			Height:   100,
			Distance: 100,
		},
	}
}

// Add appends geometries to the root composite
func (s *Scene) Add(items ...geometry.Intersectable) *Scene {
	s.Geometries.Add(items...)
	return s
}

// AddLight appends light sources
func (s *Scene) AddLight(ls ...lights.LightSource) *Scene {
	s.Lights = append(s.Lights, ls...)
	return s
}

// BuildIndex returns a copy of the scene whose geometries are organized in a
// bounding volume hierarchy. The receiver is left untouched.
func (s *Scene) BuildIndex() *Scene {
	indexed := *s
	indexed.Geometries = s.Geometries.BuildIndex()
	indexed.Lights = append([]lights.LightSource(nil), s.Lights...)
	return &indexed
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.Geometries.Stats().Leaves
}
