package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Vec is a point, direction or color written as a JSON array [x, y, z]
type Vec [3]float64

func (v Vec) vec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

func toVec(v core.Vec3) Vec { return Vec{v.X, v.Y, v.Z} }

func toVecPtr(v core.Vec3) *Vec {
	out := toVec(v)
	return &out
}

// SceneFile is the JSON form of a scene
type SceneFile struct {
	Name       string      `json:"name"`
	Background Vec         `json:"background"`
	Ambient    *AmbientCfg `json:"ambient,omitempty"`
	View       *ViewCfg    `json:"view,omitempty"`
	Shapes     []ShapeCfg  `json:"shapes"`
	Lights     []LightCfg  `json:"lights,omitempty"`
}

// AmbientCfg is ambient light of color intensity attenuated by kA
type AmbientCfg struct {
	Intensity Vec `json:"intensity"`
	KA        Vec `json:"kA"`
}

// ViewCfg is the suggested camera setup
type ViewCfg struct {
	Location Vec     `json:"location"`
	Target   Vec     `json:"target"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Distance float64 `json:"distance"`
}

// MaterialCfg mirrors material.Material
type MaterialCfg struct {
	KD         Vec     `json:"kD"`
	KS         Vec     `json:"kS"`
	Shininess  int     `json:"shininess,omitempty"`
	KT         Vec     `json:"kT"`
	KR         Vec     `json:"kR"`
	Glossiness float64 `json:"glossiness,omitempty"`
	Blurriness float64 `json:"blurriness,omitempty"`
}

// ShapeCfg describes one shape. Which fields apply depends on Type:
//
//	sphere:   center, radius
//	plane:    point, normal
//	polygon:  vertices
//	triangle: vertices (3)
//	tube:     origin, direction, radius
//	cylinder: origin, direction, radius, height
//	disc:     center, normal, radius
//	box:      center, halfSize
//	mesh:     vertices and faces, or a PLY file relative to the scene file
type ShapeCfg struct {
	Type      string      `json:"type"`
	Center    *Vec        `json:"center,omitempty"`
	Point     *Vec        `json:"point,omitempty"`
	Normal    *Vec        `json:"normal,omitempty"`
	Origin    *Vec        `json:"origin,omitempty"`
	Direction *Vec        `json:"direction,omitempty"`
	HalfSize  *Vec        `json:"halfSize,omitempty"`
	Radius    float64     `json:"radius,omitempty"`
	Height    float64     `json:"height,omitempty"`
	Vertices  []Vec       `json:"vertices,omitempty"`
	Faces     []int       `json:"faces,omitempty"`
	File      string      `json:"file,omitempty"`
	Emission  Vec         `json:"emission"`
	Material  MaterialCfg `json:"material"`
}

// LightCfg describes one light source. Type is directional, point or spot.
type LightCfg struct {
	Type        string      `json:"type"`
	Intensity   Vec         `json:"intensity"`
	Position    *Vec        `json:"position,omitempty"`
	Direction   *Vec        `json:"direction,omitempty"`
	Attenuation *[3]float64 `json:"attenuation,omitempty"` // kC, kL, kQ
	Softness    float64     `json:"softness,omitempty"`
	NarrowBeam  float64     `json:"narrowBeam,omitempty"`
}

func required(shape, name string, v *Vec) (core.Vec3, error) {
	if v == nil {
		return core.Vec3{}, fmt.Errorf("%s: missing %q", shape, name)
	}
	return v.vec3(), nil
}

// Material converts the configuration to a material
func (m MaterialCfg) Material() material.Material {
	return material.Material{
		KD:         m.KD.vec3(),
		KS:         m.KS.vec3(),
		Shininess:  m.Shininess,
		KT:         m.KT.vec3(),
		KR:         m.KR.vec3(),
		Glossiness: m.Glossiness,
		Blurriness: m.Blurriness,
	}
}

func materialCfg(m material.Material) MaterialCfg {
	return MaterialCfg{
		KD:         toVec(m.KD),
		KS:         toVec(m.KS),
		Shininess:  m.Shininess,
		KT:         toVec(m.KT),
		KR:         toVec(m.KR),
		Glossiness: m.Glossiness,
		Blurriness: m.Blurriness,
	}
}

// Build validates the configuration and constructs the shape. baseDir
// resolves relative mesh file paths.
func (c ShapeCfg) Build(baseDir string) (geometry.Intersectable, error) {
	shading := geometry.Shading{Emission: c.Emission.vec3(), Material: c.Material.Material()}
	shade := func(g geometry.Geometry, err error) (geometry.Intersectable, error) {
		if err != nil {
			return nil, err
		}
		return geometry.Shade(g, shading.Emission, shading.Material), nil
	}

	switch c.Type {
	case "sphere":
		center, err := required(c.Type, "center", c.Center)
		if err != nil {
			return nil, err
		}
		return shade(geometry.NewSphere(center, c.Radius))
	case "plane":
		point, err := required(c.Type, "point", c.Point)
		if err != nil {
			return nil, err
		}
		normal, err := required(c.Type, "normal", c.Normal)
		if err != nil {
			return nil, err
		}
		return shade(geometry.NewPlane(point, normal))
	case "polygon":
		return shade(geometry.NewPolygon(vec3s(c.Vertices)...))
	case "triangle":
		if len(c.Vertices) != 3 {
			return nil, fmt.Errorf("triangle: need 3 vertices, got %d", len(c.Vertices))
		}
		return shade(geometry.NewTriangle(c.Vertices[0].vec3(), c.Vertices[1].vec3(), c.Vertices[2].vec3()))
	case "tube", "cylinder":
		origin, err := required(c.Type, "origin", c.Origin)
		if err != nil {
			return nil, err
		}
		direction, err := required(c.Type, "direction", c.Direction)
		if err != nil {
			return nil, err
		}
		axis := core.NewRay(origin, direction)
		if c.Type == "tube" {
			return shade(geometry.NewTube(axis, c.Radius))
		}
		return shade(geometry.NewCylinder(axis, c.Radius, c.Height))
	case "disc":
		center, err := required(c.Type, "center", c.Center)
		if err != nil {
			return nil, err
		}
		normal, err := required(c.Type, "normal", c.Normal)
		if err != nil {
			return nil, err
		}
		return shade(geometry.NewDisc(center, normal, c.Radius))
	case "box":
		center, err := required(c.Type, "center", c.Center)
		if err != nil {
			return nil, err
		}
		halfSize, err := required(c.Type, "halfSize", c.HalfSize)
		if err != nil {
			return nil, err
		}
		return geometry.NewBox(center, halfSize, shading)
	case "mesh":
		vertices, faces := vec3s(c.Vertices), c.Faces
		if c.File != "" {
			path := c.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			data, err := LoadPLY(path)
			if err != nil {
				return nil, fmt.Errorf("mesh: %w", err)
			}
			vertices, faces = data.Vertices, data.Faces
		}
		return geometry.NewTriangleMesh(vertices, faces, shading)
	}
	return nil, fmt.Errorf("unknown shape type %q", c.Type)
}

func vec3s(vs []Vec) []core.Vec3 {
	out := make([]core.Vec3, len(vs))
	for i, v := range vs {
		out[i] = v.vec3()
	}
	return out
}

// Build validates the configuration and constructs the light
func (c LightCfg) Build() (lights.LightSource, error) {
	var opts []lights.Option
	if c.Attenuation != nil {
		opts = append(opts, lights.WithAttenuation(c.Attenuation[0], c.Attenuation[1], c.Attenuation[2]))
	}
	if c.Softness != 0 {
		opts = append(opts, lights.WithShadowSoftness(c.Softness))
	}
	if c.NarrowBeam != 0 {
		opts = append(opts, lights.WithNarrowBeam(c.NarrowBeam))
	}

	switch c.Type {
	case "directional":
		direction, err := required(c.Type, "direction", c.Direction)
		if err != nil {
			return nil, err
		}
		return lights.NewDirectionalLight(c.Intensity.vec3(), direction)
	case "point":
		position, err := required(c.Type, "position", c.Position)
		if err != nil {
			return nil, err
		}
		return lights.NewPointLight(c.Intensity.vec3(), position, opts...)
	case "spot":
		position, err := required(c.Type, "position", c.Position)
		if err != nil {
			return nil, err
		}
		direction, err := required(c.Type, "direction", c.Direction)
		if err != nil {
			return nil, err
		}
		return lights.NewSpotLight(c.Intensity.vec3(), position, direction, opts...)
	}
	return nil, fmt.Errorf("unknown light type %q", c.Type)
}

// Build constructs the scene. baseDir resolves relative mesh file paths.
func (f *SceneFile) Build(baseDir string) (*scene.Scene, error) {
	s := scene.NewScene(f.Name)
	s.Background = f.Background.vec3()
	if f.Ambient != nil {
		s.Ambient = lights.NewAmbientLight(f.Ambient.Intensity.vec3(), f.Ambient.KA.vec3())
	}
	if f.View != nil {
		s.View = scene.View{
			Location: f.View.Location.vec3(),
			Target:   f.View.Target.vec3(),
			Width:    f.View.Width,
			Height:   f.View.Height,
			Distance: f.View.Distance,
		}
	}

	for i, shape := range f.Shapes {
		g, err := shape.Build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		s.Add(g)
	}
	for i, light := range f.Lights {
		l, err := light.Build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(l)
	}
	return s, nil
}

// ParseScene decodes a JSON scene. Unknown fields are rejected so typos surface.
func ParseScene(r io.Reader, baseDir string) (*scene.Scene, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var f SceneFile
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return f.Build(baseDir)
}

// LoadScene loads a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := ParseScene(bytes.NewReader(data), filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// NewSceneFile converts a scene to its JSON form. Composites are flattened,
// so boxes and meshes are written as their individual faces.
func NewSceneFile(s *scene.Scene) (*SceneFile, error) {
	view := s.View
	f := &SceneFile{
		Name:       s.Name,
		Background: toVec(s.Background),
		Ambient:    &AmbientCfg{Intensity: toVec(s.Ambient.Intensity()), KA: Vec{1, 1, 1}},
		View: &ViewCfg{
			Location: toVec(view.Location),
			Target:   toVec(view.Target),
			Width:    view.Width,
			Height:   view.Height,
			Distance: view.Distance,
		},
	}

	for _, item := range s.Geometries.Flatten().Items() {
		shape, err := shapeCfg(item)
		if err != nil {
			return nil, err
		}
		f.Shapes = append(f.Shapes, shape)
	}
	for _, light := range s.Lights {
		l, err := lightCfg(light)
		if err != nil {
			return nil, err
		}
		f.Lights = append(f.Lights, l)
	}
	return f, nil
}

func shapeCfg(item geometry.Intersectable) (ShapeCfg, error) {
	g, ok := item.(geometry.Geometry)
	if !ok {
		return ShapeCfg{}, fmt.Errorf("cannot save shape of type %T", item)
	}
	c := ShapeCfg{Emission: toVec(g.GetEmission()), Material: materialCfg(g.GetMaterial())}

	switch shape := g.(type) {
	case *geometry.Sphere:
		c.Type, c.Center, c.Radius = "sphere", toVecPtr(shape.Center), shape.Radius
	case *geometry.Plane:
		c.Type, c.Point, c.Normal = "plane", toVecPtr(shape.Point), toVecPtr(shape.Normal)
	case *geometry.Triangle:
		c.Type, c.Vertices = "triangle", toVecs(shape.Vertices)
	case *geometry.Polygon:
		c.Type, c.Vertices = "polygon", toVecs(shape.Vertices)
	case *geometry.Cylinder:
		c.Type, c.Height = "cylinder", shape.Height
		c.Origin, c.Direction, c.Radius = toVecPtr(shape.Axis.Origin), toVecPtr(shape.Axis.Direction), shape.Radius
	case *geometry.Tube:
		c.Type = "tube"
		c.Origin, c.Direction, c.Radius = toVecPtr(shape.Axis.Origin), toVecPtr(shape.Axis.Direction), shape.Radius
	case *geometry.Disc:
		c.Type, c.Center, c.Normal, c.Radius = "disc", toVecPtr(shape.Center), toVecPtr(shape.Normal), shape.Radius
	default:
		return ShapeCfg{}, fmt.Errorf("cannot save shape of type %T", item)
	}
	return c, nil
}

func toVecs(vs []core.Vec3) []Vec {
	out := make([]Vec, len(vs))
	for i, v := range vs {
		out[i] = toVec(v)
	}
	return out
}

func lightCfg(light lights.LightSource) (LightCfg, error) {
	switch l := light.(type) {
	case *lights.DirectionalLight:
		return LightCfg{Type: "directional", Intensity: toVec(l.Color()), Direction: toVecPtr(l.Direction(core.Vec3{}))}, nil
	case *lights.SpotLight:
		c := pointCfg(&l.PointLight)
		c.Type, c.Direction, c.NarrowBeam = "spot", toVecPtr(l.Aim()), l.NarrowBeam()
		return c, nil
	case *lights.PointLight:
		return pointCfg(l), nil
	}
	return LightCfg{}, fmt.Errorf("cannot save light of type %T", light)
}

func pointCfg(l *lights.PointLight) LightCfg {
	kC, kL, kQ := l.Attenuation()
	return LightCfg{
		Type:        "point",
		Intensity:   toVec(l.Color()),
		Position:    toVecPtr(l.Position()),
		Attenuation: &[3]float64{kC, kL, kQ},
		Softness:    l.ShadowSoftness(),
	}
}

// SaveScene writes a scene as indented JSON
func SaveScene(filename string, s *scene.Scene) error {
	f, err := NewSceneFile(s)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	return nil
}
