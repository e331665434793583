package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidRayTracer is wrapped by ray tracer construction errors
var ErrInvalidRayTracer = errors.New("invalid ray tracer")

// Defaults of the recursive shading engine
const (
	DefaultMaxLevel = 10
	DefaultMinK     = 0.001
)

// RayTracer computes the color seen along a ray
type RayTracer interface {
	TraceRay(ray core.Ray) core.Vec3
}

// Option configures a SimpleRayTracer
type Option func(*SimpleRayTracer)

// WithDensity sets the cells per side of soft shadow, glossy and blurry grids
func WithDensity(density int) Option {
	return func(rt *SimpleRayTracer) { rt.density = density }
}

// WithMaxLevel sets the maximum recursion depth
func WithMaxLevel(level int) Option {
	return func(rt *SimpleRayTracer) { rt.maxLevel = level }
}

// WithMinK sets the contribution below which a branch is not traced
func WithMinK(minK float64) Option {
	return func(rt *SimpleRayTracer) { rt.minK = minK }
}

// WithJitter randomizes sample positions within each grid cell.
// Without it grids are regular and renders are deterministic.
func WithJitter(sampler core.Sampler) Option {
	return func(rt *SimpleRayTracer) { rt.sampler = sampler }
}

// SimpleRayTracer is a recursive Whitted style ray tracer with Phong local
// shading, transparency aware shadows, soft shadows and glossy or blurry
// reflection and refraction
type SimpleRayTracer struct {
	scene    *scene.Scene
	density  int
	maxLevel int
	minK     float64
	sampler  core.Sampler // nil for regular grids
}

var ones = core.NewVec3(1, 1, 1)

// NewSimpleRayTracer creates a ray tracer over an indexed scene
func NewSimpleRayTracer(s *scene.Scene, opts ...Option) (*SimpleRayTracer, error) {
	if s == nil || s.Geometries == nil {
		return nil, fmt.Errorf("ray tracer: scene has no geometries: %w", ErrInvalidRayTracer)
	}
	rt := &SimpleRayTracer{
		scene:    s,
		density:  DefaultDensity,
		maxLevel: DefaultMaxLevel,
		minK:     DefaultMinK,
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.density <= 0 {
		return nil, fmt.Errorf("ray tracer: density must be positive, got %d: %w", rt.density, ErrInvalidRayTracer)
	}
	if rt.maxLevel < 1 {
		return nil, fmt.Errorf("ray tracer: max level must be at least 1, got %d: %w", rt.maxLevel, ErrInvalidRayTracer)
	}
	if rt.minK <= 0 || rt.minK >= 1 {
		return nil, fmt.Errorf("ray tracer: min k must be in (0, 1), got %g: %w", rt.minK, ErrInvalidRayTracer)
	}
	return rt, nil
}

// TraceRay returns the color of the closest hit, or the background on a miss
func (rt *SimpleRayTracer) TraceRay(ray core.Ray) core.Vec3 {
	gp, ok := rt.findClosestIntersection(ray)
	if !ok {
		return rt.scene.Background
	}
	return rt.CalcColor(gp, ray)
}

// CalcColor returns the full color at a hit, with ambient light added once
func (rt *SimpleRayTracer) CalcColor(gp geometry.GeoPoint, ray core.Ray) core.Vec3 {
	return rt.calcColor(gp, ray, rt.maxLevel, ones).Add(rt.scene.Ambient.Intensity())
}

func (rt *SimpleRayTracer) calcColor(gp geometry.GeoPoint, ray core.Ray, level int, k core.Vec3) core.Vec3 {
	color := rt.calcLocalEffects(gp, ray, k)
	if level == 1 {
		return color
	}
	return color.Add(rt.calcGlobalEffects(gp, ray, level, k))
}

func (rt *SimpleRayTracer) findClosestIntersection(ray core.Ray) (geometry.GeoPoint, bool) {
	return geometry.ClosestGeoPoint(ray.Origin, rt.scene.Geometries.FindGeoIntersections(ray, geometry.Unbounded))
}

// calcLocalEffects sums the emission with the diffuse and specular light of
// every light source visible from the same side as the viewer
func (rt *SimpleRayTracer) calcLocalEffects(gp geometry.GeoPoint, ray core.Ray, k core.Vec3) core.Vec3 {
	color := gp.Geometry.GetEmission()
	n := gp.Geometry.GetNormal(gp.Point)
	v := ray.Direction
	nv := core.AlignZero(n.Dot(v))
	if nv == 0 {
		return color
	}

	m := gp.Geometry.GetMaterial()
	for _, light := range rt.scene.Lights {
		l := light.Direction(gp.Point)
		nl := core.AlignZero(n.Dot(l))
		if !core.CompareSign(nl, nv) {
			continue
		}

		ktr := rt.shadowTransparency(gp, l, n, light)
		if ktr.MultiplyVec(k).LowerThan(rt.minK) {
			continue
		}

		iL := light.Intensity(gp.Point).MultiplyVec(ktr)
		diffuse := m.KD.Multiply(math.Abs(nl))
		specular := rt.calcSpecular(m.KS, m.Shininess, n, l, v)
		color = color.Add(iL.MultiplyVec(diffuse.Add(specular)))
	}
	return color
}

func (rt *SimpleRayTracer) calcSpecular(ks core.Vec3, shininess int, n, l, v core.Vec3) core.Vec3 {
	vr := core.AlignZero(v.Dot(l.Reflect(n)))
	if vr >= 0 {
		return core.Vec3{}
	}
	return ks.Multiply(math.Pow(-vr, float64(shininess)))
}

// shadowTransparency returns how much of the light reaches the point: a
// single shadow ray for hard shadows, the average over a grid spanning the
// light's soft shadow area otherwise
func (rt *SimpleRayTracer) shadowTransparency(gp geometry.GeoPoint, l, n core.Vec3, light lights.LightSource) core.Vec3 {
	toLight := l.Negate()
	distance := light.Distance(gp.Point)

	soft, ok := light.(lights.SoftShadowLight)
	if !ok || core.IsZero(soft.ShadowSoftness()) {
		return rt.transparency(core.NewOffsetRay(gp.Point, toLight, n), distance)
	}

	area := NewTargetArea(core.NewRay(gp.Point, toLight), soft.ShadowSoftness(), rt.density)
	area.Distance = distance

	side := toLight.Dot(n)
	var ktr core.Vec3
	count := 0
	for _, target := range area.GridPoints(rt.sampler) {
		dir := target.Subtract(gp.Point)
		if !core.CompareSign(dir.Dot(n), side) {
			continue
		}
		ktr = ktr.Add(rt.transparency(core.NewOffsetRay(gp.Point, dir, n), dir.Length()))
		count++
	}
	if count == 0 {
		return rt.transparency(core.NewOffsetRay(gp.Point, toLight, n), distance)
	}
	return ktr.Multiply(1 / float64(count))
}

// transparency multiplies the transparency of everything a shadow ray
// passes before maxDistance, giving up once the product is negligible
func (rt *SimpleRayTracer) transparency(shadowRay core.Ray, maxDistance float64) core.Vec3 {
	ktr := ones
	for _, gp := range rt.scene.Geometries.FindGeoIntersections(shadowRay, maxDistance) {
		ktr = ktr.MultiplyVec(gp.Geometry.GetMaterial().KT)
		if ktr.LowerThan(rt.minK) {
			return core.Vec3{}
		}
	}
	return ktr
}

// calcGlobalEffects traces the reflected and refracted rays, each spread
// over a grid when the material is glossy or blurry
func (rt *SimpleRayTracer) calcGlobalEffects(gp geometry.GeoPoint, ray core.Ray, level int, k core.Vec3) core.Vec3 {
	v := ray.Direction
	n := gp.Geometry.GetNormal(gp.Point)
	m := gp.Geometry.GetMaterial()

	reflected := core.NewOffsetRay(gp.Point, v.Reflect(n), n)
	refracted := core.NewOffsetRay(gp.Point, v, n)
	return rt.calcAverageEffect(reflected, n, level, k, m.KR, m.Glossiness).
		Add(rt.calcAverageEffect(refracted, n, level, k, m.KT, m.Blurriness))
}

func (rt *SimpleRayTracer) calcAverageEffect(base core.Ray, n core.Vec3, level int, k, kx core.Vec3, size float64) core.Vec3 {
	if k.MultiplyVec(kx).LowerThan(rt.minK) {
		return core.Vec3{}
	}
	rays := rt.constructRays(base, n, size)
	var color core.Vec3
	for _, r := range rays {
		color = color.Add(rt.calcGlobalEffect(r, level, k, kx))
	}
	return color.Multiply(1 / float64(len(rays)))
}

// constructRays fans base into a grid of rays, keeping only those leaving
// on the same side of the surface as base itself
func (rt *SimpleRayTracer) constructRays(base core.Ray, n core.Vec3, size float64) []core.Ray {
	if core.IsZero(size) {
		return []core.Ray{base}
	}
	side := base.Direction.Dot(n)
	grid := NewTargetArea(base, size, rt.density).ConstructRayGrid(rt.sampler)
	rays := grid[:0]
	for _, r := range grid {
		if core.CompareSign(r.Direction.Dot(n), side) {
			rays = append(rays, r)
		}
	}
	if len(rays) == 0 {
		return []core.Ray{base}
	}
	return rays
}

// calcGlobalEffect traces one secondary ray. The branch throughput k*kx is
// checked against the threshold and passed down; the returned color is
// scaled by the local coefficient kx.
func (rt *SimpleRayTracer) calcGlobalEffect(ray core.Ray, level int, k, kx core.Vec3) core.Vec3 {
	kkx := k.MultiplyVec(kx)
	if kkx.LowerThan(rt.minK) {
		return core.Vec3{}
	}
	gp, ok := rt.findClosestIntersection(ray)
	if !ok {
		return rt.scene.Background.MultiplyVec(kx)
	}
	return rt.calcColor(gp, ray, level-1, kkx).MultiplyVec(kx)
}
