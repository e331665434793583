package geometry

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidGeometry is wrapped by every shape construction error
var ErrInvalidGeometry = errors.New("invalid geometry")

// Intersectable is anything a ray can be tested against
type Intersectable interface {
	// FindGeoIntersections returns every hit in (0, maxDistance), or nil.
	// Implementations reject rays missing their bounding box before doing
	// any shape specific math.
	FindGeoIntersections(ray core.Ray, maxDistance float64) []GeoPoint

	// BoundingBox returns the precomputed box, nil when unbounded
	BoundingBox() *core.AABB
}

// Geometry is an intersectable surface that can be shaded
type Geometry interface {
	Intersectable
	GetNormal(p core.Vec3) core.Vec3
	GetEmission() core.Vec3
	GetMaterial() material.Material
	setShading(emission core.Vec3, m material.Material)
}

// Shading holds the emission color and material shared by all geometries
type Shading struct {
	Emission core.Vec3
	Material material.Material
}

// GetEmission returns the emission color
func (s *Shading) GetEmission() core.Vec3 {
	return s.Emission
}

// GetMaterial returns the material
func (s *Shading) GetMaterial() material.Material {
	return s.Material
}

func (s *Shading) setShading(emission core.Vec3, m material.Material) {
	s.Emission = emission
	s.Material = m
}

// Shade sets the emission and material of g and returns it
func Shade[G Geometry](g G, emission core.Vec3, m material.Material) G {
	g.setShading(emission, m)
	return g
}

// Must returns g, panicking on a construction error. Intended for
// hard-coded scenes whose parameters are known to be valid.
func Must[G any](g G, err error) G {
	if err != nil {
		panic(err)
	}
	return g
}

// GeoPoint records a ray hit on a concrete geometry
type GeoPoint struct {
	Geometry Geometry
	Point    core.Vec3
}

// Equal reports whether both points come from the same geometry instance and coincide exactly
func (gp GeoPoint) Equal(other GeoPoint) bool {
	return gp.Geometry == other.Geometry && gp.Point == other.Point
}

// FindIntersections returns only the hit points, or nil when there are none
func FindIntersections(shape Intersectable, ray core.Ray) []core.Vec3 {
	geoPoints := shape.FindGeoIntersections(ray, Unbounded)
	if geoPoints == nil {
		return nil
	}
	points := make([]core.Vec3, len(geoPoints))
	for i, gp := range geoPoints {
		points[i] = gp.Point
	}
	return points
}

// ClosestGeoPoint returns the hit nearest to origin
func ClosestGeoPoint(origin core.Vec3, points []GeoPoint) (GeoPoint, bool) {
	if len(points) == 0 {
		return GeoPoint{}, false
	}
	closest := points[0]
	closestDistance := origin.DistanceSquared(closest.Point)
	for _, gp := range points[1:] {
		if d := origin.DistanceSquared(gp.Point); d < closestDistance {
			closest = gp
			closestDistance = d
		}
	}
	return closest, true
}
