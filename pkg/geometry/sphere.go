package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Shading
	Center core.Vec3
	Radius float64

	radiusSquared float64
	bbox          *core.AABB
}

// NewSphere creates a new sphere. The radius must be positive.
func NewSphere(center core.Vec3, radius float64) (*Sphere, error) {
	if core.AlignZero(radius) <= 0 {
		return nil, fmt.Errorf("sphere: radius must be positive, got %g: %w", radius, ErrInvalidGeometry)
	}
	r := core.NewVec3(radius, radius, radius)
	return &Sphere{
		Center:        center,
		Radius:        radius,
		radiusSquared: radius * radius,
		bbox:          core.NewAABB(center.Subtract(r), center.Add(r)),
	}, nil
}

// GetNormal returns the outward normal at a point on the sphere
func (s *Sphere) GetNormal(p core.Vec3) core.Vec3 {
	return p.Subtract(s.Center).Normalize()
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() *core.AABB {
	return s.bbox
}

// FindGeoIntersections returns up to two hits ordered nearest first
func (s *Sphere) FindGeoIntersections(ray core.Ray, maxDistance float64) []GeoPoint {
	if culled(s.bbox, ray, maxDistance) {
		return nil
	}

	v := ray.Direction
	p0 := ray.Origin

	// Ray starting at the center leaves through exactly one point
	if p0 == s.Center {
		if beyond(s.Radius, maxDistance) {
			return nil
		}
		return []GeoPoint{{Geometry: s, Point: s.Center.Add(v.Multiply(s.Radius))}}
	}

	u := s.Center.Subtract(p0)
	tm := u.Dot(v)
	dSquared := u.LengthSquared() - tm*tm
	thSquared := s.radiusSquared - dSquared
	if core.AlignZero(thSquared) <= 0 {
		return nil // Ray misses or is tangent
	}

	th := math.Sqrt(thSquared)
	t1 := core.AlignZero(tm - th)
	t2 := core.AlignZero(tm + th)
	if t2 <= 0 || beyond(t1, maxDistance) {
		return nil // Sphere is behind the ray or out of range
	}

	if t1 <= 0 {
		if beyond(t2, maxDistance) {
			return nil
		}
		return []GeoPoint{{Geometry: s, Point: ray.At(t2)}}
	}
	if beyond(t2, maxDistance) {
		return []GeoPoint{{Geometry: s, Point: ray.At(t1)}}
	}
	return []GeoPoint{{Geometry: s, Point: ray.At(t1)}, {Geometry: s, Point: ray.At(t2)}}
}
