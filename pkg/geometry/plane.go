package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Shading
	Point  core.Vec3 // Reference point on the plane
	Normal core.Vec3 // Unit normal
}

// NewPlane creates a plane through point with the given normal
func NewPlane(point, normal core.Vec3) (*Plane, error) {
	n, err := normal.Direction()
	if err != nil {
		return nil, fmt.Errorf("plane: normal: %w", err)
	}
	return &Plane{Point: point, Normal: n}, nil
}

// NewPlaneFromPoints creates the plane through three points. The points
// must be distinct and not collinear.
func NewPlaneFromPoints(p1, p2, p3 core.Vec3) (*Plane, error) {
	v1 := p2.Subtract(p1)
	v2 := p3.Subtract(p1)
	if v1.IsZeroVector() || v2.IsZeroVector() || p2 == p3 {
		return nil, fmt.Errorf("plane: coincident points %v, %v, %v: %w", p1, p2, p3, ErrInvalidGeometry)
	}
	n := v1.Cross(v2)
	if n.IsZeroVector() {
		return nil, fmt.Errorf("plane: collinear points %v, %v, %v: %w", p1, p2, p3, ErrInvalidGeometry)
	}
	return &Plane{Point: p1, Normal: n.Normalize()}, nil
}

// GetNormal returns the plane normal, which is the same everywhere
func (p *Plane) GetNormal(core.Vec3) core.Vec3 {
	return p.Normal
}

// BoundingBox returns nil: a plane is unbounded
func (p *Plane) BoundingBox() *core.AABB {
	return nil
}

// FindGeoIntersections returns the single crossing point, if any
func (p *Plane) FindGeoIntersections(ray core.Ray, maxDistance float64) []GeoPoint {
	t, ok := p.crossing(ray, maxDistance)
	if !ok {
		return nil
	}
	return []GeoPoint{{Geometry: p, Point: ray.At(t)}}
}

// crossing solves for the ray parameter of the plane crossing
func (p *Plane) crossing(ray core.Ray, maxDistance float64) (float64, bool) {
	nv := p.Normal.Dot(ray.Direction)
	// Parallel rays, including rays lying in the plane, never hit
	if core.IsZero(nv) || p.Point == ray.Origin {
		return 0, false
	}

	t := core.AlignZero(p.Normal.Dot(p.Point.Subtract(ray.Origin)) / nv)
	if t <= 0 || beyond(t, maxDistance) {
		return 0, false
	}
	return t, true
}
