package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Disc is a flat circle: the part of a plane within Radius of Center
type Disc struct {
	Shading
	Center core.Vec3
	Normal core.Vec3
	Radius float64

	plane Plane
	bbox  *core.AABB
}

// NewDisc creates a disc. The radius must be positive and the normal non-zero.
func NewDisc(center, normal core.Vec3, radius float64) (*Disc, error) {
	if core.AlignZero(radius) <= 0 {
		return nil, fmt.Errorf("disc: radius must be positive, got %g: %w", radius, ErrInvalidGeometry)
	}
	plane, err := NewPlane(center, normal)
	if err != nil {
		return nil, fmt.Errorf("disc: %w", err)
	}
	n := plane.Normal

	// Extent of a tilted circle along each axis
	extent := core.NewVec3(
		radius*math.Sqrt(math.Max(0, 1-n.X*n.X)),
		radius*math.Sqrt(math.Max(0, 1-n.Y*n.Y)),
		radius*math.Sqrt(math.Max(0, 1-n.Z*n.Z)),
	)
	return &Disc{
		Center: center,
		Normal: n,
		Radius: radius,
		plane:  *plane,
		bbox:   core.NewAABB(center.Subtract(extent), center.Add(extent)),
	}, nil
}

// GetNormal returns the disc normal
func (d *Disc) GetNormal(core.Vec3) core.Vec3 {
	return d.Normal
}

// BoundingBox returns the box around the disc
func (d *Disc) BoundingBox() *core.AABB {
	return d.bbox
}

// FindGeoIntersections returns the hit on the disc, if any
func (d *Disc) FindGeoIntersections(ray core.Ray, maxDistance float64) []GeoPoint {
	if culled(d.bbox, ray, maxDistance) {
		return nil
	}
	return d.intersect(ray, maxDistance, d)
}

func (d *Disc) intersect(ray core.Ray, maxDistance float64, owner Geometry) []GeoPoint {
	t, ok := d.plane.crossing(ray, maxDistance)
	if !ok {
		return nil
	}
	p := ray.At(t)
	if core.AlignZero(p.Distance(d.Center)-d.Radius) > 0 {
		return nil
	}
	return []GeoPoint{{Geometry: owner, Point: p}}
}
