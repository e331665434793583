package geometry

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a tube cut to Height along its axis and closed by two caps
type Cylinder struct {
	Tube
	Height float64

	bottom *Disc
	top    *Disc
	bbox   *core.AABB
}

// NewCylinder creates a capped cylinder starting at the axis origin
func NewCylinder(axis core.Ray, radius, height float64) (*Cylinder, error) {
	tube, err := NewTube(axis, radius)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}
	if core.AlignZero(height) <= 0 {
		return nil, fmt.Errorf("cylinder: height must be positive, got %g: %w", height, ErrInvalidGeometry)
	}

	d := tube.Axis.Direction
	bottom, err := NewDisc(tube.Axis.Origin, d.Negate(), radius)
	if err != nil {
		return nil, fmt.Errorf("cylinder: bottom cap: %w", err)
	}
	top, err := NewDisc(tube.Axis.At(height), d, radius)
	if err != nil {
		return nil, fmt.Errorf("cylinder: top cap: %w", err)
	}

	return &Cylinder{
		Tube:   *tube,
		Height: height,
		bottom: bottom,
		top:    top,
		bbox:   core.UnionAABB(bottom.bbox, top.bbox),
	}, nil
}

// GetNormal returns the cap normal on the caps and the radial normal on the wall
func (c *Cylinder) GetNormal(p core.Vec3) core.Vec3 {
	t := c.axisParam(p)
	switch {
	case t == 0:
		return c.bottom.Normal
	case core.IsZero(t - c.Height):
		return c.top.Normal
	default:
		return c.Tube.GetNormal(p)
	}
}

// BoundingBox returns the box bounding both caps
func (c *Cylinder) BoundingBox() *core.AABB {
	return c.bbox
}

// FindGeoIntersections returns wall and cap hits ordered nearest first
func (c *Cylinder) FindGeoIntersections(ray core.Ray, maxDistance float64) []GeoPoint {
	if culled(c.bbox, ray, maxDistance) {
		return nil
	}

	hits := c.wallHits(ray, maxDistance, c, func(t float64) bool {
		return t > 0 && core.AlignZero(t-c.Height) < 0
	})
	hits = append(hits, c.bottom.intersect(ray, maxDistance, c)...)
	hits = append(hits, c.top.intersect(ray, maxDistance, c)...)
	if len(hits) == 0 {
		return nil
	}

	origin := ray.Origin
	slices.SortFunc(hits, func(a, b GeoPoint) int {
		return cmp.Compare(origin.DistanceSquared(a.Point), origin.DistanceSquared(b.Point))
	})
	return slices.CompactFunc(hits, GeoPoint.Equal)
}
