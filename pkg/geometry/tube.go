package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tube is an infinite cylinder around an axis ray
type Tube struct {
	Shading
	Axis   core.Ray // Axis origin and unit direction
	Radius float64
}

// NewTube creates an infinite tube. The radius must be positive and the axis
// direction non-zero.
func NewTube(axis core.Ray, radius float64) (*Tube, error) {
	if core.AlignZero(radius) <= 0 {
		return nil, fmt.Errorf("tube: radius must be positive, got %g: %w", radius, ErrInvalidGeometry)
	}
	dir, err := axis.Direction.Direction()
	if err != nil {
		return nil, fmt.Errorf("tube: axis: %w", err)
	}
	return &Tube{Axis: core.Ray{Origin: axis.Origin, Direction: dir}, Radius: radius}, nil
}

// GetNormal returns the radial direction from the axis to p
func (t *Tube) GetNormal(p core.Vec3) core.Vec3 {
	return p.Subtract(t.Axis.At(t.axisParam(p))).Normalize()
}

// BoundingBox returns nil: a tube is unbounded
func (t *Tube) BoundingBox() *core.AABB {
	return nil
}

// FindGeoIntersections returns up to two wall hits ordered nearest first
func (t *Tube) FindGeoIntersections(ray core.Ray, maxDistance float64) []GeoPoint {
	return t.wallHits(ray, maxDistance, t, nil)
}

// axisParam projects p onto the axis
func (t *Tube) axisParam(p core.Vec3) float64 {
	return core.AlignZero(p.Subtract(t.Axis.Origin).Dot(t.Axis.Direction))
}

// wallHits solves the quadratic built from the ray components perpendicular
// to the axis. keep, when set, filters hits by their position along the axis.
func (t *Tube) wallHits(ray core.Ray, maxDistance float64, owner Geometry, keep func(axisParam float64) bool) []GeoPoint {
	d := t.Axis.Direction
	v := ray.Direction
	dp := ray.Origin.Subtract(t.Axis.Origin)

	vPerp := v.Subtract(d.Multiply(v.Dot(d)))
	dpPerp := dp.Subtract(d.Multiply(dp.Dot(d)))

	a := vPerp.LengthSquared()
	if core.IsZero(a) {
		return nil // Parallel to the axis
	}
	b := 2 * vPerp.Dot(dpPerp)
	c := dpPerp.LengthSquared() - t.Radius*t.Radius

	discriminant := core.AlignZero(b*b - 4*a*c)
	if discriminant <= 0 {
		return nil // Miss or tangent
	}
	sqrtD := math.Sqrt(discriminant)

	var hits []GeoPoint
	for _, root := range [2]float64{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)} {
		root = core.AlignZero(root)
		if root <= 0 || beyond(root, maxDistance) {
			continue
		}
		p := ray.At(root)
		if keep != nil && !keep(t.axisParam(p)) {
			continue
		}
		hits = append(hits, GeoPoint{Geometry: owner, Point: p})
	}
	return hits
}
