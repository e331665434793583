package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle is a polygon with exactly three vertices
type Triangle struct {
	Polygon
}

// NewTriangle creates a triangle. The vertices must be distinct and not collinear.
func NewTriangle(v0, v1, v2 core.Vec3) (*Triangle, error) {
	p, err := NewPolygon(v0, v1, v2)
	if err != nil {
		return nil, fmt.Errorf("triangle: %w", err)
	}
	return &Triangle{Polygon: *p}, nil
}

// FindGeoIntersections returns the hit strictly inside the triangle, if any
func (t *Triangle) FindGeoIntersections(ray core.Ray, maxDistance float64) []GeoPoint {
	if culled(t.bbox, ray, maxDistance) {
		return nil
	}
	return t.intersect(ray, maxDistance, t)
}
