package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Polygon is a flat convex polygon. Vertices are ordered along the edge path.
type Polygon struct {
	Shading
	Vertices []core.Vec3

	plane *Plane
	bbox  *core.AABB
}

// NewPolygon creates a polygon from at least three vertices. The vertices
// must be coplanar and form a convex polygon, listed in edge order with no
// coincident or collinear neighbours.
func NewPolygon(vertices ...core.Vec3) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon: need at least 3 vertices, got %d: %w", len(vertices), ErrInvalidGeometry)
	}

	plane, err := NewPlaneFromPoints(vertices[0], vertices[1], vertices[2])
	if err != nil {
		return nil, fmt.Errorf("polygon: %w", err)
	}

	p := &Polygon{
		Vertices: append([]core.Vec3(nil), vertices...),
		plane:    plane,
		bbox:     core.NewAABBFromPoints(vertices...),
	}
	if len(vertices) == 3 {
		return p, nil
	}

	n := plane.Normal
	count := len(vertices)
	edge1 := vertices[count-1].Subtract(vertices[count-2])
	edge2 := vertices[0].Subtract(vertices[count-1])
	winding := edge1.Cross(edge2).Dot(n)
	if core.IsZero(winding) {
		return nil, fmt.Errorf("polygon: collinear or repeated vertices: %w", ErrInvalidGeometry)
	}
	positive := winding > 0

	for i := 1; i < count; i++ {
		if !core.IsZero(vertices[i].Subtract(vertices[0]).Dot(n)) {
			return nil, fmt.Errorf("polygon: vertex %d is not in the plane: %w", i, ErrInvalidGeometry)
		}

		edge1 = edge2
		edge2 = vertices[i].Subtract(vertices[i-1])
		winding = edge1.Cross(edge2).Dot(n)
		if core.IsZero(winding) {
			return nil, fmt.Errorf("polygon: collinear or repeated vertices at %d: %w", i, ErrInvalidGeometry)
		}
		if positive != (winding > 0) {
			return nil, fmt.Errorf("polygon: not convex or inconsistent order at vertex %d: %w", i, ErrInvalidGeometry)
		}
	}
	return p, nil
}

// GetNormal returns the normal of the supporting plane
func (p *Polygon) GetNormal(core.Vec3) core.Vec3 {
	return p.plane.Normal
}

// BoundingBox returns the box around all vertices
func (p *Polygon) BoundingBox() *core.AABB {
	return p.bbox
}

// FindGeoIntersections returns the hit strictly inside the polygon, if any
func (p *Polygon) FindGeoIntersections(ray core.Ray, maxDistance float64) []GeoPoint {
	if culled(p.bbox, ray, maxDistance) {
		return nil
	}
	return p.intersect(ray, maxDistance, p)
}

// intersect tests the plane first and then checks that the ray passes on the
// same side of every edge. Hits on an edge or vertex are rejected.
func (p *Polygon) intersect(ray core.Ray, maxDistance float64, owner Geometry) []GeoPoint {
	t, ok := p.plane.crossing(ray, maxDistance)
	if !ok {
		return nil
	}

	p0 := ray.Origin
	v := ray.Direction
	count := len(p.Vertices)
	positive := false
	for i := 0; i < count; i++ {
		a := p.Vertices[i].Subtract(p0)
		b := p.Vertices[(i+1)%count].Subtract(p0)
		sign := core.AlignZero(v.Dot(a.Cross(b)))
		if sign == 0 {
			return nil
		}
		if i == 0 {
			positive = sign > 0
		} else if positive != (sign > 0) {
			return nil
		}
	}
	return []GeoPoint{{Geometry: owner, Point: ray.At(t)}}
}
