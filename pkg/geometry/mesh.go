package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewTriangleMesh creates a composite of triangles from vertices and face
// indices. Each group of three indices forms a triangle and every triangle
// gets the same shading. Degenerate faces are reported as errors.
func NewTriangleMesh(vertices []core.Vec3, faces []int, shading Shading) (*Geometries, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("mesh: face indices must be a multiple of 3, got %d: %w", len(faces), ErrInvalidGeometry)
	}

	triangles := make([]Intersectable, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		var v [3]core.Vec3
		for k := range v {
			idx := faces[i+k]
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("mesh: face %d references vertex %d of %d: %w", i/3, idx, len(vertices), ErrInvalidGeometry)
			}
			v[k] = vertices[idx]
		}
		tri, err := NewTriangle(v[0], v[1], v[2])
		if err != nil {
			return nil, fmt.Errorf("mesh: face %d: %w", i/3, err)
		}
		triangles = append(triangles, Shade(tri, shading.Emission, shading.Material))
	}
	return NewGeometries(triangles...), nil
}
