package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewBox creates an axis-aligned box made of six polygon faces sharing the
// given shading. halfSize holds the half extents, so a size of (1,1,1)
// creates a 2x2x2 box. Faces are wound so their normals point outward.
func NewBox(center, halfSize core.Vec3, shading Shading) (*Geometries, error) {
	if core.AlignZero(halfSize.X) <= 0 || core.AlignZero(halfSize.Y) <= 0 || core.AlignZero(halfSize.Z) <= 0 {
		return nil, fmt.Errorf("box: half size must be positive, got %v: %w", halfSize, ErrInvalidGeometry)
	}

	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}
	for i := range corners {
		corners[i] = corners[i].MultiplyVec(halfSize).Add(center)
	}

	faces := [6][4]int{
		{4, 5, 6, 7}, // Front (Z+)
		{1, 0, 3, 2}, // Back (Z-)
		{5, 1, 2, 6}, // Right (X+)
		{0, 4, 7, 3}, // Left (X-)
		{7, 6, 2, 3}, // Top (Y+)
		{0, 1, 5, 4}, // Bottom (Y-)
	}

	box := NewGeometries()
	for _, f := range faces {
		face, err := NewPolygon(corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]])
		if err != nil {
			return nil, fmt.Errorf("box: %w", err)
		}
		box.Add(Shade(face, shading.Emission, shading.Material))
	}
	return box, nil
}
