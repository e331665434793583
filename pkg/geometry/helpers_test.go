package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const tolerance = 1e-9

func vecNear(a, b core.Vec3) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance && math.Abs(a.Z-b.Z) <= tolerance
}

func ray(ox, oy, oz, dx, dy, dz float64) core.Ray {
	return core.NewRay(core.NewVec3(ox, oy, oz), core.NewVec3(dx, dy, dz))
}

// assertPoints checks hits against expected points in order
func assertPoints(t *testing.T, got []GeoPoint, want ...core.Vec3) {
	t.Helper()
	if len(want) == 0 {
		if got != nil {
			t.Fatalf("Expected no intersections, got %v", got)
		}
		return
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d intersections, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !vecNear(got[i].Point, want[i]) {
			t.Errorf("Intersection %d: expected %v, got %v", i, want[i], got[i].Point)
		}
	}
}
