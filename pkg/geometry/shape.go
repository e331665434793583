package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Unbounded is the max distance used when a query has no distance limit
var Unbounded = math.Inf(1)

// culled reports whether a ray can be skipped because it misses the box
// within (0, maxDistance)
func culled(box *core.AABB, ray core.Ray, maxDistance float64) bool {
	return !box.Hit(ray, 0, maxDistance)
}

// beyond reports whether t is not strictly before maxDistance
func beyond(t, maxDistance float64) bool {
	return core.AlignZero(maxDistance-t) <= 0
}
