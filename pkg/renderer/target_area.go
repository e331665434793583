package renderer

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Defaults for sampling grids built around a ray
const (
	DefaultGridDistance = 100.0
	DefaultDensity      = 9
)

// TargetArea is a view plane in front of a location. It maps grid cells
// (pixels or sub-samples) to rays leaving the location.
type TargetArea struct {
	Location core.Vec3
	VTo      core.Vec3 // Forward
	VUp      core.Vec3
	VRight   core.Vec3
	Width    float64
	Height   float64
	Distance float64 // From Location to the plane center
	Density  int     // Cells per side of ConstructRayGrid
}

// NewTargetArea creates a square target area centered on the ray direction,
// at the default grid distance. Used for sample grids around secondary rays.
func NewTargetArea(ray core.Ray, size float64, density int) TargetArea {
	vUp := ray.Direction.Perpendicular()
	return TargetArea{
		Location: ray.Origin,
		VTo:      ray.Direction,
		VUp:      vUp,
		VRight:   vUp.Cross(ray.Direction),
		Width:    size,
		Height:   size,
		Distance: DefaultGridDistance,
		Density:  density,
	}
}

// WithDirection returns a copy oriented along vTo with the given up vector.
// The vectors must be non-zero and perpendicular.
func (ta TargetArea) WithDirection(vTo, vUp core.Vec3) (TargetArea, error) {
	to, err := vTo.Direction()
	if err != nil {
		return ta, fmt.Errorf("direction to: %w", err)
	}
	up, err := vUp.Direction()
	if err != nil {
		return ta, fmt.Errorf("direction up: %w", err)
	}
	if !core.IsZero(to.Dot(up)) {
		return ta, fmt.Errorf("direction vectors %v and %v are not perpendicular: %w", vTo, vUp, ErrInvalidCamera)
	}
	ta.VTo = to
	ta.VUp = up
	ta.VRight = to.Cross(up).Normalize()
	return ta, nil
}

// LookAt returns a copy turned toward p, keeping the image upright around the Y axis
func (ta TargetArea) LookAt(p core.Vec3) (TargetArea, error) {
	to, err := p.Subtract(ta.Location).Direction()
	if err != nil {
		return ta, fmt.Errorf("look at %v from the camera location: %w", p, err)
	}

	right := to.Cross(core.AxisY)
	if right.IsZeroVector() || core.IsZero(right.Length()) {
		// Looking straight up or down
		right = core.AxisX
	}
	right = right.Normalize()

	ta.VTo = to
	ta.VRight = right
	ta.VUp = right.Cross(to).Normalize()
	return ta, nil
}

// CellPoint returns the point on the view plane at the center of cell (j, i)
// of an nX by nY grid, moved by a jitter given in cell units. Cell (0, 0) is
// the top left.
func (ta TargetArea) CellPoint(nX, nY, j, i int, jitterX, jitterY float64) core.Vec3 {
	pIJ := ta.Location.Add(ta.VTo.Multiply(ta.Distance))
	yI := (float64(nY-1)/2 - float64(i) + jitterY) * (ta.Height / float64(nY))
	xJ := (float64(j) - float64(nX-1)/2 + jitterX) * (ta.Width / float64(nX))
	if !core.IsZero(xJ) {
		pIJ = pIJ.Add(ta.VRight.Multiply(xJ))
	}
	if !core.IsZero(yI) {
		pIJ = pIJ.Add(ta.VUp.Multiply(yI))
	}
	return pIJ
}

// ConstructRay returns the ray from the location through the center of cell (j, i)
func (ta TargetArea) ConstructRay(nX, nY, j, i int) core.Ray {
	return ta.ConstructRayJittered(nX, nY, j, i, 0, 0)
}

// ConstructRayJittered returns the ray through cell (j, i) moved by the jitter
func (ta TargetArea) ConstructRayJittered(nX, nY, j, i int, jitterX, jitterY float64) core.Ray {
	return core.NewRay(ta.Location, ta.CellPoint(nX, nY, j, i, jitterX, jitterY).Subtract(ta.Location))
}

// GridPoints returns Density x Density cell points in row order. With a nil
// sampler every point is a cell center, otherwise each point is jittered
// within its cell.
func (ta TargetArea) GridPoints(sampler core.Sampler) []core.Vec3 {
	points := make([]core.Vec3, 0, ta.Density*ta.Density)
	for i := 0; i < ta.Density; i++ {
		for j := 0; j < ta.Density; j++ {
			var jx, jy float64
			if sampler != nil {
				s := sampler.Get2D()
				jx, jy = s.X-0.5, s.Y-0.5
			}
			points = append(points, ta.CellPoint(ta.Density, ta.Density, j, i, jx, jy))
		}
	}
	return points
}

// ConstructRayGrid returns one ray per grid point
func (ta TargetArea) ConstructRayGrid(sampler core.Sampler) []core.Ray {
	points := ta.GridPoints(sampler)
	rays := make([]core.Ray, len(points))
	for k, p := range points {
		rays[k] = core.NewRay(ta.Location, p.Subtract(ta.Location))
	}
	return rays
}
