package geometry

import (
	"cmp"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Geometries is a composite of intersectables. Its box bounds every child
// and is nil when any child is unbounded.
type Geometries struct {
	items     []Intersectable
	bbox      *core.AABB
	unbounded bool // Set once any child has no box
}

// NewGeometries creates a composite holding the given items
func NewGeometries(items ...Intersectable) *Geometries {
	g := &Geometries{}
	g.Add(items...)
	return g
}

// Add appends items and grows the bounding box to cover them
func (g *Geometries) Add(items ...Intersectable) {
	g.items = append(g.items, items...)
	for _, item := range items {
		g.extend(item)
	}
}

// extend unions the box of item into the composite box. Empty composites
// are skipped since they can never be hit.
func (g *Geometries) extend(item Intersectable) {
	if g.unbounded {
		return
	}
	if child, ok := item.(*Geometries); ok && child.Len() == 0 {
		return
	}
	b := item.BoundingBox()
	switch {
	case b == nil:
		g.unbounded = true
		g.bbox = nil
	case g.bbox == nil:
		g.bbox = b
	default:
		g.bbox = g.bbox.Union(*b)
	}
}

// Items returns the direct children
func (g *Geometries) Items() []Intersectable {
	return g.items
}

// Len returns the number of direct children
func (g *Geometries) Len() int {
	return len(g.items)
}

// BoundingBox returns the box around all children, nil when unbounded
func (g *Geometries) BoundingBox() *core.AABB {
	return g.bbox
}

// FindGeoIntersections collects the hits of every child
func (g *Geometries) FindGeoIntersections(ray core.Ray, maxDistance float64) []GeoPoint {
	if culled(g.bbox, ray, maxDistance) {
		return nil
	}
	var result []GeoPoint
	for _, item := range g.items {
		if points := item.FindGeoIntersections(ray, maxDistance); points != nil {
			result = append(result, points...)
		}
	}
	return result
}

// Flatten returns a new composite with every nested composite expanded
// into its leaves
func (g *Geometries) Flatten() *Geometries {
	return NewGeometries(g.leaves(nil)...)
}

func (g *Geometries) leaves(out []Intersectable) []Intersectable {
	for _, item := range g.items {
		if child, ok := item.(*Geometries); ok {
			out = child.leaves(out)
		} else {
			out = append(out, item)
		}
	}
	return out
}

// BuildCBR returns a new flat composite where all bounded leaves share a
// single conservative bounding region and unbounded leaves sit beside it
func (g *Geometries) BuildCBR() *Geometries {
	finite, infinite := splitBounded(g.leaves(nil))
	if len(finite) == 0 {
		return NewGeometries(infinite...)
	}
	return NewGeometries(append([]Intersectable{NewGeometries(finite...)}, infinite...)...)
}

// BuildIndex returns a new bounding volume hierarchy over the leaves of g.
// Bounded leaves are sorted by the X coordinate of their box center and
// grouped in threes, level by level, until fewer than three nodes remain.
// Unbounded leaves are kept at the top level. g itself is not modified.
func (g *Geometries) BuildIndex() *Geometries {
	finite, infinite := splitBounded(g.leaves(nil))

	slices.SortStableFunc(finite, func(a, b Intersectable) int {
		return cmp.Compare(a.BoundingBox().Center().X, b.BoundingBox().Center().X)
	})

	nodes := finite
	for len(nodes) >= 3 {
		next := make([]Intersectable, 0, (len(nodes)+2)/3)
		for i := 0; i < len(nodes); i += 3 {
			end := min(i+3, len(nodes))
			if end-i == 1 {
				next = append(next, nodes[i])
				continue
			}
			next = append(next, NewGeometries(nodes[i:end]...))
		}
		nodes = next
	}

	return NewGeometries(append(nodes, infinite...)...)
}

// Stats describes the shape of a geometry tree
type Stats struct {
	Nodes     int // Composite nodes including the root
	Leaves    int // Primitive shapes
	Unbounded int // Primitive shapes without a bounding box
	Depth     int // Longest root to leaf path, counted in composites
}

// Stats walks the tree and counts nodes and leaves
func (g *Geometries) Stats() Stats {
	s := Stats{Nodes: 1, Depth: 1}
	for _, item := range g.items {
		child, ok := item.(*Geometries)
		if !ok {
			s.Leaves++
			if item.BoundingBox() == nil {
				s.Unbounded++
			}
			continue
		}
		cs := child.Stats()
		s.Nodes += cs.Nodes
		s.Leaves += cs.Leaves
		s.Unbounded += cs.Unbounded
		s.Depth = max(s.Depth, cs.Depth+1)
	}
	return s
}

func splitBounded(items []Intersectable) (finite, infinite []Intersectable) {
	for _, item := range items {
		if item.BoundingBox() == nil {
			infinite = append(infinite, item)
		} else {
			finite = append(finite, item)
		}
	}
	return finite, infinite
}
