package geometry

import (
	"cmp"
	"math/rand"
	"slices"
	"testing"

	"go.viam.com/test"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func sampleGeometries() *Geometries {
	return NewGeometries(
		Must(NewPlane(core.NewVec3(5, 2, 2), core.NewVec3(1, 0, 0))),
		Must(NewSphere(core.NewVec3(2, 0, 0), 1)),
		Must(NewTriangle(core.NewVec3(4, -2, -1), core.NewVec3(4, 2, -1), core.NewVec3(4, 0, 1))),
	)
}

func TestGeometries_FindGeoIntersections(t *testing.T) {
	tests := []struct {
		name        string
		ray         core.Ray
		maxDistance float64
		count       int
	}{
		{"between sphere and triangle", ray(3.5, 0, 0, 1, 0, 0), Unbounded, 2},
		{"between sphere and triangle within reach", ray(3.5, 0, 0, 1, 0, 0), 4, 2},
		{"between sphere and triangle too short", ray(3.5, 0, 0, 1, 0, 0), 0.2, 0},
		{"only the plane ahead", ray(4.5, 0, 0, 1, 0, 0), Unbounded, 1},
		{"only the plane ahead within reach", ray(4.5, 0, 0, 1, 0, 0), 2, 1},
		{"everything ahead", ray(0.5, 0, 0, 1, 0, 0), Unbounded, 4},
		{"everything ahead within reach", ray(0.5, 0, 0, 1, 0, 0), 6, 4},
		{"plane out of reach", ray(0.5, 0, 0, 1, 0, 0), 4, 3},
		{"nothing", ray(0.5, 0, 0, 0, 1, 0), Unbounded, 0},
	}

	flat := sampleGeometries()
	indexed := flat.BuildIndex()
	cbr := flat.BuildCBR()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, g := range []*Geometries{flat, indexed, cbr} {
				got := g.FindGeoIntersections(tt.ray, tt.maxDistance)
				if tt.count == 0 {
					test.That(t, got, test.ShouldBeNil)
					continue
				}
				test.That(t, got, test.ShouldHaveLength, tt.count)
			}
		})
	}
}

func TestGeometries_Empty(t *testing.T) {
	empty := NewGeometries()
	test.That(t, empty.FindGeoIntersections(ray(0, 0, 0, 1, 0, 0), Unbounded), test.ShouldBeNil)
	test.That(t, empty.BuildIndex().FindGeoIntersections(ray(0, 0, 0, 1, 0, 0), Unbounded), test.ShouldBeNil)
	test.That(t, empty.Stats().Leaves, test.ShouldEqual, 0)
}

func TestGeometries_BoundingBox(t *testing.T) {
	g := NewGeometries(
		Must(NewSphere(core.NewVec3(0, 0, 0), 1)),
		Must(NewSphere(core.NewVec3(5, 5, 5), 1)),
	)
	box := g.BoundingBox()
	test.That(t, box, test.ShouldNotBeNil)
	test.That(t, box.Min, test.ShouldResemble, core.NewVec3(-1, -1, -1))
	test.That(t, box.Max, test.ShouldResemble, core.NewVec3(6, 6, 6))

	// Any unbounded member makes the whole composite unbounded
	g.Add(Must(NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))))
	test.That(t, g.BoundingBox(), test.ShouldBeNil)

	// Empty children do not affect the box
	h := NewGeometries(NewGeometries(), Must(NewSphere(core.NewVec3(0, 0, 0), 1)))
	test.That(t, h.BoundingBox(), test.ShouldNotBeNil)
}

func TestGeometries_AddGrowsBox(t *testing.T) {
	g := NewGeometries(NewGeometries())
	test.That(t, g.BoundingBox(), test.ShouldBeNil)

	for i := 0; i < 4; i++ {
		g.Add(Must(NewSphere(core.NewVec3(float64(2*i), float64(-i), 0), 1)))
		box := g.BoundingBox()
		test.That(t, box, test.ShouldNotBeNil)
		test.That(t, box.Min, test.ShouldResemble, core.NewVec3(-1, float64(-i-1), -1))
		test.That(t, box.Max, test.ShouldResemble, core.NewVec3(float64(2*i+1), 1, 1))
	}

	// Once unbounded, later bounded items do not bring the box back
	g.Add(Must(NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))))
	g.Add(Must(NewSphere(core.NewVec3(20, 0, 0), 1)))
	test.That(t, g.BoundingBox(), test.ShouldBeNil)
	test.That(t, g.Len(), test.ShouldEqual, 7)
}

func TestGeometries_Flatten(t *testing.T) {
	s1 := Must(NewSphere(core.NewVec3(0, 0, 0), 1))
	s2 := Must(NewSphere(core.NewVec3(3, 0, 0), 1))
	s3 := Must(NewSphere(core.NewVec3(6, 0, 0), 1))
	nested := NewGeometries(s1, NewGeometries(s2, NewGeometries(s3)))

	flat := nested.Flatten()
	test.That(t, flat.Len(), test.ShouldEqual, 3)
	test.That(t, flat.Items()[0], test.ShouldEqual, Intersectable(s1))
	test.That(t, flat.Items()[2], test.ShouldEqual, Intersectable(s3))
	test.That(t, nested.Len(), test.ShouldEqual, 2)
}

func spheresAlongX(n int) []Intersectable {
	items := make([]Intersectable, n)
	for i := range items {
		items[i] = Must(NewSphere(core.NewVec3(float64(3*i), 0, 0), 1))
	}
	return items
}

func TestGeometries_BuildIndex_Structure(t *testing.T) {
	t.Run("nine items form two levels", func(t *testing.T) {
		g := NewGeometries(spheresAlongX(9)...)
		s := g.BuildIndex().Stats()
		test.That(t, s.Leaves, test.ShouldEqual, 9)
		test.That(t, s.Nodes, test.ShouldEqual, 5)
		test.That(t, s.Depth, test.ShouldEqual, 3)
	})

	t.Run("four items form one group and a single", func(t *testing.T) {
		g := NewGeometries(spheresAlongX(4)...)
		indexed := g.BuildIndex()
		test.That(t, indexed.Len(), test.ShouldEqual, 2)
		s := indexed.Stats()
		test.That(t, s.Nodes, test.ShouldEqual, 2)
		test.That(t, s.Depth, test.ShouldEqual, 2)
	})

	t.Run("infinite items stay at the top level", func(t *testing.T) {
		items := append(spheresAlongX(6), Must(NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0))))
		indexed := NewGeometries(items...).BuildIndex()
		test.That(t, indexed.BoundingBox(), test.ShouldBeNil)
		_, isPlane := indexed.Items()[indexed.Len()-1].(*Plane)
		test.That(t, isPlane, test.ShouldBeTrue)
		test.That(t, indexed.Stats().Unbounded, test.ShouldEqual, 1)
	})

	t.Run("sorted by box center", func(t *testing.T) {
		items := spheresAlongX(3)
		items[0], items[2] = items[2], items[0]
		indexed := NewGeometries(items...).BuildIndex()
		group := indexed.Items()[0].(*Geometries)
		test.That(t, group.Items()[0].BoundingBox().Center().X, test.ShouldEqual, 0.0)
		test.That(t, group.Items()[2].BoundingBox().Center().X, test.ShouldEqual, 6.0)
	})

	t.Run("source is not modified", func(t *testing.T) {
		items := spheresAlongX(7)
		g := NewGeometries(items...)
		g.BuildIndex()
		test.That(t, g.Len(), test.ShouldEqual, 7)
		for i, item := range g.Items() {
			test.That(t, item, test.ShouldEqual, items[i])
		}
	})
}

func TestGeometries_BuildCBR(t *testing.T) {
	items := append(spheresAlongX(5), Must(NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0))))
	cbr := NewGeometries(items...).BuildCBR()
	test.That(t, cbr.Len(), test.ShouldEqual, 2)

	region := cbr.Items()[0].(*Geometries)
	test.That(t, region.Len(), test.ShouldEqual, 5)
	test.That(t, region.BoundingBox().Max.X, test.ShouldEqual, 13.0)

	// Rays away from the region only reach the plane
	got := cbr.FindGeoIntersections(ray(0, 5, 0, 0, -1, 0), Unbounded)
	test.That(t, got, test.ShouldHaveLength, 3)
}

// sortedPoints orders hits so results from different trees can be compared
func sortedPoints(points []GeoPoint) []GeoPoint {
	out := slices.Clone(points)
	slices.SortFunc(out, func(a, b GeoPoint) int {
		if c := cmp.Compare(a.Point.X, b.Point.X); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Point.Y, b.Point.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Point.Z, b.Point.Z)
	})
	return out
}

func TestGeometries_BuildIndex_MatchesLinear(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	coord := func(scale float64) float64 { return (random.Float64()*2 - 1) * scale }

	var items []Intersectable
	for i := 0; i < 60; i++ {
		center := core.NewVec3(coord(20), coord(20), coord(20))
		switch i % 3 {
		case 0:
			items = append(items, Must(NewSphere(center, 0.5+random.Float64())))
		case 1:
			items = append(items, Must(NewTriangle(
				center, center.Add(core.NewVec3(2, 0, 0)), center.Add(core.NewVec3(0, 2, 1)))))
		default:
			items = append(items, Must(NewCylinder(core.NewRay(center, core.NewVec3(coord(1), 1, coord(1))), 0.5, 2)))
		}
	}
	items = append(items, Must(NewPlane(core.NewVec3(0, -25, 0), core.NewVec3(0, 1, 0))))
	random.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	linear := NewGeometries(items...)
	indexed := linear.BuildIndex()
	cbr := linear.BuildCBR()

	hits := 0
	for i := 0; i < 500; i++ {
		origin := core.NewVec3(coord(30), coord(30), coord(30))
		dir := core.NewVec3(coord(1), coord(1), coord(1))
		if dir.IsZeroVector() {
			continue
		}
		r := core.NewRay(origin, dir)
		maxDistance := Unbounded
		if i%2 == 1 {
			maxDistance = 10 + random.Float64()*30
		}

		want := sortedPoints(linear.FindGeoIntersections(r, maxDistance))
		for _, tree := range []*Geometries{indexed, cbr} {
			got := sortedPoints(tree.FindGeoIntersections(r, maxDistance))
			test.That(t, len(got), test.ShouldEqual, len(want))
			for k := range want {
				test.That(t, got[k].Equal(want[k]), test.ShouldBeTrue)
			}
		}
		hits += len(want)
	}
	test.That(t, hits, test.ShouldBeGreaterThan, 0)
}

func TestClosestGeoPoint(t *testing.T) {
	g := sampleGeometries()
	points := g.FindGeoIntersections(ray(0.5, 0, 0, 1, 0, 0), Unbounded)
	closest, ok := ClosestGeoPoint(core.NewVec3(0.5, 0, 0), points)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, vecNear(closest.Point, core.NewVec3(1, 0, 0)), test.ShouldBeTrue)

	_, ok = ClosestGeoPoint(core.NewVec3(0, 0, 0), nil)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestFindIntersections(t *testing.T) {
	sphere := Must(NewSphere(core.NewVec3(0, 0, 0), 1))
	test.That(t, FindIntersections(sphere, ray(0, 0, -5, 0, 0, 1)), test.ShouldHaveLength, 2)
	test.That(t, FindIntersections(sphere, ray(0, 5, -5, 0, 0, 1)), test.ShouldBeNil)
}
