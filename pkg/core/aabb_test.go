package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		tMax     float64
		expected bool
	}{
		{"through center", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), math.Inf(1), true},
		{"miss above", NewRay(NewVec3(-5, 2, 0), NewVec3(1, 0, 0)), math.Inf(1), false},
		{"pointing away", NewRay(NewVec3(-5, 0, 0), NewVec3(-1, 0, 0)), math.Inf(1), false},
		{"too short", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), 3, false},
		{"from inside", NewRay(NewVec3(0, 0, 0), NewVec3(0, 1, 0)), math.Inf(1), true},
		{"parallel outside slab", NewRay(NewVec3(0, 5, 0), NewVec3(1, 0, 0)), math.Inf(1), false},
		{"diagonal", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0, tt.tMax); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_NilIsUnbounded(t *testing.T) {
	var box *AABB
	if !box.Hit(NewRay(NewVec3(1e9, 1e9, 1e9), NewVec3(1, 0, 0)), 0, 1) {
		t.Error("Expected a nil box to be hit by every ray")
	}

	finite := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	if UnionAABB(finite, nil) != nil || UnionAABB(nil, finite) != nil {
		t.Error("Expected union with an unbounded box to be unbounded")
	}
}

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-2, 0.5, 0.5), NewVec3(0.5, 3, 0.75))
	c := NewAABB(NewVec3(5, -1, 2), NewVec3(6, 0, 4))

	ab := UnionAABB(a, b)
	if *ab != *UnionAABB(b, a) {
		t.Errorf("Expected commutative union, got %v and %v", *ab, *UnionAABB(b, a))
	}
	if *UnionAABB(ab, c) != *UnionAABB(a, UnionAABB(b, c)) {
		t.Error("Expected associative union")
	}

	expected := AABB{Min: NewVec3(-2, 0, 0), Max: NewVec3(1, 3, 1)}
	if *ab != expected {
		t.Errorf("Expected %v, got %v", expected, *ab)
	}
}

func TestNewAABBFromPoints(t *testing.T) {
	if NewAABBFromPoints() != nil {
		t.Error("Expected nil box for no points")
	}

	box := NewAABBFromPoints(NewVec3(1, -2, 3), NewVec3(-1, 4, 0), NewVec3(0, 0, 5))
	if box.Min != NewVec3(-1, -2, 0) || box.Max != NewVec3(1, 4, 5) {
		t.Errorf("Unexpected box %v", *box)
	}
	if box.Center() != NewVec3(0, 1, 2.5) {
		t.Errorf("Expected center (0, 1, 2.5), got %v", box.Center())
	}
}
