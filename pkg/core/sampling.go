package core

import (
	"math/rand"
	"sync"
)

// Vec2 represents a 2D sample
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides 2D samples in [0, 1) for jittering sampling grids.
// Implementations must be safe for concurrent use by render workers.
type Sampler interface {
	Get2D() Vec2
}

// CenterSampler always samples the cell center, producing a regular grid
type CenterSampler struct{}

// Get2D returns (0.5, 0.5)
func (CenterSampler) Get2D() Vec2 {
	return Vec2{X: 0.5, Y: 0.5}
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a random sampler with a fixed seed for reproducible renders
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return NewVec2(r.random.Float64(), r.random.Float64())
}
