package renderer

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const tolerance = 1e-9

func vecNear(a, b core.Vec3) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance && math.Abs(a.Z-b.Z) <= tolerance
}

func assertColor(t *testing.T, got, want core.Vec3) {
	t.Helper()
	if !vecNear(got, want) {
		t.Errorf("Expected color %v, got %v", want, got)
	}
}

// memoryWriter keeps rendered pixels in memory. Pixels are written to
// disjoint slots so concurrent renders need no locking.
type memoryWriter struct {
	nx, ny int
	pixels []core.Vec3
	writes atomic.Int64
}

func newMemoryWriter(nx, ny int) *memoryWriter {
	return &memoryWriter{nx: nx, ny: ny, pixels: make([]core.Vec3, nx*ny)}
}

func (w *memoryWriter) Nx() int { return w.nx }
func (w *memoryWriter) Ny() int { return w.ny }

func (w *memoryWriter) WritePixel(col, row int, color core.Vec3) {
	w.pixels[row*w.nx+col] = color
	w.writes.Add(1)
}

func (w *memoryWriter) WriteToImage() error { return nil }

func (w *memoryWriter) at(col, row int) core.Vec3 {
	return w.pixels[row*w.nx+col]
}

// constantTracer returns one color for every ray and counts the rays traced
type constantTracer struct {
	color core.Vec3
	rays  atomic.Int64
}

func (ct *constantTracer) TraceRay(ray core.Ray) core.Vec3 {
	ct.rays.Add(1)
	return ct.color
}

// recordingLogger collects formatted log lines
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}
