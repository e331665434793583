package renderer

import (
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Pixel identifies an image pixel. Row 0 is the top of the image.
type Pixel struct {
	Row, Col int
}

// PixelManager hands out every pixel of an image exactly once, in row
// major order, and reports progress as pixels complete. It is safe for
// concurrent use.
type PixelManager struct {
	mu       sync.Mutex
	rows     int
	cols     int
	cursor   int // Index of the next pixel to hand out
	done     int
	interval float64 // Percent between progress reports, 0 disables reporting
	reported float64
	logger   core.Logger
}

// NewPixelManager creates a manager for a rows x cols image. Progress is
// logged every interval percent, and not at all when interval is 0.
func NewPixelManager(rows, cols int, interval float64, logger core.Logger) *PixelManager {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &PixelManager{
		rows:     rows,
		cols:     cols,
		interval: interval,
		logger:   logger,
	}
}

// NextPixel claims the next pixel. It returns false once every pixel has been handed out.
func (pm *PixelManager) NextPixel() (Pixel, bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.cursor >= pm.rows*pm.cols {
		return Pixel{}, false
	}
	p := Pixel{Row: pm.cursor / pm.cols, Col: pm.cursor % pm.cols}
	pm.cursor++
	return p, true
}

// PixelDone records a finished pixel and logs progress when a reporting step is crossed
func (pm *PixelManager) PixelDone() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.done++
	if pm.interval <= 0 {
		return
	}
	percent := pm.percent()
	if percent-pm.reported >= pm.interval || pm.done == pm.rows*pm.cols {
		pm.reported = percent
		pm.logger.Printf("Rendered %.1f%% (%d/%d pixels)\n", percent, pm.done, pm.rows*pm.cols)
	}
}

// Progress returns the percentage of finished pixels
func (pm *PixelManager) Progress() float64 {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.percent()
}

func (pm *PixelManager) percent() float64 {
	total := pm.rows * pm.cols
	if total == 0 {
		return 100
	}
	return 100 * float64(pm.done) / float64(total)
}

// Done returns the number of finished pixels
func (pm *PixelManager) Done() int {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.done
}
