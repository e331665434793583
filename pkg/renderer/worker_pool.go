package renderer

import (
	"runtime"
	"sync"
)

// pixelFunc renders and stores a single pixel
type pixelFunc func(p Pixel)

// WorkerPool runs a fixed number of workers that pull pixels from a shared
// PixelManager until none remain
type WorkerPool struct {
	pixels     *PixelManager
	workers    []*Worker
	numWorkers int
	wg         sync.WaitGroup
}

// Worker renders pixels claimed from the pool's manager
type Worker struct {
	ID     int
	pixels *PixelManager
	render pixelFunc
}

// NewWorkerPool creates a pool with numWorkers workers, one per CPU when numWorkers <= 0
func NewWorkerPool(pixels *PixelManager, numWorkers int, render pixelFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		pixels:     pixels,
		numWorkers: numWorkers,
	}
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{ID: i, pixels: pixels, render: render})
	}
	return wp
}

// Run starts all workers and blocks until every pixel is rendered
func (wp *WorkerPool) Run() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
	wp.wg.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		p, ok := w.pixels.NextPixel()
		if !ok {
			return
		}
		// Each pixel is claimed once, so writes never overlap
		w.render(p)
		w.pixels.PixelDone()
	}
}
