package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera construction errors
var (
	ErrInvalidCamera      = errors.New("invalid camera")
	ErrMissingImageWriter = errors.New("camera has no image writer")
	ErrMissingRayTracer   = errors.New("camera has no ray tracer")
)

// DefaultProgressInterval is the percentage between progress log lines
const DefaultProgressInterval = 10.0

// CameraBuilder collects camera settings. Setters never fail on their own;
// invalid values are recorded and reported together by Build.
type CameraBuilder struct {
	area             TargetArea
	target           *core.Vec3 // Look at point, resolved against the final location
	oriented         bool
	antiAliasing     int
	threads          int
	imageWriter      ImageWriter
	rayTracer        RayTracer
	logger           core.Logger
	progressInterval float64
	errs             []error
}

// NewCameraBuilder creates a builder at the origin with a view plane distance
// of 100, a single primary ray per pixel and sequential rendering
func NewCameraBuilder() *CameraBuilder {
	return &CameraBuilder{
		area:             TargetArea{Distance: DefaultGridDistance},
		antiAliasing:     1,
		logger:           core.NopLogger{},
		progressInterval: DefaultProgressInterval,
	}
}

func (b *CameraBuilder) fail(format string, args ...interface{}) *CameraBuilder {
	b.errs = append(b.errs, fmt.Errorf("camera: %s: %w", fmt.Sprintf(format, args...), ErrInvalidCamera))
	return b
}

// SetLocation sets the camera position
func (b *CameraBuilder) SetLocation(p core.Vec3) *CameraBuilder {
	b.area.Location = p
	return b
}

// SetDirection orients the camera along vTo with vUp as the image up direction
func (b *CameraBuilder) SetDirection(vTo, vUp core.Vec3) *CameraBuilder {
	area, err := b.area.WithDirection(vTo, vUp)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("camera: %w", errors.Join(err, ErrInvalidCamera)))
		return b
	}
	b.area = area
	b.target = nil
	b.oriented = true
	return b
}

// LookAt turns the camera toward p once the location is known
func (b *CameraBuilder) LookAt(p core.Vec3) *CameraBuilder {
	b.target = &p
	b.oriented = true
	return b
}

// SetVpSize sets the view plane width and height
func (b *CameraBuilder) SetVpSize(width, height float64) *CameraBuilder {
	if width <= 0 || height <= 0 {
		return b.fail("view plane size must be positive, got %gx%g", width, height)
	}
	b.area.Width = width
	b.area.Height = height
	return b
}

// SetVpDistance sets the distance from the camera to the view plane
func (b *CameraBuilder) SetVpDistance(distance float64) *CameraBuilder {
	if distance <= 0 {
		return b.fail("view plane distance must be positive, got %g", distance)
	}
	b.area.Distance = distance
	return b
}

// SetAntiAliasing traces a density x density grid of rays per pixel and
// averages them. 1 traces a single ray through the pixel center.
func (b *CameraBuilder) SetAntiAliasing(density int) *CameraBuilder {
	if density < 1 {
		return b.fail("anti-aliasing density must be at least 1, got %d", density)
	}
	b.antiAliasing = density
	return b
}

// SetMultithreading sets the number of render goroutines. 0 and 1 render sequentially.
func (b *CameraBuilder) SetMultithreading(threads int) *CameraBuilder {
	if threads < 0 {
		return b.fail("thread count must not be negative, got %d", threads)
	}
	b.threads = threads
	return b
}

// SetImageWriter sets the pixel sink. Its size decides the image resolution.
func (b *CameraBuilder) SetImageWriter(w ImageWriter) *CameraBuilder {
	b.imageWriter = w
	return b
}

// SetRayTracer sets the engine that colors primary rays
func (b *CameraBuilder) SetRayTracer(rt RayTracer) *CameraBuilder {
	b.rayTracer = rt
	return b
}

// SetLogger sets the logger for progress and timing output
func (b *CameraBuilder) SetLogger(logger core.Logger) *CameraBuilder {
	if logger == nil {
		logger = core.NopLogger{}
	}
	b.logger = logger
	return b
}

// SetProgressInterval sets the percentage between progress reports, 0 disables them
func (b *CameraBuilder) SetProgressInterval(percent float64) *CameraBuilder {
	if percent < 0 || percent > 100 {
		return b.fail("progress interval must be in [0, 100], got %g", percent)
	}
	b.progressInterval = percent
	return b
}

// Build validates the settings and returns an immutable camera. The builder
// may be changed and built again without affecting cameras already built.
func (b *CameraBuilder) Build() (*Camera, error) {
	errs := append([]error(nil), b.errs...)

	area := b.area
	if b.target != nil {
		var err error
		if area, err = area.LookAt(*b.target); err != nil {
			errs = append(errs, fmt.Errorf("camera: %w", errors.Join(err, ErrInvalidCamera)))
		}
	} else if !b.oriented {
		errs = append(errs, fmt.Errorf("camera: direction is not set: %w", ErrInvalidCamera))
	}
	if area.Width == 0 || area.Height == 0 {
		errs = append(errs, fmt.Errorf("camera: view plane size is not set: %w", ErrInvalidCamera))
	}
	if b.imageWriter == nil {
		errs = append(errs, fmt.Errorf("camera: %w", ErrMissingImageWriter))
	} else if b.imageWriter.Nx() <= 0 || b.imageWriter.Ny() <= 0 {
		errs = append(errs, fmt.Errorf("camera: image resolution %dx%d: %w",
			b.imageWriter.Nx(), b.imageWriter.Ny(), ErrInvalidCamera))
	}
	if b.rayTracer == nil {
		errs = append(errs, fmt.Errorf("camera: %w", ErrMissingRayTracer))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Camera{
		area:             area,
		antiAliasing:     b.antiAliasing,
		threads:          b.threads,
		imageWriter:      b.imageWriter,
		rayTracer:        b.rayTracer,
		logger:           b.logger,
		progressInterval: b.progressInterval,
	}, nil
}

// Camera renders a scene through a view plane into an image writer
type Camera struct {
	area             TargetArea
	antiAliasing     int
	threads          int
	imageWriter      ImageWriter
	rayTracer        RayTracer
	logger           core.Logger
	progressInterval float64
}

// Location returns the camera position
func (c *Camera) Location() core.Vec3 { return c.area.Location }

// Basis returns the forward, up and right unit vectors
func (c *Camera) Basis() (vTo, vUp, vRight core.Vec3) {
	return c.area.VTo, c.area.VUp, c.area.VRight
}

// ConstructRay returns the primary ray through the center of pixel (j, i)
// of an nX by nY image
func (c *Camera) ConstructRay(nX, nY, j, i int) core.Ray {
	return c.area.ConstructRay(nX, nY, j, i)
}

// RenderImage traces every pixel into the image writer and blocks until done
func (c *Camera) RenderImage() RenderStats {
	nX, nY := c.imageWriter.Nx(), c.imageWriter.Ny()
	start := time.Now()

	pixels := NewPixelManager(nY, nX, c.progressInterval, c.logger)
	render := func(p Pixel) {
		c.imageWriter.WritePixel(p.Col, p.Row, c.castRay(nX, nY, p.Col, p.Row))
	}

	workers := 1
	if c.threads <= 1 {
		for p, ok := pixels.NextPixel(); ok; p, ok = pixels.NextPixel() {
			render(p)
			pixels.PixelDone()
		}
	} else {
		pool := NewWorkerPool(pixels, c.threads, render)
		workers = pool.GetNumWorkers()
		pool.Run()
	}

	samples := c.antiAliasing * c.antiAliasing
	stats := RenderStats{
		TotalPixels:     nX * nY,
		SamplesPerPixel: samples,
		TotalSamples:    nX * nY * samples,
		Workers:         workers,
		Duration:        time.Since(start),
	}
	c.logger.Printf("Render completed: %dx%d, %d samples/pixel, %d workers, %v (%.0f pixels/s)\n",
		nX, nY, samples, workers, stats.Duration, stats.PixelsPerSecond())
	return stats
}

// castRay colors pixel (j, i), averaging a sub-pixel grid when anti-aliasing
func (c *Camera) castRay(nX, nY, j, i int) core.Vec3 {
	if c.antiAliasing == 1 {
		return c.rayTracer.TraceRay(c.area.ConstructRay(nX, nY, j, i))
	}

	var ps PixelStats
	n := float64(c.antiAliasing)
	for sy := 0; sy < c.antiAliasing; sy++ {
		for sx := 0; sx < c.antiAliasing; sx++ {
			jx := (float64(sx)+0.5)/n - 0.5
			jy := 0.5 - (float64(sy)+0.5)/n
			ps.AddSample(c.rayTracer.TraceRay(c.area.ConstructRayJittered(nX, nY, j, i, jx, jy)))
		}
	}
	return ps.GetColor()
}

// PrintGrid overwrites every interval-th pixel row and column with color
func (c *Camera) PrintGrid(interval int, color core.Vec3) error {
	if interval <= 0 {
		return fmt.Errorf("camera: grid interval must be positive, got %d: %w", interval, ErrInvalidCamera)
	}
	nX, nY := c.imageWriter.Nx(), c.imageWriter.Ny()
	for i := 0; i < nY; i++ {
		for j := 0; j < nX; j++ {
			if i%interval == 0 || j%interval == 0 {
				c.imageWriter.WritePixel(j, i, color)
			}
		}
	}
	return nil
}

// WriteToImage hands the rendered image to the writer for output
func (c *Camera) WriteToImage() error {
	return c.imageWriter.WriteToImage()
}
