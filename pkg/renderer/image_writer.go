package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageWriter receives rendered pixels and stores the finished image
type ImageWriter interface {
	Nx() int // Columns to render
	Ny() int // Rows to render
	WritePixel(col, row int, color core.Vec3)
	WriteToImage() error
}

// FileImageWriter keeps the image in memory and encodes it to a file whose
// format follows the extension: .png, .webp, .bmp, .tif/.tiff, .jpg/.jpeg.
// Colors are linear with channels in [0, 1]; larger values are clamped.
type FileImageWriter struct {
	path        string
	width       int // Output width
	height      int // Output height
	supersample int
	gamma       float64
	img         *image.RGBA // Render buffer, supersample times the output size
}

// WriterOption configures a FileImageWriter
type WriterOption func(*FileImageWriter)

// WithSupersample renders factor times the output resolution per axis and
// downsamples with a Catmull-Rom filter when writing
func WithSupersample(factor int) WriterOption {
	return func(w *FileImageWriter) { w.supersample = factor }
}

// WithGamma applies gamma correction to every written pixel. 1 keeps colors linear.
func WithGamma(gamma float64) WriterOption {
	return func(w *FileImageWriter) { w.gamma = gamma }
}

// NewFileImageWriter creates a writer for a width x height image at path
func NewFileImageWriter(path string, width, height int, opts ...WriterOption) (*FileImageWriter, error) {
	w := &FileImageWriter{
		path:        path,
		width:       width,
		height:      height,
		supersample: 1,
		gamma:       1,
	}
	for _, opt := range opts {
		opt(w)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image writer: size must be positive, got %dx%d", width, height)
	}
	if w.supersample <= 0 {
		return nil, fmt.Errorf("image writer: supersample must be positive, got %d", w.supersample)
	}
	if w.gamma <= 0 {
		return nil, fmt.Errorf("image writer: gamma must be positive, got %g", w.gamma)
	}
	if _, err := encoderFor(path); err != nil {
		return nil, err
	}

	w.img = image.NewRGBA(image.Rect(0, 0, width*w.supersample, height*w.supersample))
	return w, nil
}

// Nx returns the number of columns rendered
func (w *FileImageWriter) Nx() int { return w.width * w.supersample }

// Ny returns the number of rows rendered
func (w *FileImageWriter) Ny() int { return w.height * w.supersample }

// WritePixel stores a color. Every pixel has its own slot in the buffer, so
// concurrent writes to different pixels are safe.
func (w *FileImageWriter) WritePixel(col, row int, c core.Vec3) {
	if w.gamma != 1 {
		c = c.Clamp(0, 1).GammaCorrect(w.gamma)
	}
	w.img.SetRGBA(col, row, toRGBA(c))
}

// Image returns the finished image at the output resolution
func (w *FileImageWriter) Image() *image.RGBA {
	if w.supersample == 1 {
		return w.img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w.width, w.height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), w.img, w.img.Bounds(), draw.Src, nil)
	return dst
}

// WriteToImage encodes the image to the writer's path, creating parent directories
func (w *FileImageWriter) WriteToImage() error {
	encode, err := encoderFor(w.path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(w.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("image writer: create directory %s: %w", dir, err)
		}
	}

	return saveImage(w.path, encode, w.Image())
}

// saveImage encodes img into a new file at path and closes it, reporting
// a failed close even when encoding already failed
func saveImage(path string, encode encodeFunc, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("image writer: create %s: %w", path, err)
	}

	if err := encode(f, img); err != nil {
		return errors.Join(fmt.Errorf("image writer: encode %s: %w", path, err), f.Close())
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("image writer: close %s: %w", path, err)
	}
	return nil
}

type encodeFunc func(w io.Writer, img image.Image) error

func encoderFor(path string) (encodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return func(w io.Writer, img image.Image) error { return png.Encode(w, img) }, nil
	case ".webp":
		return func(w io.Writer, img image.Image) error { return nativewebp.Encode(w, img, nil) }, nil
	case ".bmp":
		return func(w io.Writer, img image.Image) error { return bmp.Encode(w, img) }, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, nil) }, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
		}, nil
	}
	return nil, fmt.Errorf("image writer: unsupported image format %q", filepath.Ext(path))
}

// toRGBA converts a linear color to 8-bit channels
func toRGBA(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(math.Round(c.X * 255)),
		G: uint8(math.Round(c.Y * 255)),
		B: uint8(math.Round(c.Z * 255)),
		A: 255,
	}
}
