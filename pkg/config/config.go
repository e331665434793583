package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
)

// Defaults for render settings
const (
	DefaultScene            = "shapes"
	DefaultWidth            = 400
	DefaultDensity          = 9
	DefaultMaxLevel         = 10
	DefaultMinK             = 0.001
	DefaultProgressInterval = 10
)

// Config holds the scene selection, output and render settings
type Config struct {
	// Scene
	Scene     string `json:"scene"`      // Built-in scene id
	SceneFile string `json:"scene_file"` // JSON scene, takes priority over Scene
	Output    string `json:"output"`     // Image path, format chosen by extension

	// Image
	Width       int     `json:"width"`
	Height      int     `json:"height"` // Zero follows the view plane aspect ratio
	Supersample int     `json:"supersample"`
	Gamma       float64 `json:"gamma"`

	// Tracing
	Density          int      `json:"density"`       // Soft shadow, glossy and blurry grid size per side
	MaxLevel         int      `json:"max_level"`     // Recursion limit
	MinK             float64  `json:"min_k"`         // Contribution threshold
	AntiAliasing     int      `json:"anti_aliasing"` // Primary rays per pixel side
	Jitter           bool     `json:"jitter"`
	Seed             int64    `json:"seed"`
	Threads          int      `json:"threads"`
	ProgressInterval *float64 `json:"progress_interval"` // Percent between progress lines, 0 disables
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Scene files are relative to the config file
	if cfg.SceneFile != "" && !filepath.IsAbs(cfg.SceneFile) {
		cfg.SceneFile = filepath.Join(filepath.Dir(path), cfg.SceneFile)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings
type Flags struct {
	Scene        string
	SceneFile    string
	Output       string
	Width        int
	Height       int
	Threads      int
	Density      int
	AntiAliasing int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
		c.SceneFile = ""
	}
	if flags.SceneFile != "" {
		c.SceneFile = flags.SceneFile
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Threads > 0 {
		c.Threads = flags.Threads
	}
	if flags.Density > 0 {
		c.Density = flags.Density
	}
	if flags.AntiAliasing > 0 {
		c.AntiAliasing = flags.AntiAliasing
	}

	if c.Scene == "" {
		c.Scene = DefaultScene
	}
	if c.Output == "" {
		c.Output = filepath.Join("output", c.Name(), "render.png")
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Gamma <= 0 {
		c.Gamma = 1
	}
	if c.Density <= 0 {
		c.Density = DefaultDensity
	}
	if c.MaxLevel <= 0 {
		c.MaxLevel = DefaultMaxLevel
	}
	if c.MinK <= 0 {
		c.MinK = DefaultMinK
	}
	if c.AntiAliasing <= 0 {
		c.AntiAliasing = 1
	}
	if c.Threads <= 0 {
		c.Threads = runtime.NumCPU()
	}
	if c.ProgressInterval == nil || *c.ProgressInterval < 0 {
		interval := float64(DefaultProgressInterval)
		c.ProgressInterval = &interval
	}
}

// Name returns a short name for the selected scene, used for output paths
func (c *Config) Name() string {
	if c.SceneFile != "" {
		base := filepath.Base(c.SceneFile)
		return base[:len(base)-len(filepath.Ext(base))]
	}
	return c.Scene
}

// ImageSize returns the image resolution. An unset height is derived from the
// width and the view plane aspect ratio (width / height).
func (c *Config) ImageSize(aspect float64) (width, height int) {
	if c.Height > 0 {
		return c.Width, c.Height
	}
	if aspect <= 0 {
		aspect = 1
	}
	return c.Width, max(int(math.Round(float64(c.Width)/aspect)), 1)
}
