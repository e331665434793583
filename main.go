package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "", "Built-in scene id (see -help)")
	sceneFile := flag.String("in", "", "JSON scene file, overrides -scene")
	output := flag.String("out", "", "Output image (.png, .webp, .bmp, .tif, .jpg)")
	width := flag.Int("width", 0, "Image width in pixels")
	height := flag.Int("height", 0, "Image height in pixels (default: follow the view aspect ratio)")
	threads := flag.Int("threads", 0, "Render goroutines (default: number of CPUs)")
	density := flag.Int("density", 0, "Soft shadow, glossy and blurry grid size per side")
	antiAliasing := flag.Int("aa", 0, "Primary rays per pixel side")
	configPath := flag.String("config", "", "JSON render config file")
	saveScene := flag.String("save-scene", "", "Save the selected scene as JSON and exit")
	reference := flag.String("reference", "", "Compare the render against a reference image")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		printHelp()
		return
	}

	cfg, err := loadConfig(*configPath, config.Flags{
		Scene:        *sceneType,
		SceneFile:    *sceneFile,
		Output:       *output,
		Width:        *width,
		Height:       *height,
		Threads:      *threads,
		Density:      *density,
		AntiAliasing: *antiAliasing,
	})
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := renderer.NewDefaultLogger()

	selectedScene, err := createScene(cfg)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}

	if *saveScene != "" {
		if err := loaders.SaveScene(*saveScene, selectedScene); err != nil {
			fmt.Printf("Error saving scene: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Scene saved as %s\n", *saveScene)
		return
	}

	fmt.Println("Starting Whitted Raytracer...")
	fmt.Printf("Using %s scene (%d primitives, %d lights)...\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), len(selectedScene.Lights))

	writer, err := render(cfg, selectedScene, logger)
	if err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", cfg.Output)

	if *reference != "" {
		diff, err := compareToReference(writer, *reference)
		if err != nil {
			fmt.Printf("Error comparing to reference: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Mean absolute difference from %s: %.5f\n", *reference, diff)
	}
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render.png unless -out is given")
}

// loadConfig reads the optional config file and applies flag overrides and defaults
func loadConfig(path string, flags config.Flags) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	cfg.Resolve(flags)
	return cfg, nil
}

// createScene returns the scene from the JSON file when one is configured,
// otherwise the named built-in scene
func createScene(cfg config.Config) (*scene.Scene, error) {
	if cfg.SceneFile != "" {
		return loaders.LoadScene(cfg.SceneFile)
	}
	return scene.NewBuiltinScene(cfg.Scene)
}

// newRayTracer builds the ray tracer over an indexed copy of the scene
func newRayTracer(cfg config.Config, s *scene.Scene, logger core.Logger) (*renderer.SimpleRayTracer, error) {
	indexed := s.BuildIndex()
	stats := indexed.Geometries.Stats()
	logger.Printf("BVH built: %d nodes, %d leaves, %d unbounded, depth %d\n",
		stats.Nodes, stats.Leaves, stats.Unbounded, stats.Depth)

	opts := []renderer.Option{
		renderer.WithDensity(cfg.Density),
		renderer.WithMaxLevel(cfg.MaxLevel),
		renderer.WithMinK(cfg.MinK),
	}
	if cfg.Jitter {
		opts = append(opts, renderer.WithJitter(core.NewSeededSampler(cfg.Seed)))
	}
	return renderer.NewSimpleRayTracer(indexed, opts...)
}

// newCamera frames the scene view with the given writer and tracer
func newCamera(cfg config.Config, s *scene.Scene, writer renderer.ImageWriter, tracer renderer.RayTracer, logger core.Logger) (*renderer.Camera, error) {
	view := s.View
	return renderer.NewCameraBuilder().
		SetLocation(view.Location).
		LookAt(view.Target).
		SetVpSize(view.Width, view.Height).
		SetVpDistance(view.Distance).
		SetAntiAliasing(cfg.AntiAliasing).
		SetMultithreading(cfg.Threads).
		SetImageWriter(writer).
		SetRayTracer(tracer).
		SetLogger(logger).
		SetProgressInterval(*cfg.ProgressInterval).
		Build()
}

// render traces the scene into cfg.Output and returns the writer holding the image
func render(cfg config.Config, s *scene.Scene, logger core.Logger) (*renderer.FileImageWriter, error) {
	tracer, err := newRayTracer(cfg, s, logger)
	if err != nil {
		return nil, err
	}

	width, height := cfg.ImageSize(s.View.Width / s.View.Height)
	writer, err := renderer.NewFileImageWriter(cfg.Output, width, height,
		renderer.WithSupersample(cfg.Supersample),
		renderer.WithGamma(cfg.Gamma))
	if err != nil {
		return nil, err
	}

	camera, err := newCamera(cfg, s, writer, tracer, logger)
	if err != nil {
		return nil, err
	}

	camera.RenderImage()

	if err := camera.WriteToImage(); err != nil {
		return nil, err
	}
	return writer, nil
}

// compareToReference returns the mean absolute difference between the render and a reference image
func compareToReference(writer *renderer.FileImageWriter, path string) (float64, error) {
	ref, err := loaders.LoadImage(path)
	if err != nil {
		return 0, err
	}
	return loaders.MeanAbsoluteDifference(loaders.NewImageData(writer.Image()), ref)
}
