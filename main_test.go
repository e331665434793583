package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"mirrors scene", "mirrors", false},
		{"glossy scene", "glossy", false},
		{"shapes scene", "shapes", false},
		{"unknown scene", "nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(config.Config{Scene: tt.sceneType})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Errorf("Expected primitives in scene '%s'", tt.sceneType)
			}
			if s.View.Width <= 0 || s.View.Height <= 0 {
				t.Errorf("Scene view should have a positive size, got %vx%v", s.View.Width, s.View.Height)
			}
		})
	}
}

func TestCreateScene_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mirrors.json")
	original, err := scene.NewBuiltinScene("mirrors")
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}
	if err := loaders.SaveScene(path, original); err != nil {
		t.Fatalf("Failed to save scene: %v", err)
	}

	// The file wins over the built-in id
	s, err := createScene(config.Config{Scene: "shapes", SceneFile: path})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.GetPrimitiveCount() != original.GetPrimitiveCount() {
		t.Errorf("Expected %d primitives, got %d", original.GetPrimitiveCount(), s.GetPrimitiveCount())
	}

	if _, err := createScene(config.Config{SceneFile: filepath.Join(dir, "missing.json")}); err == nil {
		t.Error("Expected error for a missing scene file")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.json")
	if err := os.WriteFile(path, []byte(`{"scene": "glossy", "width": 64, "threads": 2}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := loadConfig(path, config.Flags{Threads: 3})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Scene != "glossy" || cfg.Width != 64 || cfg.Threads != 3 {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.Output != filepath.Join("output", "glossy", "render.png") {
		t.Errorf("Unexpected output %s", cfg.Output)
	}

	if _, err := loadConfig(filepath.Join(dir, "missing.json"), config.Flags{}); err == nil {
		t.Error("Expected error for a missing config file")
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		Scene:    "shapes",
		Output:   filepath.Join(dir, "render.png"),
		Width:    24,
		Density:  2,
		MaxLevel: 2,
		Threads:  2,
	}
	cfg.Resolve(config.Flags{})

	s, err := createScene(cfg)
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}
	writer, err := render(cfg, s, core.NopLogger{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	img, err := loaders.LoadImage(cfg.Output)
	if err != nil {
		t.Fatalf("Failed to load render: %v", err)
	}
	width, height := cfg.ImageSize(s.View.Width / s.View.Height)
	if img.Width != width || img.Height != height {
		t.Errorf("Expected %dx%d image, got %dx%d", width, height, img.Width, img.Height)
	}

	// PNG is lossless so the render matches its own file exactly
	diff, err := compareToReference(writer, cfg.Output)
	if err != nil {
		t.Fatalf("Comparison failed: %v", err)
	}
	if diff != 0 {
		t.Errorf("Expected no difference from the written file, got %v", diff)
	}
}
