package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Model != "model.onnx" {
		t.Errorf("Model = %q, want %q", cfg.Model, "model.onnx")
	}
	if cfg.Engine != "onnx" {
		t.Errorf("Engine = %q, want %q", cfg.Engine, "onnx")
	}
	if cfg.Output != "result.jpg" {
		t.Errorf("Output = %q, want %q", cfg.Output, "result.jpg")
	}
	if cfg.PixelScale != "none" {
		t.Errorf("PixelScale = %q, want %q", cfg.PixelScale, "none")
	}
	if cfg.AccentColor != "#00ff00" {
		t.Errorf("AccentColor = %q, want %q", cfg.AccentColor, "#00ff00")
	}
	if cfg.FetchTimeoutSeconds != 10 {
		t.Errorf("FetchTimeoutSeconds = %d, want 10", cfg.FetchTimeoutSeconds)
	}
	if cfg.InputHeight != 32 || cfg.InputWidth != 20 {
		t.Errorf("input size = %dx%d, want 32x20", cfg.InputHeight, cfg.InputWidth)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `model: meter.onnx
engine: tesseract
regions: regions.json
image_source: http://example.com/meter.jpg
input_height: 28
input_width: 28
pixel_scale: unit
accent_color: "#ff0000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Model != "meter.onnx" {
		t.Errorf("Model = %q, want %q", cfg.Model, "meter.onnx")
	}
	if cfg.Engine != "tesseract" {
		t.Errorf("Engine = %q, want %q", cfg.Engine, "tesseract")
	}
	if cfg.Regions != "regions.json" {
		t.Errorf("Regions = %q, want %q", cfg.Regions, "regions.json")
	}
	if cfg.InputHeight != 28 || cfg.InputWidth != 28 {
		t.Errorf("input size = %dx%d, want 28x28", cfg.InputHeight, cfg.InputWidth)
	}
	if cfg.PixelScale != "unit" {
		t.Errorf("PixelScale = %q, want %q", cfg.PixelScale, "unit")
	}
	if cfg.AccentColor != "#ff0000" {
		t.Errorf("AccentColor = %q, want %q", cfg.AccentColor, "#ff0000")
	}

	// Unset keys keep their defaults.
	if cfg.Output != "result.jpg" {
		t.Errorf("Output = %q, want default %q", cfg.Output, "result.jpg")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load should fail for a missing config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":\n  - not valid: ["), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should fail for invalid YAML")
	}
}
