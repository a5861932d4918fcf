// Package config loads meter-reader settings from an optional YAML file with
// sensible defaults. Command-line flags override whatever is loaded here.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the full runtime configuration.
type Config struct {
	// Model is the path to the pretrained classifier artifact.
	Model string `mapstructure:"model"`

	// Engine selects the inference backend: "onnx" or "tesseract".
	Engine string `mapstructure:"engine"`

	// Regions is a JSON file path or a literal JSON list of digit regions.
	Regions string `mapstructure:"regions"`

	// ImageSource is a local image path or an http(s) URL.
	ImageSource string `mapstructure:"image_source"`

	// Output is where the annotated image is written.
	Output string `mapstructure:"output"`

	// InputHeight/InputWidth override the model input size when the model
	// does not declare a static shape.
	InputHeight int `mapstructure:"input_height"`
	InputWidth  int `mapstructure:"input_width"`

	// PixelScale selects the preprocessing scaling policy: "none" keeps
	// 0-255 values, "unit" normalizes to [0,1]. Must match what the bound
	// model was trained with.
	PixelScale string `mapstructure:"pixel_scale"`

	// AccentColor is the annotation color as a hex string.
	AccentColor string `mapstructure:"accent_color"`

	// FetchTimeoutSeconds bounds remote image downloads.
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds"`

	// GridSpacing is the pixel spacing of the calibration grid overlay.
	GridSpacing int `mapstructure:"grid_spacing"`
}

// Load reads configuration from the YAML file at path, or returns pure
// defaults when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("model", "model.onnx")
	v.SetDefault("engine", "onnx")
	v.SetDefault("image_source", "sample.jpg")
	v.SetDefault("output", "result.jpg")
	v.SetDefault("input_height", 32)
	v.SetDefault("input_width", 20)
	v.SetDefault("pixel_scale", "none")
	v.SetDefault("accent_color", "#00ff00")
	v.SetDefault("fetch_timeout_seconds", 10)
	v.SetDefault("grid_spacing", 50)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
