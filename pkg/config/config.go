// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/user/laserpreview/pkg/orchestrator"
	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/ports"
)

// Config represents the full configuration for laserpreview.
type Config struct {
	// Input/Output
	InputPath       string `yaml:"input"`
	OutputPath      string `yaml:"output"`
	TransparentPath string `yaml:"transparent_output"`
	Format          string `yaml:"format"` // png, jpeg or webp
	Quality         int    `yaml:"quality"`

	// Engraving
	Material string  `yaml:"material"`
	Depth    float64 `yaml:"depth"` // percent, 10-100 on the UI scale

	// Processing
	MaxDimension int          `yaml:"max_dimension"`
	Tone         ToneConfig   `yaml:"tone"`
	Sketch       ToneConfig   `yaml:"sketch"`
	Export       ExportConfig `yaml:"export"`

	// Material look
	Textures    map[string]string    `yaml:"textures"`    // material -> image path
	Backgrounds map[string][2]string `yaml:"backgrounds"` // material -> [top, bottom] hex colours

	// Interactive session
	DebounceMs int `yaml:"debounce_ms"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ToneConfig represents the sketch extraction tuning.
type ToneConfig struct {
	BlurRadius float64 `yaml:"blur_radius"`
	Threshold  float64 `yaml:"threshold"`
	DarkGain   float64 `yaml:"dark_gain"`
	LightGain  float64 `yaml:"light_gain"`
}

// ExportConfig represents the transparent export thresholds.
type ExportConfig struct {
	BrightnessThreshold float64 `yaml:"brightness_threshold"`
	AlphaThreshold      uint8   `yaml:"alpha_threshold"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	tone := pipeline.DefaultToneParams()
	sketch := pipeline.SketchToneParams()
	export := pipeline.DefaultExportParams()

	return Config{
		Format:  "png",
		Quality: 90,

		Material: string(pipeline.MaterialGlass),
		Depth:    70,

		MaxDimension: pipeline.DefaultMaxDimension,
		Tone:         toneConfig(tone),
		Sketch:       toneConfig(sketch),
		Export: ExportConfig{
			BrightnessThreshold: export.BrightnessThreshold,
			AlphaThreshold:      export.AlphaThreshold,
		},

		DebounceMs: 200,

		DebugDir: "./debug",
	}
}

func toneConfig(p pipeline.ToneParams) ToneConfig {
	return ToneConfig{
		BlurRadius: p.BlurRadius,
		Threshold:  p.Contrast.Threshold,
		DarkGain:   p.Contrast.DarkGain,
		LightGain:  p.Contrast.LightGain,
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ParseColor parses a hex colour ("#rrggbb", "rrggbb" or "#rgb").
func ParseColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Params converts the tuning to pipeline parameters.
func (t ToneConfig) Params() pipeline.ToneParams {
	return pipeline.ToneParams{
		BlurRadius: t.BlurRadius,
		Contrast: pipeline.ContrastParams{
			Threshold: t.Threshold,
			DarkGain:  t.DarkGain,
			LightGain: t.LightGain,
		},
	}
}

// Debounce returns the session delay.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Validate checks values that cannot be clamped into range.
func (c Config) Validate() error {
	if _, err := pipeline.ParseMaterial(c.Material); err != nil {
		return err
	}
	if _, err := ports.ParseImageFormat(c.Format); err != nil {
		return err
	}
	if c.MaxDimension < 0 {
		return fmt.Errorf("max_dimension must not be negative, got %d", c.MaxDimension)
	}
	if err := c.Tone.Params().Contrast.Validate(); err != nil {
		return fmt.Errorf("tone: %w", err)
	}
	if err := c.Sketch.Params().Contrast.Validate(); err != nil {
		return fmt.Errorf("sketch: %w", err)
	}
	for name, pair := range c.Backgrounds {
		for _, hex := range pair {
			if _, err := ParseColor(hex); err != nil {
				return fmt.Errorf("backgrounds.%s: %w", name, err)
			}
		}
	}
	return nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() (orchestrator.Config, error) {
	if err := c.Validate(); err != nil {
		return orchestrator.Config{}, err
	}

	material, _ := pipeline.ParseMaterial(c.Material)
	format, _ := ports.ParseImageFormat(c.Format)

	backgrounds := make(map[pipeline.Material][2]color.NRGBA, len(c.Backgrounds))
	for name, pair := range c.Backgrounds {
		top, _ := ParseColor(pair[0])
		bottom, _ := ParseColor(pair[1])
		backgrounds[pipeline.Material(strings.ToLower(name))] = [2]color.NRGBA{top, bottom}
	}

	return orchestrator.Config{
		InputPath:       c.InputPath,
		OutputPath:      c.OutputPath,
		TransparentPath: c.TransparentPath,
		Format:          format,
		Quality:         c.Quality,

		Material:    material,
		Depth:       pipeline.DepthFromPercent(c.Depth),
		Backgrounds: backgrounds,

		MaxDimension: c.MaxDimension,
		Tone:         c.Tone.Params(),
		SketchTone:   c.Sketch.Params(),
		Export: pipeline.ExportParams{
			BrightnessThreshold: c.Export.BrightnessThreshold,
			AlphaThreshold:      c.Export.AlphaThreshold,
		},
	}, nil
}
