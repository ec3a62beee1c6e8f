package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/ports"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "laserpreview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 200*time.Millisecond, cfg.Debounce())

	oc, err := cfg.ToOrchestratorConfig()
	require.NoError(t, err)
	require.Equal(t, pipeline.MaterialGlass, oc.Material)
	require.InDelta(t, 0.7, oc.Depth, 1e-12)
	require.Equal(t, pipeline.DefaultToneParams(), oc.Tone)
	require.Equal(t, pipeline.SketchToneParams(), oc.SketchTone)
	require.Equal(t, pipeline.DefaultExportParams(), oc.Export)
	require.Equal(t, ports.FormatPNG, oc.Format)
	require.Empty(t, oc.Backgrounds)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
input: photo.jpg
output: out/preview.webp
format: webp
material: Wood
depth: 40
tone:
  blur_radius: 10
textures:
  wood: assets/wood.jpg
backgrounds:
  wood: ["#102030", "405060"]
debounce_ms: 50
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "photo.jpg", cfg.InputPath)
	require.Equal(t, "assets/wood.jpg", cfg.Textures["wood"])
	require.Equal(t, 50*time.Millisecond, cfg.Debounce())

	// keys absent from the file keep their defaults
	require.Equal(t, pipeline.ContrastThreshold, cfg.Tone.Threshold)
	require.Equal(t, pipeline.EngraveLightGain, cfg.Tone.LightGain)
	require.Equal(t, 90, cfg.Quality)

	oc, err := cfg.ToOrchestratorConfig()
	require.NoError(t, err)
	require.Equal(t, pipeline.MaterialWood, oc.Material)
	require.InDelta(t, 0.4, oc.Depth, 1e-12)
	require.Equal(t, ports.FormatWebP, oc.Format)
	require.Equal(t, 10.0, oc.Tone.BlurRadius)
	require.Equal(t, [2]color.NRGBA{
		{R: 0x10, G: 0x20, B: 0x30, A: 255},
		{R: 0x40, G: 0x50, B: 0x60, A: 255},
	}, oc.Backgrounds[pipeline.MaterialWood])

	req := oc.Request(nil)
	require.NotNil(t, req.Background)
	require.Equal(t, uint8(0x10), req.Background[0].R)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadFromFile(writeConfig(t, "depth: [not a number"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"material", func(c *Config) { c.Material = "marble" }},
		{"format", func(c *Config) { c.Format = "gif" }},
		{"max dimension", func(c *Config) { c.MaxDimension = -1 }},
		{"tone gains", func(c *Config) { c.Tone.DarkGain = 2 }},
		{"sketch gains", func(c *Config) { c.Sketch.LightGain = -1 }},
		{"background", func(c *Config) { c.Backgrounds = map[string][2]string{"glass": {"#fff", "nope"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			require.Error(t, cfg.Validate())
			_, err := cfg.ToOrchestratorConfig()
			require.Error(t, err)
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#b77b44", color.NRGBA{R: 0xb7, G: 0x7b, B: 0x44, A: 255}},
		{"eef3f8", color.NRGBA{R: 0xee, G: 0xf3, B: 0xf8, A: 255}},
		{" #FFFFFF ", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#12", "#gggggg", "red"} {
		_, err := ParseColor(bad)
		require.Error(t, err, bad)
	}
}
