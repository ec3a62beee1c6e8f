package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/user/laserpreview/pkg/raster"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// Material selects the physical surface being engraved.
type Material string

const (
	MaterialGlass Material = "glass"
	MaterialWood  Material = "wood"
	// MaterialPaper is only used to key the paper texture of the sketch preview.
	MaterialPaper Material = "paper"
)

// ParseMaterial parses a material name (case-insensitive).
func ParseMaterial(s string) (Material, error) {
	switch Material(strings.ToLower(strings.TrimSpace(s))) {
	case MaterialGlass:
		return MaterialGlass, nil
	case MaterialWood:
		return MaterialWood, nil
	default:
		return "", fmt.Errorf("unknown material %q (want glass or wood)", s)
	}
}

// Params are the user-facing engraving parameters.
type Params struct {
	Material Material
	Depth    float64 // normalized engraving depth in [0,1]
}

// ClampDepth limits d to [0,1].
func ClampDepth(d float64) float64 {
	if d < 0 || d != d {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}

// DepthFromPercent converts the 0-100 slider scale to the normalized depth.
func DepthFromPercent(percent float64) float64 {
	return ClampDepth(percent / 100)
}

// =============================================================================
// Normalize Stage Types
// =============================================================================

// DefaultMaxDimension is the longest side of the working canvas.
const DefaultMaxDimension = 1200

// NormalizeInput contains the decoded source image.
type NormalizeInput struct {
	Source       image.Image
	MaxDimension int // Longest allowed side (default: 1200)
}

// NormalizeResult contains the working-size buffer.
type NormalizeResult struct {
	Buffer  *raster.Buffer
	Natural Dimension // Source size before scaling
	Scale   float64   // Applied scale factor, never above 1
}

// =============================================================================
// Tone Stage Types
// =============================================================================

// ContrastParams is the piecewise-linear tone curve applied to the sketch.
type ContrastParams struct {
	Threshold float64 // Brightness below which pixels are darkened
	DarkGain  float64 // Multiplier below Threshold
	LightGain float64 // Multiplier at or above Threshold, clamped to 255
}

// Validate reports parameter sets that would break monotonicity.
func (p ContrastParams) Validate() error {
	if p.DarkGain < 0 || p.LightGain < 0 {
		return fmt.Errorf("contrast gains must be non-negative (dark %.2f, light %.2f)", p.DarkGain, p.LightGain)
	}
	if p.DarkGain > p.LightGain {
		return fmt.Errorf("dark gain %.2f exceeds light gain %.2f", p.DarkGain, p.LightGain)
	}
	return nil
}

// ToneParams tunes the sketch extraction.
type ToneParams struct {
	BlurRadius float64 // Stack-blur equivalent radius in pixels
	Contrast   ContrastParams
}

// Named tuning sets.
const (
	EngraveBlurRadius = 14.0
	SketchBlurRadius  = 18.0

	ContrastThreshold = 200.0
	EngraveDarkGain   = 0.7
	EngraveLightGain  = 1.2
	SketchDarkGain    = 0.85
	SketchLightGain   = 1.0
)

// DefaultToneParams returns the tuning used for engraving previews.
func DefaultToneParams() ToneParams {
	return ToneParams{
		BlurRadius: EngraveBlurRadius,
		Contrast: ContrastParams{
			Threshold: ContrastThreshold,
			DarkGain:  EngraveDarkGain,
			LightGain: EngraveLightGain,
		},
	}
}

// SketchToneParams returns the softer tuning used for the pencil sketch.
func SketchToneParams() ToneParams {
	return ToneParams{
		BlurRadius: SketchBlurRadius,
		Contrast: ContrastParams{
			Threshold: ContrastThreshold,
			DarkGain:  SketchDarkGain,
			LightGain: SketchLightGain,
		},
	}
}

// ToneInput contains the working buffer to turn into a sketch.
type ToneInput struct {
	Buffer *raster.Buffer
	Params ToneParams
}

// ToneResult contains the intensity map.
type ToneResult struct {
	Sketch *raster.Buffer
}

// =============================================================================
// Composite Stage Types
// =============================================================================

// CompositeInput contains everything one material rendering needs.
type CompositeInput struct {
	Sketch   *raster.Buffer
	Texture  image.Image // Optional; nil falls back to the procedural background
	Material Material
	Depth    float64

	// Background overrides the material's procedural gradient (top, bottom).
	Background *[2]color.NRGBA
}

// CompositeResult contains the finished preview.
type CompositeResult struct {
	Image          *raster.Buffer
	TextureApplied bool
}

// =============================================================================
// Export Stage Types
// =============================================================================

// ExportParams separates engraved pixels from blank material.
type ExportParams struct {
	BrightnessThreshold float64 // Pixels at or above this average brightness are dropped
	AlphaThreshold      uint8   // Pixels at or below this alpha are dropped
}

// DefaultExportParams returns the reference thresholds.
func DefaultExportParams() ExportParams {
	return ExportParams{
		BrightnessThreshold: 200,
		AlphaThreshold:      30,
	}
}

// ExportInput contains the composited buffer.
type ExportInput struct {
	Image       *raster.Buffer
	Transparent bool // Also derive the alpha-masked variant
	Params      ExportParams
}

// ExportResult contains the export variants.
type ExportResult struct {
	Opaque      *raster.Buffer
	Transparent *raster.Buffer // nil unless requested
}

// =============================================================================
// Paper Stage Types
// =============================================================================

// PaperInput contains a sketch to present on paper.
type PaperInput struct {
	Sketch  *raster.Buffer
	Texture image.Image // Optional paper grain
}

// PaperResult contains the framed sketch.
type PaperResult struct {
	Image *raster.Buffer
}
