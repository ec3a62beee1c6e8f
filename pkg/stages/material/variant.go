package material

import (
	"fmt"
	"image/color"
	"math"

	"github.com/user/laserpreview/pkg/blend"
	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/ports"
)

// Linear is a depth-dependent quantity Base + Slope*depth.
type Linear struct {
	Base  float64
	Slope float64
}

// At evaluates l at depth d.
func (l Linear) At(d float64) float64 {
	return l.Base + l.Slope*d
}

// Pass composites one layer with a blend mode and opacity.
type Pass struct {
	Mode    blend.Mode
	Opacity Linear
}

// Halo is a blurred, optionally offset copy of the engraving overlay.
type Halo struct {
	Pass
	DX, DY  int
	Sigma   Linear // Gaussian standard deviation in pixels
	Beneath bool   // composite before the main pass instead of after
}

// Border is a reflective frame stroked around the whole canvas.
type Border struct {
	MaxWidth int
	Divisor  int                  // width = min(MaxWidth, min(w,h)/Divisor)
	Stops    []ports.GradientStop // diagonal gradient at full strength
	Strength Linear               // scales every stop's alpha
}

// Variant holds everything that differs between materials. The compositing
// algorithm itself is shared.
type Variant struct {
	Material pipeline.Material

	// Background is the procedural top-to-bottom gradient. It is the whole
	// backdrop when no texture is available.
	Background [2]color.NRGBA

	// TextureOpacity is the opacity of the stretched texture over the background.
	TextureOpacity float64

	// Gamma is the falloff exponent at depth 0; the effective exponent is Gamma+depth.
	Gamma float64

	// Ink colour is InkBase - InkSlope*burn per channel.
	InkBase  [3]float64
	InkSlope [3]float64

	Main   Pass
	Halo   Halo
	Border *Border
}

// DefaultGamma is the falloff exponent shared by both materials.
const DefaultGamma = 1.5

// Variants is the material table.
var Variants = map[pipeline.Material]Variant{
	pipeline.MaterialWood: {
		Material:       pipeline.MaterialWood,
		Background:     [2]color.NRGBA{hex(0xb77b44), hex(0x8a5a2f)},
		TextureOpacity: 1,
		Gamma:          DefaultGamma,
		InkBase:        [3]float64{80, 50, 20},
		InkSlope:       [3]float64{50, 30, 10},
		Main:           Pass{Mode: blend.Multiply, Opacity: Linear{Base: 1}},
		Halo: Halo{
			Pass:  Pass{Mode: blend.Multiply, Opacity: Linear{Base: 0.25}},
			DX:    1,
			DY:    1,
			Sigma: Linear{Base: 1},
		},
	},
	pipeline.MaterialGlass: {
		Material:       pipeline.MaterialGlass,
		Background:     [2]color.NRGBA{hex(0xeef3f8), hex(0xc9d2da)},
		TextureOpacity: 0.2,
		Gamma:          DefaultGamma,
		InkBase:        [3]float64{255, 255, 255},
		Main:           Pass{Mode: blend.Normal, Opacity: Linear{Base: 1}},
		Halo: Halo{
			Pass:    Pass{Mode: blend.Screen, Opacity: Linear{Base: 0.6, Slope: 0.3}},
			Sigma:   Linear{Base: 2, Slope: 2},
			Beneath: true,
		},
		Border: &Border{
			MaxWidth: 20,
			Divisor:  8,
			Stops: []ports.GradientStop{
				{Offset: 0, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 204}},
				{Offset: 0.5, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 102}},
				{Offset: 1, Color: color.NRGBA{R: 180, G: 200, B: 220, A: 77}},
			},
			Strength: Linear{Base: 0.35, Slope: 0.65},
		},
	},
}

// Lookup returns the variant for m.
func Lookup(m pipeline.Material) (Variant, error) {
	v, ok := Variants[m]
	if !ok {
		return Variant{}, fmt.Errorf("no compositor for material %q", m)
	}
	return v, nil
}

// Burn is the depth-sharpened stroke strength s^(Gamma+d) for a stroke
// strength s = (255-brightness)/255.
func (v Variant) Burn(s, d float64) float64 {
	if s <= 0 {
		return 0
	}
	return math.Pow(s, v.Gamma+d)
}

// OverlayAlpha returns the overlay opacity in [0,1] for stroke strength s
// at depth d: d * s^(Gamma+d), held at its maximum over [0,d] so it never
// decreases as depth grows. For s < 1 the raw curve peaks at d = -1/ln(s).
func (v Variant) OverlayAlpha(s, d float64) float64 {
	d = pipeline.ClampDepth(d)
	if s <= 0 || d == 0 {
		return 0
	}
	if s < 1 {
		if peak := -1 / math.Log(s); d > peak {
			d = peak
		}
	}
	return d * math.Pow(s, v.Gamma+d)
}

// Ink returns the overlay colour for a burn value.
func (v Variant) Ink(burn float64) [3]float64 {
	var c [3]float64
	for i := range c {
		c[i] = v.InkBase[i] - v.InkSlope[i]*burn
	}
	return c
}

// BorderWidth returns the frame width for a w x h canvas, 0 when the
// variant has no border.
func (v Variant) BorderWidth(w, h int) int {
	if v.Border == nil || v.Border.Divisor <= 0 {
		return 0
	}
	return min(v.Border.MaxWidth, min(w, h)/v.Border.Divisor)
}

func hex(rgb uint32) color.NRGBA {
	return color.NRGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 255}
}
