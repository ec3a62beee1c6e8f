// Package material implements the material compositor: it renders an
// intensity map as an engraving on wood or glass.
//
// Both materials run the same algorithm, driven by the Variants table:
//
//  1. procedural gradient background
//  2. stretched texture at the variant's opacity, when one is available
//  3. the engraving overlay (ink colour, depth-shaped alpha) in the main pass
//  4. a blurred halo copy of the overlay, beneath or above the main pass
//  5. an optional reflective border
package material

import (
	"context"
	"fmt"
	"image/color"

	"github.com/user/laserpreview/pkg/blend"
	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/ports"
	"github.com/user/laserpreview/pkg/raster"
)

// Stage composites intensity maps onto materials.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new material stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("material"),
	}
}

// Execute renders input.Sketch on input.Material at input.Depth.
func (s *Stage) Execute(ctx context.Context, input pipeline.CompositeInput) (pipeline.CompositeResult, error) {
	if err := pipeline.Checkpoint(ctx); err != nil {
		return pipeline.CompositeResult{}, err
	}

	if input.Texture == nil {
		s.logger.Debug("No %s texture, using procedural background", input.Material)
	}
	s.logger.Debug("Compositing %s at depth %.2f", input.Material, pipeline.ClampDepth(input.Depth))

	result, err := Render(s.renderer, input)
	if err != nil {
		return pipeline.CompositeResult{}, err
	}

	if s.sink.Enabled() {
		if err := s.sink.SaveComposite(result.Image.Image()); err != nil {
			s.logger.Warn("Failed to save debug output: %v", err)
		}
	}
	return result, nil
}

// Render composites the sketch. It never modifies input.Sketch or
// input.Texture, and the returned image is fully opaque.
func Render(renderer ports.Renderer, input pipeline.CompositeInput) (pipeline.CompositeResult, error) {
	v, err := Lookup(input.Material)
	if err != nil {
		return pipeline.CompositeResult{}, err
	}
	if input.Sketch == nil {
		return pipeline.CompositeResult{}, fmt.Errorf("material: no sketch")
	}
	if err := input.Sketch.Validate(); err != nil {
		return pipeline.CompositeResult{}, err
	}

	w, h := input.Sketch.Width, input.Sketch.Height
	depth := pipeline.ClampDepth(input.Depth)
	if input.Background != nil {
		v.Background = *input.Background
	}

	out := Background(renderer, v, w, h)

	applied := false
	if input.Texture != nil && v.TextureOpacity > 0 {
		tex := raster.FromImage(renderer.ResizeImage(input.Texture, w, h))
		if err := blend.Layer(out, tex, blend.Normal, v.TextureOpacity); err != nil {
			return pipeline.CompositeResult{}, err
		}
		applied = true
	}

	overlay := Overlay(input.Sketch, v, depth)
	halo := HaloLayer(overlay, v, depth)

	mainPass := func() error {
		return blend.Layer(out, overlay, v.Main.Mode, v.Main.Opacity.At(depth))
	}
	haloPass := func() error {
		return blend.Layer(out, halo, v.Halo.Mode, v.Halo.Opacity.At(depth))
	}
	passes := []func() error{mainPass, haloPass}
	if v.Halo.Beneath {
		passes = []func() error{haloPass, mainPass}
	}
	for _, pass := range passes {
		if err := pass(); err != nil {
			return pipeline.CompositeResult{}, err
		}
	}

	if bw := v.BorderWidth(w, h); bw > 0 {
		border := BorderLayer(renderer, v, w, h, depth)
		if err := blend.Layer(out, border, blend.Normal, 1); err != nil {
			return pipeline.CompositeResult{}, err
		}
	}

	out.Opaque()
	return pipeline.CompositeResult{Image: out, TextureApplied: applied}, nil
}

// Background rasterises the variant's gradient at w x h.
func Background(renderer ports.Renderer, v Variant, w, h int) *raster.Buffer {
	canvas := renderer.CreateCanvas(w, h, v.Background[1])
	canvas.FillGradient(ports.VerticalGradient(h, v.Background[0], v.Background[1]))
	return raster.FromImage(canvas.ToImage())
}

// Overlay builds the engraving layer: every pixel carries the ink colour
// for its burn and the depth-shaped overlay alpha.
func Overlay(sketch *raster.Buffer, v Variant, depth float64) *raster.Buffer {
	// The overlay depends only on brightness, so tabulate all 256 levels.
	var lut [256][4]uint8
	for b := range lut {
		s := float64(255-b) / 255
		ink := v.Ink(v.Burn(s, depth))
		lut[b] = [4]uint8{
			raster.Clamp8(ink[0]),
			raster.Clamp8(ink[1]),
			raster.Clamp8(ink[2]),
			raster.Clamp8(255 * v.OverlayAlpha(s, depth)),
		}
	}

	out := raster.New(sketch.Width, sketch.Height)
	raster.Rows(sketch.Height, func(y int) {
		start := y * sketch.Width * 4
		src := sketch.Pix[start : start+sketch.Width*4]
		dst := out.Pix[start : start+sketch.Width*4]
		for i := 0; i < len(src); i += 4 {
			copy(dst[i:i+4], lut[src[i]][:])
		}
	})
	return out
}

// HaloLayer blurs and offsets the overlay for the halo pass.
func HaloLayer(overlay *raster.Buffer, v Variant, depth float64) *raster.Buffer {
	return raster.Shift(raster.Blur(overlay, v.Halo.Sigma.At(depth)), v.Halo.DX, v.Halo.DY)
}

// BorderLayer strokes the variant's reflective frame on a transparent layer.
func BorderLayer(renderer ports.Renderer, v Variant, w, h int, depth float64) *raster.Buffer {
	bw := v.BorderWidth(w, h)
	strength := min(1, max(0, v.Border.Strength.At(depth)))

	stops := make([]ports.GradientStop, len(v.Border.Stops))
	for i, s := range v.Border.Stops {
		c := color.NRGBAModel.Convert(s.Color).(color.NRGBA)
		c.A = raster.Clamp8(float64(c.A) * strength)
		stops[i] = ports.GradientStop{Offset: s.Offset, Color: c}
	}

	canvas := renderer.CreateCanvas(w, h, nil)
	canvas.StrokeRectGradient(bw/2, bw/2, w-bw, h-bw, float64(bw), ports.Gradient{
		X0: 0, Y0: 0, X1: float64(w), Y1: float64(h),
		Stops: stops,
	})
	return raster.FromImage(canvas.ToImage())
}
