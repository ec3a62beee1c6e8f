// Package paper renders an intensity map as a pencil sketch on paper.
package paper

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/user/laserpreview/pkg/blend"
	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/ports"
	"github.com/user/laserpreview/pkg/raster"
)

// Paper look.
var (
	PaperTop    = color.NRGBA{R: 0xfb, G: 0xfa, B: 0xf7, A: 255}
	PaperBottom = color.NRGBA{R: 0xf3, G: 0xf1, B: 0xec, A: 255}
	BorderColor = color.NRGBA{R: 60, G: 60, B: 60, A: 64}
)

const (
	// BorderRatio is the frame width relative to the shorter side.
	BorderRatio = 0.012
	// MinBorderWidth is the thinnest frame drawn.
	MinBorderWidth = 2.0
	// TextureOpacity is the strength of the multiplied paper grain.
	TextureOpacity = 0.25
)

// Stage frames sketches on paper.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new paper stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("paper"),
	}
}

// Execute multiplies the sketch over a paper gradient, frames it and, when
// a texture is given, adds paper grain.
func (s *Stage) Execute(ctx context.Context, input pipeline.PaperInput) (pipeline.PaperResult, error) {
	if input.Sketch == nil {
		return pipeline.PaperResult{}, fmt.Errorf("paper: no sketch")
	}
	if err := input.Sketch.Validate(); err != nil {
		return pipeline.PaperResult{}, err
	}
	if err := pipeline.Checkpoint(ctx); err != nil {
		return pipeline.PaperResult{}, err
	}

	w, h := input.Sketch.Width, input.Sketch.Height

	canvas := s.renderer.CreateCanvas(w, h, PaperBottom)
	canvas.FillGradient(ports.VerticalGradient(h, PaperTop, PaperBottom))
	out := raster.FromImage(canvas.ToImage())

	if err := blend.Layer(out, input.Sketch, blend.Multiply, 1); err != nil {
		return pipeline.PaperResult{}, err
	}

	lw := BorderWidth(w, h)
	inset := int(math.Round(lw / 2))
	frame := s.renderer.CreateCanvas(w, h, nil)
	frame.DrawRectStroke(inset, inset, w-2*inset, h-2*inset, BorderColor, lw)
	if err := blend.Layer(out, raster.FromImage(frame.ToImage()), blend.Normal, 1); err != nil {
		return pipeline.PaperResult{}, err
	}

	if input.Texture != nil {
		grain := raster.FromImage(s.renderer.ResizeImage(input.Texture, w, h))
		if err := blend.Layer(out, grain, blend.Multiply, TextureOpacity); err != nil {
			return pipeline.PaperResult{}, err
		}
	} else {
		s.logger.Debug("No paper texture, skipping grain")
	}

	out.Opaque()
	s.logger.Debug("Sketch framed on paper %dx%d (border %.1fpx)", w, h, lw)

	if s.sink.Enabled() {
		if err := s.sink.SaveComposite(out.Image()); err != nil {
			s.logger.Warn("Failed to save debug output: %v", err)
		}
	}
	return pipeline.PaperResult{Image: out}, nil
}

// BorderWidth returns the frame width for a w x h sheet.
func BorderWidth(w, h int) float64 {
	return math.Max(MinBorderWidth, float64(min(w, h))*BorderRatio)
}
