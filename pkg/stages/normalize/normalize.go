// Package normalize implements the raster normalizer: it fits a decoded
// source image inside the working canvas without ever upscaling it.
package normalize

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/ports"
	"github.com/user/laserpreview/pkg/raster"
)

// Stage converts decoded sources into working-size opaque buffers.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new normalize stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("normalize"),
	}
}

// Execute fits the source inside MaxDimension and flattens it over white.
func (s *Stage) Execute(ctx context.Context, input pipeline.NormalizeInput) (pipeline.NormalizeResult, error) {
	if input.Source == nil {
		return pipeline.NormalizeResult{}, fmt.Errorf("normalize: no source image")
	}
	if err := pipeline.Checkpoint(ctx); err != nil {
		return pipeline.NormalizeResult{}, err
	}

	b := input.Source.Bounds()
	natural := pipeline.Dimension{Width: b.Dx(), Height: b.Dy()}
	w, h, scale, err := FitSize(natural.Width, natural.Height, input.MaxDimension)
	if err != nil {
		return pipeline.NormalizeResult{}, err
	}

	buf := s.resample(input.Source, w, h, scale)
	buf.Flatten(color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	s.logger.Debug("Normalized %dx%d to %dx%d (scale %.3f)", natural.Width, natural.Height, w, h, scale)

	if s.sink.Enabled() {
		if err := s.sink.SaveNormalized(buf.Image()); err != nil {
			s.logger.Warn("Failed to save debug output: %v", err)
		}
	}

	return pipeline.NormalizeResult{
		Buffer:  buf,
		Natural: natural,
		Scale:   scale,
	}, nil
}

// resample copies src exactly when no scaling is needed and otherwise
// resizes it through the renderer.
func (s *Stage) resample(src image.Image, w, h int, scale float64) *raster.Buffer {
	if scale == 1 {
		return raster.FromImage(src)
	}
	return raster.FromImage(s.renderer.ResizeImage(src, w, h))
}

// FitSize computes the working size for a w0 x h0 source:
// scale = min(1, maxDim/max(w0,h0)), each side rounded to the nearest pixel.
// maxDim <= 0 selects pipeline.DefaultMaxDimension.
func FitSize(w0, h0, maxDim int) (w, h int, scale float64, err error) {
	if err := raster.CheckDimensions(w0, h0); err != nil {
		return 0, 0, 0, err
	}
	if maxDim <= 0 {
		maxDim = pipeline.DefaultMaxDimension
	}

	scale = math.Min(1, float64(maxDim)/float64(max(w0, h0)))
	if scale == 1 {
		return w0, h0, 1, nil
	}

	w = int(math.Round(float64(w0) * scale))
	h = int(math.Round(float64(h0) * scale))
	if err := raster.CheckDimensions(w, h); err != nil {
		return 0, 0, 0, err
	}
	return w, h, scale, nil
}
