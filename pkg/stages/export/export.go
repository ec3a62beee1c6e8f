// Package export derives the downloadable variants of a composited preview.
package export

import (
	"context"
	"fmt"

	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/ports"
	"github.com/user/laserpreview/pkg/raster"
)

// Stage produces the opaque and, on request, transparent exports.
type Stage struct {
	sink   ports.DebugSink
	logger ports.Logger
}

// NewStage creates a new export stage.
func NewStage(sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		sink:   sink,
		logger: logger.WithComponent("export"),
	}
}

// Execute clones the composite and optionally extracts the engraved pixels.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExportInput) (pipeline.ExportResult, error) {
	if input.Image == nil {
		return pipeline.ExportResult{}, fmt.Errorf("export: no image")
	}
	if err := input.Image.Validate(); err != nil {
		return pipeline.ExportResult{}, err
	}
	if err := pipeline.Checkpoint(ctx); err != nil {
		return pipeline.ExportResult{}, err
	}

	result := pipeline.ExportResult{Opaque: input.Image.Clone()}
	if !input.Transparent {
		return result, nil
	}

	result.Transparent = Transparent(input.Image, input.Params)
	s.logger.Debug("Transparent export keeps %d of %d pixels",
		CountOpaque(result.Transparent), input.Image.Width*input.Image.Height)

	if s.sink.Enabled() {
		if err := s.sink.SaveTransparent(result.Transparent.Image()); err != nil {
			s.logger.Warn("Failed to save debug output: %v", err)
		}
	}
	return result, nil
}

// Transparent returns a copy of b that keeps only engraved pixels: those
// darker than p.BrightnessThreshold on average and more opaque than
// p.AlphaThreshold. Every other pixel becomes (0,0,0,0). Applying it to its
// own output changes nothing.
func Transparent(b *raster.Buffer, p pipeline.ExportParams) *raster.Buffer {
	out := b.Clone()
	raster.Rows(out.Height, func(y int) {
		row := out.Pix[y*out.Width*4 : (y+1)*out.Width*4]
		for i := 0; i < len(row); i += 4 {
			if Engraved(row[i], row[i+1], row[i+2], row[i+3], p) {
				continue
			}
			row[i], row[i+1], row[i+2], row[i+3] = 0, 0, 0, 0
		}
	})
	return out
}

// Engraved reports whether a pixel counts as marked material.
func Engraved(r, g, b, a uint8, p pipeline.ExportParams) bool {
	brightness := (float64(r) + float64(g) + float64(b)) / 3
	return brightness < p.BrightnessThreshold && a > p.AlphaThreshold
}

// CountOpaque returns the number of pixels with non-zero alpha.
func CountOpaque(b *raster.Buffer) int {
	n := 0
	for i := 3; i < len(b.Pix); i += 4 {
		if b.Pix[i] != 0 {
			n++
		}
	}
	return n
}
