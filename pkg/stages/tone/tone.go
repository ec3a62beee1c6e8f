// Package tone implements the tone pipeline that turns a photograph into an
// engraving intensity map (the "sketch"): dark pixels are strong lines.
//
// The steps are exported individually so they can be composed and tested:
// Grayscale, Invert, Blur, ColorDodge, EnhanceContrast. Sketch runs them in
// that order.
package tone

import (
	"context"
	"fmt"
	"math"

	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/ports"
	"github.com/user/laserpreview/pkg/raster"
)

// Stage extracts the intensity map from a normalized buffer.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new tone stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("tone"),
	}
}

// Execute runs the full sketch pipeline. The input buffer is not modified.
func (s *Stage) Execute(ctx context.Context, input pipeline.ToneInput) (pipeline.ToneResult, error) {
	if input.Buffer == nil {
		return pipeline.ToneResult{}, fmt.Errorf("tone: no input buffer")
	}
	if err := input.Buffer.Validate(); err != nil {
		return pipeline.ToneResult{}, err
	}
	if err := input.Params.Contrast.Validate(); err != nil {
		return pipeline.ToneResult{}, fmt.Errorf("tone: %w", err)
	}
	if err := pipeline.Checkpoint(ctx); err != nil {
		return pipeline.ToneResult{}, err
	}

	s.logger.Debug("Extracting sketch %dx%d (blur radius %.0f)",
		input.Buffer.Width, input.Buffer.Height, input.Params.BlurRadius)

	sketch := Sketch(input.Buffer, input.Params)
	return pipeline.ToneResult{Sketch: sketch}, nil
}

// Sketch converts src into an intensity map with the given tuning.
// src is left untouched.
func Sketch(src *raster.Buffer, p pipeline.ToneParams) *raster.Buffer {
	gray := src.Clone()
	Grayscale(gray)

	inverted := gray.Clone()
	Invert(inverted)

	blurred := Blur(inverted, p.BlurRadius)

	out := ColorDodge(gray, blurred)
	EnhanceContrast(out, p.Contrast)
	return out
}

// Grayscale replaces R, G and B with the Rec. 601 luma in place.
// Alpha is left unchanged.
func Grayscale(b *raster.Buffer) {
	raster.Rows(b.Height, func(y int) {
		row := b.Pix[y*b.Width*4 : (y+1)*b.Width*4]
		for i := 0; i < len(row); i += 4 {
			l := raster.Clamp8(0.299*float64(row[i]) + 0.587*float64(row[i+1]) + 0.114*float64(row[i+2]))
			row[i], row[i+1], row[i+2] = l, l, l
		}
	})
}

// Invert replaces every colour channel v with 255-v in place.
// Alpha is left unchanged.
func Invert(b *raster.Buffer) {
	raster.Rows(b.Height, func(y int) {
		row := b.Pix[y*b.Width*4 : (y+1)*b.Width*4]
		for i := 0; i < len(row); i += 4 {
			row[i] = 255 - row[i]
			row[i+1] = 255 - row[i+1]
			row[i+2] = 255 - row[i+2]
		}
	})
}

// Blur returns a blurred copy of b. radius is a stack-blur radius; it is
// mapped to the Gaussian with the same variance.
func Blur(b *raster.Buffer, radius float64) *raster.Buffer {
	return raster.Blur(b, SigmaForRadius(radius))
}

// SigmaForRadius returns the Gaussian sigma matching a stack-blur of radius r.
func SigmaForRadius(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return r / math.Sqrt(6)
}

// ColorDodge returns base dodged by top: min(255, round(base*255/(256-top))).
// The +1 in the divisor keeps it positive for top == 255. The result is opaque.
func ColorDodge(base, top *raster.Buffer) *raster.Buffer {
	out := raster.New(base.Width, base.Height)
	raster.Rows(base.Height, func(y int) {
		start := y * base.Width * 4
		end := start + base.Width*4
		bp, tp, op := base.Pix[start:end], top.Pix[start:end], out.Pix[start:end]
		for i := 0; i < len(op); i += 4 {
			for c := 0; c < 3; c++ {
				op[i+c] = dodge(bp[i+c], tp[i+c])
			}
			op[i+3] = 255
		}
	})
	return out
}

func dodge(b, t uint8) uint8 {
	return raster.Clamp8(float64(b) * 255 / float64(256-int(t)))
}

// EnhanceContrast applies the piecewise-linear curve to the R channel and
// writes the result to R, G and B in place.
func EnhanceContrast(b *raster.Buffer, p pipeline.ContrastParams) {
	var lut [256]uint8
	for v := range lut {
		lut[v] = contrast(float64(v), p)
	}
	raster.Rows(b.Height, func(y int) {
		row := b.Pix[y*b.Width*4 : (y+1)*b.Width*4]
		for i := 0; i < len(row); i += 4 {
			v := lut[row[i]]
			row[i], row[i+1], row[i+2] = v, v, v
		}
	})
}

func contrast(v float64, p pipeline.ContrastParams) uint8 {
	if v < p.Threshold {
		return raster.Clamp8(v * p.DarkGain)
	}
	return raster.Clamp8(math.Min(255, v*p.LightGain))
}
