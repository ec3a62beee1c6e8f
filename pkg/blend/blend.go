// Package blend composites straight-alpha layers onto one another.
//
// Every mode uses the separable compositing formula of the W3C Compositing
// and Blending Level 1 recommendation:
//
//	Co = Sa*(1-Da)*Cs + Sa*Da*B(Cb, Cs) + (1-Sa)*Da*Cb
//	Ao = Sa + Da*(1-Sa)
//
// where Sa already includes the layer opacity.
package blend

import (
	"fmt"

	"github.com/user/laserpreview/pkg/raster"
)

// Mode selects the per-channel blend function B(Cb, Cs).
type Mode int

const (
	// Normal paints the source over the backdrop (source-over).
	Normal Mode = iota
	// Multiply darkens: B = Cb * Cs. Never lightens the backdrop.
	Multiply
	// Screen lightens: B = Cb + Cs - Cb*Cs. Never darkens the backdrop.
	Screen
)

// String returns the canvas-style name of the mode.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "source-over"
	case Multiply:
		return "multiply"
	case Screen:
		return "screen"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) channel(cb, cs float64) float64 {
	switch m {
	case Multiply:
		return cb * cs
	case Screen:
		return cb + cs - cb*cs
	default:
		return cs
	}
}

// Layer composites src onto dst in place with the given mode and opacity.
// Opacity is clamped to [0,1]. Both buffers must have the same size; a
// mismatched layer is ignored and reported.
func Layer(dst, src *raster.Buffer, mode Mode, opacity float64) error {
	if dst.Width != src.Width || dst.Height != src.Height {
		return fmt.Errorf("blend %s: layer %dx%d does not match %dx%d",
			mode, src.Width, src.Height, dst.Width, dst.Height)
	}
	if opacity <= 0 {
		return nil
	}
	if opacity > 1 {
		opacity = 1
	}

	raster.Rows(dst.Height, func(y int) {
		start := y * dst.Width * 4
		d := dst.Pix[start : start+dst.Width*4]
		s := src.Pix[start : start+dst.Width*4]
		for i := 0; i < len(d); i += 4 {
			sa := float64(s[i+3]) / 255 * opacity
			if sa == 0 {
				continue
			}
			da := float64(d[i+3]) / 255
			ao := sa + da*(1-sa)
			for c := 0; c < 3; c++ {
				cs := float64(s[i+c]) / 255
				cb := float64(d[i+c]) / 255
				co := sa*(1-da)*cs + sa*da*mode.channel(cb, cs) + (1-sa)*da*cb
				d[i+c] = raster.Clamp8(co / ao * 255)
			}
			d[i+3] = raster.Clamp8(ao * 255)
		}
	})
	return nil
}
