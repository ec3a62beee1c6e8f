package raster

import (
	"runtime"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// Rows calls fn for every row index in [0, height), splitting the rows into
// contiguous bands processed concurrently. fn must only write to its own row.
func Rows(height int, fn func(y int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return
	}

	band := (height + workers - 1) / workers
	var g errgroup.Group
	for y0 := 0; y0 < height; y0 += band {
		y1 := min(y0+band, height)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				fn(y)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Blur returns a Gaussian-blurred copy of b. The source is never written.
func Blur(b *Buffer, sigma float64) *Buffer {
	if sigma <= 0 {
		return b.Clone()
	}
	return FromImage(imaging.Blur(b.Image(), sigma))
}

// Shift returns a copy of b translated by (dx, dy). Uncovered pixels are
// fully transparent.
func Shift(b *Buffer, dx, dy int) *Buffer {
	if dx == 0 && dy == 0 {
		return b.Clone()
	}
	out := New(b.Width, b.Height)
	Rows(b.Height, func(y int) {
		sy := y - dy
		if sy < 0 || sy >= b.Height {
			return
		}
		for x := 0; x < b.Width; x++ {
			sx := x - dx
			if sx < 0 || sx >= b.Width {
				continue
			}
			copy(out.Pix[out.Offset(x, y):out.Offset(x, y)+4], b.Pix[b.Offset(sx, sy):b.Offset(sx, sy)+4])
		}
	})
	return out
}
