// Package raster provides the RGBA pixel buffer shared by all pipeline stages.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Buffer is a row-major RGBA pixel grid with straight (non-premultiplied) alpha.
// Flat slices keep the per-pixel loops cache friendly.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, len = Width*Height*4
}

// New allocates a zeroed (fully transparent) buffer.
// Callers validate dimensions with CheckDimensions first.
func New(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// FromImage copies any image into a new buffer, converting to straight alpha.
// The result always has its origin at (0,0).
func FromImage(img image.Image) *Buffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// Fast path: already NRGBA with a tight stride
	if n, ok := img.(*image.NRGBA); ok && n.Stride == w*4 && n.Rect.Min == (image.Point{}) {
		pix := make([]uint8, w*h*4)
		copy(pix, n.Pix)
		return &Buffer{Width: w, Height: h, Pix: pix}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Buffer{Width: w, Height: h, Pix: dst.Pix}
}

// Image returns an *image.NRGBA view that shares the buffer's memory.
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Offset returns the index of pixel (x, y) in Pix.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) color.NRGBA {
	i := b.Offset(x, y)
	return color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Set writes the pixel at (x, y).
func (b *Buffer) Set(x, y int, c color.NRGBA) {
	i := b.Offset(x, y)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c color.NRGBA) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = c.R
		b.Pix[i+1] = c.G
		b.Pix[i+2] = c.B
		b.Pix[i+3] = c.A
	}
}

// Validate checks the dimension and length invariants.
func (b *Buffer) Validate() error {
	if err := CheckDimensions(b.Width, b.Height); err != nil {
		return err
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return &DimensionError{Width: b.Width, Height: b.Height, PixLen: len(b.Pix)}
	}
	return nil
}

// Flatten composites the buffer over an opaque background in place,
// leaving every pixel fully opaque.
func (b *Buffer) Flatten(bg color.NRGBA) {
	Rows(b.Height, func(y int) {
		row := b.Pix[y*b.Width*4 : (y+1)*b.Width*4]
		for i := 0; i < len(row); i += 4 {
			a := row[i+3]
			if a == 255 {
				continue
			}
			af := float64(a) / 255
			row[i] = Clamp8(float64(row[i])*af + float64(bg.R)*(1-af))
			row[i+1] = Clamp8(float64(row[i+1])*af + float64(bg.G)*(1-af))
			row[i+2] = Clamp8(float64(row[i+2])*af + float64(bg.B)*(1-af))
			row[i+3] = 255
		}
	})
}

// Opaque forces alpha to 255 everywhere.
func (b *Buffer) Opaque() {
	for i := 3; i < len(b.Pix); i += 4 {
		b.Pix[i] = 255
	}
}

// Clamp8 rounds v to the nearest integer and clamps it to [0,255].
func Clamp8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
