package ports

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Renderer abstracts image codecs and rasterised drawing.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas filled with bg.
	// A nil bg leaves the canvas fully transparent.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data into an image.Image.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides drawing operations for backgrounds and borders.
type Canvas interface {
	// FillGradient fills the whole canvas with a linear gradient.
	FillGradient(g Gradient)

	// StrokeRectGradient strokes a rectangle outline painted with a linear gradient.
	StrokeRectGradient(x, y, w, h int, lineWidth float64, g Gradient)

	// DrawRectStroke draws a rectangle outline.
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// Gradient is a linear gradient from (X0,Y0) to (X1,Y1) in canvas pixels.
type Gradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []GradientStop
}

// GradientStop is a colour at an offset in [0,1] along the gradient axis.
type GradientStop struct {
	Offset float64
	Color  color.Color
}

// VerticalGradient returns a top-to-bottom two-stop gradient for a canvas of height h.
func VerticalGradient(h int, from, to color.Color) Gradient {
	return Gradient{
		X0: 0, Y0: 0, X1: 0, Y1: float64(h),
		Stops: []GradientStop{{Offset: 0, Color: from}, {Offset: 1, Color: to}},
	}
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	// FormatAuto sniffs the format from the data when decoding.
	FormatAuto ImageFormat = iota
	FormatPNG
	FormatJPEG
	FormatWebP
)

// String returns the lower-case format name.
func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatWebP:
		return "webp"
	default:
		return "auto"
	}
}

// Ext returns the file extension including the dot.
func (f ImageFormat) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatWebP:
		return ".webp"
	default:
		return ".png"
	}
}

// ParseImageFormat parses an output format name.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return FormatAuto, fmt.Errorf("unsupported image format %q", s)
	}
}
