package raster

import "fmt"

// DecodeError reports that a source image or texture could not be decoded.
type DecodeError struct {
	Source string // what was being decoded, e.g. a path or "texture wood"
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DimensionError reports a zero or negative size, or a pixel slice whose
// length does not match the size.
type DimensionError struct {
	Width  int
	Height int
	PixLen int // set only for length mismatches
}

func (e *DimensionError) Error() string {
	if e.PixLen > 0 {
		return fmt.Sprintf("invalid buffer: %dx%d with %d bytes", e.Width, e.Height, e.PixLen)
	}
	return fmt.Sprintf("invalid dimensions: %dx%d", e.Width, e.Height)
}

// CheckDimensions returns a *DimensionError unless both sides are positive.
func CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return &DimensionError{Width: width, Height: height}
	}
	return nil
}
