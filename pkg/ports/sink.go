package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveNormalized saves the working-size source buffer.
	SaveNormalized(img image.Image) error

	// SaveSketch saves the intensity map produced by the tone pipeline.
	SaveSketch(img image.Image) error

	// SaveComposite saves the composited material preview.
	SaveComposite(img image.Image) error

	// SaveTransparent saves the alpha-masked export.
	SaveTransparent(img image.Image) error
}
