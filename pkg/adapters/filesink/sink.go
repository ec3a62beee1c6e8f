// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/laserpreview/pkg/ports"
)

// Sink saves intermediate buffers as PNG files under a base directory.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveNormalized saves the working-size source as 01-normalized.png.
func (s *Sink) SaveNormalized(img image.Image) error {
	return s.savePNG("01-normalized.png", img)
}

// SaveSketch saves the intensity map as 02-sketch.png.
func (s *Sink) SaveSketch(img image.Image) error {
	return s.savePNG("02-sketch.png", img)
}

// SaveComposite saves the material preview as 03-composite.png.
func (s *Sink) SaveComposite(img image.Image) error {
	return s.savePNG("03-composite.png", img)
}

// SaveTransparent saves the alpha-masked export as 04-transparent.png.
func (s *Sink) SaveTransparent(img image.Image) error {
	return s.savePNG("04-transparent.png", img)
}

func (s *Sink) savePNG(name string, img image.Image) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
