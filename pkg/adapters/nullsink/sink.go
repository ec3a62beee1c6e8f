// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/laserpreview/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveNormalized does nothing.
func (s *Sink) SaveNormalized(img image.Image) error {
	return nil
}

// SaveSketch does nothing.
func (s *Sink) SaveSketch(img image.Image) error {
	return nil
}

// SaveComposite does nothing.
func (s *Sink) SaveComposite(img image.Image) error {
	return nil
}

// SaveTransparent does nothing.
func (s *Sink) SaveTransparent(img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
