package mocks

import (
	"image"
	"sync"

	"github.com/user/laserpreview/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Normalized  image.Image
	Sketch      image.Image
	Composite   image.Image
	Transparent image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveNormalized(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Normalized = img
	return nil
}

func (m *DebugSink) SaveSketch(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sketch = img
	return nil
}

func (m *DebugSink) SaveComposite(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Composite = img
	return nil
}

func (m *DebugSink) SaveTransparent(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transparent = img
	return nil
}

// Saved reports which debug images were captured, in pipeline order.
func (m *DebugSink) Saved() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var names []string
	if m.Normalized != nil {
		names = append(names, "normalized")
	}
	if m.Sketch != nil {
		names = append(names, "sketch")
	}
	if m.Composite != nil {
		names = append(names, "composite")
	}
	if m.Transparent != nil {
		names = append(names, "transparent")
	}
	return names
}

var _ ports.DebugSink = (*DebugSink)(nil)
