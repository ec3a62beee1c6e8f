package mocks

import (
	"context"
	"image"
	"sync"

	"github.com/user/laserpreview/pkg/ports"
)

// TextureSource is a mock implementation of ports.TextureSource.
type TextureSource struct {
	mu       sync.Mutex
	textures map[string]image.Image
	calls    map[string]int

	LoadFunc func(ctx context.Context, name string) (image.Image, error)
}

// NewTextureSource creates a texture source serving the given images.
func NewTextureSource(textures map[string]image.Image) *TextureSource {
	if textures == nil {
		textures = map[string]image.Image{}
	}
	return &TextureSource{textures: textures, calls: map[string]int{}}
}

func (m *TextureSource) Load(ctx context.Context, name string) (image.Image, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
	img, ok := m.textures[name]
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, name)
	}
	if !ok {
		return nil, ports.ErrTextureNotFound
	}
	return img, nil
}

// Calls returns how many times name was requested.
func (m *TextureSource) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

var _ ports.TextureSource = (*TextureSource)(nil)
