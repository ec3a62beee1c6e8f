package ports

import (
	"context"
	"errors"
	"image"
)

// ErrTextureNotFound is returned when no texture is registered under a name.
var ErrTextureNotFound = errors.New("texture not found")

// TextureSource resolves named material textures ("wood", "glass", "paper").
type TextureSource interface {
	// Load returns the decoded texture for name.
	Load(ctx context.Context, name string) (image.Image, error)
}
