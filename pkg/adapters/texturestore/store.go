// Package texturestore provides a file-backed, cached ports.TextureSource.
package texturestore

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/user/laserpreview/pkg/ports"
	"github.com/user/laserpreview/pkg/raster"
)

// Store loads textures by name from the paths it was configured with and
// caches the outcome, failures included, for the life of the store.
type Store struct {
	fs       ports.FileSystem
	renderer ports.Renderer
	paths    map[string]string

	mu    sync.RWMutex
	items map[string]*entry
}

type entry struct {
	img image.Image
	err error
}

// New creates a store. paths maps texture names ("wood", "glass", "paper")
// to files; empty paths are ignored.
func New(fs ports.FileSystem, renderer ports.Renderer, paths map[string]string) *Store {
	p := make(map[string]string, len(paths))
	for name, path := range paths {
		if path != "" {
			p[name] = path
		}
	}
	return &Store{
		fs:       fs,
		renderer: renderer,
		paths:    p,
		items:    make(map[string]*entry),
	}
}

// Load returns the decoded texture registered under name.
// Unknown names and missing files yield ports.ErrTextureNotFound; files that
// fail to decode yield a *raster.DecodeError.
func (s *Store) Load(ctx context.Context, name string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, ok := s.paths[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ports.ErrTextureNotFound, name)
	}

	// Fast path: read lock
	s.mu.RLock()
	if e, exists := s.items[path]; exists {
		s.mu.RUnlock()
		return e.img, e.err
	}
	s.mu.RUnlock()

	// Slow path: load from disk
	img, err := s.load(path)

	// Write lock with double-check
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, exists := s.items[path]; exists {
		return e.img, e.err
	}
	s.items[path] = &entry{img: img, err: err}
	return img, err
}

func (s *Store) load(path string) (image.Image, error) {
	exists, err := s.fs.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("stat texture %s: %w", path, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ports.ErrTextureNotFound, path)
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture %s: %w", path, err)
	}

	img, err := s.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return nil, &raster.DecodeError{Source: path, Err: err}
	}
	return img, nil
}

// Names returns the registered texture names.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.paths))
	for name := range s.paths {
		names = append(names, name)
	}
	return names
}

// Ensure Store implements ports.TextureSource
var _ ports.TextureSource = (*Store)(nil)
