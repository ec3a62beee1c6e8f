package mocks

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"github.com/user/laserpreview/pkg/ports"
)

// FileSystem is an in-memory ports.FileSystem. Writes create their parent
// directories, matching the os-backed implementation.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
	reads []string

	ReadFileFunc  func(path string) ([]byte, error)
	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
	ExistsFunc    func(path string) (bool, error)
}

// NewFileSystem creates an empty FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *FileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads = append(m.reads, name)
	if data, ok := m.files[name]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("read %s: %w", name, fs.ErrNotExist)
}

func (m *FileSystem) WriteFile(name string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(name, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	m.markParents(name)
	return nil
}

func (m *FileSystem) MkdirAll(name string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path.Clean(name)] = true
	m.markParents(name)
	return nil
}

func (m *FileSystem) Exists(name string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.files[name]; ok {
		return true, nil
	}
	return m.dirs[path.Clean(name)], nil
}

func (m *FileSystem) markParents(name string) {
	for dir := path.Dir(name); dir != "." && dir != "/"; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
}

// PutFile seeds a source image or texture before the code under test runs.
func (m *FileSystem) PutFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	m.markParents(name)
}

// GetFile returns the contents of a written file.
func (m *FileSystem) GetFile(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[name]
	return data, ok
}

// Paths returns every stored file path in sorted order.
func (m *FileSystem) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Reads returns the paths passed to ReadFile, in call order.
func (m *FileSystem) Reads() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.reads...)
}

var _ ports.FileSystem = (*FileSystem)(nil)
