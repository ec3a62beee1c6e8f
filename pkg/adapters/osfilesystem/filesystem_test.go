package osfilesystem

import (
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "preview.png")
	testData := []byte("not really a png")

	if err := fs.WriteFile(testPath, testData); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "out", "wood", "preview.png")
	if err := fs.WriteFile(testPath, []byte("test")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestFileSystem_MkdirAll(t *testing.T) {
	fs := New()
	testPath := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := fs.MkdirAll(testPath); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected directory to exist")
	}
}

func TestFileSystem_ExistsMissing(t *testing.T) {
	fs := New()

	exists, err := fs.Exists(filepath.Join(t.TempDir(), "nonexistent.txt"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected file to not exist")
	}
}

func TestFileSystem_Rooted(t *testing.T) {
	root := t.TempDir()
	fs := NewRooted(root)

	if err := fs.WriteFile(filepath.Join("textures", "wood.jpg"), []byte("grain")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// The same file is visible through an unrooted filesystem at its absolute path
	data, err := New().ReadFile(filepath.Join(root, "textures", "wood.jpg"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "grain" {
		t.Errorf("expected %q, got %q", "grain", data)
	}

	// Absolute paths bypass the root
	abs := filepath.Join(t.TempDir(), "abs.txt")
	if err := fs.WriteFile(abs, []byte("x")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if ok, _ := New().Exists(abs); !ok {
		t.Error("expected absolute path to be written as-is")
	}
}
