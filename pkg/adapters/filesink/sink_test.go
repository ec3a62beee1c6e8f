package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/laserpreview/pkg/mocks"
	"github.com/user/laserpreview/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func pngRenderer() *mocks.Renderer {
	return &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			if format != ports.FormatPNG {
				return nil, errors.New("debug output must be PNG")
			}
			return []byte{0x89, 0x50, 0x4E, 0x47}, nil // PNG header
		},
	}
}

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})
	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SavesEachStage(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, pngRenderer())
	img := image.NewNRGBA(image.Rect(0, 0, 12, 8))

	steps := []struct {
		name string
		save func(image.Image) error
	}{
		{"01-normalized.png", sink.SaveNormalized},
		{"02-sketch.png", sink.SaveSketch},
		{"03-composite.png", sink.SaveComposite},
		{"04-transparent.png", sink.SaveTransparent},
	}

	for _, step := range steps {
		if err := step.save(img); err != nil {
			t.Fatalf("save %s failed: %v", step.name, err)
		}
		expectedPath := filepath.Join(testBaseDir, step.name)
		if _, ok := fs.GetFile(expectedPath); !ok {
			t.Errorf("expected file to be saved at %s", expectedPath)
		}
	}

	if got := fs.Paths(); len(got) != len(steps) {
		t.Errorf("expected %d files, got %v", len(steps), got)
	}
}

func TestSink_EncodeError(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, errors.New("encoder exploded")
		},
	}
	sink := New(testBaseDir, fs, renderer)

	if err := sink.SaveSketch(image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Fatal("expected error")
	}
	if len(fs.Paths()) != 0 {
		t.Error("nothing should be written on encode failure")
	}
}
