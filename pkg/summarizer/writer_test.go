package summarizer

import (
	"errors"
	"testing"

	"github.com/user/laserpreview/pkg/mocks"
)

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "# summary" }), fs)

	if err := w.Write("reports/run.md", NewSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := fs.GetFile("reports/run.md")
	if !ok || string(data) != "# summary" {
		t.Errorf("unexpected file content %q", data)
	}
	if exists, _ := fs.Exists("reports"); !exists {
		t.Error("expected parent directory to be created")
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error { return errors.New("read-only") }
	w := NewWriter(NewMarkdownFormatter(), fs)

	if err := w.Write("run.md", NewSummary()); err == nil {
		t.Error("expected write error")
	}
}
