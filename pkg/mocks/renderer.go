package mocks

import (
	"image"
	"image/color"
	"sync"

	"github.com/user/laserpreview/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return NewCanvas(width, height)
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewNRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that records the calls
// made to it. ToImage returns a transparent image of the canvas size.
type Canvas struct {
	mu     sync.Mutex
	width  int
	height int

	Gradients       []ports.Gradient
	GradientStrokes []float64 // line widths
	Strokes         int
}

// NewCanvas creates a recording canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

func (m *Canvas) FillGradient(g ports.Gradient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gradients = append(m.Gradients, g)
}

func (m *Canvas) StrokeRectGradient(x, y, w, h int, lineWidth float64, g ports.Gradient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gradients = append(m.Gradients, g)
	m.GradientStrokes = append(m.GradientStrokes, lineWidth)
}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Strokes++
}

func (m *Canvas) ToImage() image.Image {
	return image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
}

var _ ports.Canvas = (*Canvas)(nil)
