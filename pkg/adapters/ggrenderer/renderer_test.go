package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/user/laserpreview/pkg/ports"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(100, 100, color.White)
	if canvas == nil {
		t.Fatal("expected canvas to be created")
	}

	img := canvas.ToImage()
	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("expected 100x100, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_CreateCanvasTransparent(t *testing.T) {
	canvas := New().CreateCanvas(10, 10, nil)
	_, _, _, a := canvas.ToImage().At(5, 5).RGBA()
	if a != 0 {
		t.Errorf("expected transparent canvas, got alpha %d", a)
	}
}

func TestRenderer_EncodeDecodeJPEG(t *testing.T) {
	r := New()
	img := solidImage(50, 50, color.RGBA{R: 255, A: 255})

	data, err := r.EncodeImage(img, ports.FormatJPEG, 80)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if Sniff(data) != "jpeg" {
		t.Errorf("expected JPEG signature, got %q", Sniff(data))
	}

	decoded, err := r.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("expected 50x50, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_EncodeDecodePNG(t *testing.T) {
	r := New()
	img := solidImage(30, 20, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	data, err := r.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := r.DecodeImage(data, ports.FormatPNG)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	got := color.NRGBAModel.Convert(decoded.At(3, 3)).(color.NRGBA)
	if got != (color.NRGBA{R: 10, G: 20, B: 30, A: 128}) {
		t.Errorf("PNG round trip changed pixel: %+v", got)
	}
}

func TestRenderer_EncodeDecodeWebP(t *testing.T) {
	r := New()
	img := solidImage(16, 16, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	data, err := r.EncodeImage(img, ports.FormatWebP, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if Sniff(data) != "webp" {
		t.Fatalf("expected WebP signature, got %q", Sniff(data))
	}

	decoded, err := r.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	got := color.NRGBAModel.Convert(decoded.At(8, 8)).(color.NRGBA)
	if got != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("lossless WebP round trip changed pixel: %+v", got)
	}
}

func TestRenderer_DecodeOtherFormats(t *testing.T) {
	r := New()
	img := solidImage(8, 6, color.NRGBA{R: 255, A: 255})

	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, img); err != nil {
		t.Fatal(err)
	}
	var gifBuf bytes.Buffer
	if err := gif.Encode(&gifBuf, img, nil); err != nil {
		t.Fatal(err)
	}

	for name, data := range map[string][]byte{"bmp": bmpBuf.Bytes(), "gif": gifBuf.Bytes()} {
		if Sniff(data) != name {
			t.Errorf("Sniff: expected %q, got %q", name, Sniff(data))
		}
		decoded, err := r.DecodeImage(data, ports.FormatAuto)
		if err != nil {
			t.Errorf("decode %s: %v", name, err)
			continue
		}
		if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 6 {
			t.Errorf("decode %s: expected 8x6, got %v", name, decoded.Bounds())
		}
	}
}

func TestRenderer_DecodeGarbage(t *testing.T) {
	if _, err := New().DecodeImage([]byte("definitely not an image"), ports.FormatAuto); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestRenderer_ResizeImage(t *testing.T) {
	r := New()
	img := solidImage(100, 100, color.NRGBA{R: 90, G: 90, B: 90, A: 255})

	resized := r.ResizeImage(img, 50, 25)

	bounds := resized.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 25 {
		t.Errorf("expected 50x25, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	got := color.NRGBAModel.Convert(resized.At(25, 12)).(color.NRGBA)
	if got.R < 88 || got.R > 92 || got.A != 255 {
		t.Errorf("resizing a flat image should keep its colour, got %+v", got)
	}
}

func TestCanvas_FillGradient(t *testing.T) {
	canvas := New().CreateCanvas(10, 100, nil)
	canvas.FillGradient(ports.VerticalGradient(100, color.White, color.Black))

	img := canvas.ToImage()
	top, _, _, ta := img.At(5, 0).RGBA()
	bottom, _, _, ba := img.At(5, 99).RGBA()
	if ta != 0xffff || ba != 0xffff {
		t.Fatalf("gradient fill should be opaque, got alpha %d/%d", ta, ba)
	}
	if top <= bottom {
		t.Errorf("expected lighter top (%d) than bottom (%d)", top, bottom)
	}
}

func TestCanvas_StrokeRectGradient(t *testing.T) {
	canvas := New().CreateCanvas(100, 100, nil)
	g := ports.Gradient{
		X1: 100, Y1: 100,
		Stops: []ports.GradientStop{
			{Offset: 0, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 200}},
			{Offset: 1, Color: color.NRGBA{R: 180, G: 200, B: 220, A: 80}},
		},
	}
	canvas.StrokeRectGradient(5, 5, 90, 90, 10, g)

	img := canvas.ToImage()
	if _, _, _, a := img.At(5, 50).RGBA(); a == 0 {
		t.Error("expected painted pixel on the border")
	}
	if _, _, _, a := img.At(50, 50).RGBA(); a != 0 {
		t.Error("expected interior to stay transparent")
	}
}

func TestCanvas_DrawRectStroke(t *testing.T) {
	canvas := New().CreateCanvas(100, 100, nil)
	canvas.DrawRectStroke(10, 10, 30, 30, color.Black, 2)

	if _, _, _, a := canvas.ToImage().At(10, 20).RGBA(); a == 0 {
		t.Error("expected non-transparent pixel on border")
	}
}
