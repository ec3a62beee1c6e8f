package normalize

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/laserpreview/pkg/adapters/ggrenderer"
	"github.com/user/laserpreview/pkg/adapters/logger"
	"github.com/user/laserpreview/pkg/mocks"
	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/raster"
)

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func newStage(sink *mocks.DebugSink) *Stage {
	if sink == nil {
		sink = mocks.NewDebugSink(false)
	}
	return NewStage(ggrenderer.New(), sink, logger.NewNoop())
}

func TestStage_NeverUpscales(t *testing.T) {
	resized := false
	renderer := &mocks.Renderer{
		ResizeImageFunc: func(img image.Image, width, height int) image.Image {
			resized = true
			return image.NewNRGBA(image.Rect(0, 0, width, height))
		},
	}
	stage := NewStage(renderer, mocks.NewDebugSink(false), logger.NewNoop())

	for _, d := range []pipeline.Dimension{
		{Width: 1, Height: 1},
		{Width: 37, Height: 5},
		{Width: 800, Height: 1200},
		{Width: 1200, Height: 1200},
		{Width: 1200, Height: 3},
	} {
		src := gradientImage(d.Width, d.Height)

		result, err := stage.Execute(context.Background(), pipeline.NormalizeInput{Source: src})
		require.NoError(t, err)
		require.Equal(t, d.Width, result.Buffer.Width)
		require.Equal(t, d.Height, result.Buffer.Height)
		require.Equal(t, 1.0, result.Scale)
		require.Equal(t, d, result.Natural)
		require.Equal(t, src.Pix, result.Buffer.Pix, "pixels must be copied exactly for %v", d)
	}
	require.False(t, resized, "no resize should happen at or below the limit")
}

func TestStage_DownscalesLongestSide(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2000, 1000))
	for i := range src.Pix {
		src.Pix[i] = 128
	}
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
	}

	result, err := newStage(nil).Execute(context.Background(), pipeline.NormalizeInput{Source: src})
	require.NoError(t, err)
	require.Equal(t, 1200, result.Buffer.Width)
	require.Equal(t, 600, result.Buffer.Height)
	require.InDelta(t, 0.6, result.Scale, 1e-9)

	c := result.Buffer.At(600, 300)
	require.InDelta(t, 128, int(c.R), 1)
	require.Equal(t, uint8(255), c.A)
}

func TestStage_CustomMaxDimension(t *testing.T) {
	result, err := newStage(nil).Execute(context.Background(), pipeline.NormalizeInput{
		Source:       gradientImage(300, 200),
		MaxDimension: 150,
	})
	require.NoError(t, err)
	require.Equal(t, 150, result.Buffer.Width)
	require.Equal(t, 100, result.Buffer.Height)
}

func TestStage_FlattensTransparencyOverWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(0, 0, color.NRGBA{A: 0})
	src.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	src.SetNRGBA(2, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 128})

	result, err := newStage(nil).Execute(context.Background(), pipeline.NormalizeInput{Source: src})
	require.NoError(t, err)

	require.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, result.Buffer.At(0, 0))
	require.Equal(t, color.NRGBA{A: 255}, result.Buffer.At(1, 0))
	require.InDelta(t, 127, int(result.Buffer.At(2, 0).R), 1)
	for i := 3; i < len(result.Buffer.Pix); i += 4 {
		require.Equal(t, uint8(255), result.Buffer.Pix[i])
	}
}

func TestStage_DegenerateSizes(t *testing.T) {
	stage := newStage(nil)

	// A 3000x1 strip would round its short side to zero
	_, err := stage.Execute(context.Background(), pipeline.NormalizeInput{Source: gradientImage(3000, 1)})
	var de *raster.DimensionError
	require.True(t, errors.As(err, &de), "got %v", err)

	_, err = stage.Execute(context.Background(), pipeline.NormalizeInput{Source: image.NewNRGBA(image.Rect(0, 0, 0, 10))})
	require.True(t, errors.As(err, &de), "got %v", err)

	_, err = stage.Execute(context.Background(), pipeline.NormalizeInput{})
	require.Error(t, err)
}

func TestStage_SavesDebugOutput(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	_, err := newStage(sink).Execute(context.Background(), pipeline.NormalizeInput{Source: gradientImage(10, 10)})
	require.NoError(t, err)
	require.Equal(t, []string{"normalized"}, sink.Saved())
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w0, h0, max int
		w, h        int
	}{
		{2000, 1000, 1200, 1200, 600},
		{1000, 2000, 1200, 600, 1200},
		{1201, 1201, 1200, 1200, 1200},
		{4032, 3024, 0, 1200, 900},
		{1199, 10, 1200, 1199, 10},
		{2400, 1001, 1200, 1200, 501},
	}
	for _, tt := range tests {
		w, h, _, err := FitSize(tt.w0, tt.h0, tt.max)
		require.NoError(t, err)
		require.Equal(t, tt.w, w, "%dx%d", tt.w0, tt.h0)
		require.Equal(t, tt.h, h, "%dx%d", tt.w0, tt.h0)
	}
}
