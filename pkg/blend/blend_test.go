package blend

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/laserpreview/pkg/raster"
)

func solid(c color.NRGBA) *raster.Buffer {
	b := raster.New(4, 4)
	b.Fill(c)
	return b
}

func TestLayer_NormalOpaqueReplaces(t *testing.T) {
	dst := solid(color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src := solid(color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	require.NoError(t, Layer(dst, src, Normal, 1))
	require.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, dst.At(1, 1))
}

func TestLayer_NormalHalfOpacity(t *testing.T) {
	dst := solid(color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	src := solid(color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	require.NoError(t, Layer(dst, src, Normal, 0.5))
	c := dst.At(0, 0)
	require.InDelta(t, 128, int(c.R), 1)
	require.Equal(t, uint8(255), c.A)
}

func TestLayer_MultiplyNeverLightens(t *testing.T) {
	for _, v := range []uint8{0, 40, 128, 250, 255} {
		dst := solid(color.NRGBA{R: 180, G: 120, B: 60, A: 255})
		src := solid(color.NRGBA{R: v, G: v, B: v, A: 200})

		require.NoError(t, Layer(dst, src, Multiply, 1))
		c := dst.At(2, 2)
		require.LessOrEqual(t, c.R, uint8(180))
		require.LessOrEqual(t, c.G, uint8(120))
		require.LessOrEqual(t, c.B, uint8(60))
	}
}

func TestLayer_MultiplyWhiteIsIdentity(t *testing.T) {
	dst := solid(color.NRGBA{R: 180, G: 120, B: 60, A: 255})
	src := solid(color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	require.NoError(t, Layer(dst, src, Multiply, 1))
	require.Equal(t, color.NRGBA{R: 180, G: 120, B: 60, A: 255}, dst.At(0, 0))
}

func TestLayer_ScreenNeverDarkens(t *testing.T) {
	for _, v := range []uint8{0, 40, 128, 255} {
		dst := solid(color.NRGBA{R: 180, G: 120, B: 60, A: 255})
		src := solid(color.NRGBA{R: v, G: v, B: v, A: 255})

		require.NoError(t, Layer(dst, src, Screen, 0.7))
		c := dst.At(3, 3)
		require.GreaterOrEqual(t, c.R, uint8(180))
		require.GreaterOrEqual(t, c.G, uint8(120))
		require.GreaterOrEqual(t, c.B, uint8(60))
	}
}

func TestLayer_TransparentSourceIsNoop(t *testing.T) {
	dst := solid(color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	before := dst.Clone()
	src := solid(color.NRGBA{R: 0, G: 0, B: 0, A: 0})

	require.NoError(t, Layer(dst, src, Multiply, 1))
	require.NoError(t, Layer(dst, solid(color.NRGBA{A: 255}), Normal, 0))
	require.Equal(t, before.Pix, dst.Pix)
}

func TestLayer_OntoTransparentBackdrop(t *testing.T) {
	dst := solid(color.NRGBA{})
	src := solid(color.NRGBA{R: 90, G: 80, B: 70, A: 255})

	require.NoError(t, Layer(dst, src, Multiply, 1))
	// With no backdrop the source shows through unchanged
	require.Equal(t, color.NRGBA{R: 90, G: 80, B: 70, A: 255}, dst.At(0, 0))
}

func TestLayer_SizeMismatch(t *testing.T) {
	require.Error(t, Layer(raster.New(2, 2), raster.New(3, 2), Normal, 1))
}

func TestMode_String(t *testing.T) {
	require.Equal(t, "multiply", Multiply.String())
	require.Equal(t, "screen", Screen.String())
	require.Equal(t, "source-over", Normal.String())
}
