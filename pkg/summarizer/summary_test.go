package summarizer

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/user/laserpreview/pkg/raster"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder(t *testing.T) {
	summary := NewBuilder().
		WithSource(SourceInfo{Path: "photo.jpg", Bytes: 2048, NaturalWidth: 2000, NaturalHeight: 1000, Width: 1200, Height: 600, Scale: 0.6}).
		WithSettings(Settings{Mode: "engrave", Material: "wood", DepthPercent: 70}).
		WithTiming(TimingInfo{ToneMs: 12, TotalMs: 40}).
		WithOutput(OutputInfo{Path: "a.png", Format: "png", Bytes: 10}).
		WithOutput(OutputInfo{Path: "b.png", Format: "png", Bytes: 5, Transparent: true}).
		Build()

	if summary.Source.Width != 1200 || summary.Source.NaturalWidth != 2000 {
		t.Errorf("unexpected source %+v", summary.Source)
	}
	if summary.Settings.Material != "wood" {
		t.Errorf("expected material wood, got %q", summary.Settings.Material)
	}
	if summary.Timing.ToneMs != 12 {
		t.Errorf("expected ToneMs 12, got %d", summary.Timing.ToneMs)
	}
	if len(summary.Outputs) != 2 || !summary.Outputs[1].Transparent {
		t.Errorf("unexpected outputs %+v", summary.Outputs)
	}
}

func TestCoverage(t *testing.T) {
	// Half white, half black.
	b := raster.New(4, 2)
	b.Fill(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	for x := 0; x < 4; x++ {
		b.Set(x, 1, color.NRGBA{A: 255})
	}

	c := Coverage(b, 200)
	if c.Pixels != 8 {
		t.Errorf("expected 8 pixels, got %d", c.Pixels)
	}
	if math.Abs(c.MeanStroke-0.5) > 1e-12 {
		t.Errorf("expected mean 0.5, got %v", c.MeanStroke)
	}
	if math.Abs(c.StdDevStroke-0.5) > 1e-12 {
		t.Errorf("expected population stddev 0.5, got %v", c.StdDevStroke)
	}
	if c.EngravedRatio != 0.5 {
		t.Errorf("expected engraved ratio 0.5, got %v", c.EngravedRatio)
	}
}

func TestCoverage_Blank(t *testing.T) {
	b := raster.New(3, 3)
	b.Fill(color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	c := NewBuilder().WithIntensity(b, 200).Build().Coverage
	if c.MeanStroke != 0 || c.StdDevStroke != 0 || c.EngravedRatio != 0 {
		t.Errorf("blank sketch should have no coverage, got %+v", c)
	}

	if got := Coverage(nil, 200); got != (CoverageInfo{}) {
		t.Errorf("nil sketch should give zero coverage, got %+v", got)
	}
}
