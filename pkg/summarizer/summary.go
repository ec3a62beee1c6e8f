// Package summarizer provides summary generation for preview renders.
package summarizer

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/user/laserpreview/pkg/raster"
)

// Summary contains all data collected during a render.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Source image
	Source SourceInfo

	// Render settings
	Settings Settings

	// Per-stage timing
	Timing TimingInfo

	// Statistics of the intensity map
	Coverage CoverageInfo

	// Written files
	Outputs []OutputInfo
}

// SourceInfo describes the input image.
type SourceInfo struct {
	Path          string
	Bytes         int64
	NaturalWidth  int
	NaturalHeight int
	Width         int // working size
	Height        int
	Scale         float64
}

// Settings contains the render configuration.
type Settings struct {
	Mode           string // "engrave" or "sketch"
	Material       string
	DepthPercent   int
	TextureApplied bool
	BlurRadius     float64
	DarkGain       float64
	LightGain      float64
}

// TimingInfo contains stage durations in milliseconds.
type TimingInfo struct {
	NormalizeMs int64
	ToneMs      int64
	CompositeMs int64
	ExportMs    int64
	TotalMs     int64
}

// CoverageInfo summarises the stroke strengths (255-brightness)/255 of the
// intensity map.
type CoverageInfo struct {
	Pixels        int
	MeanStroke    float64
	StdDevStroke  float64
	EngravedRatio float64 // share of pixels darker than the export threshold
}

// OutputInfo describes one written file.
type OutputInfo struct {
	Path        string
	Format      string
	Bytes       int64
	Transparent bool
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Coverage computes stroke statistics of an intensity map. Pixels whose
// brightness is below threshold count as engraved.
func Coverage(sketch *raster.Buffer, threshold float64) CoverageInfo {
	if sketch == nil || sketch.Width*sketch.Height == 0 {
		return CoverageInfo{}
	}

	n := sketch.Width * sketch.Height
	strokes := make([]float64, n)
	engraved := 0
	for i := 0; i < n; i++ {
		v := float64(sketch.Pix[i*4])
		strokes[i] = (255 - v) / 255
		if v < threshold {
			engraved++
		}
	}

	mean, std := stat.PopMeanStdDev(strokes, nil)
	return CoverageInfo{
		Pixels:        n,
		MeanStroke:    mean,
		StdDevStroke:  std,
		EngravedRatio: float64(engraved) / float64(n),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets source image information.
func (b *Builder) WithSource(source SourceInfo) *Builder {
	b.summary.Source = source
	return b
}

// WithSettings sets render settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithTiming sets timing information.
func (b *Builder) WithTiming(timing TimingInfo) *Builder {
	b.summary.Timing = timing
	return b
}

// WithIntensity computes coverage statistics from the intensity map.
func (b *Builder) WithIntensity(sketch *raster.Buffer, threshold float64) *Builder {
	b.summary.Coverage = Coverage(sketch, threshold)
	return b
}

// WithOutput appends a written file.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Outputs = append(b.summary.Outputs, output)
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
