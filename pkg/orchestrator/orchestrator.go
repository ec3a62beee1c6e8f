// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/ports"
	"github.com/user/laserpreview/pkg/raster"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input/Output
	InputPath       string
	OutputPath      string
	TransparentPath string // Empty skips the alpha-masked export
	Format          ports.ImageFormat
	Quality         int // JPEG quality (1-100)

	// Engraving
	Material    pipeline.Material
	Depth       float64                               // Normalized depth in [0,1]
	Backgrounds map[pipeline.Material][2]color.NRGBA // Optional gradient overrides

	// Processing
	MaxDimension int
	Tone         pipeline.ToneParams
	SketchTone   pipeline.ToneParams // Tuning for the paper sketch
	Export       pipeline.ExportParams
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Format:  ports.FormatPNG,
		Quality: 90,

		Material: pipeline.MaterialGlass,
		Depth:    pipeline.DepthFromPercent(70),

		MaxDimension: pipeline.DefaultMaxDimension,
		Tone:         pipeline.DefaultToneParams(),
		SketchTone:   pipeline.SketchToneParams(),
		Export:       pipeline.DefaultExportParams(),
	}
}

// RenderRequest is one in-memory engraving preview.
type RenderRequest struct {
	Source       image.Image
	Material     pipeline.Material
	Depth        float64
	Background   *[2]color.NRGBA // nil keeps the material's own gradient
	MaxDimension int
	Tone         pipeline.ToneParams
	Export       pipeline.ExportParams
	Transparent  bool
}

// Request builds a RenderRequest for source from the config.
func (c Config) Request(source image.Image) RenderRequest {
	var background *[2]color.NRGBA
	if bg, ok := c.Backgrounds[c.Material]; ok {
		background = &bg
	}
	return RenderRequest{
		Source:       source,
		Material:     c.Material,
		Depth:        c.Depth,
		Background:   background,
		MaxDimension: c.MaxDimension,
		Tone:         c.Tone,
		Export:       c.Export,
		Transparent:  c.TransparentPath != "",
	}
}

// Timing records how long each stage took.
type Timing struct {
	Normalize time.Duration
	Tone      time.Duration
	Composite time.Duration
	Export    time.Duration
}

// Total is the sum of all stage durations.
func (t Timing) Total() time.Duration {
	return t.Normalize + t.Tone + t.Composite + t.Export
}

// RenderResult holds every buffer a preview run produced.
type RenderResult struct {
	Natural pipeline.Dimension
	Scale   float64

	Sketch      *raster.Buffer
	Opaque      *raster.Buffer
	Transparent *raster.Buffer // nil unless requested

	TextureApplied bool
	Timing         Timing
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	normalizeStage pipeline.Stage[pipeline.NormalizeInput, pipeline.NormalizeResult]
	toneStage      pipeline.Stage[pipeline.ToneInput, pipeline.ToneResult]
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult]
	exportStage    pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult]
	paperStage     pipeline.Stage[pipeline.PaperInput, pipeline.PaperResult]
	renderer       ports.Renderer
	textures       ports.TextureSource
	fs             ports.FileSystem
	sink           ports.DebugSink
	logger         ports.Logger
}

// New creates a new Orchestrator.
func New(
	normalizeStage pipeline.Stage[pipeline.NormalizeInput, pipeline.NormalizeResult],
	toneStage pipeline.Stage[pipeline.ToneInput, pipeline.ToneResult],
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult],
	exportStage pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult],
	paperStage pipeline.Stage[pipeline.PaperInput, pipeline.PaperResult],
	renderer ports.Renderer,
	textures ports.TextureSource,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		normalizeStage: normalizeStage,
		toneStage:      toneStage,
		compositeStage: compositeStage,
		exportStage:    exportStage,
		paperStage:     paperStage,
		renderer:       renderer,
		textures:       textures,
		fs:             fs,
		sink:           sink,
		logger:         logger,
	}
}

// Decode decodes source bytes. Failures are reported as *raster.DecodeError.
func (o *Orchestrator) Decode(data []byte, source string) (image.Image, error) {
	img, err := o.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return nil, &raster.DecodeError{Source: source, Err: err}
	}
	return img, nil
}

// Render runs normalize, tone, composite and export on an in-memory image.
func (o *Orchestrator) Render(ctx context.Context, req RenderRequest) (RenderResult, error) {
	var result RenderResult

	// 1. Normalize
	start := time.Now()
	normalized, err := o.normalizeStage.Execute(ctx, pipeline.NormalizeInput{
		Source:       req.Source,
		MaxDimension: req.MaxDimension,
	})
	if err != nil {
		o.logger.Error("Failed to normalize source: %s", err)
		return RenderResult{}, fmt.Errorf("normalize stage: %w", err)
	}
	result.Timing.Normalize = time.Since(start)
	result.Natural = normalized.Natural
	result.Scale = normalized.Scale
	o.logger.Info("Working canvas %dx%d (source %dx%d)",
		normalized.Buffer.Width, normalized.Buffer.Height, normalized.Natural.Width, normalized.Natural.Height)

	// 2. Tone
	start = time.Now()
	sketch, err := o.sketch(ctx, normalized.Buffer, req.Tone)
	if err != nil {
		return RenderResult{}, err
	}
	result.Timing.Tone = time.Since(start)
	result.Sketch = sketch

	// 3. Texture
	texture, err := o.loadTexture(ctx, req.Material)
	if err != nil {
		return RenderResult{}, err
	}

	// 4. Composite
	o.logger.Info("Compositing on %s at depth %d%%", req.Material, int(pipeline.ClampDepth(req.Depth)*100+0.5))
	start = time.Now()
	composite, err := o.compositeStage.Execute(ctx, pipeline.CompositeInput{
		Sketch:     sketch,
		Texture:    texture,
		Material:   req.Material,
		Depth:      req.Depth,
		Background: req.Background,
	})
	if err != nil {
		o.logger.Error("Failed to composite material: %s", err)
		return RenderResult{}, fmt.Errorf("composite stage: %w", err)
	}
	result.Timing.Composite = time.Since(start)
	result.TextureApplied = composite.TextureApplied

	// 5. Export
	start = time.Now()
	exported, err := o.exportStage.Execute(ctx, pipeline.ExportInput{
		Image:       composite.Image,
		Transparent: req.Transparent,
		Params:      req.Export,
	})
	if err != nil {
		o.logger.Error("Failed to export preview: %s", err)
		return RenderResult{}, fmt.Errorf("export stage: %w", err)
	}
	result.Timing.Export = time.Since(start)
	result.Opaque = exported.Opaque
	result.Transparent = exported.Transparent

	return result, nil
}

// SketchRequest is one in-memory paper sketch.
type SketchRequest struct {
	Source       image.Image
	MaxDimension int
	Tone         pipeline.ToneParams
}

// SketchResult holds the framed paper sketch.
type SketchResult struct {
	Natural pipeline.Dimension
	Scale   float64

	Sketch *raster.Buffer
	Image  *raster.Buffer

	TextureApplied bool
	Timing         Timing
}

// RenderSketch runs normalize and tone with the sketch tuning and frames
// the result on paper.
func (o *Orchestrator) RenderSketch(ctx context.Context, req SketchRequest) (SketchResult, error) {
	var result SketchResult

	start := time.Now()
	normalized, err := o.normalizeStage.Execute(ctx, pipeline.NormalizeInput{
		Source:       req.Source,
		MaxDimension: req.MaxDimension,
	})
	if err != nil {
		o.logger.Error("Failed to normalize source: %s", err)
		return SketchResult{}, fmt.Errorf("normalize stage: %w", err)
	}
	result.Timing.Normalize = time.Since(start)
	result.Natural = normalized.Natural
	result.Scale = normalized.Scale

	start = time.Now()
	sketch, err := o.sketch(ctx, normalized.Buffer, req.Tone)
	if err != nil {
		return SketchResult{}, err
	}
	result.Timing.Tone = time.Since(start)
	result.Sketch = sketch

	texture, err := o.loadTexture(ctx, pipeline.MaterialPaper)
	if err != nil {
		return SketchResult{}, err
	}

	o.logger.Info("Framing sketch on paper")
	start = time.Now()
	paper, err := o.paperStage.Execute(ctx, pipeline.PaperInput{Sketch: sketch, Texture: texture})
	if err != nil {
		o.logger.Error("Failed to frame sketch: %s", err)
		return SketchResult{}, fmt.Errorf("paper stage: %w", err)
	}
	result.Timing.Composite = time.Since(start)
	result.Image = paper.Image
	result.TextureApplied = texture != nil

	return result, nil
}

func (o *Orchestrator) sketch(ctx context.Context, buf *raster.Buffer, params pipeline.ToneParams) (*raster.Buffer, error) {
	o.logger.Info("Extracting sketch")
	tone, err := o.toneStage.Execute(ctx, pipeline.ToneInput{Buffer: buf, Params: params})
	if err != nil {
		o.logger.Error("Failed to extract sketch: %s", err)
		return nil, fmt.Errorf("tone stage: %w", err)
	}

	if o.sink.Enabled() {
		if err := o.sink.SaveSketch(tone.Sketch.Image()); err != nil {
			o.logger.Warn("Failed to save debug output: %v", err)
		}
	}
	return tone.Sketch, nil
}

// loadTexture resolves the texture for m. Missing or undecodable textures
// degrade to nil; only cancellation is returned as an error.
func (o *Orchestrator) loadTexture(ctx context.Context, m pipeline.Material) (image.Image, error) {
	if o.textures == nil {
		return nil, nil
	}
	texture, err := o.textures.Load(ctx, string(m))
	switch {
	case err == nil:
		return texture, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, ports.ErrTextureNotFound):
		o.logger.Debug("No %s texture: %v", m, err)
	default:
		o.logger.Warn("Texture unavailable, using procedural background: %s", err)
	}
	return nil, nil
}

// Run reads, renders, encodes and writes one engraving preview.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info("Starting pipeline")
	began := time.Now()

	source, data, err := o.readSource(config.InputPath)
	if err != nil {
		return RunResult{}, err
	}

	rendered, err := o.Render(ctx, config.Request(source))
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		InputPath:      config.InputPath,
		InputBytes:     int64(len(data)),
		Natural:        rendered.Natural,
		Working:        pipeline.Dimension{Width: rendered.Opaque.Width, Height: rendered.Opaque.Height},
		Scale:          rendered.Scale,
		Material:       config.Material,
		Depth:          pipeline.ClampDepth(config.Depth),
		TextureApplied: rendered.TextureApplied,
		Sketch:         rendered.Sketch,
		Timing:         rendered.Timing,
	}

	out, err := o.Save(config.OutputPath, rendered.Opaque, config.Format, config.Quality)
	if err != nil {
		return RunResult{}, err
	}
	result.Outputs = append(result.Outputs, out)

	if rendered.Transparent != nil {
		format := config.Format
		if format == ports.FormatJPEG {
			o.logger.Warn("JPEG has no alpha channel, writing transparent export as PNG")
			format = ports.FormatPNG
		}
		out, err := o.Save(config.TransparentPath, rendered.Transparent, format, config.Quality)
		if err != nil {
			return RunResult{}, err
		}
		out.Transparent = true
		result.Outputs = append(result.Outputs, out)
	}

	result.Elapsed = time.Since(began)
	o.logger.Info("Pipeline completed successfully")
	return result, nil
}

// RunSketch reads the source, renders the paper sketch and writes it.
func (o *Orchestrator) RunSketch(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info("Starting pipeline")
	began := time.Now()

	source, data, err := o.readSource(config.InputPath)
	if err != nil {
		return RunResult{}, err
	}

	rendered, err := o.RenderSketch(ctx, SketchRequest{
		Source:       source,
		MaxDimension: config.MaxDimension,
		Tone:         config.SketchTone,
	})
	if err != nil {
		return RunResult{}, err
	}

	out, err := o.Save(config.OutputPath, rendered.Image, config.Format, config.Quality)
	if err != nil {
		return RunResult{}, err
	}

	o.logger.Info("Pipeline completed successfully")
	return RunResult{
		InputPath:      config.InputPath,
		InputBytes:     int64(len(data)),
		Natural:        rendered.Natural,
		Working:        pipeline.Dimension{Width: rendered.Image.Width, Height: rendered.Image.Height},
		Scale:          rendered.Scale,
		Material:       pipeline.MaterialPaper,
		TextureApplied: rendered.TextureApplied,
		Sketch:         rendered.Sketch,
		Timing:         rendered.Timing,
		Outputs:        []Output{out},
		Elapsed:        time.Since(began),
	}, nil
}

func (o *Orchestrator) readSource(path string) (image.Image, []byte, error) {
	o.logger.Info("Reading %s", path)
	data, err := o.fs.ReadFile(path)
	if err != nil {
		o.logger.Error("Failed to read input: %s", err)
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	img, err := o.Decode(data, path)
	if err != nil {
		o.logger.Error("Failed to decode input: %s", err)
		return nil, nil, err
	}
	return img, data, nil
}

// Save encodes buf and writes it to path.
func (o *Orchestrator) Save(path string, buf *raster.Buffer, format ports.ImageFormat, quality int) (Output, error) {
	data, err := o.renderer.EncodeImage(buf.Image(), format, quality)
	if err != nil {
		o.logger.Error("Failed to encode output: %s", err)
		return Output{}, fmt.Errorf("encode output: %w", err)
	}
	if err := o.fs.WriteFile(path, data); err != nil {
		o.logger.Error("Failed to write output: %s", err)
		return Output{}, fmt.Errorf("write output: %w", err)
	}
	o.logger.Info("Wrote %s (%d bytes)", path, len(data))
	return Output{Path: path, Format: format, Bytes: int64(len(data))}, nil
}

// Output describes one written file.
type Output struct {
	Path        string
	Format      ports.ImageFormat
	Bytes       int64
	Transparent bool
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	// Input information
	InputPath  string
	InputBytes int64
	Natural    pipeline.Dimension
	Working    pipeline.Dimension
	Scale      float64

	// Settings
	Material       pipeline.Material // MaterialPaper for sketches
	Depth          float64
	TextureApplied bool

	// Intensity map, for coverage statistics
	Sketch *raster.Buffer

	// Outputs and timing
	Outputs []Output
	Timing  Timing
	Elapsed time.Duration
}
