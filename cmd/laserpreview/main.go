// Package main provides the CLI entry point for laserpreview.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/laserpreview/pkg/adapters/filesink"
	"github.com/user/laserpreview/pkg/adapters/ggrenderer"
	"github.com/user/laserpreview/pkg/adapters/logger"
	"github.com/user/laserpreview/pkg/adapters/nullsink"
	"github.com/user/laserpreview/pkg/adapters/osfilesystem"
	"github.com/user/laserpreview/pkg/adapters/texturestore"
	"github.com/user/laserpreview/pkg/config"
	"github.com/user/laserpreview/pkg/orchestrator"
	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/ports"
	"github.com/user/laserpreview/pkg/stages/export"
	"github.com/user/laserpreview/pkg/stages/material"
	"github.com/user/laserpreview/pkg/stages/normalize"
	"github.com/user/laserpreview/pkg/stages/paper"
	"github.com/user/laserpreview/pkg/stages/tone"
	"github.com/user/laserpreview/pkg/summarizer"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "laserpreview",
		Usage:   l10n.T("Preview laser engravings of photographs on glass and wood"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), Category: l10n.T("Configuration")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)"), Category: l10n.T("Logging")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output"), Category: l10n.T("Logging")},
			&cli.BoolFlag{Name: "debug", Usage: l10n.T("Save intermediate images"), Category: l10n.T("Debug")},
			&cli.StringFlag{Name: "debug-dir", Usage: l10n.T("Directory for intermediate images"), Category: l10n.T("Debug")},
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     l10n.T("Render an engraving preview"),
				ArgsUsage: "<image>",
				Flags:     append(outputFlags(), engravingFlags()...),
				Action:    renderAction,
			},
			{
				Name:      "sketch",
				Usage:     l10n.T("Render a pencil sketch on paper"),
				ArgsUsage: "<image>",
				Flags:     outputFlags(),
				Action:    sketchAction,
			},
			{
				Name:      "watch",
				Usage:     l10n.T("Interactively re-render a preview from commands on stdin"),
				ArgsUsage: "<image>",
				Flags:     append(outputFlags(), engravingFlags()...),
				Action:    watchAction,
			},
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output image path"), Category: l10n.T("Output")},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: l10n.T("Output format (png, jpeg, webp)"), Category: l10n.T("Output")},
		&cli.IntFlag{Name: "quality", Usage: l10n.T("JPEG quality (1-100)"), Category: l10n.T("Output")},
		&cli.IntFlag{Name: "max-dimension", Usage: l10n.T("Longest side of the working canvas"), Category: l10n.T("Output")},
		&cli.StringFlag{Name: "summary", Usage: l10n.T("Output execution summary to file (Markdown format)"), Category: l10n.T("Output")},
		&cli.StringSliceFlag{Name: "texture", Usage: l10n.T("Material texture as name=path (wood, glass, paper)"), Category: l10n.T("Material")},
	}
}

func engravingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "material", Aliases: []string{"m"}, Usage: l10n.T("Material (glass or wood)"), Category: l10n.T("Material")},
		&cli.Float64Flag{Name: "depth", Aliases: []string{"d"}, Usage: l10n.T("Engraving depth in percent (10-100)"), Category: l10n.T("Material")},
		&cli.StringFlag{Name: "transparent", Aliases: []string{"t"}, Usage: l10n.T("Also write the alpha-masked export to this path"), Category: l10n.T("Output")},
	}
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}

	if c.Args().Present() {
		cfg.InputPath = c.Args().First()
	}
	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}
	if c.IsSet("max-dimension") {
		cfg.MaxDimension = c.Int("max-dimension")
	}
	if c.IsSet("material") {
		cfg.Material = c.String("material")
	}
	if c.IsSet("depth") {
		cfg.Depth = c.Float64("depth")
	}
	if c.IsSet("transparent") {
		cfg.TransparentPath = c.String("transparent")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	for _, arg := range c.StringSlice("texture") {
		name, path, ok := strings.Cut(arg, "=")
		if !ok || name == "" || path == "" {
			return cfg, errors.New(l10n.F("invalid --texture %q, want name=path", arg))
		}
		if cfg.Textures == nil {
			cfg.Textures = map[string]string{}
		}
		cfg.Textures[strings.ToLower(name)] = path
	}

	if cfg.InputPath == "" {
		return cfg, errors.New(l10n.T("an input image is required"))
	}
	if cfg.OutputPath == "" {
		return cfg, errors.New(l10n.T("--output is required"))
	}
	return cfg, cfg.Validate()
}

func newLogger(c *cli.Context) (ports.Logger, error) {
	if c.Bool("quiet") {
		return logger.NewNoop(), nil
	}
	level, err := ports.ParseLogLevel(c.String("log-level"))
	if err != nil {
		return nil, err
	}
	return logger.NewConsole(level), nil
}

// app bundles the wired pipeline for one command.
type app struct {
	cfg    config.Config
	orch   *orchestrator.Orchestrator
	fs     ports.FileSystem
	logger ports.Logger
}

func setup(c *cli.Context) (*app, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(c)
	if err != nil {
		return nil, err
	}

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	textures := texturestore.New(fs, renderer, cfg.Textures)

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	// Create orchestrator
	orch := orchestrator.New(
		normalize.NewStage(renderer, sink, log),
		tone.NewStage(log),
		material.NewStage(renderer, sink, log),
		export.NewStage(sink, log),
		paper.NewStage(renderer, sink, log),
		renderer,
		textures,
		fs,
		sink,
		log,
	)

	return &app{cfg: cfg, orch: orch, fs: fs, logger: log}, nil
}

func renderAction(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	oc, err := a.cfg.ToOrchestratorConfig()
	if err != nil {
		return err
	}

	result, err := a.orch.Run(c.Context, oc)
	if err != nil {
		return err
	}
	return a.writeSummary(c.String("summary"), result, oc, "engrave")
}

func sketchAction(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	oc, err := a.cfg.ToOrchestratorConfig()
	if err != nil {
		return err
	}

	result, err := a.orch.RunSketch(c.Context, oc)
	if err != nil {
		return err
	}
	return a.writeSummary(c.String("summary"), result, oc, "sketch")
}

func (a *app) writeSummary(path string, result orchestrator.RunResult, oc orchestrator.Config, mode string) error {
	if path == "" {
		return nil
	}

	summary := buildSummary(result, oc, mode)
	writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	), a.fs)
	if err := writer.Write(path, summary); err != nil {
		a.logger.Error("Failed to write summary: %s", err)
		return err
	}
	a.logger.Info("Summary saved to %s", path)
	return nil
}

func buildSummary(result orchestrator.RunResult, oc orchestrator.Config, mode string) *summarizer.Summary {
	tone := oc.Tone
	if mode == "sketch" {
		tone = oc.SketchTone
	}

	b := summarizer.NewBuilder().
		WithSource(summarizer.SourceInfo{
			Path:          result.InputPath,
			Bytes:         result.InputBytes,
			NaturalWidth:  result.Natural.Width,
			NaturalHeight: result.Natural.Height,
			Width:         result.Working.Width,
			Height:        result.Working.Height,
			Scale:         result.Scale,
		}).
		WithSettings(summarizer.Settings{
			Mode:           mode,
			Material:       string(result.Material),
			DepthPercent:   int(pipeline.ClampDepth(result.Depth)*100 + 0.5),
			TextureApplied: result.TextureApplied,
			BlurRadius:     tone.BlurRadius,
			DarkGain:       tone.Contrast.DarkGain,
			LightGain:      tone.Contrast.LightGain,
		}).
		WithTiming(summarizer.TimingInfo{
			NormalizeMs: result.Timing.Normalize.Milliseconds(),
			ToneMs:      result.Timing.Tone.Milliseconds(),
			CompositeMs: result.Timing.Composite.Milliseconds(),
			ExportMs:    result.Timing.Export.Milliseconds(),
			TotalMs:     result.Elapsed.Milliseconds(),
		}).
		WithIntensity(result.Sketch, oc.Export.BrightnessThreshold)

	for _, o := range result.Outputs {
		b.WithOutput(summarizer.OutputInfo{
			Path:        o.Path,
			Format:      o.Format.String(),
			Bytes:       o.Bytes,
			Transparent: o.Transparent,
		})
	}
	return b.Build()
}
