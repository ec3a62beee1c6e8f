package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/laserpreview/pkg/orchestrator"
	"github.com/user/laserpreview/pkg/pipeline"
	"github.com/user/laserpreview/pkg/ports"
	"github.com/user/laserpreview/pkg/session"
)

// errQuit ends the watch loop.
var errQuit = errors.New("quit")

// watchState is the parameter set edited by watch commands.
type watchState struct {
	req    orchestrator.RenderRequest
	source string
}

// apply executes one command line. open reads a new source image.
func (w *watchState) apply(line string, open func(path string) (image.Image, error)) (changed bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "quit", "exit":
		return false, errQuit
	case "depth":
		if len(args) != 1 {
			return false, errors.New(l10n.T("usage: depth <percent>"))
		}
		percent, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "%"), 64)
		if err != nil {
			return false, errors.New(l10n.F("invalid depth %q", args[0]))
		}
		w.req.Depth = pipeline.DepthFromPercent(percent)
	case "material":
		if len(args) != 1 {
			return false, errors.New(l10n.T("usage: material <glass|wood>"))
		}
		m, err := pipeline.ParseMaterial(args[0])
		if err != nil {
			return false, err
		}
		w.req.Material = m
		w.req.Background = nil
	case "open":
		if len(args) != 1 {
			return false, errors.New(l10n.T("usage: open <image>"))
		}
		img, err := open(args[0])
		if err != nil {
			return false, err
		}
		w.req.Source = img
		w.source = args[0]
	default:
		return false, errors.New(l10n.F("unknown command %q", cmd))
	}
	return true, nil
}

func watchAction(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	oc, err := a.cfg.ToOrchestratorConfig()
	if err != nil {
		return err
	}

	open := func(path string) (image.Image, error) {
		data, err := a.fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return a.orch.Decode(data, path)
	}

	source, err := open(oc.InputPath)
	if err != nil {
		return err
	}
	state := &watchState{req: oc.Request(source), source: oc.InputPath}

	out := c.App.Writer
	s := session.New(a.orch.Render, session.Options{
		Delay:  a.cfg.Debounce(),
		Logger: a.logger,
		OnUpdate: func(u session.Update) {
			if u.Err != nil {
				fmt.Fprintln(out, l10n.F("Generation %d failed: %s", u.Generation, u.Err))
				return
			}
			if _, err := a.orch.Save(oc.OutputPath, u.Result.Opaque, oc.Format, oc.Quality); err != nil {
				fmt.Fprintln(out, l10n.F("Generation %d failed: %s", u.Generation, err))
				return
			}
			if u.Result.Transparent != nil {
				if _, err := a.orch.Save(oc.TransparentPath, u.Result.Transparent, alphaFormat(oc), oc.Quality); err != nil {
					fmt.Fprintln(out, l10n.F("Generation %d failed: %s", u.Generation, err))
					return
				}
			}
			fmt.Fprintln(out, l10n.F("Preview %d ready: %s on %s at %d%%",
				u.Generation, oc.OutputPath, u.Request.Material, int(u.Request.Depth*100+0.5)))
		},
	})
	defer s.Close()

	s.Update(state.req)
	fmt.Fprintln(out, l10n.T("Commands: depth <percent>, material <glass|wood>, open <image>, quit"))

	return readCommands(c, c.App.Reader, func(line string) error {
		changed, err := state.apply(line, open)
		if err != nil {
			if errors.Is(err, errQuit) {
				return err
			}
			fmt.Fprintln(out, err)
			return nil
		}
		if changed {
			s.Update(state.req)
		}
		return nil
	})
}

// readCommands feeds stdin lines to handle until EOF, quit or cancellation.
func readCommands(c *cli.Context, r io.Reader, handle func(line string) error) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-c.Context.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-c.Context.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := handle(line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
		}
	}
}

// alphaFormat is the output format of the transparent export; JPEG cannot
// carry alpha.
func alphaFormat(oc orchestrator.Config) ports.ImageFormat {
	if oc.Format == ports.FormatJPEG {
		return ports.FormatPNG
	}
	return oc.Format
}
