package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/backlogtree/pkg/observability/prom"
	"github.com/matzehuels/backlogtree/pkg/pipeline"
	"github.com/matzehuels/backlogtree/pkg/viewport"
	"github.com/matzehuels/backlogtree/pkg/watcher"
)

// watchDebounce coalesces bursts of editor writes into one re-render.
const watchDebounce = 150 * time.Millisecond

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output base path (default: input without extension)
	formats     string  // comma-separated output formats
	theme       string  // light or dark
	font        string
	scale       float64 // PNG pixel density
	title       string  // document title
	zoom        float64 // viewport zoom
	panX, panY  float64 // viewport pan
	fit         bool    // fit the tree into the view
	viewW       float64 // output surface width
	viewH       float64 // output surface height
	static      bool    // omit the zoom transition class
	strict      bool    // fail on orphans, duplicates and cycles
	noCache     bool    // bypass the cache
	watch       bool    // re-render when the input changes
	metricsFile string  // Prometheus textfile written after the run
}

// renderCommand creates the render command for drawing backlog trees.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [backlog.json]",
		Short: "Render a backlog tree to SVG, PNG, DOT, Graphviz, JSON or text",
		Long: `Render a backlog tree to one or more output formats.

Formats:
  svg       cards and connectors inside a zoomable viewport group
  png       raster image of the same drawing
  dot       Graphviz source with pinned card positions
  graphviz  SVG produced by Graphviz from the DOT source
  json      the computed layout
  txt       box-drawing text, as shown by 'view'

Each format is written to <output>.<ext>. The viewport flags control the zoom
and pan baked into SVG, PNG and text output; --fit picks them so the whole tree
fits into --view-width x --view-height.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.renderOptions(cmd, ro)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, ro)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&ro.output, "output", "o", "", "output base path (default: input without extension)")
	f.StringVarP(&ro.formats, "format", "f", "", "output formats, comma-separated: svg, png, dot, graphviz, json, txt (default from config)")
	f.StringVar(&ro.theme, "theme", "", "color theme: light, dark (default from config)")
	f.StringVar(&ro.font, "font", "", "card font: sans, mono (default from config)")
	f.Float64Var(&ro.scale, "scale", 0, "PNG pixel density (default from config)")
	f.StringVar(&ro.title, "title", pipeline.DefaultTitle, "document title")
	f.Float64Var(&ro.zoom, "zoom", 1, "viewport zoom")
	f.Float64Var(&ro.panX, "pan-x", 0, "viewport horizontal pan in pixels")
	f.Float64Var(&ro.panY, "pan-y", 0, "viewport vertical pan in pixels")
	f.BoolVar(&ro.fit, "fit", false, "fit the whole tree into the view")
	f.Float64Var(&ro.viewW, "view-width", 0, "output width in pixels (default: content width)")
	f.Float64Var(&ro.viewH, "view-height", 0, "output height in pixels (default: content height)")
	f.BoolVar(&ro.static, "static", false, "disable the zoom transition in SVG output")
	f.BoolVar(&ro.strict, "strict", false, "fail on orphans, duplicates and cycles")
	f.BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	f.BoolVarP(&ro.watch, "watch", "w", false, "re-render whenever the input changes")
	f.StringVar(&ro.metricsFile, "metrics-file", "", "write Prometheus metrics to this file when done")

	return cmd
}

// renderOptions merges config defaults with the flags the user set.
func (c *CLI) renderOptions(cmd *cobra.Command, ro renderOpts) (pipeline.Options, error) {
	opts := c.baseOptions()
	opts.Strict = ro.strict
	opts.Title = ro.title
	opts.Fit = ro.fit
	opts.View = viewport.Size{W: ro.viewW, H: ro.viewH}

	flags := cmd.Flags()
	if flags.Changed("format") {
		opts.Formats = parseFormats(ro.formats)
	}
	if flags.Changed("theme") {
		opts.Theme = ro.theme
	}
	if flags.Changed("font") {
		opts.Font = ro.font
	}
	if flags.Changed("scale") {
		opts.Scale = ro.scale
	}
	// Out-of-range zoom and pan are clamped like interactive input.
	ctl := viewport.New(opts.Viewport)
	ctl.SetZoom(ro.zoom)
	ctl.PanBy(ro.panX, ro.panY)
	opts.Transform = ctl.Transform()
	opts.Transform.Animated = !ro.static

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// runRender renders input once, then again on every change when watching.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, ro renderOpts) (err error) {
	if ro.metricsFile != "" {
		reg := prometheus.NewRegistry()
		prom.New(reg).Install()
		defer func() {
			if werr := prom.WriteTextfile(ro.metricsFile, reg); werr != nil && err == nil {
				err = fmt.Errorf("write metrics: %w", werr)
			}
		}()
	}

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	base := basePath(ro.output, input)
	if err := c.renderOnce(ctx, runner, input, base, opts); err != nil {
		if !ro.watch {
			return err
		}
		printError("%v", err)
	}
	if !ro.watch {
		return nil
	}

	w, err := watcher.New(input, watchDebounce)
	if err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}
	defer w.Close()

	printInfo("Watching %s for changes (Ctrl+C to stop)", input)
	w.Run(ctx, func(ctx context.Context) error {
		err := c.renderOnce(ctx, runner, input, base, opts)
		if err != nil {
			printError("%v", err)
		}
		return err
	})
	return ctx.Err()
}

// renderOnce runs the full pipeline and writes every artifact.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, input, base string, opts pipeline.Options) error {
	// Graphviz is the only slow stage worth animating.
	var sw io.Writer
	if slices.Contains(opts.Formats, pipeline.FormatGraphviz) && stderrIsTerminal() {
		sw = os.Stderr
	}

	result, err := spin(ctx, sw, "Rendering "+input+"...", func() (*pipeline.Result, error) {
		return runner.Execute(ctx, input, opts)
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	paths, err := writeArtifacts(base, opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	cached := result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printSuccess("Rendered %s", input)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, cached)
	return nil
}
