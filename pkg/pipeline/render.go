package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/observability"
	"github.com/matzehuels/backlogtree/pkg/render"
	"github.com/matzehuels/backlogtree/pkg/render/nodelink"
	"github.com/matzehuels/backlogtree/pkg/viewport"
)

// ResolveTransform returns the transform a render applies. With Fit set and
// a known view size the layout is fit into the view; with Fit set and no
// view size the fallback fit zoom is used. Otherwise the requested zoom and
// pan are clamped to the viewport limits.
func ResolveTransform(l layout.Result, opts Options) viewport.Transform {
	c := viewport.New(opts.Viewport)
	if opts.Fit {
		c.Fit(opts.View, viewport.Size{W: l.Width, H: l.Height})
		return c.Transform()
	}
	t := opts.Transform
	c.SetZoom(t.Zoom)
	c.PanBy(t.Pan.X, t.Pan.Y)
	out := c.Transform()
	out.Animated = t.Animated
	return out
}

// RenderFromLayout generates output artifacts in the requested formats.
func RenderFromLayout(ctx context.Context, l layout.Result, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, l layout.Result, opts Options) (map[string][]byte, error) {
	theme := render.ThemeByName(opts.Theme)
	ropts := []render.Option{
		render.WithTransform(opts.Transform),
		render.WithTheme(theme),
		render.WithScale(opts.Scale),
		render.WithTitle(opts.Title),
		render.WithFont(opts.Font),
	}
	if opts.View.W > 0 && opts.View.H > 0 {
		ropts = append(ropts, render.WithViewSize(opts.View))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var buf bytes.Buffer
		var err error

		switch format {
		case FormatSVG:
			err = render.SVG(&buf, l, ropts...)
		case FormatPNG:
			err = render.PNG(&buf, l, ropts...)
		case FormatDOT:
			buf.WriteString(nodelink.ToDOT(l, nodelink.Options{Detailed: true, Theme: theme}))
		case FormatGraphviz:
			var data []byte
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelink.Options{Detailed: true, Theme: theme}))
			buf.Write(data)
		case FormatJSON:
			err = layout.Write(&buf, l)
		case FormatText:
			cols, rows := textSize(l, opts)
			buf.WriteString(strings.Join(render.Text(l, opts.Transform, cols, rows), "\n"))
			buf.WriteByte('\n')
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = buf.Bytes()
	}
	return artifacts, nil
}

// textSize returns the character grid covering the output surface.
func textSize(l layout.Result, opts Options) (int, int) {
	w, h := opts.View.W, opts.View.H
	if w <= 0 || h <= 0 {
		cw, ch := l.Width, l.Height
		if l.IsEmpty() {
			cw, ch = 2*l.Config.CardWidth, l.Config.CardHeight
		}
		t := opts.Transform
		w, h = t.Pan.X+cw*t.Zoom, t.Pan.Y+ch*t.Zoom
	}
	return max(1, int(math.Ceil(w/render.CellWidth))), max(1, int(math.Ceil(h/render.CellHeight)))
}
