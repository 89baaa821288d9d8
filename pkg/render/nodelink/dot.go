package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/render"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the description excerpt and priority to node labels.
	// When false, labels hold the type and title only.
	Detailed bool
	// Theme colors nodes and edges. The zero value means render.Light.
	Theme render.Theme
}

// pointsPerInch converts layout pixels (treated as points) to the inch
// units Graphviz uses for node width and height.
const pointsPerInch = 72.0

// ToDOT converts a layout to Graphviz DOT with pinned node positions.
func ToDOT(r layout.Result, opts Options) string {
	th := opts.Theme
	if th.Name == "" {
		th = render.Light
	}
	cfg := r.Config

	var buf bytes.Buffer
	buf.WriteString("digraph backlog {\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", render.Hex(th.Background))
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fixedsize=true, width=%s, height=%s, fillcolor=%q, color=%q, fontcolor=%q, fontname=\"Helvetica\", fontsize=12];\n",
		num(cfg.CardWidth/pointsPerInch), num(cfg.CardHeight/pointsPerInch),
		render.Hex(th.Card), render.Hex(th.CardBorder), render.Hex(th.Title))
	fmt.Fprintf(&buf, "  edge [color=%q, arrowsize=0.7];\n", render.Hex(th.Edge))
	buf.WriteString("\n")

	for i, n := range r.Nodes {
		// Graphviz positions the node center.
		x := n.X
		y := r.Height - (n.Y + cfg.CardHeight/2)
		fmt.Fprintf(&buf, "  n%d [label=%q, tooltip=%q, pos=\"%s,%s!\", penwidth=2, color=%q];\n",
			i, label(n, opts.Detailed), n.ID, num(x), num(y), render.Hex(render.TypeColor(n.Item.Type)))
	}

	if len(r.Edges) > 0 {
		buf.WriteString("\n")
	}
	// Node indices keep edges distinct when ids repeat.
	for i, n := range r.Nodes {
		if n.Parent >= 0 {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", n.Parent, i)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(n layout.Node, detailed bool) string {
	parts := []string{n.Item.Type.Label(), n.Item.Title}
	if detailed {
		if d := strings.TrimSpace(n.Item.Description); d != "" {
			parts = append(parts, excerpt(d, 48))
		}
		parts = append(parts, n.Item.PriorityLabel())
		if n.Item.Effort != "" {
			parts = append(parts, "Effort "+n.Item.Effort)
		}
	}
	return strings.Join(parts, "\n")
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders DOT source to SVG with the neato engine, which honors
// pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales to its
// container instead of Graphviz's fixed point size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
